// Package testutil provides shared inventory fixtures for tests.
package testutil

import (
	"testing"

	"github.com/emergylab/emergia/internal/inventory"
)

// TotalEmergyStore returns a store with one flow ("Sun" in J over processes
// "Widget" and "Gadget"), Sun/Widget=100, Sun/Gadget unset, and a table
// transformity of 1.5e3 for Sun.
func TotalEmergyStore(t *testing.T) *inventory.Store {
	t.Helper()
	s := inventory.NewStore()
	mustDo(t,
		s.AddFlow("Sun", "J"),
		s.AddProcess("Widget", "unit"),
		s.AddProcess("Gadget", ""),
		s.SetValue("Sun", "Widget", "100"),
		s.AddTransformity("Sun", "1.5e3", ""),
	)
	return s
}

// DirectInputsStore returns the two-flow/two-process matrix used by the
// direct-inputs examples: P1 column [10, unset], P2 column [20, 5].
func DirectInputsStore(t *testing.T) *inventory.Store {
	t.Helper()
	s := inventory.NewStore()
	mustDo(t,
		s.AddFlow("R1", ""),
		s.AddFlow("R2", ""),
		s.AddProcess("P1", ""),
		s.AddProcess("P2", ""),
		s.SetValue("R1", "P1", "10"),
		s.SetValue("R1", "P2", "20"),
		s.SetValue("R2", "P2", "5"),
	)
	return s
}

func mustDo(t *testing.T, errs ...error) {
	t.Helper()
	for _, err := range errs {
		if err != nil {
			t.Fatalf("fixture setup: %v", err)
		}
	}
}
