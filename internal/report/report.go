// Package report renders results bundles for the presentation collaborator.
// The engine never renders; this package turns a *engine.Results into an
// ordered text report and exposes per-process contribution shares for chart
// rendering.
package report

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/emergylab/emergia/internal/engine"
)

// UnitView supplies unit metadata for flow and process names.
// *inventory.Store satisfies it.
type UnitView interface {
	Unit(name string) string
}

// noUnits is used when the caller has no unit metadata.
type noUnits struct{}

func (noUnits) Unit(string) string { return "" }

const rule = "================================================================"

// Render writes the ordered text report for a results bundle. units may be
// nil. Names are NFC-normalized so reports are byte-stable regardless of how
// the input text was composed.
func Render(w io.Writer, res *engine.Results, units UnitView) error {
	if res == nil {
		return fmt.Errorf("render: nil results bundle")
	}
	if units == nil {
		units = noUnits{}
	}

	var b strings.Builder
	b.WriteString(rule + "\n")
	b.WriteString(" Emergy Calculation Report\n")
	fmt.Fprintf(&b, " Mode: %s\n", res.Mode.DisplayName())
	fmt.Fprintf(&b, " Run:  %s\n", res.RunToken)
	b.WriteString(rule + "\n\n")

	b.WriteString("Summary:\n")
	for _, entry := range res.Summary {
		for _, line := range strings.Split(entry, "\n") {
			fmt.Fprintf(&b, "  %s\n", norm.NFC.String(line))
		}
	}

	if res.Contributions != nil && len(res.Contributions.Flows) > 0 {
		b.WriteString("\nEmergy contribution per input flow (sej):\n")
		for i, flow := range res.Contributions.Flows {
			label := norm.NFC.String(flow)
			if u := units.Unit(flow); u != "" {
				label += " [" + u + "]"
			}
			parts := make([]string, len(res.Contributions.Processes))
			for j, proc := range res.Contributions.Processes {
				parts[j] = fmt.Sprintf("%s=%.2e", norm.NFC.String(proc), res.Contributions.Values[i][j])
			}
			fmt.Fprintf(&b, "  %s: %s\n", label, strings.Join(parts, ", "))
		}
	}

	if res.Totals != nil {
		b.WriteString("\nTotal emergy per process (sej):\n")
		writeSeries(&b, res.Totals)
	}

	if res.DirectInputs != nil {
		b.WriteString("\nSum of direct inputs per process:\n")
		writeSeries(&b, res.DirectInputs)
	}

	if res.Indices != nil {
		eyr, elr, esi := res.Indices.Formatted()
		b.WriteString("\nIndices:\n")
		fmt.Fprintf(&b, "  EYR: %s\n", eyr)
		fmt.Fprintf(&b, "  ELR: %s\n", elr)
		fmt.Fprintf(&b, "  ESI: %s\n", esi)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeSeries(b *strings.Builder, s *engine.Series) {
	if s.Len() == 0 {
		b.WriteString("  (none)\n")
		return
	}
	for i, name := range s.Names {
		fmt.Fprintf(b, "  %s: %.2e\n", norm.NFC.String(name), s.Values[i])
	}
}
