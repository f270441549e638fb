package transformity

import (
	"fmt"

	"github.com/emergylab/emergia/internal/inventory"
)

// Override is one manually supplied transformity for a single flow. Manual
// values take precedence over the session's transformity table.
type Override struct {
	Flow  string
	Value float64
}

// Resolution holds the final per-flow transformity values plus a log of
// which source supplied each one.
type Resolution struct {
	// Values maps flow name to the transformity to use.
	Values map[string]float64

	// Log records one human-readable line per resolved flow, in flow order.
	Log []string
}

// Resolve produces the transformity to use for every flow in flows.
//
// Overrides win over table entries. A later override for the same flow
// replaces an earlier one (edit semantics, matching the table itself).
// If any flow resolves nowhere, Resolve fails with an *UnresolvedError
// naming every such flow and returns no partial result.
//
// An empty flow list is trivially resolved: empty Resolution, nil error.
func Resolve(flows []string, overrides []Override, table map[string]inventory.Transformity) (Resolution, error) {
	res := Resolution{Values: make(map[string]float64, len(flows))}

	manual := make(map[string]float64, len(overrides))
	for _, o := range overrides {
		manual[o.Flow] = o.Value
	}

	var unresolved []string
	for _, flow := range flows {
		switch {
		case hasKey(manual, flow):
			res.Values[flow] = manual[flow]
			res.Log = append(res.Log, fmt.Sprintf("using manual transformity for %q: %.2e", flow, manual[flow]))
		case hasTableEntry(table, flow):
			res.Values[flow] = table[flow].Value
			res.Log = append(res.Log, fmt.Sprintf("using table transformity for %q: %.2e", flow, table[flow].Value))
		default:
			unresolved = append(unresolved, flow)
		}
	}

	if len(unresolved) > 0 {
		return Resolution{}, &UnresolvedError{Flows: unresolved}
	}
	return res, nil
}

func hasKey(m map[string]float64, k string) bool {
	_, ok := m[k]
	return ok
}

func hasTableEntry(m map[string]inventory.Transformity, k string) bool {
	_, ok := m[k]
	return ok
}
