package engine

import "fmt"

// Mode selects one of the supported calculation modes.
type Mode string

const (
	// ModeTotalEmergy computes per-process total emergy from the LCI matrix
	// and resolved transformities.
	ModeTotalEmergy Mode = "total_emergy"

	// ModeDirectInputs sums raw physical input quantities per process,
	// without applying transformities.
	ModeDirectInputs Mode = "direct_inputs_sum"

	// ModeIndices computes the EYR/ELR/ESI aggregate indices from scalar
	// emergy components.
	ModeIndices Mode = "emergy_indices"
)

// displayNames maps each mode to the name used in report headers.
var displayNames = map[Mode]string{
	ModeTotalEmergy:  "Total Emergy per Process",
	ModeDirectInputs: "Sum of Direct Inputs",
	ModeIndices:      "Emergy Indices (EYR, ELR, ESI)",
}

// modeAliases accepts the short CLI spellings alongside canonical tokens.
var modeAliases = map[string]Mode{
	"total":             ModeTotalEmergy,
	"total_emergy":      ModeTotalEmergy,
	"direct":            ModeDirectInputs,
	"direct_inputs_sum": ModeDirectInputs,
	"indices":           ModeIndices,
	"emergy_indices":    ModeIndices,
}

// ParseMode converts a mode token (canonical or CLI alias) to a Mode.
func ParseMode(s string) (Mode, error) {
	if m, ok := modeAliases[s]; ok {
		return m, nil
	}
	return "", fmt.Errorf("unknown calculation mode %q (want total, direct, or indices)", s)
}

// DisplayName returns the human-readable name for report headers.
func (m Mode) DisplayName() string {
	if name, ok := displayNames[m]; ok {
		return name
	}
	return string(m)
}

// valid reports whether m is one of the supported modes.
func (m Mode) valid() bool {
	_, ok := displayNames[m]
	return ok
}
