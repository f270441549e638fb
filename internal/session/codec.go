package session

import (
	"encoding/json"
	"fmt"

	"github.com/emergylab/emergia/internal/inventory"
)

// EncodeJSON renders a snapshot as the indented JSON session record.
func EncodeJSON(snap inventory.Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(snap, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	return append(data, '\n'), nil
}

// jsonSnapshot is the tolerant wire form: matrix cells decode as any so a
// malformed cell (string, bool, object) coerces to unset instead of failing
// the whole load.
type jsonSnapshot struct {
	Matrix struct {
		Flows     []string `json:"flows"`
		Processes []string `json:"processes"`
		Cells     [][]any  `json:"cells"`
	} `json:"matrix"`
	Units          map[string]string                 `json:"units"`
	Transformities map[string]inventory.Transformity `json:"transformities"`
}

// DecodeJSON parses a JSON session record into a snapshot. Cells that are
// not numbers become unset. Structural validity is the caller's concern;
// run Validate first for schema-level diagnostics.
func DecodeJSON(data []byte) (inventory.Snapshot, error) {
	var wire jsonSnapshot
	if err := json.Unmarshal(data, &wire); err != nil {
		return inventory.Snapshot{}, fmt.Errorf("decode session: %w", err)
	}

	cells := make([][]*float64, len(wire.Matrix.Cells))
	for i, row := range wire.Matrix.Cells {
		out := make([]*float64, len(row))
		for j, cell := range row {
			if f, ok := cell.(float64); ok {
				f := f
				out[j] = &f
			}
			// Anything else (null, string, bool, object) is unset.
		}
		cells[i] = out
	}

	snap := inventory.Snapshot{
		Units:          wire.Units,
		Transformities: wire.Transformities,
	}
	snap.Matrix = inventory.Matrix{
		Flows:     wire.Matrix.Flows,
		Processes: wire.Matrix.Processes,
		Cells:     cells,
	}
	return snap, nil
}
