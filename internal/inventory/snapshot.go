package inventory

import (
	"fmt"
	"math"
	"strings"
)

// Matrix is the serialized form of the LCI matrix: row-major cells with nil
// marking an unset entry.
type Matrix struct {
	Flows     []string     `json:"flows" msgpack:"flows"`
	Processes []string     `json:"processes" msgpack:"processes"`
	Cells     [][]*float64 `json:"cells" msgpack:"cells"`
}

// Snapshot is the plain structured record consumed and produced by the
// persistence collaborator: the matrix, the name->unit mapping, and the
// transformity table.
type Snapshot struct {
	Matrix         Matrix                  `json:"matrix" msgpack:"matrix"`
	Units          map[string]string       `json:"units" msgpack:"units"`
	Transformities map[string]Transformity `json:"transformities" msgpack:"transformities"`
}

// Snapshot returns a deep copy of the full store state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cells := make([][]*float64, len(s.flows))
	for i, f := range s.flows {
		row := make([]*float64, len(s.processes))
		for j, p := range s.processes {
			if v, ok := s.cells[cellKey{f, p}]; ok {
				v := v
				row[j] = &v
			}
		}
		cells[i] = row
	}

	units := make(map[string]string, len(s.units))
	for k, v := range s.units {
		units[k] = v
	}
	tfs := make(map[string]Transformity, len(s.transformities))
	for k, v := range s.transformities {
		tfs[k] = v
	}

	return Snapshot{
		Matrix: Matrix{
			Flows:     copyNames(s.flows),
			Processes: copyNames(s.processes),
			Cells:     cells,
		},
		Units:          units,
		Transformities: tfs,
	}
}

// Restore replaces the store state with the snapshot's. Row and column
// identity (names and order) is reconstructed exactly. Malformed numeric
// cells (nil, NaN, Inf) coerce to unset rather than failing the load; ragged
// cell rows are tolerated the same way. Structural problems - empty or
// duplicate axis names - abort the restore with the store unchanged.
//
// The swap is atomic: the new state is fully built before it replaces the
// old one.
func (s *Store) Restore(snap Snapshot) error {
	flows, err := restoreAxis(snap.Matrix.Flows, "input flow")
	if err != nil {
		return err
	}
	processes, err := restoreAxis(snap.Matrix.Processes, "process/product")
	if err != nil {
		return err
	}

	cells := make(map[cellKey]float64)
	for i, f := range flows {
		if i >= len(snap.Matrix.Cells) {
			break
		}
		row := snap.Matrix.Cells[i]
		for j, p := range processes {
			if j >= len(row) {
				break
			}
			v := row[j]
			if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
				continue // coerce to unset
			}
			cells[cellKey{f, p}] = *v
		}
	}

	units := make(map[string]string, len(snap.Units))
	for k, v := range snap.Units {
		if name := strings.TrimSpace(k); name != "" {
			units[name] = strings.TrimSpace(v)
		}
	}

	tfs := make(map[string]Transformity, len(snap.Transformities))
	for k, v := range snap.Transformities {
		name := strings.TrimSpace(k)
		if name == "" || math.IsNaN(v.Value) || math.IsInf(v.Value, 0) {
			continue
		}
		unit := strings.TrimSpace(v.Unit)
		if unit == "" {
			unit = DefaultTransformityUnit
		}
		tfs[name] = Transformity{Value: v.Value, Unit: unit}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.flows = flows
	s.processes = processes
	s.cells = cells
	s.units = units
	s.transformities = tfs
	return nil
}

// restoreAxis validates and trims one axis name list from a snapshot.
func restoreAxis(names []string, context string) ([]string, error) {
	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		name := strings.TrimSpace(n)
		if name == "" {
			return nil, fmt.Errorf("%s in snapshot: %w", context, ErrEmptyName)
		}
		if seen[name] {
			return nil, fmt.Errorf("%s %q in snapshot: %w", context, name, ErrDuplicateName)
		}
		seen[name] = true
		out = append(out, name)
	}
	return out, nil
}
