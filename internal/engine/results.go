package engine

import "fmt"

// Table is a (flow, process) numeric table, addressable by name. Produced by
// the total-emergy mode as the per-flow contribution matrix. The presentation
// collaborator slices it by process column for chart rendering.
type Table struct {
	Flows     []string
	Processes []string
	Values    [][]float64 // row-major: Values[flow][process]
}

// Value returns the cell for (flow, process), false if either name is absent.
func (t *Table) Value(flow, process string) (float64, bool) {
	i := indexOf(t.Flows, flow)
	j := indexOf(t.Processes, process)
	if i < 0 || j < 0 {
		return 0, false
	}
	return t.Values[i][j], true
}

// Column returns the per-flow values of one process column, in flow order.
func (t *Table) Column(process string) ([]float64, error) {
	j := indexOf(t.Processes, process)
	if j < 0 {
		return nil, fmt.Errorf("process %q not in contribution table", process)
	}
	col := make([]float64, len(t.Flows))
	for i := range t.Flows {
		col[i] = t.Values[i][j]
	}
	return col, nil
}

// Series is an ordered name -> value series (per-process totals or sums).
type Series struct {
	Names  []string
	Values []float64
}

// Get returns the value for a name, false if absent.
func (s *Series) Get(name string) (float64, bool) {
	i := indexOf(s.Names, name)
	if i < 0 {
		return 0, false
	}
	return s.Values[i], true
}

// Len returns the number of entries.
func (s *Series) Len() int { return len(s.Names) }

// IndexSet holds the three aggregate sustainability indices. The float64
// values (which may be ±Inf or NaN) are authoritative; Formatted is for
// display only.
type IndexSet struct {
	EYR float64
	ELR float64
	ESI float64
}

// Formatted returns the indices in fixed-precision scientific notation.
func (x IndexSet) Formatted() (eyr, elr, esi string) {
	return fmt.Sprintf("%.2e", x.EYR), fmt.Sprintf("%.2e", x.ELR), fmt.Sprintf("%.2e", x.ESI)
}

// Results is the bundle produced by one calculation run. It is replaced
// wholesale on every run and never mixes data from two runs. Only the fields
// for the run's mode are populated.
type Results struct {
	// RunToken uniquely identifies this run (UUIDv7 in production).
	RunToken string

	// Mode is the calculation mode that produced the bundle.
	Mode Mode

	// Summary is the ordered human-readable calculation log.
	Summary []string

	// Contributions and Totals are set by ModeTotalEmergy.
	Contributions *Table
	Totals        *Series

	// DirectInputs is set by ModeDirectInputs.
	DirectInputs *Series

	// Indices is set by ModeIndices.
	Indices *IndexSet
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}
