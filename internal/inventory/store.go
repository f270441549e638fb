package inventory

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"sync"
)

// DefaultTransformityUnit is used when a transformity is added without an
// explicit unit.
const DefaultTransformityUnit = "sej/unit"

// Transformity is one entry of the unit-emergy-value table.
type Transformity struct {
	Value float64 `json:"value" msgpack:"value"`
	Unit  string  `json:"unit" msgpack:"unit"`
}

// cellKey addresses one LCI matrix cell.
type cellKey struct {
	flow    string
	process string
}

// Store holds the LCI matrix, unit metadata, and transformity table for one
// session. The zero value is not usable; call NewStore.
type Store struct {
	mu sync.RWMutex

	flows     []string
	processes []string
	cells     map[cellKey]float64 // absent key = unset

	units          map[string]string
	transformities map[string]Transformity
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		cells:          make(map[cellKey]float64),
		units:          make(map[string]string),
		transformities: make(map[string]Transformity),
	}
}

// validateName trims a name and rejects empty-after-trim values.
func validateName(name, context string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("%s: %w", context, ErrEmptyName)
	}
	return trimmed, nil
}

// parseFinite parses a value string as a finite float64.
func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("value %q: %w", s, ErrBadNumber)
	}
	return v, nil
}

// AddFlow inserts a new input flow (matrix row). Every existing process gets
// an unset cell for the new flow.
func (s *Store) AddFlow(name, unit string) error {
	name, err := validateName(name, "input flow")
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if containsName(s.flows, name) {
		return fmt.Errorf("input flow %q: %w", name, ErrDuplicateName)
	}
	s.flows = append(s.flows, name)
	s.units[name] = strings.TrimSpace(unit)

	slog.Debug("flow added", "flow", name, "flows", len(s.flows), "processes", len(s.processes))
	return nil
}

// AddProcess inserts a new process/product (matrix column). Every existing
// flow gets an unset cell for the new process.
func (s *Store) AddProcess(name, unit string) error {
	name, err := validateName(name, "process/product")
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if containsName(s.processes, name) {
		return fmt.Errorf("process/product %q: %w", name, ErrDuplicateName)
	}
	s.processes = append(s.processes, name)
	s.units[name] = strings.TrimSpace(unit)

	slog.Debug("process added", "process", name, "flows", len(s.flows), "processes", len(s.processes))
	return nil
}

// SetValue overwrites the cell at (flow, process) with the parsed value.
// Both names must already exist; the value string must parse as a finite
// real number.
func (s *Store) SetValue(flow, process, value string) error {
	flow, err := validateName(flow, "input flow")
	if err != nil {
		return err
	}
	process, err = validateName(process, "process/product")
	if err != nil {
		return err
	}
	v, err := parseFinite(value)
	if err != nil {
		return fmt.Errorf("LCI cell [%s, %s]: %w", flow, process, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !containsName(s.flows, flow) {
		return fmt.Errorf("input flow %q: %w", flow, ErrUnknownName)
	}
	if !containsName(s.processes, process) {
		return fmt.Errorf("process/product %q: %w", process, ErrUnknownName)
	}
	s.cells[cellKey{flow, process}] = v
	return nil
}

// RemoveFlow deletes a flow row, its cells, and its unit entry. Other flows
// and all processes are untouched.
func (s *Store) RemoveFlow(name string) error {
	name, err := validateName(name, "input flow")
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexOfName(s.flows, name)
	if idx < 0 {
		return fmt.Errorf("input flow %q: %w", name, ErrUnknownName)
	}
	s.flows = append(s.flows[:idx], s.flows[idx+1:]...)
	for _, p := range s.processes {
		delete(s.cells, cellKey{name, p})
	}
	delete(s.units, name)

	slog.Debug("flow removed", "flow", name)
	return nil
}

// RemoveProcess deletes a process column, its cells, and its unit entry.
// Other processes and all flows are untouched.
func (s *Store) RemoveProcess(name string) error {
	name, err := validateName(name, "process/product")
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexOfName(s.processes, name)
	if idx < 0 {
		return fmt.Errorf("process/product %q: %w", name, ErrUnknownName)
	}
	s.processes = append(s.processes[:idx], s.processes[idx+1:]...)
	for _, f := range s.flows {
		delete(s.cells, cellKey{f, name})
	}
	delete(s.units, name)

	slog.Debug("process removed", "process", name)
	return nil
}

// AddTransformity inserts or overwrites the transformity for a flow name.
// Re-adding a name is edit semantics, not append. An empty unit defaults to
// DefaultTransformityUnit.
func (s *Store) AddTransformity(flow, value, unit string) error {
	flow, err := validateName(flow, "transformity flow")
	if err != nil {
		return err
	}
	v, err := parseFinite(value)
	if err != nil {
		return fmt.Errorf("transformity for %q: %w", flow, err)
	}

	unit = strings.TrimSpace(unit)
	if unit == "" {
		unit = DefaultTransformityUnit
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.transformities[flow] = Transformity{Value: v, Unit: unit}
	return nil
}

// RemoveTransformity deletes the transformity entry for a flow name.
func (s *Store) RemoveTransformity(flow string) error {
	flow, err := validateName(flow, "transformity flow")
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.transformities[flow]; !ok {
		return fmt.Errorf("transformity for %q: %w", flow, ErrUnknownName)
	}
	delete(s.transformities, flow)
	return nil
}

// ClearAll resets the matrix, units, and transformities to the empty state.
// The swap is atomic: no partial state is observable.
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.flows = nil
	s.processes = nil
	s.cells = make(map[cellKey]float64)
	s.units = make(map[string]string)
	s.transformities = make(map[string]Transformity)

	slog.Debug("store cleared")
}

// DenseMatrix returns the LCI matrix as a dense row-major float64 matrix
// with unset cells materialized as exactly 0.0, plus copies of the row
// (flow) and column (process) names. For numeric aggregation only - display
// paths must use Value to distinguish unset from zero.
func (s *Store) DenseMatrix() ([][]float64, []string, []string) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matrix := make([][]float64, len(s.flows))
	for i, f := range s.flows {
		row := make([]float64, len(s.processes))
		for j, p := range s.processes {
			row[j] = s.cells[cellKey{f, p}] // zero value covers unset
		}
		matrix[i] = row
	}
	return matrix, copyNames(s.flows), copyNames(s.processes)
}

// Value returns the cell at (flow, process) and whether it is set.
func (s *Store) Value(flow, process string) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.cells[cellKey{strings.TrimSpace(flow), strings.TrimSpace(process)}]
	return v, ok
}

// Unit returns the unit string for a flow or process name, empty if absent.
func (s *Store) Unit(name string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.units[strings.TrimSpace(name)]
}

// Transformity returns the table entry for a flow name and whether it exists.
func (s *Store) Transformity(flow string) (Transformity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.transformities[strings.TrimSpace(flow)]
	return t, ok
}

// Transformities returns a copy of the full transformity table.
func (s *Store) Transformities() map[string]Transformity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]Transformity, len(s.transformities))
	for k, v := range s.transformities {
		out[k] = v
	}
	return out
}

// Flows returns the flow names in insertion order.
func (s *Store) Flows() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyNames(s.flows)
}

// Processes returns the process names in insertion order.
func (s *Store) Processes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyNames(s.processes)
}

// HasFlows reports whether at least one input flow exists.
func (s *Store) HasFlows() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.flows) > 0
}

// IsEmpty reports whether both matrix axes are empty.
func (s *Store) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.flows) == 0 && len(s.processes) == 0
}

func containsName(names []string, name string) bool {
	return indexOfName(names, name) >= 0
}

func indexOfName(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

func copyNames(names []string) []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}
