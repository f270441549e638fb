package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/emergylab/emergia/internal/inventory"
)

// Scenario defines a conformance test scenario: starting state, edit steps,
// one calculation, and the expected outcome.
type Scenario struct {
	// Name uniquely identifies this scenario. Golden files are keyed by it.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Session is an optional inline snapshot restored into the store before
	// the steps run. Cells use null for unset entries.
	Session *inventory.Snapshot `yaml:"session,omitempty"`

	// Steps are edit operations applied to the store in order.
	Steps []Step `yaml:"steps,omitempty"`

	// Calc is the calculation to run after the steps.
	Calc CalcStep `yaml:"calc"`

	// Expect describes the expected outcome.
	Expect Expectation `yaml:"expect"`

	// RunToken is an optional fixed run token for deterministic reports.
	// If empty, defaults to "scenario-run".
	RunToken string `yaml:"run_token,omitempty"`
}

// Step is a single edit operation against the inventory store.
type Step struct {
	// Op selects the operation: add_flow, add_process, set_value,
	// add_transformity, remove_flow, remove_process, remove_transformity,
	// or clear.
	Op string `yaml:"op"`

	// Name is the axis member name (add_flow, add_process, remove_*).
	Name string `yaml:"name,omitempty"`

	// Unit is the optional unit (add_flow, add_process, add_transformity).
	Unit string `yaml:"unit,omitempty"`

	// Flow and Process address a cell (set_value) or a transformity (Flow).
	Flow    string `yaml:"flow,omitempty"`
	Process string `yaml:"process,omitempty"`

	// Value is the numeric text for set_value and add_transformity.
	Value string `yaml:"value,omitempty"`
}

// CalcStep names the calculation mode and its string parameters.
type CalcStep struct {
	Mode   string            `yaml:"mode"`
	Params map[string]string `yaml:"params,omitempty"`
}

// Expectation describes the expected outcome of the calculation. All value
// checks are subset matches: only listed names are asserted.
type Expectation struct {
	// Totals asserts per-process total emergy values.
	Totals map[string]float64 `yaml:"totals,omitempty"`

	// DirectInputs asserts per-process direct input sums.
	DirectInputs map[string]float64 `yaml:"direct_inputs,omitempty"`

	// Indices asserts the formatted index values. Strings so that "+Inf"
	// and "NaN" outcomes are expressible in YAML.
	Indices *IndexExpect `yaml:"indices,omitempty"`

	// SummaryContains asserts substrings that must appear in the summary.
	SummaryContains []string `yaml:"summary_contains,omitempty"`

	// Error names the expected failure class instead of a successful run:
	// unresolved_transformity, invalid_params, or empty_matrix.
	Error string `yaml:"error,omitempty"`
}

// IndexExpect holds expected index values in their fixed-precision display
// form (e.g. "7.00e+00", "+Inf", "NaN").
type IndexExpect struct {
	EYR string `yaml:"eyr"`
	ELR string `yaml:"elr"`
	ESI string `yaml:"esi"`
}

// Expected failure classes.
const (
	ExpectUnresolvedTransformity = "unresolved_transformity"
	ExpectInvalidParams          = "invalid_params"
	ExpectEmptyMatrix            = "empty_matrix"
)

// stepOps are the recognized step operations.
var stepOps = map[string]bool{
	"add_flow":            true,
	"add_process":         true,
	"set_value":           true,
	"add_transformity":    true,
	"remove_flow":         true,
	"remove_process":      true,
	"remove_transformity": true,
	"clear":               true,
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "expects:" vs "expect:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Calc.Mode == "" {
		return fmt.Errorf("calc.mode is required")
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}

	e := &s.Expect
	hasValueExpect := len(e.Totals) > 0 || len(e.DirectInputs) > 0 ||
		e.Indices != nil || len(e.SummaryContains) > 0
	if e.Error == "" && !hasValueExpect {
		return fmt.Errorf("expect must assert values, summary lines, or an error")
	}
	if e.Error != "" && hasValueExpect {
		return fmt.Errorf("expect cannot combine an error with value assertions")
	}
	switch e.Error {
	case "", ExpectUnresolvedTransformity, ExpectInvalidParams, ExpectEmptyMatrix:
	default:
		return fmt.Errorf("unknown expected error class %q", e.Error)
	}

	return nil
}

// validateStep validates a single step based on its operation.
func validateStep(index int, step *Step) error {
	if !stepOps[step.Op] {
		return fmt.Errorf("steps[%d]: unknown op %q", index, step.Op)
	}

	switch step.Op {
	case "add_flow", "add_process", "remove_flow", "remove_process":
		if step.Name == "" {
			return fmt.Errorf("steps[%d]: name is required for %s", index, step.Op)
		}
	case "set_value":
		if step.Flow == "" || step.Process == "" {
			return fmt.Errorf("steps[%d]: flow and process are required for set_value", index)
		}
	case "add_transformity", "remove_transformity":
		if step.Flow == "" {
			return fmt.Errorf("steps[%d]: flow is required for %s", index, step.Op)
		}
	}

	return nil
}
