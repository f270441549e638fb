package harness

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/emergylab/emergia/internal/engine"
	"github.com/emergylab/emergia/internal/inventory"
	"github.com/emergylab/emergia/internal/report"
	"github.com/emergylab/emergia/internal/transformity"
)

// defaultRunToken is used when a scenario does not fix its own token.
const defaultRunToken = "scenario-run"

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall scenario success: the calculation behaved as
	// the expectation describes.
	Pass bool `json:"pass"`

	// Errors contains expectation failures. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Report is the rendered text report. Empty when the scenario expects
	// (and gets) a calculation failure.
	Report string `json:"report,omitempty"`

	// Calc is the results bundle of a successful calculation, nil otherwise.
	Calc *engine.Results `json:"-"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{Pass: true}
}

// AddError adds an expectation failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh store for isolation. An error return
// means the scenario itself is defective (bad session, bad step, unknown
// mode); expectation mismatches are reported through Result.Errors instead.
func Run(scenario *Scenario) (*Result, error) {
	st := inventory.NewStore()
	if scenario.Session != nil {
		if err := st.Restore(*scenario.Session); err != nil {
			return nil, fmt.Errorf("failed to restore inline session: %w", err)
		}
	}

	for i, step := range scenario.Steps {
		if err := applyStep(st, step); err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i, step.Op, err)
		}
	}

	mode, err := engine.ParseMode(scenario.Calc.Mode)
	if err != nil {
		return nil, fmt.Errorf("calc: %w", err)
	}

	result := NewResult()

	req, err := engine.ParseParams(mode, scenario.Calc.Params, st.Flows())
	if err != nil {
		evaluateFailure(scenario, err, result)
		return result, nil
	}

	token := scenario.RunToken
	if token == "" {
		token = defaultRunToken
	}
	eng := engine.New(st, engine.NewFixedGenerator(token))

	res, err := eng.Calculate(req)
	if err != nil {
		evaluateFailure(scenario, err, result)
		return result, nil
	}
	result.Calc = res

	if scenario.Expect.Error != "" {
		result.AddError(fmt.Sprintf("expected %s failure, but the calculation succeeded", scenario.Expect.Error))
		return result, nil
	}

	evaluateValues(scenario, res, result)

	var rendered bytes.Buffer
	if err := report.Render(&rendered, res, st); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	result.Report = rendered.String()

	return result, nil
}

// applyStep performs one edit operation against the store.
func applyStep(st *inventory.Store, step Step) error {
	switch step.Op {
	case "add_flow":
		return st.AddFlow(step.Name, step.Unit)
	case "add_process":
		return st.AddProcess(step.Name, step.Unit)
	case "set_value":
		return st.SetValue(step.Flow, step.Process, step.Value)
	case "add_transformity":
		return st.AddTransformity(step.Flow, step.Value, step.Unit)
	case "remove_flow":
		return st.RemoveFlow(step.Name)
	case "remove_process":
		return st.RemoveProcess(step.Name)
	case "remove_transformity":
		return st.RemoveTransformity(step.Flow)
	case "clear":
		st.ClearAll()
		return nil
	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}
}

// evaluateFailure checks a calculation failure against the expected class.
func evaluateFailure(scenario *Scenario, err error, result *Result) {
	expected := scenario.Expect.Error
	if expected == "" {
		result.AddError(fmt.Sprintf("calculation failed unexpectedly: %v", err))
		return
	}
	if !matchesErrorClass(expected, err) {
		result.AddError(fmt.Sprintf("expected %s failure, got: %v", expected, err))
	}
}

// matchesErrorClass reports whether err belongs to the named failure class.
func matchesErrorClass(class string, err error) bool {
	switch class {
	case ExpectUnresolvedTransformity:
		return transformity.IsUnresolved(err)
	case ExpectInvalidParams:
		var malformed *transformity.MalformedOverrideError
		return engine.IsParamError(err) || errors.As(err, &malformed)
	case ExpectEmptyMatrix:
		return engine.IsCalcError(err, engine.ErrCodeEmptyMatrix)
	default:
		return false
	}
}

// evaluateValues checks value and summary expectations against the bundle.
func evaluateValues(scenario *Scenario, res *engine.Results, result *Result) {
	e := scenario.Expect

	for name, want := range e.Totals {
		checkSeries(result, "totals", res.Totals, name, want)
	}
	for name, want := range e.DirectInputs {
		checkSeries(result, "direct_inputs", res.DirectInputs, name, want)
	}

	if e.Indices != nil {
		if res.Indices == nil {
			result.AddError("expected indices, but the bundle has none")
		} else {
			eyr, elr, esi := res.Indices.Formatted()
			checkIndex(result, "EYR", e.Indices.EYR, eyr)
			checkIndex(result, "ELR", e.Indices.ELR, elr)
			checkIndex(result, "ESI", e.Indices.ESI, esi)
		}
	}

	for _, want := range e.SummaryContains {
		if !summaryContains(res.Summary, want) {
			result.AddError(fmt.Sprintf("summary does not contain %q", want))
		}
	}
}

func checkSeries(result *Result, kind string, s *engine.Series, name string, want float64) {
	if s == nil {
		result.AddError(fmt.Sprintf("%s: bundle has no series", kind))
		return
	}
	got, ok := s.Get(name)
	if !ok {
		result.AddError(fmt.Sprintf("%s: no entry for %q", kind, name))
		return
	}
	if !almostEqual(got, want) {
		result.AddError(fmt.Sprintf("%s[%s]: got %.6e, want %.6e", kind, name, got, want))
	}
}

func checkIndex(result *Result, name, want, got string) {
	if want != "" && want != got {
		result.AddError(fmt.Sprintf("%s: got %s, want %s", name, got, want))
	}
}

func summaryContains(summary []string, substr string) bool {
	for _, line := range summary {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

// almostEqual compares floats with a relative tolerance.
func almostEqual(a, b float64) bool {
	if a == b {
		return true
	}
	diff := math.Abs(a - b)
	scale := math.Max(math.Abs(a), math.Abs(b))
	return diff <= 1e-9*scale
}
