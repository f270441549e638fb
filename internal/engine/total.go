package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/emergylab/emergia/internal/transformity"
)

// calcTotalEmergy computes contribution[flow, process] = lci * transformity
// and the per-process totals.
func (e *Engine) calcTotalEmergy(req Request, res *Results) error {
	matrix, flows, processes := e.store.DenseMatrix()

	if len(flows) == 0 && len(processes) == 0 {
		return &CalcError{Code: ErrCodeEmptyMatrix, Message: "LCI matrix has no data; add processes and flows first"}
	}

	if len(flows) == 0 {
		// Structure without flows to weight: a valid all-zero result.
		res.Contributions = &Table{Processes: processes}
		res.Totals = zeroSeries(processes)
		res.Summary = append(res.Summary, "LCI has no input flows; resulting emergies are zero.")
		return nil
	}

	resolution, err := transformity.Resolve(flows, req.Overrides, e.store.Transformities())
	if err != nil {
		return err
	}
	res.Summary = append(res.Summary, resolution.Log...)

	// The resolver was given the matrix's own row names, so a gap here is an
	// internal defect; report it instead of indexing blind.
	if len(resolution.Values) != len(flows) {
		return &CalcError{
			Code:    ErrCodeDimensionMismatch,
			Message: fmt.Sprintf("LCI matrix has %d flows but %d transformities resolved", len(flows), len(resolution.Values)),
		}
	}
	vector := make([]float64, len(flows))
	for i, f := range flows {
		v, ok := resolution.Values[f]
		if !ok {
			return &CalcError{
				Code:    ErrCodeDimensionMismatch,
				Message: fmt.Sprintf("no resolved transformity for flow %q", f),
			}
		}
		vector[i] = v
	}

	contributions := make([][]float64, len(flows))
	totals := make([]float64, len(processes))
	for i := range flows {
		row := make([]float64, len(processes))
		for j := range processes {
			row[j] = matrix[i][j] * vector[i]
			totals[j] += row[j]
		}
		contributions[i] = row
	}

	res.Contributions = &Table{Flows: flows, Processes: processes, Values: contributions}
	res.Totals = &Series{Names: processes, Values: totals}
	res.Summary = append(res.Summary,
		"Total emergy per process calculated.",
		"Final transformities (manual and table): "+formatVector(flows, resolution.Values),
	)
	return nil
}

// formatVector renders the final per-flow transformities for the summary log
// in a stable order.
func formatVector(flows []string, values map[string]float64) string {
	sorted := make([]string, len(flows))
	copy(sorted, flows)
	sort.Strings(sorted)

	parts := make([]string, 0, len(sorted))
	for _, f := range sorted {
		parts = append(parts, fmt.Sprintf("%s=%.2e", f, values[f]))
	}
	return strings.Join(parts, ", ")
}

func zeroSeries(names []string) *Series {
	return &Series{Names: names, Values: make([]float64, len(names))}
}
