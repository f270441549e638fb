package engine

// calcDirectInputs sums raw physical input quantities per process. Empty
// axes are not errors: the result is zero sums (or an empty series) with an
// explanatory summary line.
func (e *Engine) calcDirectInputs(res *Results) error {
	matrix, flows, processes := e.store.DenseMatrix()

	switch {
	case len(flows) == 0 && len(processes) == 0:
		res.DirectInputs = &Series{}
		res.Summary = append(res.Summary, "LCI matrix is completely empty; sum of direct inputs is zero.")
		return nil

	case len(flows) == 0:
		res.DirectInputs = zeroSeries(processes)
		res.Summary = append(res.Summary, "LCI matrix has no input flows; sum of direct inputs is zero.")
		return nil
	}

	sums := make([]float64, len(processes))
	for i := range flows {
		for j := range processes {
			sums[j] += matrix[i][j]
		}
	}

	res.DirectInputs = &Series{Names: processes, Values: sums}
	res.Summary = append(res.Summary, "Sum of direct inputs per process calculated.")
	return nil
}
