package engine

import (
	"fmt"
	"math"
)

// indicesGuidance is appended to every indices summary. General reading aids
// only; interpretation depends on the analyzed system.
var indicesGuidance = []string{
	"General interpretations (context-dependent):",
	"- EYR: values above ~2-5 usually indicate a larger net contribution to the economy.",
	"- ELR: values below ~2-3 usually indicate lower environmental stress relative to renewable emergy.",
	"- ESI: values above ~5-10 usually indicate better long-term sustainability potential.",
}

// calcIndices computes EYR, ELR, and ESI from the scalar emergy components.
//
// The ±Inf and NaN branches below mirror the reference formulas exactly,
// including the combinations that leave ESI undefined. Do not simplify them.
func (e *Engine) calcIndices(req Request, res *Results) error {
	in := req.Indices
	if in == nil {
		return &ParamError{Violations: []string{"indices mode requires R, N, and F"}}
	}
	if err := validateIndicesInput(in); err != nil {
		return err
	}

	r, n, f := in.R, in.N, in.F

	var y float64
	if in.Y != nil {
		y = *in.Y
		res.Summary = append(res.Summary, fmt.Sprintf("Yield (Y) supplied by caller: %.2e", y))
	} else {
		y = r + n + f
		res.Summary = append(res.Summary, fmt.Sprintf("Yield (Y) computed as R+N+F: %.2e", y))
	}
	res.Summary = append(res.Summary, fmt.Sprintf("Index inputs: R=%.2e, N=%.2e, F=%.2e, Y=%.2e", r, n, f, y))

	var eyr float64
	switch {
	case f != 0:
		eyr = y / f
	case y > 0:
		eyr = math.Inf(1)
	default:
		eyr = math.NaN()
	}

	var elr float64
	switch {
	case r != 0:
		elr = (n + f) / r
	case n+f > 0:
		elr = math.Inf(1)
	default:
		elr = 0
	}

	esi := math.NaN()
	if elr != 0 && !math.IsNaN(eyr) && !math.IsNaN(elr) && !math.IsInf(elr, 1) {
		esi = eyr / elr
	} else if elr == 0 && eyr > 0 && !math.IsNaN(eyr) {
		esi = math.Inf(1)
	}

	res.Indices = &IndexSet{EYR: eyr, ELR: elr, ESI: esi}

	eyrStr, elrStr, esiStr := res.Indices.Formatted()
	res.Summary = append(res.Summary,
		"EYR (Emergy Yield Ratio): "+eyrStr,
		"ELR (Environmental Loading Ratio): "+elrStr,
		"ESI (Emergy Sustainability Index): "+esiStr,
	)
	res.Summary = append(res.Summary, indicesGuidance...)
	return nil
}

// validateIndicesInput enforces non-negative finite components, collecting
// every violation. Typed-request callers bypass ParseParams, so the check
// lives here as well.
func validateIndicesInput(in *IndicesInput) error {
	var violations []string

	check := func(name string, v float64) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			violations = append(violations, fmt.Sprintf("%s must be a finite number", name))
		} else if v < 0 {
			violations = append(violations, fmt.Sprintf("%s must be non-negative (got %v)", name, v))
		}
	}
	check("renewable (R)", in.R)
	check("non-renewable (N)", in.N)
	check("purchased (F)", in.F)
	if in.Y != nil {
		check("yield (Y)", *in.Y)
	}

	if len(violations) > 0 {
		return &ParamError{Violations: violations}
	}
	return nil
}
