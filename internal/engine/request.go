package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/emergylab/emergia/internal/transformity"
)

// OverrideKeyPrefix prefixes manual-transformity parameter keys in the flat
// string parameter bag: "transformity_" + sanitized flow name.
const OverrideKeyPrefix = "transformity_"

// keySanitizer makes a flow name usable as a parameter-key token.
var keySanitizer = strings.NewReplacer(" ", "_", ".", "_")

// SanitizeFlowKey returns the parameter-key token for a flow name, with
// spaces and periods replaced by underscores.
func SanitizeFlowKey(flow string) string {
	return keySanitizer.Replace(flow)
}

// OverrideKey returns the full parameter-bag key carrying a manual
// transformity for a flow.
func OverrideKey(flow string) string {
	return OverrideKeyPrefix + SanitizeFlowKey(flow)
}

// IndicesInput carries the scalar emergy components for ModeIndices.
// Y is optional; when nil the yield defaults to R+N+F.
type IndicesInput struct {
	R float64
	N float64
	F float64
	Y *float64
}

// Request is a typed calculation request. Overrides replace the loosely
// typed parameter-bag convention inside the core; ParseParams converts the
// untrusted flat bag supplied by outer collaborators into a Request.
type Request struct {
	Mode      Mode
	Overrides []transformity.Override
	Indices   *IndicesInput
}

// ParseParams builds a Request from a flat, untrusted string parameter bag.
//
// For ModeTotalEmergy, each flow name in flows is checked for a manual
// override under OverrideKey(flow). Values that fail to parse abort with a
// *transformity.MalformedOverrideError listing every malformed key.
//
// For ModeIndices, R, N, and F are required, Y optional; every absence,
// parse failure, or negative value is collected into a single *ParamError.
func ParseParams(mode Mode, params map[string]string, flows []string) (Request, error) {
	req := Request{Mode: mode}

	switch mode {
	case ModeTotalEmergy:
		overrides, err := parseOverrides(params, flows)
		if err != nil {
			return Request{}, err
		}
		req.Overrides = overrides

	case ModeIndices:
		in, err := parseIndicesInput(params)
		if err != nil {
			return Request{}, err
		}
		req.Indices = in

	case ModeDirectInputs:
		// No parameters.

	default:
		return Request{}, &CalcError{Code: ErrCodeBadMode, Message: fmt.Sprintf("unsupported mode %q", mode)}
	}

	return req, nil
}

func parseOverrides(params map[string]string, flows []string) ([]transformity.Override, error) {
	var overrides []transformity.Override
	var malformed []string

	for _, flow := range flows {
		key := OverrideKey(flow)
		raw, ok := params[key]
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			malformed = append(malformed, key)
			continue
		}
		overrides = append(overrides, transformity.Override{Flow: flow, Value: v})
	}

	if len(malformed) > 0 {
		return nil, &transformity.MalformedOverrideError{Keys: malformed}
	}
	return overrides, nil
}

func parseIndicesInput(params map[string]string) (*IndicesInput, error) {
	var violations []string

	parse := func(key, display string, required bool) (float64, bool) {
		raw, ok := params[key]
		if !ok || strings.TrimSpace(raw) == "" {
			if required {
				violations = append(violations, fmt.Sprintf("%s is required", display))
			}
			return 0, false
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			violations = append(violations, fmt.Sprintf("%s value %q is not numeric", display, raw))
			return 0, false
		}
		if v < 0 {
			violations = append(violations, fmt.Sprintf("%s value %q must be non-negative", display, raw))
			return 0, false
		}
		return v, true
	}

	in := &IndicesInput{}
	in.R, _ = parse("R", "renewable (R)", true)
	in.N, _ = parse("N", "non-renewable (N)", true)
	in.F, _ = parse("F", "purchased (F)", true)
	if y, ok := parse("Y", "yield (Y)", false); ok {
		in.Y = &y
	}

	if len(violations) > 0 {
		return nil, &ParamError{Violations: violations}
	}
	return in, nil
}
