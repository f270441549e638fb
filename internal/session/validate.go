package session

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cuejson "cuelang.org/go/encoding/json"
)

// sessionSchema is the CUE definition a session record must satisfy. Matrix
// cells are deliberately unconstrained: DecodeJSON coerces non-numeric cells
// to unset, so a bad cell must not fail validation.
const sessionSchema = `
#Transformity: {
	value: number
	unit:  string
}

#Session: {
	matrix: {
		flows: [...string]
		processes: [...string]
		cells: [...[..._]]
	}
	units?: {[string]: string}
	transformities?: {[string]: #Transformity}
}
`

// ValidationError lists every schema problem found in a session record.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("session record is not valid: %s", strings.Join(e.Problems, "; "))
}

// Validate checks a raw JSON session record against the #Session schema.
// Every violation is collected into a single *ValidationError.
func Validate(data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(sessionSchema)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile session schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Session"))
	if err := def.Err(); err != nil {
		return fmt.Errorf("lookup session schema: %w", err)
	}

	expr, err := cuejson.Extract("session", data)
	if err != nil {
		return fmt.Errorf("parse session JSON: %w", err)
	}
	val := ctx.BuildExpr(expr)
	if err := val.Err(); err != nil {
		return fmt.Errorf("build session value: %w", err)
	}

	if err := def.Unify(val).Validate(cue.Concrete(true)); err != nil {
		var problems []string
		for _, e := range cueerrors.Errors(err) {
			problems = append(problems, e.Error())
		}
		return &ValidationError{Problems: problems}
	}
	return nil
}
