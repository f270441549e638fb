package transformity

import (
	"errors"
	"fmt"
	"strings"
)

// UnresolvedError reports flows for which no transformity could be found,
// neither as a manual override nor in the table. The calculation that
// requested resolution must abort.
type UnresolvedError struct {
	Flows []string
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("transformities not found for flows: %s", strings.Join(e.Flows, ", "))
}

// MalformedOverrideError reports manual-transformity parameter keys whose
// values did not parse as real numbers. Raised at the parameter-bag boundary
// before resolution is attempted; every malformed key is listed.
type MalformedOverrideError struct {
	Keys []string
}

func (e *MalformedOverrideError) Error() string {
	return fmt.Sprintf("malformed manual transformity values for: %s", strings.Join(e.Keys, ", "))
}

// IsUnresolved reports whether err is (or wraps) an UnresolvedError.
func IsUnresolved(err error) bool {
	var ue *UnresolvedError
	return errors.As(err, &ue)
}
