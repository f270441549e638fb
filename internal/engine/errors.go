package engine

import (
	"errors"
	"fmt"
	"strings"
)

// CalcErrorCode categorizes calculation failures.
type CalcErrorCode string

const (
	// ErrCodeEmptyMatrix indicates a total-emergy run against a matrix with
	// neither flows nor processes.
	ErrCodeEmptyMatrix CalcErrorCode = "EMPTY_MATRIX"

	// ErrCodeDimensionMismatch indicates the transformity vector length does
	// not match the matrix row count. This is an internal-consistency defect:
	// the resolver is always given the matrix's own row names, so the check
	// is defensive.
	ErrCodeDimensionMismatch CalcErrorCode = "DIMENSION_MISMATCH"

	// ErrCodeBadMode indicates an unsupported calculation mode.
	ErrCodeBadMode CalcErrorCode = "BAD_MODE"
)

// CalcError is a calculation failure with a machine-readable code.
type CalcError struct {
	Code    CalcErrorCode
	Message string
}

func (e *CalcError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsCalcError reports whether err is (or wraps) a CalcError with the code.
func IsCalcError(err error, code CalcErrorCode) bool {
	var ce *CalcError
	if errors.As(err, &ce) {
		return ce.Code == code
	}
	return false
}

// ParamError reports one or more invalid calculation parameters. Every
// violation found is listed; nothing is computed.
type ParamError struct {
	Violations []string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid parameters: %s", strings.Join(e.Violations, "; "))
}

// IsParamError reports whether err is (or wraps) a ParamError.
func IsParamError(err error) bool {
	var pe *ParamError
	return errors.As(err, &pe)
}
