package inventory

import "errors"

// Validation errors reported by store mutations. All are terminal for the
// attempted operation only: the store is left unchanged.
var (
	// ErrEmptyName indicates a flow or process name that is empty after
	// trimming surrounding whitespace.
	ErrEmptyName = errors.New("name is empty")

	// ErrDuplicateName indicates a flow or process that already exists on
	// its axis.
	ErrDuplicateName = errors.New("name already exists")

	// ErrUnknownName indicates a referenced flow or process that is not
	// present in the matrix (or a transformity entry that does not exist).
	ErrUnknownName = errors.New("name not found")

	// ErrBadNumber indicates a value string that does not parse as a
	// finite real number.
	ErrBadNumber = errors.New("not a finite number")
)
