package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/emergylab/emergia/internal/session"
)

// ValidationResult holds session file validation results.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Problems []string `json:"problems,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file.json>",
		Short: "Validate a session file against the session schema",
		Long: `Validate a JSON session file against the embedded session schema.

Checks structure only: matrix axes must be string lists, transformities must
carry a numeric value and a unit. Individual matrix cells are not constrained
here since loading coerces non-numeric cells to unset.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	data, err := os.ReadFile(path)
	if err != nil {
		return failWith(formatter, &IOError{Op: "read session file", Path: path, Err: err})
	}

	err = session.Validate(data)
	if err == nil {
		if formatter.Format == "json" {
			return formatter.Success(ValidationResult{Valid: true})
		}
		fmt.Fprintln(formatter.Writer, "✓ session file valid")
		return nil
	}

	var ve *session.ValidationError
	if !errors.As(err, &ve) {
		// Not even parseable JSON.
		_ = formatter.Error(ErrCodeSchema, err.Error(), nil)
		return WrapExitError(ExitFailure, ErrCodeSchema, err)
	}

	if formatter.Format == "json" {
		result := ValidationResult{Valid: false, Problems: ve.Problems}
		_ = formatter.Error(ErrCodeSchema, ve.Error(), result)
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d problem(s)", len(ve.Problems)))
	}

	fmt.Fprintln(formatter.Writer, "✗ session file invalid")
	fmt.Fprintln(formatter.Writer)
	for _, p := range ve.Problems {
		fmt.Fprintf(formatter.Writer, "  %s\n", p)
	}
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d problem(s)", len(ve.Problems)))
}
