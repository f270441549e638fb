package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/emergylab/emergia/internal/engine"
	"github.com/emergylab/emergia/internal/session"
	"github.com/emergylab/emergia/internal/transformity"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // successful execution
	ExitFailure      = 1 // calculation or validation failure
	ExitCommandError = 2 // command error (bad flags, missing files, unreadable database)
)

// Machine-readable error codes used in CLI responses.
const (
	ErrCodeIO           = "E_IO"           // file or database access failure
	ErrCodeSchema       = "E_SCHEMA"       // session record failed schema validation
	ErrCodeParams       = "E_PARAMS"       // invalid calculation parameters
	ErrCodeTransformity = "E_TRANSFORMITY" // unresolved or malformed transformities
	ErrCodeCalc         = "E_CALC"         // calculation failure
	ErrCodeSession      = "E_SESSION"      // named session not found
	ErrCodeUsage        = "E_USAGE"        // bad invocation
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// IOError is a file or database access failure. These are command errors
// (exit 2), not calculation failures.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// classify maps a domain error to a CLI error code and exit code. Anything
// the taxonomy does not recognize is a calculation failure.
func classify(err error) (code string, exit int) {
	var (
		ioe *IOError
		ve  *session.ValidationError
		pe  *engine.ParamError
		ue  *transformity.UnresolvedError
		me  *transformity.MalformedOverrideError
		ce  *engine.CalcError
	)
	switch {
	case errors.As(err, &ioe):
		return ErrCodeIO, ExitCommandError
	case errors.As(err, &ve):
		return ErrCodeSchema, ExitFailure
	case errors.As(err, &pe):
		return ErrCodeParams, ExitFailure
	case errors.As(err, &me):
		return ErrCodeParams, ExitFailure
	case errors.As(err, &ue):
		return ErrCodeTransformity, ExitFailure
	case errors.As(err, &ce):
		return ErrCodeCalc, ExitFailure
	case errors.Is(err, session.ErrSessionNotFound):
		return ErrCodeSession, ExitFailure
	default:
		return ErrCodeCalc, ExitFailure
	}
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string      `json:"status"`          // "ok" or "error"
	Data   interface{} `json:"data,omitempty"`  // success payload
	Error  *CLIError   `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string      `json:"code"`              // "E_SCHEMA", "E_PARAMS", etc.
	Message string      `json:"message"`           // human-readable message
	Details interface{} `json:"details,omitempty"` // additional context
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.Format == "json" {
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details interface{}) error {
	if f.Format == "json" {
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// failWith emits the error through the formatter and returns an ExitError
// carrying the exit code derived from the error's type.
func failWith(f *OutputFormatter, err error) error {
	code, exit := classify(err)
	_ = f.Error(code, err.Error(), nil)
	return WrapExitError(exit, code, err)
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer.
// When format is JSON, verbose logs go to ErrWriter to avoid corrupting JSON output.
func (f *OutputFormatter) VerboseLog(format string, args ...interface{}) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}
