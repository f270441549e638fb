package cli

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/emergylab/emergia/internal/engine"
	"github.com/emergylab/emergia/internal/report"
)

// CalcOptions holds flags for the calc command.
type CalcOptions struct {
	*RootOptions
	Session string
	Params  []string
	Out     string

	// Tokens allows overriding the run token generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	Tokens engine.RunTokenGenerator
}

// NewCalcCommand creates the calc command.
func NewCalcCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CalcOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "calc <total|direct|indices>",
		Short: "Run a calculation against a session file",
		Long: `Run one calculation mode against a JSON session file.

Modes:
  total    total emergy per process (requires transformities for every flow)
  direct   sum of direct inputs per process
  indices  EYR, ELR, and ESI from R, N, F parameters

Parameters are passed as repeated --param key=value flags. The indices mode
requires R, N, and F (Y optional); the total mode accepts per-flow manual
transformity overrides as transformity_<flow> keys.

Example:
  emergia calc total --session farm.json --param transformity_Sun=1.5e3
  emergia calc indices --session farm.json --param R=100 --param N=50 --param F=25`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalc(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Session, "session", "", "path to JSON session file (required)")
	cmd.Flags().StringArrayVar(&opts.Params, "param", nil, "calculation parameter as key=value (repeatable)")
	cmd.Flags().StringVar(&opts.Out, "out", "", "also write the rendered text report to this file")
	_ = cmd.MarkFlagRequired("session")

	return cmd
}

// calcResult is the JSON payload for a successful calculation. Index values
// may be ±Inf or NaN, which encoding/json rejects, so indices ship as their
// fixed-precision display strings.
type calcResult struct {
	RunToken     string             `json:"run_token"`
	Mode         string             `json:"mode"`
	ModeName     string             `json:"mode_name"`
	Summary      []string           `json:"summary"`
	Totals       map[string]float64 `json:"totals,omitempty"`
	DirectInputs map[string]float64 `json:"direct_inputs,omitempty"`
	Indices      *indicesResult     `json:"indices,omitempty"`
}

type indicesResult struct {
	EYR string `json:"eyr"`
	ELR string `json:"elr"`
	ESI string `json:"esi"`
}

func runCalc(opts *CalcOptions, modeArg string, cmd *cobra.Command) error {
	configureLogging(opts.Verbose)

	formatter := newFormatter(opts.RootOptions, cmd)

	mode, err := engine.ParseMode(modeArg)
	if err != nil {
		_ = formatter.Error(ErrCodeUsage, err.Error(), nil)
		return WrapExitError(ExitCommandError, "unknown calculation mode", err)
	}

	params, err := parseParamFlags(opts.Params)
	if err != nil {
		_ = formatter.Error(ErrCodeUsage, err.Error(), nil)
		return WrapExitError(ExitCommandError, "bad --param flag", err)
	}

	st, err := loadStore(opts.Session)
	if err != nil {
		return failWith(formatter, err)
	}
	formatter.VerboseLog("session loaded: %d flows, %d processes", len(st.Flows()), len(st.Processes()))

	req, err := engine.ParseParams(mode, params, st.Flows())
	if err != nil {
		return failWith(formatter, err)
	}

	eng := engine.New(st, opts.Tokens)
	res, err := eng.Calculate(req)
	if err != nil {
		return failWith(formatter, err)
	}

	var rendered bytes.Buffer
	if err := report.Render(&rendered, res, st); err != nil {
		return failWith(formatter, err)
	}

	if opts.Out != "" {
		if err := os.WriteFile(opts.Out, rendered.Bytes(), 0o644); err != nil {
			return failWith(formatter, &IOError{Op: "write report", Path: opts.Out, Err: err})
		}
		slog.Info("report exported", "path", opts.Out)
	}

	if opts.Format == "json" {
		return formatter.Success(buildCalcResult(res))
	}
	_, err = formatter.Writer.Write(rendered.Bytes())
	return err
}

func buildCalcResult(res *engine.Results) calcResult {
	out := calcResult{
		RunToken: res.RunToken,
		Mode:     string(res.Mode),
		ModeName: res.Mode.DisplayName(),
		Summary:  res.Summary,
	}
	if res.Totals != nil {
		out.Totals = seriesToMap(res.Totals)
	}
	if res.DirectInputs != nil {
		out.DirectInputs = seriesToMap(res.DirectInputs)
	}
	if res.Indices != nil {
		eyr, elr, esi := res.Indices.Formatted()
		out.Indices = &indicesResult{EYR: eyr, ELR: elr, ESI: esi}
	}
	return out
}

func seriesToMap(s *engine.Series) map[string]float64 {
	m := make(map[string]float64, s.Len())
	for i, name := range s.Names {
		m[name] = s.Values[i]
	}
	return m
}

// parseParamFlags converts repeated key=value flags into a parameter map.
func parseParamFlags(raw []string) (map[string]string, error) {
	params := make(map[string]string, len(raw))
	for _, kv := range raw {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("parameter %q is not key=value", kv)
		}
		params[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return params, nil
}

// configureLogging routes slog to stderr at the level implied by --verbose.
func configureLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
