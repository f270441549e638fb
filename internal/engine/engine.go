package engine

import (
	"fmt"
	"log/slog"

	"github.com/emergylab/emergia/internal/inventory"
)

// Engine computes emergy metrics over an inventory store.
//
// The engine holds no run state: each Calculate call reads a live snapshot
// of the store, computes, and returns a fresh bundle. A failure returns a
// nil bundle - partial results are never observable.
type Engine struct {
	store  *inventory.Store
	tokens RunTokenGenerator
}

// New creates an Engine over the given store. tokens may be nil, in which
// case UUIDv7 run tokens are generated.
func New(store *inventory.Store, tokens RunTokenGenerator) *Engine {
	if tokens == nil {
		tokens = UUIDv7Generator{}
	}
	return &Engine{store: store, tokens: tokens}
}

// Calculate runs one calculation and returns its results bundle.
func (e *Engine) Calculate(req Request) (*Results, error) {
	if !req.Mode.valid() {
		return nil, &CalcError{Code: ErrCodeBadMode, Message: fmt.Sprintf("unsupported mode %q", req.Mode)}
	}

	res := &Results{
		RunToken: e.tokens.Generate(),
		Mode:     req.Mode,
		Summary:  []string{fmt.Sprintf("calculation mode: %s", req.Mode.DisplayName())},
	}

	slog.Info("calculation starting",
		"run", res.RunToken,
		"mode", req.Mode,
		"flows", len(e.store.Flows()),
		"processes", len(e.store.Processes()),
	)

	var err error
	switch req.Mode {
	case ModeTotalEmergy:
		err = e.calcTotalEmergy(req, res)
	case ModeDirectInputs:
		err = e.calcDirectInputs(res)
	case ModeIndices:
		err = e.calcIndices(req, res)
	}

	if err != nil {
		slog.Error("calculation failed", "run", res.RunToken, "mode", req.Mode, "error", err)
		return nil, err
	}

	slog.Info("calculation finished", "run", res.RunToken, "mode", req.Mode)
	return res, nil
}
