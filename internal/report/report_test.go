package report

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emergylab/emergia/internal/engine"
	"github.com/emergylab/emergia/internal/inventory"
	"github.com/emergylab/emergia/internal/testutil"
)

// renderGolden runs a calculation with a fixed run token and compares the
// rendered report against testdata/golden/<name>.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/report -update
func renderGolden(t *testing.T, name string, store *inventory.Store, req engine.Request) {
	t.Helper()

	e := engine.New(store, engine.NewFixedGenerator("golden-run"))
	res, err := e.Calculate(req)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, res, store))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, buf.Bytes())
}

func TestRender_TotalEmergyGolden(t *testing.T) {
	renderGolden(t, "total_emergy", testutil.TotalEmergyStore(t), engine.Request{Mode: engine.ModeTotalEmergy})
}

func TestRender_DirectInputsGolden(t *testing.T) {
	renderGolden(t, "direct_inputs", testutil.DirectInputsStore(t), engine.Request{Mode: engine.ModeDirectInputs})
}

func TestRender_IndicesGolden(t *testing.T) {
	renderGolden(t, "indices", inventory.NewStore(), engine.Request{
		Mode:    engine.ModeIndices,
		Indices: &engine.IndicesInput{R: 100, N: 50, F: 25},
	})
}

func TestRender_NilResults(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Render(&buf, nil, nil))
}

func TestRender_EmptyDirectSeries(t *testing.T) {
	e := engine.New(inventory.NewStore(), engine.NewFixedGenerator("run"))
	res, err := e.Calculate(engine.Request{Mode: engine.ModeDirectInputs})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, res, nil))
	assert.Contains(t, buf.String(), "(none)")
}

func TestShares(t *testing.T) {
	s := inventory.NewStore()
	require.NoError(t, s.AddFlow("Sun", ""))
	require.NoError(t, s.AddFlow("Fuel", ""))
	require.NoError(t, s.AddProcess("P1", ""))
	require.NoError(t, s.SetValue("Sun", "P1", "10"))
	require.NoError(t, s.SetValue("Fuel", "P1", "30"))
	require.NoError(t, s.AddTransformity("Sun", "1", ""))
	require.NoError(t, s.AddTransformity("Fuel", "1", ""))

	e := engine.New(s, engine.NewFixedGenerator("run"))
	res, err := e.Calculate(engine.Request{Mode: engine.ModeTotalEmergy})
	require.NoError(t, err)

	shares, err := Shares(res, "P1")
	require.NoError(t, err)
	require.Len(t, shares, 2)
	assert.Equal(t, Share{Flow: "Sun", Value: 10, Percent: 25}, shares[0])
	assert.Equal(t, Share{Flow: "Fuel", Value: 30, Percent: 75}, shares[1])

	_, err = Shares(res, "P9")
	assert.Error(t, err)
}

func TestShares_ZeroTotal(t *testing.T) {
	s := inventory.NewStore()
	require.NoError(t, s.AddFlow("Sun", ""))
	require.NoError(t, s.AddProcess("P1", ""))
	require.NoError(t, s.AddTransformity("Sun", "5", ""))
	// Cell left unset: contribution 0.

	e := engine.New(s, engine.NewFixedGenerator("run"))
	res, err := e.Calculate(engine.Request{Mode: engine.ModeTotalEmergy})
	require.NoError(t, err)

	shares, err := Shares(res, "P1")
	require.NoError(t, err)
	require.Len(t, shares, 1)
	assert.Equal(t, 0.0, shares[0].Percent)
}

func TestShares_WrongMode(t *testing.T) {
	e := engine.New(testutil.DirectInputsStore(t), engine.NewFixedGenerator("run"))
	res, err := e.Calculate(engine.Request{Mode: engine.ModeDirectInputs})
	require.NoError(t, err)

	_, err = Shares(res, "P1")
	assert.Error(t, err)
}
