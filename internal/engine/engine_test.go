package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emergylab/emergia/internal/inventory"
	"github.com/emergylab/emergia/internal/transformity"
)

func newEngine(t *testing.T, store *inventory.Store) *Engine {
	t.Helper()
	return New(store, NewFixedGenerator("run-1", "run-2", "run-3"))
}

func TestCalculate_RejectsUnknownMode(t *testing.T) {
	e := newEngine(t, inventory.NewStore())
	_, err := e.Calculate(Request{Mode: Mode("quantum")})
	require.Error(t, err)
	assert.True(t, IsCalcError(err, ErrCodeBadMode))
}

func TestDirectInputs_Sums(t *testing.T) {
	s := inventory.NewStore()
	require.NoError(t, s.AddFlow("R1", ""))
	require.NoError(t, s.AddFlow("R2", ""))
	require.NoError(t, s.AddProcess("P1", ""))
	require.NoError(t, s.AddProcess("P2", ""))
	require.NoError(t, s.SetValue("R1", "P1", "10"))
	require.NoError(t, s.SetValue("R1", "P2", "20"))
	require.NoError(t, s.SetValue("R2", "P2", "5"))
	// R2/P1 left unset: sums as 0.

	res, err := newEngine(t, s).Calculate(Request{Mode: ModeDirectInputs})
	require.NoError(t, err)

	assert.Equal(t, "run-1", res.RunToken)
	assert.Equal(t, ModeDirectInputs, res.Mode)
	p1, _ := res.DirectInputs.Get("P1")
	p2, _ := res.DirectInputs.Get("P2")
	assert.Equal(t, 10.0, p1)
	assert.Equal(t, 25.0, p2)
	assert.Nil(t, res.Totals)
	assert.Nil(t, res.Indices)
}

func TestDirectInputs_EmptyMatrixIsNotAnError(t *testing.T) {
	res, err := newEngine(t, inventory.NewStore()).Calculate(Request{Mode: ModeDirectInputs})
	require.NoError(t, err)
	assert.Equal(t, 0, res.DirectInputs.Len())
	assert.Contains(t, res.Summary[len(res.Summary)-1], "completely empty")
}

func TestDirectInputs_NoFlowsYieldsZeroSums(t *testing.T) {
	s := inventory.NewStore()
	require.NoError(t, s.AddProcess("P1", ""))

	res, err := newEngine(t, s).Calculate(Request{Mode: ModeDirectInputs})
	require.NoError(t, err)
	v, ok := res.DirectInputs.Get("P1")
	require.True(t, ok)
	assert.Equal(t, 0.0, v)
}

func TestTotalEmergy_ContributionAndTotal(t *testing.T) {
	s := inventory.NewStore()
	require.NoError(t, s.AddFlow("Sun", "J"))
	require.NoError(t, s.AddProcess("Widget", "unit"))
	require.NoError(t, s.SetValue("Sun", "Widget", "100"))
	require.NoError(t, s.AddTransformity("Sun", "1.5e3", ""))

	res, err := newEngine(t, s).Calculate(Request{Mode: ModeTotalEmergy})
	require.NoError(t, err)

	c, ok := res.Contributions.Value("Sun", "Widget")
	require.True(t, ok)
	assert.Equal(t, 1.5e5, c)

	total, ok := res.Totals.Get("Widget")
	require.True(t, ok)
	assert.Equal(t, 1.5e5, total)
}

func TestTotalEmergy_OverrideWinsOverTable(t *testing.T) {
	s := inventory.NewStore()
	require.NoError(t, s.AddFlow("Sun", ""))
	require.NoError(t, s.AddProcess("Widget", ""))
	require.NoError(t, s.SetValue("Sun", "Widget", "100"))
	require.NoError(t, s.AddTransformity("Sun", "1.5e3", ""))

	res, err := newEngine(t, s).Calculate(Request{
		Mode:      ModeTotalEmergy,
		Overrides: []transformity.Override{{Flow: "Sun", Value: 2.0e3}},
	})
	require.NoError(t, err)

	total, _ := res.Totals.Get("Widget")
	assert.Equal(t, 2.0e5, total)
}

func TestTotalEmergy_MissingTransformityFailsNamingFlow(t *testing.T) {
	s := inventory.NewStore()
	require.NoError(t, s.AddFlow("Sun", ""))
	require.NoError(t, s.AddFlow("Mystery", ""))
	require.NoError(t, s.AddProcess("Widget", ""))
	require.NoError(t, s.AddTransformity("Sun", "1", ""))

	res, err := newEngine(t, s).Calculate(Request{Mode: ModeTotalEmergy})
	require.Error(t, err)
	assert.Nil(t, res, "no partial bundle on failure")
	assert.True(t, transformity.IsUnresolved(err))
	assert.Contains(t, err.Error(), "Mystery")
}

func TestTotalEmergy_EmptyMatrixIsHardFailure(t *testing.T) {
	_, err := newEngine(t, inventory.NewStore()).Calculate(Request{Mode: ModeTotalEmergy})
	require.Error(t, err)
	assert.True(t, IsCalcError(err, ErrCodeEmptyMatrix))
}

func TestTotalEmergy_NoFlowsSucceedsWithZeros(t *testing.T) {
	s := inventory.NewStore()
	require.NoError(t, s.AddProcess("P1", ""))
	require.NoError(t, s.AddProcess("P2", ""))

	res, err := newEngine(t, s).Calculate(Request{Mode: ModeTotalEmergy})
	require.NoError(t, err)

	assert.Empty(t, res.Contributions.Flows)
	assert.Equal(t, []string{"P1", "P2"}, res.Totals.Names)
	assert.Equal(t, []float64{0, 0}, res.Totals.Values)
}

func TestTotalEmergy_MultiProcessMatrix(t *testing.T) {
	s := inventory.NewStore()
	require.NoError(t, s.AddFlow("Sun", ""))
	require.NoError(t, s.AddFlow("Fuel", ""))
	require.NoError(t, s.AddProcess("P1", ""))
	require.NoError(t, s.AddProcess("P2", ""))
	require.NoError(t, s.SetValue("Sun", "P1", "10"))
	require.NoError(t, s.SetValue("Sun", "P2", "20"))
	require.NoError(t, s.SetValue("Fuel", "P1", "2"))
	// Fuel/P2 unset: contributes 0.
	require.NoError(t, s.AddTransformity("Sun", "100", ""))
	require.NoError(t, s.AddTransformity("Fuel", "1000", ""))

	res, err := newEngine(t, s).Calculate(Request{Mode: ModeTotalEmergy})
	require.NoError(t, err)

	p1, _ := res.Totals.Get("P1")
	p2, _ := res.Totals.Get("P2")
	assert.Equal(t, 3000.0, p1) // 10*100 + 2*1000
	assert.Equal(t, 2000.0, p2) // 20*100 + 0*1000

	col, err := res.Contributions.Column("P1")
	require.NoError(t, err)
	assert.Equal(t, []float64{1000, 2000}, col)

	_, err = res.Contributions.Column("P9")
	assert.Error(t, err)
}

func TestResults_RunTokensAreFresh(t *testing.T) {
	s := inventory.NewStore()
	require.NoError(t, s.AddProcess("P1", ""))
	e := newEngine(t, s)

	a, err := e.Calculate(Request{Mode: ModeDirectInputs})
	require.NoError(t, err)
	b, err := e.Calculate(Request{Mode: ModeDirectInputs})
	require.NoError(t, err)
	assert.NotEqual(t, a.RunToken, b.RunToken)
}

func TestUUIDv7Generator_ProducesUniqueTokens(t *testing.T) {
	g := UUIDv7Generator{}
	a, b := g.Generate(), g.Generate()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
