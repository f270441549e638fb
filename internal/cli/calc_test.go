package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emergylab/emergia/internal/testutil"
)

func TestCalc_TotalEmergy(t *testing.T) {
	path := writeSessionFile(t, testutil.TotalEmergyStore(t))

	out, err := executeCommand(t, "calc", "total", "--session", path)
	require.NoError(t, err)

	assert.Contains(t, out, "Mode: Total Emergy per Process")
	assert.Contains(t, out, "Total emergy per process (sej):")
	assert.Contains(t, out, "Widget: 1.50e+05")
	assert.Contains(t, out, "Gadget: 0.00e+00")
	assert.Contains(t, out, "Sun [J]:")
}

func TestCalc_ManualOverrideWins(t *testing.T) {
	path := writeSessionFile(t, testutil.TotalEmergyStore(t))

	out, err := executeCommand(t, "calc", "total", "--session", path,
		"--param", "transformity_Sun=2e3")
	require.NoError(t, err)

	assert.Contains(t, out, "Widget: 2.00e+05")
	assert.Contains(t, out, `using manual transformity for "Sun"`)
}

func TestCalc_DirectInputs(t *testing.T) {
	path := writeSessionFile(t, testutil.DirectInputsStore(t))

	out, err := executeCommand(t, "calc", "direct", "--session", path)
	require.NoError(t, err)

	assert.Contains(t, out, "Mode: Sum of Direct Inputs")
	assert.Contains(t, out, "P1: 1.00e+01")
	assert.Contains(t, out, "P2: 2.50e+01")
}

func TestCalc_Indices(t *testing.T) {
	path := writeSessionFile(t, testutil.TotalEmergyStore(t))

	out, err := executeCommand(t, "calc", "indices", "--session", path,
		"--param", "R=100", "--param", "N=50", "--param", "F=25")
	require.NoError(t, err)

	assert.Contains(t, out, "EYR: 7.00e+00")
	assert.Contains(t, out, "ELR: 7.50e-01")
	assert.Contains(t, out, "ESI: 9.33e+00")
}

func TestCalc_IndicesMissingParams(t *testing.T) {
	path := writeSessionFile(t, testutil.TotalEmergyStore(t))

	out, err := executeCommand(t, "calc", "indices", "--session", path,
		"--param", "R=100")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, ErrCodeParams)
}

func TestCalc_UnresolvedTransformities(t *testing.T) {
	// The direct-inputs fixture has no transformity table entries at all.
	path := writeSessionFile(t, testutil.DirectInputsStore(t))

	out, err := executeCommand(t, "calc", "total", "--session", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, ErrCodeTransformity)
	assert.Contains(t, out, "R1")
	assert.Contains(t, out, "R2")
}

func TestCalc_MissingSessionFile(t *testing.T) {
	_, err := executeCommand(t, "calc", "total", "--session", "does-not-exist.json")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCalc_UnknownMode(t *testing.T) {
	path := writeSessionFile(t, testutil.TotalEmergyStore(t))

	_, err := executeCommand(t, "calc", "sideways", "--session", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCalc_BadParamFlag(t *testing.T) {
	path := writeSessionFile(t, testutil.TotalEmergyStore(t))

	_, err := executeCommand(t, "calc", "total", "--session", path,
		"--param", "not-a-pair")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCalc_OutExportsReport(t *testing.T) {
	path := writeSessionFile(t, testutil.TotalEmergyStore(t))
	outPath := filepath.Join(t.TempDir(), "report.txt")

	stdout, err := executeCommand(t, "calc", "total", "--session", path, "--out", outPath)
	require.NoError(t, err)

	exported, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, stdout, string(exported))
}

func TestCalc_JSONFormat(t *testing.T) {
	path := writeSessionFile(t, testutil.TotalEmergyStore(t))

	out, err := executeCommand(t, "--format", "json", "calc", "total", "--session", path)
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   calcResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "total_emergy", resp.Data.Mode)
	assert.Equal(t, "Total Emergy per Process", resp.Data.ModeName)
	assert.NotEmpty(t, resp.Data.RunToken)
	assert.InDelta(t, 1.5e5, resp.Data.Totals["Widget"], 1e-9)
	assert.InDelta(t, 0, resp.Data.Totals["Gadget"], 1e-9)
}

func TestCalc_JSONFormatIndices(t *testing.T) {
	path := writeSessionFile(t, testutil.TotalEmergyStore(t))

	out, err := executeCommand(t, "--format", "json", "calc", "indices", "--session", path,
		"--param", "R=100", "--param", "N=50", "--param", "F=25")
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   calcResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.NotNil(t, resp.Data.Indices)
	assert.Equal(t, "7.00e+00", resp.Data.Indices.EYR)
	assert.Equal(t, "7.50e-01", resp.Data.Indices.ELR)
	assert.Equal(t, "9.33e+00", resp.Data.Indices.ESI)
}

func TestParseParamFlags(t *testing.T) {
	params, err := parseParamFlags([]string{"R=100", "transformity_Sun=1.5e3", "Y="})
	require.NoError(t, err)
	assert.Equal(t, "100", params["R"])
	assert.Equal(t, "1.5e3", params["transformity_Sun"])
	assert.Equal(t, "", params["Y"])

	_, err = parseParamFlags([]string{"bare"})
	require.Error(t, err)

	_, err = parseParamFlags([]string{"=5"})
	require.Error(t, err)
}
