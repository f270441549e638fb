package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenarioFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario_Valid(t *testing.T) {
	path := writeScenarioFile(t, `
name: sample
description: a minimal scenario
steps:
  - {op: add_flow, name: Sun, unit: J}
  - {op: add_process, name: Widget}
  - {op: set_value, flow: Sun, process: Widget, value: "100"}
calc:
  mode: direct
expect:
  direct_inputs:
    Widget: 100
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "sample", scenario.Name)
	assert.Len(t, scenario.Steps, 3)
	assert.Equal(t, "direct", scenario.Calc.Mode)
	assert.InDelta(t, 100, scenario.Expect.DirectInputs["Widget"], 1e-9)
}

func TestLoadScenario_InlineSession(t *testing.T) {
	path := writeScenarioFile(t, `
name: with_session
description: session snapshots decode with null as unset
session:
  matrix:
    flows: [Sun]
    processes: [P1, P2]
    cells:
      - [100, null]
  transformities:
    Sun: {value: 1500, unit: sej/J}
calc:
  mode: total
expect:
  totals:
    P1: 1.5e5
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)
	require.NotNil(t, scenario.Session)
	require.Len(t, scenario.Session.Matrix.Cells, 1)
	require.NotNil(t, scenario.Session.Matrix.Cells[0][0])
	assert.InDelta(t, 100, *scenario.Session.Matrix.Cells[0][0], 1e-9)
	assert.Nil(t, scenario.Session.Matrix.Cells[0][1])
	assert.InDelta(t, 1500, scenario.Session.Transformities["Sun"].Value, 1e-9)
}

func TestLoadScenario_UnknownFieldRejected(t *testing.T) {
	path := writeScenarioFile(t, `
name: typo
description: has a typo
calc:
  mode: direct
expects:
  direct_inputs: {P1: 0}
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("no-such-scenario.yaml")
	require.Error(t, err)
}

func TestValidateScenario(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "missing name",
			yaml: `
description: d
calc: {mode: direct}
expect: {direct_inputs: {P1: 0}}
`,
			wantErr: "name is required",
		},
		{
			name: "missing description",
			yaml: `
name: n
calc: {mode: direct}
expect: {direct_inputs: {P1: 0}}
`,
			wantErr: "description is required",
		},
		{
			name: "missing calc mode",
			yaml: `
name: n
description: d
expect: {direct_inputs: {P1: 0}}
`,
			wantErr: "calc.mode is required",
		},
		{
			name: "empty expectation",
			yaml: `
name: n
description: d
calc: {mode: direct}
`,
			wantErr: "expect must assert",
		},
		{
			name: "error combined with values",
			yaml: `
name: n
description: d
calc: {mode: total}
expect:
  error: empty_matrix
  totals: {P1: 0}
`,
			wantErr: "cannot combine",
		},
		{
			name: "unknown error class",
			yaml: `
name: n
description: d
calc: {mode: total}
expect:
  error: meltdown
`,
			wantErr: "unknown expected error class",
		},
		{
			name: "unknown step op",
			yaml: `
name: n
description: d
steps:
  - {op: explode}
calc: {mode: direct}
expect: {direct_inputs: {P1: 0}}
`,
			wantErr: "unknown op",
		},
		{
			name: "set_value missing process",
			yaml: `
name: n
description: d
steps:
  - {op: set_value, flow: Sun, value: "1"}
calc: {mode: direct}
expect: {direct_inputs: {P1: 0}}
`,
			wantErr: "flow and process are required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScenarioFile(t, tt.yaml)
			_, err := LoadScenario(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
