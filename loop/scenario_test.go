package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scen.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadScenarioValidatesDuration(t *testing.T) {
	path := writeScenario(t, `{"meta":{"name":"x"},"timing":{"duration_s":0}}`)
	_, err := LoadScenario(path)
	assert.Error(t, err)
}

func TestEvalCycleInputSegments(t *testing.T) {
	path := writeScenario(t, `{
		"meta": {"name": "seg"},
		"timing": {"duration_s": 10},
		"defaults": {"enabled": false},
		"segments": [
			{"t0": 1, "t1": 5, "enabled": true, "gas": 0.3, "set_speed_mps": 15},
			{"t0": 5, "t1": -1, "enabled": true, "cancel": true}
		]
	}`)
	scen, err := LoadScenario(path)
	require.NoError(t, err)

	in := EvalCycleInput(&scen, 0.5)
	assert.False(t, in.Enabled)

	in = EvalCycleInput(&scen, 2)
	assert.True(t, in.Enabled)
	assert.Equal(t, 0.3, in.Actuators.Gas)
	assert.Equal(t, 15.0, in.SetSpeedMPS)

	// An open-ended segment runs to the scenario's duration.
	in = EvalCycleInput(&scen, 9.9)
	assert.True(t, in.CancelCruise)
}
