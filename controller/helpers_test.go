package controller

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"adas-actuation-core/calibration"
	"adas-actuation-core/utils"
)

func testCal(t *testing.T, v calibration.Variant, mutate func(*calibration.Record)) *calibration.Record {
	t.Helper()
	cal, err := calibration.Resolve(v)
	require.NoError(t, err)
	if mutate != nil {
		mutate(cal)
	}
	return cal
}

func newTestController(t *testing.T, cal *calibration.Record, sm Smoother) *Controller {
	t.Helper()
	c, err := New(cal, utils.NewWriterLogger(io.Discard, utils.CRITICAL), sm)
	require.NoError(t, err)
	return c
}

// engagedInput is a plain engaged cycle with no steering or accel request.
func engagedInput() CycleInput {
	return CycleInput{Enabled: true, SetSpeedMPS: 16.7}
}

// movingSnapshot is a benign snapshot at cruising speed.
func movingSnapshot() Snapshot {
	return Snapshot{
		SpeedMPS:     20,
		ClusterSpeed: 72,
	}
}
