package controller

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccelHysteresisHoldsWithinGap(t *testing.T) {
	steady := 0.5
	for _, raw := range []float64{0.5, 0.51, 0.49, 0.52, 0.481} {
		out, newSteady := accelHysteresis(raw, steady)
		assert.Equal(t, steady, out, "raw=%v must not move the steady value", raw)
		assert.Equal(t, steady, newSteady)
	}
}

func TestAccelHysteresisFollowsBeyondGap(t *testing.T) {
	out, steady := accelHysteresis(0.6, 0.5)
	assert.InDelta(t, 0.58, out, 1e-9)
	assert.Equal(t, out, steady)

	out, steady = accelHysteresis(0.3, steady)
	assert.InDelta(t, 0.32, out, 1e-9)
	assert.Equal(t, out, steady)
}

func TestApplyAccelLimitsBounds(t *testing.T) {
	steady := 0.0
	var accel float64
	// Sweep raw inputs well outside the normalized range; output must stay
	// inside the physical envelope after scaling.
	for _, gb := range [][2]float64{{1, 0}, {0, 1}, {2, 0}, {0, 3}, {0.5, 0.5}, {1, 1}} {
		accel, steady = applyAccelLimits(gb[0], gb[1], steady)
		assert.GreaterOrEqual(t, accel, AccelMin)
		assert.LessOrEqual(t, accel, AccelMax)
	}
}

func TestLimitSteerTorqueRate(t *testing.T) {
	// Moving away from zero is bounded by the up delta.
	applied, limited := LimitSteerTorque(SteerMax, 0, 0)
	assert.Equal(t, SteerDeltaUp, applied)
	assert.True(t, limited)

	// Returning toward zero is bounded by the down delta.
	applied, limited = LimitSteerTorque(0, 100, 0)
	assert.Equal(t, 100-SteerDeltaDown, applied)
	assert.True(t, limited)
}

func TestLimitSteerTorqueProperty(t *testing.T) {
	last := 0
	for desired := -600; desired <= 600; desired += 7 {
		applied, _ := LimitSteerTorque(desired, last, 0)
		require.LessOrEqual(t, int(math.Abs(float64(applied))), SteerMax)
		require.LessOrEqual(t, int(math.Abs(float64(applied-last))), SteerDeltaDown)
		last = applied
	}
}

func TestLimitSteerTorqueDriverOverride(t *testing.T) {
	// Strong opposing driver torque collapses the positive band to zero.
	applied, _ := LimitSteerTorque(300, 0, -400)
	assert.LessOrEqual(t, applied, 0)
}

func TestDesiredSteerTorqueClampsRequest(t *testing.T) {
	assert.Equal(t, SteerMax, desiredSteerTorque(3.5))
	assert.Equal(t, -SteerMax, desiredSteerTorque(-2))
	assert.Equal(t, 205, desiredSteerTorque(0.5011))
}
