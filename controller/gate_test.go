package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"adas-actuation-core/calibration"
)

func TestGateForcesZeroSteerWhenDisabled(t *testing.T) {
	c := newTestController(t, testCal(t, calibration.VariantSedan, nil), nil)

	in := CycleInput{Enabled: false, Actuators: ActuatorRequest{Steer: 1}}
	snap := movingSnapshot()
	for i := 0; i < 5; i++ {
		_, diag := c.Update(in, &snap)
		assert.Equal(t, 0, diag.AppliedSteer)
		assert.False(t, diag.LateralActive)
	}
}

func TestGateDisablesBeyondMaxAngle(t *testing.T) {
	c := newTestController(t, testCal(t, calibration.VariantSedan, nil), nil)

	snap := movingSnapshot()
	snap.SteeringAngleDeg = 95
	_, diag := c.Update(engagedInput(), &snap)
	assert.False(t, diag.LateralActive)

	snap.SteeringAngleDeg = 45
	_, diag = c.Update(engagedInput(), &snap)
	assert.True(t, diag.LateralActive)
}

func TestGateLowSpeedFaultProneVariant(t *testing.T) {
	c := newTestController(t, testCal(t, calibration.VariantGrand, nil), nil)

	snap := movingSnapshot()
	snap.SpeedMPS = 10 // below 60 km/h
	_, diag := c.Update(engagedInput(), &snap)
	assert.False(t, diag.LateralActive)

	snap.SpeedMPS = 20 // above 60 km/h
	_, diag = c.Update(engagedInput(), &snap)
	assert.True(t, diag.LateralActive)
}

func TestGateBlinkerCountdownAtCrawl(t *testing.T) {
	c := newTestController(t, testCal(t, calibration.VariantSedan, nil), nil)

	snap := movingSnapshot()
	snap.SpeedMPS = 0.3 // below 2 km/h
	snap.LeftBlinker = true
	_, diag := c.Update(engagedInput(), &snap)
	assert.False(t, diag.LateralActive)

	// Blinker off: the countdown keeps steering disabled for 0.5 s.
	snap.LeftBlinker = false
	for i := 0; i < blinkerDisableCycles-1; i++ {
		_, diag = c.Update(engagedInput(), &snap)
		assert.False(t, diag.LateralActive, "cycle %d", i)
	}
	_, diag = c.Update(engagedInput(), &snap)
	assert.True(t, diag.LateralActive)
}

func TestGateBlinkerIgnoredAtSpeed(t *testing.T) {
	c := newTestController(t, testCal(t, calibration.VariantSedan, nil), nil)

	snap := movingSnapshot()
	snap.LeftBlinker = true
	_, diag := c.Update(engagedInput(), &snap)
	assert.True(t, diag.LateralActive)
}
