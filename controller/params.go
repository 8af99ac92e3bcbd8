package controller

import "math"

// DTCtrl is the fixed control-loop period in seconds.
const DTCtrl = 0.01

// Unit conversions.
const (
	KPHToMPS = 1.0 / 3.6
	MPSToKPH = 3.6
	MPHToMPS = 0.44704
	MPSToMPH = 1.0 / MPHToMPS
)

// Longitudinal limits.
const (
	AccelHystGap = 0.02 // hold the steady value for oscillations within this gap
	AccelMax     = 1.5  // m/s^2
	AccelMin     = -4.0 // m/s^2
)

var accelScale = math.Max(AccelMax, -AccelMin)

// Steering torque limits.
const (
	SteerMax              = 409
	SteerDeltaUp          = 3 // per-cycle step moving away from zero
	SteerDeltaDown        = 5 // per-cycle step returning toward zero
	SteerDriverAllowance  = 50
	SteerDriverMultiplier = 2
	SteerDriverFactor     = 1
)

// minSetSpeedMPS is the lowest set speed the cruise status message accepts.
const minSetSpeedMPS = 30 * KPHToMPS

// laneChangeSpeedMin is the speed below which an active blinker raises the
// turning-indicator alert (with a 1.2 m/s margin).
const laneChangeSpeedMin = 30 * MPHToMPS

// blinkerDisableCycles is 0.5 s worth of cycles.
const blinkerDisableCycles = int(0.5 / DTCtrl)

// resumeBurstMax bounds resume-button presses within one standstill episode.
const resumeBurstMax = 8

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
