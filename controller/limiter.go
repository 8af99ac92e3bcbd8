package controller

import "math"

// accelHysteresis keeps the steady value put for raw oscillations within
// AccelHystGap and otherwise drags it along behind the raw value.
func accelHysteresis(accel, steady float64) (float64, float64) {
	if accel > steady+AccelHystGap {
		steady = accel - AccelHystGap
	} else if accel < steady-AccelHystGap {
		steady = accel + AccelHystGap
	}
	return steady, steady
}

// applyAccelLimits turns normalized gas/brake fractions into a bounded
// physical accel command. Returns the command and the new steady value.
func applyAccelLimits(gas, brake, steady float64) (float64, float64) {
	accel, steady := accelHysteresis(gas-brake, steady)
	accel = clamp(accel*accelScale, AccelMin, AccelMax)
	return accel, steady
}

// LimitSteerTorque bounds the applied steering torque. The per-cycle change
// from lastApplied never exceeds SteerDeltaUp moving away from zero or
// SteerDeltaDown returning toward it, and opposing driver torque beyond the
// allowance widens the permitted band so the driver can always override.
func LimitSteerTorque(desired, lastApplied, driverTorque int) (applied int, limited bool) {
	driverMax := SteerMax + (SteerDriverAllowance+driverTorque*SteerDriverFactor)*SteerDriverMultiplier
	driverMin := -SteerMax + (-SteerDriverAllowance+driverTorque*SteerDriverFactor)*SteerDriverMultiplier
	maxAllowed := maxInt(minInt(SteerMax, driverMax), 0)
	minAllowed := minInt(maxInt(-SteerMax, driverMin), 0)
	applied = clampInt(desired, minAllowed, maxAllowed)

	if lastApplied > 0 {
		applied = clampInt(applied,
			maxInt(lastApplied-SteerDeltaDown, -SteerDeltaUp),
			lastApplied+SteerDeltaUp)
	} else {
		applied = clampInt(applied,
			lastApplied-SteerDeltaUp,
			minInt(lastApplied+SteerDeltaDown, SteerDeltaUp))
	}
	return applied, applied != desired
}

// desiredSteerTorque maps the planner's normalized steer command to raw
// torque counts, clamping out-of-range requests at the boundary.
func desiredSteerTorque(steer float64) int {
	return int(math.Round(clamp(steer, -1, 1) * SteerMax))
}
