package controller

import "math"

// updateLateralGate decides whether steering actuation is permitted this
// cycle. Recomputed every cycle from the snapshot plus the blinker
// countdown; there is no separate arming step.
func (c *Controller) updateLateralGate(enabled bool, snap *Snapshot) bool {
	st := &c.state

	// Any blinker activity re-arms the hold-off.
	if snap.LeftBlinker || snap.RightBlinker {
		st.BlinkerTimer = blinkerDisableCycles
	}

	active := enabled && math.Abs(snap.SteeringAngleDeg) < c.cal.MaxSteerAngleDeg

	// Some variants hard-fault the steering unit at low speed when it sits
	// on the primary bus.
	if c.cal.LowSpeedFaultProne && c.cal.SteerBus == 0 && snap.SpeedMPS < 60*KPHToMPS {
		active = false
	}

	if st.BlinkerTimer > 0 {
		if snap.SpeedMPS < 2*KPHToMPS {
			active = false
		}
		st.BlinkerTimer--
	}
	return active
}
