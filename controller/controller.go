// Package controller implements the per-cycle actuation core: actuation
// limiting and message sequencing, standstill auto-resume, longitudinal
// request arbitration, and the cruise event/button state machine.
//
// The whole core is one deterministic state transition invoked once per
// fixed control period. No call blocks or performs I/O; inputs are
// pre-fetched snapshots and outputs are in-memory message lists.
package controller

import (
	"fmt"
	"math"

	"adas-actuation-core/calibration"
	"adas-actuation-core/metrics"
	"adas-actuation-core/utils"
)

// Controller owns the ControllerState for one vehicle. It is not safe for
// concurrent use; one control-loop goroutine owns each instance.
type Controller struct {
	cal      *calibration.Record
	log      *utils.Logger
	smoother Smoother
	state    State
}

// New builds a controller for one calibrated variant. A nil smoother gets
// the pass-through strategy. Configuration inconsistencies are fatal here,
// before the loop begins.
func New(cal *calibration.Record, log *utils.Logger, smoother Smoother) (*Controller, error) {
	if cal == nil {
		return nil, fmt.Errorf("controller: nil calibration")
	}
	if err := cal.Validate(); err != nil {
		return nil, fmt.Errorf("controller: %w", err)
	}
	if log == nil {
		return nil, fmt.Errorf("controller: nil logger")
	}
	if smoother == nil {
		smoother = NoopSmoother{}
	}
	c := &Controller{cal: cal, log: log, smoother: smoother}
	c.state.CruiseLive = cal.CruiseBus != calibration.BusAbsent
	c.state.NativeAccelMin = math.Inf(1)
	c.state.NativeAccelMax = math.Inf(-1)
	return c, nil
}

// State returns a copy of the controller state for inspection.
func (c *Controller) State() State { return c.state }

// Update runs one control cycle: shape the planner's request into bounded
// commands and return the cycle's ordered outgoing message set plus the
// diagnostics handed back to the planner.
func (c *Controller) Update(in CycleInput, snap *Snapshot) ([]OutgoingMessage, Diagnostics) {
	st := &c.state
	var diag Diagnostics
	metrics.CyclesTotal.Inc()

	// Longitudinal shaping.
	accelCmd, steady := applyAccelLimits(in.Actuators.Gas, in.Actuators.Brake, st.AccelSteady)
	st.AccelSteady = steady

	// Lateral shaping.
	newSteer := desiredSteerTorque(in.Actuators.Steer)
	applySteer, limited := LimitSteerTorque(newSteer, st.ApplySteerLast, snap.SteeringTorque)
	st.SteerRateLimited = limited
	if limited {
		metrics.SteerRateClamps.Inc()
	}

	lateralActive := c.updateLateralGate(in.Enabled, snap)
	if !lateralActive {
		applySteer = 0
	}
	st.ApplySteerLast = applySteer

	hud := ProcessHUDAlert(in.Enabled, c.cal.PremiumCluster, in.VisualAlert,
		in.LeftLaneVisible, in.RightLaneVisible, in.LeftLaneDepart, in.RightLaneDepart)

	clusterSpeed, setSpeed := c.displaySpeeds(in, snap, lateralActive)

	if !st.seeded {
		c.seedCounters(snap)
	}
	c.trackCruiseLiveness(snap)
	c.advanceCounters()

	// Running bounds of the vehicle's reported accel request, tracked
	// every cycle regardless of whether fusion engages.
	if snap.NativeAccelRequest < st.NativeAccelMin {
		st.NativeAccelMin = snap.NativeAccelRequest
	}
	if snap.NativeAccelRequest > st.NativeAccelMax {
		st.NativeAccelMax = snap.NativeAccelRequest
	}

	out := c.sequenceMessages(in, snap, applySteer, lateralActive, hud, clusterSpeed, setSpeed, accelCmd, &diag)

	diag.AppliedAccel = accelCmd
	diag.AppliedSteer = applySteer
	diag.SteerRateLimited = limited
	diag.LateralActive = lateralActive
	diag.NativeAccelRequest = snap.NativeAccelRequest
	diag.NativeAccelMin = st.NativeAccelMin
	diag.NativeAccelMax = st.NativeAccelMax
	diag.ClusterSpeedMPS = snap.ClusterSpeed * c.clusterUnitToMPS()

	st.Frame++
	return out, diag
}

// displaySpeeds derives the cluster command speed and the clamped cruise
// set speed, both in the cluster's display units.
func (c *Controller) displaySpeeds(in CycleInput, snap *Snapshot, lateralActive bool) (clusterSpeed, setSpeed float64) {
	clusterSpeed = 60
	if c.cal.SpeedInMPH {
		clusterSpeed = 38
	}
	if snap.ClusterSpeed > clusterSpeed || !lateralActive {
		clusterSpeed = snap.ClusterSpeed
	}

	set := in.SetSpeedMPS
	if !(set > minSetSpeedMPS && set < 255*KPHToMPS) {
		set = minSetSpeedMPS
	}
	if c.cal.SpeedInMPH {
		setSpeed = set * MPSToMPH
	} else {
		setSpeed = set * MPSToKPH
	}
	return clusterSpeed, setSpeed
}

func (c *Controller) clusterUnitToMPS() float64 {
	if c.cal.SpeedInMPH {
		return MPHToMPS
	}
	return KPHToMPS
}
