package controller

import "adas-actuation-core/metrics"

// Counter moduli fixed by the vehicle protocol.
const (
	laneKeepCntMod  = 16
	cruiseCmdCntMod = 15
)

// seedCounters initializes the sequence counters from values the vehicle
// echoed back, so the first injected counter is continuous with whatever
// the vehicle last observed. Runs once, on the first cycle.
func (c *Controller) seedCounters(snap *Snapshot) {
	st := &c.state
	st.LaneKeepCnt = ((snap.LaneKeepCounter % laneKeepCntMod) + laneKeepCntMod) % laneKeepCntMod
	if snap.HasCruiseEcho {
		st.CruiseCmdCnt = ((snap.CruiseCmdCounter % cruiseCmdCntMod) + cruiseCmdCntMod) % cruiseCmdCntMod
	} else {
		// Continuity loss is diagnostic, not fatal.
		st.CruiseCmdCnt = 0
		c.log.Warn("no native cruise echo at cycle 0; cruise counter seeded at 0")
		metrics.CounterSeedFallbacks.Inc()
	}
	st.PrevCruiseStatCnt = snap.CruiseStatusCounter
	st.seeded = true
}

// advanceCounters steps the per-cycle counters. The lane-keep counter
// advances before emission; the cruise counter is normalized here and
// advanced after the cruise pair is emitted.
func (c *Controller) advanceCounters() {
	st := &c.state
	st.LaneKeepCnt = (st.LaneKeepCnt + 1) % laneKeepCntMod
	st.CruiseCmdCnt %= cruiseCmdCntMod
}

// trackCruiseLiveness records the native cruise status counter each cycle.
// The stricter staleness check is inert unless enabled in calibration.
func (c *Controller) trackCruiseLiveness(snap *Snapshot) {
	st := &c.state
	if c.cal.StrictCruiseLiveness && st.Frame%7 == 0 {
		if snap.CruiseStatusCounter == st.PrevCruiseStatCnt && st.CruiseLive {
			st.CruiseLive = false
		} else {
			st.CruiseLive = true
		}
	}
	st.PrevCruiseStatCnt = snap.CruiseStatusCounter
}

// sequenceMessages assembles the cycle's ordered outgoing set. Order is
// fixed: lane-keep (+ adjacent bus-1 duplicate), cluster, cancel, resume,
// cruise pair with extensions, power-steering passthrough, lane-follow
// display. Downstream transport assumes emission order reflects priority.
func (c *Controller) sequenceMessages(in CycleInput, snap *Snapshot, applySteer int, lateralActive bool, hud HUDStatus, clusterSpeed, setSpeed, accelCmd float64, diag *Diagnostics) []OutgoingMessage {
	st := &c.state
	var out []OutgoingMessage

	// Button presses carry their own cluster command. A cancel request
	// supersedes auto-resume for the cycle.
	cancelPress := in.CancelCruise && c.cal.LongControl && !c.cal.OverrideMode
	resumePress, resumeCnt := false, 0
	if !cancelPress {
		resumePress, resumeCnt = c.updateAutoResume(snap)
	}

	// Primary lane-keep command, duplicated onto bus 1 when the steering
	// unit or native cruise is known to live there.
	out = append(out, c.buildLaneKeep(0, applySteer, lateralActive, hud, in, snap))
	if c.cal.SteerBus > 0 || c.cal.CruiseBus == 1 {
		out = append(out, c.buildLaneKeep(1, applySteer, lateralActive, hud, in, snap))
	}

	// Cluster display command toward the steering unit's bus, every other
	// cycle, only when that bus is configured. A press already carrying a
	// cluster command to the same bus takes the slot.
	clusterBusy := (cancelPress || resumePress) && c.cruiseBus() == c.cal.SteerBus
	if st.Frame%2 == 1 && c.cal.SteerBus > 0 && !clusterBusy {
		out = append(out, c.buildCluster(c.cal.SteerBus, (st.Frame/2)%laneKeepCntMod, ButtonNone, clusterSpeed, snap))
	}

	// Explicit cancel toward the native cruise controller.
	if cancelPress {
		out = append(out, c.buildCluster(c.cruiseBus(), st.Frame%laneKeepCntMod, ButtonCancel, snap.ClusterSpeed, snap))
	}

	// Standstill auto-resume press.
	if resumePress {
		out = append(out, c.buildCluster(c.cruiseBus(), resumeCnt, ButtonResAccel, snap.ClusterSpeed, snap))
		metrics.ResumePresses.Inc()
	}

	// Unconditional smoother tick.
	c.smoother.Update(in.Enabled, snap, st.Frame, accelCmd)

	// Native-cruise accel/speed pair plus extensions, every other cycle,
	// only under full longitudinal control when the native channel is off
	// the primary bus or not live.
	if c.cal.LongControl && snap.CruiseEnabled && (c.cal.CruiseBus != 0 || !st.CruiseLive) && st.Frame%2 == 0 {
		emitAccel := accelCmd
		fused, leadRel, err := c.smoother.Fuse(accelCmd, snap.NativeAccelRequest)
		if err != nil {
			// Fusion failure is fatal to fusion only; fall back to the
			// limiter's bounded output for this cycle.
			c.log.Error("fusion failed, emitting limiter output: %v", err)
			metrics.FusionFallbacks.Inc()
		} else {
			emitAccel = fused
			diag.FusionEngaged = true
			diag.FusedAccel = fused
			diag.LeadRelDist = leadRel
		}

		out = append(out, c.buildCruiseCmd(emitAccel, in.Enabled, snap))
		out = append(out, c.buildCruiseStatus(in.Enabled, setSpeed, in.LeadVisible, snap))
		if c.cal.HasExtCruiseA && st.Frame%20 == 0 {
			out = append(out, c.buildExtCruiseA(snap))
		}
		if c.cal.HasExtCruiseB {
			out = append(out, c.buildExtCruiseB(in.Enabled, snap))
		}
		st.CruiseCmdCnt++
	}

	// Power-steering passthrough keeps the lane-keep unit from faulting
	// when the steering unit is off the primary bus.
	if c.cal.SteerBus > 0 {
		out = append(out, c.buildSteerPassthrough(c.cal.SteerBus, snap))
	}

	// Lane-follow display at 20 Hz for variants that support it.
	if st.Frame%5 == 0 && c.cal.HasLaneFollowDisplay {
		out = append(out, c.buildLaneFollowDisplay(in.Enabled))
	}

	for i := range out {
		metrics.MessagesEmitted.WithLabelValues(out[i].Frame).Inc()
	}
	return out
}

// cruiseBus is the bus the native cruise controller listens on; bus 0 when
// the channel is absent so cancel/resume still reach the primary bus.
func (c *Controller) cruiseBus() int {
	if c.cal.CruiseBus < 0 {
		return 0
	}
	return c.cal.CruiseBus
}
