package controller

// Frame names of outgoing messages. They key into the CAN signal map the
// codec layer loads; the controller never touches bit payloads.
const (
	MsgLaneKeep          = "LANE_KEEP_CMD"
	MsgCluster           = "CLUSTER_CMD"
	MsgCruiseCmd         = "CRUISE_CMD"
	MsgCruiseStatus      = "CRUISE_STATUS"
	MsgExtCruiseA        = "CRUISE_EXT_A"
	MsgExtCruiseB        = "CRUISE_EXT_B"
	MsgSteerPassthrough  = "STEER_STATUS"
	MsgLaneFollowDisplay = "LANE_FOLLOW_DISPLAY"
)

// OutgoingMessage is one semantic message for the transport/codec layer.
// Values holds physical signal values; the codec packs them into bits.
type OutgoingMessage struct {
	Frame  string
	Bus    int
	Values map[string]float64
}

// cloneValues copies an echo map so a message never aliases snapshot state.
func cloneValues(echo map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(echo)+8)
	for k, v := range echo {
		out[k] = v
	}
	return out
}

func (c *Controller) buildLaneKeep(bus int, applySteer int, active bool, hud HUDStatus, in CycleInput, snap *Snapshot) OutgoingMessage {
	v := cloneValues(snap.LaneKeepEcho)
	v["msg_count"] = float64(c.state.LaneKeepCnt)
	v["steer_torque"] = float64(applySteer)
	v["steer_active"] = boolToFloat(active)
	v["sys_warning"] = boolToFloat(hud.SysWarning)
	v["sys_state"] = float64(hud.SysState)
	v["left_lane"] = boolToFloat(in.LeftLaneVisible)
	v["right_lane"] = boolToFloat(in.RightLaneVisible)
	v["left_depart_warn"] = float64(hud.LeftLaneWarning)
	v["right_depart_warn"] = float64(hud.RightLaneWarning)
	return OutgoingMessage{Frame: MsgLaneKeep, Bus: bus, Values: v}
}

func (c *Controller) buildCluster(bus, counter int, button Button, speed float64, snap *Snapshot) OutgoingMessage {
	v := cloneValues(snap.ClusterEcho)
	v["msg_count"] = float64(counter)
	v["button"] = float64(button)
	v["speed"] = speed
	return OutgoingMessage{Frame: MsgCluster, Bus: bus, Values: v}
}

func (c *Controller) buildCruiseCmd(accel float64, enabled bool, snap *Snapshot) OutgoingMessage {
	v := cloneValues(snap.CruiseCmdEcho)
	v["alive_count"] = float64(c.state.CruiseCmdCnt)
	v["accel_request"] = accel
	v["active"] = boolToFloat(enabled)
	v["live"] = boolToFloat(c.state.CruiseLive)
	return OutgoingMessage{Frame: MsgCruiseCmd, Bus: 0, Values: v}
}

func (c *Controller) buildCruiseStatus(enabled bool, setSpeed float64, leadVisible bool, snap *Snapshot) OutgoingMessage {
	v := cloneValues(snap.CruiseStatusEcho)
	v["set_speed"] = setSpeed
	v["active"] = boolToFloat(enabled)
	v["lead_visible"] = boolToFloat(leadVisible)
	v["live"] = boolToFloat(c.state.CruiseLive)
	return OutgoingMessage{Frame: MsgCruiseStatus, Bus: 0, Values: v}
}

func (c *Controller) buildExtCruiseA(snap *Snapshot) OutgoingMessage {
	return OutgoingMessage{Frame: MsgExtCruiseA, Bus: 0, Values: cloneValues(snap.ExtCruiseAEcho)}
}

func (c *Controller) buildExtCruiseB(enabled bool, snap *Snapshot) OutgoingMessage {
	v := cloneValues(snap.ExtCruiseBEcho)
	v["active"] = boolToFloat(enabled)
	return OutgoingMessage{Frame: MsgExtCruiseB, Bus: 0, Values: v}
}

func (c *Controller) buildSteerPassthrough(bus int, snap *Snapshot) OutgoingMessage {
	return OutgoingMessage{Frame: MsgSteerPassthrough, Bus: bus, Values: cloneValues(snap.SteerEcho)}
}

func (c *Controller) buildLaneFollowDisplay(enabled bool) OutgoingMessage {
	return OutgoingMessage{Frame: MsgLaneFollowDisplay, Bus: 0, Values: map[string]float64{
		"active": boolToFloat(enabled),
	}}
}
