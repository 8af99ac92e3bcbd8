package main

import (
	"sync"

	"go.einride.tech/can"

	"adas-actuation-core/controller"
	"adas-actuation-core/utils"
)

// Incoming frame names recognized by the snapshot bridge.
const (
	frameVehicleState = "VEHICLE_STATE"
	frameCruiseState  = "CRUISE_STATE"
)

// snapshotBridge folds received frames into the per-cycle vehicle snapshot.
// RX goroutines write through Absorb; the control loop takes an immutable
// copy with Snapshot() at the top of each cycle.
type snapshotBridge struct {
	mu   sync.Mutex
	cmap *utils.CANMap
	log  *utils.Logger
	snap controller.Snapshot
}

func newSnapshotBridge(cmap *utils.CANMap, log *utils.Logger) *snapshotBridge {
	return &snapshotBridge{cmap: cmap, log: log}
}

// Absorb decodes one received frame and updates the snapshot. Unknown
// frames are ignored; they belong to other consumers on the bus.
func (b *snapshotBridge) Absorb(frame can.Frame) {
	fd, err := b.cmap.FrameByID(frame.ID)
	if err != nil {
		return
	}
	values, err := b.cmap.DecodeFrame(frame.ID, frame.Data[:frame.Length])
	if err != nil {
		b.log.Warn("Dropping malformed %s frame: %v", fd.Name, err)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	s := &b.snap

	switch fd.Name {
	case frameVehicleState:
		s.SpeedMPS = values["speed_mps"]
		s.ClusterSpeed = values["cluster_speed"]
		s.SteeringAngleDeg = values["steering_angle_deg"]
		s.SteeringTorque = int(values["steering_torque"])
		s.LeftBlinker = values["left_blinker"] != 0
		s.RightBlinker = values["right_blinker"] != 0

	case frameCruiseState:
		s.CruiseEnabled = values["enabled"] != 0
		s.CruiseAvailable = values["available"] != 0
		s.CruiseUnavailable = values["unavailable"] != 0
		s.Standstill = values["standstill"] != 0
		s.LeadDistance = values["lead_distance"]
		s.CruiseButtons = controller.Button(values["buttons"])
		s.CruiseMainButton = int(values["main_button"])

	case controller.MsgLaneKeep:
		s.LaneKeepCounter = int(values["msg_count"])
		s.LaneKeepEcho = values

	case controller.MsgCluster:
		s.ClusterEcho = values

	case controller.MsgCruiseCmd:
		s.CruiseCmdCounter = int(values["alive_count"])
		s.NativeAccelRequest = values["accel_request"]
		s.HasCruiseEcho = true
		s.CruiseCmdEcho = values

	case controller.MsgCruiseStatus:
		s.CruiseStatusCounter = int(values["alive_count"])
		s.CruiseStatusEcho = values

	case controller.MsgExtCruiseA:
		s.ExtCruiseAEcho = values

	case controller.MsgExtCruiseB:
		s.ExtCruiseBEcho = values

	case controller.MsgSteerPassthrough:
		s.SteerEcho = values
	}
}

// Snapshot returns a copy for one control cycle.
func (b *snapshotBridge) Snapshot() controller.Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snap
}
