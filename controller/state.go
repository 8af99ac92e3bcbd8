package controller

// Button codes carried in the cluster button field.
type Button int

const (
	ButtonNone     Button = 0
	ButtonResAccel Button = 1
	ButtonSetDecel Button = 2
	ButtonGapDist  Button = 3
	ButtonCancel   Button = 4
)

// VisualAlert is the planner's requested display alert.
type VisualAlert int

const (
	VisualAlertNone VisualAlert = iota
	VisualAlertSteerRequired
	VisualAlertFCW
)

// ActuatorRequest is the planner's normalized per-cycle actuation request.
// Steer is in [-1, 1], Gas and Brake in [0, 1]; out-of-range values are
// clamped at the limiter boundary rather than rejected.
type ActuatorRequest struct {
	Steer float64
	Gas   float64
	Brake float64
}

// Snapshot is the per-cycle view of the vehicle. It is immutable within a
// cycle; the controller never writes to it.
type Snapshot struct {
	SteeringAngleDeg float64
	SteeringTorque   int
	SpeedMPS         float64
	ClusterSpeed     float64 // in the cluster's display units
	LeftBlinker      bool
	RightBlinker     bool

	CruiseEnabled     bool
	CruiseAvailable   bool
	CruiseUnavailable bool
	Standstill        bool
	LeadDistance      float64

	CruiseButtons    Button
	CruiseMainButton int

	// Raw echoes of the vehicle's own messages.
	LaneKeepCounter     int     // last observed lane-keep message count
	CruiseCmdCounter    int     // native cruise command alive counter
	CruiseStatusCounter int     // native cruise status alive counter
	NativeAccelRequest  float64 // native cruise accel request, m/s^2
	HasCruiseEcho       bool    // false when no native cruise message was seen yet

	// Passthrough field values for messages the controller re-emits.
	LaneKeepEcho     map[string]float64
	ClusterEcho      map[string]float64
	CruiseCmdEcho    map[string]float64
	CruiseStatusEcho map[string]float64
	ExtCruiseAEcho   map[string]float64
	ExtCruiseBEcho   map[string]float64
	SteerEcho        map[string]float64
}

// CycleInput bundles everything the planner hands the controller per cycle.
type CycleInput struct {
	Enabled      bool
	Actuators    ActuatorRequest
	CancelCruise bool
	VisualAlert  VisualAlert

	LeftLaneVisible  bool
	RightLaneVisible bool
	LeftLaneDepart   bool
	RightLaneDepart  bool

	SetSpeedMPS float64
	LeadVisible bool
}

// State is the controller's mutable memory, owned exclusively by one
// Controller and mutated once per cycle.
type State struct {
	Frame int

	AccelSteady      float64
	ApplySteerLast   int
	SteerRateLimited bool

	LaneKeepCnt  int // wraps mod 16
	CruiseCmdCnt int // wraps mod 15
	seeded       bool

	BlinkerTimer int // cycles remaining of the blinker steering hold-off

	// Standstill auto-resume.
	LastLeadDistance float64
	ResumeCnt        int
	ResumeWaitTimer  int

	// Alert latches and edge-detection memory.
	LowSpeedAlert         bool
	TurningIndicatorAlert bool
	PrevCruiseButtons     Button
	PrevCruiseMainButton  int

	// Native cruise liveness. True while the channel is considered live;
	// the stricter staleness check is inert unless enabled in calibration.
	CruiseLive        bool
	PrevCruiseStatCnt int

	// Running bounds of the vehicle's reported accel request.
	NativeAccelMin float64
	NativeAccelMax float64
}

// Diagnostics is the per-cycle report handed back to the planner.
type Diagnostics struct {
	AppliedAccel     float64
	AppliedSteer     int
	SteerRateLimited bool
	LateralActive    bool

	NativeAccelRequest float64
	NativeAccelMin     float64
	NativeAccelMax     float64

	FusionEngaged bool
	FusedAccel    float64
	LeadRelDist   float64

	ClusterSpeedMPS float64
}
