package controller

import "math"

// SmootherConfig tunes the gain smoother.
type SmootherConfig struct {
	AccelGain   float64 `json:"accel_gain"`
	DecelGain   float64 `json:"decel_gain"`
	BlendRate   float64 `json:"blend_rate"`    // max fused-value step per cycle, m/s^3 * DTCtrl
	WaitCycles  int     `json:"wait_cycles"`   // resume cooldown handed to the auto-resume machine
	ActiveBelow float64 `json:"active_below"`  // claim cycles below this speed, m/s; 0 disables
}

// GainSmoother is a rate-bounded fusion strategy: it biases the controller's
// accel command by separate accel/decel gains, leans it toward the vehicle's
// own request, and slews the result so a skipped cycle cannot step the
// output.
type GainSmoother struct {
	cfg SmootherConfig

	fusedLast   float64
	speedLast   float64
	initialized bool
}

func NewGainSmoother(cfg SmootherConfig) *GainSmoother {
	if cfg.AccelGain <= 0 {
		cfg.AccelGain = 1
	}
	if cfg.DecelGain <= 0 {
		cfg.DecelGain = 1
	}
	if cfg.BlendRate <= 0 {
		cfg.BlendRate = 0.05
	}
	if cfg.WaitCycles <= 0 {
		cfg.WaitCycles = defaultResumeWait
	}
	return &GainSmoother{cfg: cfg}
}

func (s *GainSmoother) IsActive(frame int) bool {
	return s.cfg.ActiveBelow > 0 && s.initialized && s.speedLast < s.cfg.ActiveBelow
}

func (s *GainSmoother) WaitCount() int { return s.cfg.WaitCycles }

func (s *GainSmoother) Fuse(accelCmd, nativeAccel float64) (float64, float64, error) {
	target := accelCmd
	if target >= 0 {
		target *= s.cfg.AccelGain
	} else {
		target *= s.cfg.DecelGain
	}
	// Never command harder braking than the vehicle already requests.
	if nativeAccel < target {
		target = nativeAccel
	}

	if !s.initialized {
		s.fusedLast = target
		s.initialized = true
	}
	step := target - s.fusedLast
	if math.Abs(step) > s.cfg.BlendRate {
		step = math.Copysign(s.cfg.BlendRate, step)
	}
	s.fusedLast = clamp(s.fusedLast+step, AccelMin, AccelMax)
	return s.fusedLast, 0, nil
}

func (s *GainSmoother) InjectEvents(EventSet) {}

func (s *GainSmoother) Update(enabled bool, snap *Snapshot, frame int, accelCmd float64) {
	s.speedLast = snap.SpeedMPS
	if !enabled {
		// Re-seed on the next engagement instead of slewing from stale state.
		s.initialized = false
	}
}
