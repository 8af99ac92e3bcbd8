package controller

// Smoother is the longitudinal-fusion collaborator. It blends the
// controller's accel command with the vehicle's own reported request and
// may inject additional cruise events.
type Smoother interface {
	// IsActive reports whether the smoother claims the current cycle; the
	// auto-resume machine holds off while it does.
	IsActive(frame int) bool

	// WaitCount is the cooldown, in cycles, enforced after a resume burst.
	WaitCount() int

	// Fuse blends the controller's accel command with the native request.
	// An error skips fusion for this cycle only; the limiter's own bounded
	// output is emitted instead.
	Fuse(accelCmd, nativeAccel float64) (fused, leadRelDist float64, err error)

	// InjectEvents lets the smoother add its own conditions to the event
	// set before it reaches the planner.
	InjectEvents(events EventSet)

	// Update is invoked unconditionally every cycle so the smoother can
	// track its own internal state.
	Update(enabled bool, snap *Snapshot, frame int, accelCmd float64)
}

// defaultResumeWait is the cooldown used when no smoother supplies one.
const defaultResumeWait = 50

// NoopSmoother is the fusion strategy for variants without a smoother: it
// passes the limiter's command through untouched.
type NoopSmoother struct {
	Wait int
}

func (NoopSmoother) IsActive(int) bool { return false }

func (n NoopSmoother) WaitCount() int {
	if n.Wait <= 0 {
		return defaultResumeWait
	}
	return n.Wait
}

func (NoopSmoother) Fuse(accelCmd, _ float64) (float64, float64, error) {
	return accelCmd, 0, nil
}

func (NoopSmoother) InjectEvents(EventSet) {}

func (NoopSmoother) Update(bool, *Snapshot, int, float64) {}
