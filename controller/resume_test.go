package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adas-actuation-core/calibration"
)

type stubSmoother struct {
	NoopSmoother
	active bool
	wait   int
}

func (s *stubSmoother) IsActive(int) bool { return s.active }
func (s *stubSmoother) WaitCount() int    { return s.wait }

func standstillSnapshot(lead float64) Snapshot {
	return Snapshot{Standstill: true, CruiseEnabled: true, LeadDistance: lead}
}

func countResumePresses(msgs []OutgoingMessage) int {
	n := 0
	for _, m := range msgs {
		if m.Frame == MsgCluster && m.Values["button"] == float64(ButtonResAccel) {
			n++
		}
	}
	return n
}

func TestAutoResumeBurstBoundedAtEight(t *testing.T) {
	sm := &stubSmoother{wait: 30}
	c := newTestController(t, testCal(t, calibration.VariantSedan, nil), sm)

	// First standstill cycle captures the baseline, no press.
	snap := standstillSnapshot(5)
	msgs, _ := c.Update(engagedInput(), &snap)
	assert.Equal(t, 0, countResumePresses(msgs))

	// Lead creeps away: one press per cycle, eight total, then cooldown.
	presses := 0
	lead := 5.0
	for i := 0; i < 20; i++ {
		lead += 0.1
		snap := standstillSnapshot(lead)
		msgs, _ := c.Update(engagedInput(), &snap)
		presses += countResumePresses(msgs)
	}
	assert.Equal(t, resumeBurstMax, presses)

	// Cooldown equals the collaborator-supplied wait count; presses resume
	// only after it elapses. 20 cycles ran since the burst ended, 12 of
	// them inside the cooldown window.
	st := c.State()
	assert.Equal(t, 30-12, st.ResumeWaitTimer)
}

func TestAutoResumePressCountersSequential(t *testing.T) {
	c := newTestController(t, testCal(t, calibration.VariantSedan, nil), &stubSmoother{wait: 100})

	snap := standstillSnapshot(5)
	c.Update(engagedInput(), &snap)

	var counters []float64
	lead := 5.0
	for i := 0; i < 8; i++ {
		lead += 0.1
		snap := standstillSnapshot(lead)
		msgs, _ := c.Update(engagedInput(), &snap)
		for _, m := range msgs {
			if m.Frame == MsgCluster && m.Values["button"] == float64(ButtonResAccel) {
				counters = append(counters, m.Values["msg_count"])
			}
		}
	}
	require.Len(t, counters, 8)
	for i, cnt := range counters {
		assert.Equal(t, float64(i), cnt)
	}
}

func TestAutoResumeHoldsWhileSmootherActive(t *testing.T) {
	sm := &stubSmoother{active: true, wait: 10}
	c := newTestController(t, testCal(t, calibration.VariantSedan, nil), sm)

	snap := standstillSnapshot(5)
	c.Update(engagedInput(), &snap)
	for i := 0; i < 10; i++ {
		snap := standstillSnapshot(5 + float64(i))
		msgs, _ := c.Update(engagedInput(), &snap)
		assert.Equal(t, 0, countResumePresses(msgs))
	}
}

func TestAutoResumeResetsWhenMoving(t *testing.T) {
	c := newTestController(t, testCal(t, calibration.VariantSedan, nil), nil)

	snap := standstillSnapshot(5)
	c.Update(engagedInput(), &snap)
	require.NotZero(t, c.State().LastLeadDistance)

	moving := movingSnapshot()
	c.Update(engagedInput(), &moving)
	assert.Zero(t, c.State().LastLeadDistance)
}
