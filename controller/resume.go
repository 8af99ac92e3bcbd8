package controller

// updateAutoResume runs the standstill resume machine for one cycle. It
// reports whether a resume press is injected this cycle and the cluster
// counter to stamp on it. Presses come in bursts of at most resumeBurstMax,
// separated by the smoother-supplied cooldown.
func (c *Controller) updateAutoResume(snap *Snapshot) (press bool, counter int) {
	st := &c.state

	if !snap.Standstill {
		// Episode over; drop the baseline once the car moves.
		if st.LastLeadDistance != 0 {
			st.LastLeadDistance = 0
		}
		return false, 0
	}

	switch {
	case st.LastLeadDistance == 0:
		// First standstill cycle: capture the baseline.
		st.LastLeadDistance = snap.LeadDistance
		st.ResumeCnt = 0
		st.ResumeWaitTimer = 0

	case c.smoother.IsActive(st.Frame):
		// The smoother claims this cycle; hold off.

	case st.ResumeWaitTimer > 0:
		st.ResumeWaitTimer--

	case snap.LeadDistance != st.LastLeadDistance:
		press = true
		counter = st.ResumeCnt
		st.ResumeCnt++
		if st.ResumeCnt >= resumeBurstMax {
			st.ResumeCnt = 0
			st.ResumeWaitTimer = c.smoother.WaitCount()
		}
	}
	return press, counter
}
