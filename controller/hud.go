package controller

// HUDStatus is the display state derived for one cycle.
type HUDStatus struct {
	SysWarning       bool
	SysState         int
	LeftLaneWarning  int
	RightLaneWarning int
}

// ProcessHUDAlert maps enablement, lane visibility and departure flags to
// the cluster's display codes. Pure function, no memory.
func ProcessHUDAlert(enabled, premiumCluster bool, alert VisualAlert,
	leftLane, rightLane, leftDepart, rightDepart bool) HUDStatus {

	h := HUDStatus{SysWarning: alert == VisualAlertSteerRequired}

	// sysState 1 means no lane line visible.
	h.SysState = 1
	switch {
	case (leftLane && rightLane) || h.SysWarning:
		if enabled || h.SysWarning {
			h.SysState = 3
		} else {
			h.SysState = 4
		}
	case leftLane:
		h.SysState = 5
	case rightLane:
		h.SysState = 6
	}

	departCode := 2
	if premiumCluster {
		departCode = 1
	}
	if leftDepart {
		h.LeftLaneWarning = departCode
	}
	if rightDepart {
		h.RightLaneWarning = departCode
	}
	return h
}
