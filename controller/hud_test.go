package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcessHUDAlertSysState(t *testing.T) {
	cases := []struct {
		name                string
		enabled             bool
		alert               VisualAlert
		leftLane, rightLane bool
		want                int
	}{
		{"both lanes enabled", true, VisualAlertNone, true, true, 3},
		{"both lanes disabled", false, VisualAlertNone, true, true, 4},
		{"warning overrides lanes", false, VisualAlertSteerRequired, false, false, 3},
		{"left only", false, VisualAlertNone, true, false, 5},
		{"right only", false, VisualAlertNone, false, true, 6},
		{"no lanes", true, VisualAlertNone, false, false, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := ProcessHUDAlert(tc.enabled, false, tc.alert, tc.leftLane, tc.rightLane, false, false)
			assert.Equal(t, tc.want, h.SysState)
		})
	}
}

func TestProcessHUDAlertDepartureCodes(t *testing.T) {
	h := ProcessHUDAlert(true, true, VisualAlertNone, true, true, true, false)
	assert.Equal(t, 1, h.LeftLaneWarning)
	assert.Equal(t, 0, h.RightLaneWarning)

	h = ProcessHUDAlert(true, false, VisualAlertNone, true, true, true, true)
	assert.Equal(t, 2, h.LeftLaneWarning)
	assert.Equal(t, 2, h.RightLaneWarning)
}

func TestProcessHUDAlertIdempotent(t *testing.T) {
	a := ProcessHUDAlert(true, true, VisualAlertSteerRequired, true, false, true, true)
	b := ProcessHUDAlert(true, true, VisualAlertSteerRequired, true, false, true, true)
	assert.Equal(t, a, b)
}
