package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMap() *CANMap {
	fd := &FrameDef{
		ID:   0x340,
		Name: "LANE_KEEP_CMD",
		DLC:  8,
		Signals: []SignalDef{
			{Name: "msg_count", StartBit: 0, BitLength: 4, Max: 15},
			{Name: "steer_torque", StartBit: 4, BitLength: 11, Signed: true, Factor: 1, Min: -1024, Max: 1023},
			{Name: "steer_active", StartBit: 15, BitLength: 1, Max: 1},
			{Name: "sys_state", StartBit: 17, BitLength: 3, Max: 7, Default: 1},
		},
	}
	for i := range fd.Signals {
		if fd.Signals[i].Factor == 0 {
			fd.Signals[i].Factor = 1
		}
	}
	return &CANMap{
		ByID:   map[uint32]*FrameDef{fd.ID: fd},
		ByName: map[string]*FrameDef{fd.Name: fd},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	m := testMap()
	values := map[string]float64{
		"msg_count":    9,
		"steer_torque": -409,
		"steer_active": 1,
		"sys_state":    3,
	}

	frame, err := m.EncodeFrame("LANE_KEEP_CMD", values)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x340), uint32(frame.ID))
	assert.Equal(t, uint8(8), frame.Length)

	decoded, err := m.DecodeFrame(0x340, frame.Data[:frame.Length])
	require.NoError(t, err)
	for k, v := range values {
		assert.Equal(t, v, decoded[k], k)
	}
}

func TestEncodeClampsToDeclaredBounds(t *testing.T) {
	m := testMap()
	frame, err := m.EncodeFrame("LANE_KEEP_CMD", map[string]float64{"steer_torque": 5000})
	require.NoError(t, err)

	decoded, err := m.DecodeFrame(0x340, frame.Data[:frame.Length])
	require.NoError(t, err)
	assert.Equal(t, 1023.0, decoded["steer_torque"])
}

func TestSignedEncodingAtWidthBounds(t *testing.T) {
	m := testMap()

	// -1024 is the most negative value an 11-bit signed signal holds.
	frame, err := m.EncodeFrame("LANE_KEEP_CMD", map[string]float64{"steer_torque": -1024})
	require.NoError(t, err)
	decoded, err := m.DecodeFrame(0x340, frame.Data[:frame.Length])
	require.NoError(t, err)
	assert.Equal(t, -1024.0, decoded["steer_torque"])

	frame, err = m.EncodeFrame("LANE_KEEP_CMD", map[string]float64{"steer_torque": -5000})
	require.NoError(t, err)
	decoded, err = m.DecodeFrame(0x340, frame.Data[:frame.Length])
	require.NoError(t, err)
	assert.Equal(t, -1024.0, decoded["steer_torque"])
}

func TestEncodeUsesSignalDefaults(t *testing.T) {
	m := testMap()
	frame, err := m.EncodeFrame("LANE_KEEP_CMD", nil)
	require.NoError(t, err)

	decoded, err := m.DecodeFrame(0x340, frame.Data[:frame.Length])
	require.NoError(t, err)
	assert.Equal(t, 1.0, decoded["sys_state"])
}

func TestUnknownFrameRejected(t *testing.T) {
	m := testMap()
	_, err := m.EncodeFrame("NOPE", nil)
	assert.Error(t, err)

	_, err = m.DecodeFrame(0x999, make([]byte, 8))
	assert.Error(t, err)
}
