package utils

import (
	"fmt"
	"math"

	"go.einride.tech/can"
)

// signalMask covers the low bitLen bits of a signal.
func signalMask(bitLen int) uint64 {
	if bitLen >= 64 {
		return ^uint64(0)
	}
	return uint64(1)<<bitLen - 1
}

func insertBits(payload uint64, startBit, bitLen int, value uint64) uint64 {
	mask := signalMask(bitLen)
	payload &^= mask << startBit
	return payload | (value&mask)<<startBit
}

func extractBits(payload uint64, startBit, bitLen int) uint64 {
	return (payload >> startBit) & signalMask(bitLen)
}

// signExtend reads the low bitLen bits as a two's-complement value.
func signExtend(u uint64, bitLen int) int64 {
	shift := 64 - bitLen
	return int64(u<<shift) >> shift
}

// boundRaw clips a raw count to what bitLen bits can represent.
func boundRaw(raw int64, bitLen int, signed bool) int64 {
	if bitLen <= 0 || bitLen >= 64 {
		return raw
	}
	var lo, hi int64
	if signed {
		hi = int64(signalMask(bitLen) >> 1)
		lo = -hi - 1
	} else {
		hi = int64(signalMask(bitLen))
	}
	if raw < lo {
		return lo
	}
	if raw > hi {
		return hi
	}
	return raw
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// EncodePayload packs physical signal values into a frame payload. Signals
// missing from values take their declared defaults; out-of-range values
// clamp to the signal's declared bounds.
func (m *CANMap) EncodePayload(frameName string, values map[string]float64) ([]byte, uint32, error) {
	fd, err := m.FrameByName(frameName)
	if err != nil {
		return nil, 0, err
	}
	if fd.DLC <= 0 || fd.DLC > 8 {
		return nil, 0, fmt.Errorf("frame %s has invalid DLC %d", fd.Name, fd.DLC)
	}

	var payload uint64
	for _, s := range fd.Signals {
		v, ok := values[s.Name]
		if !ok {
			v = s.Default
		}

		v = clamp(v, s.Min, s.Max)

		raw := int64(math.Round((v - s.Offset) / s.Factor))
		raw = boundRaw(raw, s.BitLength, s.Signed)

		// insertBits masks to the signal width, which turns a negative raw
		// into its two's-complement encoding.
		payload = insertBits(payload, s.StartBit, s.BitLength, uint64(raw))
	}

	out := make([]byte, fd.DLC)
	for i := 0; i < fd.DLC; i++ {
		out[i] = byte((payload >> (8 * i)) & 0xFF)
	}
	return out, fd.ID, nil
}

// EncodeFrame produces an einride can.Frame ready to transmit.
func (m *CANMap) EncodeFrame(frameName string, values map[string]float64) (can.Frame, error) {
	payload, id, err := m.EncodePayload(frameName, values)
	if err != nil {
		return can.Frame{}, err
	}

	var f can.Frame
	f.ID = id
	f.Length = uint8(len(payload))
	copy(f.Data[:], payload)
	return f, nil
}

// DecodeFrame unpacks a received payload into physical signal values.
func (m *CANMap) DecodeFrame(frameID uint32, data []byte) (map[string]float64, error) {
	fd, err := m.FrameByID(frameID)
	if err != nil {
		return nil, err
	}
	if len(data) < fd.DLC {
		return nil, fmt.Errorf("frame 0x%X expects DLC %d, got %d", frameID, fd.DLC, len(data))
	}

	var payload uint64
	for i := 0; i < fd.DLC && i < 8; i++ {
		payload |= uint64(data[i]) << (8 * i)
	}

	out := make(map[string]float64, len(fd.Signals))
	for _, s := range fd.Signals {
		u := extractBits(payload, s.StartBit, s.BitLength)
		raw := int64(u)
		if s.Signed {
			raw = signExtend(u, s.BitLength)
		}
		out[s.Name] = float64(raw)*s.Factor + s.Offset
	}
	return out, nil
}
