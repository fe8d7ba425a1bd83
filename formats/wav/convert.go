// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Convert turns raw little-endian PCM into normalized float32 samples.
//
// 8-bit data is unsigned around 128. 16 and 24-bit data is signed. 32-bit
// data is ambiguous: when the first sample read as an IEEE float lies in
// [-1,1] the whole payload is taken as float32, otherwise as signed int32.
// Integer PCM whose first sample happens to look like a small float is
// misread by this rule; it is kept for compatibility with existing material.
func Convert(raw []byte, bitsPerSample int) ([]float32, error) {
	switch bitsPerSample {
	case 8:
		out := make([]float32, len(raw))
		for i, b := range raw {
			out[i] = (float32(b) - 128) / 128
		}
		return out, nil

	case 16:
		n := len(raw) / 2
		out := make([]float32, n)
		for i := range n {
			v := int16(binary.LittleEndian.Uint16(raw[2*i:]))
			out[i] = float32(v) / 32768
		}
		return out, nil

	case 24:
		n := len(raw) / 3
		out := make([]float32, n)
		for i := range n {
			b := raw[3*i : 3*i+3]
			u := uint32(b[2])<<16 | uint32(b[1])<<8 | uint32(b[0])
			if u&0x800000 != 0 {
				u |= 0xFF000000
			}
			out[i] = float32(int32(u)) / 8388608
		}
		return out, nil

	case 32:
		n := len(raw) / 4
		out := make([]float32, n)
		if n == 0 {
			return out, nil
		}

		first := math.Float32frombits(binary.LittleEndian.Uint32(raw))
		if first >= -1 && first <= 1 {
			for i := range n {
				out[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[4*i:]))
			}
			return out, nil
		}

		for i := range n {
			v := int32(binary.LittleEndian.Uint32(raw[4*i:]))
			out[i] = float32(v) / 2147483648
		}
		return out, nil

	default:
		return []float32{}, fmt.Errorf("%w: %d bits", ErrUnsupportedBitDepth, bitsPerSample)
	}
}
