// SPDX-License-Identifier: EPL-2.0

package utils

// FloatToPCM scales a sample in [-1,1] to the integer range of a PCM bit depth.
// Out of range input is clamped first. 8-bit PCM is unsigned, so the result is
// offset around 128; every other depth is signed and symmetric.
// Unknown depths are treated as 16-bit.
func FloatToPCM(x float32, bitDepth int) int {
	x = Clamp(x, -1, 1)

	switch bitDepth {
	case 8:
		return int(x*127) + 128
	case 24:
		return int(float64(x) * 8388607)
	case 32:
		return int(float64(x) * 2147483647)
	default:
		return int(x * 32767)
	}
}
