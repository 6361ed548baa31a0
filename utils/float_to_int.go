// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 clamps x to [-1, 1] and scales it to the full int16 range.
func Float32ToInt16(x float32) int16 {
	return int16(Float32ToPCM(x, 16))
}

// Float32ToPCM clamps x to [-1, 1] and scales it to a signed integer of
// bitDepth bits. Negative values reach the type's minimum, positive values
// its maximum.
func Float32ToPCM(x float32, bitDepth int) int {
	x = Clamp32(x, -1, 1)

	full := float64(int64(1) << (bitDepth - 1))
	if x < 0 {
		return int(float64(x) * full)
	}
	return int(float64(x) * (full - 1))
}
