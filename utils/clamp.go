// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Clamp32 limits x to [lo, hi]. NaN maps to lo.
func Clamp32(x, lo, hi float32) float32 {
	if x >= lo && x <= hi {
		return x
	}
	if x > hi {
		return hi
	}
	return lo
}

// Finite32 replaces NaN with 0 and infinities with the largest finite
// float32 of the same sign.
func Finite32(x float32) float32 {
	if x != x {
		return 0
	}
	return max(-math.MaxFloat32, min(x, math.MaxFloat32))
}
