// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 converts one float32 sample in [-1, 1] to 16-bit PCM.
func Float32ToInt16(x float32) int16 {
	// Clamp and scale
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// Use 32767 for positive max to avoid overflow
	return int16(x * 32767.0)
}

// Float32SliceToInt16 converts a whole sample buffer to 16-bit PCM.
func Float32SliceToInt16(src []float32) []int16 {
	out := make([]int16, len(src))
	for i, x := range src {
		out[i] = Float32ToInt16(x)
	}
	return out
}
