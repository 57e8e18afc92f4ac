package nn

import (
	"math"
)

// MaxAbsDiff calculates the maximum absolute difference between two slices
// over their common length
func MaxAbsDiff(a, b []float64) float64 {
	n := min(len(a), len(b))
	m := 0.0
	for i := 0; i < n; i++ {
		d := math.Abs(a[i] - b[i])
		if d > m {
			m = d
		}
	}
	return m
}
