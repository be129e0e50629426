// Package quadrature implements trapezoidal integration over non-uniform
// sample grids.
package quadrature

import (
	"github.com/cwbudde/algo-vecmath"
)

// Weights fills dst with the trapezoid quadrature weights for the grid xs,
// such that the integral of sampled values ys is the dot product of ys and
// dst. Both slices must have the same length of at least two.
func Weights(dst, xs []float64) {
	n := len(xs)
	if len(dst) != n || n < 2 {
		return
	}

	dst[0] = (xs[1] - xs[0]) / 2
	dst[n-1] = (xs[n-1] - xs[n-2]) / 2

	for i := 1; i < n-1; i++ {
		dst[i] = (xs[i+1] - xs[i-1]) / 2
	}
}

// Trapezoid integrates the samples ys over the grid xs with the trapezoidal
// rule. Returns 0 for fewer than two samples or mismatched lengths.
func Trapezoid(xs, ys []float64) float64 {
	if len(xs) != len(ys) || len(xs) < 2 {
		return 0
	}

	w := make([]float64, len(xs))
	Weights(w, xs)

	return vecmath.DotProduct(ys, w)
}
