package quadrature

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-spectro/internal/testutil"
)

func TestWeightsSumToRangeWidth(t *testing.T) {
	xs := []float64{0, 1, 2.5, 4, 8}
	w := make([]float64, len(xs))

	Weights(w, xs)

	sum := 0.0
	for _, v := range w {
		sum += v
	}

	testutil.RequireNearlyEqual(t, sum, 8, 1e-12)
}

func TestTrapezoidExactForLinear(t *testing.T) {
	// The trapezoidal rule integrates straight lines exactly, even on a
	// non-uniform grid.
	xs := []float64{0, 0.5, 2, 3.25, 5}
	ys := make([]float64, len(xs))

	for i := range xs {
		ys[i] = 2*xs[i] + 1
	}

	// Integral of 2x+1 over [0,5] is 25 + 5.
	testutil.RequireNearlyEqual(t, Trapezoid(xs, ys), 30, 1e-12)
}

func TestTrapezoidConstant(t *testing.T) {
	xs := []float64{4800, 4801, 4803, 4810}
	ys := []float64{1, 1, 1, 1}

	if got := Trapezoid(xs, ys); math.Abs(got-10) > 1e-12 {
		t.Fatalf("got %v, want 10", got)
	}
}

func TestTrapezoidQuadraticConvergence(t *testing.T) {
	integrate := func(n int) float64 {
		xs := make([]float64, n)
		ys := make([]float64, n)

		for i := range xs {
			xs[i] = float64(i) / float64(n-1) * math.Pi
			ys[i] = math.Sin(xs[i])
		}

		return Trapezoid(xs, ys)
	}

	coarse := math.Abs(integrate(51) - 2)
	fine := math.Abs(integrate(101) - 2)

	// Halving the step should reduce the error about fourfold.
	if ratio := coarse / fine; ratio < 3.5 || ratio > 4.5 {
		t.Fatalf("convergence ratio: got %v", ratio)
	}
}

func TestTrapezoidDegenerateInputs(t *testing.T) {
	if got := Trapezoid([]float64{1}, []float64{1}); got != 0 {
		t.Fatalf("single sample: got %v", got)
	}

	if got := Trapezoid([]float64{1, 2}, []float64{1}); got != 0 {
		t.Fatalf("length mismatch: got %v", got)
	}
}
