package interp

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-spectro/internal/testutil"
)

func TestCubicSplineValidation(t *testing.T) {
	cases := []struct {
		name string
		xs   []float64
		ys   []float64
		want error
	}{
		{"length mismatch", []float64{1, 2, 3}, []float64{1, 2}, ErrLengthMismatch},
		{"too few", []float64{1}, []float64{1}, ErrTooFewPoints},
		{"not increasing", []float64{1, 3, 2}, []float64{1, 1, 1}, ErrNotIncreasing},
		{"duplicate", []float64{1, 2, 2}, []float64{1, 1, 1}, ErrNotIncreasing},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCubicSpline(tc.xs, tc.ys)
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestCubicSplineInterpolatesKnots(t *testing.T) {
	xs := []float64{0, 1, 2.5, 4, 7, 9}
	ys := []float64{1, -2, 0.5, 3, 3, -1}

	s, err := NewCubicSpline(xs, ys)
	if err != nil {
		t.Fatalf("NewCubicSpline: %v", err)
	}

	got := make([]float64, len(xs))
	if err := s.Evaluate(got, xs); err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, got, ys, 1e-12)
}

func TestCubicSplineTwoPointsIsLinear(t *testing.T) {
	s, err := NewCubicSpline([]float64{0, 2}, []float64{1, 5})
	if err != nil {
		t.Fatalf("NewCubicSpline: %v", err)
	}

	for _, x := range []float64{0, 0.5, 1, 1.5, 2} {
		want := 1 + 2*x
		if got := s.At(x); math.Abs(got-want) > 1e-12 {
			t.Fatalf("At(%v): got %v, want %v", x, got, want)
		}
	}
}

func TestCubicSplineReproducesLine(t *testing.T) {
	// A natural spline through samples of a straight line is that line.
	xs := []float64{0, 1, 3, 4.5, 6, 10}
	ys := make([]float64, len(xs))

	for i := range xs {
		ys[i] = 3*xs[i] - 2
	}

	s, err := NewCubicSpline(xs, ys)
	if err != nil {
		t.Fatalf("NewCubicSpline: %v", err)
	}

	for x := 0.0; x <= 10; x += 0.25 {
		want := 3*x - 2
		if got := s.At(x); math.Abs(got-want) > 1e-9 {
			t.Fatalf("At(%v): got %v, want %v", x, got, want)
		}
	}
}

func TestCubicSplineApproximatesSmoothCurve(t *testing.T) {
	// Dense knots on a sine; mid-knot evaluation should be close.
	n := 41
	xs := make([]float64, n)
	ys := make([]float64, n)

	for i := range xs {
		xs[i] = float64(i) * 0.25
		ys[i] = math.Sin(xs[i])
	}

	s, err := NewCubicSpline(xs, ys)
	if err != nil {
		t.Fatalf("NewCubicSpline: %v", err)
	}

	// Stay away from the ends where natural boundary conditions bend.
	for x := 1.0; x <= 9.0; x += 0.125 {
		if got := s.At(x); math.Abs(got-math.Sin(x)) > 2e-4 {
			t.Fatalf("At(%v): got %v, want %v", x, got, math.Sin(x))
		}
	}
}

func TestCubicSplineContinuousFirstDerivative(t *testing.T) {
	xs := []float64{0, 1, 2, 3, 4}
	ys := []float64{0, 1, 0, 1, 0}

	s, err := NewCubicSpline(xs, ys)
	if err != nil {
		t.Fatalf("NewCubicSpline: %v", err)
	}

	const h = 1e-6

	for _, knot := range []float64{1, 2, 3} {
		left := (s.At(knot) - s.At(knot-h)) / h
		right := (s.At(knot+h) - s.At(knot)) / h

		if math.Abs(left-right) > 1e-4 {
			t.Fatalf("first derivative jump at %v: %v vs %v", knot, left, right)
		}
	}
}

func TestCubicSplineEvaluate(t *testing.T) {
	s, err := NewCubicSpline([]float64{0, 1, 2}, []float64{0, 1, 4})
	if err != nil {
		t.Fatalf("NewCubicSpline: %v", err)
	}

	xs := []float64{0, 0.5, 1, 1.5, 2}
	dst := make([]float64, len(xs))

	if err := s.Evaluate(dst, xs); err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	for i, x := range xs {
		if dst[i] != s.At(x) {
			t.Fatalf("Evaluate[%d] disagrees with At", i)
		}
	}

	if err := s.Evaluate(make([]float64, 2), xs); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("length mismatch: got %v", err)
	}
}

func TestCubicSplineDomain(t *testing.T) {
	s, err := NewCubicSpline([]float64{2, 3, 5}, []float64{0, 0, 0})
	if err != nil {
		t.Fatalf("NewCubicSpline: %v", err)
	}

	lo, hi := s.Domain()
	if lo != 2 || hi != 5 {
		t.Fatalf("Domain: got (%v, %v)", lo, hi)
	}
}

func TestFitLineExact(t *testing.T) {
	xs := []float64{0, 1, 2, 3, 10}
	ys := make([]float64, len(xs))

	for i := range xs {
		ys[i] = -0.5*xs[i] + 4
	}

	slope, intercept, err := FitLine(xs, ys)
	if err != nil {
		t.Fatalf("FitLine: %v", err)
	}

	if math.Abs(slope+0.5) > 1e-12 || math.Abs(intercept-4) > 1e-12 {
		t.Fatalf("got slope %v intercept %v", slope, intercept)
	}
}

func TestFitLineAveragesNoise(t *testing.T) {
	// Symmetric deviations about a flat line leave the fit unchanged.
	xs := []float64{0, 1, 2, 3}
	ys := []float64{1.1, 0.9, 1.1, 0.9}

	slope, intercept, err := FitLine(xs, ys)
	if err != nil {
		t.Fatalf("FitLine: %v", err)
	}

	if math.Abs(slope-(-0.04)) > 1e-12 {
		t.Fatalf("slope: got %v", slope)
	}

	if math.Abs(intercept-1.06) > 1e-12 {
		t.Fatalf("intercept: got %v", intercept)
	}
}

func TestFitLineErrors(t *testing.T) {
	if _, _, err := FitLine([]float64{1, 2}, []float64{1}); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("mismatch: got %v", err)
	}

	if _, _, err := FitLine([]float64{1}, []float64{1}); !errors.Is(err, ErrTooFewPoints) {
		t.Fatalf("too few: got %v", err)
	}

	if _, _, err := FitLine([]float64{2, 2, 2}, []float64{1, 2, 3}); !errors.Is(err, ErrDegenerate) {
		t.Fatalf("degenerate: got %v", err)
	}
}
