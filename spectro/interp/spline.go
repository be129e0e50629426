package interp

import (
	"errors"
	"sort"
)

// Errors returned by interpolation and fitting functions.
var (
	ErrLengthMismatch = errors.New("interp: x and y lengths differ")
	ErrTooFewPoints   = errors.New("interp: need at least two points")
	ErrNotIncreasing  = errors.New("interp: x must be strictly increasing")
	ErrDegenerate     = errors.New("interp: abscissae are degenerate")
)

// CubicSpline is a natural cubic spline through a set of knots. It is
// piecewise cubic with continuous first and second derivatives; the second
// derivative vanishes at both end knots. With exactly two knots it reduces
// to linear interpolation.
type CubicSpline struct {
	xs []float64
	ys []float64
	m  []float64 // second derivatives at the knots
}

// NewCubicSpline fits a natural cubic spline through the points (xs, ys).
// The abscissae must be strictly increasing and both slices must have the
// same length of at least two. The input slices are copied.
func NewCubicSpline(xs, ys []float64) (*CubicSpline, error) {
	if len(xs) != len(ys) {
		return nil, ErrLengthMismatch
	}

	n := len(xs)
	if n < 2 {
		return nil, ErrTooFewPoints
	}

	for i := 1; i < n; i++ {
		if xs[i] <= xs[i-1] {
			return nil, ErrNotIncreasing
		}
	}

	s := &CubicSpline{
		xs: make([]float64, n),
		ys: make([]float64, n),
		m:  make([]float64, n),
	}
	copy(s.xs, xs)
	copy(s.ys, ys)

	if n > 2 {
		solveSecondDerivatives(s.xs, s.ys, s.m)
	}

	return s, nil
}

// solveSecondDerivatives fills m with the natural-spline second derivatives
// using the Thomas algorithm on the interior tridiagonal system.
// m[0] and m[n-1] stay zero (natural boundary conditions).
func solveSecondDerivatives(xs, ys, m []float64) {
	n := len(xs)
	k := n - 2 // interior knots

	diag := make([]float64, k)
	rhs := make([]float64, k)

	for i := range diag {
		h0 := xs[i+1] - xs[i]
		h1 := xs[i+2] - xs[i+1]

		diag[i] = 2 * (h0 + h1)
		rhs[i] = 6 * ((ys[i+2]-ys[i+1])/h1 - (ys[i+1]-ys[i])/h0)
	}

	// Forward sweep: eliminate the sub-diagonal h terms.
	for i := 1; i < k; i++ {
		h := xs[i+1] - xs[i]
		w := h / diag[i-1]

		diag[i] -= w * h
		rhs[i] -= w * rhs[i-1]
	}

	// Back substitution into the interior of m.
	m[k] = rhs[k-1] / diag[k-1]

	for i := k - 1; i >= 1; i-- {
		h := xs[i+1] - xs[i]
		m[i] = (rhs[i-1] - h*m[i+1]) / diag[i-1]
	}
}

// At evaluates the spline at x. Outside the knot range the polynomial of the
// nearest end segment is extended; callers wanting strict bounds should check
// against [Domain] first.
func (s *CubicSpline) At(x float64) float64 {
	n := len(s.xs)

	// Locate the segment such that xs[i] <= x < xs[i+1].
	i := sort.SearchFloat64s(s.xs, x)
	if i > 0 {
		i--
	}

	if i > n-2 {
		i = n - 2
	}

	h := s.xs[i+1] - s.xs[i]
	a := (s.xs[i+1] - x) / h
	b := (x - s.xs[i]) / h

	return a*s.ys[i] + b*s.ys[i+1] +
		((a*a*a-a)*s.m[i]+(b*b*b-b)*s.m[i+1])*(h*h)/6
}

// Evaluate fills dst with the spline evaluated at each abscissa in xs.
// Both slices must have the same length.
func (s *CubicSpline) Evaluate(dst, xs []float64) error {
	if len(dst) != len(xs) {
		return ErrLengthMismatch
	}

	for i, x := range xs {
		dst[i] = s.At(x)
	}

	return nil
}

// Domain returns the knot range [lo, hi] of the spline.
func (s *CubicSpline) Domain() (lo, hi float64) {
	return s.xs[0], s.xs[len(s.xs)-1]
}
