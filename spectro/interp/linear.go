package interp

// FitLine fits y = slope*x + intercept through the points (xs, ys) by least
// squares. The normal equations are solved on mean-centered abscissae for
// numerical stability. Returns [ErrDegenerate] when all abscissae coincide.
func FitLine(xs, ys []float64) (slope, intercept float64, err error) {
	if len(xs) != len(ys) {
		return 0, 0, ErrLengthMismatch
	}

	n := len(xs)
	if n < 2 {
		return 0, 0, ErrTooFewPoints
	}

	meanX := 0.0
	meanY := 0.0

	for i := range xs {
		meanX += xs[i]
		meanY += ys[i]
	}

	meanX /= float64(n)
	meanY /= float64(n)

	sxx := 0.0
	sxy := 0.0

	for i := range xs {
		dx := xs[i] - meanX

		sxx += dx * dx
		sxy += dx * (ys[i] - meanY)
	}

	if sxx == 0 {
		return 0, 0, ErrDegenerate
	}

	slope = sxy / sxx
	intercept = meanY - slope*meanX

	return slope, intercept, nil
}
