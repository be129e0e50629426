package flux

import (
	"math"
	"sort"

	"github.com/cwbudde/algo-vecmath"
)

// Stats holds flux-array statistics.
type Stats struct {
	Samples  int
	Total    float64 // sum of flux values
	Mean     float64
	RMS      float64 // sqrt of the mean square (about zero)
	StdDev   float64 // spread about the mean
	Variance float64
	Skewness float64
	Kurtosis float64 // excess kurtosis
	Min      float64
	MinPos   int
	Max      float64
	MaxPos   int
	Peak     float64 // max(|Max|, |Min|)
}

// Calculate computes all flux statistics in a single pass using Welford's
// online algorithm for numerical stability on higher-order moments.
func Calculate(flux []float64) Stats {
	n := len(flux)
	if n == 0 {
		return Stats{}
	}

	// Welford accumulators.
	var (
		mean float64
		m2   float64
		m3   float64
		m4   float64
	)

	var (
		sumSq  float64
		maxVal = flux[0]
		maxPos int
		minVal = flux[0]
		minPos int
	)

	for i, x := range flux {
		ni := float64(i + 1)
		delta := x - mean
		deltaN := delta / ni
		deltaN2 := deltaN * deltaN
		term1 := delta * deltaN * float64(i)

		// M4 must be updated before M3, and M3 before M2.
		m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*m2 - 4*deltaN*m3
		m3 += term1*deltaN*(float64(i)-1) - 3*deltaN*m2
		m2 += term1
		mean += deltaN

		sumSq += x * x

		if x > maxVal {
			maxVal = x
			maxPos = i
		}

		if x < minVal {
			minVal = x
			minPos = i
		}
	}

	variance := m2 / float64(n)

	skewness := 0.0
	kurtosis := 0.0

	if variance > 0 {
		skewness = math.Sqrt(float64(n)) * m3 / math.Pow(m2, 1.5)
		kurtosis = float64(n)*m4/(m2*m2) - 3
	}

	return Stats{
		Samples:  n,
		Total:    mean * float64(n),
		Mean:     mean,
		RMS:      math.Sqrt(sumSq / float64(n)),
		StdDev:   math.Sqrt(variance),
		Variance: variance,
		Skewness: skewness,
		Kurtosis: kurtosis,
		Min:      minVal,
		MinPos:   minPos,
		Max:      maxVal,
		MaxPos:   maxPos,
		Peak:     math.Max(math.Abs(maxVal), math.Abs(minVal)),
	}
}

// RMS returns the root mean square of the flux values about zero.
func RMS(flux []float64) float64 {
	if len(flux) == 0 {
		return 0
	}

	return math.Sqrt(vecmath.DotProduct(flux, flux) / float64(len(flux)))
}

// Median returns the median flux value. Returns 0 for an empty input.
func Median(flux []float64) float64 {
	n := len(flux)
	if n == 0 {
		return 0
	}

	sorted := make([]float64, n)
	copy(sorted, flux)
	sort.Float64s(sorted)

	if n%2 == 1 {
		return sorted[n/2]
	}

	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// derSNRGain converts the median absolute second difference to a 1-sigma
// noise estimate for Gaussian noise: 1.482602 / sqrt(6).
const derSNRGain = 1.482602218505602 / 2.449489742783178

// Noise estimates the 1-sigma per-sample noise of a flux array from the
// median absolute second difference over a two-sample baseline (the DER_SNR
// noise estimator). The estimate is insensitive to smooth continuum slopes
// and isolated lines. Requires at least five samples; returns 0 otherwise.
func Noise(flux []float64) float64 {
	n := len(flux)
	if n < 5 {
		return 0
	}

	diffs := make([]float64, 0, n-4)
	for i := 2; i < n-2; i++ {
		diffs = append(diffs, math.Abs(2*flux[i]-flux[i-2]-flux[i+2]))
	}

	return derSNRGain * Median(diffs)
}

// DERSNR estimates the signal-to-noise ratio of a flux array with the
// DER_SNR method: the median flux over the [Noise] estimate.
// Requires at least five samples; returns 0 otherwise.
func DERSNR(flux []float64) float64 {
	if len(flux) < 5 {
		return 0
	}

	noise := Noise(flux)
	if noise == 0 {
		return math.Inf(1)
	}

	return Median(flux) / noise
}
