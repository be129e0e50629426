package lineflux

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-spectro/internal/quadrature"
	"github.com/cwbudde/algo-spectro/measure/ew"
	"github.com/cwbudde/algo-spectro/spectro/spectrum"
)

// Errors returned by line-flux measurement.
var (
	ErrNonPositiveFlux = errors.New("lineflux: integrated line flux is not positive")
)

// fwhmFactor converts a Gaussian RMS width to a full width at half maximum.
var fwhmFactor = 2 * math.Sqrt(2*math.Ln2)

// Result holds line-flux measurement results.
type Result struct {
	Flux            float64 // integrated continuum-subtracted line flux
	EquivalentWidth float64
	Centroid        float64 // flux-weighted mean wavelength
	RMSWidth        float64 // flux-weighted wavelength spread
	FWHM            float64 // Gaussian-equivalent full width at half maximum
	Peak            float64 // largest continuum-subtracted flux
	PeakWavelength  float64
	MeanContinuum   float64
	LineSamples     int
}

// Measure integrates the continuum-subtracted line flux inside the line
// window and derives the profile moments. The continuum fit and window
// semantics are those of [ew.Measure]; profile moments use only the
// positive part of the excess, so absorption lines report zero moments.
func Measure(spec *spectrum.Spectrum, cfg ew.Config) (Result, error) {
	est := ew.NewEstimator(cfg)

	wl, excess, cont, partial, err := est.Excess(spec)
	if err != nil {
		return Result{}, err
	}

	weights := make([]float64, len(wl))
	quadrature.Weights(weights, wl)

	total := 0.0
	equiv := 0.0
	centroid := 0.0

	peak := excess[0]
	peakWL := wl[0]
	meanCont := 0.0

	for i := range wl {
		total += weights[i] * excess[i]
		equiv += weights[i] * excess[i] / cont[i]
		meanCont += cont[i]

		if excess[i] > peak {
			peak = excess[i]
			peakWL = wl[i]
		}
	}

	meanCont /= float64(len(wl))

	res := Result{
		Flux:            total,
		EquivalentWidth: equiv,
		Peak:            peak,
		PeakWavelength:  peakWL,
		MeanContinuum:   meanCont,
		LineSamples:     partial.LineSamples,
	}

	// Moments over the positive excess only. Negative samples are noise or
	// absorption and would destabilize the weighted mean.
	positive := 0.0

	for i := range wl {
		if excess[i] <= 0 {
			continue
		}

		w := weights[i] * excess[i]
		positive += w
		centroid += w * wl[i]
	}

	if positive <= 0 {
		return res, nil
	}

	centroid /= positive

	spread := 0.0

	for i := range wl {
		if excess[i] <= 0 {
			continue
		}

		d := wl[i] - centroid
		spread += weights[i] * excess[i] * d * d
	}

	res.Centroid = centroid
	res.RMSWidth = math.Sqrt(spread / positive)
	res.FWHM = fwhmFactor * res.RMSWidth

	return res, nil
}
