package shift

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-spectro/spectro/interp"
	"github.com/cwbudde/algo-spectro/spectro/spectrum"
	"github.com/cwbudde/algo-vecmath"
)

// SpeedOfLightKMS is the speed of light in km/s.
const SpeedOfLightKMS = 299792.458

const defaultSamples = 1024

// Errors returned by shift measurement.
var (
	ErrNilSpectrum  = errors.New("shift: spectrum is nil")
	ErrNoOverlap    = errors.New("shift: spectra share no wavelength overlap")
	ErrFlatSpectrum = errors.New("shift: spectrum carries no structure after detrending")
)

// Config holds cross-correlation parameters.
type Config struct {
	// Samples is the size of the common uniform grid both spectra are
	// resampled to. Values are rounded up to a power of two; 0 selects 1024.
	Samples int
	// MaxShift limits the searched shift, in wavelength units. 0 searches
	// up to a quarter of the overlap width.
	MaxShift float64
}

// Result holds the measured shift of an observed spectrum against a template.
type Result struct {
	Shift       float64 // wavelength units; positive = observed lies redward
	Velocity    float64 // km/s, relative to the overlap center wavelength
	Lag         float64 // fractional grid samples
	Correlation float64 // normalized correlation peak, -1..1
}

// Measure determines the wavelength shift of the observed spectrum relative
// to the template by FFT cross-correlation.
//
// Both spectra are linearly resampled onto a common uniform grid over their
// wavelength overlap and detrended with a least-squares line so the
// correlation responds to line structure rather than the continuum. The
// correlation peak is refined to sub-sample precision by a parabolic fit
// through the peak and its neighbors.
func Measure(observed, template *spectrum.Spectrum, cfg Config) (Result, error) {
	if observed == nil || template == nil {
		return Result{}, ErrNilSpectrum
	}

	obsRange := observed.Range()
	tmplRange := template.Range()

	overlap := spectrum.Window{
		Lo: math.Max(obsRange.Lo, tmplRange.Lo),
		Hi: math.Min(obsRange.Hi, tmplRange.Hi),
	}
	if !overlap.Valid() {
		return Result{}, ErrNoOverlap
	}

	n := cfg.Samples
	if n <= 0 {
		n = defaultSamples
	}

	n = nextPowerOf2(n)

	obs, err := resampleDetrended(observed, overlap, n)
	if err != nil {
		return Result{}, err
	}

	tmpl, err := resampleDetrended(template, overlap, n)
	if err != nil {
		return Result{}, err
	}

	corr, err := crossCorrelate(obs, tmpl)
	if err != nil {
		return Result{}, err
	}

	step := overlap.Width() / float64(n-1)

	maxLag := n / 4
	if cfg.MaxShift > 0 {
		maxLag = int(cfg.MaxShift / step)
	}

	if maxLag < 1 {
		maxLag = 1
	}

	if maxLag > n-1 {
		maxLag = n - 1
	}

	lag := peakLag(corr, maxLag)

	shift := lag * step
	center := (overlap.Lo + overlap.Hi) / 2

	energy := math.Sqrt(vecmath.DotProduct(obs, obs) * vecmath.DotProduct(tmpl, tmpl))

	// Evaluate the normalized peak in the time domain so the value does not
	// depend on the FFT scaling convention.
	peak := lagDot(obs, tmpl, int(math.Round(lag)))
	if energy > 0 {
		peak /= energy
	}

	return Result{
		Shift:       shift,
		Velocity:    SpeedOfLightKMS * shift / center,
		Lag:         lag,
		Correlation: peak,
	}, nil
}

// resampleDetrended resamples a spectrum onto n uniform samples over the
// window and removes the least-squares linear trend.
func resampleDetrended(spec *spectrum.Spectrum, w spectrum.Window, n int) ([]float64, error) {
	re, err := spec.Resample(w.Lo, w.Hi, n)
	if err != nil {
		return nil, fmt.Errorf("shift: resampling failed: %w", err)
	}

	wl := re.Wavelengths()
	fl := re.Fluxes()

	slope, intercept, err := interp.FitLine(wl, fl)
	if err != nil {
		return nil, fmt.Errorf("shift: detrending failed: %w", err)
	}

	structure := 0.0

	for i := range fl {
		fl[i] -= slope*wl[i] + intercept
		structure += fl[i] * fl[i]
	}

	if structure == 0 {
		return nil, ErrFlatSpectrum
	}

	return fl, nil
}

// crossCorrelate computes the circular cross-correlation of a against b via
// FFT, zero-padded to twice the input length to keep lags up to ±len(a)-1
// free of wraparound. corr[k] holds lag k; negative lags wrap to the top.
func crossCorrelate(a, b []float64) ([]float64, error) {
	fftSize := 2 * nextPowerOf2(len(a))

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("shift: failed to create FFT plan: %w", err)
	}

	aPadded := make([]complex128, fftSize)
	for i, v := range a {
		aPadded[i] = complex(v, 0)
	}

	aFreq := make([]complex128, fftSize)
	if err := plan.Forward(aFreq, aPadded); err != nil {
		return nil, fmt.Errorf("shift: forward FFT failed: %w", err)
	}

	bPadded := make([]complex128, fftSize)
	for i, v := range b {
		bPadded[i] = complex(v, 0)
	}

	bFreq := make([]complex128, fftSize)
	if err := plan.Forward(bFreq, bPadded); err != nil {
		return nil, fmt.Errorf("shift: forward FFT failed: %w", err)
	}

	// Cross power spectrum: A * conj(B).
	crossFreq := make([]complex128, fftSize)
	for i := range crossFreq {
		crossFreq[i] = aFreq[i] * complex(real(bFreq[i]), -imag(bFreq[i]))
	}

	crossTime := make([]complex128, fftSize)
	if err := plan.Inverse(crossTime, crossFreq); err != nil {
		return nil, fmt.Errorf("shift: inverse FFT failed: %w", err)
	}

	corr := make([]float64, fftSize)
	for i := range corr {
		corr[i] = real(crossTime[i])
	}

	return corr, nil
}

// lagDot computes the direct correlation sum of a against b shifted by lag
// samples, over the overlapping index range.
func lagDot(a, b []float64, lag int) float64 {
	sum := 0.0

	for i := range a {
		j := i - lag
		if j < 0 || j >= len(b) {
			continue
		}

		sum += a[i] * b[j]
	}

	return sum
}

// corrAt reads the correlation at a signed lag.
func corrAt(corr []float64, lag int) float64 {
	m := len(corr)

	lag %= m
	if lag < 0 {
		lag += m
	}

	return corr[lag]
}

// peakLag locates the strongest correlation within ±maxLag and refines it to
// a fractional lag with a parabolic fit through the peak and its neighbors.
func peakLag(corr []float64, maxLag int) float64 {
	bestLag := 0
	bestVal := corrAt(corr, 0)

	for k := -maxLag; k <= maxLag; k++ {
		if v := corrAt(corr, k); v > bestVal {
			bestVal = v
			bestLag = k
		}
	}

	prev := corrAt(corr, bestLag-1)
	next := corrAt(corr, bestLag+1)

	denom := prev - 2*bestVal + next
	if denom >= 0 {
		// Not a strict local maximum; keep the integer lag.
		return float64(bestLag)
	}

	delta := 0.5 * (prev - next) / denom

	return float64(bestLag) + delta
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
