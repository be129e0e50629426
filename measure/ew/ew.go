package ew

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-spectro/internal/quadrature"
	"github.com/cwbudde/algo-spectro/spectro/interp"
	"github.com/cwbudde/algo-spectro/spectro/spectrum"
	"github.com/cwbudde/algo-spectro/stats/flux"
	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by equivalent-width measurement.
var (
	ErrNilSpectrum              = errors.New("ew: spectrum is nil")
	ErrInvalidLineWindow        = errors.New("ew: line window is invalid")
	ErrNoContinuumWindows       = errors.New("ew: at least one continuum window is required")
	ErrInvalidContinuumWindow   = errors.New("ew: continuum window is invalid")
	ErrLineOutsideRange         = errors.New("ew: line window lies outside the sampled wavelength range")
	ErrEmptyLineWindow          = errors.New("ew: line window contains no samples")
	ErrContinuumUnderdetermined = errors.New("ew: continuum windows contain fewer than two usable samples")
	ErrZeroContinuum            = errors.New("ew: continuum evaluates to zero inside the line window")
)

// Method selects the continuum model fitted through the continuum samples.
type Method int

const (
	// ContinuumSpline fits a natural cubic spline through the continuum
	// samples. This is the default.
	ContinuumSpline Method = iota
	// ContinuumLinear fits a least-squares straight line. Use this when the
	// continuum windows are too sparse to constrain a spline.
	ContinuumLinear
)

// Config holds equivalent-width measurement parameters.
type Config struct {
	// LineWindow is the wavelength interval holding the line flux.
	LineWindow spectrum.Window
	// ContinuumWindows are the flanking intervals constraining the
	// continuum model. Samples also covered by LineWindow are excluded
	// from the fit, so the windows may touch or overlap the line.
	ContinuumWindows []spectrum.Window
	// Method selects the continuum model. Default is ContinuumSpline.
	Method Method
	// MinContinuum rejects measurements whose fitted continuum drops to or
	// below this level anywhere inside the line window. The default 0
	// rejects only exact non-positive values.
	MinContinuum float64
}

// Result holds equivalent-width measurement results.
//
// The sign convention follows the excess: emission lines yield positive
// widths, absorption lines negative ones.
type Result struct {
	EquivalentWidth  float64 // integrated normalized excess, wavelength units
	WidthError       float64 // 1-sigma width from the continuum residual scatter
	LineFlux         float64 // integrated un-normalized excess
	MeanContinuum    float64 // mean fitted continuum inside the line window
	ContinuumRMS     float64 // residual scatter of the continuum fit
	LineSamples      int
	ContinuumSamples int
}

// Estimator measures equivalent widths with a fixed configuration.
type Estimator struct {
	cfg Config
}

// NewEstimator creates an equivalent-width estimator.
func NewEstimator(cfg Config) *Estimator {
	return &Estimator{cfg: cfg}
}

// Measure is a one-shot equivalent-width measurement.
func Measure(spec *spectrum.Spectrum, cfg Config) (Result, error) {
	return NewEstimator(cfg).Measure(spec)
}

// Measure estimates the equivalent width of the configured line.
//
// The continuum is fitted through the samples inside the continuum windows
// (line-window samples excluded), evaluated across the line window,
// subtracted from the observed flux, normalized by itself, and the
// normalized excess is integrated over wavelength with the trapezoidal rule.
func (e *Estimator) Measure(spec *spectrum.Spectrum) (Result, error) {
	wl, excess, cont, res, err := e.Excess(spec)
	if err != nil {
		return Result{}, err
	}

	norm := make([]float64, len(excess))
	for i := range norm {
		norm[i] = excess[i] / cont[i]
	}

	weights := make([]float64, len(wl))
	quadrature.Weights(weights, wl)

	res.EquivalentWidth = vecmath.DotProduct(norm, weights)
	res.LineFlux = vecmath.DotProduct(excess, weights)
	res.MeanContinuum = flux.Calculate(cont).Mean
	res.WidthError = widthError(weights, cont, res.ContinuumRMS)

	return res, nil
}

// Excess returns the line-window wavelengths, the continuum-subtracted
// flux, and the fitted continuum inside the line window. The returned
// Result carries the sample counts and the continuum residual scatter; the
// integrated fields are left zero. Most callers want [Measure]; Excess
// serves measurements that need the subtracted profile itself.
func (e *Estimator) Excess(spec *spectrum.Spectrum) (wl, excess, cont []float64, res Result, err error) {
	if spec == nil {
		return nil, nil, nil, Result{}, ErrNilSpectrum
	}

	cfg := e.cfg
	if err := validateWindows(cfg); err != nil {
		return nil, nil, nil, Result{}, err
	}

	r := spec.Range()
	if cfg.LineWindow.Lo < r.Lo || cfg.LineWindow.Hi > r.Hi {
		return nil, nil, nil, Result{}, ErrLineOutsideRange
	}

	start, end := spec.Slice(cfg.LineWindow)
	if start >= end {
		return nil, nil, nil, Result{}, ErrEmptyLineWindow
	}

	contWL, contFlux := continuumSamples(spec, cfg)
	if len(contWL) < 2 {
		return nil, nil, nil, Result{}, ErrContinuumUnderdetermined
	}

	model, err := fitContinuum(contWL, contFlux, cfg.Method)
	if err != nil {
		return nil, nil, nil, Result{}, fmt.Errorf("ew: continuum fit failed: %w", err)
	}

	wl = make([]float64, 0, end-start)
	observed := make([]float64, 0, end-start)

	for i := start; i < end; i++ {
		wl = append(wl, spec.Wavelength(i))
		observed = append(observed, spec.Flux(i))
	}

	cont = make([]float64, len(wl))
	for i, x := range wl {
		cont[i] = model(x)
		if cont[i] <= cfg.MinContinuum {
			return nil, nil, nil, Result{}, ErrZeroContinuum
		}
	}

	excess = make([]float64, len(wl))
	for i := range excess {
		excess[i] = observed[i] - cont[i]
	}

	// The spline interpolates its knots exactly, so fit residuals carry no
	// information there. The DER noise estimator measures the sample scatter
	// about any smooth trend and serves both continuum methods.
	res = Result{
		ContinuumRMS:     flux.Noise(contFlux),
		LineSamples:      len(wl),
		ContinuumSamples: len(contWL),
	}

	return wl, excess, cont, res, nil
}

func validateWindows(cfg Config) error {
	if !cfg.LineWindow.Valid() {
		return ErrInvalidLineWindow
	}

	if len(cfg.ContinuumWindows) == 0 {
		return ErrNoContinuumWindows
	}

	for _, w := range cfg.ContinuumWindows {
		if !w.Valid() {
			return ErrInvalidContinuumWindow
		}
	}

	return nil
}

// continuumSamples selects the samples inside the continuum windows,
// dropping any that also fall inside the line window. Self-contamination by
// line flux would bias the fitted continuum.
func continuumSamples(spec *spectrum.Spectrum, cfg Config) (wl, fl []float64) {
	allWL, allFlux := spec.Select(cfg.ContinuumWindows...)

	for i := range allWL {
		if cfg.LineWindow.Contains(allWL[i]) {
			continue
		}

		wl = append(wl, allWL[i])
		fl = append(fl, allFlux[i])
	}

	return wl, fl
}

// fitContinuum fits the selected model through the continuum samples and
// returns an evaluator.
func fitContinuum(wl, fl []float64, method Method) (func(float64) float64, error) {
	switch method {
	case ContinuumLinear:
		slope, intercept, err := interp.FitLine(wl, fl)
		if err != nil {
			return nil, err
		}

		return func(x float64) float64 { return slope*x + intercept }, nil
	default:
		spline, err := interp.NewCubicSpline(wl, fl)
		if err != nil {
			return nil, err
		}

		return spline.At, nil
	}
}

// widthError propagates a per-sample continuum scatter sigma through the
// trapezoid sum of the normalized excess, treating samples as independent.
func widthError(weights, cont []float64, sigma float64) float64 {
	sum := 0.0

	for i := range weights {
		t := weights[i] * sigma / cont[i]
		sum += t * t
	}

	return math.Sqrt(sum)
}
