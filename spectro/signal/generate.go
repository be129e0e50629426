package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-spectro/spectro/spectrum"
	"github.com/cwbudde/algo-vecmath"
)

// Line describes a Gaussian line profile added to a synthetic continuum.
// Positive amplitudes produce emission lines, negative ones absorption.
type Line struct {
	Center    float64
	Sigma     float64
	Amplitude float64
}

// Area returns the analytic integral of the line profile over wavelength.
func (l Line) Area() float64 {
	return l.Amplitude * l.Sigma * math.Sqrt(2*math.Pi)
}

// Generator creates deterministic synthetic spectra.
type Generator struct {
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured spectrum generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{seed: 1}

	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}

	return g
}

// Grid returns n uniformly spaced wavelengths spanning [lo, hi] inclusive.
func Grid(lo, hi float64, n int) ([]float64, error) {
	if n < 2 {
		return nil, fmt.Errorf("signal: grid samples must be >= 2: %d", n)
	}

	if lo >= hi {
		return nil, fmt.Errorf("signal: grid bounds must satisfy lo < hi: [%g, %g]", lo, hi)
	}

	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)

	for i := range out {
		out[i] = lo + float64(i)*step
	}

	out[n-1] = hi

	return out, nil
}

// Continuum returns a sloped continuum evaluated on the wavelength grid:
// level + slope*(wavelength - wavelength[0]). A zero slope yields a flat
// continuum.
func Continuum(wavelength []float64, level, slope float64) ([]float64, error) {
	if len(wavelength) == 0 {
		return nil, fmt.Errorf("signal: continuum wavelength grid must not be empty")
	}

	out := make([]float64, len(wavelength))
	for i, wl := range wavelength {
		out[i] = level + slope*(wl-wavelength[0])
	}

	return out, nil
}

// GaussianProfile returns the line profile evaluated on the wavelength grid.
func GaussianProfile(wavelength []float64, line Line) ([]float64, error) {
	if len(wavelength) == 0 {
		return nil, fmt.Errorf("signal: profile wavelength grid must not be empty")
	}

	if line.Sigma <= 0 {
		return nil, fmt.Errorf("signal: line sigma must be > 0: %g", line.Sigma)
	}

	out := make([]float64, len(wavelength))
	for i, wl := range wavelength {
		d := (wl - line.Center) / line.Sigma
		out[i] = line.Amplitude * math.Exp(-d*d/2)
	}

	return out, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("signal: noise samples must be > 0: %d", samples)
	}

	if amplitude < 0 {
		return nil, fmt.Errorf("signal: noise amplitude must be >= 0: %g", amplitude)
	}

	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))

	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}

	return out, nil
}

// LineSpectrum synthesizes a spectrum on a uniform grid over [lo, hi]:
// a sloped continuum, zero or more Gaussian lines, and optional white noise.
func (g *Generator) LineSpectrum(lo, hi float64, n int, level, slope, noise float64, lines ...Line) (*spectrum.Spectrum, error) {
	wavelength, err := Grid(lo, hi, n)
	if err != nil {
		return nil, err
	}

	flux, err := Continuum(wavelength, level, slope)
	if err != nil {
		return nil, err
	}

	for _, line := range lines {
		profile, err := GaussianProfile(wavelength, line)
		if err != nil {
			return nil, err
		}

		vecmath.AddBlockInPlace(flux, profile)
	}

	if noise > 0 {
		w, err := g.WhiteNoise(noise, n)
		if err != nil {
			return nil, err
		}

		vecmath.AddBlockInPlace(flux, w)
	}

	return spectrum.New(wavelength, flux)
}
