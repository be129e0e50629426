package spectrum

import (
	"errors"
	"math"
	"sort"

	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by spectrum construction and slicing.
var (
	ErrLengthMismatch = errors.New("spectrum: wavelength and flux lengths differ")
	ErrTooFewSamples  = errors.New("spectrum: need at least two samples")
	ErrNotIncreasing  = errors.New("spectrum: wavelength must be strictly increasing")
	ErrNonFinite      = errors.New("spectrum: wavelength and flux must be finite")
	ErrInvalidWindow  = errors.New("spectrum: window is invalid")
	ErrOutsideRange   = errors.New("spectrum: window lies outside the sampled range")
	ErrInvalidCount   = errors.New("spectrum: sample count must be at least two")
)

// Spectrum is an immutable set of (wavelength, flux) samples ordered by
// strictly increasing wavelength. Construct with [New]; the input slices
// are copied, so later mutation of the caller's data has no effect.
type Spectrum struct {
	wavelength []float64
	flux       []float64
}

// New validates and copies the wavelength and flux arrays into a Spectrum.
//
// Both arrays must have the same length of at least two, wavelengths must be
// strictly increasing, and all values must be finite.
func New(wavelength, flux []float64) (*Spectrum, error) {
	if len(wavelength) != len(flux) {
		return nil, ErrLengthMismatch
	}

	if len(wavelength) < 2 {
		return nil, ErrTooFewSamples
	}

	for i := range wavelength {
		if math.IsNaN(wavelength[i]) || math.IsInf(wavelength[i], 0) {
			return nil, ErrNonFinite
		}

		if math.IsNaN(flux[i]) || math.IsInf(flux[i], 0) {
			return nil, ErrNonFinite
		}

		if i > 0 && wavelength[i] <= wavelength[i-1] {
			return nil, ErrNotIncreasing
		}
	}

	s := &Spectrum{
		wavelength: make([]float64, len(wavelength)),
		flux:       make([]float64, len(flux)),
	}
	copy(s.wavelength, wavelength)
	copy(s.flux, flux)

	return s, nil
}

// Len returns the sample count.
func (s *Spectrum) Len() int {
	return len(s.wavelength)
}

// Wavelength returns the wavelength of sample i.
func (s *Spectrum) Wavelength(i int) float64 {
	return s.wavelength[i]
}

// Flux returns the flux of sample i.
func (s *Spectrum) Flux(i int) float64 {
	return s.flux[i]
}

// Wavelengths returns a copy of the wavelength array.
func (s *Spectrum) Wavelengths() []float64 {
	out := make([]float64, len(s.wavelength))
	copy(out, s.wavelength)

	return out
}

// Fluxes returns a copy of the flux array.
func (s *Spectrum) Fluxes() []float64 {
	out := make([]float64, len(s.flux))
	copy(out, s.flux)

	return out
}

// Range returns the covered wavelength interval.
func (s *Spectrum) Range() Window {
	return Window{Lo: s.wavelength[0], Hi: s.wavelength[len(s.wavelength)-1]}
}

// Slice returns the half-open index range [start, end) of samples whose
// wavelength falls inside w. An empty range has start == end.
func (s *Spectrum) Slice(w Window) (start, end int) {
	start = sort.SearchFloat64s(s.wavelength, w.Lo)
	end = sort.Search(len(s.wavelength), func(i int) bool {
		return s.wavelength[i] > w.Hi
	})

	if end < start {
		end = start
	}

	return start, end
}

// Select returns copies of the wavelength and flux samples falling inside any
// of the given windows. Sample order is preserved; a sample covered by more
// than one window appears once.
func (s *Spectrum) Select(windows ...Window) (wavelength, flux []float64) {
	for i := range s.wavelength {
		for _, w := range windows {
			if w.Contains(s.wavelength[i]) {
				wavelength = append(wavelength, s.wavelength[i])
				flux = append(flux, s.flux[i])

				break
			}
		}
	}

	return wavelength, flux
}

// Resample linearly interpolates the spectrum onto a uniform grid of n
// samples spanning [lo, hi]. The target interval must lie inside the
// sampled range.
func (s *Spectrum) Resample(lo, hi float64, n int) (*Spectrum, error) {
	if n < 2 {
		return nil, ErrInvalidCount
	}

	w := Window{Lo: lo, Hi: hi}
	if !w.Valid() {
		return nil, ErrInvalidWindow
	}

	r := s.Range()
	if lo < r.Lo || hi > r.Hi {
		return nil, ErrOutsideRange
	}

	wavelength := make([]float64, n)
	flux := make([]float64, n)
	step := (hi - lo) / float64(n-1)

	seg := 0

	for i := range wavelength {
		x := lo + float64(i)*step
		if i == n-1 {
			x = hi
		}

		for seg < len(s.wavelength)-2 && s.wavelength[seg+1] < x {
			seg++
		}

		x0 := s.wavelength[seg]
		x1 := s.wavelength[seg+1]
		t := (x - x0) / (x1 - x0)

		wavelength[i] = x
		flux[i] = s.flux[seg] + t*(s.flux[seg+1]-s.flux[seg])
	}

	return &Spectrum{wavelength: wavelength, flux: flux}, nil
}

// TotalFlux returns the sum of all flux samples.
func (s *Spectrum) TotalFlux() float64 {
	return vecmath.Sum(s.flux)
}

// Peak returns the wavelength and flux of the sample with the largest
// absolute flux.
func (s *Spectrum) Peak() (wavelength, flux float64) {
	peak := vecmath.MaxAbs(s.flux)

	for i, f := range s.flux {
		if math.Abs(f) == peak {
			return s.wavelength[i], f
		}
	}

	return s.wavelength[0], s.flux[0]
}
