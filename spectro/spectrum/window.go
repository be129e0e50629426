package spectrum

import "math"

// Window is a closed wavelength interval [Lo, Hi].
type Window struct {
	Lo float64
	Hi float64
}

// Valid reports whether the window is finite and has positive width.
func (w Window) Valid() bool {
	if math.IsNaN(w.Lo) || math.IsNaN(w.Hi) {
		return false
	}

	if math.IsInf(w.Lo, 0) || math.IsInf(w.Hi, 0) {
		return false
	}

	return w.Lo < w.Hi
}

// Width returns Hi - Lo.
func (w Window) Width() float64 {
	return w.Hi - w.Lo
}

// Contains reports whether wavelength lies inside the window, bounds included.
func (w Window) Contains(wavelength float64) bool {
	return wavelength >= w.Lo && wavelength <= w.Hi
}

// Overlaps reports whether the two windows share any wavelength,
// touching endpoints included.
func (w Window) Overlaps(o Window) bool {
	return w.Lo <= o.Hi && o.Lo <= w.Hi
}
