// Package shift measures the wavelength shift between an observed spectrum
// and a template by FFT cross-correlation.
//
// Both spectra are resampled onto a common uniform grid over their
// wavelength overlap, detrended, and correlated in the frequency domain.
// The correlation peak is refined to sub-sample precision and converted to
// a radial velocity at the overlap center:
//
//	res, _ := shift.Measure(observed, template, shift.Config{})
//	fmt.Printf("Δλ = %.3f, v = %.1f km/s\n", res.Shift, res.Velocity)
//
// Positive shifts mean the observed spectrum lies redward of the template.
package shift
