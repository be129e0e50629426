// Package ew measures emission- and absorption-line equivalent widths.
//
// The equivalent width expresses the integrated line flux as an equivalent
// wavelength span of the continuum carrying the same flux. The estimator fits
// the local continuum through flanking wavelength windows, subtracts it from
// the observed flux inside the line window, normalizes the excess by the
// continuum, and integrates over wavelength:
//
//	EW = ∫ (F(λ) - C(λ)) / C(λ) dλ
//
// # Usage
//
// Measure the Hβ equivalent width on a calibrated spectrum:
//
//	res, err := ew.Measure(spec, ew.Config{
//	    LineWindow:       spectrum.Window{Lo: 4850, Hi: 4870},
//	    ContinuumWindows: []spectrum.Window{{Lo: 4800, Hi: 4858}, {Lo: 4865, Hi: 4900}},
//	})
//
// Continuum samples falling inside the line window are excluded from the fit
// automatically, so the flanking windows may touch or overlap the line.
// Emission yields positive widths, absorption negative ones.
package ew
