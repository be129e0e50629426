// Package interp provides the interpolation and fitting primitives used by
// the continuum estimation in the measure packages.
//
// Available models:
//
//   - [CubicSpline]: natural cubic spline through arbitrary strictly
//     increasing abscissae (continuous first and second derivatives)
//   - [FitLine]:     least-squares straight line
//
// Both operate on non-uniform grids, as spectra rarely arrive on a uniform
// wavelength spacing after calibration.
package interp
