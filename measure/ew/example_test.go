package ew_test

import (
	"fmt"

	"github.com/cwbudde/algo-spectro/measure/ew"
	"github.com/cwbudde/algo-spectro/spectro/spectrum"
)

func ExampleMeasure() {
	// A flat continuum of 1 with a single-sample excess of 1 at the line
	// center integrates to an equivalent width of exactly one grid step.
	wavelength := make([]float64, 11)
	flux := make([]float64, 11)

	for i := range wavelength {
		wavelength[i] = float64(i)
		flux[i] = 1
	}

	flux[5] = 2

	spec, _ := spectrum.New(wavelength, flux)

	res, _ := ew.Measure(spec, ew.Config{
		LineWindow:       spectrum.Window{Lo: 4, Hi: 6},
		ContinuumWindows: []spectrum.Window{{Lo: 0, Hi: 4}, {Lo: 6, Hi: 10}},
	})

	fmt.Printf("EW: %.2f\n", res.EquivalentWidth)
	fmt.Printf("line flux: %.2f\n", res.LineFlux)
	// Output:
	// EW: 1.00
	// line flux: 1.00
}
