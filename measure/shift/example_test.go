package shift_test

import (
	"fmt"

	"github.com/cwbudde/algo-spectro/measure/shift"
	"github.com/cwbudde/algo-spectro/spectro/signal"
)

func ExampleMeasure() {
	gen := signal.NewGenerator()

	template, _ := gen.LineSpectrum(4000, 5000, 2001, 1, 0, 0,
		signal.Line{Center: 4500, Sigma: 5, Amplitude: 0.8})
	observed, _ := gen.LineSpectrum(4000, 5000, 2001, 1, 0, 0,
		signal.Line{Center: 4510, Sigma: 5, Amplitude: 0.8})

	res, _ := shift.Measure(observed, template, shift.Config{Samples: 2048})

	fmt.Printf("shift: %.0f\n", res.Shift)
	// Output:
	// shift: 10
}
