package signal_test

import (
	"fmt"

	"github.com/cwbudde/algo-spectro/spectro/signal"
)

func ExampleGenerator_LineSpectrum() {
	gen := signal.NewGenerator()

	spec, _ := gen.LineSpectrum(4800, 4900, 101, 1, 0, 0,
		signal.Line{Center: 4861, Sigma: 3, Amplitude: 0.5})

	wl, peak := spec.Peak()
	fmt.Printf("samples: %d\n", spec.Len())
	fmt.Printf("peak: %.1f at %.0f\n", peak, wl)
	// Output:
	// samples: 101
	// peak: 1.5 at 4861
}
