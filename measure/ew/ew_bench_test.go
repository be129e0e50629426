package ew_test

import (
	"strconv"
	"testing"

	"github.com/cwbudde/algo-spectro/measure/ew"
	"github.com/cwbudde/algo-spectro/spectro/signal"
	"github.com/cwbudde/algo-spectro/spectro/spectrum"
)

func BenchmarkMeasure(b *testing.B) {
	sizes := []int{101, 1001, 10001}

	for _, n := range sizes {
		spec, err := signal.NewGenerator().LineSpectrum(4800, 4900, n, 1, 0, 0,
			signal.Line{Center: 4861, Sigma: 3, Amplitude: 0.5})
		if err != nil {
			b.Fatalf("LineSpectrum: %v", err)
		}

		cfg := ew.Config{
			LineWindow: spectrum.Window{Lo: 4850, Hi: 4870},
			ContinuumWindows: []spectrum.Window{
				{Lo: 4800, Hi: 4858},
				{Lo: 4865, Hi: 4900},
			},
		}

		b.Run(strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()

			for range b.N {
				if _, err := ew.Measure(spec, cfg); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
