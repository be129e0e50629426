package flux_test

import (
	"fmt"

	"github.com/cwbudde/algo-spectro/stats/flux"
)

func ExampleCalculate() {
	s := flux.Calculate([]float64{1, 2, 3, 4})

	fmt.Printf("mean: %.2f\n", s.Mean)
	fmt.Printf("total: %.2f\n", s.Total)
	fmt.Printf("stddev: %.3f\n", s.StdDev)
	// Output:
	// mean: 2.50
	// total: 10.00
	// stddev: 1.118
}

func ExampleMedian() {
	fmt.Printf("%.1f\n", flux.Median([]float64{5, 1, 3}))
	// Output:
	// 3.0
}
