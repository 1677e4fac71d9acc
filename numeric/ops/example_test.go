package ops_test

import (
	"fmt"

	"github.com/arevlabs/polysched/numeric"
	"github.com/arevlabs/polysched/numeric/ops"
)

// ExampleScaledInverse inverts the 2x2 diagonal matrix diag(2, 2). Its
// true inverse is diag(0.5, 0.5); ScaledInverse instead returns the
// integer-valued scaled matrix diag(1, 1) together with the common
// denominator 2, so that scaled/denom recovers the exact inverse
// without any float64 rounding (spec §6's scaledInverse contract).
func ExampleScaledInverse() {
	m, err := numeric.NewDense(2, 2)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	_ = m.Set(0, 0, numeric.RatInt(2))
	_ = m.Set(1, 1, numeric.RatInt(2))

	scaled, denom, err := ops.ScaledInverse(m)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for i := 0; i < scaled.Rows(); i++ {
		for j := 0; j < scaled.Cols(); j++ {
			v, _ := scaled.At(i, j)
			fmt.Print(v.RatString(), " ")
		}
	}
	fmt.Println(denom)

	// Output:
	// 1 0 0 1 2
}
