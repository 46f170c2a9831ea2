// SPDX-License-Identifier: MIT
package conformal_test

import (
	"fmt"

	"github.com/lh7326/UA-model-sub000/conformal"
)

func ExampleBranchPoints_FromSheet() {
	bp, err := conformal.NewBranchPoints(0, 0.25)
	if err != nil {
		panic(err)
	}
	w := bp.FromSheet(1, conformal.Sheet1)
	fmt.Printf("W = %.6f%+.6fi\n", real(w), imag(w))
	fmt.Printf("t = %.6f\n", real(bp.ToT(w)))
	// Output:
	// W = -0.866025+0.500000i
	// t = 1.000000
}
