// SPDX-License-Identifier: MIT
package conformal_test

import (
	"testing"

	"github.com/lh7326/UA-model-sub000/conformal"
)

var sinkW complex128

func BenchmarkFromSheet(b *testing.B) {
	bp, err := conformal.NewBranchPoints(0.078, 1.2)
	if err != nil {
		b.Fatal(err)
	}
	t := complex(2.5, 0.01)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sinkW = bp.FromSheet(t, conformal.Sheets[i&3])
	}
}
