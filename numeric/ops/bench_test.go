package ops_test

import (
	"testing"

	"github.com/arevlabs/polysched/numeric"
	"github.com/arevlabs/polysched/numeric/ops"
)

// BenchmarkScaledInverse_Diag16 inverts a 16x16 diagonal matrix, the
// cost ScaledInverse pays once per scheduled node when looptree.Build
// rotates that node's Addresses by phi-inverse (spec §4.9). Complexity: O(n^3).
func BenchmarkScaledInverse_Diag16(b *testing.B) {
	const n = 16
	m, err := numeric.NewDense(n, n)
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < n; i++ {
		if err := m.Set(i, i, numeric.RatInt(2)); err != nil {
			b.Fatal(err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := ops.ScaledInverse(m); err != nil {
			b.Fatal(err)
		}
	}
}
