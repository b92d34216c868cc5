package merkle

import (
	"fmt"
	"testing"

	"github.com/Layr-Labs/merkle-accumulator-go/pkg/hasher"
)

// BenchmarkTreeBuild benchmarks tree construction with various sizes
func BenchmarkTreeBuild(b *testing.B) {
	sizes := []int{10, 50, 100, 1000}

	h := hasher.Keccak256{}
	for _, size := range sizes {
		b.Run(fmt.Sprintf("Items_%d", size), func(b *testing.B) {
			items := createTestItems(size)
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				_, _ = New(h, items)
			}
		})
	}
}

// BenchmarkProve benchmarks proof generation
func BenchmarkProve(b *testing.B) {
	sizes := []int{10, 50, 100, 1000}

	h := hasher.Keccak256{}
	for _, size := range sizes {
		items := createTestItems(size)
		tree, _ := New(h, items)

		b.Run(fmt.Sprintf("Items_%d", size), func(b *testing.B) {
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				_, _ = tree.Prove(items[i%size])
			}
		})
	}
}

// BenchmarkCheck benchmarks proof verification
func BenchmarkCheck(b *testing.B) {
	sizes := []int{10, 50, 100, 1000}

	h := hasher.Keccak256{}
	for _, size := range sizes {
		items := createTestItems(size)
		tree, _ := New(h, items)
		proof, _ := tree.Prove(items[0])

		b.Run(fmt.Sprintf("Items_%d", size), func(b *testing.B) {
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				_ = tree.Check(proof, items[0])
			}
		})
	}
}
