package nbs

import (
	"context"
	"math/rand/v2"
	"testing"
)

func benchPopulations(b *testing.B, n, m int) (*Population, *Population) {
	b.Helper()
	rng := rand.New(rand.NewPCG(42, 42))
	return randomPopulation(b, rng, n, m, 0.2, 1), randomPopulation(b, rng, n, m, 0, 1)
}

// --- Edge statistics ---

func benchEdgeStatistics(b *testing.B, n int) {
	b.Helper()
	x, y := benchPopulations(b, n, 20)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := EdgeStatistics(x, y); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEdgeStatistics_50(b *testing.B)  { benchEdgeStatistics(b, 50) }
func BenchmarkEdgeStatistics_100(b *testing.B) { benchEdgeStatistics(b, 100) }

// --- Permutations ---

func benchPermutations(b *testing.B, n, workers int) {
	b.Helper()
	x, y := benchPopulations(b, n, 20)
	idx := NewEdgeIndex(n)
	combined := combine(x, y, idx)
	cfg := DefaultConfig()
	cfg.Permutations = 100
	cfg.Seed = 1
	cfg.Workers = workers
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := RunPermutations(context.Background(), combined, 20, 20, idx, cfg); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkPermutations_50_Sequential(b *testing.B) { benchPermutations(b, 50, 1) }
func BenchmarkPermutations_50_Parallel(b *testing.B)   { benchPermutations(b, 50, 0) }
func BenchmarkPermutations_100_Parallel(b *testing.B)  { benchPermutations(b, 100, 0) }

// --- Full pipeline ---

func BenchmarkCompute_80(b *testing.B) {
	x, y := benchPopulations(b, 80, 15)
	cfg := DefaultConfig()
	cfg.Permutations = 200
	cfg.Seed = 1
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Compute(x, y, cfg); err != nil {
			b.Fatal(err)
		}
	}
}
