package cluster

import (
	"math/rand"
	"testing"
)

func generateBenchData(n, dims int) [][]float64 {
	rng := rand.New(rand.NewSource(42))
	data := make([][]float64, n)
	for i := range data {
		data[i] = make([]float64, dims)
		for j := range data[i] {
			data[i][j] = rng.Float64() * 100
		}
	}
	return data
}

// --- Pairwise Distances ---

func benchPairwiseDistances(b *testing.B, n int) {
	b.Helper()
	ps, err := NewPointSet(generateBenchData(n, 2))
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ComputePairwiseDistances(ps)
	}
}

func BenchmarkPairwiseDistances_100(b *testing.B)  { benchPairwiseDistances(b, 100) }
func BenchmarkPairwiseDistances_500(b *testing.B)  { benchPairwiseDistances(b, 500) }
func BenchmarkPairwiseDistances_1000(b *testing.B) { benchPairwiseDistances(b, 1000) }

// --- HAC ---

func benchHAC(b *testing.B, n int, linkage Linkage) {
	b.Helper()
	data := generateBenchData(n, 2)
	engine := NewHAC(HACConfig{K: 5, Linkage: linkage})
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := engine.Fit(data); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkHACSingle_100(b *testing.B)   { benchHAC(b, 100, LinkageSingle) }
func BenchmarkHACSingle_500(b *testing.B)   { benchHAC(b, 500, LinkageSingle) }
func BenchmarkHACComplete_100(b *testing.B) { benchHAC(b, 100, LinkageComplete) }
func BenchmarkHACComplete_500(b *testing.B) { benchHAC(b, 500, LinkageComplete) }

// --- K-Means ---

func benchKMeans(b *testing.B, n, k int) {
	b.Helper()
	data := generateBenchData(n, 4)
	engine := NewKMeans(KMeansConfig{K: k, Init: InitRandom, Seed: 1})
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := engine.Fit(data); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkKMeans_1000_K5(b *testing.B)   { benchKMeans(b, 1000, 5) }
func BenchmarkKMeans_10000_K10(b *testing.B) { benchKMeans(b, 10000, 10) }
