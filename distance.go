package cluster

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// distancePrecision is the number of decimal places point distances are
// rounded to before HAC compares them.
const distancePrecision = 6

// Euclidean returns the Euclidean (L2) distance between a and b.
func Euclidean(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

func squaredEuclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// roundDistance rounds d to distancePrecision decimals, half to even.
func roundDistance(d float64) float64 {
	scale := math.Pow10(distancePrecision)
	return math.RoundToEven(d*scale) / scale
}

// ComputePairwiseDistances computes the full n*n matrix of rounded Euclidean
// distances between the points of ps. Returns flat []float64 of length n*n in
// row-major order.
func ComputePairwiseDistances(ps *PointSet) []float64 {
	n := ps.Len()
	result := make([]float64, n*n)

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := roundDistance(Euclidean(ps.Row(i), ps.Row(j)))
			result[i*n+j] = d
			result[j*n+i] = d
		}
	}

	return result
}
