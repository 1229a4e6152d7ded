package cluster

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// PointSet is an immutable n×dims matrix of points. Point i is row i.
type PointSet struct {
	m    *mat.Dense
	n    int
	dims int
}

// NewPointSet copies data into a PointSet. All rows must have the same
// non-zero length and contain only finite values.
func NewPointSet(data [][]float64) (*PointSet, error) {
	n := len(data)
	if n == 0 {
		return nil, &InvalidInputError{Reason: "point set is empty"}
	}
	dims := len(data[0])
	if dims == 0 {
		return nil, &InvalidInputError{Reason: "points have zero dimensions"}
	}

	flat := make([]float64, n*dims)
	for i, row := range data {
		if len(row) != dims {
			return nil, &InvalidInputError{
				Reason: fmt.Sprintf("point %d has %d dimensions, want %d", i, len(row), dims),
			}
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, &InvalidInputError{
					Reason: fmt.Sprintf("point %d coordinate %d is not finite (%v)", i, j, v),
				}
			}
		}
		copy(flat[i*dims:], row)
	}

	return &PointSet{m: mat.NewDense(n, dims, flat), n: n, dims: dims}, nil
}

// Len returns the number of points.
func (p *PointSet) Len() int { return p.n }

// Dims returns the dimensionality of every point.
func (p *PointSet) Dims() int { return p.dims }

// Row returns a view of point i. Callers must not modify it.
func (p *PointSet) Row(i int) []float64 { return p.m.RawRowView(i) }

// Mean returns the coordinate-wise mean of all points.
func (p *PointSet) Mean() []float64 {
	means := make([]float64, p.dims)
	col := make([]float64, p.n)
	for j := range means {
		mat.Col(col, j, p.m)
		means[j] = stat.Mean(col, nil)
	}
	return means
}

// Centroid returns the coordinate-wise mean of the given points.
// members must be non-empty.
func (p *PointSet) Centroid(members []int) []float64 {
	c := make([]float64, p.dims)
	for _, i := range members {
		floats.Add(c, p.Row(i))
	}
	floats.Scale(1/float64(len(members)), c)
	return c
}

// SSE returns the sum of squared Euclidean distances from members to centroid.
func (p *PointSet) SSE(members []int, centroid []float64) float64 {
	var sse float64
	for _, i := range members {
		sse += squaredEuclidean(p.Row(i), centroid)
	}
	return sse
}
