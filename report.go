package cluster

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Report is the result of fitting an engine. Clusters, Centroids and SSE are
// aligned by position and have length K.
type Report struct {
	// K is the number of clusters.
	K int

	// Clusters lists the point indices of each cluster. Together they
	// partition 0..N-1.
	Clusters [][]int

	// Centroids holds the mean of each cluster's points.
	Centroids [][]float64

	// SSE holds each cluster's sum of squared distances to its centroid.
	SSE []float64

	// Labels maps every point index to the position of its cluster.
	Labels []int

	// Merges is the HAC merge history in the order merges happened.
	// Nil for K-Means.
	Merges []Merge

	// Iterations is the number of K-Means assignment/update passes,
	// including the final pass that confirmed convergence. Zero for HAC.
	Iterations int

	// Converged is false only when K-Means stopped at its iteration cap.
	// Always true for HAC.
	Converged bool

	// SSEHistory is the total SSE after every K-Means update step.
	// Nil for HAC.
	SSEHistory []float64
}

// Merge records one HAC merge step.
type Merge struct {
	// Into and From are the positions of the merged clusters in the cluster
	// list at the time of the merge. From is removed; Into keeps its place.
	Into, From int
	// Distance is the rounded linkage distance between the two clusters.
	Distance float64
	// Size is the number of points in the merged cluster.
	Size int
}

// TotalSSE returns the sum of the per-cluster SSE values.
func (r *Report) TotalSSE() float64 {
	return floats.Sum(r.SSE)
}

// newReport builds a Report for a final partition, computing centroids and
// SSE from the points.
func newReport(ps *PointSet, clusters [][]int, labels []int) *Report {
	k := len(clusters)
	r := &Report{
		K:         k,
		Clusters:  clusters,
		Centroids: make([][]float64, k),
		SSE:       make([]float64, k),
		Labels:    labels,
		Converged: true,
	}
	for c, members := range clusters {
		r.Centroids[c] = ps.Centroid(members)
		r.SSE[c] = ps.SSE(members, r.Centroids[c])
	}
	return r
}

// WriteReport renders r as the plain-text cluster summary:
//
//	Clusters: 2
//	Total SSE: 1.0000
//
//	Centroid 0 Location: [0.0000,0.5000]
//	Observations in Cluster: 2
//	Cluster SSE: 0.5000
//
// followed by one block per remaining cluster.
func WriteReport(w io.Writer, r *Report) error {
	_, err := r.WriteTo(w)
	return err
}

// WriteTo implements io.WriterTo using the WriteReport format.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Clusters: %d\n", r.K)
	fmt.Fprintf(&buf, "Total SSE: %.4f\n\n", r.TotalSSE())
	for c := 0; c < r.K; c++ {
		fmt.Fprintf(&buf, "Centroid %d Location: %s\n", c, formatVector(r.Centroids[c]))
		fmt.Fprintf(&buf, "Observations in Cluster: %d\n", len(r.Clusters[c]))
		fmt.Fprintf(&buf, "Cluster SSE: %.4f\n\n", r.SSE[c])
	}
	return buf.WriteTo(w)
}

func formatVector(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprintf("%.4f", x)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
