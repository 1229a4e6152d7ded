// Package plot renders clustering reports as interactive HTML scatter plots.
package plot

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/TrevorS/cluster"
)

// palette colors clusters in order; it wraps around for k > len(palette).
var palette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// Scatter builds a scatter chart with one series per cluster plus a series
// for the centroids. Points with more than two dimensions are projected by
// averaging contiguous groups of coordinates.
func Scatter(data [][]float64, r *cluster.Report, title string) *charts.Scatter {
	sc := charts.NewScatter()
	sc.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("k=%d, total SSE %.4f", r.K, r.TotalSSE()),
		}),
	)

	for c, members := range r.Clusters {
		points := make([]opts.ScatterData, 0, len(members))
		for _, i := range members {
			points = append(points, opts.ScatterData{
				Name:  strconv.Itoa(i),
				Value: project(data[i]),
			})
		}
		sc.AddSeries(fmt.Sprintf("Cluster %d", c), points,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: palette[c%len(palette)]}))
	}

	centroids := make([]opts.ScatterData, 0, r.K)
	for c, centroid := range r.Centroids {
		centroids = append(centroids, opts.ScatterData{
			Name:  fmt.Sprintf("Centroid %d", c),
			Value: project(centroid),
		})
	}
	sc.AddSeries("Centroids", centroids,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "black"}))

	return sc
}

// RenderScatter writes the Scatter chart for r as a standalone HTML page.
func RenderScatter(w io.Writer, data [][]float64, r *cluster.Report, title string) error {
	return Scatter(data, r, title).Render(w)
}

// project reduces v to two coordinates. Each output coordinate is the mean of
// a contiguous block of input coordinates; one-dimensional points get y = 0.
func project(v []float64) []float64 {
	const dim = 2
	if len(v) < dim {
		res := make([]float64, dim)
		copy(res, v)
		return res
	}

	res := make([]float64, dim)
	start := 0
	for i := 0; i < dim; i++ {
		end := ((i + 1) * len(v)) / dim
		for _, x := range v[start:end] {
			res[i] += x
		}
		res[i] /= float64(end - start)
		start = end
	}
	return res
}
