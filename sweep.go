package cluster

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/sync/errgroup"
)

// pointFitter is implemented by engines that can reuse a validated PointSet.
type pointFitter interface {
	FitPoints(ps *PointSet) (*Report, error)
}

// Sweep fits one engine per k in ks, running up to workers fits at a time.
// newEngine must return an independent engine configured for k. Reports are
// returned in the order of ks. The first failure cancels the remaining fits
// and is returned. workers <= 0 means runtime.NumCPU().
func Sweep(ctx context.Context, data [][]float64, ks []int, workers int, newEngine func(k int) Clusterer) ([]*Report, error) {
	ps, err := NewPointSet(data)
	if err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	reports := make([]*Report, len(ks))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, k := range ks {
		i, k := i, k
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			engine := newEngine(k)
			var (
				r   *Report
				err error
			)
			if pf, ok := engine.(pointFitter); ok {
				r, err = pf.FitPoints(ps)
			} else {
				r, err = engine.Fit(data)
			}
			if err != nil {
				return fmt.Errorf("cluster: sweep k=%d: %w", k, err)
			}
			reports[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// WriteSweepTable renders one row per report: k, total SSE and the sizes of
// the smallest and largest clusters.
func WriteSweepTable(w io.Writer, reports []*Report) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"k", "Total SSE", "Smallest", "Largest"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	for _, r := range reports {
		smallest, largest := clusterSizeRange(r)
		table.Append([]string{
			fmt.Sprintf("%d", r.K),
			fmt.Sprintf("%.4f", r.TotalSSE()),
			fmt.Sprintf("%d", smallest),
			fmt.Sprintf("%d", largest),
		})
	}
	table.Render()
}

func clusterSizeRange(r *Report) (int, int) {
	if len(r.Clusters) == 0 {
		return 0, 0
	}
	smallest, largest := len(r.Clusters[0]), len(r.Clusters[0])
	for _, members := range r.Clusters[1:] {
		smallest = min(smallest, len(members))
		largest = max(largest, len(members))
	}
	return smallest, largest
}
