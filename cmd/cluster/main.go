// Command cluster fits HAC or K-Means to a CSV point set and writes the
// cluster summary report.
//
// Usage:
//
//	cluster -input points.csv -algorithm hac -k 3 -linkage complete
//	cluster -input points.csv -algorithm kmeans -k 3 -init deterministic -plot out.html
//	cluster -input points.csv -algorithm kmeans -sweep 2-8
//	cluster -config run.yaml -debug
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/TrevorS/cluster"
	"github.com/TrevorS/cluster/internal/dataset"
	"github.com/TrevorS/cluster/plot"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := parseArgs(args, stderr)
	if err != nil {
		return err
	}
	if cfg.Input == "" {
		return errors.New("missing -input")
	}

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		return errors.Wrap(err, "create logger")
	}
	defer logger.Sync() //nolint:errcheck

	cols, err := dataset.ParseColumns(cfg.Columns)
	if err != nil {
		return err
	}
	data, err := dataset.LoadCSV(cfg.Input, dataset.Options{SkipHeader: cfg.Header, Columns: cols})
	if err != nil {
		return err
	}
	logger.Info("loaded points", zap.String("input", cfg.Input), zap.Int("count", len(data)))

	engine, err := newEngine(cfg, cfg.K, logger)
	if err != nil {
		return err
	}

	if cfg.Sweep != "" {
		ks, err := parseKs(cfg.Sweep)
		if err != nil {
			return err
		}
		reports, err := cluster.Sweep(ctx, data, ks, 0, func(k int) cluster.Clusterer {
			e, _ := newEngine(cfg, k, logger)
			return e
		})
		if err != nil {
			return err
		}
		return withOutput(cfg.Output, stdout, func(w io.Writer) error {
			cluster.WriteSweepTable(w, reports)
			return nil
		})
	}

	report, err := engine.Fit(data)
	if err != nil {
		return err
	}
	logger.Info("fit complete",
		zap.String("algorithm", cfg.Algorithm),
		zap.Int("k", report.K),
		zap.Float64("total_sse", report.TotalSSE()),
	)

	if err := withOutput(cfg.Output, stdout, func(w io.Writer) error {
		return cluster.WriteReport(w, report)
	}); err != nil {
		return err
	}

	if cfg.Plot != "" {
		title := fmt.Sprintf("%s clustering of %s", cfg.Algorithm, cfg.Input)
		if err := withOutput(cfg.Plot, stdout, func(w io.Writer) error {
			return plot.RenderScatter(w, data, report, title)
		}); err != nil {
			return errors.Wrap(err, "render plot")
		}
	}
	return nil
}

// newEngine builds the engine selected by cfg for k clusters.
func newEngine(cfg runConfig, k int, logger *zap.Logger) (cluster.Clusterer, error) {
	switch cfg.Algorithm {
	case "hac":
		c := cluster.DefaultHACConfig()
		c.K = k
		c.Linkage = cluster.Linkage(cfg.Linkage)
		c.Logger = logger
		return cluster.NewHAC(c), nil
	case "kmeans":
		c := cluster.DefaultKMeansConfig()
		c.K = k
		c.Init = cluster.InitMode(cfg.Init)
		c.Seed = cfg.Seed
		c.MaxIter = cfg.MaxIter
		c.Logger = logger
		return cluster.NewKMeans(c), nil
	default:
		return nil, errors.Errorf("unknown algorithm %q (want \"hac\" or \"kmeans\")", cfg.Algorithm)
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// withOutput calls write with path opened for writing, or with stdout when
// path is empty.
func withOutput(path string, stdout io.Writer, write func(io.Writer) error) error {
	if path == "" {
		return write(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}
