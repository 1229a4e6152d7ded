package main

import (
	"flag"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// runConfig is the full set of options for one invocation. Values come from
// the defaults, then an optional YAML run file, then command-line flags.
type runConfig struct {
	ConfigPath string `yaml:"-"`

	Input   string `yaml:"input"`
	Header  bool   `yaml:"header"`
	Columns string `yaml:"columns"`

	Algorithm string `yaml:"algorithm"`
	K         int    `yaml:"k"`
	Linkage   string `yaml:"linkage"`
	Init      string `yaml:"init"`
	Seed      int64  `yaml:"seed"`
	MaxIter   int    `yaml:"max_iter"`

	Output string `yaml:"output"`
	Plot   string `yaml:"plot"`
	Sweep  string `yaml:"sweep"`
	Debug  bool   `yaml:"debug"`
}

func defaultRunConfig() runConfig {
	return runConfig{
		Algorithm: "hac",
		K:         3,
		Linkage:   "single",
		Init:      "random",
		MaxIter:   1000,
	}
}

func newFlagSet(cfg *runConfig, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("cluster", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cfg.ConfigPath, "config", cfg.ConfigPath, "YAML run file; flags override its values")
	fs.StringVar(&cfg.Input, "input", cfg.Input, "CSV file with one point per line")
	fs.BoolVar(&cfg.Header, "header", cfg.Header, "skip the first CSV line")
	fs.StringVar(&cfg.Columns, "columns", cfg.Columns, "comma-separated zero-based columns to read (default all)")
	fs.StringVar(&cfg.Algorithm, "algorithm", cfg.Algorithm, `clustering algorithm: "hac" or "kmeans"`)
	fs.IntVar(&cfg.K, "k", cfg.K, "number of clusters")
	fs.StringVar(&cfg.Linkage, "linkage", cfg.Linkage, `HAC linkage: "single" or "complete"`)
	fs.StringVar(&cfg.Init, "init", cfg.Init, `K-Means initialization: "deterministic" or "random"`)
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "seed for random K-Means initialization")
	fs.IntVar(&cfg.MaxIter, "max-iter", cfg.MaxIter, "K-Means iteration cap (0 = none)")
	fs.StringVar(&cfg.Output, "output", cfg.Output, "report file (default stdout)")
	fs.StringVar(&cfg.Plot, "plot", cfg.Plot, "write an HTML scatter plot to this file")
	fs.StringVar(&cfg.Sweep, "sweep", cfg.Sweep, `fit a range of k instead, e.g. "2-8" or "2,4,6"`)
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "log every merge and iteration")
	return fs
}

// parseArgs resolves the run configuration. When -config is given the YAML
// file replaces the defaults and the flags are parsed again on top of it.
func parseArgs(args []string, output io.Writer) (runConfig, error) {
	cfg := defaultRunConfig()
	if err := newFlagSet(&cfg, output).Parse(args); err != nil {
		return runConfig{}, err
	}
	if cfg.ConfigPath == "" {
		return cfg, nil
	}

	base := defaultRunConfig()
	if err := loadRunConfig(cfg.ConfigPath, &base); err != nil {
		return runConfig{}, err
	}
	if err := newFlagSet(&base, output).Parse(args); err != nil {
		return runConfig{}, err
	}
	return base, nil
}

func loadRunConfig(path string, cfg *runConfig) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read run file %s", path)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return errors.Wrapf(err, "parse run file %s", path)
	}
	return nil
}

// parseKs parses a sweep range "lo-hi" or a list "a,b,c".
func parseKs(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if lo, hi, ok := strings.Cut(s, "-"); ok {
		from, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, errors.Wrapf(err, "sweep start %q", lo)
		}
		to, err := strconv.Atoi(strings.TrimSpace(hi))
		if err != nil {
			return nil, errors.Wrapf(err, "sweep end %q", hi)
		}
		if to < from {
			return nil, errors.Errorf("sweep range %q is empty", s)
		}
		ks := make([]int, 0, to-from+1)
		for k := from; k <= to; k++ {
			ks = append(ks, k)
		}
		return ks, nil
	}

	parts := strings.Split(s, ",")
	ks := make([]int, len(parts))
	for i, p := range parts {
		k, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, errors.Wrapf(err, "sweep value %q", p)
		}
		ks[i] = k
	}
	return ks, nil
}
