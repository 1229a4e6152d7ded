package cluster

import (
	"math"
	"math/rand"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

// InitMode selects how K-Means picks its initial centroids.
type InitMode string

const (
	// InitDeterministic seeds the centroids with the first K points.
	InitDeterministic InitMode = "deterministic"
	// InitRandom seeds the centroids with K distinct points drawn uniformly.
	InitRandom InitMode = "random"
)

// KMeansConfig controls K-Means clustering.
// Start with [DefaultKMeansConfig] and override the fields you need.
type KMeansConfig struct {
	// K is the number of clusters. Must be in [1, N]. Default: 3.
	K int

	// Init chooses the initial centroids. Default: "random".
	Init InitMode

	// Seed seeds the generator used by InitRandom. Default: 0.
	Seed int64

	// MaxIter caps the number of assignment/update passes. When the cap is
	// reached before convergence, Fit returns the last state with
	// Report.Converged set to false. 0 means no cap. Default: 1000.
	MaxIter int

	// Logger receives one Debug entry per iteration. Nil disables logging.
	Logger *zap.Logger
}

// DefaultKMeansConfig returns a KMeansConfig with reasonable defaults.
func DefaultKMeansConfig() KMeansConfig {
	return KMeansConfig{
		K:       3,
		Init:    InitRandom,
		MaxIter: 1000,
	}
}

func validateKMeansConfig(cfg *KMeansConfig) error {
	switch cfg.Init {
	case InitDeterministic, InitRandom:
	default:
		return &InvalidParameterError{
			Param:  "init mode",
			Value:  cfg.Init,
			Reason: `must be "deterministic" or "random"`,
		}
	}
	if cfg.K < 1 {
		return &InvalidParameterError{Param: "k", Value: cfg.K, Reason: "must be >= 1"}
	}
	if cfg.MaxIter < 0 {
		return &InvalidParameterError{Param: "max iterations", Value: cfg.MaxIter, Reason: "must be >= 0"}
	}
	return nil
}

// KMeans is a centroid-based clustering engine. It alternates assigning
// every point to its nearest centroid and moving each centroid to the mean
// of its points until no centroid moves.
type KMeans struct {
	cfg KMeansConfig
	log *zap.Logger
}

// NewKMeans returns a KMeans engine for cfg. The config is validated by Fit.
func NewKMeans(cfg KMeansConfig) *KMeans {
	return &KMeans{cfg: cfg, log: loggerOrNop(cfg.Logger)}
}

// Fit clusters data, one row per point.
func (km *KMeans) Fit(data [][]float64) (*Report, error) {
	if err := validateKMeansConfig(&km.cfg); err != nil {
		return nil, err
	}
	ps, err := NewPointSet(data)
	if err != nil {
		return nil, err
	}
	return km.FitPoints(ps)
}

// FitPoints clusters an already validated PointSet.
func (km *KMeans) FitPoints(ps *PointSet) (*Report, error) {
	if err := validateKMeansConfig(&km.cfg); err != nil {
		return nil, err
	}
	n, k := ps.Len(), km.cfg.K
	if err := validateK(k, n); err != nil {
		return nil, err
	}

	centroids := km.initialCentroids(ps)
	assign := make([]int, n)
	dists := make([]float64, n)
	counts := make([]int, k)
	var (
		sse       []float64
		history   []float64
		converged bool
		iter      int
	)

	for iter = 1; ; iter++ {
		clear(counts)
		for i := 0; i < n; i++ {
			c, d := nearestCentroid(ps.Row(i), centroids)
			assign[i] = c
			dists[i] = d
			counts[c]++
		}
		for c, cnt := range counts {
			if cnt == 0 {
				return nil, &EmptyClusterError{Cluster: c, Iteration: iter}
			}
		}

		next := make([][]float64, k)
		for c := range next {
			next[c] = make([]float64, ps.Dims())
		}
		sse = make([]float64, k)
		for i, c := range assign {
			floats.Add(next[c], ps.Row(i))
			sse[c] += dists[i] * dists[i]
		}
		for c := range next {
			floats.Scale(1/float64(counts[c]), next[c])
		}

		total := floats.Sum(sse)
		history = append(history, total)
		moved := centroidsMoved(centroids, next)
		centroids = next
		km.log.Debug("k-means iteration",
			zap.Int("iteration", iter),
			zap.Float64("total_sse", total),
			zap.Bool("moved", moved),
		)

		if !moved {
			converged = true
			break
		}
		if km.cfg.MaxIter > 0 && iter >= km.cfg.MaxIter {
			km.log.Warn("k-means stopped before convergence",
				zap.Int("max_iter", km.cfg.MaxIter),
				zap.Float64("total_sse", total),
			)
			break
		}
	}

	clusters := make([][]int, k)
	for i, c := range assign {
		clusters[c] = append(clusters[c], i)
	}
	return &Report{
		K:          k,
		Clusters:   clusters,
		Centroids:  centroids,
		SSE:        sse,
		Labels:     assign,
		Iterations: iter,
		Converged:  converged,
		SSEHistory: history,
	}, nil
}

func (km *KMeans) initialCentroids(ps *PointSet) [][]float64 {
	k := km.cfg.K
	idx := make([]int, k)
	switch km.cfg.Init {
	case InitRandom:
		rng := rand.New(rand.NewSource(km.cfg.Seed))
		copy(idx, rng.Perm(ps.Len())[:k])
	default:
		for c := range idx {
			idx[c] = c
		}
	}

	centroids := make([][]float64, k)
	for c, i := range idx {
		centroids[c] = append([]float64(nil), ps.Row(i)...)
	}
	km.log.Debug("k-means seeded",
		zap.String("init", string(km.cfg.Init)),
		zap.Ints("points", idx),
	)
	return centroids
}

// nearestCentroid returns the index of the closest centroid to p and the
// distance to it. Ties go to the lowest index.
func nearestCentroid(p []float64, centroids [][]float64) (int, float64) {
	best := math.Inf(1)
	bc := -1
	for c, centroid := range centroids {
		if d := Euclidean(p, centroid); bc < 0 || d < best {
			best = d
			bc = c
		}
	}
	return bc, best
}

// centroidsMoved reports whether any coordinate differs between prev and next.
func centroidsMoved(prev, next [][]float64) bool {
	for c := range prev {
		if !floats.Equal(prev[c], next[c]) {
			return true
		}
	}
	return false
}
