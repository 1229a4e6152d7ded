package cluster

import (
	"math"

	"go.uber.org/zap"
)

// Linkage selects how the distance between two clusters is derived from the
// distances between their points.
type Linkage string

const (
	// LinkageSingle uses the closest pair of points, one from each cluster.
	LinkageSingle Linkage = "single"
	// LinkageComplete uses the farthest pair of points, one from each cluster.
	LinkageComplete Linkage = "complete"
)

// HACConfig controls hierarchical agglomerative clustering.
// Start with [DefaultHACConfig] and override the fields you need.
type HACConfig struct {
	// K is the number of clusters at which merging stops.
	// Must be in [1, N]. Default: 3.
	K int

	// Linkage is the cluster distance rule. Default: "single".
	Linkage Linkage

	// Logger receives one Debug entry per merge. Nil disables logging.
	Logger *zap.Logger
}

// DefaultHACConfig returns a HACConfig with reasonable defaults.
func DefaultHACConfig() HACConfig {
	return HACConfig{
		K:       3,
		Linkage: LinkageSingle,
	}
}

func validateHACConfig(cfg *HACConfig) error {
	switch cfg.Linkage {
	case LinkageSingle, LinkageComplete:
	default:
		return &InvalidParameterError{
			Param:  "linkage",
			Value:  cfg.Linkage,
			Reason: `must be "single" or "complete"`,
		}
	}
	if cfg.K < 1 {
		return &InvalidParameterError{Param: "k", Value: cfg.K, Reason: "must be >= 1"}
	}
	return nil
}

// HAC is a hierarchical agglomerative clustering engine. It starts from one
// cluster per point and greedily merges the two closest clusters until K
// remain.
type HAC struct {
	cfg HACConfig
	log *zap.Logger
}

// NewHAC returns a HAC engine for cfg. The config is validated by Fit.
func NewHAC(cfg HACConfig) *HAC {
	return &HAC{cfg: cfg, log: loggerOrNop(cfg.Logger)}
}

// Fit clusters data, one row per point.
func (h *HAC) Fit(data [][]float64) (*Report, error) {
	if err := validateHACConfig(&h.cfg); err != nil {
		return nil, err
	}
	ps, err := NewPointSet(data)
	if err != nil {
		return nil, err
	}
	return h.FitPoints(ps)
}

// FitPoints clusters an already validated PointSet.
func (h *HAC) FitPoints(ps *PointSet) (*Report, error) {
	if err := validateHACConfig(&h.cfg); err != nil {
		return nil, err
	}
	n := ps.Len()
	if err := validateK(h.cfg.K, n); err != nil {
		return nil, err
	}

	// link[i*n+j] is the linkage distance between the clusters rooted at
	// i and j. Roots are the first point of a cluster, so ascending root
	// order is the order of the cluster list.
	link := ComputePairwiseDistances(ps)
	alive := make([]bool, n)
	members := make([][]int, n)
	for i := range members {
		alive[i] = true
		members[i] = []int{i}
	}
	uf := NewUnionFind(n)

	var merges []Merge
	if n > h.cfg.K {
		merges = make([]Merge, 0, n-h.cfg.K)
	}

	for remaining := n; remaining > h.cfg.K; remaining-- {
		into, from, dist := closestPair(link, alive, n)

		m := Merge{
			Into:     position(alive, into),
			From:     position(alive, from),
			Distance: dist,
		}

		members[into] = append(members[into], members[from]...)
		members[from] = nil
		alive[from] = false
		uf.Merge(into, from)
		h.updateLinkage(link, alive, n, into, from)

		m.Size = len(members[into])
		merges = append(merges, m)
		h.log.Debug("merged clusters",
			zap.Int("into", m.Into),
			zap.Int("from", m.From),
			zap.Float64("distance", dist),
			zap.Int("size", m.Size),
			zap.Int("remaining", remaining-1),
		)
	}

	clusters := make([][]int, 0, h.cfg.K)
	posOf := make(map[int]int, h.cfg.K)
	for root := 0; root < n; root++ {
		if alive[root] {
			posOf[root] = len(clusters)
			clusters = append(clusters, members[root])
		}
	}
	labels := make([]int, n)
	for i := range labels {
		labels[i] = posOf[uf.Find(i)]
	}

	r := newReport(ps, clusters, labels)
	r.Merges = merges
	h.log.Debug("hac finished",
		zap.Int("k", r.K),
		zap.String("linkage", string(h.cfg.Linkage)),
		zap.Float64("total_sse", r.TotalSSE()),
	)
	return r, nil
}

// closestPair scans live cluster pairs (i < j) in list order and returns the
// first pair with the smallest linkage distance.
func closestPair(link []float64, alive []bool, n int) (int, int, float64) {
	best := math.Inf(1)
	bi, bj := -1, -1
	for i := 0; i < n; i++ {
		if !alive[i] {
			continue
		}
		for j := i + 1; j < n; j++ {
			if !alive[j] {
				continue
			}
			if d := link[i*n+j]; bi < 0 || d < best {
				best = d
				bi, bj = i, j
			}
		}
	}
	return bi, bj, best
}

// updateLinkage rewrites the distances of the merged cluster into. The
// minimum (single) or maximum (complete) of the two old rows equals the
// linkage recomputed over all point pairs.
func (h *HAC) updateLinkage(link []float64, alive []bool, n, into, from int) {
	for m := 0; m < n; m++ {
		if !alive[m] || m == into {
			continue
		}
		a, b := link[into*n+m], link[from*n+m]
		var d float64
		if h.cfg.Linkage == LinkageComplete {
			d = max(a, b)
		} else {
			d = min(a, b)
		}
		link[into*n+m] = d
		link[m*n+into] = d
	}
}

// position returns the index of root among the live roots.
func position(alive []bool, root int) int {
	p := 0
	for i := 0; i < root; i++ {
		if alive[i] {
			p++
		}
	}
	return p
}
