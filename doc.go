// Package cluster implements two flat partitional clustering algorithms over
// a fixed set of real-valued points: hierarchical agglomerative clustering
// (HAC) with single or complete linkage, and K-Means.
//
// Both engines take the data as a slice of equal-length float64 rows and
// return a [Report] holding the final partition, the centroid of every
// cluster and its sum of squared error (SSE).
//
// Basic usage:
//
//	cfg := cluster.DefaultHACConfig()
//	cfg.K = 3
//	cfg.Linkage = cluster.LinkageComplete
//	report, err := cluster.NewHAC(cfg).Fit(data)
//	// report.Clusters[c] lists the point indices of cluster c
//	// report.Labels[i] is the cluster position of point i
//
// K-Means works the same way:
//
//	cfg := cluster.DefaultKMeansConfig()
//	cfg.K = 3
//	cfg.Init = cluster.InitDeterministic // first k points as seeds
//	report, err := cluster.NewKMeans(cfg).Fit(data)
//
// A report renders to the plain-text summary format with [WriteReport].
//
// # Determinism
//
// HAC has no randomness. Point distances are rounded to six decimal places
// before linkage comparison and ties resolve to the first pair in scan order,
// so merge sequences are reproducible across platforms. K-Means with
// [InitDeterministic] is likewise reproducible; [InitRandom] draws its seeds
// from a generator seeded by KMeansConfig.Seed.
//
// # Concurrency
//
// Engines are single-threaded. Independent engines over independent inputs
// may run in parallel; [Sweep] does this for a range of k values.
package cluster
