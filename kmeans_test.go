package cluster

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fitKMeans(t *testing.T, data [][]float64, k int, init InitMode) *Report {
	t.Helper()
	cfg := DefaultKMeansConfig()
	cfg.K = k
	cfg.Init = init
	r, err := NewKMeans(cfg).Fit(data)
	require.NoError(t, err)
	return r
}

// blobs generates n points around each of the given centers.
func blobs(seed int64, n int, centers [][]float64, spread float64) [][]float64 {
	rng := rand.New(rand.NewSource(seed))
	data := make([][]float64, 0, n*len(centers))
	for i := 0; i < n; i++ {
		for _, c := range centers {
			p := make([]float64, len(c))
			for j := range c {
				p[j] = c[j] + rng.NormFloat64()*spread
			}
			data = append(data, p)
		}
	}
	return data
}

func TestKMeans_DeterministicTwoPairs(t *testing.T) {
	r := fitKMeans(t, twoPairs, 2, InitDeterministic)

	assert.Equal(t, [][]int{{0, 1}, {2, 3}}, r.Clusters)
	assert.Equal(t, []int{0, 0, 1, 1}, r.Labels)
	assert.InDeltaSlice(t, []float64{0, 0.5}, r.Centroids[0], 1e-12)
	assert.InDeltaSlice(t, []float64{10, 10.5}, r.Centroids[1], 1e-12)
	assert.InDeltaSlice(t, []float64{0.5, 0.5}, r.SSE, 1e-12)
	assert.True(t, r.Converged)
	assert.Nil(t, r.Merges)

	// Seeds (0,0) and (0,1) first pull both far points to centroid 1, the
	// second pass settles the partition and the third confirms it.
	assert.Equal(t, 3, r.Iterations)
	assert.Len(t, r.SSEHistory, 3)
}

func TestKMeans_MatchesSingleLinkHAC(t *testing.T) {
	km := fitKMeans(t, twoPairs, 2, InitDeterministic)
	hac := fitHAC(t, twoPairs, 2, LinkageSingle)

	assert.Equal(t, hac.Clusters, km.Clusters)
	assert.Equal(t, hac.Labels, km.Labels)
	for c := range hac.Centroids {
		assert.InDeltaSlice(t, hac.Centroids[c], km.Centroids[c], 1e-12)
	}
	assert.InDelta(t, hac.TotalSSE(), km.TotalSSE(), 1e-12)
}

func TestKMeans_KEqualsN(t *testing.T) {
	r := fitKMeans(t, twoPairs, 4, InitDeterministic)
	assert.Equal(t, [][]int{{0}, {1}, {2}, {3}}, r.Clusters)
	assert.Zero(t, r.TotalSSE())
	assert.Equal(t, 1, r.Iterations)
}

func TestKMeans_KEqualsOne(t *testing.T) {
	ps, err := NewPointSet(twoPairs)
	require.NoError(t, err)

	for _, init := range []InitMode{InitDeterministic, InitRandom} {
		r := fitKMeans(t, twoPairs, 1, init)
		require.Len(t, r.Clusters, 1)
		assert.Equal(t, []int{0, 1, 2, 3}, r.Clusters[0])
		assert.InDeltaSlice(t, ps.Mean(), r.Centroids[0], 1e-12)
		assert.InDelta(t, ps.SSE(r.Clusters[0], ps.Mean()), r.SSE[0], 1e-9)
	}
}

func TestKMeans_EmptyCluster(t *testing.T) {
	// Both seeds are the same point, so every point ties and goes to
	// centroid 0, leaving centroid 1 empty.
	data := [][]float64{{1, 1}, {1, 1}, {5, 5}}
	cfg := KMeansConfig{K: 2, Init: InitDeterministic}
	r, err := NewKMeans(cfg).Fit(data)
	assert.Nil(t, r)

	var eerr *EmptyClusterError
	require.True(t, errors.As(err, &eerr), "got %v", err)
	assert.Equal(t, 1, eerr.Cluster)
	assert.Equal(t, 1, eerr.Iteration)
}

func TestKMeans_RandomInitReproducible(t *testing.T) {
	data := blobs(7, 20, [][]float64{{0, 0}, {8, 8}, {-8, 8}}, 1)

	cfg := DefaultKMeansConfig()
	cfg.K = 3
	cfg.Seed = 99
	a, err := NewKMeans(cfg).Fit(data)
	require.NoError(t, err)
	b, err := NewKMeans(cfg).Fit(data)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assertPartition(t, len(data), a)
}

func TestKMeans_Deterministic(t *testing.T) {
	data := blobs(3, 15, [][]float64{{0, 0, 0}, {5, 5, 5}}, 0.5)
	a := fitKMeans(t, data, 2, InitDeterministic)
	b := fitKMeans(t, data, 2, InitDeterministic)
	assert.Equal(t, a, b)
}

func TestKMeans_SSENonIncreasing(t *testing.T) {
	data := blobs(11, 40, [][]float64{{0, 0}, {3, 0}, {0, 3}, {3, 3}}, 1.2)
	for _, seed := range []int64{1, 2, 3, 4, 5} {
		cfg := DefaultKMeansConfig()
		cfg.K = 4
		cfg.Seed = seed
		r, err := NewKMeans(cfg).Fit(data)
		require.NoError(t, err)
		require.True(t, r.Converged)
		require.Len(t, r.SSEHistory, r.Iterations)

		for i := 1; i < len(r.SSEHistory); i++ {
			assert.LessOrEqual(t, r.SSEHistory[i], r.SSEHistory[i-1]+1e-9,
				"seed %d: SSE rose at iteration %d", seed, i+1)
		}
		assert.InDelta(t, r.SSEHistory[len(r.SSEHistory)-1], r.TotalSSE(), 1e-9)
	}
}

func TestKMeans_PartitionInvariant(t *testing.T) {
	data := blobs(5, 10, [][]float64{{0, 0}, {10, 0}, {5, 8}}, 1)
	for _, k := range []int{1, 2, 3} {
		r := fitKMeans(t, data, k, InitDeterministic)
		assert.Equal(t, k, r.K)
		assertPartition(t, len(data), r)
	}
}

func TestKMeans_SSEMatchesCentroidDistances(t *testing.T) {
	data := blobs(21, 25, [][]float64{{1, 2}, {9, 9}}, 1)
	r := fitKMeans(t, data, 2, InitDeterministic)

	ps, err := NewPointSet(data)
	require.NoError(t, err)
	for c, members := range r.Clusters {
		assert.InDeltaSlice(t, ps.Centroid(members), r.Centroids[c], 1e-9)
		assert.InDelta(t, ps.SSE(members, r.Centroids[c]), r.SSE[c], 1e-9)
	}
}

func TestKMeans_MaxIterStopsEarly(t *testing.T) {
	cfg := KMeansConfig{K: 2, Init: InitDeterministic, MaxIter: 1}
	r, err := NewKMeans(cfg).Fit(twoPairs)
	require.NoError(t, err)

	assert.False(t, r.Converged)
	assert.Equal(t, 1, r.Iterations)
	assert.Equal(t, [][]int{{0}, {1, 2, 3}}, r.Clusters)
	assertPartition(t, len(twoPairs), r)
}

func TestKMeans_NearestCentroidTieGoesLow(t *testing.T) {
	c, d := nearestCentroid([]float64{0, 0}, [][]float64{{1, 0}, {0, 1}, {-1, 0}})
	assert.Equal(t, 0, c)
	assert.Equal(t, 1.0, d)
}

func TestKMeans_InvalidParameters(t *testing.T) {
	tests := []struct {
		name  string
		cfg   KMeansConfig
		param string
	}{
		{name: "k zero", cfg: KMeansConfig{K: 0, Init: InitRandom}, param: "k"},
		{name: "k above n", cfg: KMeansConfig{K: 5, Init: InitDeterministic}, param: "k"},
		{name: "unknown init", cfg: KMeansConfig{K: 2, Init: "kmeans++"}, param: "init mode"},
		{name: "negative cap", cfg: KMeansConfig{K: 2, Init: InitRandom, MaxIter: -1}, param: "max iterations"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewKMeans(tt.cfg).Fit(twoPairs)
			var perr *InvalidParameterError
			require.True(t, errors.As(err, &perr), "got %v", err)
			assert.Equal(t, tt.param, perr.Param)
		})
	}
}

func TestKMeans_InvalidInput(t *testing.T) {
	_, err := NewKMeans(KMeansConfig{K: 1, Init: InitRandom}).Fit(nil)
	var ierr *InvalidInputError
	assert.True(t, errors.As(err, &ierr), "got %v", err)
}
