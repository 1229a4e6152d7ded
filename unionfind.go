package cluster

// UnionFind is a disjoint-set structure over n point indices with path
// compression. Unlike a size-balanced union-find, Merge lets the caller pick
// the surviving root, so a set's root is always the point that started the
// cluster occupying that position in the HAC cluster list.
type UnionFind struct {
	parent []int
	size   []int
}

// NewUnionFind creates a UnionFind where every element 0..n-1 is its own set.
func NewUnionFind(n int) *UnionFind {
	parent := make([]int, n)
	size := make([]int, n)
	for i := range parent {
		parent[i] = -1 // -1 means "is a root"
		size[i] = 1
	}
	return &UnionFind{parent: parent, size: size}
}

// Find returns the root of the set containing x, with path compression.
func (uf *UnionFind) Find(x int) int {
	root := x
	for uf.parent[root] != -1 {
		root = uf.parent[root]
	}
	for uf.parent[x] != -1 {
		x, uf.parent[x] = uf.parent[x], root
	}
	return root
}

// Merge attaches the set containing from under the root of the set
// containing into and returns that root. The root of into always survives.
func (uf *UnionFind) Merge(into, from int) int {
	rootInto := uf.Find(into)
	rootFrom := uf.Find(from)
	if rootInto == rootFrom {
		return rootInto
	}
	uf.parent[rootFrom] = rootInto
	uf.size[rootInto] += uf.size[rootFrom]
	return rootInto
}

// Size returns the number of elements in the set containing x.
func (uf *UnionFind) Size(x int) int {
	return uf.size[uf.Find(x)]
}
