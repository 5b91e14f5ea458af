package nbs

// UnionFind implements a disjoint-set data structure with path compression
// and union by size. Besides vertex counts it tracks how many edges were
// unioned into each set, since NBS measures component size in edges.
type UnionFind struct {
	parent []int
	size   []int
	edges  []int
}

// NewUnionFind creates a UnionFind over n singleton vertices.
func NewUnionFind(n int) *UnionFind {
	uf := &UnionFind{
		parent: make([]int, n),
		size:   make([]int, n),
		edges:  make([]int, n),
	}
	uf.Reset()
	return uf
}

// Reset returns every vertex to its own singleton set with no edges, so the
// structure can be reused across permutations without reallocating.
func (uf *UnionFind) Reset() {
	for i := range uf.parent {
		uf.parent[i] = -1 // -1 means "is a root"
		uf.size[i] = 1
		uf.edges[i] = 0
	}
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

// Union records the edge (x, y): it merges the two sets if they differ,
// attaching the smaller tree under the larger, and counts the edge against
// the resulting set. Returns the new root.
func (uf *UnionFind) Union(x, y int) int {
	rootX := uf.Find(x)
	rootY := uf.Find(y)
	if rootX == rootY {
		uf.edges[rootX]++
		return rootX
	}

	if uf.size[rootX] < uf.size[rootY] {
		rootX, rootY = rootY, rootX
	}
	uf.parent[rootY] = rootX
	uf.size[rootX] += uf.size[rootY]
	uf.edges[rootX] += uf.edges[rootY] + 1
	return rootX
}

// Edges returns the number of edges in the set containing x.
func (uf *UnionFind) Edges(x int) int {
	return uf.edges[uf.Find(x)]
}

// Size returns the number of vertices in the set containing x.
func (uf *UnionFind) Size(x int) int {
	return uf.size[uf.Find(x)]
}

// maxEdges returns the largest edge count over all sets.
func (uf *UnionFind) maxEdges() int {
	best := 0
	for v, p := range uf.parent {
		if p == -1 && uf.edges[v] > best {
			best = uf.edges[v]
		}
	}
	return best
}
