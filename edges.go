package nbs

// Edge is an unordered node pair with I < J.
type Edge struct {
	I, J int
}

// EdgeIndex maps linear edge indices onto the strictly upper triangle of an
// n×n matrix, row by row: (0,1), (0,2), ..., (0,n-1), (1,2), ...
type EdgeIndex struct {
	n      int
	pairs  []Edge
	offset []int // offset[i] is the linear index of edge (i, i+1)
}

// NewEdgeIndex builds the lookup table for n nodes. n < 2 yields an empty index.
func NewEdgeIndex(n int) *EdgeIndex {
	n = max(n, 0)
	m := n * (n - 1) / 2
	if n < 2 {
		m = 0
	}
	idx := &EdgeIndex{
		n:      n,
		pairs:  make([]Edge, 0, m),
		offset: make([]int, n),
	}
	for i := 0; i < n; i++ {
		idx.offset[i] = len(idx.pairs)
		for j := i + 1; j < n; j++ {
			idx.pairs = append(idx.pairs, Edge{I: i, J: j})
		}
	}
	return idx
}

// Nodes returns the number of nodes the index was built for.
func (x *EdgeIndex) Nodes() int { return x.n }

// Len returns the number of edges, n(n-1)/2.
func (x *EdgeIndex) Len() int { return len(x.pairs) }

// Pair returns the node pair of linear edge e.
func (x *EdgeIndex) Pair(e int) Edge { return x.pairs[e] }

// Index returns the linear index of the edge between i and j in either
// order, or -1 for a self-loop or an out-of-range node.
func (x *EdgeIndex) Index(i, j int) int {
	if i > j {
		i, j = j, i
	}
	if i == j || i < 0 || j >= x.n {
		return -1
	}
	return x.offset[i] + (j - i - 1)
}
