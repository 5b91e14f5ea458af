package nbs

import "fmt"

// Component is a connected subgraph of supra-threshold edges.
type Component struct {
	// Label is the 1-based ordinal used in the labeled adjacency matrix.
	Label int
	// Size is the number of edges (not vertices) in the component.
	Size int
	// Edges lists the member edges in linear edge-index order.
	Edges []Edge
}

// Components is the outcome of thresholding one edge-statistic vector.
type Components struct {
	// Nodes is N.
	Nodes int
	// Adjacency is a flat N×N row-major symmetric matrix. Each supra-threshold
	// edge carries its component's Label; every other entry is 0.
	Adjacency []int
	// List holds the components with at least one edge, ordered by Label.
	List []Component
}

// Sizes returns the edge count of each component in Label order.
func (c *Components) Sizes() []int {
	sizes := make([]int, len(c.List))
	for i, comp := range c.List {
		sizes[i] = comp.Size
	}
	return sizes
}

// ExtractComponents thresholds stats (indexed by idx) after applying the tail
// transform and returns the connected components of the surviving edges.
// An edge survives when its transformed statistic is strictly greater than
// threshold. Components are labeled 1..C in order of their smallest node.
// Vertices without any surviving edge do not form components.
func ExtractComponents(stats []float64, idx *EdgeIndex, threshold float64, tail Tail) (*Components, error) {
	if err := tail.validate(); err != nil {
		return nil, err
	}
	if len(stats) != idx.Len() {
		return nil, fmt.Errorf("nbs: %d edge statistics for %d edges (n=%d): %w",
			len(stats), idx.Len(), idx.Nodes(), ErrInvalidArgument)
	}

	n := idx.Nodes()
	uf := NewUnionFind(n)
	supra := make([]bool, len(stats))
	for e, s := range stats {
		if tail.transform(s) > threshold {
			pr := idx.Pair(e)
			uf.Union(pr.I, pr.J)
			supra[e] = true
		}
	}

	rootLabel := make([]int, n)
	out := &Components{Nodes: n, Adjacency: make([]int, n*n)}
	for v := 0; v < n; v++ {
		r := uf.Find(v)
		if uf.edges[r] == 0 || rootLabel[r] != 0 {
			continue
		}
		out.List = append(out.List, Component{
			Label: len(out.List) + 1,
			Size:  uf.edges[r],
			Edges: make([]Edge, 0, uf.edges[r]),
		})
		rootLabel[r] = len(out.List)
	}

	for e, ok := range supra {
		if !ok {
			continue
		}
		pr := idx.Pair(e)
		label := rootLabel[uf.Find(pr.I)]
		out.Adjacency[pr.I*n+pr.J] = label
		out.Adjacency[pr.J*n+pr.I] = label
		comp := &out.List[label-1]
		comp.Edges = append(comp.Edges, pr)
	}
	return out, nil
}

// maxComponentSize returns the largest component edge count for stats,
// reusing uf as scratch. tail must already be validated.
func maxComponentSize(stats []float64, idx *EdgeIndex, threshold float64, tail Tail, uf *UnionFind) int {
	uf.Reset()
	for e, s := range stats {
		if tail.transform(s) > threshold {
			pr := idx.Pair(e)
			uf.Union(pr.I, pr.J)
		}
	}
	return uf.maxEdges()
}
