package nbs

import (
	"fmt"
	"strconv"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"
)

// componentEdge is a supra-threshold edge carrying its component label.
type componentEdge struct {
	simple.WeightedEdge
	label  int
	pvalue float64
}

func (e componentEdge) ReversedEdge() graph.Edge {
	e.F, e.T = e.T, e.F
	return e
}

// Attributes implements encoding.Attributer for DOT output.
func (e componentEdge) Attributes() []encoding.Attribute {
	return []encoding.Attribute{
		{Key: "component", Value: strconv.Itoa(e.label)},
		{Key: "t", Value: strconv.FormatFloat(e.W, 'f', 4, 64)},
		{Key: "p", Value: strconv.FormatFloat(e.pvalue, 'f', 4, 64)},
	}
}

// ComponentGraph returns the observed supra-threshold network as an
// undirected gonum graph over all r.Nodes nodes. Edge weights are the
// observed t-statistics.
func ComponentGraph(r *Result) *simple.WeightedUndirectedGraph {
	return buildGraph(r, func(int) bool { return true }, true)
}

// MarshalDOT renders the components whose corrected p-value is below alpha
// in Graphviz DOT format. Only nodes touched by a rendered edge appear.
func MarshalDOT(r *Result, name string, alpha float64) ([]byte, error) {
	g := buildGraph(r, func(i int) bool { return r.PValues[i] < alpha }, false)
	b, err := dot.Marshal(g, name, "", "\t")
	if err != nil {
		return nil, fmt.Errorf("nbs: marshal dot: %w", err)
	}
	return b, nil
}

func buildGraph(r *Result, keep func(i int) bool, allNodes bool) *simple.WeightedUndirectedGraph {
	g := simple.NewWeightedUndirectedGraph(0, 0)
	if allNodes {
		for v := 0; v < r.Nodes; v++ {
			g.AddNode(simple.Node(v))
		}
	}
	idx := NewEdgeIndex(r.Nodes)
	for i, c := range r.Components {
		if !keep(i) {
			continue
		}
		for _, e := range c.Edges {
			g.SetWeightedEdge(componentEdge{
				WeightedEdge: simple.WeightedEdge{
					F: simple.Node(e.I),
					T: simple.Node(e.J),
					W: r.EdgeStatistics[idx.Index(e.I, e.J)],
				},
				label:  c.Label,
				pvalue: r.PValues[i],
			})
		}
	}
	return g
}
