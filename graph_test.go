package nbs

import (
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"gonum.org/v1/gonum/graph/topo"
)

func TestComponentGraph_AgreesWithTopo(t *testing.T) {
	rng := rand.New(rand.NewPCG(13, 14))
	x := randomPopulation(t, rng, 12, 6, 0.6, 1)
	y := randomPopulation(t, rng, 12, 6, 0, 1)

	cfg := DefaultConfig()
	cfg.Threshold = 1.2
	cfg.Permutations = 10
	cfg.Seed = 3
	result, err := Compute(x, y, cfg)
	if err != nil {
		t.Fatal(err)
	}

	g := ComponentGraph(result)
	if got := g.Nodes().Len(); got != 12 {
		t.Fatalf("graph has %d nodes, want 12", got)
	}

	// topo reports isolated vertices as singleton components; ours does not.
	var fromTopo [][]int
	for _, cc := range topo.ConnectedComponents(g) {
		if len(cc) < 2 {
			continue
		}
		ids := make([]int, len(cc))
		for i, n := range cc {
			ids[i] = int(n.ID())
		}
		slices.Sort(ids)
		fromTopo = append(fromTopo, ids)
	}
	if len(fromTopo) != len(result.Components) {
		t.Fatalf("topo found %d components, Compute found %d", len(fromTopo), len(result.Components))
	}

	for _, comp := range result.Components {
		var ids []int
		for _, e := range comp.Edges {
			ids = append(ids, e.I, e.J)
		}
		slices.Sort(ids)
		ids = slices.Compact(ids)
		found := false
		for _, cc := range fromTopo {
			if slices.Equal(cc, ids) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("component %d with nodes %v not found by topo", comp.Label, ids)
		}
	}

	edges := 0
	for _, comp := range result.Components {
		edges += comp.Size
	}
	if got := g.Edges().Len(); got != edges {
		t.Errorf("graph has %d edges, components hold %d", got, edges)
	}
}

func TestMarshalDOT(t *testing.T) {
	x, y := twoEdgeEffect(t)
	cfg := DefaultConfig()
	cfg.Permutations = 100
	cfg.Seed = 2024
	result, err := Compute(x, y, cfg)
	if err != nil {
		t.Fatal(err)
	}

	b, err := MarshalDOT(result, "nbs", 0.05)
	if err != nil {
		t.Fatalf("MarshalDOT: %v", err)
	}
	out := string(b)
	for _, want := range []string{"graph nbs", "--", "component=1", "component=2"} {
		if !strings.Contains(out, want) {
			t.Errorf("DOT output missing %q:\n%s", want, out)
		}
	}

	b, err = MarshalDOT(result, "empty", 0)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(b), "--") {
		t.Errorf("alpha=0 rendered edges:\n%s", b)
	}
}
