package nbs

import (
	"math"
	"math/rand/v2"
	"testing"
)

const floatTol = 1e-12

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// buildPopulation creates an n-node, m-subject population whose edge (i, j)
// weight for subject s is w(i, j, s). The matrices are symmetric with a zero
// diagonal.
func buildPopulation(t testing.TB, n, m int, w func(i, j, s int) float64) *Population {
	t.Helper()
	data := make([]float64, n*n*m)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for s := 0; s < m; s++ {
				v := w(i, j, s)
				data[(i*n+j)*m+s] = v
				data[(j*n+i)*m+s] = v
			}
		}
	}
	p, err := NewPopulationFlat(data, n, m)
	if err != nil {
		t.Fatalf("NewPopulationFlat: %v", err)
	}
	return p
}

// randomPopulation draws every edge weight from N(mean, sd²).
func randomPopulation(t testing.TB, rng *rand.Rand, n, m int, mean, sd float64) *Population {
	t.Helper()
	return buildPopulation(t, n, m, func(_, _, _ int) float64 {
		return mean + sd*rng.NormFloat64()
	})
}

// twoEdgeEffect returns a 4-node pair of 5-subject groups where X is far
// above Y on edges (0,1) and (2,3). Every other edge holds the same multiset
// of values in both groups, chosen so that no relabeling pushes its |t|
// above 2.4.
func twoEdgeEffect(t testing.TB) (x, y *Population) {
	t.Helper()
	jitter := []float64{-1, -0.5, 0, 0.5, 1}
	noiseX := []float64{4, 5, 6, 5, 5}
	noiseY := []float64{5, 6, 4, 5, 5}
	strong := func(i, j int) bool { return (i == 0 && j == 1) || (i == 2 && j == 3) }

	x = buildPopulation(t, 4, 5, func(i, j, s int) float64 {
		if strong(i, j) {
			return 10 + 0.1*jitter[s]
		}
		return noiseX[(s+i+j)%5]
	})
	y = buildPopulation(t, 4, 5, func(i, j, s int) float64 {
		if strong(i, j) {
			return 1 + 0.1*jitter[s]
		}
		return noiseY[(s+i+j)%5]
	})
	return x, y
}
