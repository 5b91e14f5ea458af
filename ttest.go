package nbs

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// TStatistic computes the pooled-variance two-sample t-statistic
//
//	t = (mean(x) - mean(y)) / (s * sqrt(1/nx + 1/ny))
//
// where s² is the pooled unbiased variance. Both samples need at least two
// values. When the pooled variance is zero the statistic is defined as 0.
func TStatistic(x, y []float64) (float64, error) {
	if len(x) < 2 || len(y) < 2 {
		return 0, fmt.Errorf("nbs: t-statistic needs at least 2 values per sample, got %d and %d: %w",
			len(x), len(y), ErrInsufficientSample)
	}
	return pooledT(x, y), nil
}

// pooledT assumes len(x), len(y) >= 2.
func pooledT(x, y []float64) float64 {
	mx, vx := stat.MeanVariance(x, nil)
	my, vy := stat.MeanVariance(y, nil)
	nx, ny := float64(len(x)), float64(len(y))

	s2 := ((nx-1)*vx + (ny-1)*vy) / (nx + ny - 2)
	if s2 <= 0 {
		return 0
	}
	return (mx - my) / (math.Sqrt(s2) * math.Sqrt(1/nx+1/ny))
}

// EdgeStatistics computes the t-statistic of every edge for groups x and y.
// The result is indexed by NewEdgeIndex(x.Nodes()).
func EdgeStatistics(x, y *Population) ([]float64, error) {
	if err := validatePopulations(x, y); err != nil {
		return nil, err
	}
	idx := NewEdgeIndex(x.n)
	combined := combine(x, y, idx)
	stats := make([]float64, idx.Len())
	s := newTScratch(x.m, y.m)
	s.compute(combined, identityOrder(x.m+y.m), stats)
	return stats, nil
}

// tScratch holds the per-group buffers gathered for one edge. Each goroutine
// needs its own.
type tScratch struct {
	nx, ny int
	bx, by []float64
}

func newTScratch(nx, ny int) *tScratch {
	return &tScratch{nx: nx, ny: ny, bx: make([]float64, nx), by: make([]float64, ny)}
}

// compute fills dst with one statistic per edge row of combined, where order
// lists the columns to use: the first nx form group X, the rest group Y.
func (s *tScratch) compute(combined []float64, order []int, dst []float64) {
	stride := s.nx + s.ny
	for e := range dst {
		row := combined[e*stride : (e+1)*stride]
		for k, c := range order[:s.nx] {
			s.bx[k] = row[c]
		}
		for k, c := range order[s.nx:] {
			s.by[k] = row[c]
		}
		dst[e] = pooledT(s.bx, s.by)
	}
}

func identityOrder(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}

// UncorrectedPValues converts edge statistics into per-edge p-values from
// Student's t-distribution with nx+ny-2 degrees of freedom. These are not
// corrected for multiple comparisons.
func UncorrectedPValues(stats []float64, nx, ny int, tail Tail) ([]float64, error) {
	if err := tail.validate(); err != nil {
		return nil, err
	}
	if nx < 2 || ny < 2 {
		return nil, fmt.Errorf("nbs: group sizes %d and %d leave no degrees of freedom: %w",
			nx, ny, ErrInsufficientSample)
	}
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(nx + ny - 2)}
	out := make([]float64, len(stats))
	for e, t := range stats {
		switch tail {
		case TailRight:
			out[e] = dist.Survival(t)
		case TailLeft:
			out[e] = dist.CDF(t)
		default:
			out[e] = math.Min(1, 2*dist.Survival(math.Abs(t)))
		}
	}
	return out, nil
}
