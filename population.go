package nbs

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Population holds the connectivity matrices of one study group as an
// (N, N, M) array: N nodes, M subjects. Only the strictly upper triangle of
// each subject's matrix is used.
type Population struct {
	n, m int
	// data is C-ordered (N, N, M): data[(i*n+j)*m+s].
	data []float64
}

// NewPopulation builds a Population from one square matrix per subject.
// All matrices must share the same size.
func NewPopulation(subjects []mat.Matrix) (*Population, error) {
	if len(subjects) == 0 {
		return nil, fmt.Errorf("nbs: population has no subjects: %w", ErrInsufficientSample)
	}
	n, c := subjects[0].Dims()
	if n != c {
		return nil, fmt.Errorf("nbs: subject 0 matrix is %dx%d, must be square: %w", n, c, ErrInvalidArgument)
	}
	m := len(subjects)
	data := make([]float64, n*n*m)
	for s, sub := range subjects {
		r, c := sub.Dims()
		if r != n || c != n {
			return nil, fmt.Errorf("nbs: subject %d matrix is %dx%d, want %dx%d: %w", s, r, c, n, n, ErrInvalidArgument)
		}
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				data[(i*n+j)*m+s] = sub.At(i, j)
			}
		}
	}
	return &Population{n: n, m: m, data: data}, nil
}

// NewPopulationFlat wraps a C-ordered (n, n, m) array. The slice is copied.
func NewPopulationFlat(data []float64, n, m int) (*Population, error) {
	if n < 0 || m < 0 {
		return nil, fmt.Errorf("nbs: negative population shape (%d, %d, %d): %w", n, n, m, ErrInvalidArgument)
	}
	if len(data) != n*n*m {
		return nil, fmt.Errorf("nbs: data length %d does not match n*n*m = %d (n=%d, m=%d): %w",
			len(data), n*n*m, n, m, ErrInvalidArgument)
	}
	cp := make([]float64, len(data))
	copy(cp, data)
	return &Population{n: n, m: m, data: cp}, nil
}

// Nodes returns N.
func (p *Population) Nodes() int { return p.n }

// Subjects returns M.
func (p *Population) Subjects() int { return p.m }

// At returns the weight of edge (i, j) for subject s.
func (p *Population) At(i, j, s int) float64 {
	return p.data[(i*p.n+j)*p.m+s]
}

// edgeRows copies the upper-triangle weights into dst, which is laid out
// edges × stride with this population's subjects starting at column col.
func (p *Population) edgeRows(idx *EdgeIndex, dst []float64, stride, col int) {
	for e := 0; e < idx.Len(); e++ {
		pr := idx.Pair(e)
		src := p.data[(pr.I*p.n+pr.J)*p.m : (pr.I*p.n+pr.J+1)*p.m]
		copy(dst[e*stride+col:e*stride+col+p.m], src)
	}
}

// combine lays out x and y side by side as an edges × (mx+my) row-major
// matrix, X subjects first.
func combine(x, y *Population, idx *EdgeIndex) []float64 {
	stride := x.m + y.m
	out := make([]float64, idx.Len()*stride)
	x.edgeRows(idx, out, stride, 0)
	y.edgeRows(idx, out, stride, x.m)
	return out
}
