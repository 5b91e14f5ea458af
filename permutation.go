package nbs

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
)

// permutationJob is the immutable input shared by every permutation worker.
type permutationJob struct {
	combined  []float64
	nx, ny    int
	idx       *EdgeIndex
	threshold float64
	tail      Tail
	seed      uint64
}

// RunPermutations builds the null distribution of the maximum component size.
// combined is an edges × (nx+ny) row-major matrix holding group X's subjects
// in the first nx columns and group Y's in the rest.
//
// Permutation k shuffles all nx+ny columns with a generator seeded by
// (cfg.Seed, k), takes the first nx as a synthetic X group, recomputes every
// edge statistic and records the largest component's edge count (0 when no
// edge survives) at index k. Permutations are spread over cfg.Workers
// goroutines; the result does not depend on the worker count.
//
// ctx is checked before each permutation. If it is done, RunPermutations
// returns ctx.Err() once in-flight permutations finish.
func RunPermutations(ctx context.Context, combined []float64, nx, ny int, idx *EdgeIndex, cfg Config) ([]int, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	if nx < 2 || ny < 2 {
		return nil, fmt.Errorf("nbs: groups need at least 2 subjects each, got %d and %d: %w",
			nx, ny, ErrInsufficientSample)
	}
	if len(combined) != idx.Len()*(nx+ny) {
		return nil, fmt.Errorf("nbs: combined length %d does not match edges*(nx+ny) = %d: %w",
			len(combined), idx.Len()*(nx+ny), ErrInvalidArgument)
	}

	job := &permutationJob{
		combined:  combined,
		nx:        nx,
		ny:        ny,
		idx:       idx,
		threshold: cfg.Threshold,
		tail:      cfg.Tail,
		seed:      cfg.Seed,
	}
	k := cfg.Permutations
	null := make([]int, k)
	tick := newProgress(cfg.Progress, k)

	numWorkers := min(cfg.Workers, k)
	if numWorkers <= 1 {
		job.run(ctx, 0, k, null, tick)
		return finish(ctx, null)
	}

	// Each worker owns a contiguous range of permutation indices and writes
	// only those slots of null, so no synchronization is needed for results.
	var wg sync.WaitGroup
	perWorker := (k + numWorkers - 1) / numWorkers

	for w := 0; w < numWorkers; w++ {
		start := w * perWorker
		end := min(start+perWorker, k)
		if start >= k {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			job.run(ctx, start, end, null, tick)
		}(start, end)
	}

	wg.Wait()
	return finish(ctx, null)
}

func finish(ctx context.Context, null []int) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return null, nil
}

// run evaluates permutations [start, end) with private scratch space.
func (j *permutationJob) run(ctx context.Context, start, end int, null []int, tick func()) {
	total := j.nx + j.ny
	order := make([]int, total)
	stats := make([]float64, j.idx.Len())
	ts := newTScratch(j.nx, j.ny)
	uf := NewUnionFind(j.idx.Nodes())

	for k := start; k < end; k++ {
		if ctx.Err() != nil {
			return
		}
		for i := range order {
			order[i] = i
		}
		rng := rand.New(rand.NewPCG(j.seed, uint64(k)))
		rng.Shuffle(total, func(a, b int) { order[a], order[b] = order[b], order[a] })

		ts.compute(j.combined, order, stats)
		null[k] = maxComponentSize(stats, j.idx, j.threshold, j.tail, uf)
		tick()
	}
}

// newProgress serializes calls to fn, passing the running count of completed
// permutations. A nil fn yields a no-op.
func newProgress(fn func(done, total int), total int) func() {
	if fn == nil {
		return func() {}
	}
	var mu sync.Mutex
	done := 0
	return func() {
		mu.Lock()
		defer mu.Unlock()
		done++
		fn(done, total)
	}
}
