package nbs

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"
)

// Config controls an NBS run.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// Threshold is the primary, edge-level threshold applied to the
	// tail-transformed t-statistic. Edges strictly above it are kept.
	// Must not be NaN. Default: 3.
	Threshold float64

	// Tail selects the hypothesis direction: "both" (|t|), "left" (X < Y)
	// or "right" (X > Y). Default: "both".
	Tail Tail

	// Permutations is the number of label permutations K used to build the
	// null distribution. Must be > 0. Default: 1000.
	Permutations int

	// Seed makes permutation draws reproducible. Permutation k uses a PCG
	// generator seeded with (Seed, k). 0 draws a random seed, which is
	// reported in Result.Seed. Default: 0.
	Seed uint64

	// Workers controls the number of goroutines running permutations.
	// 0 means use runtime.NumCPU(). Must be >= 0. Default: 0 (auto).
	Workers int

	// Progress, if set, is called once per completed permutation with the
	// number done so far and K. Calls are serialized but may come from
	// different goroutines.
	Progress func(done, total int)
}

// Result is the outcome of an NBS run.
type Result struct {
	// Nodes is N.
	Nodes int

	// Components are the observed components with at least one edge, in
	// Label order.
	Components []Component

	// PValues holds the corrected p-value of each entry of Components.
	PValues []float64

	// Adjacency is a flat N×N row-major matrix in which every supra-threshold
	// edge of the observed data carries its component's Label (1-based).
	Adjacency []int

	// NullDistribution holds the maximum component size of each permutation.
	// Its length is always Config.Permutations.
	NullDistribution []int

	// EdgeStatistics is the observed t-statistic of every edge, indexed by
	// NewEdgeIndex(Nodes).
	EdgeStatistics []float64

	// UncorrectedPValues is the parametric per-edge p-value for the chosen
	// tail, with no multiple-comparison correction.
	UncorrectedPValues []float64

	// Seed is the seed the permutations actually used.
	Seed uint64
}

// Significant returns the components whose corrected p-value is below alpha.
func (r *Result) Significant(alpha float64) []Component {
	var out []Component
	for i, c := range r.Components {
		if r.PValues[i] < alpha {
			out = append(out, c)
		}
	}
	return out
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		Threshold:    3,
		Tail:         TailBoth,
		Permutations: 1000,
	}
}

// validateConfig checks that cfg fields are valid and returns a descriptive error if not.
func validateConfig(cfg *Config) error {
	if err := cfg.Tail.validate(); err != nil {
		return err
	}
	if math.IsNaN(cfg.Threshold) {
		return fmt.Errorf("nbs: Threshold must not be NaN: %w", ErrInvalidArgument)
	}
	if cfg.Permutations <= 0 {
		return fmt.Errorf("nbs: Permutations must be > 0, got %d: %w", cfg.Permutations, ErrInvalidArgument)
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("nbs: Workers must be >= 0, got %d: %w", cfg.Workers, ErrInvalidArgument)
	}
	return nil
}

// applyDefaults fills in zero-valued config fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.Tail == "" {
		cfg.Tail = TailBoth
	}
	if cfg.Seed == 0 {
		cfg.Seed = rand.Uint64() | 1
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
}

func validatePopulations(x, y *Population) error {
	if x == nil || y == nil {
		return fmt.Errorf("nbs: both populations are required: %w", ErrInvalidArgument)
	}
	if x.n != y.n {
		return fmt.Errorf("nbs: populations have %d and %d nodes: %w", x.n, y.n, ErrInvalidArgument)
	}
	if x.n < 2 {
		return fmt.Errorf("nbs: need at least 2 nodes, got %d: %w", x.n, ErrInvalidArgument)
	}
	if x.m < 2 || y.m < 2 {
		return fmt.Errorf("nbs: groups need at least 2 subjects each, got %d and %d: %w",
			x.m, y.m, ErrInsufficientSample)
	}
	return nil
}

// Compute runs the Network-Based Statistic comparing group x against group y.
// It is ComputeContext with context.Background().
func Compute(x, y *Population, cfg Config) (*Result, error) {
	return ComputeContext(context.Background(), x, y, cfg)
}

// ComputeContext runs the Network-Based Statistic comparing group x against
// group y. All parameter and shape checks happen before any permutation is
// drawn. Cancelling ctx aborts the permutation loop and returns ctx.Err().
func ComputeContext(ctx context.Context, x, y *Population, cfg Config) (*Result, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	if err := validatePopulations(x, y); err != nil {
		return nil, err
	}

	idx := NewEdgeIndex(x.n)
	combined := combine(x, y, idx)

	stats := make([]float64, idx.Len())
	newTScratch(x.m, y.m).compute(combined, identityOrder(x.m+y.m), stats)

	observed, err := ExtractComponents(stats, idx, cfg.Threshold, cfg.Tail)
	if err != nil {
		return nil, err
	}
	uncorrected, err := UncorrectedPValues(stats, x.m, y.m, cfg.Tail)
	if err != nil {
		return nil, err
	}

	null, err := RunPermutations(ctx, combined, x.m, y.m, idx, cfg)
	if err != nil {
		return nil, err
	}

	return &Result{
		Nodes:              x.n,
		Components:         observed.List,
		PValues:            CorrectedPValues(observed.Sizes(), null),
		Adjacency:          observed.Adjacency,
		NullDistribution:   null,
		EdgeStatistics:     stats,
		UncorrectedPValues: uncorrected,
		Seed:               cfg.Seed,
	}, nil
}
