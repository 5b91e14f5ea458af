// Package nbs implements the Network-Based Statistic (NBS), a permutation
// test for finding subnetworks whose connectivity differs between two groups
// of subjects while controlling the family-wise error rate.
//
// Every subject contributes an N×N weighted connectivity matrix over the same
// N nodes. NBS computes a two-sample t-statistic for each of the N(N-1)/2
// edges, keeps the edges whose statistic exceeds a primary threshold, and
// measures each connected component of that network by its edge count. The
// group labels are then shuffled K times; the largest component of each
// shuffle forms a null distribution against which the observed components
// are scored.
//
// Basic usage:
//
//	x, _ := nbs.NewPopulation(patients) // []mat.Matrix, one per subject
//	y, _ := nbs.NewPopulation(controls)
//	cfg := nbs.DefaultConfig()
//	cfg.Threshold = 3.1
//	cfg.Permutations = 5000
//	result, err := nbs.Compute(x, y, cfg)
//	// result.Components[i] has corrected p-value result.PValues[i]
//	// result.Adjacency[i*N+j] is the component label of edge (i, j), 0 if none
//
// # Tails
//
// TailBoth thresholds |t|, TailRight looks for X > Y and TailLeft for X < Y.
//
// # Reproducibility
//
// Set Config.Seed to make the null distribution reproducible. The result is
// identical for any Config.Workers value.
package nbs
