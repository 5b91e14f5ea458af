package nbs

// CorrectedPValues returns the family-wise error corrected p-value of each
// observed component size: the fraction of null samples at least as large.
// Ties count against the observed component. The order of observed is kept.
// An empty null distribution yields p = 1 for every component.
func CorrectedPValues(observed, null []int) []float64 {
	out := make([]float64, len(observed))
	if len(null) == 0 {
		for i := range out {
			out[i] = 1
		}
		return out
	}
	k := float64(len(null))
	for i, s := range observed {
		count := 0
		for _, v := range null {
			if v >= s {
				count++
			}
		}
		out[i] = float64(count) / k
	}
	return out
}
