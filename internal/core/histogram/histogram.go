// Package histogram holds binning math shared by the distribution queries
package histogram

// Edges returns the bins+1 boundary values for equal-width buckets over [min, max].
// A degenerate cohort (min == max) collapses to the single edge [min]
func Edges(min, max float64, bins int) []float64 {
	if min == max {
		return []float64{min}
	}
	step := (max - min) / float64(bins)
	out := make([]float64, bins+1)
	for i := 0; i <= bins; i++ {
		out[i] = min + step*float64(i)
	}
	return out
}

// ClampBucket converts a 1-based width_bucket result into a 0-based bin index.
// width_bucket reports 0 for values below min and bins+1 for the max value,
// both are clamped into [0, bins-1] so the max lands in the last bucket
// instead of overflowing
func ClampBucket(bucket, bins int) int {
	idx := bucket - 1
	if idx < 0 {
		return 0
	}
	if idx >= bins {
		return bins - 1
	}
	return idx
}

// Bucket assigns v to its 0-based bin over [min, max], clamped like ClampBucket.
// Mirrors the store-side width_bucket for client-side folds and tests
func Bucket(v, min, max float64, bins int) int {
	if min == max {
		return 0
	}
	step := (max - min) / float64(bins)
	idx := int((v - min) / step)
	if idx < 0 {
		return 0
	}
	if idx >= bins {
		return bins - 1
	}
	return idx
}
