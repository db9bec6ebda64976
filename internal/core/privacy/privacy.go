// Package privacy implements the small-cohort suppression rule
package privacy

// DefaultThreshold is the minimum cohort size exposed without suppression
const DefaultThreshold = 5

// Guard decides whether a cohort is large enough to reveal statistics for
type Guard struct {
	threshold int64
}

// New returns a Guard, non-positive thresholds fall back to DefaultThreshold
func New(threshold int) Guard {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return Guard{threshold: int64(threshold)}
}

// Suppress reports whether a cohort of size count must be withheld
func (g Guard) Suppress(count int64) bool { return count < g.threshold }

// Threshold returns the configured minimum cohort size
func (g Guard) Threshold() int64 { return g.threshold }
