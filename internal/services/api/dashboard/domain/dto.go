// Package domain holds DTOs for dashboard http and service contracts
package domain

// Filters are raw multi-valued query selections keyed by attribute name
// unknown attributes are ignored downstream
type Filters map[string][]string

// Metric selects the statistic for grouped rankings
type Metric string

const (
	// MetricMean ranks groups by average value
	MetricMean Metric = "mean"
	// MetricMedian ranks groups by continuous median
	MetricMedian Metric = "median"
)

// Valid reports whether m is an accepted metric
func (m Metric) Valid() bool { return m == MetricMean || m == MetricMedian }

// SummaryOut carries scalar statistics for one cohort
// detail fields are omitted entirely when the cohort is suppressed
type SummaryOut struct {
	Count      int64    `json:"count" example:"128"`
	Suppressed bool     `json:"suppressed" example:"false"`
	Mean       *float64 `json:"mean,omitempty" example:"61250.5"`
	Min        *float64 `json:"min,omitempty" example:"32000"`
	Max        *float64 `json:"max,omitempty" example:"140000"`
	P25        *float64 `json:"p25,omitempty" example:"48000"`
	Median     *float64 `json:"median,omitempty" example:"58500"`
	P75        *float64 `json:"p75,omitempty" example:"72000"`
}

// OptionsOut lists the distinct categories available under the current cohort
type OptionsOut struct {
	Cities               []string `json:"cities"`
	Industries           []string `json:"industries"`
	Occupations          []string `json:"occupations"`
	Majors               []string `json:"majors"`
	Universities         []string `json:"universities"`
	ExperienceCategories []string `json:"experience_categories"`
}

// GroupRow is one ranked group
// Key and Value are nullable, a null Value sorts after all non-null rows
type GroupRow struct {
	Key   *string  `json:"key" example:"Berlin"`
	Value *float64 `json:"value" example:"58500"`
	N     int64    `json:"n" example:"40"`
}

// GroupedOut is a ranked breakdown of one attribute
type GroupedOut struct {
	Count      int64      `json:"count" example:"128"`
	Suppressed bool       `json:"suppressed" example:"false"`
	Data       []GroupRow `json:"data"`
}

// DistributionOut is an equal-width histogram
// Bins holds the bins+1 edges, or a single value for a degenerate cohort
type DistributionOut struct {
	Count      int64     `json:"count" example:"128"`
	Suppressed bool      `json:"suppressed" example:"false"`
	Bins       []float64 `json:"bins"`
	Counts     []int64   `json:"counts"`
}

// Delta holds per-metric differences (a - b)
// a key is present only when both sides carry that metric unsuppressed
type Delta struct {
	Median *float64 `json:"median,omitempty" example:"1500"`
	P25    *float64 `json:"p25,omitempty" example:"-250"`
	P75    *float64 `json:"p75,omitempty" example:"3000"`
	Mean   *float64 `json:"mean,omitempty" example:"980.5"`
}

// CompareOut pairs two cohort summaries with their delta
type CompareOut struct {
	A     SummaryOut `json:"a"`
	B     SummaryOut `json:"b"`
	Delta Delta      `json:"delta"`
}
