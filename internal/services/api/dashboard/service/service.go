// Package service contains the dashboard aggregation workflows
//
// every operation follows the same template: normalize filters, derive the
// shape-specific cache key, return a cache hit verbatim, otherwise count the
// cohort, apply the suppression rule, compute detail only for large enough
// cohorts, and store the result under a short TTL
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"paylens/internal/core/filterspec"
	"paylens/internal/core/histogram"
	"paylens/internal/core/privacy"
	"paylens/internal/modkit/repokit"
	"paylens/internal/platform/cache"
	perr "paylens/internal/platform/errors"
	"paylens/internal/platform/logger"
	"paylens/internal/services/api/dashboard/domain"
	"paylens/internal/services/api/dashboard/repo"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	summaryTTL = 60 * time.Second
	optionsTTL = 300 * time.Second

	defaultLimit = 20
	defaultBins  = 20
)

// Service defines the dashboard service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the dashboard service
type Svc struct {
	Repo  repo.Repo
	cache cache.Cache
	guard privacy.Guard
	log   logger.Logger
}

// New constructs a dashboard service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], c cache.Cache, g privacy.Guard, log logger.Logger) *Svc {
	if db == nil {
		panic("dashboard.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("dashboard.Service requires a non nil Repo binder")
	}
	if c == nil {
		panic("dashboard.Service requires a non nil Cache")
	}
	return &Svc{Repo: binder.Bind(db), cache: c, guard: g, log: log}
}

// NewWithRepo wires an already bound repo, used by tests and embedded callers
func NewWithRepo(r repo.Repo, c cache.Cache, g privacy.Guard, log logger.Logger) *Svc {
	if r == nil {
		panic("dashboard.Service requires a non nil Repo")
	}
	if c == nil {
		panic("dashboard.Service requires a non nil Cache")
	}
	return &Svc{Repo: r, cache: c, guard: g, log: log}
}

// Summary returns scalar statistics over one cohort
func (s *Svc) Summary(ctx context.Context, filters domain.Filters) (domain.SummaryOut, error) {
	spec := filterspec.Build(filters)
	key := "dash:summary:" + spec.Key()

	if out, ok := cacheGet[domain.SummaryOut](ctx, s, key); ok {
		return out, nil
	}

	cnt, err := s.Repo.Count(ctx, spec)
	if err != nil {
		return domain.SummaryOut{}, perr.FromPostgresf(err, "summary count")
	}
	if s.guard.Suppress(cnt) {
		out := domain.SummaryOut{Count: cnt, Suppressed: true}
		s.cachePut(ctx, key, out, summaryTTL)
		return out, nil
	}

	st, err := s.Repo.ScalarStats(ctx, spec)
	if err != nil {
		return domain.SummaryOut{}, perr.FromPostgresf(err, "summary stats")
	}
	out := domain.SummaryOut{
		Count:  cnt,
		Mean:   st.Mean,
		Min:    st.Min,
		Max:    st.Max,
		P25:    st.P25,
		Median: st.Median,
		P75:    st.P75,
	}
	s.cachePut(ctx, key, out, summaryTTL)
	return out, nil
}

// Options returns the distinct-value lists that populate the filter UI.
// Not suppression gated, no metric is revealed, only available categories
func (s *Svc) Options(ctx context.Context, filters domain.Filters) (domain.OptionsOut, error) {
	spec := filterspec.Build(filters)
	key := "dash:options:" + spec.Key()

	if out, ok := cacheGet[domain.OptionsOut](ctx, s, key); ok {
		return out, nil
	}

	distinct := func(a filterspec.Attr) ([]string, error) {
		vals, err := s.Repo.DistinctValues(ctx, a, spec)
		if err != nil {
			return nil, perr.FromPostgresf(err, "options %s", a)
		}
		// locale-aware, case-insensitive ordering for display
		collate.New(language.Und, collate.IgnoreCase).SortStrings(vals)
		return vals, nil
	}

	var out domain.OptionsOut
	var err error
	if out.Cities, err = distinct(filterspec.AttrCity); err != nil {
		return domain.OptionsOut{}, err
	}
	if out.Industries, err = distinct(filterspec.AttrIndustry); err != nil {
		return domain.OptionsOut{}, err
	}
	if out.Occupations, err = distinct(filterspec.AttrOccupation); err != nil {
		return domain.OptionsOut{}, err
	}
	if out.Majors, err = distinct(filterspec.AttrMajor); err != nil {
		return domain.OptionsOut{}, err
	}
	if out.Universities, err = distinct(filterspec.AttrUniversity); err != nil {
		return domain.OptionsOut{}, err
	}
	if out.ExperienceCategories, err = distinct(filterspec.AttrExperience); err != nil {
		return domain.OptionsOut{}, err
	}

	s.cachePut(ctx, key, out, optionsTTL)
	return out, nil
}

// Grouped ranks an allow-listed attribute by the chosen metric
func (s *Svc) Grouped(
	ctx context.Context, filters domain.Filters, groupBy string, metric domain.Metric, limit int,
) (domain.GroupedOut, error) {
	attr, ok := filterspec.Parse(groupBy)
	if !ok {
		return domain.GroupedOut{}, perr.InvalidArgf("invalid group_by %q", groupBy)
	}
	if metric == "" {
		metric = domain.MetricMedian
	}
	if !metric.Valid() {
		return domain.GroupedOut{}, perr.InvalidArgf("invalid metric %q", metric)
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	spec := filterspec.Build(filters)
	key := fmt.Sprintf("dash:grouped:%s:%s:%d:%s", attr, metric, limit, spec.Key())

	if out, ok := cacheGet[domain.GroupedOut](ctx, s, key); ok {
		return out, nil
	}

	cnt, err := s.Repo.Count(ctx, spec)
	if err != nil {
		return domain.GroupedOut{}, perr.FromPostgresf(err, "grouped count")
	}
	if s.guard.Suppress(cnt) {
		out := domain.GroupedOut{Count: cnt, Suppressed: true, Data: []domain.GroupRow{}}
		s.cachePut(ctx, key, out, summaryTTL)
		return out, nil
	}

	rows, err := s.Repo.GroupedAggregate(ctx, attr, spec, metric == domain.MetricMedian, limit)
	if err != nil {
		return domain.GroupedOut{}, perr.FromPostgresf(err, "grouped aggregate")
	}
	data := make([]domain.GroupRow, 0, len(rows))
	for _, r := range rows {
		data = append(data, domain.GroupRow{Key: r.Key, Value: r.Value, N: r.N})
	}
	out := domain.GroupedOut{Count: cnt, Data: data}
	s.cachePut(ctx, key, out, summaryTTL)
	return out, nil
}

// Distribution returns an equal-width histogram of the cohort
func (s *Svc) Distribution(ctx context.Context, filters domain.Filters, bins int) (domain.DistributionOut, error) {
	if bins <= 0 {
		bins = defaultBins
	}

	spec := filterspec.Build(filters)
	key := fmt.Sprintf("dash:dist:%d:%s", bins, spec.Key())

	if out, ok := cacheGet[domain.DistributionOut](ctx, s, key); ok {
		return out, nil
	}

	cnt, err := s.Repo.Count(ctx, spec)
	if err != nil {
		return domain.DistributionOut{}, perr.FromPostgresf(err, "distribution count")
	}
	if s.guard.Suppress(cnt) {
		out := domain.DistributionOut{Count: cnt, Suppressed: true, Bins: []float64{}, Counts: []int64{}}
		s.cachePut(ctx, key, out, summaryTTL)
		return out, nil
	}

	minv, maxv, err := s.Repo.MinMax(ctx, spec)
	if err != nil {
		return domain.DistributionOut{}, perr.FromPostgresf(err, "distribution minmax")
	}
	if minv == nil || maxv == nil {
		// unsuppressed cohorts always have rows, treat missing bounds as a store fault
		return domain.DistributionOut{}, perr.DBf("distribution minmax returned no bounds")
	}

	// degenerate single-value cohort collapses to one edge, no division by zero
	if *minv == *maxv {
		out := domain.DistributionOut{Count: cnt, Bins: []float64{*minv}, Counts: []int64{cnt}}
		s.cachePut(ctx, key, out, summaryTTL)
		return out, nil
	}

	buckets, err := s.Repo.BucketCounts(ctx, spec, *minv, *maxv, bins)
	if err != nil {
		return domain.DistributionOut{}, perr.FromPostgresf(err, "distribution buckets")
	}

	counts := make([]int64, bins)
	for _, b := range buckets {
		if b.Bucket == nil {
			continue
		}
		// width_bucket assigns the max value to bin bins+1, fold it into the last bin
		counts[histogram.ClampBucket(int(*b.Bucket), bins)] += b.Count
	}
	out := domain.DistributionOut{Count: cnt, Bins: histogram.Edges(*minv, *maxv, bins), Counts: counts}
	s.cachePut(ctx, key, out, summaryTTL)
	return out, nil
}

// Compare runs Summary against two independently built cohorts and derives
// per-metric deltas (a - b) only when neither side is suppressed
func (s *Svc) Compare(ctx context.Context, a, b domain.Filters) (domain.CompareOut, error) {
	aOut, err := s.Summary(ctx, a)
	if err != nil {
		return domain.CompareOut{}, err
	}
	bOut, err := s.Summary(ctx, b)
	if err != nil {
		return domain.CompareOut{}, err
	}

	var delta domain.Delta
	if !aOut.Suppressed && !bOut.Suppressed {
		delta.Median = diff(aOut.Median, bOut.Median)
		delta.P25 = diff(aOut.P25, bOut.P25)
		delta.P75 = diff(aOut.P75, bOut.P75)
		delta.Mean = diff(aOut.Mean, bOut.Mean)
	}
	return domain.CompareOut{A: aOut, B: bOut, Delta: delta}, nil
}

func diff(a, b *float64) *float64 {
	if a == nil || b == nil {
		return nil
	}
	d := *a - *b
	return &d
}

// cacheGet is a best-effort typed read, failures log and count as a miss
func cacheGet[T any](ctx context.Context, s *Svc, key string) (T, bool) {
	var zero T
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache get failed")
		return zero, false
	}
	if !ok {
		return zero, false
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache entry corrupt")
		return zero, false
	}
	return out, true
}

// cachePut is best effort, a cache outage degrades to recompute, never an error
func (s *Svc) cachePut(ctx context.Context, key string, v any, ttl time.Duration) {
	raw, err := json.Marshal(v)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache marshal failed")
		return
	}
	if err := s.cache.Set(ctx, key, raw, ttl); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
}
