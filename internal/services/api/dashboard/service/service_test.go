package service_test

import (
	"context"
	"io"
	"testing"

	"paylens/internal/core/filterspec"
	"paylens/internal/core/privacy"
	"paylens/internal/platform/cache"
	perr "paylens/internal/platform/errors"
	"paylens/internal/services/api/dashboard/domain"
	"paylens/internal/services/api/dashboard/repo"
	"paylens/internal/services/api/dashboard/service"

	"github.com/rs/zerolog"
)

func f(v float64) *float64 { return &v }
func sp(s string) *string  { return &s }

// fakeRepo serves canned aggregates and records how often it was hit
type fakeRepo struct {
	count  int64
	stats  repo.Stats
	values map[filterspec.Attr][]string

	grouped []repo.GroupRow

	min, max *float64
	buckets  []repo.BucketCount

	countCalls int
	statsCalls int
}

func (r *fakeRepo) Count(context.Context, filterspec.Spec) (int64, error) {
	r.countCalls++
	return r.count, nil
}

func (r *fakeRepo) ScalarStats(context.Context, filterspec.Spec) (repo.Stats, error) {
	r.statsCalls++
	return r.stats, nil
}

func (r *fakeRepo) DistinctValues(_ context.Context, a filterspec.Attr, _ filterspec.Spec) ([]string, error) {
	return r.values[a], nil
}

func (r *fakeRepo) GroupedAggregate(
	context.Context, filterspec.Attr, filterspec.Spec, bool, int,
) ([]repo.GroupRow, error) {
	return r.grouped, nil
}

func (r *fakeRepo) MinMax(context.Context, filterspec.Spec) (*float64, *float64, error) {
	return r.min, r.max, nil
}

func (r *fakeRepo) BucketCounts(
	context.Context, filterspec.Spec, float64, float64, int,
) ([]repo.BucketCount, error) {
	return r.buckets, nil
}

func newSvc(t *testing.T, r repo.Repo) (*service.Svc, *cache.Memory) {
	t.Helper()
	c := cache.NewMemory()
	return service.NewWithRepo(r, c, privacy.New(5), zerolog.New(io.Discard)), c
}

func TestSummarySuppressedAtThresholdMinusOne(t *testing.T) {
	r := &fakeRepo{count: 4, stats: repo.Stats{Mean: f(100)}}
	svc, _ := newSvc(t, r)

	out, err := svc.Summary(context.Background(), nil)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if out.Count != 4 || !out.Suppressed {
		t.Fatalf("out = %+v", out)
	}
	if out.Mean != nil || out.Median != nil || out.Min != nil {
		t.Fatal("suppressed summary must omit detail")
	}
	if r.statsCalls != 0 {
		t.Fatal("suppressed cohort must never compute stats")
	}
}

func TestSummaryUnsuppressed(t *testing.T) {
	r := &fakeRepo{
		count: 10,
		stats: repo.Stats{Mean: f(100), Min: f(50), Max: f(150), P25: f(75), Median: f(100), P75: f(125)},
	}
	svc, _ := newSvc(t, r)

	out, err := svc.Summary(context.Background(), domain.Filters{"city": {"Berlin"}})
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if out.Suppressed {
		t.Fatal("cohort of 10 should not be suppressed")
	}
	if out.Mean == nil || *out.Mean != 100 {
		t.Fatalf("mean = %v", out.Mean)
	}
	if out.Median == nil || *out.Median != 100 {
		t.Fatalf("median = %v", out.Median)
	}
}

func TestSummaryCacheHitSkipsRepo(t *testing.T) {
	r := &fakeRepo{count: 10, stats: repo.Stats{Mean: f(1)}}
	svc, _ := newSvc(t, r)
	ctx := context.Background()

	first, err := svc.Summary(ctx, domain.Filters{"city": {"Berlin"}})
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	second, err := svc.Summary(ctx, domain.Filters{"city": {" Berlin "}})
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if r.countCalls != 1 || r.statsCalls != 1 {
		t.Fatalf("repo hit on cached key, count=%d stats=%d", r.countCalls, r.statsCalls)
	}
	if first.Count != second.Count || *first.Mean != *second.Mean {
		t.Fatal("cached result should be verbatim")
	}
}

func TestOptionsNotSuppressionGated(t *testing.T) {
	r := &fakeRepo{
		count: 1, // below threshold, options must still return categories
		values: map[filterspec.Attr][]string{
			filterspec.AttrCity:       {"berlin", "Amsterdam", "Zurich"},
			filterspec.AttrExperience: {"1-3 years"},
		},
	}
	svc, _ := newSvc(t, r)

	out, err := svc.Options(context.Background(), nil)
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if len(out.Cities) != 3 {
		t.Fatalf("cities = %v", out.Cities)
	}
	// case-insensitive ascending
	if out.Cities[0] != "Amsterdam" || out.Cities[1] != "berlin" || out.Cities[2] != "Zurich" {
		t.Fatalf("cities order = %v", out.Cities)
	}
	if len(out.ExperienceCategories) != 1 {
		t.Fatalf("experience = %v", out.ExperienceCategories)
	}
}

func TestGroupedRejectsUnknownGroupBy(t *testing.T) {
	r := &fakeRepo{count: 10}
	svc, _ := newSvc(t, r)

	_, err := svc.Grouped(context.Background(), nil, "salary_eur", domain.MetricMedian, 20)
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("want invalid argument, got %v", err)
	}
	if r.countCalls != 0 {
		t.Fatal("validation must happen before any store round trip")
	}
}

func TestGroupedRejectsUnknownMetric(t *testing.T) {
	svc, _ := newSvc(t, &fakeRepo{count: 10})

	_, err := svc.Grouped(context.Background(), nil, "city", domain.Metric("stddev"), 20)
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("want invalid argument, got %v", err)
	}
}

func TestGroupedSuppressed(t *testing.T) {
	svc, _ := newSvc(t, &fakeRepo{count: 2})

	out, err := svc.Grouped(context.Background(), nil, "city", "", 0)
	if err != nil {
		t.Fatalf("grouped: %v", err)
	}
	if !out.Suppressed || len(out.Data) != 0 {
		t.Fatalf("out = %+v", out)
	}
	if out.Data == nil {
		t.Fatal("data should be an empty slice, not null")
	}
}

func TestGroupedRows(t *testing.T) {
	r := &fakeRepo{
		count: 50,
		grouped: []repo.GroupRow{
			{Key: sp("Berlin"), Value: f(70000), N: 30},
			{Key: sp("Paris"), Value: f(65000), N: 20},
			{Key: sp("Oslo"), Value: nil, N: 0},
		},
	}
	svc, _ := newSvc(t, r)

	out, err := svc.Grouped(context.Background(), nil, "city", domain.MetricMean, 20)
	if err != nil {
		t.Fatalf("grouped: %v", err)
	}
	if out.Count != 50 || out.Suppressed {
		t.Fatalf("out = %+v", out)
	}
	if len(out.Data) != 3 || *out.Data[0].Key != "Berlin" || out.Data[2].Value != nil {
		t.Fatalf("data = %+v", out.Data)
	}
}

func TestDistributionTotals(t *testing.T) {
	b := func(n int32) *int32 { return &n }
	r := &fakeRepo{
		count: 10,
		min:   f(0), max: f(100),
		buckets: []repo.BucketCount{
			{Bucket: b(1), Count: 3},
			{Bucket: b(3), Count: 4},
			{Bucket: b(5), Count: 2},
			{Bucket: b(6), Count: 1}, // max value overflow bucket
		},
	}
	svc, _ := newSvc(t, r)

	out, err := svc.Distribution(context.Background(), nil, 5)
	if err != nil {
		t.Fatalf("distribution: %v", err)
	}
	if len(out.Bins) != 6 {
		t.Fatalf("bins = %v", out.Bins)
	}
	var total int64
	for _, c := range out.Counts {
		total += c
	}
	if total != out.Count {
		t.Fatalf("sum(counts) = %d want %d", total, out.Count)
	}
	// overflow folded into the last bucket
	if out.Counts[4] != 3 {
		t.Fatalf("last bucket = %d want 3", out.Counts[4])
	}
}

func TestDistributionDegenerate(t *testing.T) {
	r := &fakeRepo{count: 3, min: f(10), max: f(10)}
	svc, _ := newSvc(t, r)

	out, err := svc.Distribution(context.Background(), nil, 5)
	if err != nil {
		t.Fatalf("distribution: %v", err)
	}
	if len(out.Bins) != 1 || out.Bins[0] != 10 {
		t.Fatalf("bins = %v", out.Bins)
	}
	if len(out.Counts) != 1 || out.Counts[0] != 3 {
		t.Fatalf("counts = %v", out.Counts)
	}
}

func TestDistributionSuppressed(t *testing.T) {
	svc, _ := newSvc(t, &fakeRepo{count: 1})

	out, err := svc.Distribution(context.Background(), nil, 20)
	if err != nil {
		t.Fatalf("distribution: %v", err)
	}
	if !out.Suppressed || len(out.Bins) != 0 || len(out.Counts) != 0 {
		t.Fatalf("out = %+v", out)
	}
}

func TestCompareDeltaOnlyWhenBothUnsuppressed(t *testing.T) {
	r := &fakeRepo{
		count: 10,
		stats: repo.Stats{Mean: f(100), Median: f(90), P25: f(80), P75: f(110)},
	}
	svc, _ := newSvc(t, r)
	ctx := context.Background()

	// identical cohorts, delta should be zero valued but present
	out, err := svc.Compare(ctx, domain.Filters{"city": {"Berlin"}}, domain.Filters{"city": {"Berlin"}})
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if out.Delta.Median == nil || *out.Delta.Median != 0 {
		t.Fatalf("delta = %+v", out.Delta)
	}
}

func TestCompareSuppressedSideOmitsDelta(t *testing.T) {
	r := &fakeRepo{count: 2}
	svc, _ := newSvc(t, r)

	out, err := svc.Compare(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if out.Delta.Median != nil || out.Delta.Mean != nil || out.Delta.P25 != nil || out.Delta.P75 != nil {
		t.Fatalf("delta must be empty, got %+v", out.Delta)
	}
	if !out.A.Suppressed || !out.B.Suppressed {
		t.Fatalf("out = %+v", out)
	}
}
