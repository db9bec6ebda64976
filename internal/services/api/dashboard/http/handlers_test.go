package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	phttp "paylens/internal/platform/net/http"
	"paylens/internal/services/api/dashboard/domain"
	dashhttp "paylens/internal/services/api/dashboard/http"
)

// fakeSvc records the arguments each operation was called with
type fakeSvc struct {
	filters domain.Filters
	groupBy string
	metric  domain.Metric
	limit   int
	bins    int
	a, b    domain.Filters
}

func (s *fakeSvc) Summary(_ context.Context, f domain.Filters) (domain.SummaryOut, error) {
	s.filters = f
	return domain.SummaryOut{Count: 9, Suppressed: false}, nil
}

func (s *fakeSvc) Options(_ context.Context, f domain.Filters) (domain.OptionsOut, error) {
	s.filters = f
	return domain.OptionsOut{Cities: []string{"Berlin"}}, nil
}

func (s *fakeSvc) Grouped(
	_ context.Context, f domain.Filters, groupBy string, metric domain.Metric, limit int,
) (domain.GroupedOut, error) {
	s.filters, s.groupBy, s.metric, s.limit = f, groupBy, metric, limit
	return domain.GroupedOut{Count: 9, Data: []domain.GroupRow{}}, nil
}

func (s *fakeSvc) Distribution(_ context.Context, f domain.Filters, bins int) (domain.DistributionOut, error) {
	s.filters, s.bins = f, bins
	return domain.DistributionOut{Count: 9}, nil
}

func (s *fakeSvc) Compare(_ context.Context, a, b domain.Filters) (domain.CompareOut, error) {
	s.a, s.b = a, b
	return domain.CompareOut{}, nil
}

func serve(t *testing.T, svc domain.ServicePort, target string) (*httptest.ResponseRecorder, phttp.Envelope) {
	t.Helper()
	mux := chi.NewRouter()
	dashhttp.Register(phttp.AdaptChi(mux), svc)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return rec, env
}

func TestSummaryPassesFilters(t *testing.T) {
	svc := &fakeSvc{}
	rec, env := serve(t, svc, "/summary?city=Berlin&city=Paris&industry=Tech")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	if env.Data == nil {
		t.Fatal("missing data")
	}
	if len(svc.filters["city"]) != 2 || svc.filters["industry"][0] != "Tech" {
		t.Fatalf("filters = %v", svc.filters)
	}
}

func TestGroupedDefaultsAndControls(t *testing.T) {
	svc := &fakeSvc{}
	rec, _ := serve(t, svc, "/grouped?metric=mean&limit=5&city=Berlin")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	if svc.groupBy != "city" {
		t.Fatalf("group_by default = %q", svc.groupBy)
	}
	if svc.metric != domain.MetricMean || svc.limit != 5 {
		t.Fatalf("metric=%q limit=%d", svc.metric, svc.limit)
	}
	// controls must never leak into the filter map
	if _, ok := svc.filters["metric"]; ok {
		t.Fatalf("filters = %v", svc.filters)
	}
	if _, ok := svc.filters["limit"]; ok {
		t.Fatalf("filters = %v", svc.filters)
	}
}

func TestGroupedRejectsNonIntegerLimit(t *testing.T) {
	rec, env := serve(t, &fakeSvc{}, "/grouped?limit=abc")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	if env.Error == "" {
		t.Fatal("expected error message in envelope")
	}
}

func TestDistributionBins(t *testing.T) {
	svc := &fakeSvc{}
	rec, _ := serve(t, svc, "/distribution?bins=12&city=Oslo")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if svc.bins != 12 {
		t.Fatalf("bins = %d", svc.bins)
	}
	if _, ok := svc.filters["bins"]; ok {
		t.Fatalf("filters = %v", svc.filters)
	}
}

func TestComparePrefixSplit(t *testing.T) {
	svc := &fakeSvc{}
	rec, _ := serve(t, svc, "/compare?a_city=Berlin&b_city=Paris&b_industry=Tech&city=Leak")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if svc.a["city"][0] != "Berlin" {
		t.Fatalf("a = %v", svc.a)
	}
	if svc.b["city"][0] != "Paris" || svc.b["industry"][0] != "Tech" {
		t.Fatalf("b = %v", svc.b)
	}
	if _, ok := svc.a["city_leak"]; ok || len(svc.a) != 1 {
		t.Fatalf("unprefixed params must be ignored, a = %v", svc.a)
	}
}
