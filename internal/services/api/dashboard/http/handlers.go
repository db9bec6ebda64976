// Package http wires dashboard endpoints to the service port
package http

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"paylens/internal/modkit/httpkit"
	perr "paylens/internal/platform/errors"
	"paylens/internal/services/api/dashboard/domain"
)

// reserved query parameters are endpoint controls, never filter attributes
var reserved = map[string]struct{}{
	"group_by": {},
	"metric":   {},
	"limit":    {},
	"bins":     {},
}

type handlers struct {
	svc domain.ServicePort
}

// Register mounts the dashboard routes
func Register(r httpkit.Router, svc domain.ServicePort) {
	h := &handlers{svc: svc}

	httpkit.Get(r, "/summary", h.summary)
	httpkit.Get(r, "/options", h.options)
	httpkit.Get(r, "/grouped", h.grouped)
	httpkit.Get(r, "/distribution", h.distribution)
	httpkit.Get(r, "/compare", h.compare)
}

// filtersFrom keeps every non-reserved query parameter, repeated keys and all.
// unknown attribute names are dropped later by the filter allow-list
func filtersFrom(q url.Values) domain.Filters {
	out := domain.Filters{}
	for k, vs := range q {
		if _, ok := reserved[k]; ok {
			continue
		}
		out[k] = vs
	}
	return out
}

// intParam parses an optional integer control, absent returns fallback
func intParam(q url.Values, name string, fallback int) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, perr.InvalidArgf("%s must be an integer, got %q", name, raw)
	}
	return n, nil
}

func (h *handlers) summary(r *http.Request) (any, error) {
	return h.svc.Summary(r.Context(), filtersFrom(r.URL.Query()))
}

func (h *handlers) options(r *http.Request) (any, error) {
	return h.svc.Options(r.Context(), filtersFrom(r.URL.Query()))
}

func (h *handlers) grouped(r *http.Request) (any, error) {
	q := r.URL.Query()
	groupBy := q.Get("group_by")
	if groupBy == "" {
		groupBy = "city"
	}
	limit, err := intParam(q, "limit", 0)
	if err != nil {
		return nil, err
	}
	return h.svc.Grouped(r.Context(), filtersFrom(q), groupBy, domain.Metric(q.Get("metric")), limit)
}

func (h *handlers) distribution(r *http.Request) (any, error) {
	q := r.URL.Query()
	bins, err := intParam(q, "bins", 0)
	if err != nil {
		return nil, err
	}
	return h.svc.Distribution(r.Context(), filtersFrom(q), bins)
}

// compare splits a_ and b_ prefixed parameters into two independent cohorts.
// unprefixed parameters are ignored so a stray filter cannot leak into one side
func (h *handlers) compare(r *http.Request) (any, error) {
	a := domain.Filters{}
	b := domain.Filters{}
	for k, vs := range r.URL.Query() {
		switch {
		case strings.HasPrefix(k, "a_"):
			a[strings.TrimPrefix(k, "a_")] = vs
		case strings.HasPrefix(k, "b_"):
			b[strings.TrimPrefix(k, "b_")] = vs
		}
	}
	return h.svc.Compare(r.Context(), a, b)
}
