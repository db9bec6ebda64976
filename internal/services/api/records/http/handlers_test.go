package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	pnet "paylens/internal/platform/net"
	phttp "paylens/internal/platform/net/http"
	"paylens/internal/services/api/records/domain"
	rechttp "paylens/internal/services/api/records/http"
)

type fakeSvc struct {
	listUser string
	listYear *int
	submit   *domain.SubmitIn
	deleted  []int64
	delErr   error
}

func (s *fakeSvc) ListMine(_ context.Context, userID string, year *int) (domain.ListOut, error) {
	s.listUser, s.listYear = userID, year
	return domain.ListOut{Count: 0, Results: []domain.RecordOut{}}, nil
}

func (s *fakeSvc) Submit(_ context.Context, userID string, in domain.SubmitIn) (domain.SubmitOut, error) {
	s.submit = &in
	return domain.SubmitOut{RecordID: 7, UserID: userID}, nil
}

func (s *fakeSvc) Delete(_ context.Context, _ string, recordID int64) error {
	if s.delErr != nil {
		return s.delErr
	}
	s.deleted = append(s.deleted, recordID)
	return nil
}

func serve(t *testing.T, svc domain.ServicePort, method, target, body, user string) *httptest.ResponseRecorder {
	t.Helper()
	mux := chi.NewRouter()
	rechttp.Register(phttp.AdaptChi(mux), svc)

	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("")
	} else {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if user != "" {
		req = req.WithContext(pnet.WithUser(req.Context(), user))
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestMineRequiresPrincipal(t *testing.T) {
	rec := serve(t, &fakeSvc{}, http.MethodGet, "/mine", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestMineYearFilter(t *testing.T) {
	svc := &fakeSvc{}
	rec := serve(t, svc, http.MethodGet, "/mine?year=2025", "", "u-1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	if svc.listUser != "u-1" || svc.listYear == nil || *svc.listYear != 2025 {
		t.Fatalf("user=%q year=%v", svc.listUser, svc.listYear)
	}
}

func TestSubmitReturns201(t *testing.T) {
	svc := &fakeSvc{}
	body := `{
		"university": "TU Delft",
		"major": "Computer Science",
		"industry": "Tech",
		"occupation": "Software Engineer",
		"experience_category": "1-3 years",
		"city": "Amsterdam",
		"salary_eur": 62000
	}`
	rec := serve(t, svc, http.MethodPost, "/", body, "u-1")
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	if svc.submit == nil || svc.submit.City != "Amsterdam" {
		t.Fatalf("submit = %+v", svc.submit)
	}

	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.StatusCode != http.StatusCreated {
		t.Fatalf("envelope = %+v", env)
	}
}

func TestSubmitRejectsUnknownExperience(t *testing.T) {
	body := `{
		"university": "TU Delft",
		"major": "Computer Science",
		"industry": "Tech",
		"occupation": "Software Engineer",
		"experience_category": "forever",
		"city": "Amsterdam",
		"salary_eur": 62000
	}`
	rec := serve(t, &fakeSvc{}, http.MethodPost, "/", body, "u-1")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestSubmitRejectsNonPositiveSalary(t *testing.T) {
	body := `{
		"university": "TU Delft",
		"major": "Computer Science",
		"industry": "Tech",
		"occupation": "Software Engineer",
		"experience_category": "1-3 years",
		"city": "Amsterdam",
		"salary_eur": -1
	}`
	rec := serve(t, &fakeSvc{}, http.MethodPost, "/", body, "u-1")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestDelete(t *testing.T) {
	svc := &fakeSvc{}
	rec := serve(t, svc, http.MethodDelete, "/42", "", "u-1")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	if len(svc.deleted) != 1 || svc.deleted[0] != 42 {
		t.Fatalf("deleted = %v", svc.deleted)
	}
}

func TestDeleteRejectsBadID(t *testing.T) {
	rec := serve(t, &fakeSvc{}, http.MethodDelete, "/abc", "", "u-1")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
}
