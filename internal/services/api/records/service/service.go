// Package service contains the self-service salary record workflows
package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"paylens/internal/modkit/repokit"
	perr "paylens/internal/platform/errors"
	"paylens/internal/platform/logger"
	"paylens/internal/services/api/records/domain"
	"paylens/internal/services/api/records/repo"
	"paylens/internal/services/audit"
)

const (
	// DefaultMaxPerYear caps submissions per calendar year per user
	DefaultMaxPerYear = 2

	listLimit = 500
)

// Service defines the records service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the records service
type Svc struct {
	Repo       repo.Repo
	recorder   audit.Recorder
	maxPerYear int
	log        logger.Logger

	now func() time.Time
}

// New constructs a records service
func New(
	db repokit.TxRunner, binder repokit.Binder[repo.Repo], rec audit.Recorder, maxPerYear int, log logger.Logger,
) *Svc {
	if db == nil {
		panic("records.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("records.Service requires a non nil Repo binder")
	}
	if rec == nil {
		rec = audit.Nop{}
	}
	if maxPerYear <= 0 {
		maxPerYear = DefaultMaxPerYear
	}
	return &Svc{Repo: binder.Bind(db), recorder: rec, maxPerYear: maxPerYear, log: log, now: time.Now}
}

// NewWithRepo wires an already bound repo, used by tests
func NewWithRepo(r repo.Repo, rec audit.Recorder, maxPerYear int, log logger.Logger) *Svc {
	if r == nil {
		panic("records.Service requires a non nil Repo")
	}
	if rec == nil {
		rec = audit.Nop{}
	}
	if maxPerYear <= 0 {
		maxPerYear = DefaultMaxPerYear
	}
	return &Svc{Repo: r, recorder: rec, maxPerYear: maxPerYear, log: log, now: time.Now}
}

// ListMine returns the caller's live submissions, newest first
func (s *Svc) ListMine(ctx context.Context, userID string, year *int) (domain.ListOut, error) {
	recs, err := s.Repo.ListMine(ctx, userID, year, listLimit)
	if err != nil {
		return domain.ListOut{}, perr.FromPostgresf(err, "list records")
	}
	out := domain.ListOut{Count: len(recs), Results: make([]domain.RecordOut, 0, len(recs))}
	for _, r := range recs {
		out.Results = append(out.Results, domain.RecordOut{
			RecordID:           r.RecordID,
			UserID:             r.UserID,
			University:         r.University,
			Major:              r.Major,
			Industry:           r.Industry,
			Occupation:         r.Occupation,
			ExperienceCategory: r.ExperienceCategory,
			City:               r.City,
			SalaryEUR:          r.SalaryEUR,
			SubmissionDate:     r.SubmissionDate,
		})
	}
	return out, nil
}

// Submit stores one record for the caller after enforcing the yearly cap
func (s *Svc) Submit(ctx context.Context, userID string, in domain.SubmitIn) (domain.SubmitOut, error) {
	now := s.now().UTC()
	year := now.Year()

	cnt, err := s.Repo.CountForYear(ctx, userID, year)
	if err != nil {
		return domain.SubmitOut{}, perr.FromPostgresf(err, "count for year")
	}
	if cnt >= int64(s.maxPerYear) {
		return domain.SubmitOut{}, perr.Forbiddenf(
			"upload limit reached: at most %d records per calendar year (%d)", s.maxPerYear, year,
		)
	}

	id, err := s.Repo.Insert(ctx, repo.Record{
		UserID:             userID,
		University:         strings.TrimSpace(in.University),
		Major:              strings.TrimSpace(in.Major),
		Industry:           strings.TrimSpace(in.Industry),
		Occupation:         strings.TrimSpace(in.Occupation),
		ExperienceCategory: in.ExperienceCategory,
		City:               strings.TrimSpace(in.City),
		SalaryEUR:          in.SalaryEUR,
		SubmissionDate:     now,
	})
	if err != nil {
		return domain.SubmitOut{}, perr.FromPostgresf(err, "insert record")
	}

	s.audit(ctx, audit.Entry{
		Actor:      userID,
		Action:     audit.ActionSubmit,
		TargetType: audit.TargetSalaryRecord,
		TargetID:   strconv.FormatInt(id, 10),
		Metadata:   map[string]any{"year": year},
	})
	return domain.SubmitOut{RecordID: id, UserID: userID, SubmissionDate: now}, nil
}

// Delete soft deletes one of the caller's records.
// a record owned by someone else is forbidden, not hidden as missing
func (s *Svc) Delete(ctx context.Context, userID string, recordID int64) error {
	owner, err := s.Repo.Owner(ctx, recordID)
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		return perr.NotFoundf("record %d not found", recordID)
	}
	if err != nil {
		return perr.FromPostgresf(err, "load record %d", recordID)
	}
	if owner != userID {
		return perr.Forbiddenf("record %d is not yours", recordID)
	}
	if err := s.Repo.SoftDelete(ctx, recordID); err != nil {
		return perr.FromPostgresf(err, "delete record %d", recordID)
	}

	s.audit(ctx, audit.Entry{
		Actor:      userID,
		Action:     audit.ActionDeleteRecord,
		TargetType: audit.TargetSalaryRecord,
		TargetID:   strconv.FormatInt(recordID, 10),
	})
	return nil
}

// audit is best effort, a dropped entry is logged and never fails the action
func (s *Svc) audit(ctx context.Context, e audit.Entry) {
	if err := s.recorder.Record(ctx, e); err != nil {
		s.log.Warn().Err(err).Str("action", e.Action).Msg("audit record failed")
	}
}
