// Package repo provides postgres access for salary record ownership flows
package repo

import (
	"context"
	"strconv"
	"time"

	"paylens/internal/modkit/repokit"
	"paylens/internal/platform/store"
)

// Record is the persistence shape of one salary record
type Record struct {
	RecordID           int64
	UserID             string
	BatchID            *string
	University         string
	Major              string
	Industry           string
	Occupation         string
	ExperienceCategory string
	City               string
	SalaryEUR          float64
	SubmissionDate     time.Time
}

// Repo is the persistence surface for record ownership flows
type Repo interface {
	ListMine(ctx context.Context, userID string, year *int, limit int) ([]Record, error)
	CountForYear(ctx context.Context, userID string, year int) (int64, error)
	Insert(ctx context.Context, rec Record) (int64, error)
	Owner(ctx context.Context, recordID int64) (string, error)
	SoftDelete(ctx context.Context, recordID int64) error
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}

	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const recordCols = `
record_id, user_id, university, major, industry, occupation,
experience_category, city, salary_eur::float8, submission_date`

func scanRecord(r repokit.Row) (Record, error) {
	var rec Record
	err := r.Scan(
		&rec.RecordID, &rec.UserID, &rec.University, &rec.Major, &rec.Industry,
		&rec.Occupation, &rec.ExperienceCategory, &rec.City, &rec.SalaryEUR, &rec.SubmissionDate,
	)
	return rec, err
}

func (r *queries) ListMine(ctx context.Context, userID string, year *int, limit int) ([]Record, error) {
	sql := `SELECT ` + recordCols + `
FROM salary_records
WHERE user_id = $1 AND deleted_at IS NULL`
	args := []any{userID}
	if year != nil {
		sql += ` AND date_part('year', submission_date) = $2`
		args = append(args, *year)
	}
	sql += ` ORDER BY submission_date DESC LIMIT $` + strconv.Itoa(len(args)+1)
	args = append(args, limit)
	return store.Many(ctx, r.q, scanRecord, sql, args...)
}

func (r *queries) CountForYear(ctx context.Context, userID string, year int) (int64, error) {
	const sql = `
SELECT COUNT(*) FROM salary_records
WHERE user_id = $1 AND deleted_at IS NULL AND date_part('year', submission_date) = $2`
	return store.Scalar[int64](ctx, r.q, sql, userID, year)
}

func (r *queries) Insert(ctx context.Context, rec Record) (int64, error) {
	const sql = `
INSERT INTO salary_records (
  user_id, batch_id, university, major, industry, occupation,
  experience_category, city, salary_eur, submission_date, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now())
RETURNING record_id`
	return store.Scalar[int64](ctx, r.q, sql,
		rec.UserID, rec.BatchID, rec.University, rec.Major, rec.Industry, rec.Occupation,
		rec.ExperienceCategory, rec.City, rec.SalaryEUR, rec.SubmissionDate,
	)
}

// Owner returns the owning user, perr.ErrNotFound when missing or soft deleted
func (r *queries) Owner(ctx context.Context, recordID int64) (string, error) {
	const sql = `SELECT user_id FROM salary_records WHERE record_id = $1 AND deleted_at IS NULL`
	return store.One(ctx, r.q, func(row repokit.Row) (string, error) {
		var u string
		err := row.Scan(&u)
		return u, err
	}, sql, recordID)
}

func (r *queries) SoftDelete(ctx context.Context, recordID int64) error {
	const sql = `UPDATE salary_records SET deleted_at = now() WHERE record_id = $1 AND deleted_at IS NULL`
	return store.ExecOne(ctx, r.q, sql, recordID)
}
