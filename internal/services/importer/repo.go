package importer

import (
	"context"
	"encoding/json"

	"paylens/internal/modkit/repokit"
	"paylens/internal/platform/store"
)

// Batch statuses
const (
	StatusRunning = "RUNNING"
	StatusSuccess = "SUCCESS"
	StatusPartial = "PARTIAL"
	StatusFailed  = "FAILED"
)

// Batch is one import run
type Batch struct {
	BatchID     string
	Admin       string
	Filename    string
	Status      string
	RowsTotal   int
	RowsSuccess int
	RowsFailed  int
}

// Repo is the persistence surface for import batches
type Repo interface {
	CreateBatch(ctx context.Context, b Batch) error
	FinishBatch(ctx context.Context, b Batch) error
	InsertFailure(ctx context.Context, batchID string, rowNumber int, errMsg string, raw map[string]string) error
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

func (r *queries) CreateBatch(ctx context.Context, b Batch) error {
	const sql = `
INSERT INTO import_batches (batch_id, admin, filename, status, rows_total, rows_success, rows_failed, created_at)
VALUES ($1, $2, $3, $4, 0, 0, 0, now())`
	return store.ExecOne(ctx, r.q, sql, b.BatchID, b.Admin, b.Filename, b.Status)
}

func (r *queries) FinishBatch(ctx context.Context, b Batch) error {
	const sql = `
UPDATE import_batches
SET status = $2, rows_total = $3, rows_success = $4, rows_failed = $5
WHERE batch_id = $1`
	return store.ExecOne(ctx, r.q, sql, b.BatchID, b.Status, b.RowsTotal, b.RowsSuccess, b.RowsFailed)
}

func (r *queries) InsertFailure(
	ctx context.Context, batchID string, rowNumber int, errMsg string, raw map[string]string,
) error {
	if len(errMsg) > 255 {
		errMsg = errMsg[:255]
	}
	rawJSON, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	const sql = `
INSERT INTO import_failures (batch_id, row_number, error, raw)
VALUES ($1, $2, $3, $4)`
	return store.ExecOne(ctx, r.q, sql, batchID, rowNumber, errMsg, rawJSON)
}
