// Package importer ingests salary record CSV files in one batch transaction
package importer

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"paylens/internal/modkit/repokit"
	perr "paylens/internal/platform/errors"
	"paylens/internal/platform/logger"
	recrepo "paylens/internal/services/api/records/repo"
	"paylens/internal/services/audit"
)

// Report summarizes one finished batch
type Report struct {
	BatchID     string     `json:"batch_id"`
	Filename    string     `json:"filename"`
	Status      string     `json:"status"`
	RowsTotal   int        `json:"rows_total"`
	RowsSuccess int        `json:"rows_success"`
	RowsFailed  int        `json:"rows_failed"`
	Failures    []RowError `json:"failures,omitempty"`
}

// Importer drives CSV ingestion
type Importer struct {
	db       repokit.TxRunner
	batches  repokit.Binder[Repo]
	records  repokit.Binder[recrepo.Repo]
	recorder audit.Recorder
	log      logger.Logger

	now func() time.Time
}

// New constructs an importer
func New(db repokit.TxRunner, recorder audit.Recorder, log logger.Logger) *Importer {
	if db == nil {
		panic("importer requires a non nil TxRunner")
	}
	if recorder == nil {
		recorder = audit.Nop{}
	}
	return &Importer{
		db:       db,
		batches:  NewPG(),
		records:  recrepo.NewPG(),
		recorder: recorder,
		log:      log,
		now:      time.Now,
	}
}

// Run parses the file and loads every valid row inside a single transaction.
// failed rows are reported, they never abort the batch, a bad header does
func (im *Importer) Run(ctx context.Context, actor, filename string, src io.Reader) (Report, error) {
	now := im.now().UTC()

	rows, failures, err := ParseCSV(src, now)
	if err != nil {
		return Report{}, perr.InvalidArgf("parse %s: %v", filename, err)
	}

	batch := Batch{
		BatchID:  uuid.NewString(),
		Admin:    actor,
		Filename: filename,
		Status:   StatusRunning,
	}

	if err := im.audit(ctx, actor, batch.BatchID, filename); err != nil {
		im.log.Warn().Err(err).Msg("audit record failed")
	}

	// bulk loads skip the WAL flush per commit, the batch is re-runnable
	tx := repokit.WithBeginHooks(im.db, func(ctx context.Context, q repokit.Queryer) error {
		_, err := q.Exec(ctx, "SET LOCAL synchronous_commit TO off")
		return err
	})

	err = repokit.WithTx(ctx, tx, func(q repokit.Queryer) error {
		batches := im.batches.Bind(q)
		records := im.records.Bind(q)

		if err := batches.CreateBatch(ctx, batch); err != nil {
			return err
		}
		for _, row := range rows {
			userID := row.Email
			if userID == "" {
				userID = "import-" + uuid.NewString()
			}
			_, err := records.Insert(ctx, recrepo.Record{
				UserID:             userID,
				BatchID:            &batch.BatchID,
				University:         row.University,
				Major:              row.Major,
				Industry:           row.Industry,
				Occupation:         row.Occupation,
				ExperienceCategory: row.ExperienceCategory,
				City:               row.City,
				SalaryEUR:          row.SalaryEUR,
				SubmissionDate:     row.SubmissionDate,
			})
			if err != nil {
				return err
			}
		}
		for _, f := range failures {
			if err := batches.InsertFailure(ctx, batch.BatchID, f.RowNumber, f.Err, f.Raw); err != nil {
				return err
			}
		}

		batch.RowsSuccess = len(rows)
		batch.RowsFailed = len(failures)
		batch.RowsTotal = len(rows) + len(failures)
		batch.Status = batchStatus(len(rows), len(failures))
		return batches.FinishBatch(ctx, batch)
	})
	if err != nil {
		return Report{}, perr.FromPostgresf(err, "import batch %s", batch.BatchID)
	}

	im.log.Info().
		Str("batch_id", batch.BatchID).
		Str("status", batch.Status).
		Int("rows_success", batch.RowsSuccess).
		Int("rows_failed", batch.RowsFailed).
		Msg("import finished")

	return Report{
		BatchID:     batch.BatchID,
		Filename:    filename,
		Status:      batch.Status,
		RowsTotal:   batch.RowsTotal,
		RowsSuccess: batch.RowsSuccess,
		RowsFailed:  batch.RowsFailed,
		Failures:    failures,
	}, nil
}

func batchStatus(successes, failed int) string {
	switch {
	case successes == 0 && failed > 0:
		return StatusFailed
	case failed > 0:
		return StatusPartial
	default:
		return StatusSuccess
	}
}

func (im *Importer) audit(ctx context.Context, actor, batchID, filename string) error {
	return im.recorder.Record(ctx, audit.Entry{
		Actor:      actor,
		Action:     audit.ActionAdminImport,
		TargetType: audit.TargetImportBatch,
		TargetID:   batchID,
		Metadata:   map[string]any{"filename": filename},
	})
}
