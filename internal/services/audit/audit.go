// Package audit records who did what to which entity
package audit

import (
	"context"
	"encoding/json"

	"paylens/internal/modkit/repokit"
)

// Actions recorded by the services that mutate data
const (
	ActionSubmit            = "SUBMIT"
	ActionDeleteRecord      = "DELETE_RECORD"
	ActionAdminImport       = "ADMIN_IMPORT"
	ActionAdminDeleteRecord = "ADMIN_DELETE_RECORD"
	ActionAdminDeleteBatch  = "ADMIN_DELETE_BATCH"
)

// Target types referenced by audit entries
const (
	TargetSalaryRecord = "SALARY_RECORD"
	TargetImportBatch  = "IMPORT_BATCH"
)

// Entry is one audit row
type Entry struct {
	Actor      string
	Action     string
	TargetType string
	TargetID   string
	Metadata   map[string]any
}

// Recorder persists audit entries.
// callers treat failures as best effort, an audit outage never blocks the action
type Recorder interface {
	Record(ctx context.Context, e Entry) error
}

type (
	// PG is a binder that can bind the recorder to a Queryer or TxRunner
	PG struct{}

	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the postgres recorder
func NewPG() repokit.Binder[Recorder] { return PG{} }

// Bind wires a Queryer to the recorder
func (PG) Bind(q repokit.Queryer) Recorder { return &queries{q: q} }

func (r *queries) Record(ctx context.Context, e Entry) error {
	meta := e.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	raw, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	const sql = `
INSERT INTO audit_logs (actor, action, target_type, target_id, metadata, created_at)
VALUES ($1, $2, $3, $4, $5, now())`
	_, err = r.q.Exec(ctx, sql, e.Actor, e.Action, e.TargetType, e.TargetID, raw)
	return err
}

// Nop is a recorder that drops everything, for tests and tools that do not audit
type Nop struct{}

// Record implements Recorder
func (Nop) Record(context.Context, Entry) error { return nil }
