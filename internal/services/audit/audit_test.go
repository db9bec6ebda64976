package audit_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"paylens/internal/platform/store"
	"paylens/internal/services/audit"
)

type execCall struct {
	sql  string
	args []any
}

type fakeTag struct{}

func (fakeTag) String() string      { return "INSERT 0 1" }
func (fakeTag) RowsAffected() int64 { return 1 }

type fakeQuerier struct{ calls []execCall }

func (f *fakeQuerier) Exec(_ context.Context, sql string, args ...any) (store.CommandTag, error) {
	f.calls = append(f.calls, execCall{sql: sql, args: args})
	return fakeTag{}, nil
}

func (f *fakeQuerier) Query(context.Context, string, ...any) (store.Rows, error) { return nil, nil }
func (f *fakeQuerier) QueryRow(context.Context, string, ...any) store.Row       { return nil }

func TestRecordInsertsOneRow(t *testing.T) {
	q := &fakeQuerier{}
	rec := audit.NewPG().Bind(q)

	err := rec.Record(context.Background(), audit.Entry{
		Actor:      "u-123",
		Action:     audit.ActionSubmit,
		TargetType: audit.TargetSalaryRecord,
		TargetID:   "42",
		Metadata:   map[string]any{"year": 2026},
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if len(q.calls) != 1 {
		t.Fatalf("calls = %d", len(q.calls))
	}
	call := q.calls[0]
	if !strings.Contains(call.sql, "INSERT INTO audit_logs") {
		t.Fatalf("sql = %s", call.sql)
	}
	if call.args[0] != "u-123" || call.args[1] != "SUBMIT" || call.args[3] != "42" {
		t.Fatalf("args = %v", call.args)
	}

	var meta map[string]any
	if err := json.Unmarshal(call.args[4].([]byte), &meta); err != nil {
		t.Fatalf("metadata not json: %v", err)
	}
	if meta["year"] != float64(2026) {
		t.Fatalf("meta = %v", meta)
	}
}

func TestRecordNilMetadataBecomesEmptyObject(t *testing.T) {
	q := &fakeQuerier{}
	rec := audit.NewPG().Bind(q)

	if err := rec.Record(context.Background(), audit.Entry{Action: audit.ActionDeleteRecord}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if string(q.calls[0].args[4].([]byte)) != "{}" {
		t.Fatalf("metadata = %s", q.calls[0].args[4])
	}
}
