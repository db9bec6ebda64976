//go:build integration_pg
// +build integration_pg

package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"paylens/internal/platform/logger"

	"github.com/rs/zerolog"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startPostgres launches a disposable Postgres and returns DSN + stop func
func startPostgres(t *testing.T) (dsn string, stop func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "postgres",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(2 * time.Minute),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		cancel()
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get container host: %v", err)
	}
	mp, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get mapped port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, mp.Port())
	stop = func() {
		_ = c.Terminate(context.Background())
		cancel()
	}
	return dsn, stop
}

func newTestStoreLogger() logger.Logger {
	// quiet, deterministic logs
	return zerolog.New(io.Discard)
}

func TestSQLAdapter_Integration_ExecQueryTx(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	s := &Store{Log: newTestStoreLogger()}
	cfg := Config{
		PG: PGConfig{
			Enabled:     true,
			URL:         dsn,
			MaxConns:    2,
			SlowQueryMs: 0,
			LogSQL:      true, // hit tracer wiring path
		},
	}

	pgClient, err := openPG(ctx, cfg, s)
	if err != nil {
		t.Fatalf("openPG: %v", err)
	}
	defer func() {
		if c, ok := pgClient.(interface{ Close() error }); ok {
			_ = c.Close()
		}
	}()

	if _, err := pgClient.Exec(ctx, `
		CREATE TABLE salary_records (
			id BIGSERIAL PRIMARY KEY,
			city TEXT NOT NULL,
			salary_eur DOUBLE PRECISION NOT NULL,
			deleted_at TIMESTAMPTZ
		)`); err != nil {
		t.Fatalf("create table: %v", err)
	}

	if _, err := pgClient.Exec(ctx,
		`INSERT INTO salary_records (city, salary_eur) VALUES ($1, $2), ($3, $4)`,
		"Berlin", 60000.0, "Paris", 55000.0); err != nil {
		t.Fatalf("insert: %v", err)
	}

	n, err := Scalar[int64](ctx, pgClient, `SELECT count(*) FROM salary_records WHERE deleted_at IS NULL`)
	if err != nil {
		t.Fatalf("scalar: %v", err)
	}
	if n != 2 {
		t.Fatalf("got %d rows want 2", n)
	}

	// rollback leaves the table untouched
	sentinel := errors.New("abort")
	err = pgClient.Tx(ctx, func(q RowQuerier) error {
		if _, err := q.Exec(ctx, `DELETE FROM salary_records`); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("want sentinel error got %v", err)
	}
	n, err = Scalar[int64](ctx, pgClient, `SELECT count(*) FROM salary_records`)
	if err != nil {
		t.Fatalf("scalar after rollback: %v", err)
	}
	if n != 2 {
		t.Fatalf("rollback lost rows, got %d want 2", n)
	}

	// commit path
	err = pgClient.Tx(ctx, func(q RowQuerier) error {
		_, err := q.Exec(ctx, `UPDATE salary_records SET deleted_at = now() WHERE city = $1`, "Paris")
		return err
	})
	if err != nil {
		t.Fatalf("tx commit: %v", err)
	}
	n, err = Scalar[int64](ctx, pgClient, `SELECT count(*) FROM salary_records WHERE deleted_at IS NULL`)
	if err != nil {
		t.Fatalf("scalar after commit: %v", err)
	}
	if n != 1 {
		t.Fatalf("got %d visible rows want 1", n)
	}
}
