// Command paylens-import loads a salary record CSV into postgres as one batch
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"

	"paylens/internal/platform/config"
	"paylens/internal/platform/logger"
	"paylens/internal/platform/store"

	"paylens/internal/services/audit"
	"paylens/internal/services/importer"
)

func main() {
	var (
		file  = flag.String("file", "", "path to the CSV file to import")
		actor = flag.String("actor", "cli", "who runs this import, recorded in the audit log")
	)
	flag.Parse()

	l := logger.Get()
	if *file == "" {
		l.Fatal().Msg("-file is required")
	}

	pgCfg := config.New().Prefix("SERVICE_PGSQL_")

	ctx := context.Background()
	st, err := store.Open(ctx, store.Config{
		AppName: "paylens-import",
		PG: store.PGConfig{
			Enabled:  true,
			URL:      pgCfg.MustString("DBURL"),
			MaxConns: int32(pgCfg.MayInt("MAX_CONNS", 2)),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Fatal().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(ctx); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	f, err := os.Open(*file)
	if err != nil {
		l.Fatal().Err(err).Str("file", *file).Msg("open csv")
	}
	defer f.Close()

	recorder := audit.NewPG().Bind(st.PG)
	im := importer.New(st.PG, recorder, *l)

	report, err := im.Run(ctx, *actor, filepath.Base(*file), f)
	if err != nil {
		l.Fatal().Err(err).Msg("import failed")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		l.Fatal().Err(err).Msg("encode report")
	}
	if report.Status == importer.StatusFailed {
		os.Exit(1)
	}
}
