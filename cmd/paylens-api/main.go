// @title         Paylens API
// @version       1.0.0
// @description   Privacy-floored salary statistics and self-service submissions

package main

import (
	"context"

	"paylens/internal/modkit/httpkit"
	"paylens/internal/modkit/repokit"
	"paylens/internal/platform/cache"
	"paylens/internal/platform/config"
	"paylens/internal/platform/logger"
	phttp "paylens/internal/platform/net/http"
	"paylens/internal/platform/store"

	"paylens/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	pgCfg := root.Prefix("SERVICE_PGSQL_") // pgCfg lives under SERVICE_PGSQL_*
	cacheCfg := root.Prefix("CACHE_")      // cacheCfg lives under CACHE_*

	// bring up logging early
	l := logger.Get()

	// open the platform store (postgres)
	st, err := store.Open(
		context.Background(),
		store.Config{
			AppName: "paylens-api",
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgCfg.MustString("DBURL"),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", true),
			},
		},
		store.WithLogger(*l),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(context.Background(), st)

	// badger-backed result cache (CACHE_PATH, CACHE_INMEMORY)
	c, err := cache.OpenBadger(cache.Config{
		Path:     cacheCfg.MayString("PATH", "./data/cache"),
		InMemory: cacheCfg.MayBool("INMEMORY", false),
	}, *l)
	if err != nil {
		l.Panic().Err(err).Msg("cache open failed")
	}
	defer func() {
		if err := c.Close(); err != nil {
			l.Error().Err(err).Msg("failed to close cache")
		}
	}()

	// http server (reads CORE_API_PORT)
	srv := phttp.NewServer(apiCfg)

	// bearer tokens are minted by the identity gateway, the token body is the user id
	auth := httpkit.NewPortFunc(func(token string) (string, error) { return token, nil })

	api.Mount(
		srv.Router(),
		api.Options{
			Cfg:            apiCfg,
			Log:            *l,
			Store:          st,
			Cache:          c,
			Auth:           auth,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", true),
		},
	)

	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
