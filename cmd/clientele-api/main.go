package main

import (
	"context"
	"os/signal"
	"syscall"

	"clientele/internal/modkit/repokit"
	"clientele/internal/platform/config"
	"clientele/internal/platform/logger"
	phttp "clientele/internal/platform/net/http"
	"clientele/internal/platform/store"

	"clientele/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	pgCfg := root.Prefix("SERVICE_PGSQL_") // pgCfg lives under SERVICE_PGSQL_*

	// bring up logging early
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// open the platform store (postgres + change feed)
	st, err := store.Open(
		ctx,
		store.Config{
			AppName: "clientele",
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgCfg.MustString("DBURL"),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", true),
			},
			Feed: store.FeedConfig{
				Enabled: pgCfg.MayBool("FEED", true),
				Channel: pgCfg.MayString("FEED_CHANNEL", "clients_changed"),
			},
		},
		store.WithLogger(*logger.Get()),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// fail fast when postgres is unreachable
	repokit.MustGuard(ctx, st)

	// http server (reads CORE_API_API_PORT)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	ctrl := api.Mount(
		srv.Router(),
		api.Options{
			Config: apiCfg,
			Store:  st,
			Logger: l,
		},
	)

	// run the change feed and keep the derived view warm
	if st.Feed != nil {
		go func() {
			if err := st.Feed.Run(ctx); err != nil {
				l.Error().Err(err).Msg("change feed stopped")
			}
		}()
		go ctrl.Run(ctx)
	}
	if err := ctrl.Refresh(ctx); err != nil {
		l.Warn().Err(err).Msg("initial snapshot fetch failed")
	}

	// run until signalled
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
