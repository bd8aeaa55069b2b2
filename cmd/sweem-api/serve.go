package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sweem/sweem-api/internal/api"
	"github.com/sweem/sweem-api/internal/api/handler"
	"github.com/sweem/sweem-api/internal/api/metrics"
	"github.com/sweem/sweem-api/internal/core/credential"
	"github.com/sweem/sweem-api/internal/core/service"
	redisdb "github.com/sweem/sweem-api/internal/infrastructure/db/redis"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	cfg, log := a.cfg, a.log

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(context.WithoutCancel(ctx)); err != nil {
			log.Warn().Err(err).Msg("close store")
		}
	}()
	log.Info().Str("store", store.Name()).Msg("store connected")

	if cfg.MigrateOnStart {
		n, err := migrateUp(ctx, store)
		if err != nil {
			return err
		}
		log.Info().Str("store", store.Name()).Int("applied", n).Msg("migrations applied")
	}

	hasher, err := credential.NewDefaultRegistry(cfg.Password.Hash, cfg.Password.BcryptCost)
	if err != nil {
		return err
	}

	observe := service.WithObserver(metrics.Observer{})
	deps := api.Deps{
		Clients:  service.NewClientService(store, log, observe),
		Projects: service.NewProjectService(store, log, observe),
		Users:    service.NewUserService(store, hasher, log, observe),
		Ready:    []handler.Dependency{{Name: store.Name(), Ping: store.Ping}},
		Logger:   log,
	}

	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()

		deps.Keys = redisdb.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL)
		deps.Ready = append(deps.Ready, handler.Dependency{
			Name: "redis",
			Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		})
		log.Info().Str("addr", cfg.Redis.Addr).Msg("idempotency keys enabled")
	}

	e := api.NewRouter(deps)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.Addr()).Msg("http server listening")
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
