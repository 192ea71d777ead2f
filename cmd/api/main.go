// @title        Country Comments API
// @version      1.0
// @description  Per-country comments with session-based accounts and user administration.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/olympicapp/country-comments/internal/api"
	"github.com/olympicapp/country-comments/internal/api/handler"
	"github.com/olympicapp/country-comments/internal/core/service"
	"github.com/olympicapp/country-comments/internal/infrastructure/db/memory"
	mongodb "github.com/olympicapp/country-comments/internal/infrastructure/db/mongo"
	redisdb "github.com/olympicapp/country-comments/internal/infrastructure/db/redis"
	"github.com/olympicapp/country-comments/internal/pkg/config"
	"github.com/olympicapp/country-comments/internal/session"
	"github.com/olympicapp/country-comments/pkg/logger"
)

const (
	shutdownTimeout = 10 * time.Second
	sweepInterval   = time.Minute
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "country-comments",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	deps := api.Dependencies{Checks: map[string]handler.Checker{}}

	// --- Storage ---
	switch cfg.StorageBackend {
	case config.BackendMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Warn().Err(err).Msg("mongo disconnect failed")
			}
		}()
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			return err
		}
		deps.Users = mongodb.NewUserRepository(db)
		deps.Comments = mongodb.NewCommentRepository(db)
		deps.Checks["mongodb"] = mongodb.Ping(db)
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")
	default:
		deps.Users = memory.NewUserRepository()
		deps.Comments = memory.NewCommentRepository()
		log.Warn().Msg("using in-memory storage; data is lost on restart")
	}

	// --- Sessions ---
	switch cfg.Session.Backend {
	case config.BackendRedis:
		client, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer client.Close()
		deps.Sessions = redisdb.NewSessionStore(client)
		deps.Checks["redis"] = redisdb.Ping(client)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")
	default:
		store := session.NewMemoryStore()
		go store.RunSweeper(ctx, sweepInterval)
		deps.Sessions = store
	}

	if err := bootstrapAdmin(ctx, cfg, deps, log); err != nil {
		return err
	}

	e, err := api.NewRouter(cfg, deps, log)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func bootstrapAdmin(ctx context.Context, cfg *config.Config, deps api.Dependencies, log zerolog.Logger) error {
	if cfg.Auth.BootstrapAdminUsername == "" {
		return nil
	}
	passwords, err := service.NewPasswordScheme(cfg.Auth.PasswordScheme)
	if err != nil {
		return err
	}
	gate := service.NewAuthGate(deps.Users, cfg.Auth.RevalidateRole, log)
	auth := service.NewAuthService(deps.Users, gate, passwords, log)
	return auth.EnsureAdmin(ctx, cfg.Auth.BootstrapAdminUsername, cfg.Auth.BootstrapAdminPassword)
}
