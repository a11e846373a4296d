package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"entdash/internal/api"
	"entdash/internal/api/handlers"
	"entdash/internal/api/middleware"
	"entdash/internal/engine/stats"
	"entdash/internal/pkg/logger"
	"entdash/internal/platform/auth"
	"entdash/internal/platform/config"
	"entdash/internal/platform/database"
	"entdash/internal/workers"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "Path to config file")
	flag.Parse()

	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Logging)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, db, err := openRepository(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open statistics store")
	}
	if db != nil {
		defer db.Close()
	}

	cached := stats.NewCachedRepository(repo, cfg.Cache.TTL, cfg.Cache.MaxEntries)
	defer cached.Stop()
	warmer := workers.NewCacheWarmer(cached, cfg.Cache.WarmInterval)
	go warmer.Run(ctx)

	resp := handlers.NewResponder(cfg.Dashboard.QueryTimeout, cfg.Dashboard.MaxLimit)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute)
	defer rateLimiter.Stop()

	deps := &api.Dependencies{
		BasePath:            cfg.Server.BasePath,
		StatsHandler:        handlers.NewStatsHandler(cached, resp),
		WorkspaceHandler:    handlers.NewWorkspaceHandler(cached, resp),
		OrganizationHandler: handlers.NewOrganizationHandler(cached, resp),
		UserHandler:         handlers.NewUserHandler(cached, resp),
		SSOHandler:          handlers.NewSSOHandler(cached, resp),
		SecurityHandler:     handlers.NewSecurityHandler(cached, resp),
		BusinessHandler:     handlers.NewBusinessHandler(cached, resp),
		SystemHandler:       handlers.NewSystemHandler(cached, resp),
		AnalyticsHandler:    handlers.NewAnalyticsHandler(cached, resp),
		ActivityHandler:     handlers.NewActivityHandler(cached, resp),
		HealthHandler:       handlers.NewHealthHandler(map[string]handlers.Pinger{"store": repo}),
		MetricsHandler:      handlers.NewMetricsHandler(),
		RateLimiter:         rateLimiter,
		AllowedRoles:        cfg.Auth.AllowedRoles,
	}

	if cfg.Auth.Enabled {
		tokenSvc := auth.NewTokenService(cfg.Auth.JWT)
		deps.AuthMiddleware = middleware.NewAuthMiddleware(tokenSvc, auth.NewAPIKeyVerifier(cfg.Auth.APIKeyHashes))
	} else {
		log.Warn().Msg("Authentication is disabled; dashboard routes are public")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      api.NewRouter(deps),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("base_path", cfg.Server.BasePath).
			Str("driver", cfg.Database.Driver).
			Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatal().Err(err).Msg("Server failed")
		}
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}

// openRepository returns the configured store. The *sql.DB is nil for the
// in-memory driver.
func openRepository(ctx context.Context, cfg config.DatabaseConfig) (stats.Repository, *sql.DB, error) {
	switch cfg.Driver {
	case "memory", "":
		log.Info().Msg("Serving built-in dashboard dataset")
		return stats.NewStaticRepository(stats.DefaultDataset(time.Now())), nil, nil
	case "sqlite", "sqlite3":
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := database.Open(cfg)
	if err != nil {
		return nil, nil, err
	}

	if cfg.AutoMigrate {
		applied, err := database.Migrate(ctx, db)
		if err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		if len(applied) > 0 {
			log.Info().Strs("migrations", applied).Msg("Applied migrations")
		}
	}

	repo := stats.NewSQLRepository(db)
	if cfg.SeedIfEmpty {
		empty, err := repo.IsEmpty(ctx)
		if err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("check store: %w", err)
		}
		if empty {
			if err := repo.Seed(ctx, stats.DefaultDataset(time.Now())); err != nil {
				db.Close()
				return nil, nil, fmt.Errorf("seed: %w", err)
			}
			log.Info().Msg("Seeded empty store with built-in dataset")
		}
	}

	return repo, db, nil
}
