// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"learner-practice-portal/internal/config"
	pg "learner-practice-portal/internal/infra/db/postgres"
	"learner-practice-portal/internal/infra/guard"
	"learner-practice-portal/internal/infra/logging"
	"learner-practice-portal/internal/infra/metrics"
	red "learner-practice-portal/internal/infra/redis"
	"learner-practice-portal/internal/infra/web"
	"learner-practice-portal/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs, debug level)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("dev mode enabled")
	}

	metrics.MustRegister()

	// ---- Postgres (remote usage + subscription store) ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()

	// ---- Redis (local fallback cache) ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis")
	}
	defer redisClient.Close()
	usageCache := red.NewUsageCache(redisClient, cfg.Redis.TTL)

	// ---- Guard ----
	state := guard.NewOfflineState()
	g := guard.New(state, cfg.Guard, logger)

	// ---- Repositories ----
	usageRepo := pg.NewDailyUsageRepo(pool)
	subRepo := pg.NewSubscriptionRepo(pool)

	// ---- Use cases ----
	catalog := usecase.NewPlanCatalog()
	subUC := usecase.NewSubscriptionUseCase(subRepo, g, logger)
	usageUC := usecase.NewUsageUseCase(usageRepo, usageCache, g, catalog, logger)
	entUC := usecase.NewEntitlementUseCase(subUC, usageUC, catalog, logger)

	// ---- HTTP server ----
	auth := web.NewAuthManager(cfg.Web.AuthSecret, cfg.Web.SessionTTL)
	srv := web.NewServer(entUC, usageUC, catalog, state, auth, cfg.Web, logger)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")

	shutCtx, shutCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutCancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	cancel()
}
