package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ai-chat-dashboard/internal/config"
	aiAdapters "ai-chat-dashboard/internal/infra/adapters/ai"
	pg "ai-chat-dashboard/internal/infra/db/postgres"
	"ai-chat-dashboard/internal/infra/logging"
	"ai-chat-dashboard/internal/infra/metrics"
	red "ai-chat-dashboard/internal/infra/redis"
	"ai-chat-dashboard/internal/infra/web"
	"ai-chat-dashboard/internal/pricing"
	"ai-chat-dashboard/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis")
	}
	defer redisClient.Close()
	usageCache := red.NewUsageCache(redisClient, cfg.Redis.TTL)

	// ---- Repositories ----
	usageRepo := pg.NewUsageRepo(pool)
	projectRepo := pg.NewProjectRepo(pool)
	profileRepo := pg.NewProfileRepo(pool)
	txManager := pg.NewTxManager(pool)

	// ---- Providers ----
	// Credentials are checked per request path, so either adapter may be
	// constructed unconfigured without blocking the other.
	registry := aiAdapters.NewRegistry(
		aiAdapters.NewAnthropicAdapter(cfg.Providers.Anthropic, logger),
		aiAdapters.NewGatewayAdapter(cfg.Providers.Gateway, logger),
	)
	prices := pricing.NewTable()

	// ---- Use cases ----
	chatUC := usecase.NewChatUseCase(registry, prices, usageRepo, usageCache, logger)
	usageUC := usecase.NewUsageUseCase(usageRepo, usageCache, logger)
	projectUC := usecase.NewProjectUseCase(projectRepo, txManager)
	profileUC := usecase.NewProfileUseCase(profileRepo)

	// ---- HTTP server ----
	auth := web.NewAuthManager(cfg.Admin.JWTSecret, !cfg.Runtime.Dev, "", 30*time.Minute)
	srv := web.NewServer(chatUC, usageUC, projectUC, profileUC, prices, cfg.Admin.APIKey, auth, logger)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: srv.Routes(),
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	cancel()
}
