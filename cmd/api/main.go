package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"donation-slip-gateway/config"
	"donation-slip-gateway/internal/adapter/gateway/slip2go"
	httpHandler "donation-slip-gateway/internal/adapter/http/handler"
	pgStorage "donation-slip-gateway/internal/adapter/storage/postgres"
	redisStorage "donation-slip-gateway/internal/adapter/storage/redis"
	"donation-slip-gateway/internal/core/ports"
	"donation-slip-gateway/internal/service"
	"donation-slip-gateway/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Donation Slip Gateway")

	ctx := context.Background()

	// Run schema migrations before opening the pool
	if cfg.Database.MigrationsPath != "" {
		if err := pgStorage.RunMigrations(cfg.Database.DSN(), cfg.Database.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
		log.Info().Msg("Database migrations applied")
	}

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	donationRepo := pgStorage.NewDonationRepo(pool)
	settingsRepo := pgStorage.NewSettingsRepo(pool)
	attemptRepo := pgStorage.NewAttemptRepo(pool)

	// Initialize vendor gateway client
	slipGateway := slip2go.NewClient(cfg.Vendor, &http.Client{Timeout: cfg.Vendor.Timeout}, log)
	if cfg.Vendor.APIKey == "" {
		log.Warn().Msg("Vendor API key not configured, slip verification will fail")
	}

	// Initialize business services
	verifySvc := service.NewVerificationService(slipGateway, donationRepo, settingsRepo, log)
	querySvc := service.NewDonationQueryService(donationRepo, settingsRepo)
	attemptSvc := service.NewAttemptRecorder(attemptRepo, log)

	var tokenSvc ports.TokenService
	if cfg.Auth.JWTSecret != "" {
		tokenSvc = service.NewJWTTokenService(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	} else {
		log.Warn().Msg("JWT secret not configured, all donations will be anonymous")
	}

	// Initialize rate limit store
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		VerifySvc:      verifySvc,
		QuerySvc:       querySvc,
		TokenSvc:       tokenSvc,
		AttemptSvc:     attemptSvc,
		RateLimitStore: rateLimitStore,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
