package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-reminder-scheduling/internal/config"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/handler"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/health"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/infra/auditrecorder"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/infra/notifyplatform"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/infra/repository"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/observability/metrics"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/observability/middleware"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/service/audit"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/service/plans"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/service/schedule"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/service/status"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/service/timing"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/service/trigger"
)

// Version is set via ldflags at build time
var Version = "dev"

func main() {
	os.Exit(run())
}

func initPlatformClient(cfg *config.Config) *notifyplatform.Client {
	timeout := time.Duration(cfg.Schedule.PlatformTimeoutSeconds) * time.Second
	return notifyplatform.NewClient(cfg.NotifyPlatformURL, timeout, cfg.Schedule.PlatformMaxRetries)
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	obs, err := initObservability(ctx)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	schedulerMetrics, err := metrics.NewSchedulerMetrics()
	if err != nil {
		slog.Error("failed to initialize scheduler metrics", slog.String("error", err.Error()))
		return 1
	}

	auditMetrics, err := metrics.NewAuditMetrics()
	if err != nil {
		slog.Error("failed to initialize audit metrics", slog.String("error", err.Error()))
		return 1
	}

	// Audit result recorder (InfluxDB for local, BigQuery for gcloud)
	resultRecorderCfg := auditrecorder.LoadConfig()
	resultRecorder, err := auditrecorder.NewRecorder(ctx, resultRecorderCfg)
	if err != nil {
		slog.Error("failed to initialize audit result recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := resultRecorder.Close(); err != nil {
			slog.Warn("failed to close audit result recorder", slog.String("error", err.Error()))
		}
	}()

	platformClient := initPlatformClient(cfg)

	redisClient := redis.NewClient(cfg.Redis.Options())

	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		slog.Error("failed to instrument redis tracing",
			slog.String("event", "redis.otel.tracing.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		slog.Error("failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Warn("failed to close redis client", slog.String("error", err.Error()))
		}
	}()

	slog.Info("redis connected",
		slog.String("addr", cfg.Redis.Addr),
	)

	planRepo := repository.NewPlanRepository(redisClient)
	profileRepo := repository.NewProfileRepository(redisClient)

	calculator := trigger.NewCalculator(0)
	adjuster := timing.NewAdjuster(cfg.Timing, nil)

	scheduleService := schedule.NewService(platformClient, calculator, schedulerMetrics)
	timingService := timing.NewService(adjuster, profileRepo, schedulerMetrics)
	planService := plans.NewService(planRepo, scheduleService, timingService)
	auditService := audit.NewService(planRepo, platformClient, scheduleService, timingService, resultRecorder, auditMetrics)
	statusReporter := status.NewReporter(platformClient, auditService)

	planHandler := handler.NewPlanHandler(planService)
	responseHandler := handler.NewResponseHandler(timingService)
	auditHandler := handler.NewAuditHandler(auditService)
	statusHandler := handler.NewStatusHandler(statusReporter)

	// Setup router with observability middleware
	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/health", "/health/live", "/health/ready"},
		TracerName:  "github.com/KasumiMercury/primind-reminder-scheduling/internal/observability/middleware",
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	// Health check endpoints
	healthChecker := health.NewChecker(redisClient, platformClient, Version)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	// API routes
	v1 := r.Group("/api/v1")
	{
		v1.POST("/plans", planHandler.HandleCreate)
		v1.GET("/plans", planHandler.HandleList)
		v1.GET("/plans/:id", planHandler.HandleGet)
		v1.PUT("/plans/:id", planHandler.HandleUpdate)
		v1.DELETE("/plans/:id", planHandler.HandleDelete)
		v1.POST("/plans/:id/responses", responseHandler.HandleRecordResponse)
		v1.DELETE("/plans/:id/profile", responseHandler.HandleResetProfile)

		v1.GET("/audit", auditHandler.HandleAudit)
		v1.POST("/audit/cleanup", auditHandler.HandleCleanupOrphaned)
		v1.POST("/audit/repair", auditHandler.HandleRepairMissing)
		v1.POST("/audit/reset", auditHandler.HandleResetSystem)

		v1.GET("/status", statusHandler.HandleStatus)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.String("notify_platform_url", cfg.NotifyPlatformURL),
			slog.Int("platform_timeout_seconds", cfg.Schedule.PlatformTimeoutSeconds),
		)
		serverErr <- srv.ListenAndServe()
	}()

	// Wait for shutdown signal or server error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}
