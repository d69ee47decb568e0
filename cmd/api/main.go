package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/ticket-router/internal/api/http"
	"github.com/spec-kit/ticket-router/internal/api/http/handlers"
	"github.com/spec-kit/ticket-router/internal/auth"
	"github.com/spec-kit/ticket-router/internal/board"
	"github.com/spec-kit/ticket-router/internal/config"
	"github.com/spec-kit/ticket-router/internal/mailer"
	"github.com/spec-kit/ticket-router/internal/observability"
	"github.com/spec-kit/ticket-router/internal/oracle"
	"github.com/spec-kit/ticket-router/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := observability.NewMetrics()

	deps := service.RouterDependencies{
		Board:   board.NewMondayClient(cfg.Monday, nil, logger),
		Logger:  logger,
		Metrics: metrics,
	}

	oracleReady := false
	if cfg.Gemini.Enabled() {
		gemini, err := oracle.NewGeminiClient(ctx, cfg.Gemini, logger)
		if err != nil {
			logger.Warn("gemini oracle disabled, using rule-based gate", zap.Error(err))
		} else {
			defer gemini.Close() //nolint:errcheck
			deps.Oracle = gemini
			oracleReady = true
		}
	} else {
		logger.Info("GEMINI_API_KEY not set, using rule-based gate")
	}

	notices := mailer.New(cfg.Mail, cfg.Notice, logger)
	if notices.Enabled() {
		deps.Notifier = notices
	} else {
		logger.Info("SMTP not configured, clarification notices disabled")
	}

	router := service.NewRouterService(deps)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, handlers.Collaborators{
			Board:  cfg.Monday.APIToken != "" && cfg.Monday.BoardID != "",
			Oracle: oracleReady,
			Mailer: notices.Enabled(),
		}),
		Webhook: handlers.NewWebhookHandler(router),
		Metrics: handlers.NewMetricsHandler(metrics),
		Secret:  auth.NewSecretMiddleware(cfg.Auth),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
