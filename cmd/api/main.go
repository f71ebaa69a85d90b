package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"task-intent/config"
	_ "task-intent/docs" // Swagger docs
	"task-intent/internal/bootstrap"
	"task-intent/internal/httpserver"
	"task-intent/internal/interpret"
	"task-intent/internal/interpret/usecase"
	"task-intent/pkg/log"
)

// @title       Task Intent API
// @description Interprets free-form text into tasks and calendar events.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Task Intent...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Timezone: %s, rule engine: %s", cfg.Parser.Timezone, cfg.Parser.RuleEngine)

	// 3. Interpret domain
	interpretUC, err := bootstrap.NewInterpreter(ctx, logger, cfg, bootstrap.Options{
		Metrics: usecase.DefaultMetrics(),
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize interpreter: ", err)
		return
	}
	if len(cfg.Parser.WarmupInputs) > 0 {
		if _, err := interpretUC.Warm(ctx, interpret.WarmInput{Texts: cfg.Parser.WarmupInputs}); err != nil {
			logger.Warn(ctx, "Cache warm-up interrupted: ", err)
		}
	}

	// 4. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:           logger,
		Port:             cfg.HTTPServer.Port,
		Mode:             cfg.HTTPServer.Mode,
		Environment:      cfg.Environment.Name,
		InterpretUseCase: interpretUC,
		RateLimitPerMin:  cfg.RateLimit.PerMin,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 5. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
