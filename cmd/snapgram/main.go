package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lcalzada-xor/snapgram/internal/app"
	"github.com/lcalzada-xor/snapgram/internal/config"
	"github.com/lcalzada-xor/snapgram/internal/logging"
	"github.com/lcalzada-xor/snapgram/internal/telemetry"
)

func main() {
	// load config
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	// Setup Structured Logging
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	// Initialize Tracing
	if cfg.TracingEnabled {
		shutdownTracer, err := telemetry.InitTracer(context.Background(), telemetry.TracingConfig{
			ServiceName: cfg.Tracing.ServiceName,
			Environment: cfg.Tracing.Environment,
			SampleRatio: cfg.Tracing.SampleRatio,
		})
		if err != nil {
			logger.WithError(err).Error("failed to init tracer")
		} else {
			defer func() {
				if err := shutdownTracer(context.Background()); err != nil {
					logger.WithError(err).Error("failed to shutdown tracer")
				}
			}()
		}
	}

	// Initialize Application
	application, err := app.New(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to initialize application")
	}
	defer application.Close()

	// Root Context with cancellation on Interrupt
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger.WithField("version", telemetry.Version).Info("snapgram starting")

	// Run Application
	if err := application.Run(ctx); err != nil {
		logger.WithError(err).Error("application error")
		cancel()
	}
}
