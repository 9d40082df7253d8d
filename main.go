package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mrops-br/storefront-api/internal/app/notify"
	"github.com/mrops-br/storefront-api/internal/app/service"
	"github.com/mrops-br/storefront-api/internal/app/session"
	"github.com/mrops-br/storefront-api/internal/infrastructure/config"
	"github.com/mrops-br/storefront-api/internal/infrastructure/http"
	"github.com/mrops-br/storefront-api/internal/infrastructure/http/handler"
	"github.com/mrops-br/storefront-api/internal/infrastructure/repository/memory"
	"github.com/mrops-br/storefront-api/internal/infrastructure/telemetry"
)

func main() {
	cfg := config.LoadConfig()

	// Cancelled on SIGINT/SIGTERM or when the server fails
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var telem *telemetry.Telemetry
	if cfg.OTLP.Enabled {
		var err error
		telem, err = telemetry.NewTelemetry(ctx, &cfg.OTLP)
		if err != nil {
			log.Fatalf("Failed to initialize telemetry: %v", err)
		}
	} else {
		telem = telemetry.NewNoOpTelemetry(&cfg.OTLP)
	}

	// Ensure telemetry is shutdown on exit
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := telem.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	tracer := telem.TracerProvider.Tracer("storefront-api")
	meter := telem.MeterProvider.Meter("storefront-api")
	logger := telem.Logger

	logger.Info("Starting Storefront API")

	// Repositories
	products := memory.NewProductRepository(tracer, logger)
	if err := memory.SeedProducts(ctx, products); err != nil {
		logger.Error("Failed to seed catalog", slog.String("error", err.Error()))
		os.Exit(1)
	}
	subscribers := memory.NewSubscriberRepository(tracer, logger)

	// Services
	productService := service.NewProductService(products, tracer, meter, logger)
	cartService := service.NewCartService(products, tracer, meter, logger)
	newsletterService := service.NewNewsletterService(subscribers, tracer, meter, logger)
	pageService := service.NewPageService(cfg.Site, cfg.Toast, tracer)

	// Every new visitor session gets the cart metrics listener
	factory := session.NewFactory(session.Config{
		ToastCapacity: cfg.Toast.Capacity,
		ToastDurations: notify.Durations{
			Default: cfg.Toast.DefaultDuration,
			Success: cfg.Toast.SuccessDuration,
		},
	}, cartService.Observe)
	sessions := memory.NewSessionRepository(factory, tracer, logger)
	if err := session.RegisterMetrics(meter, sessions); err != nil {
		logger.Warn("Failed to register session metrics", slog.String("error", err.Error()))
	}

	sweeper := session.NewSweeper(sessions, cfg.Session.IdleTTL, cfg.Session.SweepInterval, logger)
	sweeperDone := make(chan struct{})
	go func() {
		defer close(sweeperDone)
		sweeper.Run(ctx)
	}()

	server := http.NewServer(cfg, http.Handlers{
		Products:   handler.NewProductHandler(productService, logger),
		Cart:       handler.NewCartHandler(cartService, logger),
		Pages:      handler.NewPageHandler(pageService),
		Newsletter: handler.NewNewsletterHandler(newsletterService, logger),
	}, sessions, telem.MeterProvider, logger)

	go func() {
		if err := server.Start(); err != nil {
			logger.Error("Server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", slog.String("error", err.Error()))
	}
	<-sweeperDone

	logger.Info("Server stopped")
}
