package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/travel-genie/internal/api/http"
	"github.com/i474232898/travel-genie/internal/config"
	"github.com/i474232898/travel-genie/internal/obs"
	"github.com/i474232898/travel-genie/internal/scheduler"
	"github.com/i474232898/travel-genie/internal/store"
	"github.com/i474232898/travel-genie/internal/travel"
	"github.com/i474232898/travel-genie/internal/travel/providers"
)

func main() {
	if err := run(); err != nil {
		slog.Error("travel-genie stopped", "error", err)
		os.Exit(1)
	}
}

// run wires the service and blocks until a termination signal. Deferred
// cleanup runs on every return path.
func run() error {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(log)

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	planStore, closeStore, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open %s plan store: %w", cfg.StoreDriver, err)
	}
	defer closeStore()

	metrics := obs.NewMetrics()

	// Core service orchestrating providers and store.
	service := travel.NewService(planStore, buildProviders(cfg, httpClient, log), log,
		travel.WithMetrics(metrics),
		travel.WithCallTimeout(cfg.ProviderTimeout),
	)

	// Scheduler that periodically plans the watched routes.
	sched := scheduler.New(cfg, service, log)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "travel-genie",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		// A full plan waits on every provider.
		WriteTimeout: cfg.ProviderTimeout + 10*time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "travel-genie",
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	// API routes.
	httpapi.RegisterRoutes(app, service)

	go func() {
		log.Info("starting server", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("fiber server stopped", "error", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("error during shutdown", "error", err)
	}
	return nil
}

func buildProviders(cfg *config.AppConfig, client *http.Client, log *slog.Logger) travel.Providers {
	geo := providers.NewGoogleGeocoder(cfg.GoogleMapsAPIKey)

	var weatherProvider travel.WeatherProvider
	switch cfg.WeatherProvider {
	case "weatherapi":
		weatherProvider = providers.NewWeatherAPIProvider(client, cfg.WeatherAPIKey)
	case "openmeteo":
		// Open-Meteo does not require an API key, but geocoding requires a Google API key.
		weatherProvider = providers.NewOpenMeteoProvider(client, geo)
	default:
		weatherProvider = providers.NewOpenWeatherProvider(client, cfg.OpenWeatherAPIKey)
	}
	log.Info("weather provider selected", "provider", weatherProvider.Name())

	return travel.Providers{
		Weather: weatherProvider,
		Route:   providers.NewOpenRouteServiceProvider(client, cfg.ORSAPIKey, geo),
		Places:  providers.NewGooglePlacesProvider(client, cfg.GoogleMapsAPIKey, log),
		Events:  providers.NewTicketmasterProvider(client, cfg.TicketmasterAPIKey),
		Flights: providers.NewAmadeusProvider(client, cfg.AmadeusAPIKey, cfg.AmadeusAPISecret, cfg.AmadeusEnv, log),
	}
}

func openStore(cfg *config.AppConfig) (travel.PlanStore, func(), error) {
	if cfg.StoreDriver == "sqlite" {
		s, err := store.NewSQLite(cfg.StorePath, cfg.StoreMaxHistory, cfg.StoreMaxAge)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	}
	return store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge), func() {}, nil
}
