package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/krishimitra/farm-weather/internal/api/http"
	"github.com/krishimitra/farm-weather/internal/config"
	"github.com/krishimitra/farm-weather/internal/openweather"
	"github.com/krishimitra/farm-weather/internal/scheduler"
	"github.com/krishimitra/farm-weather/internal/store"
	"github.com/krishimitra/farm-weather/internal/weather"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.OpenWeatherAPIKey == "" {
		log.Println("WARN: OPENWEATHER_API_KEY is not set; all queries will fail")
	}

	// Provider client with circuit breaker.
	client := openweather.New(openweather.Config{
		APIKey:         cfg.OpenWeatherAPIKey,
		BaseURL:        cfg.WeatherBaseURL,
		GeoURL:         cfg.GeoBaseURL,
		IconURL:        cfg.IconBaseURL,
		OneCallEnabled: cfg.OneCallEnabled,
		Timeout:        cfg.HTTPTimeout,
	})

	// In-memory bundle store with configured retention.
	bundles := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)

	// Core service orchestrating the fetch/aggregate pipeline.
	service := weather.NewService(client, bundles)

	// Scheduler keeping the most recent query fresh.
	sched := scheduler.New(service, cfg.RefreshInterval)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "farm-weather",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
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
			"service": "farm-weather",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service, bundles, cfg.DefaultLang)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
