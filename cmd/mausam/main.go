package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/mausamlabs/mausam/internal/api/http"
	"github.com/mausamlabs/mausam/internal/config"
	"github.com/mausamlabs/mausam/internal/gazetteer"
	"github.com/mausamlabs/mausam/internal/provider"
	"github.com/mausamlabs/mausam/internal/scheduler"
	"github.com/mausamlabs/mausam/internal/session"
	"github.com/mausamlabs/mausam/internal/store"
	"github.com/mausamlabs/mausam/internal/weather"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Embedded location gazetteer.
	gaz, err := gazetteer.Load()
	if err != nil {
		log.Fatalf("failed to load gazetteer: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Upstream provider with resilience (backoff + circuit breaker). An empty
	// API key is fine; the service serves synthetic data instead.
	source := provider.NewOpenWeatherClient(httpClient, cfg.OpenWeatherAPIKey)

	// Synthetic fallback generator.
	gen := weather.NewGenerator(rand.New(rand.NewSource(time.Now().UnixNano())))

	// Core service orchestrating resolution, fetching, and normalization.
	service := weather.NewService(gaz, source, gen)

	// Favorites list and its periodic refresh.
	favorites := store.NewFavoritesStore(cfg.FavoritesMax)
	sched := scheduler.New(favorites, cfg.RefreshInterval, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "mausam",
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
			"status":    "ok",
			"service":   "mausam",
			"locations": gaz.Len(),
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service, favorites, session.NewTracker())

	// Start server with graceful shutdown
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
