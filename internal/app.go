package internal

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal/ai"
	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/game"
	"github.com/lk16/reversi/internal/middleware"
	"github.com/lk16/reversi/internal/repository"
	"github.com/lk16/reversi/internal/routes"
	"github.com/lk16/reversi/internal/services"
)

const (
	defaultConcurrency  = 256 * 1024 // Maximum number of concurrent connections per worker
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 10 * time.Second
	defaultIdleTimeout  = 5 * time.Second
	defaultBodyLimit    = 64 * 1024 // 64KB

	schemaTimeout = 10 * time.Second
)

var errPreforkWithoutRedis = errors.New("prefork needs Redis, in-memory sessions are not shared between worker processes")

// SetupApp loads the configuration from the environment, connects to the configured services and creates the app.
func SetupApp() (*fiber.App, *config.ServerConfig, *services.Services) {
	// Load configuration
	cfg := config.LoadServerConfig()

	if err := validateSessionStorage(cfg); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	// Initialize services
	services, err := services.InitServices(cfg)
	if err != nil {
		slog.Error("Failed to initialize services", "error", err)
		os.Exit(1)
	}

	if repo := repository.NewResultRepositoryFromServices(services); repo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), schemaTimeout)
		defer cancel()

		if err = repo.CreateSchema(ctx); err != nil {
			slog.Error("Failed to create database schema", "error", err)
			os.Exit(1)
		}
	}

	return NewApp(cfg, services), cfg, services
}

// NewApp creates the app for a configuration and connected services.
func NewApp(cfg *config.ServerConfig, services *services.Services) *fiber.App {
	// Create Fiber app
	app := fiber.New(fiber.Config{
		Prefork:      cfg.Prefork,
		Concurrency:  defaultConcurrency,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
		BodyLimit:    defaultBodyLimit,
	})

	controller := newController(cfg, services)

	// Setup connections to external services, config and the game controller in Fiber app
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("services", services)
		c.Locals("config", cfg)
		c.Locals("controller", controller)
		return c.Next()
	})

	// Add logging middleware
	app.Use(middleware.Logging())

	// Setup all routes
	routes.SetupRoutes(app)

	return app
}

// validateSessionStorage checks that all worker processes can see the same sessions.
func validateSessionStorage(cfg *config.ServerConfig) error {
	if cfg.Prefork && cfg.RedisURL == "" {
		return errPreforkWithoutRedis
	}
	return nil
}

// newController stores sessions in Redis and archives results in Postgres, if they are configured.
func newController(cfg *config.ServerConfig, services *services.Services) *game.Controller {
	var store game.SessionStore
	if services.Redis != nil {
		store = repository.NewRedisSessionStore(services.Redis, cfg.SessionTTL)
	} else {
		store = repository.NewMemorySessionStore(cfg.SessionTTL)
	}

	var archive game.ResultArchive
	if repo := repository.NewResultRepositoryFromServices(services); repo != nil {
		archive = repo
	}

	bot := ai.NewBotWithSeed(uint64(time.Now().UnixNano())) //nolint:gosec

	return game.NewController(store, archive, bot, cfg.CPUDelay)
}
