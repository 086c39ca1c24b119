package tests

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal"
	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/services"
)

const (
	TestUsername = "test-user"
	TestPassword = "test-password"
	TestToken    = "test-token"
)

// TestConfig returns a configuration without Redis and Postgres.
func TestConfig() *config.ServerConfig {
	return &config.ServerConfig{
		ServerHost:        "localhost",
		ServerPort:        "3000",
		Prefork:           false,
		BasicAuthUsername: TestUsername,
		BasicAuthPassword: TestPassword,
		Token:             TestToken,
		SessionTTL:        time.Hour,
	}
}

// NewTestApp creates an app that keeps sessions in memory and does not archive results.
func NewTestApp() *fiber.App {
	return internal.NewApp(TestConfig(), &services.Services{})
}
