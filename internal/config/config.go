package config

import (
	"log/slog"
	"os"
	"time"
)

const (
	defaultSessionTTL = 24 * time.Hour
	defaultCPUDelay   = 0 * time.Second
)

// ServerConfig holds all configuration values loaded from environment variables.
type ServerConfig struct {
	ServerHost        string
	ServerPort        string
	Prefork           bool
	BasicAuthUsername string
	BasicAuthPassword string
	Token             string

	// RedisURL is optional, sessions are kept in memory if it is empty.
	RedisURL string

	// PostgresURL is optional, finished games are not archived if it is empty.
	PostgresURL string

	// SessionTTL is how long an untouched game session is kept.
	SessionTTL time.Duration

	// CPUDelay is the pause before each computer move, so clients can show it "thinking".
	CPUDelay time.Duration
}

// LoadServerConfig loads configuration from environment variables.
func LoadServerConfig() *ServerConfig {
	return &ServerConfig{
		ServerHost:        getEnvMust("REVERSI_SERVER_HOST"),
		ServerPort:        getEnvMust("REVERSI_SERVER_PORT"),
		Prefork:           getEnvMustBool("REVERSI_PREFORK"),
		BasicAuthUsername: getEnvMust("REVERSI_BASIC_AUTH_USER"),
		BasicAuthPassword: getEnvMust("REVERSI_BASIC_AUTH_PASS"),
		Token:             getEnvMust("REVERSI_TOKEN"),
		RedisURL:          os.Getenv("REVERSI_REDIS_URL"),
		PostgresURL:       os.Getenv("REVERSI_POSTGRES_URL"),
		SessionTTL:        getEnvDuration("REVERSI_SESSION_TTL", defaultSessionTTL),
		CPUDelay:          getEnvDuration("REVERSI_CPU_DELAY", defaultCPUDelay),
	}
}

// getEnvMust either returns the environment variable or logs a fatal error if it is not set.
func getEnvMust(key string) string {
	value := os.Getenv(key)
	if value == "" {
		slog.Error("Environment variable is not set", "key", key)
		os.Exit(1)
	}
	return value
}

func getEnvMustBool(key string) bool {
	value := getEnvMust(key)

	if value != "true" && value != "false" {
		slog.Error("Cannot load environment variable, it must be \"true\" or \"false\"", "key", key, "value", value)
		os.Exit(1)
	}

	return value == "true"
}

// getEnvDuration parses an optional duration such as "1h30m", returning fallback if it is not set.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	duration, err := time.ParseDuration(value)
	if err != nil || duration < 0 {
		slog.Error("Cannot load environment variable, it must be a non-negative duration", "key", key, "value", value)
		os.Exit(1)
	}

	return duration
}
