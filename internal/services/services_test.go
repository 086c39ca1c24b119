package services

import (
	"testing"

	"github.com/lk16/reversi/internal/config"
	"github.com/stretchr/testify/require"
)

func TestInitServicesWithoutBackends(t *testing.T) {
	services, err := InitServices(&config.ServerConfig{})
	require.NoError(t, err)
	require.Nil(t, services.Postgres)
	require.Nil(t, services.Redis)

	services.Close()
}

func TestInitRedisInvalidURL(t *testing.T) {
	_, err := InitRedis("not-a-redis-url")
	require.ErrorContains(t, err, "error parsing Redis URL")
}

func TestInitPostgresInvalidURL(t *testing.T) {
	_, err := InitPostgres("postgres://%zz")
	require.ErrorContains(t, err, "error connecting to database")
}
