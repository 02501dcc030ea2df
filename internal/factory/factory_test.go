package factory

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisstorage "wordled/internal/storage/redis"
)

func TestNewDefaultsToMemoryStorage(t *testing.T) {
	app, err := New(Config{RotationInterval: time.Minute})
	require.NoError(t, err)

	assert.NotNil(t, app.Storage)
	assert.NotNil(t, app.Accounts)
	assert.NotNil(t, app.Registry)
	assert.NotNil(t, app.Round)
	assert.NotNil(t, app.Dictionary)
}

func TestNewWithRedisStorage(t *testing.T) {
	mini := miniredis.RunT(t)

	cfg := redisstorage.DefaultConfig()
	cfg.URL = "redis://" + mini.Addr()

	app, err := New(Config{
		StorageType: StorageTypeRedis,
		RedisConfig: &cfg,
	})
	require.NoError(t, err)
	assert.NotNil(t, app.Storage)
}

func TestNewRedisRequiresConfig(t *testing.T) {
	_, err := New(Config{StorageType: StorageTypeRedis})
	assert.Error(t, err)
}

func TestNewRejectsUnknownStorageType(t *testing.T) {
	_, err := New(Config{StorageType: "papyrus"})
	assert.Error(t, err)
}
