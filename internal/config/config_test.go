package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/rajkumaran80/findmyflight-backend/internal/ranking"
)

var configKeys = []string{
	"PORT", "LOG_LEVEL", "CACHE_BACKEND", "CACHE_TTL",
	"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB", "REDIS_TIMEOUT",
	"PROVIDER_TIMEOUT", "PROVIDER_FAILURE_RATE",
	"PROVIDER_RATE_LIMIT_RPS", "PROVIDER_RATE_LIMIT_BURST",
	"RANKING_PRICE_WEIGHT", "RANKING_DURATION_WEIGHT", "RANKING_STOPS_WEIGHT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := FromEnv()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, CacheBackendRedis, cfg.CacheBackend)
	assert.Equal(t, 600*time.Second, cfg.CacheTTL)
	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, "6379", cfg.Redis.Port)
	assert.Equal(t, 500*time.Millisecond, cfg.Redis.Timeout)
	assert.Equal(t, 5*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, 0.0, cfg.ProviderFailureRate)
	assert.Equal(t, 10.0, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 20, cfg.RateLimit.BurstSize)
	assert.Equal(t, ranking.DefaultWeights(), cfg.Weights)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("CACHE_BACKEND", "Memory")
	t.Setenv("CACHE_TTL", "120")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("REDIS_TIMEOUT", "250ms")
	t.Setenv("PROVIDER_TIMEOUT", "2s")
	t.Setenv("PROVIDER_FAILURE_RATE", "0.25")
	t.Setenv("RANKING_PRICE_WEIGHT", "0.5")
	t.Setenv("RANKING_DURATION_WEIGHT", "0.3")
	t.Setenv("RANKING_STOPS_WEIGHT", "0.2")

	cfg := FromEnv()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, CacheBackendMemory, cfg.CacheBackend)
	assert.Equal(t, 2*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, 250*time.Millisecond, cfg.Redis.Timeout)
	assert.Equal(t, 2*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, 0.25, cfg.ProviderFailureRate)
	assert.Equal(t, ranking.Weights{Price: 0.5, Duration: 0.3, Stops: 0.2}, cfg.Weights)
}

func TestFromEnv_InvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("CACHE_BACKEND", "memcached")
	t.Setenv("CACHE_TTL", "soon")
	t.Setenv("REDIS_DB", "zero")
	t.Setenv("PROVIDER_TIMEOUT", "-1s")
	t.Setenv("PROVIDER_FAILURE_RATE", "2")
	t.Setenv("PROVIDER_RATE_LIMIT_BURST", "lots")
	t.Setenv("RANKING_PRICE_WEIGHT", "heavy")

	cfg := FromEnv()
	assert.Equal(t, CacheBackendRedis, cfg.CacheBackend)
	assert.Equal(t, 600*time.Second, cfg.CacheTTL)
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, 5*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, 0.0, cfg.ProviderFailureRate)
	assert.Equal(t, 20, cfg.RateLimit.BurstSize)
	assert.Equal(t, 0.60, cfg.Weights.Price)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, (&Config{LogLevel: "debug"}).ParseLogLevel())
	assert.Equal(t, logrus.InfoLevel, (&Config{LogLevel: "chatty"}).ParseLogLevel())
}
