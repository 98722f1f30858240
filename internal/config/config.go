package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/rajkumaran80/findmyflight-backend/internal/cache"
	"github.com/rajkumaran80/findmyflight-backend/internal/ranking"
	"github.com/rajkumaran80/findmyflight-backend/internal/ratelimit"
)

const (
	CacheBackendRedis  = "redis"
	CacheBackendMemory = "memory"
	CacheBackendNone   = "none"
)

type Config struct {
	Port     string
	LogLevel string

	CacheBackend string
	CacheTTL     time.Duration
	Redis        cache.RedisConfig

	ProviderTimeout     time.Duration
	ProviderFailureRate float64
	RateLimit           ratelimit.Config

	Weights ranking.Weights
}

// Load reads an optional .env file and then the process environment.
// Malformed values fall back to their defaults with a warning.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.WithField("component", "config").Debug("No .env file found, using process environment")
	}
	return FromEnv()
}

func FromEnv() *Config {
	redisDefaults := cache.DefaultRedisConfig()
	weights := ranking.DefaultWeights()
	limits := ratelimit.DefaultConfig()

	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		LogLevel:     strings.ToLower(getEnv("LOG_LEVEL", "info")),
		CacheBackend: strings.ToLower(getEnv("CACHE_BACKEND", CacheBackendRedis)),
		CacheTTL:     getEnvDuration("CACHE_TTL", 600*time.Second),
		Redis: cache.RedisConfig{
			Host:     getEnv("REDIS_HOST", redisDefaults.Host),
			Port:     getEnv("REDIS_PORT", redisDefaults.Port),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", redisDefaults.DB),
			Timeout:  getEnvDuration("REDIS_TIMEOUT", redisDefaults.Timeout),
		},
		ProviderTimeout:     getEnvDuration("PROVIDER_TIMEOUT", 5*time.Second),
		ProviderFailureRate: getEnvFloat("PROVIDER_FAILURE_RATE", 0),
		RateLimit: ratelimit.Config{
			RequestsPerSecond: getEnvFloat("PROVIDER_RATE_LIMIT_RPS", limits.RequestsPerSecond),
			BurstSize:         getEnvInt("PROVIDER_RATE_LIMIT_BURST", limits.BurstSize),
		},
		Weights: ranking.Weights{
			Price:    getEnvFloat("RANKING_PRICE_WEIGHT", weights.Price),
			Duration: getEnvFloat("RANKING_DURATION_WEIGHT", weights.Duration),
			Stops:    getEnvFloat("RANKING_STOPS_WEIGHT", weights.Stops),
		},
	}

	switch cfg.CacheBackend {
	case CacheBackendRedis, CacheBackendMemory, CacheBackendNone:
	default:
		warnInvalid("CACHE_BACKEND", cfg.CacheBackend, CacheBackendRedis)
		cfg.CacheBackend = CacheBackendRedis
	}

	if cfg.ProviderFailureRate < 0 || cfg.ProviderFailureRate > 1 {
		warnInvalid("PROVIDER_FAILURE_RATE", cfg.ProviderFailureRate, 0)
		cfg.ProviderFailureRate = 0
	}

	return cfg
}

// ParseLogLevel falls back to info for unknown names.
func (c *Config) ParseLogLevel() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		warnInvalid("LOG_LEVEL", c.LogLevel, "info")
		return logrus.InfoLevel
	}
	return level
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		warnInvalid(key, value, fallback)
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		warnInvalid(key, value, fallback)
		return fallback
	}
	return f
}

// getEnvDuration accepts Go durations ("750ms") or a bare number of seconds.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}
	if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		warnInvalid(key, value, fallback)
		return fallback
	}
	return d
}

func warnInvalid(key string, value, fallback interface{}) {
	logrus.WithFields(logrus.Fields{
		"component": "config",
		"key":       key,
		"value":     value,
		"default":   fallback,
	}).Warn("Invalid configuration value, using default")
}
