package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/rajkumaran80/findmyflight-backend/internal/aggregator"
	"github.com/rajkumaran80/findmyflight-backend/internal/cache"
	"github.com/rajkumaran80/findmyflight-backend/internal/config"
	"github.com/rajkumaran80/findmyflight-backend/internal/handler"
	"github.com/rajkumaran80/findmyflight-backend/internal/providers"
	"github.com/rajkumaran80/findmyflight-backend/internal/ranking"
	"github.com/rajkumaran80/findmyflight-backend/internal/ratelimit"
)

func main() {
	cfg := config.Load()

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(cfg.ParseLogLevel())
	log := logrus.WithField("component", "server")

	engine, err := ranking.NewEngine(cfg.Weights)
	if err != nil {
		log.WithError(err).Fatal("Invalid ranking weights")
	}

	registry, err := initializeProviders(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize providers")
	}
	log.WithField("providers", registry.List()).Info("Initialized flight providers")

	gate := cache.NewGate(newCacheStore(cfg))
	defer gate.Close()

	agg := aggregator.NewAggregator(registry, engine, gate, aggregator.Config{
		ProviderTimeout: cfg.ProviderTimeout,
		CacheTTL:        cfg.CacheTTL,
		RateLimiter:     ratelimit.NewProviderLimiter(cfg.RateLimit),
	})

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	handler.NewSearchHandler(agg).Register(e)

	go func() {
		log.WithField("port", cfg.Port).Info("Starting flight aggregator server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
	}
}

func newCacheStore(cfg *config.Config) cache.Store {
	log := logrus.WithFields(logrus.Fields{
		"component": "server",
		"backend":   cfg.CacheBackend,
		"ttl":       cfg.CacheTTL.String(),
	})

	switch cfg.CacheBackend {
	case config.CacheBackendNone:
		log.Info("Cache disabled")
		return cache.NewNoOpStore()
	case config.CacheBackendMemory:
		log.Info("In-memory cache enabled")
		return cache.NewMemoryStore()
	default:
		log.WithField("addr", cfg.Redis.Host+":"+cfg.Redis.Port).Info("Redis cache enabled")
		return cache.NewRedisStore(cfg.Redis)
	}
}

func initializeProviders(cfg *config.Config) (*providers.Registry, error) {
	behavior := providers.Behavior{
		MinLatency:  50 * time.Millisecond,
		MaxLatency:  300 * time.Millisecond,
		FailureRate: cfg.ProviderFailureRate,
	}

	skyline, err := providers.NewSkylineProvider(behavior)
	if err != nil {
		return nil, err
	}

	aerofare, err := providers.NewAeroFareProvider(behavior)
	if err != nil {
		return nil, err
	}

	return providers.NewRegistry(skyline, aerofare), nil
}
