package aggregator

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/rajkumaran80/findmyflight-backend/internal/cache"
	"github.com/rajkumaran80/findmyflight-backend/internal/models"
	"github.com/rajkumaran80/findmyflight-backend/internal/providers"
	"github.com/rajkumaran80/findmyflight-backend/internal/ranking"
	"github.com/rajkumaran80/findmyflight-backend/internal/ratelimit"
)

const DefaultCacheTTL = 600 * time.Second

// Registry is the part of providers.Registry the aggregator depends on.
type Registry interface {
	ProviderLookup
	Select(req models.SearchRequest) []string
	Health() []models.ProviderInfo
}

type Config struct {
	ProviderTimeout time.Duration
	CacheTTL        time.Duration
	RateLimiter     *ratelimit.ProviderLimiter
}

// Aggregator runs the search pipeline: cache read, provider selection,
// fan-out, filtering, deduplication, ranking and cache write.
type Aggregator struct {
	registry Registry
	executor *Executor
	engine   *ranking.Engine
	cache    *cache.Gate
	ttl      time.Duration

	now   func() time.Time
	newID func() string
	log   *logrus.Entry
}

func NewAggregator(registry Registry, engine *ranking.Engine, gate *cache.Gate, config Config) *Aggregator {
	if config.CacheTTL <= 0 {
		config.CacheTTL = DefaultCacheTTL
	}
	if gate == nil {
		gate = cache.NewGate(cache.NewNoOpStore())
	}

	return &Aggregator{
		registry: registry,
		executor: NewExecutor(registry, ExecutorConfig{
			Timeout:     config.ProviderTimeout,
			RateLimiter: config.RateLimiter,
		}),
		engine: engine,
		cache:  gate,
		ttl:    config.CacheTTL,
		now:    time.Now,
		newID:  uuid.NewString,
		log:    logrus.WithField("component", "aggregator"),
	}
}

// SearchFlights never fails: provider problems are reported per provider in
// the result and cache problems are absorbed by the gate.
func (a *Aggregator) SearchFlights(ctx context.Context, req models.SearchRequest) *models.SearchResult {
	req.Normalize()
	key := cache.GenerateKey(req)

	if cached, ok := a.cache.Get(ctx, key); ok {
		a.log.WithFields(logrus.Fields{
			"search_id": cached.SearchID,
			"route":     req.Origin + "-" + req.Destination,
		}).Debug("Serving search from cache")
		return cached
	}

	names := a.registry.Select(req)
	if len(names) == 0 {
		a.log.WithField("include_providers", req.IncludeProviders).Warn("No providers available for search")
		return &models.SearchResult{
			SearchID:         a.newID(),
			Status:           models.StatusError,
			Request:          req,
			Flights:          []models.Flight{},
			ProvidersQueried: []models.ProviderStatus{},
			Timestamp:        a.now(),
		}
	}

	fanOut := a.executor.Execute(ctx, names, req)

	flights := ranking.Filter(fanOut.Flights, ranking.CriteriaFromRequest(req))
	flights = Dedupe(flights)
	flights = a.engine.Rank(flights)

	result := &models.SearchResult{
		SearchID:         a.newID(),
		Status:           overallStatus(fanOut.Statuses),
		Request:          req,
		Flights:          flights,
		TotalCount:       len(flights),
		ProvidersQueried: fanOut.Statuses,
		Timestamp:        a.now(),
	}

	a.log.WithFields(logrus.Fields{
		"search_id": result.SearchID,
		"status":    result.Status,
		"providers": len(names),
		"raw":       len(fanOut.Flights),
		"results":   result.TotalCount,
	}).Info("Search completed")

	// results of a cancelled request are never cached
	if err := ctx.Err(); err != nil {
		a.log.WithError(err).WithField("search_id", result.SearchID).Debug("Request cancelled, result not cached")
		return result
	}

	a.cache.Set(ctx, key, result, a.ttl)
	return result
}

func (a *Aggregator) ValidateSearchParams(req models.SearchRequest) models.ValidationResult {
	req.Normalize()
	return req.Validate(a.now())
}

func (a *Aggregator) Providers() []models.ProviderInfo {
	return a.registry.Health()
}

func (a *Aggregator) FlushCache(ctx context.Context) error {
	return a.cache.Flush(ctx)
}

func (a *Aggregator) CacheHealthy() bool {
	return a.cache.Healthy()
}

func overallStatus(statuses []models.ProviderStatus) models.SearchStatus {
	succeeded := 0
	for _, s := range statuses {
		if s.Status == models.OutcomeSuccess {
			succeeded++
		}
	}

	switch {
	case succeeded == 0:
		return models.StatusError
	case succeeded == len(statuses):
		return models.StatusSuccess
	default:
		return models.StatusPartial
	}
}

var _ Registry = (*providers.Registry)(nil)
