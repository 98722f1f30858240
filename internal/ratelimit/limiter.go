package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/time/rate"
)

// ProviderLimiter keeps one token bucket per provider name so a burst of
// searches cannot exceed what an upstream provider tolerates.
type ProviderLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	defaults Config
}

type Config struct {
	RequestsPerSecond float64
	BurstSize         int
}

func DefaultConfig() Config {
	return Config{
		RequestsPerSecond: 10,
		BurstSize:         20,
	}
}

func NewProviderLimiter(config Config) *ProviderLimiter {
	return &ProviderLimiter{
		limiters: make(map[string]*rate.Limiter),
		defaults: config,
	}
}

func NewProviderLimiterWithDefaults() *ProviderLimiter {
	return NewProviderLimiter(DefaultConfig())
}

func (p *ProviderLimiter) GetLimiter(provider string) *rate.Limiter {
	key := strings.ToLower(provider)

	p.mu.RLock()
	limiter, exists := p.limiters[key]
	p.mu.RUnlock()

	if exists {
		return limiter
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if limiter, exists = p.limiters[key]; exists {
		return limiter
	}

	limiter = newLimiter(p.defaults.RequestsPerSecond, p.defaults.BurstSize)
	p.limiters[key] = limiter
	return limiter
}

func (p *ProviderLimiter) SetProviderLimit(provider string, rps float64, burst int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.limiters[strings.ToLower(provider)] = newLimiter(rps, burst)
}

// Wait blocks until the provider has a token or ctx is done.
func (p *ProviderLimiter) Wait(ctx context.Context, provider string) error {
	if err := p.GetLimiter(provider).Wait(ctx); err != nil {
		return fmt.Errorf("rate limit %s: %w", provider, err)
	}
	return nil
}

// A non-positive rate disables limiting.
func newLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}
