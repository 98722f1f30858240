package aggregator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rajkumaran80/findmyflight-backend/internal/models"
	"github.com/rajkumaran80/findmyflight-backend/internal/providers"
	"github.com/rajkumaran80/findmyflight-backend/internal/ratelimit"
)

const DefaultProviderTimeout = 5 * time.Second

// ProviderLookup resolves provider names to implementations.
type ProviderLookup interface {
	Get(name string) (providers.Provider, bool)
}

type ExecutorConfig struct {
	Timeout     time.Duration
	RateLimiter *ratelimit.ProviderLimiter
}

// Executor fans one request out to several providers at once. A provider that
// fails, panics or overruns its timeout only affects its own status.
type Executor struct {
	lookup ProviderLookup
	config ExecutorConfig
	log    *logrus.Entry
}

// FanOutResult holds offers in provider order and exactly one status per
// requested provider, in the order the names were given.
type FanOutResult struct {
	Flights  []models.Flight
	Statuses []models.ProviderStatus
}

func NewExecutor(lookup ProviderLookup, config ExecutorConfig) *Executor {
	if config.Timeout <= 0 {
		config.Timeout = DefaultProviderTimeout
	}
	return &Executor{
		lookup: lookup,
		config: config,
		log:    logrus.WithField("component", "executor"),
	}
}

type providerResult struct {
	flights []models.Flight
	status  models.ProviderStatus
}

func (e *Executor) Execute(ctx context.Context, names []string, req models.SearchRequest) FanOutResult {
	start := time.Now()
	results := make([]providerResult, len(names))

	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					results[i] = e.failed(start, name, models.OutcomeError, fmt.Errorf("provider panicked: %v", r))
				}
			}()
			results[i] = e.run(ctx, start, name, req)
		}(i, name)
	}
	wg.Wait()

	out := FanOutResult{
		Flights:  make([]models.Flight, 0),
		Statuses: make([]models.ProviderStatus, 0, len(names)),
	}
	for _, r := range results {
		out.Flights = append(out.Flights, r.flights...)
		out.Statuses = append(out.Statuses, r.status)
	}
	return out
}

func (e *Executor) run(ctx context.Context, start time.Time, name string, req models.SearchRequest) providerResult {
	p, ok := e.lookup.Get(name)
	if !ok {
		return e.failed(start, name, models.OutcomeError, providers.ErrNotRegistered)
	}
	name = p.Name()

	if !p.CanHandle(req) {
		return e.failed(start, name, models.OutcomeError, providers.ErrCannotHandle)
	}

	callCtx, cancel := context.WithTimeout(ctx, e.config.Timeout)
	defer cancel()

	if e.config.RateLimiter != nil {
		if err := e.config.RateLimiter.Wait(callCtx, name); err != nil {
			return e.failed(start, name, models.OutcomeError, err)
		}
	}

	type searchOutcome struct {
		flights []models.Flight
		err     error
	}
	done := make(chan searchOutcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- searchOutcome{err: fmt.Errorf("provider panicked: %v", r)}
			}
		}()
		flights, err := p.Search(callCtx, req)
		done <- searchOutcome{flights: flights, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			outcome := models.OutcomeError
			if errors.Is(res.err, context.DeadlineExceeded) {
				outcome = models.OutcomeTimeout
			}
			return e.failed(start, name, outcome, res.err)
		}

		flights := res.flights
		if flights == nil {
			flights = []models.Flight{}
		}
		e.log.WithFields(logrus.Fields{
			"provider": name,
			"results":  len(flights),
		}).Debug("Provider search completed")

		return providerResult{
			flights: flights,
			status: models.ProviderStatus{
				Provider:    name,
				Status:      models.OutcomeSuccess,
				ResultCount: len(flights),
				ElapsedMs:   time.Since(start).Milliseconds(),
			},
		}

	case <-callCtx.Done():
		err := callCtx.Err()
		if errors.Is(err, context.DeadlineExceeded) {
			return e.failed(start, name, models.OutcomeTimeout, fmt.Errorf("provider did not respond within %s: %w", e.config.Timeout, err))
		}
		return e.failed(start, name, models.OutcomeError, fmt.Errorf("search abandoned: %w", err))
	}
}

func (e *Executor) failed(start time.Time, name string, outcome models.ProviderOutcome, err error) providerResult {
	e.log.WithFields(logrus.Fields{
		"provider": name,
		"status":   outcome,
	}).WithError(err).Warn("Provider search failed")

	return providerResult{
		status: models.ProviderStatus{
			Provider:  name,
			Status:    outcome,
			Error:     err.Error(),
			ElapsedMs: time.Since(start).Milliseconds(),
		},
	}
}
