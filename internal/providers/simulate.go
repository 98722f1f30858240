package providers

import (
	"context"
	"math/rand"
	"sync/atomic"
	"time"
)

// Behavior shapes how a fixture provider imitates a remote API.
type Behavior struct {
	MinLatency  time.Duration
	MaxLatency  time.Duration
	FailureRate float64
}

func (b Behavior) simulate(ctx context.Context) error {
	delay := b.MinLatency
	if span := b.MaxLatency - b.MinLatency; span > 0 {
		delay += time.Duration(rand.Int63n(int64(span)))
	}

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if b.FailureRate > 0 && rand.Float64() < b.FailureRate {
		return ErrTemporaryFailure
	}
	return nil
}

// healthTracker reflects the outcome of the most recent call.
type healthTracker struct {
	unhealthy atomic.Bool
}

func (h *healthTracker) record(err error) {
	h.unhealthy.Store(err != nil)
}

func (h *healthTracker) healthy() bool {
	return !h.unhealthy.Load()
}
