package cache

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rajkumaran80/findmyflight-backend/internal/models"
)

// Gate is the cache-aside layer in front of the provider fan-out. Every
// operation is best-effort: backend and serialization failures are logged and
// absorbed, reads degrade to a miss and writes to a no-op.
type Gate struct {
	store Store
	log   *logrus.Entry
}

func NewGate(store Store) *Gate {
	if store == nil {
		store = NewNoOpStore()
	}
	return &Gate{
		store: store,
		log:   logrus.WithField("component", "cache"),
	}
}

// Get returns the cached result for key with CacheHit set.
func (g *Gate) Get(ctx context.Context, key string) (*models.SearchResult, bool) {
	data, err := g.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			g.log.WithError(err).WithField("key", key).Warn("Cache read failed, treating as miss")
		}
		return nil, false
	}

	var result models.SearchResult
	if err := json.Unmarshal(data, &result); err != nil {
		g.log.WithError(err).WithField("key", key).Warn("Discarding undecodable cache entry")
		return nil, false
	}

	result.CacheHit = true
	return &result, true
}

// Set stores a copy of result with CacheHit cleared.
func (g *Gate) Set(ctx context.Context, key string, result *models.SearchResult, ttl time.Duration) {
	if result == nil {
		return
	}

	stored := *result
	stored.CacheHit = false

	data, err := json.Marshal(&stored)
	if err != nil {
		g.log.WithError(err).WithField("key", key).Warn("Cache entry not serializable, skipping write")
		return
	}

	if err := g.store.SetWithTTL(ctx, key, data, ttl); err != nil {
		g.log.WithError(err).WithField("key", key).Warn("Cache write failed")
		return
	}

	g.log.WithFields(logrus.Fields{
		"key": key,
		"ttl": ttl.String(),
	}).Debug("Cached search result")
}

func (g *Gate) Delete(ctx context.Context, key string) {
	if err := g.store.Delete(ctx, key); err != nil {
		g.log.WithError(err).WithField("key", key).Warn("Cache delete failed")
	}
}

// Flush drops every entry. Unlike the per-key operations it reports the
// backend error so an operator-triggered flush can surface it.
func (g *Gate) Flush(ctx context.Context) error {
	if err := g.store.FlushAll(ctx); err != nil {
		g.log.WithError(err).Warn("Cache flush failed")
		return err
	}
	return nil
}

func (g *Gate) Healthy() bool {
	return g.store.IsConnected()
}

// Close releases the backend if it holds resources.
func (g *Gate) Close() error {
	if c, ok := g.store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
