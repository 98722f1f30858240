package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Store.Get when the key is absent or expired.
var ErrMiss = errors.New("cache: miss")

// Store is the key-value backend behind the Gate.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	FlushAll(ctx context.Context) error
	IsConnected() bool
}

// NoOpStore disables caching: every read misses and every write is dropped.
type NoOpStore struct{}

func NewNoOpStore() *NoOpStore {
	return &NoOpStore{}
}

func (s *NoOpStore) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, ErrMiss
}

func (s *NoOpStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return nil
}

func (s *NoOpStore) Delete(ctx context.Context, key string) error {
	return nil
}

func (s *NoOpStore) FlushAll(ctx context.Context) error {
	return nil
}

func (s *NoOpStore) IsConnected() bool {
	return false
}
