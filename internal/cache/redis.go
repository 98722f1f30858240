package cache

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Timeout  time.Duration
}

func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Host:    "localhost",
		Port:    "6379",
		DB:      0,
		Timeout: 500 * time.Millisecond,
	}
}

// RedisStore is a Store backed by a Redis server. Connectivity is tracked from
// the outcome of each command so IsConnected never blocks on the network.
type RedisStore struct {
	client    *redis.Client
	connected atomic.Bool
}

// NewRedisStore never fails on an unreachable server: the store starts
// disconnected and every command degrades to a miss until Redis answers.
func NewRedisStore(cfg RedisConfig) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:         net.JoinHostPort(cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.Timeout,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
		MaxRetries:   -1,
	})

	s := &RedisStore{client: client}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout+time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logrus.WithFields(logrus.Fields{
			"component": "cache",
			"addr":      client.Options().Addr,
		}).WithError(err).Warn("Redis unreachable, continuing without cache")
	} else {
		s.connected.Store(true)
	}

	return s
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		s.connected.Store(true)
		return nil, ErrMiss
	}
	s.track(err)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *RedisStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := s.client.Set(ctx, key, value, ttl).Err()
	s.track(err)
	return err
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	err := s.client.Del(ctx, key).Err()
	s.track(err)
	return err
}

func (s *RedisStore) FlushAll(ctx context.Context) error {
	err := s.client.FlushDB(ctx).Err()
	s.track(err)
	return err
}

func (s *RedisStore) IsConnected() bool {
	return s.connected.Load()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) track(err error) {
	s.connected.Store(err == nil)
}
