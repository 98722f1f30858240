package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Expiry(t *testing.T) {
	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemoryStore()
	s.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, s.SetWithTTL(ctx, "k", []byte("v"), 10*time.Second))

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	now = now.Add(10 * time.Second)
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	value := []byte("abc")
	require.NoError(t, s.SetWithTTL(ctx, "k", value, time.Minute))
	value[0] = 'z'

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)

	got[1] = 'z'
	again, _ := s.Get(ctx, "k")
	assert.Equal(t, []byte("abc"), again)
}

func TestNoOpStore(t *testing.T) {
	s := NewNoOpStore()
	ctx := context.Background()

	require.NoError(t, s.SetWithTTL(ctx, "k", []byte("v"), time.Minute))
	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
	assert.False(t, s.IsConnected())
}
