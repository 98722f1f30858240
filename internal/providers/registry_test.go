package providers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajkumaran80/findmyflight-backend/internal/models"
	"github.com/rajkumaran80/findmyflight-backend/internal/providers"
	"github.com/rajkumaran80/findmyflight-backend/internal/providers/mocks"
)

func newRegistry() *providers.Registry {
	return providers.NewRegistry(
		mocks.NewMockProvider("skyline"),
		mocks.NewMockProvider("aerofare"),
		mocks.NewMockProvider("orbit"),
	)
}

func TestRegistry_ListKeepsRegistrationOrder(t *testing.T) {
	r := newRegistry()
	assert.Equal(t, []string{"skyline", "aerofare", "orbit"}, r.List())
}

func TestRegistry_RegisterReplacesByName(t *testing.T) {
	r := newRegistry()
	replacement := mocks.NewMockProvider("AeroFare")
	r.Register(replacement)

	assert.Len(t, r.List(), 3)
	p, ok := r.Get("aerofare")
	require.True(t, ok)
	assert.Same(t, replacement, p)
}

func TestRegistry_Get(t *testing.T) {
	r := newRegistry()

	_, ok := r.Get("SKYLINE")
	assert.True(t, ok)

	_, ok = r.Get("missing")
	assert.False(t, ok)
}

func TestRegistry_Select(t *testing.T) {
	tests := []struct {
		name     string
		include  []string
		expected []string
	}{
		{"all when empty", nil, []string{"skyline", "aerofare", "orbit"}},
		{"subset in registration order", []string{"orbit", "skyline"}, []string{"skyline", "orbit"}},
		{"case insensitive", []string{"AeroFare"}, []string{"aerofare"}},
		{"unknown dropped", []string{"skyline", "ghost"}, []string{"skyline"}},
		{"only unknown", []string{"ghost"}, []string{}},
	}

	r := newRegistry()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Select(models.SearchRequest{IncludeProviders: tt.include})
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestRegistry_Health(t *testing.T) {
	up := mocks.NewMockProvider("up")
	up.On("IsHealthy").Return(true)
	down := mocks.NewMockProvider("down")
	down.On("IsHealthy").Return(false)

	r := providers.NewRegistry(up, down)
	assert.Equal(t, []models.ProviderInfo{
		{Name: "up", Healthy: true},
		{Name: "down", Healthy: false},
	}, r.Health())
}
