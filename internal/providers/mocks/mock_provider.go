package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rajkumaran80/findmyflight-backend/internal/models"
)

// MockProvider is a mock implementation of providers.Provider
type MockProvider struct {
	mock.Mock
	name string
}

func NewMockProvider(name string) *MockProvider {
	return &MockProvider{name: name}
}

func (m *MockProvider) Name() string {
	return m.name
}

func (m *MockProvider) Search(ctx context.Context, req models.SearchRequest) ([]models.Flight, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Flight), args.Error(1)
}

func (m *MockProvider) CanHandle(req models.SearchRequest) bool {
	args := m.Called(req)
	return args.Bool(0)
}

func (m *MockProvider) IsHealthy() bool {
	args := m.Called()
	return args.Bool(0)
}
