package providers

import (
	"context"
	"errors"

	"github.com/rajkumaran80/findmyflight-backend/internal/models"
)

var (
	ErrNotRegistered    = errors.New("provider is not registered")
	ErrCannotHandle     = errors.New("provider cannot handle this request")
	ErrTemporaryFailure = errors.New("temporary service unavailable")
)

// Provider is a flight data source. Search returns offers already normalized
// to models.Flight; CanHandle lets a provider decline a request up front.
type Provider interface {
	Name() string
	Search(ctx context.Context, req models.SearchRequest) ([]models.Flight, error)
	CanHandle(req models.SearchRequest) bool
	IsHealthy() bool
}

type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return e.Provider + ": " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func NewProviderError(provider string, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Err:      err,
	}
}
