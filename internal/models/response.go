package models

import "time"

type SearchStatus string

const (
	StatusSuccess SearchStatus = "success"
	StatusPartial SearchStatus = "partial"
	StatusError   SearchStatus = "error"
)

type ProviderOutcome string

const (
	OutcomeSuccess ProviderOutcome = "success"
	OutcomeError   ProviderOutcome = "error"
	OutcomeTimeout ProviderOutcome = "timeout"
)

// ProviderStatus reports one provider's part in a single search. ElapsedMs is
// measured from the start of the fan-out, not from the provider's own call.
type ProviderStatus struct {
	Provider    string          `json:"provider"`
	Status      ProviderOutcome `json:"status"`
	ResultCount int             `json:"result_count"`
	Error       string          `json:"error,omitempty"`
	ElapsedMs   int64           `json:"elapsed_ms"`
}

type SearchResult struct {
	SearchID         string           `json:"search_id"`
	Status           SearchStatus     `json:"status"`
	Request          SearchRequest    `json:"request"`
	Flights          []Flight         `json:"flights"`
	TotalCount       int              `json:"total_count"`
	ProvidersQueried []ProviderStatus `json:"providers_queried"`
	Timestamp        time.Time        `json:"timestamp"`
	CacheHit         bool             `json:"cache_hit"`
}

type PriceStats struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Average float64 `json:"average"`
	Median  float64 `json:"median"`
}

type SearchResponse struct {
	*SearchResult
	PriceStats   PriceStats `json:"price_stats"`
	SearchTimeMs int64      `json:"search_time_ms"`
}

type ProviderInfo struct {
	Name    string `json:"name"`
	Healthy bool   `json:"healthy"`
}

type ErrorResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message"`
	Code    int      `json:"code"`
	Details []string `json:"details,omitempty"`
}
