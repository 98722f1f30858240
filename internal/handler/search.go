package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rajkumaran80/findmyflight-backend/internal/models"
	"github.com/rajkumaran80/findmyflight-backend/internal/ranking"
)

// FlightSearcher is the search surface the handlers expose over HTTP.
type FlightSearcher interface {
	SearchFlights(ctx context.Context, req models.SearchRequest) *models.SearchResult
	ValidateSearchParams(req models.SearchRequest) models.ValidationResult
	Providers() []models.ProviderInfo
	FlushCache(ctx context.Context) error
	CacheHealthy() bool
}

type SearchHandler struct {
	searcher FlightSearcher
}

func NewSearchHandler(searcher FlightSearcher) *SearchHandler {
	return &SearchHandler{searcher: searcher}
}

func (h *SearchHandler) Register(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/flights/search", h.Search)
	api.POST("/flights/validate", h.Validate)
	api.GET("/providers", h.Providers)
	api.DELETE("/cache", h.FlushCache)
	e.GET("/health", h.Health)
}

func (h *SearchHandler) Search(c echo.Context) error {
	startTime := time.Now()

	var req models.SearchRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Failed to parse request body: "+err.Error())
	}

	validation := h.searcher.ValidateSearchParams(req)
	if !validation.Valid {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: "Search parameters are invalid",
			Code:    http.StatusBadRequest,
			Details: validation.Errors,
		})
	}

	result := h.searcher.SearchFlights(c.Request().Context(), req)

	return c.JSON(http.StatusOK, models.SearchResponse{
		SearchResult: result,
		PriceStats:   ranking.PriceStats(result.Flights),
		SearchTimeMs: time.Since(startTime).Milliseconds(),
	})
}

func (h *SearchHandler) Validate(c echo.Context) error {
	var req models.SearchRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Failed to parse request body: "+err.Error())
	}
	return c.JSON(http.StatusOK, h.searcher.ValidateSearchParams(req))
}

func (h *SearchHandler) Providers(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"providers": h.searcher.Providers(),
	})
}

func (h *SearchHandler) FlushCache(c echo.Context) error {
	if err := h.searcher.FlushCache(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Error:   "cache_unavailable",
			Message: "Failed to flush cache: " + err.Error(),
			Code:    http.StatusServiceUnavailable,
		})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status": "flushed",
	})
}

func (h *SearchHandler) Health(c echo.Context) error {
	cacheStatus := "disconnected"
	if h.searcher.CacheHealthy() {
		cacheStatus = "connected"
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"cache":  cacheStatus,
	})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "invalid_request",
		Message: message,
		Code:    http.StatusBadRequest,
	})
}
