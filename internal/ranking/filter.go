package ranking

import (
	"strings"

	"github.com/rajkumaran80/findmyflight-backend/internal/models"
)

// Criteria fields are optional and combine with AND.
type Criteria struct {
	MaxPrice    *float64
	MaxStops    *int
	MaxDuration *int
	Airlines    []string
}

func (c Criteria) IsEmpty() bool {
	return c.MaxPrice == nil && c.MaxStops == nil && c.MaxDuration == nil && len(c.Airlines) == 0
}

// CriteriaFromRequest picks the filters a search request carries.
func CriteriaFromRequest(req models.SearchRequest) Criteria {
	return Criteria{
		MaxPrice: req.MaxPrice,
		Airlines: req.Airlines,
	}
}

// Filter returns the flights matching criteria. With no criteria set the
// input slice is returned as is.
func Filter(flights []models.Flight, criteria Criteria) []models.Flight {
	if criteria.IsEmpty() {
		return flights
	}

	airlines := airlineSet(criteria.Airlines)
	result := make([]models.Flight, 0, len(flights))
	for _, f := range flights {
		if matches(f, criteria, airlines) {
			result = append(result, f)
		}
	}

	return result
}

func matches(f models.Flight, criteria Criteria, airlines map[string]struct{}) bool {
	if criteria.MaxPrice != nil && f.Price.Amount > *criteria.MaxPrice {
		return false
	}

	if criteria.MaxStops != nil && f.Stops > *criteria.MaxStops {
		return false
	}

	if criteria.MaxDuration != nil && f.Duration.TotalMinutes > *criteria.MaxDuration {
		return false
	}

	if len(airlines) > 0 {
		if _, ok := airlines[strings.ToUpper(f.Airline.Code)]; !ok {
			return false
		}
	}

	return true
}

func airlineSet(codes []string) map[string]struct{} {
	set := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c != "" {
			set[c] = struct{}{}
		}
	}
	return set
}
