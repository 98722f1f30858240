package ranking

import (
	"sort"

	"github.com/rajkumaran80/findmyflight-backend/internal/models"
)

// PriceStats summarizes the price field. An empty input yields zeros.
func PriceStats(flights []models.Flight) models.PriceStats {
	if len(flights) == 0 {
		return models.PriceStats{}
	}

	prices := make([]float64, len(flights))
	sum := 0.0
	for i, f := range flights {
		prices[i] = f.Price.Amount
		sum += f.Price.Amount
	}
	sort.Float64s(prices)

	n := len(prices)
	median := prices[n/2]
	if n%2 == 0 {
		median = (prices[n/2-1] + prices[n/2]) / 2
	}

	return models.PriceStats{
		Min:     round2(prices[0]),
		Max:     round2(prices[n-1]),
		Average: round2(sum / float64(n)),
		Median:  round2(median),
	}
}
