package aggregator

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/rajkumaran80/findmyflight-backend/internal/models"
)

type dedupeKey struct {
	origin      string
	destination string
	carrier     string
	departHour  int64
	arriveHour  int64
	stops       int
	priceBucket int64
}

func keyOf(f models.Flight) dedupeKey {
	return dedupeKey{
		origin:      strings.ToUpper(f.Origin),
		destination: strings.ToUpper(f.Destination),
		carrier:     strings.ToUpper(f.Airline.Code),
		departHour:  f.Departure.Time.UTC().Truncate(time.Hour).Unix(),
		arriveHour:  f.Arrival.Time.UTC().Truncate(time.Hour).Unix(),
		stops:       f.Stops,
		priceBucket: int64(math.Round(f.Price.Amount / 10)),
	}
}

// Dedupe keeps one offer per physical flight. Offers are visited by
// descending score, ties in input order, and the first offer seen for a class
// is kept. The output is in that visiting order.
func Dedupe(flights []models.Flight) []models.Flight {
	sorted := make([]models.Flight, len(flights))
	copy(sorted, flights)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	seen := make(map[dedupeKey]struct{}, len(sorted))
	out := make([]models.Flight, 0, len(sorted))
	for _, f := range sorted {
		k := keyOf(f)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, f)
	}
	return out
}
