package aggregator

import (
	"fmt"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"github.com/rajkumaran80/findmyflight-backend/internal/models"
)

var baseDeparture = time.Date(2030, 1, 15, 13, 0, 0, 0, time.UTC)

func flight(id, provider, carrier string, depart time.Time, minutes, stops int, price float64) models.Flight {
	return models.Flight{
		ID:          id,
		Provider:    provider,
		Airline:     models.Airline{Code: carrier},
		Origin:      "JFK",
		Destination: "LAX",
		Departure:   models.Location{Airport: "JFK", Time: depart},
		Arrival:     models.Location{Airport: "LAX", Time: depart.Add(time.Duration(minutes) * time.Minute)},
		Duration:    models.NewDuration(minutes),
		Stops:       stops,
		Price:       models.Price{Amount: price, Currency: "USD"},
	}
}

func flightIDs(flights []models.Flight) []string {
	out := make([]string, len(flights))
	for i, f := range flights {
		out[i] = f.ID
	}
	return out
}

func TestDedupe(t *testing.T) {
	ny, _ := time.LoadLocation("America/New_York")

	tests := []struct {
		name     string
		input    []models.Flight
		expected []string
	}{
		{
			name: "same flight from two providers keeps the first",
			input: []models.Flight{
				flight("a", "skyline", "AA", baseDeparture, 380, 0, 380),
				flight("b", "aerofare", "AA", baseDeparture.Add(5*time.Minute), 378, 0, 384),
			},
			expected: []string{"a"},
		},
		{
			name: "same instant expressed in another zone",
			input: []models.Flight{
				flight("a", "skyline", "AA", baseDeparture.In(ny), 380, 0, 380),
				flight("b", "aerofare", "AA", baseDeparture, 380, 0, 380),
			},
			expected: []string{"a"},
		},
		{
			name: "different carrier",
			input: []models.Flight{
				flight("a", "skyline", "AA", baseDeparture, 380, 0, 380),
				flight("b", "aerofare", "UA", baseDeparture, 380, 0, 380),
			},
			expected: []string{"a", "b"},
		},
		{
			name: "different departure hour",
			input: []models.Flight{
				flight("a", "skyline", "AA", baseDeparture, 380, 0, 380),
				flight("b", "aerofare", "AA", baseDeparture.Add(time.Hour), 380, 0, 380),
			},
			expected: []string{"a", "b"},
		},
		{
			name: "different arrival hour",
			input: []models.Flight{
				flight("a", "skyline", "AA", baseDeparture, 380, 0, 380),
				flight("b", "aerofare", "AA", baseDeparture, 420, 0, 380),
			},
			expected: []string{"a", "b"},
		},
		{
			name: "different stops",
			input: []models.Flight{
				flight("a", "skyline", "AA", baseDeparture, 380, 0, 380),
				flight("b", "aerofare", "AA", baseDeparture, 380, 1, 380),
			},
			expected: []string{"a", "b"},
		},
		{
			name: "different price bucket",
			input: []models.Flight{
				flight("a", "skyline", "AA", baseDeparture, 380, 0, 384),
				flight("b", "aerofare", "AA", baseDeparture, 380, 0, 386),
			},
			expected: []string{"a", "b"},
		},
		{
			name:     "empty",
			input:    nil,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, flightIDs(Dedupe(tt.input)))
		})
	}
}

func TestDedupe_PrefersHigherScore(t *testing.T) {
	low := flight("low", "skyline", "AA", baseDeparture, 380, 0, 380)
	low.Score = 40
	high := flight("high", "aerofare", "AA", baseDeparture, 380, 0, 381)
	high.Score = 90
	other := flight("other", "aerofare", "UA", baseDeparture, 380, 0, 200)
	other.Score = 60

	got := Dedupe([]models.Flight{low, other, high})
	assert.Equal(t, []string{"high", "other"}, flightIDs(got))
}

func TestDedupe_DoesNotMutateInput(t *testing.T) {
	input := []models.Flight{
		flight("a", "skyline", "AA", baseDeparture, 380, 0, 380),
		flight("b", "aerofare", "AA", baseDeparture, 380, 0, 380),
	}
	input[1].Score = 10

	Dedupe(input)
	assert.Equal(t, []string{"a", "b"}, flightIDs(input))
}

func genOffers() gopter.Gen {
	return gen.SliceOf(gen.IntRange(0, 4095)).Map(func(seeds []int) []models.Flight {
		carriers := []string{"AA", "UA", "DL"}
		flights := make([]models.Flight, len(seeds))
		for i, s := range seeds {
			depart := baseDeparture.Add(time.Duration(s%5*20) * time.Minute)
			f := flight(fmt.Sprintf("o%d", i), "gen", carriers[s%3], depart, 300+s%4*30, s%2, float64(200+s%7*4))
			f.Score = float64(s % 11)
			flights[i] = f
		}
		return flights
	})
}

func TestDedupe_Properties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("dedupe is idempotent", prop.ForAll(
		func(flights []models.Flight) bool {
			once := Dedupe(flights)
			twice := Dedupe(once)
			if len(once) != len(twice) {
				return false
			}
			for i := range once {
				if once[i].ID != twice[i].ID {
					return false
				}
			}
			return true
		},
		genOffers(),
	))

	properties.Property("dedupe output is a subset without duplicate classes", prop.ForAll(
		func(flights []models.Flight) bool {
			ids := make(map[string]struct{}, len(flights))
			for _, f := range flights {
				ids[f.ID] = struct{}{}
			}
			keys := make(map[dedupeKey]struct{})
			for _, f := range Dedupe(flights) {
				if _, ok := ids[f.ID]; !ok {
					return false
				}
				if _, dup := keys[keyOf(f)]; dup {
					return false
				}
				keys[keyOf(f)] = struct{}{}
			}
			return true
		},
		genOffers(),
	))

	properties.TestingRun(t)
}
