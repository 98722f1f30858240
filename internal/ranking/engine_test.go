package ranking

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajkumaran80/findmyflight-backend/internal/models"
)

func offer(id string, price float64, stops, minutes int) models.Flight {
	return models.Flight{
		ID:          id,
		Provider:    "test",
		Airline:     models.Airline{Code: "AA", Name: "American Airlines"},
		Origin:      "JFK",
		Destination: "LAX",
		Price:       models.Price{Amount: price, Currency: "USD"},
		Stops:       stops,
		Duration:    models.NewDuration(minutes),
	}
}

func sampleOffers() []models.Flight {
	return []models.Flight{
		offer("f1", 450, 0, 210),
		offer("f2", 380, 1, 255),
		offer("f3", 520, 0, 195),
		offer("f4", 340, 1, 255),
		offer("f5", 480, 0, 210),
	}
}

func ids(flights []models.Flight) []string {
	out := make([]string, len(flights))
	for i, f := range flights {
		out[i] = f.ID
	}
	return out
}

func newDefaultEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultWeights())
	require.NoError(t, err)
	return e
}

func TestNewEngine_RejectsBadWeights(t *testing.T) {
	tests := []struct {
		name    string
		weights Weights
		wantErr bool
	}{
		{"defaults", DefaultWeights(), false},
		{"within tolerance", Weights{Price: 0.5, Duration: 0.3, Stops: 0.2005}, false},
		{"sum too low", Weights{Price: 0.5, Duration: 0.2, Stops: 0.2}, true},
		{"sum too high", Weights{Price: 0.7, Duration: 0.25, Stops: 0.15}, true},
		{"negative", Weights{Price: 1.2, Duration: -0.1, Stops: -0.1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewEngine(tt.weights)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidWeights)
				assert.Nil(t, e)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.weights, e.Weights())
		})
	}
}

func TestEngine_RankMixedPopulation(t *testing.T) {
	e := newDefaultEngine(t)

	ranked := e.Rank(sampleOffers())

	require.Len(t, ranked, 5)
	assert.Equal(t, []string{"f4", "f1", "f5", "f2", "f3"}, ids(ranked))
	assert.Equal(t, 60.0, ranked[0].Score)
	assert.Equal(t, 57.08, ranked[1].Score)
	assert.Equal(t, 47.08, ranked[2].Score)
	assert.Equal(t, 46.67, ranked[3].Score)
	assert.Equal(t, 40.0, ranked[4].Score)

	cheapest := ranked[0]
	require.NotNil(t, cheapest.ScoreBreakdown)
	assert.Equal(t, 100.0, cheapest.ScoreBreakdown.Price)
	assert.Equal(t, 0.0, cheapest.ScoreBreakdown.Duration)

	fastest := ranked[4]
	assert.Equal(t, "f3", fastest.ID)
	assert.Equal(t, models.ScoreBreakdown{Price: 0, Duration: 100, Stops: 100, Total: 40}, *fastest.ScoreBreakdown)

	assert.Equal(t, 38.89, ranked[1].ScoreBreakdown.Price)
}

func TestEngine_RankDoesNotMutateInput(t *testing.T) {
	e := newDefaultEngine(t)
	input := sampleOffers()

	_ = e.Rank(input)

	assert.Equal(t, sampleOffers(), input)
}

func TestEngine_EqualDimensionsScoreFull(t *testing.T) {
	e := newDefaultEngine(t)
	flights := []models.Flight{
		offer("a", 300, 1, 200),
		offer("b", 300, 0, 180),
		offer("c", 300, 2, 240),
	}

	for _, f := range e.Rank(flights) {
		assert.Equal(t, 100.0, f.ScoreBreakdown.Price, f.ID)
	}

	single := e.Rank([]models.Flight{offer("only", 999, 3, 600)})
	assert.Equal(t, 100.0, single[0].Score)
}

func TestEngine_TiesKeepInputOrder(t *testing.T) {
	e := newDefaultEngine(t)
	flights := []models.Flight{
		offer("x", 200, 0, 100),
		offer("y", 400, 0, 100),
		offer("z", 200, 0, 100),
	}

	ranked := e.Rank(flights)

	assert.Equal(t, []string{"x", "z", "y"}, ids(ranked))
}

func TestEngine_ScoreAndBreakdown(t *testing.T) {
	e := newDefaultEngine(t)
	population := sampleOffers()

	assert.Equal(t, 60.0, e.Score(population[3], population))
	assert.Equal(t, models.ScoreBreakdown{Price: 0, Duration: 100, Stops: 100, Total: 40}, e.ScoreBreakdown(population[2], population))
	assert.Equal(t, 100.0, e.Score(population[0], nil))
}

func TestEngine_RankEmpty(t *testing.T) {
	e := newDefaultEngine(t)
	assert.Empty(t, e.Rank(nil))
}

func genFlights() gopter.Gen {
	return gen.SliceOf(gen.IntRange(50, 3000)).Map(func(prices []int) []models.Flight {
		flights := make([]models.Flight, len(prices))
		for i, p := range prices {
			flights[i] = offer(fmt.Sprintf("g%d", i), float64(p), p%3, 60+p%400)
		}
		return flights
	})
}

func TestEngine_RankProperties(t *testing.T) {
	e := newDefaultEngine(t)
	properties := gopter.NewProperties(nil)

	properties.Property("rank preserves the population size", prop.ForAll(
		func(flights []models.Flight) bool {
			return len(e.Rank(flights)) == len(flights)
		},
		genFlights(),
	))

	properties.Property("rank is idempotent", prop.ForAll(
		func(flights []models.Flight) bool {
			first := e.Rank(flights)
			second := e.Rank(first)
			for i := range first {
				if first[i].ID != second[i].ID || first[i].Score != second[i].Score {
					return false
				}
			}
			return true
		},
		genFlights(),
	))

	properties.Property("scores are bounded and descending", prop.ForAll(
		func(flights []models.Flight) bool {
			ranked := e.Rank(flights)
			for i, f := range ranked {
				if f.Score < 0 || f.Score > 100 {
					return false
				}
				if i > 0 && ranked[i-1].Score < f.Score {
					return false
				}
			}
			return true
		},
		genFlights(),
	))

	properties.TestingRun(t)
}
