package ranking

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/rajkumaran80/findmyflight-backend/internal/models"
)

const weightTolerance = 0.001

var ErrInvalidWeights = errors.New("ranking weights must be non-negative and sum to 1.0")

type Weights struct {
	Price    float64
	Duration float64
	Stops    float64
}

func DefaultWeights() Weights {
	return Weights{
		Price:    0.60,
		Duration: 0.25,
		Stops:    0.15,
	}
}

func (w Weights) Validate() error {
	if w.Price < 0 || w.Duration < 0 || w.Stops < 0 {
		return fmt.Errorf("%w: got price=%.3f duration=%.3f stops=%.3f", ErrInvalidWeights, w.Price, w.Duration, w.Stops)
	}
	sum := w.Price + w.Duration + w.Stops
	if math.Abs(sum-1.0) > weightTolerance {
		return fmt.Errorf("%w: got sum %.4f", ErrInvalidWeights, sum)
	}
	return nil
}

// Engine scores offers relative to the population it is given. It holds no
// mutable state, so one instance can serve concurrent requests.
type Engine struct {
	weights Weights
}

func NewEngine(w Weights) (*Engine, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &Engine{weights: w}, nil
}

func (e *Engine) Weights() Weights {
	return e.weights
}

// Rank returns a copy of flights with scores attached, sorted by descending
// total score. Ties keep their input order.
func (e *Engine) Rank(flights []models.Flight) []models.Flight {
	if len(flights) == 0 {
		return []models.Flight{}
	}

	b := newBounds(flights)
	result := make([]models.Flight, len(flights))
	for i, f := range flights {
		breakdown := e.breakdown(f, b)
		result[i] = f
		result[i].Score = breakdown.Total
		result[i].ScoreBreakdown = &breakdown
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Score > result[j].Score
	})

	return result
}

// Score returns the total score (0..100) of flight within population.
func (e *Engine) Score(flight models.Flight, population []models.Flight) float64 {
	return e.ScoreBreakdown(flight, population).Total
}

func (e *Engine) ScoreBreakdown(flight models.Flight, population []models.Flight) models.ScoreBreakdown {
	if len(population) == 0 {
		population = []models.Flight{flight}
	}
	return e.breakdown(flight, newBounds(population))
}

func (e *Engine) breakdown(f models.Flight, b bounds) models.ScoreBreakdown {
	price := normalize(f.Price.Amount, b.minPrice, b.maxPrice)
	duration := normalize(float64(f.Duration.TotalMinutes), b.minDuration, b.maxDuration)
	stops := normalize(float64(f.Stops), b.minStops, b.maxStops)

	total := price*e.weights.Price + duration*e.weights.Duration + stops*e.weights.Stops

	return models.ScoreBreakdown{
		Price:    round2(price),
		Duration: round2(duration),
		Stops:    round2(stops),
		Total:    round2(total),
	}
}

type bounds struct {
	minPrice, maxPrice       float64
	minDuration, maxDuration float64
	minStops, maxStops       float64
}

func newBounds(flights []models.Flight) bounds {
	first := flights[0]
	b := bounds{
		minPrice: first.Price.Amount, maxPrice: first.Price.Amount,
		minDuration: float64(first.Duration.TotalMinutes), maxDuration: float64(first.Duration.TotalMinutes),
		minStops: float64(first.Stops), maxStops: float64(first.Stops),
	}
	for _, f := range flights[1:] {
		b.minPrice = math.Min(b.minPrice, f.Price.Amount)
		b.maxPrice = math.Max(b.maxPrice, f.Price.Amount)
		b.minDuration = math.Min(b.minDuration, float64(f.Duration.TotalMinutes))
		b.maxDuration = math.Max(b.maxDuration, float64(f.Duration.TotalMinutes))
		b.minStops = math.Min(b.minStops, float64(f.Stops))
		b.maxStops = math.Max(b.maxStops, float64(f.Stops))
	}
	return b
}

// normalize maps the lowest value to 100 and the highest to 0. A dimension
// where every offer is equal scores 100.
func normalize(v, lo, hi float64) float64 {
	if hi == lo {
		return 100
	}
	score := (hi - v) / (hi - lo) * 100
	return math.Max(0, math.Min(100, score))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
