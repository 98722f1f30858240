package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/rajkumaran80/findmyflight-backend/internal/models"
	"github.com/rajkumaran80/findmyflight-backend/internal/providers/data"
	"github.com/rajkumaran80/findmyflight-backend/internal/timezone"
	"github.com/rajkumaran80/findmyflight-backend/pkg/currency"
)

type skylineResponse struct {
	Routes []skylineRoute `json:"routes"`
}

type skylineRoute struct {
	RouteID string         `json:"route_id"`
	Carrier skylineCarrier `json:"carrier"`
	Cabin   string         `json:"cabin"`
	Seats   int            `json:"seats"`
	Fare    skylineFare    `json:"fare"`
	Legs    []skylineLeg   `json:"legs"`
}

type skylineCarrier struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type skylineFare struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type skylineLeg struct {
	FlightNo        string `json:"flight_no"`
	From            string `json:"from"`
	FromCity        string `json:"from_city"`
	To              string `json:"to"`
	ToCity          string `json:"to_city"`
	DepartLocal     string `json:"depart_local"`
	ArriveLocal     string `json:"arrive_local"`
	ArriveDayOffset int    `json:"arrive_day_offset"`
}

func (r skylineRoute) origin() string      { return r.Legs[0].From }
func (r skylineRoute) destination() string { return r.Legs[len(r.Legs)-1].To }

// SkylineProvider serves a schedule-based API: routes are published as local
// wall-clock legs that get stamped onto the requested travel date.
type SkylineProvider struct {
	routes   []skylineRoute
	behavior Behavior
	health   healthTracker
}

func NewSkylineProvider(behavior Behavior) (*SkylineProvider, error) {
	var resp skylineResponse
	if err := json.Unmarshal(data.SkylineData, &resp); err != nil {
		return nil, err
	}

	routes := make([]skylineRoute, 0, len(resp.Routes))
	for _, r := range resp.Routes {
		if len(r.Legs) > 0 {
			routes = append(routes, r)
		}
	}
	return &SkylineProvider{routes: routes, behavior: behavior}, nil
}

func (p *SkylineProvider) Name() string {
	return "skyline"
}

func (p *SkylineProvider) IsHealthy() bool {
	return p.health.healthy()
}

// CanHandle rejects multi-city trips and airports without a known time zone,
// since local schedules cannot be anchored there.
func (p *SkylineProvider) CanHandle(req models.SearchRequest) bool {
	if req.TripType == models.TripMultiCity {
		return false
	}
	return timezone.IsKnownAirport(req.Origin) && timezone.IsKnownAirport(req.Destination)
}

func (p *SkylineProvider) Search(ctx context.Context, req models.SearchRequest) ([]models.Flight, error) {
	flights, err := p.search(ctx, req)
	p.health.record(err)
	if err != nil {
		return nil, NewProviderError(p.Name(), err)
	}
	return flights, nil
}

func (p *SkylineProvider) search(ctx context.Context, req models.SearchRequest) ([]models.Flight, error) {
	if err := p.behavior.simulate(ctx); err != nil {
		return nil, err
	}

	outbound := p.matchRoutes(req.Origin, req.Destination, req.CabinClass)

	var inbound *skylineRoute
	if req.TripType == models.TripRoundTrip && req.ReturnDate != nil {
		inbound = cheapestSkylineRoute(p.matchRoutes(req.Destination, req.Origin, req.CabinClass))
		if inbound == nil {
			return []models.Flight{}, nil
		}
	}

	results := make([]models.Flight, 0, len(outbound))
	for _, r := range outbound {
		flight, err := p.normalize(r, inbound, req)
		if err != nil {
			return nil, fmt.Errorf("normalize route %s: %w", r.RouteID, err)
		}
		results = append(results, flight)
	}

	return results, nil
}

func (p *SkylineProvider) matchRoutes(origin, destination, cabin string) []skylineRoute {
	var matched []skylineRoute
	for _, r := range p.routes {
		if !strings.EqualFold(r.origin(), origin) || !strings.EqualFold(r.destination(), destination) {
			continue
		}
		if cabin != "" && !strings.EqualFold(r.Cabin, cabin) {
			continue
		}
		matched = append(matched, r)
	}
	return matched
}

func cheapestSkylineRoute(routes []skylineRoute) *skylineRoute {
	var best *skylineRoute
	for i := range routes {
		if best == nil || routes[i].Fare.Amount < best.Fare.Amount {
			best = &routes[i]
		}
	}
	return best
}

func (p *SkylineProvider) normalize(r skylineRoute, inbound *skylineRoute, req models.SearchRequest) (models.Flight, error) {
	outSegments, err := skylineSegments(r, req.DepartureDate)
	if err != nil {
		return models.Flight{}, err
	}

	first := outSegments[0]
	last := outSegments[len(outSegments)-1]

	layovers := make([]models.Layover, 0, len(outSegments)-1)
	for i := 1; i < len(outSegments); i++ {
		prev := outSegments[i-1]
		layovers = append(layovers, models.Layover{
			Airport:  prev.Arrival.Airport,
			City:     prev.Arrival.City,
			Duration: int(outSegments[i].Departure.Time.Sub(prev.Arrival.Time).Minutes()),
		})
	}

	passengers := req.Passengers.Total()
	if passengers < 1 {
		passengers = 1
	}

	fare := r.Fare.Amount
	id := r.RouteID + "-" + req.DepartureDate
	itinerary := &models.Itinerary{Outbound: outSegments}

	if inbound != nil {
		inSegments, err := skylineSegments(*inbound, *req.ReturnDate)
		if err != nil {
			return models.Flight{}, err
		}
		itinerary.Inbound = inSegments
		fare += inbound.Fare.Amount
		id += "+" + inbound.RouteID + "-" + *req.ReturnDate
	}

	amount := math.Round(fare*float64(passengers)*100) / 100

	return models.Flight{
		ID:       id,
		Provider: p.Name(),
		Airline: models.Airline{
			Code: r.Carrier.Code,
			Name: r.Carrier.Name,
		},
		FlightNumber:   first.FlightNumber,
		Origin:         req.Origin,
		Destination:    req.Destination,
		DepartureDate:  req.DepartureDate,
		ReturnDate:     req.ReturnDate,
		TripType:       req.TripType,
		Departure:      first.Departure,
		Arrival:        last.Arrival,
		Duration:       models.NewDuration(int(last.Arrival.Time.Sub(first.Departure.Time).Minutes())),
		Stops:          len(layovers),
		Layovers:       layovers,
		AvailableSeats: r.Seats,
		CabinClass:     strings.ToLower(r.Cabin),
		Price: models.Price{
			Amount:    amount,
			Currency:  r.Fare.Currency,
			Formatted: currency.Format(amount, r.Fare.Currency),
		},
		Itinerary: itinerary,
	}, nil
}

func skylineSegments(r skylineRoute, date string) ([]models.Segment, error) {
	segments := make([]models.Segment, 0, len(r.Legs))
	for _, leg := range r.Legs {
		dep, err := timezone.LocalTimeOnDate(date, leg.DepartLocal, leg.From, 0)
		if err != nil {
			return nil, err
		}
		arr, err := timezone.LocalTimeOnDate(date, leg.ArriveLocal, leg.To, leg.ArriveDayOffset)
		if err != nil {
			return nil, err
		}

		segments = append(segments, models.Segment{
			FlightNumber: leg.FlightNo,
			Airline:      models.Airline{Code: r.Carrier.Code, Name: r.Carrier.Name},
			Departure: models.Location{
				Airport:  leg.From,
				City:     leg.FromCity,
				Time:     dep,
				Timezone: timezone.GetTimezoneByAirport(leg.From),
			},
			Arrival: models.Location{
				Airport:  leg.To,
				City:     leg.ToCity,
				Time:     arr,
				Timezone: timezone.GetTimezoneByAirport(leg.To),
			},
			Duration: int(arr.Sub(dep).Minutes()),
		})
	}
	return segments, nil
}
