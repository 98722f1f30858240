package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rajkumaran80/findmyflight-backend/internal/models"
	"github.com/rajkumaran80/findmyflight-backend/internal/providers/data"
	"github.com/rajkumaran80/findmyflight-backend/internal/timezone"
	"github.com/rajkumaran80/findmyflight-backend/pkg/currency"
)

// AeroFare caps group size per booking.
const aeroFareMaxPassengers = 6

type aeroFareResponse struct {
	Offers []aeroFareOffer `json:"offers"`
}

type aeroFareOffer struct {
	OfferID       string         `json:"offer_id"`
	AirlineCode   string         `json:"airline_code"`
	AirlineName   string         `json:"airline_name"`
	FlightNum     string         `json:"flight_num"`
	Origin        string         `json:"origin"`
	Destination   string         `json:"destination"`
	DepartUTC     string         `json:"depart_utc"`
	DurationHours float64        `json:"duration_hours"`
	Stops         []aeroFareStop `json:"stops"`
	Price         float64        `json:"price"`
	Currency      string         `json:"currency"`
	TravelClass   string         `json:"travel_class"`
	SeatsLeft     int            `json:"seats_left"`
}

type aeroFareStop struct {
	Airport     string `json:"airport"`
	WaitMinutes int    `json:"wait_minutes"`
}

// AeroFareProvider serves a flat fare feed with UTC departures and fractional
// hour durations.
type AeroFareProvider struct {
	offers   []aeroFareOffer
	behavior Behavior
	health   healthTracker
}

func NewAeroFareProvider(behavior Behavior) (*AeroFareProvider, error) {
	var resp aeroFareResponse
	if err := json.Unmarshal(data.AeroFareData, &resp); err != nil {
		return nil, err
	}
	return &AeroFareProvider{offers: resp.Offers, behavior: behavior}, nil
}

func (p *AeroFareProvider) Name() string {
	return "aerofare"
}

func (p *AeroFareProvider) IsHealthy() bool {
	return p.health.healthy()
}

func (p *AeroFareProvider) CanHandle(req models.SearchRequest) bool {
	return req.Passengers.Total() <= aeroFareMaxPassengers
}

func (p *AeroFareProvider) Search(ctx context.Context, req models.SearchRequest) ([]models.Flight, error) {
	flights, err := p.search(ctx, req)
	p.health.record(err)
	if err != nil {
		return nil, NewProviderError(p.Name(), err)
	}
	return flights, nil
}

func (p *AeroFareProvider) search(ctx context.Context, req models.SearchRequest) ([]models.Flight, error) {
	if err := p.behavior.simulate(ctx); err != nil {
		return nil, err
	}

	outbound := p.matchOffers(req.Origin, req.Destination, req.CabinClass)

	var inbound *aeroFareOffer
	if req.TripType == models.TripRoundTrip && req.ReturnDate != nil {
		inbound = cheapestAeroFareOffer(p.matchOffers(req.Destination, req.Origin, req.CabinClass))
		if inbound == nil {
			return []models.Flight{}, nil
		}
	}

	results := make([]models.Flight, 0, len(outbound))
	for _, o := range outbound {
		flight, err := p.normalize(o, inbound, req)
		if err != nil {
			return nil, fmt.Errorf("normalize offer %s: %w", o.OfferID, err)
		}
		results = append(results, flight)
	}

	return results, nil
}

func (p *AeroFareProvider) matchOffers(origin, destination, cabin string) []aeroFareOffer {
	var matched []aeroFareOffer
	for _, o := range p.offers {
		if !strings.EqualFold(o.Origin, origin) || !strings.EqualFold(o.Destination, destination) {
			continue
		}
		if cabin != "" && !strings.EqualFold(o.TravelClass, cabin) {
			continue
		}
		matched = append(matched, o)
	}
	return matched
}

func cheapestAeroFareOffer(offers []aeroFareOffer) *aeroFareOffer {
	var best *aeroFareOffer
	for i := range offers {
		if best == nil || offers[i].Price < best.Price {
			best = &offers[i]
		}
	}
	return best
}

func (p *AeroFareProvider) normalize(o aeroFareOffer, inbound *aeroFareOffer, req models.SearchRequest) (models.Flight, error) {
	out, err := aeroFareSegment(o, req.DepartureDate)
	if err != nil {
		return models.Flight{}, err
	}

	layovers := make([]models.Layover, 0, len(o.Stops))
	for _, s := range o.Stops {
		layovers = append(layovers, models.Layover{
			Airport:  s.Airport,
			Duration: s.WaitMinutes,
		})
	}

	passengers := req.Passengers.Total()
	if passengers < 1 {
		passengers = 1
	}

	fare := o.Price
	id := o.OfferID + "-" + req.DepartureDate

	var itinerary *models.Itinerary
	if inbound != nil {
		in, err := aeroFareSegment(*inbound, *req.ReturnDate)
		if err != nil {
			return models.Flight{}, err
		}
		itinerary = &models.Itinerary{
			Outbound: []models.Segment{out},
			Inbound:  []models.Segment{in},
		}
		fare += inbound.Price
		id += "+" + inbound.OfferID + "-" + *req.ReturnDate
	}

	amount := math.Round(fare*float64(passengers)*100) / 100

	return models.Flight{
		ID:       id,
		Provider: p.Name(),
		Airline: models.Airline{
			Code: o.AirlineCode,
			Name: o.AirlineName,
		},
		FlightNumber:   o.FlightNum,
		Origin:         req.Origin,
		Destination:    req.Destination,
		DepartureDate:  req.DepartureDate,
		ReturnDate:     req.ReturnDate,
		TripType:       req.TripType,
		Departure:      out.Departure,
		Arrival:        out.Arrival,
		Duration:       models.NewDuration(out.Duration),
		Stops:          len(o.Stops),
		Layovers:       layovers,
		AvailableSeats: o.SeatsLeft,
		CabinClass:     strings.ToLower(o.TravelClass),
		Price: models.Price{
			Amount:    amount,
			Currency:  o.Currency,
			Formatted: currency.Format(amount, o.Currency),
		},
		Itinerary: itinerary,
	}, nil
}

func aeroFareSegment(o aeroFareOffer, date string) (models.Segment, error) {
	dep, err := timezone.UTCTimeOnDate(date, o.DepartUTC, 0)
	if err != nil {
		return models.Segment{}, err
	}
	minutes := int(math.Round(o.DurationHours * 60))
	arr := dep.Add(time.Duration(minutes) * time.Minute)

	return models.Segment{
		FlightNumber: o.FlightNum,
		Airline:      models.Airline{Code: o.AirlineCode, Name: o.AirlineName},
		Departure: models.Location{
			Airport:  o.Origin,
			Time:     timezone.ConvertToTimezone(dep, o.Origin),
			Timezone: timezone.GetTimezoneByAirport(o.Origin),
		},
		Arrival: models.Location{
			Airport:  o.Destination,
			Time:     timezone.ConvertToTimezone(arr, o.Destination),
			Timezone: timezone.GetTimezoneByAirport(o.Destination),
		},
		Duration: minutes,
	}, nil
}
