package models

import "time"

type Airline struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type Location struct {
	Airport  string    `json:"airport"`
	City     string    `json:"city,omitempty"`
	Terminal *string   `json:"terminal,omitempty"`
	Time     time.Time `json:"time"`
	Timezone string    `json:"timezone,omitempty"`
}

type Duration struct {
	Hours        int `json:"hours"`
	Minutes      int `json:"minutes"`
	TotalMinutes int `json:"total_minutes"`
}

// NewDuration splits a minute count into hours and minutes.
func NewDuration(totalMinutes int) Duration {
	return Duration{
		Hours:        totalMinutes / 60,
		Minutes:      totalMinutes % 60,
		TotalMinutes: totalMinutes,
	}
}

type Layover struct {
	Airport  string `json:"airport"`
	City     string `json:"city,omitempty"`
	Duration int    `json:"duration_minutes"`
}

type Price struct {
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Formatted string  `json:"formatted,omitempty"`
}

type Segment struct {
	FlightNumber string   `json:"flight_number"`
	Airline      Airline  `json:"airline"`
	Departure    Location `json:"departure"`
	Arrival      Location `json:"arrival"`
	Duration     int      `json:"duration_minutes"`
}

// Itinerary holds the ordered segments of each direction.
type Itinerary struct {
	Outbound []Segment `json:"outbound"`
	Inbound  []Segment `json:"inbound,omitempty"`
}

type ScoreBreakdown struct {
	Price    float64 `json:"price"`
	Duration float64 `json:"duration"`
	Stops    float64 `json:"stops"`
	Total    float64 `json:"total"`
}

// Flight is a provider-agnostic offer. Identity fields (ID, Provider) are set
// by the provider and never rewritten downstream; ranking only fills Score and
// ScoreBreakdown.
type Flight struct {
	ID             string          `json:"id"`
	Provider       string          `json:"provider"`
	Airline        Airline         `json:"airline"`
	FlightNumber   string          `json:"flight_number"`
	Origin         string          `json:"origin"`
	Destination    string          `json:"destination"`
	DepartureDate  string          `json:"departure_date"`
	ReturnDate     *string         `json:"return_date,omitempty"`
	TripType       TripType        `json:"trip_type"`
	Departure      Location        `json:"departure"`
	Arrival        Location        `json:"arrival"`
	Duration       Duration        `json:"duration"`
	Stops          int             `json:"stops"`
	Layovers       []Layover       `json:"layovers,omitempty"`
	Price          Price           `json:"price"`
	CabinClass     string          `json:"cabin_class,omitempty"`
	AvailableSeats int             `json:"available_seats,omitempty"`
	Itinerary      *Itinerary      `json:"itinerary,omitempty"`
	Score          float64         `json:"score"`
	ScoreBreakdown *ScoreBreakdown `json:"score_breakdown,omitempty"`
}
