package models

import (
	"encoding/json"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

const (
	MinPassengers = 1
	MaxPassengers = 9
)

type TripType string

const (
	TripOneWay    TripType = "one-way"
	TripRoundTrip TripType = "round-trip"
	TripMultiCity TripType = "multi-city"
)

// Passengers accepts either a plain count or an adults/children/infants
// breakdown on the wire.
type Passengers struct {
	Adults   int `json:"adults"`
	Children int `json:"children,omitempty"`
	Infants  int `json:"infants,omitempty"`
}

func (p Passengers) Total() int {
	return p.Adults + p.Children + p.Infants
}

func (p *Passengers) UnmarshalJSON(data []byte) error {
	var count int
	if err := json.Unmarshal(data, &count); err == nil {
		*p = Passengers{Adults: count}
		return nil
	}

	type breakdown Passengers
	var b breakdown
	if err := json.Unmarshal(data, &b); err != nil {
		return err
	}
	*p = Passengers(b)
	return nil
}

type SearchRequest struct {
	Origin           string     `json:"origin"`
	Destination      string     `json:"destination"`
	DepartureDate    string     `json:"departure_date"`
	ReturnDate       *string    `json:"return_date,omitempty"`
	TripType         TripType   `json:"trip_type"`
	Passengers       Passengers `json:"passengers"`
	CabinClass       string     `json:"cabin_class,omitempty"`
	MaxPrice         *float64   `json:"max_price,omitempty"`
	IncludeProviders []string   `json:"include_providers,omitempty"`
	Airlines         []string   `json:"airlines,omitempty"`
}

// Normalize upper-cases airport codes and fills defaults. It does not
// validate.
func (r *SearchRequest) Normalize() {
	r.Origin = strings.ToUpper(strings.TrimSpace(r.Origin))
	r.Destination = strings.ToUpper(strings.TrimSpace(r.Destination))
	r.DepartureDate = strings.TrimSpace(r.DepartureDate)
	if r.ReturnDate != nil {
		d := strings.TrimSpace(*r.ReturnDate)
		if d == "" {
			r.ReturnDate = nil
		} else {
			r.ReturnDate = &d
		}
	}
	if r.TripType == "" {
		if r.ReturnDate != nil {
			r.TripType = TripRoundTrip
		} else {
			r.TripType = TripOneWay
		}
	}
	if r.CabinClass == "" {
		r.CabinClass = "economy"
	}
	r.CabinClass = strings.ToLower(r.CabinClass)
}

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrInvalidOrigin        ValidationError = "origin must be a 3-letter IATA airport code"
	ErrInvalidDestination   ValidationError = "destination must be a 3-letter IATA airport code"
	ErrMissingDepartureDate ValidationError = "departure date is required"
	ErrInvalidDepartureDate ValidationError = "departure date must use the YYYY-MM-DD format"
	ErrPastDepartureDate    ValidationError = "departure date cannot be in the past"
	ErrMissingReturnDate    ValidationError = "return date is required for round-trip"
	ErrInvalidReturnDate    ValidationError = "return date must use the YYYY-MM-DD format"
	ErrReturnBeforeDepart   ValidationError = "return date must be after departure date"
	ErrInvalidTripType      ValidationError = "trip type must be one-way, round-trip or multi-city"
	ErrInvalidPassengers    ValidationError = "passenger count must be between 1 and 9"
)

type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Validate checks the request against now and reports every violated
// constraint instead of stopping at the first one.
func (r SearchRequest) Validate(now time.Time) ValidationResult {
	var errs []ValidationError

	if !isIATACode(r.Origin) {
		errs = append(errs, ErrInvalidOrigin)
	}
	if !isIATACode(r.Destination) {
		errs = append(errs, ErrInvalidDestination)
	}

	var departure time.Time
	departureOK := false
	switch {
	case r.DepartureDate == "":
		errs = append(errs, ErrMissingDepartureDate)
	default:
		d, err := time.Parse(DateLayout, r.DepartureDate)
		if err != nil {
			errs = append(errs, ErrInvalidDepartureDate)
			break
		}
		today, _ := time.Parse(DateLayout, now.Format(DateLayout))
		if d.Before(today) {
			errs = append(errs, ErrPastDepartureDate)
		}
		departure = d
		departureOK = true
	}

	switch r.TripType {
	case TripOneWay, TripRoundTrip, TripMultiCity, "":
	default:
		errs = append(errs, ErrInvalidTripType)
	}

	if r.TripType == TripRoundTrip && (r.ReturnDate == nil || *r.ReturnDate == "") {
		errs = append(errs, ErrMissingReturnDate)
	}
	if r.ReturnDate != nil && *r.ReturnDate != "" {
		ret, err := time.Parse(DateLayout, *r.ReturnDate)
		switch {
		case err != nil:
			errs = append(errs, ErrInvalidReturnDate)
		case departureOK && !ret.After(departure):
			errs = append(errs, ErrReturnBeforeDepart)
		}
	}

	total := r.Passengers.Total()
	if total < MinPassengers || total > MaxPassengers ||
		r.Passengers.Adults < 0 || r.Passengers.Children < 0 || r.Passengers.Infants < 0 {
		errs = append(errs, ErrInvalidPassengers)
	}

	result := ValidationResult{Valid: len(errs) == 0, Errors: make([]string, 0, len(errs))}
	for _, e := range errs {
		result.Errors = append(result.Errors, e.Error())
	}
	return result
}

func isIATACode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, c := range code {
		if (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
			return false
		}
	}
	return true
}
