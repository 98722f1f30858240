package timezone

import (
	"strings"
	"sync"
	"time"
	_ "time/tzdata"
)

var airportTimezones = map[string]string{
	// Eastern
	"JFK": "America/New_York", // New York - John F. Kennedy
	"LGA": "America/New_York", // New York - LaGuardia
	"EWR": "America/New_York", // Newark - Liberty
	"BOS": "America/New_York", // Boston - Logan
	"IAD": "America/New_York", // Washington - Dulles
	"DCA": "America/New_York", // Washington - Reagan National
	"ATL": "America/New_York", // Atlanta - Hartsfield-Jackson
	"MIA": "America/New_York", // Miami
	"MCO": "America/New_York", // Orlando
	"CLT": "America/New_York", // Charlotte Douglas

	// Central
	"ORD": "America/Chicago", // Chicago - O'Hare
	"MDW": "America/Chicago", // Chicago - Midway
	"DFW": "America/Chicago", // Dallas/Fort Worth
	"IAH": "America/Chicago", // Houston - George Bush
	"MSP": "America/Chicago", // Minneapolis-Saint Paul

	// Mountain
	"DEN": "America/Denver",  // Denver
	"PHX": "America/Phoenix", // Phoenix Sky Harbor, no DST
	"SLC": "America/Denver",  // Salt Lake City

	// Pacific
	"LAX": "America/Los_Angeles", // Los Angeles
	"SFO": "America/Los_Angeles", // San Francisco
	"SEA": "America/Los_Angeles", // Seattle-Tacoma
	"SAN": "America/Los_Angeles", // San Diego
	"LAS": "America/Los_Angeles", // Las Vegas - Harry Reid
	"PDX": "America/Los_Angeles", // Portland

	// International gateways
	"LHR": "Europe/London",
	"CDG": "Europe/Paris",
	"NRT": "Asia/Tokyo",
}

var (
	locMu     sync.RWMutex
	locations = map[string]*time.Location{}
)

// IsKnownAirport reports whether the airport has a time zone on record.
func IsKnownAirport(code string) bool {
	_, ok := airportTimezones[strings.ToUpper(code)]
	return ok
}

// GetTimezoneByAirport returns the IANA zone name of the airport, or "UTC"
// for airports not on record.
func GetTimezoneByAirport(code string) string {
	if tz, ok := airportTimezones[strings.ToUpper(code)]; ok {
		return tz
	}
	return "UTC"
}

func GetLocationByAirport(code string) *time.Location {
	return GetLocationByName(GetTimezoneByAirport(code))
}

func GetLocationByName(name string) *time.Location {
	locMu.RLock()
	loc, ok := locations[name]
	locMu.RUnlock()
	if ok {
		return loc
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		loc = time.UTC
	}

	locMu.Lock()
	locations[name] = loc
	locMu.Unlock()
	return loc
}

// LocalTimeOnDate combines a YYYY-MM-DD date and an HH:MM wall clock at the
// airport into an absolute instant. dayOffset shifts the date for overnight
// arrivals.
func LocalTimeOnDate(date, clock, airportCode string, dayOffset int) (time.Time, error) {
	return parseOnDate(date, clock, GetLocationByAirport(airportCode), dayOffset)
}

// UTCTimeOnDate is LocalTimeOnDate for clocks already expressed in UTC.
func UTCTimeOnDate(date, clock string, dayOffset int) (time.Time, error) {
	return parseOnDate(date, clock, time.UTC, dayOffset)
}

func parseOnDate(date, clock string, loc *time.Location, dayOffset int) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, loc)
	if err != nil {
		return time.Time{}, err
	}
	return t.AddDate(0, 0, dayOffset), nil
}

func ConvertToTimezone(t time.Time, airportCode string) time.Time {
	return t.In(GetLocationByAirport(airportCode))
}
