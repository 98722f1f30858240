package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"

	"github.com/rajkumaran80/findmyflight-backend/internal/models"
)

const (
	keyPrefix       = "flights:"
	oneWaySentinel  = "none"
	defaultTripType = models.TripOneWay
)

type keyFields struct {
	Origin           string   `json:"o"`
	Destination      string   `json:"d"`
	DepartureDate    string   `json:"dd"`
	ReturnDate       string   `json:"rd"`
	Passengers       int      `json:"p"`
	TripType         string   `json:"t"`
	CabinClass       string   `json:"c"`
	MaxPrice         *float64 `json:"mp,omitempty"`
	Airlines         []string `json:"a,omitempty"`
	IncludeProviders []string `json:"ip,omitempty"`
}

// GenerateKey derives the cache key for req. Casing and list order do not
// change the key; any field that changes the result set does.
func GenerateKey(req models.SearchRequest) string {
	fields := keyFields{
		Origin:           strings.ToUpper(strings.TrimSpace(req.Origin)),
		Destination:      strings.ToUpper(strings.TrimSpace(req.Destination)),
		DepartureDate:    strings.TrimSpace(req.DepartureDate),
		ReturnDate:       oneWaySentinel,
		Passengers:       req.Passengers.Total(),
		TripType:         strings.ToLower(string(req.TripType)),
		CabinClass:       strings.ToLower(strings.TrimSpace(req.CabinClass)),
		MaxPrice:         req.MaxPrice,
		Airlines:         normalizeList(req.Airlines),
		IncludeProviders: normalizeList(req.IncludeProviders),
	}

	if req.ReturnDate != nil && strings.TrimSpace(*req.ReturnDate) != "" {
		fields.ReturnDate = strings.TrimSpace(*req.ReturnDate)
	}
	if fields.TripType == "" {
		fields.TripType = string(defaultTripType)
		if fields.ReturnDate != oneWaySentinel {
			fields.TripType = string(models.TripRoundTrip)
		}
	}
	if fields.CabinClass == "" {
		fields.CabinClass = "economy"
	}

	data, _ := json.Marshal(fields)
	hash := sha256.Sum256(data)
	return keyPrefix + hex.EncodeToString(hash[:])
}

func normalizeList(values []string) []string {
	if len(values) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToUpper(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	sort.Strings(out)
	return out
}
