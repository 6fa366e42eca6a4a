package models

import (
	"encoding/json"
	"math"
)

// Listing source tags. Portal listings carry absolute URLs; classifieds
// listings may carry relative paths that need normalization before use.
const (
	SourcePortal      = "portal"
	SourceClassifieds = "classifieds"
)

// Laundry types recognized by the deal scorer. Anything else is "unspecified".
const (
	LaundryInUnit     = "in_unit"
	LaundryInBuilding = "in_building"
)

// Coordinate is a latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Listing is one rental-property record as delivered by the backend
// endpoints. Optional numeric fields are pointers: absence is expected
// data, never an error — every consumer has a defined fallback.
type Listing struct {
	Title        string   `json:"title"`
	URL          string   `json:"url"`
	Price        int      `json:"price"` // 0 = unknown
	Neighborhood string   `json:"neighborhood"`
	Bedrooms     *int     `json:"bedrooms"` // 0 = studio
	Bathrooms    *float64 `json:"bathrooms,omitempty"`
	Sqft         *int     `json:"sqft,omitempty"`
	PricePerSqft *float64 `json:"price_per_sqft,omitempty"`
	PostedDate   string   `json:"posted_date,omitempty"`
	DealScore    *int     `json:"deal_score"`
	DealAnalysis string   `json:"deal_analysis,omitempty"`
	DiscountPct  *float64 `json:"discount_pct,omitempty"`
	LaundryType  string   `json:"laundry_type,omitempty"`
	Parking      bool     `json:"parking"`
	ThumbnailURL string   `json:"thumbnail_url,omitempty"`
	ImageURLs    []string `json:"image_urls,omitempty"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	Source       string   `json:"source"`
}

// Score returns the deal score, treating a missing score as 0.
func (l *Listing) Score() int {
	if l.DealScore == nil {
		return 0
	}
	return *l.DealScore
}

// HasCoordinates reports whether both latitude and longitude are present
// and finite. When false, the geocode resolver supplies a coordinate.
func (l *Listing) HasCoordinates() bool {
	if l.Latitude == nil || l.Longitude == nil {
		return false
	}
	return !math.IsNaN(*l.Latitude) && !math.IsInf(*l.Latitude, 0) &&
		!math.IsNaN(*l.Longitude) && !math.IsInf(*l.Longitude, 0)
}

// Coordinates returns the listing's own coordinate pair; only valid when
// HasCoordinates is true.
func (l *Listing) Coordinates() Coordinate {
	return Coordinate{Lat: *l.Latitude, Lon: *l.Longitude}
}

// Stats is the summary block every listings endpoint returns alongside
// the apartment array.
type Stats struct {
	Total          int `json:"total"`
	ExcellentDeals int `json:"excellent_deals"`
	AveragePrice   int `json:"average_price"`
}

// ListingsResponse is the shared envelope of the portal and classifieds
// listing endpoints. A truthy Error means the payload must not be used.
type ListingsResponse struct {
	Apartments  []*Listing `json:"apartments"`
	Stats       Stats      `json:"stats"`
	LastUpdated string     `json:"last_updated,omitempty"`
	Success     *bool      `json:"success,omitempty"`
	Error       string     `json:"error,omitempty"`
	Message     string     `json:"message,omitempty"`
}

// RefreshResult is the envelope of POST /api/refresh.
type RefreshResult struct {
	OK              bool    `json:"ok"`
	Updated         float64 `json:"updated"`
	DurationSeconds float64 `json:"duration_seconds"`
	Succeeded       int     `json:"succeeded"`
	Failed          int     `json:"failed"`
}

// Dashboard is the market/economic-calendar payload. The widget contents
// are rendered elsewhere; only the envelope is typed here.
type Dashboard struct {
	Portfolio        json.RawMessage `json:"portfolio"`
	Trending         json.RawMessage `json:"trending"`
	Gainers          json.RawMessage `json:"gainers"`
	Losers           json.RawMessage `json:"losers"`
	EconomicCalendar json.RawMessage `json:"economic_calendar"`
	Errors           []string        `json:"errors"`
	Updated          float64         `json:"updated"`
}

// InsightReport holds the computed analytics over a visible listing set.
type InsightReport struct {
	TotalListings      int
	ExcellentDeals     int
	GoodDeals          int
	AveragePrice       int
	MinPrice           int
	MaxPrice           int
	BestDeal           *Listing
	ByNeighborhood     map[string]int
	MissingCoordinates int
}

// IntPtr, FloatPtr are small helpers for building listings in fixtures
// and for optional fields parsed from loosely-typed payloads.
func IntPtr(v int) *int           { return &v }
func FloatPtr(v float64) *float64 { return &v }
