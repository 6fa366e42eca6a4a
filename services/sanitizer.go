package services

import (
	"math"
	"strings"
	"unicode"

	"rental-radar/models"
	"rental-radar/utils"
)

// Sanitizer normalizes listings as they arrive from the backend before
// they reach the pipeline: whitespace cleanup, URL dedup, invalid
// coordinate clearing and derived-field backfill.
type Sanitizer struct {
	logger *utils.Logger
}

// NewSanitizer creates a Sanitizer with the given logger.
func NewSanitizer(logger *utils.Logger) *Sanitizer {
	return &Sanitizer{logger: logger}
}

// Sanitize processes raw listings and returns the cleaned subset.
// Listings without any URL are kept — the card renderer has a search
// fallback — but duplicates of the same URL are dropped.
func (s *Sanitizer) Sanitize(raw []*models.Listing) []*models.Listing {
	seen := utils.NewSeenSet()
	result := make([]*models.Listing, 0, len(raw))

	for _, l := range raw {
		if l == nil {
			continue
		}
		l.URL = strings.TrimSpace(l.URL)
		if l.URL != "" {
			if seen.Contains(l.URL) {
				s.logger.Debug("[sanitizer] Duplicate URL skipped: %s", l.URL)
				continue
			}
			seen.Add(l.URL)
		}

		l.Title = normalizeText(l.Title)
		l.Neighborhood = normalizeText(l.Neighborhood)
		l.DealAnalysis = normalizeText(l.DealAnalysis)
		l.LaundryType = strings.ToLower(strings.TrimSpace(l.LaundryType))

		clearInvalidCoordinates(l)
		backfillPricePerSqft(l)

		if l.Price < 0 {
			l.Price = 0
		}

		result = append(result, l)
	}

	s.logger.Info("[sanitizer] Sanitized %d → %d listings (dropped %d duplicates)",
		len(raw), len(result), len(raw)-len(result))
	return result
}

// clearInvalidCoordinates nils out non-finite or half-missing pairs so
// downstream code only ever sees a usable pair or none at all.
func clearInvalidCoordinates(l *models.Listing) {
	bad := func(p *float64) bool {
		return p == nil || math.IsNaN(*p) || math.IsInf(*p, 0)
	}
	if l.Latitude == nil && l.Longitude == nil {
		return
	}
	if bad(l.Latitude) || bad(l.Longitude) {
		l.Latitude, l.Longitude = nil, nil
	}
}

// backfillPricePerSqft derives price_per_sqft when the backend omitted
// it but both inputs are present.
func backfillPricePerSqft(l *models.Listing) {
	if l.PricePerSqft != nil {
		return
	}
	if l.Price > 0 && l.Sqft != nil && *l.Sqft > 0 {
		v := math.Round(float64(l.Price)/float64(*l.Sqft)*100) / 100
		l.PricePerSqft = models.FloatPtr(v)
	}
}

// normalizeText strips leading/trailing whitespace and collapses
// internal whitespace runs.
func normalizeText(s string) string {
	s = strings.TrimSpace(s)
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}
