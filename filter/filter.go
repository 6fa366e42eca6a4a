// Package filter evaluates listings against a typed filter state. The
// state is the single source of truth; UI controls are views bound to it.
package filter

import (
	"strconv"
	"strings"

	"rental-radar/models"
)

// Sort keys understood by the pipeline's sort strategies.
const (
	SortBestDeal  = "best-deal"
	SortPriceLow  = "price-low"
	SortPriceSqft = "price-sqft"
	SortNewest    = "newest"
)

// Bedroom buckets. Any other value is a numeric string; "3" means 3+.
const (
	BedroomsAll    = "all"
	BedroomsStudio = "studio"
)

// AreaAll is the sentinel multi-select option meaning "no area filter".
// It is never stored in SelectedAreas; an empty set means all.
const AreaAll = "all"

// State is the active filter set for one listing collection.
type State struct {
	SelectedAreas []string // slugs; empty = all areas
	Bedrooms      string
	MinPrice      *int
	MaxPrice      *int
	SortKey       string
}

// NewState returns the initial state: all areas, all bedroom counts, no
// price bounds, best-deal ordering.
func NewState() State {
	return State{Bedrooms: BedroomsAll, SortKey: SortBestDeal}
}

// SelectArea adds an area to the multi-select. Selecting the sentinel
// "all" deselects every specific area; selecting a specific area
// implicitly drops the sentinel (an empty set already means all).
func (s *State) SelectArea(value string) {
	if value == AreaAll || value == "" {
		s.SelectedAreas = nil
		return
	}
	for _, v := range s.SelectedAreas {
		if v == value {
			return
		}
	}
	s.SelectedAreas = append(s.SelectedAreas, value)
}

// DeselectArea removes an area from the multi-select.
func (s *State) DeselectArea(value string) {
	out := s.SelectedAreas[:0]
	for _, v := range s.SelectedAreas {
		if v != value {
			out = append(out, v)
		}
	}
	s.SelectedAreas = out
	if len(s.SelectedAreas) == 0 {
		s.SelectedAreas = nil
	}
}

// ParsePrice converts a free-text price bound to a value. Non-numeric or
// empty input means "no constraint", never an error.
func ParsePrice(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

// Slug normalizes a neighborhood name for filter matching: lowercase,
// alphanumeric runs joined by single hyphens. "Noe Valley" → "noe-valley",
// "SoMa/South Beach" → "soma-south-beach".
func Slug(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// Matches reports whether a listing passes the active filter set. It is a
// pure conjunction of the area, bedroom and price predicates.
func Matches(l *models.Listing, s *State) bool {
	return matchesArea(l, s) && matchesBedrooms(l, s) && matchesPrice(l, s)
}

func matchesArea(l *models.Listing, s *State) bool {
	if len(s.SelectedAreas) == 0 {
		return true
	}
	slug := Slug(l.Neighborhood)
	raw := strings.ToLower(l.Neighborhood)
	for _, v := range s.SelectedAreas {
		if slug == v || strings.Contains(slug, v) {
			return true
		}
		if strings.Contains(raw, strings.ReplaceAll(v, "-", " ")) {
			return true
		}
		// Legacy option value from before the table was renamed.
		if v == "pac-heights" && strings.Contains(slug, "pacific-heights") {
			return true
		}
	}
	return false
}

func matchesBedrooms(l *models.Listing, s *State) bool {
	switch s.Bedrooms {
	case BedroomsAll, "":
		return true
	case BedroomsStudio:
		return l.Bedrooms != nil && *l.Bedrooms == 0
	case "3": // 3+ bucket
		return l.Bedrooms != nil && *l.Bedrooms >= 3
	}
	want, err := strconv.Atoi(s.Bedrooms)
	if err != nil {
		return true
	}
	return l.Bedrooms != nil && *l.Bedrooms == want
}

func matchesPrice(l *models.Listing, s *State) bool {
	price := l.Price // missing price compares as 0
	if s.MinPrice != nil && price < *s.MinPrice {
		return false
	}
	if s.MaxPrice != nil && price > *s.MaxPrice {
		return false
	}
	return true
}
