package geo

import (
	"strings"

	"rental-radar/models"
)

// Normalize lowercases, trims and collapses whitespace, then joins the
// words with hyphens. "  Noe   Valley " → "noe-valley".
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), "-")
}

// Resolve maps free-text neighborhood input to a reference coordinate.
// It never fails: an unrecognized name falls through the alias table,
// the compound-name split, and the substring fallback chain, and ends at
// the region's default coordinate. Absence is expected, not an error.
func Resolve(neighborhood string, region *Region) (lat, lon float64) {
	if c, ok := lookup(Normalize(neighborhood), region); ok {
		return c.Lat, c.Lon
	}

	// Compound names like "SoMa/South Beach": first part that hits wins.
	if strings.Contains(neighborhood, "/") {
		for _, part := range strings.Split(neighborhood, "/") {
			if c, ok := lookup(Normalize(part), region); ok {
				return c.Lat, c.Lon
			}
		}
	}

	key := Normalize(neighborhood)
	spaced := strings.ReplaceAll(key, "-", " ")
	for _, fb := range region.Fallbacks {
		if strings.Contains(key, fb.Substring) || strings.Contains(spaced, fb.Substring) {
			return fb.Coord.Lat, fb.Coord.Lon
		}
	}

	return region.Default.Lat, region.Default.Lon
}

// lookup tries the hyphenated key and its space-joined variant — region
// tables may have been authored with either separator.
func lookup(key string, region *Region) (models.Coordinate, bool) {
	if c, found := region.Aliases[key]; found {
		return c, true
	}
	if c, found := region.Aliases[strings.ReplaceAll(key, "-", " ")]; found {
		return c, true
	}
	return models.Coordinate{}, false
}

// IsGenericLocation reports whether the neighborhood text carries no real
// neighborhood information for the region (empty, "Unknown", or a bare
// city name). Such listings are candidates for reverse geocoding.
func IsGenericLocation(neighborhood string, region *Region) bool {
	n := strings.ToLower(strings.TrimSpace(neighborhood))
	if n == "" {
		return true
	}
	for _, g := range region.GenericNames {
		if n == g {
			return true
		}
	}
	return false
}

// DisplayName converts an alias key back to a display form:
// "nob-hill" → "Nob Hill".
func DisplayName(key string) string {
	words := strings.Split(key, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
