package render

import (
	"net/url"
	"strings"

	"rental-radar/models"
)

// MediaKind is the single visual treatment chosen for a card.
type MediaKind int

const (
	MediaCarousel    MediaKind = iota // >1 image
	MediaThumbnail                    // exactly one image
	MediaMapTile                      // no image, usable coordinate
	MediaPlaceholder                  // text + external map-search link
)

// SelectMedia picks exactly one treatment in fixed priority order. The
// coordinate is the listing's own or the geocode resolver's; a zero
// coordinate means even the resolver had nothing to offer.
func SelectMedia(l *models.Listing, coord models.Coordinate) MediaKind {
	images := len(l.ImageURLs)
	if images > 1 {
		return MediaCarousel
	}
	if images == 1 || l.ThumbnailURL != "" {
		return MediaThumbnail
	}
	if coord.Lat != 0 || coord.Lon != 0 {
		return MediaMapTile
	}
	return MediaPlaceholder
}

// BadgeTier buckets a deal score for badge coloring. Scores outside
// [0,100] are not validated; they fall into the nearest bucket.
type BadgeTier string

const (
	TierExcellent BadgeTier = "excellent"
	TierGood      BadgeTier = "good"
	TierFair      BadgeTier = "fair"
	TierPoor      BadgeTier = "poor"
)

// BadgeTierFor maps a deal score to its tier: ≥80 excellent, ≥65 good,
// ≥50 fair, else poor.
func BadgeTierFor(score int) BadgeTier {
	switch {
	case score >= 80:
		return TierExcellent
	case score >= 65:
		return TierGood
	case score >= 50:
		return TierFair
	default:
		return TierPoor
	}
}

// BadgeColor returns the marker/badge color for a tier.
func BadgeColor(tier BadgeTier) string {
	switch tier {
	case TierExcellent:
		return "#10b981"
	case TierGood:
		return "#3b82f6"
	case TierFair:
		return "#f59e0b"
	default:
		return "#ef4444"
	}
}

// LinkRules holds the per-collection URL normalization inputs.
type LinkRules struct {
	ClassifiedsBase      string // origin prefix for relative classifieds paths
	ClassifiedsSearchURL string // fallback for unusable classifieds URLs
	PortalSearchURL      string // fallback for unusable portal URLs
}

// ResolveLink computes the outbound listing link. Portal URLs are used
// verbatim; relative classifieds paths get the site's base origin; empty
// or unusable URLs fall back to a search-results page, never a dead link.
func ResolveLink(l *models.Listing, rules LinkRules) string {
	raw := strings.TrimSpace(l.URL)

	if l.Source == models.SourceClassifieds {
		if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
			return raw
		}
		if strings.HasPrefix(raw, "/") && rules.ClassifiedsBase != "" {
			return strings.TrimRight(rules.ClassifiedsBase, "/") + raw
		}
		return rules.ClassifiedsSearchURL
	}

	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return rules.PortalSearchURL
}

// MapSearchURL builds the external map-search link used by the
// placeholder treatment.
func MapSearchURL(l *models.Listing, regionName string) string {
	query := strings.TrimSpace(l.Neighborhood)
	if query == "" || strings.EqualFold(query, "unknown") {
		query = regionName
	}
	return "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(query)
}
