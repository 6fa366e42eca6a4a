package render

import (
	"testing"

	"rental-radar/models"
)

var somewhere = models.Coordinate{Lat: 37.7749, Lon: -122.4194}

func TestSelectMediaPriorityOrder(t *testing.T) {
	tests := []struct {
		name  string
		l     *models.Listing
		coord models.Coordinate
		want  MediaKind
	}{
		{"two images → carousel",
			&models.Listing{ImageURLs: []string{"a.jpg", "b.jpg"}}, somewhere, MediaCarousel},
		{"carousel wins over thumbnail",
			&models.Listing{ImageURLs: []string{"a.jpg", "b.jpg"}, ThumbnailURL: "t.jpg"}, somewhere, MediaCarousel},
		{"one image → thumbnail",
			&models.Listing{ImageURLs: []string{"a.jpg"}}, somewhere, MediaThumbnail},
		{"thumbnail url only → thumbnail",
			&models.Listing{ThumbnailURL: "t.jpg"}, somewhere, MediaThumbnail},
		{"no image, coordinate → map tile",
			&models.Listing{}, somewhere, MediaMapTile},
		{"nothing at all → placeholder",
			&models.Listing{}, models.Coordinate{}, MediaPlaceholder},
	}
	for _, tt := range tests {
		if got := SelectMedia(tt.l, tt.coord); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestExactlyOneTreatmentChosen(t *testing.T) {
	listings := []*models.Listing{
		{ImageURLs: []string{"a.jpg", "b.jpg", "c.jpg"}},
		{ImageURLs: []string{"a.jpg"}},
		{ThumbnailURL: "t.jpg"},
		{},
	}
	for i, l := range listings {
		kind := SelectMedia(l, somewhere)
		if kind < MediaCarousel || kind > MediaPlaceholder {
			t.Errorf("listing %d: invalid media kind %v", i, kind)
		}
	}
}

func TestBadgeTiers(t *testing.T) {
	tests := []struct {
		score int
		want  BadgeTier
	}{
		{100, TierExcellent},
		{80, TierExcellent},
		{79, TierGood},
		{65, TierGood},
		{64, TierFair},
		{50, TierFair},
		{49, TierPoor},
		{0, TierPoor},
		{120, TierExcellent}, // out-of-range scores are not validated
		{-5, TierPoor},
	}
	for _, tt := range tests {
		if got := BadgeTierFor(tt.score); got != tt.want {
			t.Errorf("BadgeTierFor(%d) = %q; want %q", tt.score, got, tt.want)
		}
	}
}

func TestBadgeColorsAreDistinct(t *testing.T) {
	seen := map[string]BadgeTier{}
	for _, tier := range []BadgeTier{TierExcellent, TierGood, TierFair, TierPoor} {
		c := BadgeColor(tier)
		if c == "" {
			t.Errorf("tier %q has no color", tier)
		}
		if prev, dup := seen[c]; dup {
			t.Errorf("tiers %q and %q share color %s", prev, tier, c)
		}
		seen[c] = tier
	}
}

func TestResolveLink(t *testing.T) {
	rules := LinkRules{
		ClassifiedsBase:      "https://sfbay.craigslist.org",
		ClassifiedsSearchURL: "https://sfbay.craigslist.org/search/sfc/apa",
		PortalSearchURL:      "https://www.google.com/search?q=san+francisco+rental+listing",
	}

	tests := []struct {
		name string
		l    *models.Listing
		want string
	}{
		{"portal absolute url verbatim",
			&models.Listing{Source: models.SourcePortal, URL: "https://portal.example/l/1"},
			"https://portal.example/l/1"},
		{"portal empty url → search fallback",
			&models.Listing{Source: models.SourcePortal},
			rules.PortalSearchURL},
		{"portal relative url is unusable → search fallback",
			&models.Listing{Source: models.SourcePortal, URL: "/l/1"},
			rules.PortalSearchURL},
		{"classifieds absolute url verbatim",
			&models.Listing{Source: models.SourceClassifieds, URL: "https://sfbay.craigslist.org/sfc/apa/123.html"},
			"https://sfbay.craigslist.org/sfc/apa/123.html"},
		{"classifieds relative path gets base origin",
			&models.Listing{Source: models.SourceClassifieds, URL: "/sfc/apa/123.html"},
			"https://sfbay.craigslist.org/sfc/apa/123.html"},
		{"classifieds empty url → search fallback",
			&models.Listing{Source: models.SourceClassifieds},
			rules.ClassifiedsSearchURL},
		{"classifieds junk url → search fallback",
			&models.Listing{Source: models.SourceClassifieds, URL: "javascript:void(0)"},
			rules.ClassifiedsSearchURL},
	}
	for _, tt := range tests {
		if got := ResolveLink(tt.l, rules); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestMapSearchURL(t *testing.T) {
	l := &models.Listing{Neighborhood: "Noe Valley"}
	got := MapSearchURL(l, "San Francisco")
	want := "https://www.google.com/maps/search/?api=1&query=Noe+Valley"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	unknown := &models.Listing{Neighborhood: "Unknown"}
	if got := MapSearchURL(unknown, "San Francisco"); got != "https://www.google.com/maps/search/?api=1&query=San+Francisco" {
		t.Errorf("unknown neighborhood should search the region, got %q", got)
	}
}
