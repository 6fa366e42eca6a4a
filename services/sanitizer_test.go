package services

import (
	"math"
	"testing"

	"rental-radar/models"
	"rental-radar/utils"
)

func newSanitizer() *Sanitizer {
	return NewSanitizer(utils.NewLogger(false))
}

func TestSanitizeDropsDuplicateURLs(t *testing.T) {
	s := newSanitizer()
	raw := []*models.Listing{
		{Title: "A", URL: "https://x.example/1"},
		{Title: "B", URL: "https://x.example/2"},
		{Title: "A again", URL: "https://x.example/1"},
	}

	out := s.Sanitize(raw)

	if len(out) != 2 {
		t.Fatalf("expected 2 listings after dedup, got %d", len(out))
	}
	if out[0].Title != "A" || out[1].Title != "B" {
		t.Errorf("first occurrence should win, got %q, %q", out[0].Title, out[1].Title)
	}
}

func TestSanitizeKeepsURLLessListings(t *testing.T) {
	s := newSanitizer()
	out := s.Sanitize([]*models.Listing{
		{Title: "no url"},
		{Title: "also no url"},
	})

	if len(out) != 2 {
		t.Errorf("URL-less listings are renderable and must be kept, got %d", len(out))
	}
}

func TestSanitizeNormalizesText(t *testing.T) {
	s := newSanitizer()
	out := s.Sanitize([]*models.Listing{
		{Title: "  Sunny   Mission\t1BR ", Neighborhood: " Nob  Hill "},
	})

	if out[0].Title != "Sunny Mission 1BR" {
		t.Errorf("title: got %q", out[0].Title)
	}
	if out[0].Neighborhood != "Nob Hill" {
		t.Errorf("neighborhood: got %q", out[0].Neighborhood)
	}
}

func TestSanitizeClearsInvalidCoordinates(t *testing.T) {
	s := newSanitizer()
	nan := math.NaN()
	inf := math.Inf(1)

	out := s.Sanitize([]*models.Listing{
		{Title: "nan lat", Latitude: &nan, Longitude: models.FloatPtr(-122.4)},
		{Title: "inf lon", Latitude: models.FloatPtr(37.7), Longitude: &inf},
		{Title: "half pair", Latitude: models.FloatPtr(37.7)},
		{Title: "good", Latitude: models.FloatPtr(37.7), Longitude: models.FloatPtr(-122.4)},
	})

	for _, l := range out[:3] {
		if l.Latitude != nil || l.Longitude != nil {
			t.Errorf("%s: unusable pair should be cleared entirely", l.Title)
		}
	}
	if !out[3].HasCoordinates() {
		t.Error("a finite pair must survive sanitization")
	}
}

func TestSanitizeBackfillsPricePerSqft(t *testing.T) {
	s := newSanitizer()
	out := s.Sanitize([]*models.Listing{
		{Title: "derivable", Price: 2600, Sqft: models.IntPtr(650)},
		{Title: "provided", Price: 2600, Sqft: models.IntPtr(650), PricePerSqft: models.FloatPtr(3.5)},
		{Title: "no sqft", Price: 2600},
	})

	if out[0].PricePerSqft == nil || *out[0].PricePerSqft != 4.0 {
		t.Errorf("derivable: got %v, want 4.0", out[0].PricePerSqft)
	}
	if *out[1].PricePerSqft != 3.5 {
		t.Error("a backend-provided value must not be overwritten")
	}
	if out[2].PricePerSqft != nil {
		t.Error("no sqft means no derived value")
	}
}

func TestSanitizeNegativePriceBecomesUnknown(t *testing.T) {
	s := newSanitizer()
	out := s.Sanitize([]*models.Listing{{Title: "weird", Price: -100}})

	if out[0].Price != 0 {
		t.Errorf("negative price should normalize to unknown (0), got %d", out[0].Price)
	}
}
