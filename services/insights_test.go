package services

import (
	"testing"

	"rental-radar/models"
	"rental-radar/utils"
)

func TestGenerateEmptyReport(t *testing.T) {
	s := NewInsightService(utils.NewLogger(false))
	r := s.Generate(nil)

	if r.TotalListings != 0 || r.ExcellentDeals != 0 || r.BestDeal != nil {
		t.Errorf("empty input should give a zero report, got %+v", r)
	}
}

func TestGenerateCountsAndPriceStats(t *testing.T) {
	s := NewInsightService(utils.NewLogger(false))
	listings := []*models.Listing{
		{Title: "excellent", Neighborhood: "mission", Price: 2200, DealScore: models.IntPtr(85)},
		{Title: "good", Neighborhood: "mission", Price: 2800, DealScore: models.IntPtr(70)},
		{Title: "fair", Neighborhood: "soma", Price: 3400, DealScore: models.IntPtr(55)},
		{Title: "unpriced", Neighborhood: "soma", DealScore: models.IntPtr(40)},
	}

	r := s.Generate(listings)

	if r.TotalListings != 4 {
		t.Errorf("total: got %d", r.TotalListings)
	}
	if r.ExcellentDeals != 1 || r.GoodDeals != 1 {
		t.Errorf("deal tiers: excellent %d, good %d", r.ExcellentDeals, r.GoodDeals)
	}
	// Averages exclude the unknown-price listing: (2200+2800+3400)/3 = 2800.
	if r.AveragePrice != 2800 || r.MinPrice != 2200 || r.MaxPrice != 3400 {
		t.Errorf("price stats: avg %d min %d max %d", r.AveragePrice, r.MinPrice, r.MaxPrice)
	}
	if r.BestDeal == nil || r.BestDeal.Title != "excellent" {
		t.Error("best deal should be the highest-scored listing")
	}
	if r.ByNeighborhood["mission"] != 2 || r.ByNeighborhood["soma"] != 2 {
		t.Errorf("neighborhood counts: %v", r.ByNeighborhood)
	}
}

func TestGenerateTracksMissingCoordinates(t *testing.T) {
	s := NewInsightService(utils.NewLogger(false))
	listings := []*models.Listing{
		{Title: "located", Latitude: models.FloatPtr(37.7), Longitude: models.FloatPtr(-122.4)},
		{Title: "unlocated"},
	}

	r := s.Generate(listings)

	if r.MissingCoordinates != 1 {
		t.Errorf("missing coordinates: got %d, want 1", r.MissingCoordinates)
	}
}

func TestGenerateUnscoredListingsArePoorDeals(t *testing.T) {
	s := NewInsightService(utils.NewLogger(false))
	r := s.Generate([]*models.Listing{{Title: "unscored", Price: 2000}})

	if r.ExcellentDeals != 0 || r.GoodDeals != 0 {
		t.Error("a missing score counts as 0, never as a deal tier")
	}
	if r.BestDeal == nil {
		t.Error("even an unscored listing can be the best of a set of one")
	}
}
