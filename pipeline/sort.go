package pipeline

import (
	"sort"

	"rental-radar/filter"
	"rental-radar/models"
)

// Listings without a price_per_sqft sort after every real value.
const missingPricePerSqft = 999

// Sort orders a listing collection by the named strategy. The input is
// copied, never mutated; ties keep their input order (stable sort), which
// keeps the display order predictable without a secondary key.
func Sort(listings []*models.Listing, key string) []*models.Listing {
	out := make([]*models.Listing, len(listings))
	copy(out, listings)

	switch key {
	case filter.SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price < out[j].Price
		})
	case filter.SortPriceSqft:
		sort.SliceStable(out, func(i, j int) bool {
			return pricePerSqft(out[i]) < pricePerSqft(out[j])
		})
	case filter.SortNewest:
		// Raw string comparison; posted dates share an ISO format.
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].PostedDate > out[j].PostedDate
		})
	default: // best-deal
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Score() > out[j].Score()
		})
	}
	return out
}

func pricePerSqft(l *models.Listing) float64 {
	if l.PricePerSqft == nil {
		return missingPricePerSqft
	}
	return *l.PricePerSqft
}
