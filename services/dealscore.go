package services

import (
	"math"
	"strings"

	"rental-radar/models"
	"rental-radar/utils"
)

// MarketRates maps a hyphenated neighborhood key to its approximate
// monthly rate per bedroom bucket. The "default" key must be present.
type MarketRates map[string]BedroomRates

// BedroomRates holds rates for the four bedroom buckets; units larger
// than 3BR price against the 3BR rate.
type BedroomRates struct {
	Studio  int
	OneBR   int
	TwoBR   int
	ThreeBR int
}

// SFMarketRates returns approximate SF neighborhood rates.
func SFMarketRates() MarketRates {
	return MarketRates{
		"mission":         {2300, 2900, 3900, 4800},
		"soma":            {2500, 3200, 4400, 5200},
		"nob-hill":        {2400, 3000, 4100, 5000},
		"marina":          {2600, 3300, 4600, 5500},
		"sunset":          {2000, 2500, 3400, 4300},
		"richmond":        {2000, 2500, 3400, 4400},
		"castro":          {2400, 2900, 4000, 4900},
		"haight":          {2200, 2800, 3700, 4700},
		"haight-ashbury":  {2200, 2800, 3700, 4700},
		"pac-heights":     {2700, 3400, 4700, 5800},
		"pacific-heights": {2700, 3400, 4700, 5800},
		"inner-sunset":    {2100, 2600, 3500, 4400},
		"default":         {2300, 2900, 3900, 4900},
	}
}

// StanfordMarketRates returns Peninsula rates for the Stanford-area
// collections.
func StanfordMarketRates() MarketRates {
	return MarketRates{
		"palo-alto":      {2200, 2800, 3800, 4800},
		"menlo-park":     {2100, 2700, 3600, 4500},
		"redwood-city":   {1900, 2500, 3300, 4200},
		"mountain-view":  {2100, 2700, 3500, 4400},
		"stanford":       {2300, 2900, 3900, 4900},
		"east-palo-alto": {1700, 2200, 2900, 3700},
		"default":        {2100, 2700, 3600, 4500},
	}
}

func (r BedroomRates) forBedrooms(n int) int {
	switch {
	case n <= 0:
		return r.Studio
	case n == 1:
		return r.OneBR
	case n == 2:
		return r.TwoBR
	default:
		return r.ThreeBR
	}
}

// DealScorer fills in discount_pct, deal_score and a stock analysis
// line for listings the backend delivered unscored.
type DealScorer struct {
	rates  MarketRates
	logger *utils.Logger
}

// NewDealScorer builds a scorer over a region's market-rate table.
func NewDealScorer(rates MarketRates, logger *utils.Logger) *DealScorer {
	return &DealScorer{rates: rates, logger: logger}
}

// ScoreAll fills scores for every listing that lacks one. Listings
// already scored by the backend are left untouched.
func (s *DealScorer) ScoreAll(listings []*models.Listing) {
	scored := 0
	for _, l := range listings {
		if l.DealScore != nil {
			continue
		}
		s.score(l)
		scored++
	}
	if scored > 0 {
		s.logger.Debug("[dealscore] Scored %d unscored listings locally", scored)
	}
}

// score computes discount against the neighborhood market rate and maps
// it onto a 0–100 score. Below market is positive discount and a higher
// score; amenity bonuses are small fixed bumps.
func (s *DealScorer) score(l *models.Listing) {
	if l.Price <= 0 {
		l.DealScore = models.IntPtr(0)
		l.DealAnalysis = "Price information missing."
		l.DiscountPct = nil
		return
	}
	if l.Bedrooms == nil {
		l.DealScore = models.IntPtr(40)
		l.DealAnalysis = "Bedroom count not specified — difficult to evaluate value."
		l.DiscountPct = nil
		return
	}

	rate := s.marketRate(l.Neighborhood, *l.Bedrooms)
	if rate <= 0 {
		l.DealScore = models.IntPtr(50)
		l.DiscountPct = nil
		return
	}

	discount := math.Round((float64(rate)-float64(l.Price))/float64(rate)*1000) / 10
	l.DiscountPct = models.FloatPtr(discount)

	base := 50 + int(discount)
	switch l.LaundryType {
	case models.LaundryInUnit:
		base += 3
	case models.LaundryInBuilding:
		base += 1
	}
	if l.Parking {
		base += 2
	}
	if base > 100 {
		base = 100
	}
	if base < 0 {
		base = 0
	}
	l.DealScore = models.IntPtr(base)
}

// marketRate resolves a neighborhood to its rate table, trying the
// hyphenated key first and the spaced variant second, then "default".
func (s *DealScorer) marketRate(neighborhood string, bedrooms int) int {
	key := strings.ReplaceAll(strings.TrimSpace(strings.ToLower(neighborhood)), " ", "-")
	rates, ok := s.rates[key]
	if !ok {
		rates, ok = s.rates[strings.ReplaceAll(key, "-", " ")]
	}
	if !ok {
		rates = s.rates["default"]
	}
	return rates.forBedrooms(bedrooms)
}
