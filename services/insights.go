package services

import (
	"fmt"
	"sort"
	"strings"

	"rental-radar/models"
	"rental-radar/utils"
)

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

func (s *InsightService) Generate(listings []*models.Listing) *models.InsightReport {
	report := &models.InsightReport{
		ByNeighborhood: make(map[string]int),
	}

	if len(listings) == 0 {
		return report
	}

	report.TotalListings = len(listings)

	var priced []*models.Listing

	for _, l := range listings {
		score := l.Score()
		if score >= 80 {
			report.ExcellentDeals++
		} else if score >= 65 {
			report.GoodDeals++
		}
		if l.Price > 0 {
			priced = append(priced, l)
		}
		if l.Neighborhood != "" {
			report.ByNeighborhood[l.Neighborhood]++
		}
		if !l.HasCoordinates() {
			report.MissingCoordinates++
		}
		if report.BestDeal == nil || score > report.BestDeal.Score() {
			report.BestDeal = l
		}
	}

	// Price stats over listings with a known price only.
	if len(priced) > 0 {
		report.MinPrice = priced[0].Price
		report.MaxPrice = priced[0].Price
		total := 0
		for _, l := range priced {
			total += l.Price
			if l.Price < report.MinPrice {
				report.MinPrice = l.Price
			}
			if l.Price > report.MaxPrice {
				report.MaxPrice = l.Price
			}
		}
		report.AveragePrice = total / len(priced)
	}

	return report
}

func (s *InsightService) Print(name string, r *models.InsightReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  📊 %s INSIGHTS\033[0m\n", strings.ToUpper(name))
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	// Overview
	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Total listings      : \033[1m%d\033[0m\n", r.TotalListings)
	fmt.Printf("  Excellent deals     : \033[1;32m%d\033[0m\n", r.ExcellentDeals)
	fmt.Printf("  Good deals          : \033[1;32m%d\033[0m\n", r.GoodDeals)
	fmt.Printf("  Missing coordinates : \033[1m%d\033[0m\n", r.MissingCoordinates)
	fmt.Println()

	// Price Stats
	fmt.Printf("\033[1;33m  Price Statistics (monthly)\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if r.AveragePrice > 0 {
		fmt.Printf("  Average price : \033[1;32m$%d\033[0m\n", r.AveragePrice)
		fmt.Printf("  Minimum price : \033[1;32m$%d\033[0m\n", r.MinPrice)
		fmt.Printf("  Maximum price : \033[1;32m$%d\033[0m\n", r.MaxPrice)
	} else {
		fmt.Printf("  No price data available\n")
	}
	fmt.Println()

	// Best Deal
	if r.BestDeal != nil {
		fmt.Printf("\033[1;33m  Best Deal\033[0m\n")
		fmt.Printf("  %s\n", thin)
		fmt.Printf("  %s\n", truncate(r.BestDeal.Title, 50))
		fmt.Printf("  Neighborhood : %s\n", r.BestDeal.Neighborhood)
		if r.BestDeal.Price > 0 {
			fmt.Printf("  Price        : \033[1;32m$%d/mo\033[0m\n", r.BestDeal.Price)
		}
		fmt.Printf("  Deal score   : \033[1;32m%d\033[0m\n", r.BestDeal.Score())
		fmt.Println()
	}

	// Listings by Neighborhood
	fmt.Printf("\033[1;33m  Listings by Neighborhood\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.ByNeighborhood) == 0 {
		fmt.Printf("  No neighborhood data\n")
	} else {
		type hoodCount struct {
			hood  string
			count int
		}
		var hoods []hoodCount
		for hood, cnt := range r.ByNeighborhood {
			hoods = append(hoods, hoodCount{hood, cnt})
		}
		sort.Slice(hoods, func(i, j int) bool {
			if hoods[i].count != hoods[j].count {
				return hoods[i].count > hoods[j].count
			}
			return hoods[i].hood < hoods[j].hood
		})
		for _, hc := range hoods {
			bar := strings.Repeat("█", hc.count)
			fmt.Printf("  %-30s %s (%d)\n", truncate(hc.hood, 28), bar, hc.count)
		}
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
