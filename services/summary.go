package services

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"house-price-predictor/models"
	"house-price-predictor/utils"
)

type SummaryService struct {
	logger *utils.Logger
}

func NewSummaryService(logger *utils.Logger) *SummaryService {
	return &SummaryService{logger: logger}
}

func (s *SummaryService) Generate(rows []*models.BatchRow) *models.BatchSummary {
	report := &models.BatchSummary{
		FailuresByKind: make(map[string]int),
		RowsByLocation: make(map[string]int),
	}

	if len(rows) == 0 {
		return report
	}

	report.TotalRows = len(rows)

	var total float64
	for _, r := range rows {
		if r.Err != nil {
			report.Failed++
			report.FailuresByKind[KindOf(r.Err)]++
			continue
		}
		report.Succeeded++
		if r.Input.Location != "" {
			report.RowsByLocation[r.Input.Location]++
		}

		price := r.Result.Price
		total += price
		if report.MostExpensive == nil || price > report.MaxPrice {
			report.MaxPrice = price
			report.MostExpensive = r
		}
		if report.Succeeded == 1 || price < report.MinPrice {
			report.MinPrice = price
		}
	}

	if report.Succeeded > 0 {
		report.AveragePrice = round2(total / float64(report.Succeeded))
		report.MinPrice = round2(report.MinPrice)
		report.MaxPrice = round2(report.MaxPrice)
	}

	s.logger.Debug("[summary] %d rows, %d ok, %d failed", report.TotalRows, report.Succeeded, report.Failed)
	return report
}

func (s *SummaryService) Print(r *models.BatchSummary) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  🏠 BATCH PRICE ESTIMATES\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Rows      : \033[1m%d\033[0m\n", r.TotalRows)
	fmt.Printf("  Priced    : \033[1m%d\033[0m\n", r.Succeeded)
	fmt.Printf("  Failed    : \033[1m%d\033[0m\n", r.Failed)
	for _, kind := range sortedKeys(r.FailuresByKind) {
		fmt.Printf("    %-20s %d\n", kind, r.FailuresByKind[kind])
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Price Statistics\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if r.Succeeded > 0 {
		fmt.Printf("  Average price : \033[1;32m₹%.2f\033[0m\n", r.AveragePrice)
		fmt.Printf("  Minimum price : \033[1;32m₹%.2f\033[0m\n", r.MinPrice)
		fmt.Printf("  Maximum price : \033[1;32m₹%.2f\033[0m\n", r.MaxPrice)
	} else {
		fmt.Printf("  No prices estimated\n")
	}
	fmt.Println()

	if r.MostExpensive != nil {
		in := r.MostExpensive.Input
		fmt.Printf("\033[1;33m  Most Expensive Property\033[0m\n")
		fmt.Printf("  %s\n", thin)
		fmt.Printf("  Row %d: %d BHK, %.0f sqft\n", r.MostExpensive.Index+1, in.BHK, in.TotalSqft)
		fmt.Printf("  Location : %s\n", in.Location)
		fmt.Printf("  Price    : \033[1;31m₹%.2f\033[0m\n", r.MostExpensive.Result.Price)
		fmt.Println()
	}

	fmt.Printf("\033[1;33m  Rows by Location\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.RowsByLocation) == 0 {
		fmt.Printf("  No location data\n")
	} else {
		type locCount struct {
			loc   string
			count int
		}
		var locs []locCount
		for loc, cnt := range r.RowsByLocation {
			locs = append(locs, locCount{loc, cnt})
		}
		sort.Slice(locs, func(i, j int) bool {
			if locs[i].count != locs[j].count {
				return locs[i].count > locs[j].count
			}
			return locs[i].loc < locs[j].loc
		})
		for _, lc := range locs {
			bar := strings.Repeat("█", lc.count)
			fmt.Printf("  %-30s %s (%d)\n", truncate(lc.loc, 28), bar, lc.count)
		}
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
