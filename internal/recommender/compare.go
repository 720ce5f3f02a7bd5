package recommender

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/kola-market/market-cli/internal/model"
)

// RegionSummary aggregates one region's quarterly recommendation stats.
type RegionSummary struct {
	TopScore            float64  `json:"quarterly_top_score"`
	AverageScore        float64  `json:"quarterly_average_score"`
	BestProduct         string   `json:"best_quarterly_product"`
	Population          int      `json:"population"`
	IncomeLevel         string   `json:"income_level"`
	InfrastructureScore float64  `json:"infrastructure_score"`
	ProfitPotential     float64  `json:"quarterly_profit_potential"`
	DominantWork        []string `json:"dominant_work"`
	KeyVenueCount       int      `json:"key_venues_count"`
}

// ProductOpportunity records where a product scores best across the
// compared regions.
type ProductOpportunity struct {
	BestRegion      string             `json:"best_location"`
	BestScore       float64            `json:"best_score"`
	QuarterlyProfit float64            `json:"best_quarterly_profit"`
	RegionScores    map[string]float64 `json:"location_performance"`
}

// MarketInsights names the standout regions of a comparison.
type MarketInsights struct {
	BestOverall      string `json:"best_overall_quarterly_location"`
	HighestPotential string `json:"highest_potential_location"`
	LargestMarket    string `json:"largest_market"`
	MostProfitable   string `json:"most_profitable_quarterly"`
	Summary          string `json:"comparison_summary"`
}

// QuarterContext carries the economic backdrop of the analyzed quarter.
type QuarterContext struct {
	InflationRate     float64  `json:"inflation_rate"`
	HolidayMultiplier float64  `json:"holiday_multiplier"`
	KeyEvents         []string `json:"key_events"`
}

// Comparison is the result of comparing two or more regions for a quarter.
type Comparison struct {
	Quarter            string                        `json:"quarter"`
	QuarterDescription string                        `json:"quarter_description"`
	Regions            []string                      `json:"locations_compared"`
	CategoryFilter     string                        `json:"filter_applied,omitempty"`
	Summaries          map[string]RegionSummary      `json:"locations"`
	BestOpportunities  map[string]ProductOpportunity `json:"best_opportunities"`
	Insights           MarketInsights                `json:"market_insights"`
	QuarterContext     QuarterContext                `json:"quarterly_context"`
}

// CompareRegions runs the quarterly model for each region and aggregates
// the results into a cross-region comparison. At least two regions are
// required. An optional category filter matches case-insensitively against
// the display category.
func (r *Recommender) CompareRegions(ctx context.Context, regions []string, quarter, categoryFilter string) (*Comparison, error) {
	if len(regions) < 2 {
		return nil, eris.Wrapf(ErrInvalidInput, "recommender: need at least 2 regions to compare, got %d", len(regions))
	}
	quarterInfo, ok := r.store.Quarter(quarter)
	if !ok {
		return nil, eris.Wrapf(ErrInvalidInput, "recommender: unknown quarter %q", quarter)
	}
	for _, region := range regions {
		if r.store.Region(region) == nil {
			return nil, eris.Wrapf(ErrInvalidInput,
				"recommender: unknown region %q (available: %s)",
				region, strings.Join(r.store.RegionNames(), ", "))
		}
	}

	economic := r.store.Economic()
	cmp := &Comparison{
		Quarter:            quarter,
		QuarterDescription: quarterInfo.Description,
		Regions:            regions,
		CategoryFilter:     categoryFilter,
		Summaries:          make(map[string]RegionSummary, len(regions)),
		BestOpportunities:  make(map[string]ProductOpportunity),
		QuarterContext: QuarterContext{
			InflationRate:     economic.InflationFor(quarter),
			HolidayMultiplier: quarterInfo.HolidayMultiplier,
			KeyEvents:         quarterInfo.Events,
		},
	}

	all := make(map[string][]model.Recommendation, len(regions))
	for _, regionName := range regions {
		recs, err := r.RecommendQuarter(ctx, regionName, quarter, 10)
		if err != nil {
			return nil, err
		}
		if categoryFilter != "" {
			recs = filterByCategory(recs, categoryFilter)
		}
		all[regionName] = recs
		cmp.Summaries[regionName] = r.summarizeRegion(regionName, recs)
	}

	r.bestOpportunities(cmp, all)
	buildMarketInsights(cmp, quarter)

	return cmp, nil
}

func (r *Recommender) summarizeRegion(regionName string, recs []model.Recommendation) RegionSummary {
	region := r.store.Region(regionName)

	summary := RegionSummary{
		Population:          region.Population,
		IncomeLevel:         region.IncomeLevel,
		InfrastructureScore: round2(region.InfrastructureScore()),
		DominantWork:        region.DominantWork,
		KeyVenueCount: region.KeyLocations["churches"] + region.KeyLocations["schools"] +
			region.KeyLocations["companies"] + region.KeyLocations["markets"],
	}

	if len(recs) == 0 {
		return summary
	}

	summary.TopScore = recs[0].BusinessScore
	summary.BestProduct = recs[0].Product

	total := 0.0
	for _, rec := range recs {
		total += rec.BusinessScore
		summary.ProfitPotential += rec.Analysis.Financial.EstimatedMonthlyProfit * 3
	}
	summary.AverageScore = round2(total / float64(len(recs)))
	summary.ProfitPotential = round2(summary.ProfitPotential)

	return summary
}

func (r *Recommender) bestOpportunities(cmp *Comparison, all map[string][]model.Recommendation) {
	for _, regionName := range cmp.Regions {
		for _, rec := range all[regionName] {
			opp, ok := cmp.BestOpportunities[rec.Product]
			if !ok {
				opp = ProductOpportunity{RegionScores: make(map[string]float64)}
			}
			opp.RegionScores[regionName] = rec.BusinessScore
			if rec.BusinessScore > opp.BestScore {
				opp.BestRegion = regionName
				opp.BestScore = rec.BusinessScore
				opp.QuarterlyProfit = round2(rec.Analysis.Financial.EstimatedMonthlyProfit * 3)
			}
			cmp.BestOpportunities[rec.Product] = opp
		}
	}
}

func buildMarketInsights(cmp *Comparison, quarter string) {
	var bestOverall, highestPotential, largestMarket, mostProfitable string
	var bestAvg, bestTop, bestProfit float64
	var largestPop int

	for _, regionName := range cmp.Regions {
		s := cmp.Summaries[regionName]
		if bestOverall == "" || s.AverageScore > bestAvg {
			bestOverall, bestAvg = regionName, s.AverageScore
		}
		if highestPotential == "" || s.TopScore > bestTop {
			highestPotential, bestTop = regionName, s.TopScore
		}
		if largestMarket == "" || s.Population > largestPop {
			largestMarket, largestPop = regionName, s.Population
		}
		if mostProfitable == "" || s.ProfitPotential > bestProfit {
			mostProfitable, bestProfit = regionName, s.ProfitPotential
		}
	}

	cmp.Insights = MarketInsights{
		BestOverall:      bestOverall,
		HighestPotential: highestPotential,
		LargestMarket:    largestMarket,
		MostProfitable:   mostProfitable,
		Summary:          fmt.Sprintf("Analyzed %d locations for %s", len(cmp.Regions), quarter),
	}
}

func filterByCategory(recs []model.Recommendation, filter string) []model.Recommendation {
	filter = strings.ToLower(filter)
	out := recs[:0:0]
	for _, rec := range recs {
		if strings.Contains(strings.ToLower(rec.Category), filter) {
			out = append(out, rec)
		}
	}
	return out
}
