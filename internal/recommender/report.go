package recommender

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/kola-market/market-cli/internal/model"
)

// Risk level thresholds on the business score.
const (
	lowRiskThreshold    = 8.0
	mediumRiskThreshold = 6.0
)

// CategorySummary aggregates recommendations of one category in one region.
type CategorySummary struct {
	Count                int     `json:"count"`
	AverageScore         float64 `json:"avg_score"`
	TotalProfitPotential float64 `json:"total_profit_potential"`
}

// ReportEntry is one ranked product within a region's report section.
type ReportEntry struct {
	Product                  string  `json:"product"`
	Category                 string  `json:"category"`
	BusinessScore            float64 `json:"business_score"`
	QuarterlyProfitPotential float64 `json:"quarterly_profit_potential"`
	RiskLevel                string  `json:"risk_level"`
}

// RegionReport is the per-region section of a quarterly report.
type RegionReport struct {
	RegionType           string                     `json:"region_type"`
	Population           int                        `json:"population"`
	EconomicBase         []string                   `json:"economic_base"`
	InfrastructureScore  float64                    `json:"infrastructure_score"`
	KeyVenues            map[string]int             `json:"key_venues"`
	CategorySummaries    map[string]CategorySummary `json:"category_summary"`
	TopRecommendations   []ReportEntry              `json:"top_recommendations"`
	TotalProfitPotential float64                    `json:"total_profit_potential"`
	AverageScore         float64                    `json:"avg_business_score"`
	ImportedCount        int                        `json:"imported_products_count"`
	LocalCount           int                        `json:"local_products_count"`
	CurrencyRiskExposure float64                    `json:"currency_risk_exposure"`
}

// UniversalOpportunity is a product that ranks across most compared regions.
type UniversalOpportunity struct {
	Product      string   `json:"product"`
	Regions      []string `json:"locations"`
	AverageScore float64  `json:"avg_score"`
	BestRegion   string   `json:"best_location"`
	BestScore    float64  `json:"best_score"`
}

// Specialization records a category where one region clearly outperforms
// the others.
type Specialization struct {
	Category  string  `json:"category"`
	Score     float64 `json:"score"`
	Advantage float64 `json:"advantage"`
}

// RegionSpecialization groups a region's strongest categories.
type RegionSpecialization struct {
	Region          string           `json:"location"`
	Specializations []Specialization `json:"specializations"`
}

// RegionRanking pairs a region with its average business score.
type RegionRanking struct {
	Region       string  `json:"location"`
	AverageScore float64 `json:"avg_business_score"`
}

// CrossRegionInsights aggregates findings that span multiple regions.
type CrossRegionInsights struct {
	BestOverallMarket       string                 `json:"best_overall_market"`
	MarketRankings          []RegionRanking        `json:"market_rankings"`
	UniversalOpportunities  []UniversalOpportunity `json:"universal_opportunities"`
	RegionalSpecializations []RegionSpecialization `json:"regional_specializations"`
}

// Report is a full quarterly business report across one or more regions.
type Report struct {
	ID                 string                  `json:"report_id"`
	AnalysisDate       string                  `json:"analysis_date"`
	Quarter            string                  `json:"target_quarter"`
	QuarterDescription string                  `json:"quarter_description"`
	Season             string                  `json:"season"`
	HolidayMultiplier  float64                 `json:"holiday_multiplier"`
	KeyEvents          []string                `json:"key_events"`
	EconomicContext    QuarterContext          `json:"economic_factors"`
	USDToCedisRate     float64                 `json:"usd_cedis_rate"`
	CurrencyVolatility float64                 `json:"currency_volatility"`
	Regions            map[string]RegionReport `json:"locations"`
	CrossRegion        *CrossRegionInsights    `json:"cross_location_insights,omitempty"`
}

// QuarterlyReport builds a comprehensive quarterly business report for the
// given regions. Cross-region insights are included when more than one
// region is analyzed.
func (r *Recommender) QuarterlyReport(ctx context.Context, regions []string, quarter string) (*Report, error) {
	quarterInfo, ok := r.store.Quarter(quarter)
	if !ok {
		return nil, eris.Wrapf(ErrInvalidInput, "recommender: unknown quarter %q", quarter)
	}
	if len(regions) == 0 {
		return nil, eris.Wrap(ErrInvalidInput, "recommender: no regions given")
	}
	for _, region := range regions {
		if r.store.Region(region) == nil {
			return nil, eris.Wrapf(ErrInvalidInput,
				"recommender: unknown region %q (available: %s)",
				region, strings.Join(r.store.RegionNames(), ", "))
		}
	}

	economic := r.store.Economic()
	report := &Report{
		ID:                 uuid.NewString(),
		AnalysisDate:       time.Now().Format("2006-01-02"),
		Quarter:            quarter,
		QuarterDescription: quarterInfo.Description,
		Season:             quarterInfo.Season,
		HolidayMultiplier:  quarterInfo.HolidayMultiplier,
		KeyEvents:          quarterInfo.Events,
		EconomicContext: QuarterContext{
			InflationRate:     economic.InflationFor(quarter),
			HolidayMultiplier: quarterInfo.HolidayMultiplier,
			KeyEvents:         quarterInfo.Events,
		},
		USDToCedisRate:     economic.USDToCedisRate,
		CurrencyVolatility: economic.CurrencyVolatility,
		Regions:            make(map[string]RegionReport, len(regions)),
	}

	all := make(map[string][]model.Recommendation, len(regions))
	for _, regionName := range regions {
		recs, err := r.RecommendQuarter(ctx, regionName, quarter, 10)
		if err != nil {
			return nil, err
		}
		all[regionName] = recs
		report.Regions[regionName] = r.regionReport(regionName, recs)
	}

	if len(regions) > 1 {
		report.CrossRegion = r.crossRegionInsights(regions, report, all)
	}

	return report, nil
}

func (r *Recommender) regionReport(regionName string, recs []model.Recommendation) RegionReport {
	region := r.store.Region(regionName)

	rr := RegionReport{
		RegionType:          model.DisplayName(region.Type),
		Population:          region.Population,
		EconomicBase:        region.DominantWork,
		InfrastructureScore: round2(region.InfrastructureScore()),
		KeyVenues: map[string]int{
			"churches":  region.KeyLocations["churches"],
			"schools":   region.KeyLocations["schools"],
			"companies": region.KeyLocations["companies"],
			"markets":   region.KeyLocations["markets"],
		},
		CategorySummaries: make(map[string]CategorySummary),
	}

	var totalScore, importedProfit float64
	for _, rec := range recs {
		quarterlyProfit := rec.Analysis.Financial.EstimatedMonthlyProfit * 3

		cs := rr.CategorySummaries[rec.Category]
		cs.Count++
		cs.AverageScore += rec.BusinessScore
		cs.TotalProfitPotential = round2(cs.TotalProfitPotential + quarterlyProfit)
		rr.CategorySummaries[rec.Category] = cs

		totalScore += rec.BusinessScore
		rr.TotalProfitPotential += quarterlyProfit

		if product := r.store.Product(rec.ProductID); product != nil && product.ImportDependent {
			rr.ImportedCount++
			importedProfit += quarterlyProfit
		} else {
			rr.LocalCount++
		}
	}
	for cat, cs := range rr.CategorySummaries {
		cs.AverageScore = round2(cs.AverageScore / float64(cs.Count))
		rr.CategorySummaries[cat] = cs
	}

	for _, rec := range recs[:min(len(recs), 5)] {
		rr.TopRecommendations = append(rr.TopRecommendations, ReportEntry{
			Product:                  rec.Product,
			Category:                 rec.Category,
			BusinessScore:            rec.BusinessScore,
			QuarterlyProfitPotential: round2(rec.Analysis.Financial.EstimatedMonthlyProfit * 3),
			RiskLevel:                riskLevel(rec.BusinessScore),
		})
	}

	if len(recs) > 0 {
		rr.AverageScore = round2(totalScore / float64(len(recs)))
		if rr.TotalProfitPotential > 0 {
			rr.CurrencyRiskExposure = round2(importedProfit / rr.TotalProfitPotential * 100)
		}
	}
	rr.TotalProfitPotential = round2(rr.TotalProfitPotential)

	return rr
}

func (r *Recommender) crossRegionInsights(regions []string, report *Report, all map[string][]model.Recommendation) *CrossRegionInsights {
	insights := &CrossRegionInsights{}

	for _, regionName := range regions {
		insights.MarketRankings = append(insights.MarketRankings, RegionRanking{
			Region:       regionName,
			AverageScore: report.Regions[regionName].AverageScore,
		})
	}
	sort.SliceStable(insights.MarketRankings, func(i, j int) bool {
		return insights.MarketRankings[i].AverageScore > insights.MarketRankings[j].AverageScore
	})
	if len(insights.MarketRankings) > 0 {
		insights.BestOverallMarket = insights.MarketRankings[0].Region
	}

	insights.UniversalOpportunities = universalOpportunities(regions, all)
	insights.RegionalSpecializations = regionalSpecializations(regions, all)

	return insights
}

// universalOpportunities finds products ranked in at least 80% of the
// analyzed regions, capped at the five strongest.
func universalOpportunities(regions []string, all map[string][]model.Recommendation) []UniversalOpportunity {
	type productScores struct {
		regions []string
		scores  []float64
	}
	byProduct := make(map[string]*productScores)
	var order []string

	for _, regionName := range regions {
		for _, rec := range all[regionName] {
			ps, ok := byProduct[rec.Product]
			if !ok {
				ps = &productScores{}
				byProduct[rec.Product] = ps
				order = append(order, rec.Product)
			}
			ps.regions = append(ps.regions, regionName)
			ps.scores = append(ps.scores, rec.BusinessScore)
		}
	}

	threshold := float64(len(regions)) * 0.8
	var out []UniversalOpportunity
	for _, product := range order {
		ps := byProduct[product]
		if float64(len(ps.regions)) < threshold {
			continue
		}

		opp := UniversalOpportunity{Product: product, Regions: ps.regions}
		var total float64
		for i, score := range ps.scores {
			total += score
			if score > opp.BestScore {
				opp.BestScore = score
				opp.BestRegion = ps.regions[i]
			}
		}
		opp.AverageScore = round2(total / float64(len(ps.scores)))
		out = append(out, opp)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AverageScore > out[j].AverageScore
	})
	if len(out) > 5 {
		out = out[:5]
	}
	return out
}

// regionalSpecializations finds categories where a region beats the average
// of the other regions by more than half a point.
func regionalSpecializations(regions []string, all map[string][]model.Recommendation) []RegionSpecialization {
	categoryAverages := make(map[string]map[string]float64, len(regions))
	for _, regionName := range regions {
		sums := make(map[string]float64)
		counts := make(map[string]int)
		for _, rec := range all[regionName] {
			sums[rec.Category] += rec.BusinessScore
			counts[rec.Category]++
		}
		averages := make(map[string]float64, len(sums))
		for cat, sum := range sums {
			averages[cat] = sum / float64(counts[cat])
		}
		categoryAverages[regionName] = averages
	}

	var out []RegionSpecialization
	for _, regionName := range regions {
		var specs []Specialization
		for category, score := range categoryAverages[regionName] {
			var otherTotal float64
			var otherCount int
			for _, other := range regions {
				if other == regionName {
					continue
				}
				if otherScore, ok := categoryAverages[other][category]; ok {
					otherTotal += otherScore
					otherCount++
				}
			}
			if otherCount == 0 {
				continue
			}
			otherAvg := otherTotal / float64(otherCount)
			if score > otherAvg+0.5 {
				specs = append(specs, Specialization{
					Category:  category,
					Score:     round2(score),
					Advantage: round2(score - otherAvg),
				})
			}
		}
		if len(specs) == 0 {
			continue
		}
		sort.SliceStable(specs, func(i, j int) bool {
			return specs[i].Advantage > specs[j].Advantage
		})
		if len(specs) > 3 {
			specs = specs[:3]
		}
		out = append(out, RegionSpecialization{Region: regionName, Specializations: specs})
	}
	return out
}

func riskLevel(score float64) string {
	switch {
	case score >= lowRiskThreshold:
		return "Low"
	case score >= mediumRiskThreshold:
		return "Medium"
	default:
		return "High"
	}
}
