package recommender

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareRegions(t *testing.T) {
	rec := testRecommender(t)

	cmp, err := rec.CompareRegions(context.Background(), []string{"Accra", "Kumasi", "Tamale"}, "Q4", "")
	require.NoError(t, err)

	assert.Equal(t, "Q4", cmp.Quarter)
	assert.Len(t, cmp.Summaries, 3)
	assert.NotEmpty(t, cmp.BestOpportunities)
	assert.Equal(t, "Analyzed 3 locations for Q4", cmp.Insights.Summary)
	assert.Equal(t, "Kumasi", cmp.Insights.LargestMarket)
	assert.InDelta(t, 1.8, cmp.QuarterContext.HolidayMultiplier, 0.001)
	assert.InDelta(t, 0.058, cmp.QuarterContext.InflationRate, 0.0001)

	for name, summary := range cmp.Summaries {
		assert.Positive(t, summary.TopScore, "region %s", name)
		assert.GreaterOrEqual(t, summary.TopScore, summary.AverageScore)
		assert.NotEmpty(t, summary.BestProduct)
	}

	for product, opp := range cmp.BestOpportunities {
		assert.Contains(t, opp.RegionScores, opp.BestRegion, "product %s", product)
		for _, score := range opp.RegionScores {
			assert.LessOrEqual(t, score, opp.BestScore)
		}
	}
}

func TestCompareRegionsRequiresTwo(t *testing.T) {
	rec := testRecommender(t)

	_, err := rec.CompareRegions(context.Background(), []string{"Accra"}, "Q4", "")
	require.Error(t, err)
	assert.True(t, IsInvalidInput(err))
}

func TestCompareRegionsValidatesInputs(t *testing.T) {
	rec := testRecommender(t)

	_, err := rec.CompareRegions(context.Background(), []string{"Accra", "Atlantis"}, "Q4", "")
	require.Error(t, err)
	assert.True(t, IsInvalidInput(err))

	_, err = rec.CompareRegions(context.Background(), []string{"Accra", "Kumasi"}, "Q7", "")
	require.Error(t, err)
	assert.True(t, IsInvalidInput(err))
}

func TestCompareRegionsCategoryFilter(t *testing.T) {
	rec := testRecommender(t)

	cmp, err := rec.CompareRegions(context.Background(), []string{"Accra", "Kumasi"}, "Q4", "food")
	require.NoError(t, err)

	assert.Equal(t, "food", cmp.CategoryFilter)
	for product := range cmp.BestOpportunities {
		assert.Contains(t, []string{"Imported Rice"}, product,
			"only staple food products should survive the filter")
	}
}

func TestQuarterlyReport(t *testing.T) {
	rec := testRecommender(t)

	report, err := rec.QuarterlyReport(context.Background(), []string{"Accra", "Kumasi"}, "Q4")
	require.NoError(t, err)

	assert.NotEmpty(t, report.ID)
	assert.NotEmpty(t, report.AnalysisDate)
	assert.Equal(t, "Q4", report.Quarter)
	assert.Equal(t, "dry_season_start", report.Season)
	assert.InDelta(t, 15.5, report.USDToCedisRate, 0.001)
	assert.Len(t, report.Regions, 2)
	require.NotNil(t, report.CrossRegion)

	for name, rr := range report.Regions {
		assert.Positive(t, rr.Population, "region %s", name)
		assert.NotEmpty(t, rr.TopRecommendations)
		assert.LessOrEqual(t, len(rr.TopRecommendations), 5)
		assert.Equal(t, rr.ImportedCount+rr.LocalCount, 8)
		assert.GreaterOrEqual(t, rr.CurrencyRiskExposure, 0.0)
		assert.LessOrEqual(t, rr.CurrencyRiskExposure, 100.0)

		for _, entry := range rr.TopRecommendations {
			assert.Contains(t, []string{"Low", "Medium", "High"}, entry.RiskLevel)
		}
		for _, cs := range rr.CategorySummaries {
			assert.Positive(t, cs.Count)
			assert.Positive(t, cs.AverageScore)
		}
	}

	rankings := report.CrossRegion.MarketRankings
	require.Len(t, rankings, 2)
	assert.GreaterOrEqual(t, rankings[0].AverageScore, rankings[1].AverageScore)
	assert.Equal(t, rankings[0].Region, report.CrossRegion.BestOverallMarket)
}

func TestQuarterlyReportSingleRegionSkipsCrossInsights(t *testing.T) {
	rec := testRecommender(t)

	report, err := rec.QuarterlyReport(context.Background(), []string{"Tamale"}, "Q2")
	require.NoError(t, err)
	assert.Nil(t, report.CrossRegion)
	assert.Len(t, report.Regions, 1)
}

func TestQuarterlyReportValidatesInputs(t *testing.T) {
	rec := testRecommender(t)

	_, err := rec.QuarterlyReport(context.Background(), nil, "Q1")
	assert.True(t, IsInvalidInput(err))

	_, err = rec.QuarterlyReport(context.Background(), []string{"Atlantis"}, "Q1")
	assert.True(t, IsInvalidInput(err))

	_, err = rec.QuarterlyReport(context.Background(), []string{"Accra"}, "H1")
	assert.True(t, IsInvalidInput(err))
}

func TestUniversalOpportunitiesCoverAllRegions(t *testing.T) {
	rec := testRecommender(t)

	report, err := rec.QuarterlyReport(context.Background(),
		[]string{"Accra", "Kumasi", "Tamale", "Cape Coast"}, "Q4")
	require.NoError(t, err)
	require.NotNil(t, report.CrossRegion)

	opps := report.CrossRegion.UniversalOpportunities
	assert.LessOrEqual(t, len(opps), 5)
	for _, opp := range opps {
		// 80% of four regions means at least four appearances here, since
		// a product cannot appear 3.2 times.
		assert.GreaterOrEqual(t, len(opp.Regions), 4, "product %s", opp.Product)
		assert.Contains(t, opp.Regions, opp.BestRegion)
	}

	for _, rs := range report.CrossRegion.RegionalSpecializations {
		assert.LessOrEqual(t, len(rs.Specializations), 3)
		for _, spec := range rs.Specializations {
			assert.Greater(t, spec.Advantage, 0.5)
		}
	}
}

func TestRiskLevel(t *testing.T) {
	assert.Equal(t, "Low", riskLevel(8.0))
	assert.Equal(t, "Low", riskLevel(9.5))
	assert.Equal(t, "Medium", riskLevel(6.0))
	assert.Equal(t, "Medium", riskLevel(7.99))
	assert.Equal(t, "High", riskLevel(5.99))
	assert.Equal(t, "High", riskLevel(0))
}
