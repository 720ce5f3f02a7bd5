package scorer

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kola-market/market-cli/internal/model"
)

func ptrFloat64(v float64) *float64 { return &v }

func testWeights() model.ScoringWeights {
	return model.ScoringWeights{
		Profitability:     0.35,
		DemandPotential:   0.30,
		RiskAdjustment:    0.20,
		InfrastructureFit: 0.10,
		CustomerBenefit:   0.05,
	}
}

func testParams() model.BusinessParameters {
	return model.BusinessParameters{
		MaxScore:                     10,
		PopulationNormalization:      500_000,
		LocationDensityNormalization: 100,
		CustomerBenefitKeywords:      []string{"essential", "affordable", "convenient", "durable", "health"},
		QuarterlyDemandNormalization: 3.0,
	}
}

func testHolidays() []model.HolidayPeriod {
	return []model.HolidayPeriod{
		{Name: "christmas_season", Months: []int{11, 12}, Multiplier: 1.8, DurationDays: 60},
		{Name: "farmers_day", Months: []int{12}, Multiplier: 1.3, DurationDays: 14},
		{Name: "back_to_school", Months: []int{1, 9}, Multiplier: 1.6, DurationDays: 21},
	}
}

func testQuarters() map[string]model.QuarterData {
	return map[string]model.QuarterData{
		"Q1": {Months: []int{1, 2, 3}, HolidayMultiplier: 1.4},
		"Q2": {Months: []int{4, 5, 6}, HolidayMultiplier: 1.2},
		"Q3": {Months: []int{7, 8, 9}, HolidayMultiplier: 1.6},
		"Q4": {Months: []int{10, 11, 12}, HolidayMultiplier: 1.8},
	}
}

func accraLike() *model.Region {
	return &model.Region{
		Name:         "Accra",
		Type:         model.RegionUrbanCoastal,
		Population:   2_400_000,
		IncomeLevel:  "high",
		DominantWork: []string{"office_workers"},
		KeyLocations: map[string]int{
			"churches": 450, "schools": 280, "companies": 1200,
			"estates": 85, "markets": 15,
		},
		Infrastructure: model.Infrastructure{
			ElectricityReliability: 0.85,
			ColdStorageAccess:      0.7,
			TransportQuality:       0.8,
		},
		CustomerBehavior: model.CustomerBehavior{
			ImpulseBuying:      0.8,
			BrandConsciousness: 0.9,
			PriceSensitivity:   0.6,
		},
	}
}

func importedRice() *model.Product {
	return &model.Product{
		ID:                  "rice_imported",
		Name:                "Imported Rice",
		Category:            "staple_food",
		CostPrice:           8.50,
		SellingPrice:        12.00,
		PerishabilityDays:   365,
		TypicalSaleTimeDays: 14,
		StorageRequirements: []string{"dry", "cool"},
		CustomerBenefit:     "Essential nutrition, convenient, long-lasting",
		RiskFactors:         []string{"currency_fluctuation", "import_delays"},
		SeasonalMultipliers: map[string]float64{"christmas_season": 1.4, "farmers_day": 1.2, "normal": 1.0},
		TargetDemographics:  []string{"families"},
		LocationSuitability: map[string]float64{
			"urban_coastal": 1.3, "urban_inland": 1.1,
			"urban_northern": 0.9, "coastal_tourism": 1.0,
		},
		QuarterlyDemand: map[string]float64{"Q1": 1.1, "Q2": 1.0, "Q3": 1.2, "Q4": 1.5},
		ImportDependent: true,
		BaseCostUSD:     ptrFloat64(0.55),
	}
}

func flatCalculator() *Calculator {
	return New(Config{
		Holidays: testHolidays(),
		Weights:  testWeights(),
		Params:   testParams(),
		Quarters: testQuarters(),
	})
}

func seasonalCalculator() *Calculator {
	return New(Config{
		Holidays: testHolidays(),
		Weights:  testWeights(),
		Params:   testParams(),
		Quarters: testQuarters(),
		Economic: &model.EconomicFactors{
			USDToCedisRate:     15.5,
			CurrencyVolatility: 0.15,
			QuarterlyInflation: map[string]float64{
				"Q1": 0.055, "Q2": 0.048, "Q3": 0.062, "Q4": 0.058,
			},
		},
	})
}

func TestScoreRiceInAccraDecember(t *testing.T) {
	calc := flatCalculator()

	score, analysis, err := calc.Score(importedRice(), accraLike(), 12)
	require.NoError(t, err)

	// Margin ~41%, velocity ~2.14/month, income adjustment 0.8 (12 cedis
	// is below the high-income bracket floor of 75).
	assert.InDelta(t, 7.06, analysis.DetailedScores.Profitability, 0.01)

	// Demand caps at 10: 1.3 location fit, population factor capped at 3,
	// 1.4 Christmas boost, venue density capped at 2.
	assert.InDelta(t, 10.0, analysis.DetailedScores.DemandPotential, 0.001)

	assert.Contains(t, analysis.Reasoning, "Holiday season boost (1.4x)")
	assert.Contains(t, analysis.Reasoning, "Fast turnover (14 days)")
	assert.Contains(t, analysis.Reasoning, "Income level adjustment (0.8x)")
	assert.Contains(t, analysis.Reasoning, "Good customer benefits")

	assert.Greater(t, score, 0.0)
	assert.LessOrEqual(t, score, 10.0)
	assert.Equal(t, "41%", analysis.Financial.ProfitMarginPercent)
}

func TestHolidayBoostPicksMaximum(t *testing.T) {
	calc := flatCalculator()

	// Both christmas_season and farmers_day cover December; the product
	// declares 1.3 for christmas and 1.8 for farmers_day. The larger
	// multiplier must win regardless of holiday order.
	product := importedRice()
	product.SeasonalMultipliers = map[string]float64{
		"christmas_season": 1.3,
		"farmers_day":      1.8,
	}

	assert.InDelta(t, 1.8, calc.holidayBoost(product, 12), 0.001)
	assert.InDelta(t, 1.0, calc.holidayBoost(product, 6), 0.001)
}

func TestEnergyProductsPreferPoorElectricity(t *testing.T) {
	calc := flatCalculator()

	lantern := &model.Product{
		ID: "solar_lanterns", Name: "Solar Lanterns", Category: "energy_solutions",
		CostPrice: 45, SellingPrice: 75, TypicalSaleTimeDays: 45,
		StorageRequirements: []string{"dry"},
		CustomerBenefit:     "Reliable lighting, durable",
		TargetDemographics:  []string{"rural_families"},
		LocationSuitability: map[string]float64{"urban_coastal": 1.0, "urban_northern": 1.0},
	}

	reliable := accraLike()
	reliable.Infrastructure.ElectricityReliability = 0.9

	unreliable := accraLike()
	unreliable.Name = "Tamale"
	unreliable.Type = model.RegionUrbanNorthern
	unreliable.Infrastructure.ElectricityReliability = 0.15

	var r1, r2 []string
	fitReliable := calc.infrastructureScore(lantern, reliable, &r1)
	fitUnreliable := calc.infrastructureScore(lantern, unreliable, &r2)

	assert.Greater(t, fitUnreliable, fitReliable)
	assert.Contains(t, strings.Join(r2, "; "), "Benefits from electricity challenges")
}

func TestIncomeAdjustment(t *testing.T) {
	tests := []struct {
		name   string
		price  float64
		income string
		want   float64
	}{
		{"inside low bracket", 20, "low", 1.0},
		{"inside high bracket", 100, "high", 1.0},
		{"below bracket seen as cheap", 12, "high", 0.8},
		{"above bracket penalized", 30, "low", 0.8}, // 1 - (30-25)/25
		{"far above bracket floors at 0.3", 200, "low", 0.3},
		{"unknown income level uses wide bracket", 500, "unknown", 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, incomeAdjustment(tt.price, tt.income), 0.001)
		})
	}
}

func TestPerishabilityBuckets(t *testing.T) {
	tests := []struct {
		days int
		want float64
	}{
		{0, 1.0},
		{400, 1.0},
		{365, 0.8},
		{181, 0.8},
		{180, 0.6},
		{31, 0.6},
		{30, 0.3},
		{7, 0.3},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, perishabilityScore(tt.days), 0.001, "days=%d", tt.days)
	}
}

func TestStorageCompatibility(t *testing.T) {
	region := accraLike()

	digital := &model.Product{StorageRequirements: []string{"digital"}}
	assert.InDelta(t, 0.85, storageCompatibility(digital, region), 0.001)

	coldAndDry := &model.Product{StorageRequirements: []string{"cold", "dry"}}
	// cold_storage 0.7 * min(1, 0.7+0.8*0.3)=0.94
	assert.InDelta(t, 0.658, storageCompatibility(coldAndDry, region), 0.001)

	none := &model.Product{StorageRequirements: []string{"room_temperature"}}
	assert.InDelta(t, 1.0, storageCompatibility(none, region), 0.001)
}

func TestBehaviorAlignment(t *testing.T) {
	region := accraLike()

	highMargin := &model.Product{Category: "cultural_goods", SellingPrice: 60}
	basis := costBasis{margin: 1.4}
	// (1.2-0.6) * (0.8+0.8*0.4) * (0.7+0.9*0.6)
	assert.InDelta(t, 0.6*1.12*1.24, behaviorAlignment(highMargin, region, basis), 0.001)

	plain := &model.Product{Category: "staple_food", SellingPrice: 12}
	assert.InDelta(t, 1.0, behaviorAlignment(plain, region, costBasis{margin: 0.41}), 0.001)
}

func TestScoreValidatesInputs(t *testing.T) {
	calc := flatCalculator()

	_, _, err := calc.Score(nil, accraLike(), 6)
	assert.Error(t, err)

	_, _, err = calc.Score(importedRice(), nil, 6)
	assert.Error(t, err)

	_, _, err = calc.Score(importedRice(), accraLike(), 13)
	assert.Error(t, err)

	_, _, err = calc.Score(importedRice(), accraLike(), 0)
	assert.Error(t, err)
}

func TestScoreBoundsAndDeterminism(t *testing.T) {
	for _, calc := range []*Calculator{flatCalculator(), seasonalCalculator()} {
		for month := 1; month <= 12; month++ {
			s1, _, err := calc.Score(importedRice(), accraLike(), month)
			require.NoError(t, err)
			s2, _, err := calc.Score(importedRice(), accraLike(), month)
			require.NoError(t, err)

			assert.GreaterOrEqual(t, s1, 0.0)
			assert.LessOrEqual(t, s1, 10.0)
			assert.Equal(t, s1, s2, "month %d must score deterministically", month)
		}
	}
}

func TestSeasonalModelNeverMutatesProduct(t *testing.T) {
	calc := seasonalCalculator()
	product := importedRice()

	_, analysis, err := calc.Score(product, accraLike(), 12)
	require.NoError(t, err)

	// The adjusted cost shows up only in the analysis.
	assert.InDelta(t, 8.50, product.CostPrice, 0.0001)
	assert.NotEqual(t, 8.50, analysis.Financial.CostPrice)
	assert.Greater(t, math.Abs(analysis.Financial.CostPrice-8.50), 0.01)
	assert.Len(t, product.RiskFactors, 2)
	assert.Contains(t, analysis.RiskFactors, "currency_exposure")
}

func TestSeasonalRiskPenalties(t *testing.T) {
	calc := seasonalCalculator()

	product := importedRice()
	product.QuarterlyDemand["Q2"] = 0.7 // below the 0.8 slow-quarter threshold

	var flatReasons, lowReasons []string
	flat := flatCalculator().riskScore(product, accraLike(), "Q2", &flatReasons)
	low := calc.riskScore(product, accraLike(), "Q2", &lowReasons)

	// Currency volatility (x0.925) and the slow-quarter penalty (x0.9)
	// both apply on top of the flat risk score.
	assert.InDelta(t, flat*0.925*0.9, low, 0.001)
	assert.Contains(t, strings.Join(lowReasons, "; "), "Seasonal demand low this quarter")
}
