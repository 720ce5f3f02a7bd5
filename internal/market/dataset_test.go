package market

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kola-market/market-cli/internal/model"
)

func validDataset() Dataset {
	return defaultDataset()
}

func TestDefaultDatasetIsValid(t *testing.T) {
	assert.NotPanics(t, func() { Default() })

	store := Default()
	assert.Len(t, store.Regions(), 4)
	assert.Len(t, store.Products(), 8)
	assert.Len(t, store.Holidays(), 5)
	assert.InDelta(t, 1.0, store.Weights().Sum(), 0.001)
}

func TestNewStoreRejectsMissingSections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(ds *Dataset)
		wantErr string
	}{
		{"no holidays", func(ds *Dataset) { ds.HolidayPeriods = nil }, "holiday_periods"},
		{"no regions", func(ds *Dataset) { ds.Regions = nil }, "regions"},
		{"no products", func(ds *Dataset) { ds.Products = nil }, "products"},
		{"no weights", func(ds *Dataset) { ds.ScoringWeights = nil }, "scoring_weights"},
		{"no parameters", func(ds *Dataset) { ds.BusinessParameters = nil }, "business_parameters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := validDataset()
			tt.mutate(&ds)

			_, err := NewStore(ds)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewStoreRejectsInvalidData(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(ds *Dataset)
		wantErr string
	}{
		{
			"weights do not sum to one",
			func(ds *Dataset) { ds.ScoringWeights.Profitability = 0.25 },
			"scoring_weights must sum to 1.0",
		},
		{
			"selling price below cost",
			func(ds *Dataset) { ds.Products[0].SellingPrice = ds.Products[0].CostPrice - 1 },
			"selling_price must exceed cost_price",
		},
		{
			"unknown region type",
			func(ds *Dataset) { ds.Regions[0].Type = "lunar_colony" },
			"unknown type",
		},
		{
			"unknown income level",
			func(ds *Dataset) { ds.Regions[0].IncomeLevel = "stratospheric" },
			"unknown income_level",
		},
		{
			"unknown product category",
			func(ds *Dataset) { ds.Products[0].Category = "fireworks" },
			"unknown category",
		},
		{
			"holiday month out of range",
			func(ds *Dataset) { ds.HolidayPeriods[0].Months = []int{13} },
			"out of range 1-12",
		},
		{
			"holiday multiplier out of range",
			func(ds *Dataset) { ds.HolidayPeriods[0].Multiplier = 9.0 },
			"multiplier",
		},
		{
			"duplicate product id",
			func(ds *Dataset) { ds.Products[1].ID = ds.Products[0].ID },
			"duplicate product_id",
		},
		{
			"duplicate region name",
			func(ds *Dataset) { ds.Regions[1].Name = ds.Regions[0].Name },
			"duplicate name",
		},
		{
			"missing required venue",
			func(ds *Dataset) { delete(ds.Regions[0].KeyLocations, "markets") },
			`key_locations missing "markets"`,
		},
		{
			"behavior metric out of range",
			func(ds *Dataset) { ds.Regions[0].CustomerBehavior.ImpulseBuying = 1.4 },
			"impulse_buying must be in [0,1]",
		},
		{
			"quarter months overlap",
			func(ds *Dataset) {
				q1 := ds.Quarters["Q1"]
				q1.Months = []int{1, 2, 4}
				ds.Quarters["Q1"] = q1
			},
			"covered by both",
		},
		{
			"negative usd rate",
			func(ds *Dataset) { ds.EconomicFactors.USDToCedisRate = -1 },
			"usd_to_cedis_rate must be positive",
		},
		{
			"empty benefit keywords",
			func(ds *Dataset) { ds.BusinessParameters.CustomerBenefitKeywords = nil },
			"customer_benefit_keywords must not be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := validDataset()
			tt.mutate(&ds)

			_, err := NewStore(ds)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewStoreAppliesDefaults(t *testing.T) {
	ds := validDataset()
	ds.Quarters = nil
	ds.EconomicFactors = nil
	ds.BusinessParameters.QuarterlyDemandNormalization = 0

	store, err := NewStore(ds)
	require.NoError(t, err)

	assert.Len(t, store.Quarters(), 4)
	assert.InDelta(t, 15.5, store.Economic().USDToCedisRate, 0.001)
	assert.InDelta(t, 3.0, store.Params().QuarterlyDemandNormalization, 0.001)
}

func TestNewStoreAssignsOrdinals(t *testing.T) {
	store := Default()

	for i, p := range store.Products() {
		assert.Equal(t, i, p.Ordinal)
	}
}

func TestParseYAMLRoundTrip(t *testing.T) {
	doc := `
holiday_periods:
  - name: christmas_season
    months: [11, 12]
    multiplier: 1.8
    duration_days: 60
regions:
  - name: Accra
    type: urban_coastal
    population: 2400000
    income_level: high
    dominant_work: [office_workers]
    key_locations: {churches: 450, schools: 280, markets: 15, companies: 1200}
    infrastructure:
      electricity_reliability: 0.85
      cold_storage_access: 0.7
      transport_quality: 0.8
    customer_behavior:
      impulse_buying: 0.8
      brand_consciousness: 0.9
      price_sensitivity: 0.6
products:
  - product_id: rice_imported
    name: Imported Rice
    category: staple_food
    cost_price: 8.5
    selling_price: 12.0
    perishability_days: 365
    typical_sale_time_days: 14
    storage_requirements: [dry, cool]
    customer_benefit: Essential nutrition
    target_demographics: [families]
    seasonal_multipliers: {christmas_season: 1.4}
    location_suitability: {urban_coastal: 1.3}
scoring_weights:
  profitability: 0.35
  demand_potential: 0.30
  risk_adjustment: 0.20
  infrastructure_fit: 0.10
  customer_benefit: 0.05
business_parameters:
  max_score: 10
  population_normalization_factor: 500000
  location_density_normalization: 100
  customer_benefit_keywords: [essential, affordable]
`

	store, err := Parse([]byte(doc))
	require.NoError(t, err)

	p := store.Product("rice_imported")
	require.NotNil(t, p)
	assert.Equal(t, "Imported Rice", p.Name)
	assert.InDelta(t, 1.3, p.LocationSuitability["urban_coastal"], 0.001)

	r := store.Region("Accra")
	require.NotNil(t, r)
	assert.Equal(t, model.RegionUrbanCoastal, r.Type)
	assert.Equal(t, 2_400_000, r.Population)
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("regions: [broken"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")
	_, err := LoadFile(path)
	assert.Error(t, err)

	path = filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("products: {}"), 0o644))
	_, err = LoadFile(path)
	assert.Error(t, err)
}

func TestStoreAccessors(t *testing.T) {
	store := Default()

	assert.Nil(t, store.Region("Atlantis"))
	assert.Nil(t, store.Product("unobtainium"))

	names := store.RegionNames()
	assert.Equal(t, []string{"Accra", "Kumasi", "Tamale", "Cape Coast"}, names)

	coastal := store.RegionsByType(model.RegionUrbanCoastal)
	require.Len(t, coastal, 1)
	assert.Equal(t, "Accra", coastal[0].Name)

	staples := store.ProductsByCategory("staple_food")
	require.NotEmpty(t, staples)
	for _, p := range staples {
		assert.Equal(t, "staple_food", p.Category)
	}

	imported := store.ImportedProducts()
	local := store.LocalProducts()
	assert.Len(t, imported, 4)
	assert.Len(t, local, 4)
	assert.Equal(t, len(store.Products()), len(imported)+len(local))

	q4 := store.ProductsByQuarterPerformance("Q4", 1.2)
	require.NotEmpty(t, q4)
	for i := 1; i < len(q4); i++ {
		assert.GreaterOrEqual(t,
			q4[i-1].QuarterlyDemandFor("Q4"),
			q4[i].QuarterlyDemandFor("Q4"))
	}

	_, ok := store.Quarter("Q4")
	assert.True(t, ok)
	_, ok = store.Quarter("Q9")
	assert.False(t, ok)
}
