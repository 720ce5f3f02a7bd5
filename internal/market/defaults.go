package market

import "github.com/kola-market/market-cli/internal/model"

const defaultQuarterlyDemandNormalization = 3.0

func fptr(v float64) *float64 { return &v }

// Default returns a store built from the bundled Ghana dataset. It covers
// the four pilot markets and the core product catalogue, and is used
// whenever no dataset file is configured.
func Default() *Store {
	s, err := NewStore(defaultDataset())
	if err != nil {
		// The bundled dataset is covered by tests; a validation failure
		// here is a programming error.
		panic(err)
	}
	return s
}

func defaultQuarters() map[string]model.QuarterData {
	return map[string]model.QuarterData{
		"Q1": {
			Months:            []int{1, 2, 3},
			Season:            "dry_season_end",
			Description:       "End of Harmattan, School resumption, Independence celebrations",
			HolidayMultiplier: 1.4,
			Events:            []string{"New_Year", "Independence_Day", "Easter"},
		},
		"Q2": {
			Months:            []int{4, 5, 6},
			Season:            "rainy_season_start",
			Description:       "Rainy season begins, Farming activities, Easter period",
			HolidayMultiplier: 1.2,
			Events:            []string{"Easter", "Mothers_Day", "Labour_Day"},
		},
		"Q3": {
			Months:            []int{7, 8, 9},
			Season:            "peak_rainy_season",
			Description:       "Peak rains, Back-to-school, Agricultural productivity",
			HolidayMultiplier: 1.6,
			Events:            []string{"Back_to_School", "Farmers_Day"},
		},
		"Q4": {
			Months:            []int{10, 11, 12},
			Season:            "dry_season_start",
			Description:       "Dry season starts, Harvest time, Christmas celebrations",
			HolidayMultiplier: 1.8,
			Events:            []string{"Christmas", "New_Year_prep", "Harvest_celebrations"},
		},
	}
}

func defaultEconomicFactors() *model.EconomicFactors {
	return &model.EconomicFactors{
		USDToCedisRate:     15.5,
		CurrencyVolatility: 0.15,
		QuarterlyInflation: map[string]float64{
			"Q1": 0.055,
			"Q2": 0.048,
			"Q3": 0.062,
			"Q4": 0.058,
		},
	}
}

func defaultDataset() Dataset {
	return Dataset{
		HolidayPeriods: []model.HolidayPeriod{
			{Name: "christmas_season", Months: []int{11, 12}, Multiplier: 1.8, DurationDays: 60},
			{Name: "easter_season", Months: []int{3, 4}, Multiplier: 1.4, DurationDays: 30},
			{Name: "independence_day", Months: []int{3}, Multiplier: 1.2, DurationDays: 7},
			{Name: "farmers_day", Months: []int{12}, Multiplier: 1.3, DurationDays: 14},
			{Name: "back_to_school", Months: []int{1, 9}, Multiplier: 1.6, DurationDays: 21},
		},
		Regions: []model.Region{
			{
				Name:         "Accra",
				Type:         model.RegionUrbanCoastal,
				Population:   2_400_000,
				IncomeLevel:  "high",
				DominantWork: []string{"office_workers", "traders", "service_industry"},
				KeyLocations: map[string]int{
					"churches": 450, "schools": 280, "banks": 95,
					"companies": 1200, "estates": 85, "markets": 15,
				},
				Infrastructure: model.Infrastructure{
					ElectricityReliability: 0.85,
					ColdStorageAccess:      0.7,
					TransportQuality:       0.8,
					InternetPenetration:    0.75,
				},
				CustomerBehavior: model.CustomerBehavior{
					ImpulseBuying:          0.8,
					BrandConsciousness:     0.9,
					PriceSensitivity:       0.6,
					DigitalPaymentAdoption: 0.7,
				},
				Economic: &model.EconomicIndicators{
					AverageMonthlyIncome:     2800,
					UnemploymentRate:         0.12,
					BusinessRegistrationEase: 0.7,
				},
			},
			{
				Name:         "Kumasi",
				Type:         model.RegionUrbanInland,
				Population:   3_300_000,
				IncomeLevel:  "medium-high",
				DominantWork: []string{"farmers", "traders", "artisans", "gold_miners"},
				KeyLocations: map[string]int{
					"churches": 520, "schools": 340, "banks": 45,
					"companies": 680, "estates": 35, "markets": 25,
				},
				Infrastructure: model.Infrastructure{
					ElectricityReliability: 0.75,
					ColdStorageAccess:      0.4,
					TransportQuality:       0.7,
					InternetPenetration:    0.55,
				},
				CustomerBehavior: model.CustomerBehavior{
					ImpulseBuying:          0.6,
					BrandConsciousness:     0.6,
					PriceSensitivity:       0.8,
					DigitalPaymentAdoption: 0.5,
				},
				Economic: &model.EconomicIndicators{
					AverageMonthlyIncome:     1900,
					UnemploymentRate:         0.15,
					BusinessRegistrationEase: 0.6,
				},
			},
			{
				Name:         "Tamale",
				Type:         model.RegionUrbanNorthern,
				Population:   950_000,
				IncomeLevel:  "medium",
				DominantWork: []string{"farmers", "livestock_keepers", "small_traders"},
				KeyLocations: map[string]int{
					"churches": 180, "mosques": 120, "schools": 150,
					"banks": 12, "companies": 200, "estates": 8, "markets": 8,
				},
				Infrastructure: model.Infrastructure{
					ElectricityReliability: 0.6,
					ColdStorageAccess:      0.2,
					TransportQuality:       0.5,
					InternetPenetration:    0.35,
				},
				CustomerBehavior: model.CustomerBehavior{
					ImpulseBuying:          0.4,
					BrandConsciousness:     0.4,
					PriceSensitivity:       0.9,
					DigitalPaymentAdoption: 0.3,
				},
			},
			{
				Name:         "Cape Coast",
				Type:         model.RegionCoastalTourism,
				Population:   230_000,
				IncomeLevel:  "medium",
				DominantWork: []string{"fishermen", "teachers", "tour_guides", "students"},
				KeyLocations: map[string]int{
					"churches": 95, "schools": 45, "banks": 8, "companies": 120,
					"estates": 12, "markets": 4, "tourist_sites": 8,
				},
				Infrastructure: model.Infrastructure{
					ElectricityReliability: 0.7,
					ColdStorageAccess:      0.3,
					TransportQuality:       0.6,
					InternetPenetration:    0.5,
				},
				CustomerBehavior: model.CustomerBehavior{
					ImpulseBuying:          0.5,
					BrandConsciousness:     0.5,
					PriceSensitivity:       0.7,
					DigitalPaymentAdoption: 0.45,
				},
			},
		},
		Products: []model.Product{
			{
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
				TargetDemographics:  []string{"families", "office_workers", "students"},
				LocationSuitability: map[string]float64{
					"urban_coastal": 1.3, "urban_inland": 1.1,
					"urban_northern": 0.9, "coastal_tourism": 1.0,
				},
				QuarterlyDemand: map[string]float64{"Q1": 1.1, "Q2": 1.0, "Q3": 1.2, "Q4": 1.5},
				ImportDependent: true,
				BaseCostUSD:     fptr(0.55),
			},
			{
				ID:                  "sardines_canned",
				Name:                "Canned Sardines",
				Category:            "protein",
				CostPrice:           6.00,
				SellingPrice:        8.50,
				PerishabilityDays:   730,
				TypicalSaleTimeDays: 21,
				StorageRequirements: []string{"room_temperature"},
				CustomerBenefit:     "Affordable protein, long shelf life, ready-to-eat",
				RiskFactors:         []string{"competition_from_fresh_fish"},
				SeasonalMultipliers: map[string]float64{"christmas_season": 1.6, "easter_season": 1.3, "normal": 1.0},
				TargetDemographics:  []string{"low_income_families", "students", "workers"},
				LocationSuitability: map[string]float64{
					"urban_coastal": 1.1, "urban_inland": 1.3,
					"urban_northern": 1.2, "coastal_tourism": 0.8,
				},
				QuarterlyDemand: map[string]float64{"Q1": 1.0, "Q2": 1.1, "Q3": 1.2, "Q4": 1.6},
				ImportDependent: true,
				BaseCostUSD:     fptr(0.39),
			},
			{
				ID:                  "mobile_phone_credit",
				Name:                "Mobile Phone Credit",
				Category:            "telecommunications",
				CostPrice:           95.00,
				SellingPrice:        100.00,
				PerishabilityDays:   0,
				TypicalSaleTimeDays: 1,
				StorageRequirements: []string{"digital"},
				CustomerBenefit:     "Essential communication, instant delivery, universal need",
				RiskFactors:         []string{"network_technical_issues"},
				SeasonalMultipliers: map[string]float64{"christmas_season": 1.3, "back_to_school": 1.2, "normal": 1.0},
				TargetDemographics:  []string{"everyone_with_phone"},
				LocationSuitability: map[string]float64{
					"urban_coastal": 1.2, "urban_inland": 1.1,
					"urban_northern": 1.0, "coastal_tourism": 1.1,
				},
				QuarterlyDemand: map[string]float64{"Q1": 1.2, "Q2": 1.0, "Q3": 1.2, "Q4": 1.3},
				BaseCostCedis:   fptr(95.00),
			},
			{
				ID:                  "solar_lanterns",
				Name:                "Solar Lanterns",
				Category:            "energy_solutions",
				CostPrice:           45.00,
				SellingPrice:        75.00,
				PerishabilityDays:   0,
				TypicalSaleTimeDays: 45,
				StorageRequirements: []string{"dry"},
				CustomerBenefit:     "Reliable lighting, no electricity bills, durable",
				RiskFactors:         []string{"improving_electricity_grid", "product_defects"},
				SeasonalMultipliers: map[string]float64{"christmas_season": 1.2, "normal": 1.0},
				TargetDemographics:  []string{"rural_families", "students", "small_businesses"},
				LocationSuitability: map[string]float64{
					"urban_coastal": 0.6, "urban_inland": 0.8,
					"urban_northern": 1.4, "coastal_tourism": 0.9,
				},
				QuarterlyDemand: map[string]float64{"Q1": 1.3, "Q2": 0.9, "Q3": 0.8, "Q4": 1.1},
				ImportDependent: true,
				BaseCostUSD:     fptr(2.90),
			},
			{
				ID:                  "kente_accessories",
				Name:                "Kente Accessories",
				Category:            "cultural_goods",
				CostPrice:           25.00,
				SellingPrice:        60.00,
				PerishabilityDays:   0,
				TypicalSaleTimeDays: 60,
				StorageRequirements: []string{"dry", "protected_from_dust"},
				CustomerBenefit:     "Cultural identity, special occasions, gifts, tourism appeal",
				RiskFactors:         []string{"seasonal_demand", "fashion_changes"},
				SeasonalMultipliers: map[string]float64{"christmas_season": 2.1, "independence_day": 1.8, "normal": 0.6},
				TargetDemographics:  []string{"cultural_events", "tourists", "gift_buyers"},
				LocationSuitability: map[string]float64{
					"urban_coastal": 1.1, "urban_inland": 1.5,
					"urban_northern": 0.8, "coastal_tourism": 1.3,
				},
				QuarterlyDemand: map[string]float64{"Q1": 1.2, "Q2": 0.8, "Q3": 0.7, "Q4": 1.8},
				BaseCostCedis:   fptr(25.00),
			},
			{
				ID:                  "school_supplies_basic",
				Name:                "Basic School Supplies",
				Category:            "education",
				CostPrice:           15.00,
				SellingPrice:        25.00,
				PerishabilityDays:   0,
				TypicalSaleTimeDays: 30,
				StorageRequirements: []string{"dry"},
				CustomerBenefit:     "Educational advancement, required for school, affordable",
				RiskFactors:         []string{"academic_calendar_changes"},
				SeasonalMultipliers: map[string]float64{"back_to_school": 2.5, "normal": 0.4},
				TargetDemographics:  []string{"parents", "students", "teachers"},
				LocationSuitability: map[string]float64{
					"urban_coastal": 1.2, "urban_inland": 1.1,
					"urban_northern": 1.0, "coastal_tourism": 1.3,
				},
				QuarterlyDemand: map[string]float64{"Q1": 1.4, "Q2": 0.7, "Q3": 1.7, "Q4": 0.8},
				BaseCostCedis:   fptr(15.00),
			},
			{
				ID:                  "mosquito_nets_treated",
				Name:                "Treated Mosquito Nets",
				Category:            "health_products",
				CostPrice:           18.00,
				SellingPrice:        35.00,
				PerishabilityDays:   1095,
				TypicalSaleTimeDays: 25,
				StorageRequirements: []string{"dry", "packaged"},
				CustomerBenefit:     "Malaria prevention, better sleep, family health",
				RiskFactors:         []string{"government_free_distribution", "seasonal_awareness"},
				SeasonalMultipliers: map[string]float64{"normal": 1.0},
				TargetDemographics:  []string{"families_with_children", "health_conscious"},
				LocationSuitability: map[string]float64{
					"urban_coastal": 0.9, "urban_inland": 1.1,
					"urban_northern": 1.3, "coastal_tourism": 0.8,
				},
				QuarterlyDemand: map[string]float64{"Q1": 1.0, "Q2": 1.2, "Q3": 1.1, "Q4": 1.0},
				ImportDependent: true,
				BaseCostUSD:     fptr(1.15),
				Supplier: &model.SupplierInfo{
					LeadTimeDays:         30,
					MinimumOrderQuantity: 100,
					SupplierReliability:  0.85,
				},
			},
			{
				ID:                  "palm_oil_local",
				Name:                "Local Palm Oil",
				Category:            "cooking_essentials",
				CostPrice:           28.00,
				SellingPrice:        35.00,
				PerishabilityDays:   180,
				TypicalSaleTimeDays: 10,
				StorageRequirements: []string{"cool", "sealed"},
				CustomerBenefit:     "Traditional cooking, authentic taste, supports local farmers",
				RiskFactors:         []string{"price_volatility", "quality_variations", "spoilage"},
				SeasonalMultipliers: map[string]float64{"christmas_season": 1.4, "easter_season": 1.2, "normal": 1.0},
				TargetDemographics:  []string{"traditional_cooks", "families", "restaurants"},
				LocationSuitability: map[string]float64{
					"urban_coastal": 1.0, "urban_inland": 1.3,
					"urban_northern": 1.1, "coastal_tourism": 0.9,
				},
				QuarterlyDemand: map[string]float64{"Q1": 1.0, "Q2": 1.1, "Q3": 1.1, "Q4": 1.4},
				BaseCostCedis:   fptr(28.00),
			},
		},
		ScoringWeights: &model.ScoringWeights{
			Profitability:     0.35,
			DemandPotential:   0.30,
			RiskAdjustment:    0.20,
			InfrastructureFit: 0.10,
			CustomerBenefit:   0.05,
		},
		BusinessParameters: &model.BusinessParameters{
			MaxScore:                     10,
			PopulationNormalization:      500_000,
			LocationDensityNormalization: 100,
			CustomerBenefitKeywords:      []string{"essential", "affordable", "convenient", "durable", "health"},
			QuarterlyDemandNormalization: defaultQuarterlyDemandNormalization,
		},
		Quarters:        defaultQuarters(),
		EconomicFactors: defaultEconomicFactors(),
	}
}
