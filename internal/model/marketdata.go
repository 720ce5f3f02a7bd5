// Package model defines the market data records and the analysis value
// objects produced by scoring. All configuration records are immutable after
// validation; analysis objects are created fresh per scoring call.
package model

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Region types recognized by the dataset.
const (
	RegionUrbanCoastal   = "urban_coastal"
	RegionUrbanInland    = "urban_inland"
	RegionUrbanNorthern  = "urban_northern"
	RegionCoastalTourism = "coastal_tourism"
)

// RegionTypes lists all valid region types.
var RegionTypes = []string{
	RegionUrbanCoastal,
	RegionUrbanInland,
	RegionUrbanNorthern,
	RegionCoastalTourism,
}

// IncomeLevels lists all valid income levels, lowest first.
var IncomeLevels = []string{"low", "medium", "medium-high", "high"}

// Categories lists all valid product categories.
var Categories = []string{
	"staple_food", "protein", "telecommunications", "energy_solutions",
	"cultural_goods", "education", "health_products", "cooking_essentials",
}

// KnownStorageTags lists the storage requirement tags the scorer understands.
// Unknown tags are advisory, not fatal.
var KnownStorageTags = []string{
	"dry", "cool", "cold", "room_temperature", "sealed", "digital",
	"protected_from_impact", "protected_from_dust", "organized_display",
	"pest_control", "dark", "packaged", "organized", "pest_free",
}

// Infrastructure holds a region's infrastructure quality metrics, each in [0,1].
type Infrastructure struct {
	ElectricityReliability float64 `json:"electricity_reliability" yaml:"electricity_reliability"`
	ColdStorageAccess      float64 `json:"cold_storage_access" yaml:"cold_storage_access"`
	TransportQuality       float64 `json:"transport_quality" yaml:"transport_quality"`
	InternetPenetration    float64 `json:"internet_penetration" yaml:"internet_penetration"`
}

// CustomerBehavior holds a region's buying behavior metrics, each in [0,1].
type CustomerBehavior struct {
	ImpulseBuying          float64 `json:"impulse_buying" yaml:"impulse_buying"`
	BrandConsciousness     float64 `json:"brand_consciousness" yaml:"brand_consciousness"`
	PriceSensitivity       float64 `json:"price_sensitivity" yaml:"price_sensitivity"`
	DigitalPaymentAdoption float64 `json:"digital_payment_adoption" yaml:"digital_payment_adoption"`
}

// EconomicIndicators holds optional regional economic context.
type EconomicIndicators struct {
	AverageMonthlyIncome    float64 `json:"average_monthly_income" yaml:"average_monthly_income"`
	UnemploymentRate        float64 `json:"unemployment_rate" yaml:"unemployment_rate"`
	BusinessRegistrationEase float64 `json:"business_registration_ease" yaml:"business_registration_ease"`
}

// Region describes one geographic market.
type Region struct {
	Name             string              `json:"name" yaml:"name"`
	Type             string              `json:"type" yaml:"type"`
	Population       int                 `json:"population" yaml:"population"`
	IncomeLevel      string              `json:"income_level" yaml:"income_level"`
	DominantWork     []string            `json:"dominant_work" yaml:"dominant_work"`
	KeyLocations     map[string]int      `json:"key_locations" yaml:"key_locations"`
	Infrastructure   Infrastructure      `json:"infrastructure" yaml:"infrastructure"`
	CustomerBehavior CustomerBehavior    `json:"customer_behavior" yaml:"customer_behavior"`
	Economic         *EconomicIndicators `json:"economic_indicators,omitempty" yaml:"economic_indicators,omitempty"`
}

// InfrastructureScore averages the three physical infrastructure metrics.
func (r *Region) InfrastructureScore() float64 {
	return (r.Infrastructure.ElectricityReliability +
		r.Infrastructure.ColdStorageAccess +
		r.Infrastructure.TransportQuality) / 3
}

// SupplierInfo holds optional supplier data for a product.
type SupplierInfo struct {
	LeadTimeDays         int     `json:"lead_time_days" yaml:"lead_time_days"`
	MinimumOrderQuantity int     `json:"minimum_order_quantity" yaml:"minimum_order_quantity"`
	SupplierReliability  float64 `json:"supplier_reliability" yaml:"supplier_reliability"`
}

// Product describes one candidate product. Price fields are in local
// currency units. BaseCostUSD/BaseCostCedis feed the inflation-adjusted
// cost path and are optional.
type Product struct {
	ID                  string             `json:"product_id" yaml:"product_id"`
	Name                string             `json:"name" yaml:"name"`
	Category            string             `json:"category" yaml:"category"`
	CostPrice           float64            `json:"cost_price" yaml:"cost_price"`
	SellingPrice        float64            `json:"selling_price" yaml:"selling_price"`
	PerishabilityDays   int                `json:"perishability_days" yaml:"perishability_days"`
	TypicalSaleTimeDays int                `json:"typical_sale_time_days" yaml:"typical_sale_time_days"`
	StorageRequirements []string           `json:"storage_requirements" yaml:"storage_requirements"`
	CustomerBenefit     string             `json:"customer_benefit" yaml:"customer_benefit"`
	RiskFactors         []string           `json:"risk_factors" yaml:"risk_factors"`
	SeasonalMultipliers map[string]float64 `json:"seasonal_multipliers" yaml:"seasonal_multipliers"`
	TargetDemographics  []string           `json:"target_demographics" yaml:"target_demographics"`
	LocationSuitability map[string]float64 `json:"location_suitability" yaml:"location_suitability"`
	Supplier            *SupplierInfo      `json:"supplier_info,omitempty" yaml:"supplier_info,omitempty"`
	QuarterlyDemand     map[string]float64 `json:"quarterly_demand,omitempty" yaml:"quarterly_demand,omitempty"`
	ImportDependent     bool               `json:"import_dependent" yaml:"import_dependent"`
	BaseCostUSD         *float64           `json:"base_cost_usd,omitempty" yaml:"base_cost_usd,omitempty"`
	BaseCostCedis       *float64           `json:"base_cost_cedis,omitempty" yaml:"base_cost_cedis,omitempty"`

	// Ordinal is the product's position in the dataset. It is the
	// deterministic tie-breaker for equal scores.
	Ordinal int `json:"-" yaml:"-"`
}

// ProfitMargin returns (selling - cost) / cost.
func (p *Product) ProfitMargin() float64 {
	return (p.SellingPrice - p.CostPrice) / p.CostPrice
}

// ProfitPerUnit returns the absolute profit per unit sold.
func (p *Product) ProfitPerUnit() float64 {
	return p.SellingPrice - p.CostPrice
}

// SaleVelocityPerMonth returns the expected units sold per 30-day month.
func (p *Product) SaleVelocityPerMonth() float64 {
	return 30 / float64(p.TypicalSaleTimeDays)
}

// QuarterlyDemandFor returns the product's demand multiplier for a quarter,
// defaulting to neutral when the quarter is not configured.
func (p *Product) QuarterlyDemandFor(quarter string) float64 {
	if m, ok := p.QuarterlyDemand[quarter]; ok {
		return m
	}
	return 1.0
}

// RequiresStorage reports whether any storage requirement tag contains the
// given substring (e.g. "cold" matches both "cold" and "cold_chain").
func (p *Product) RequiresStorage(tag string) bool {
	for _, req := range p.StorageRequirements {
		if strings.Contains(req, tag) {
			return true
		}
	}
	return false
}

// HolidayPeriod describes a demand-affecting holiday window.
type HolidayPeriod struct {
	Name         string  `json:"name" yaml:"name"`
	Months       []int   `json:"months" yaml:"months"`
	Multiplier   float64 `json:"multiplier" yaml:"multiplier"`
	DurationDays int     `json:"duration_days" yaml:"duration_days"`
	Description  string  `json:"description,omitempty" yaml:"description,omitempty"`
}

// Covers reports whether the holiday spans the given month.
func (h *HolidayPeriod) Covers(month int) bool {
	for _, m := range h.Months {
		if m == month {
			return true
		}
	}
	return false
}

// QuarterData describes one of the four fixed business quarters.
type QuarterData struct {
	Months            []int    `json:"months" yaml:"months"`
	Season            string   `json:"season" yaml:"season"`
	Description       string   `json:"description" yaml:"description"`
	HolidayMultiplier float64  `json:"holiday_multiplier" yaml:"holiday_multiplier"`
	Events            []string `json:"events" yaml:"events"`
}

// Quarters lists the quarter keys in calendar order.
var Quarters = []string{"Q1", "Q2", "Q3", "Q4"}

// QuarterForMonth maps a month (1-12) to its quarter key.
func QuarterForMonth(month int) string {
	return Quarters[(month-1)/3]
}

// ScoringWeights holds the five component weights. They must sum to 1.0
// within a small tolerance.
type ScoringWeights struct {
	Profitability     float64 `json:"profitability" yaml:"profitability"`
	DemandPotential   float64 `json:"demand_potential" yaml:"demand_potential"`
	RiskAdjustment    float64 `json:"risk_adjustment" yaml:"risk_adjustment"`
	InfrastructureFit float64 `json:"infrastructure_fit" yaml:"infrastructure_fit"`
	CustomerBenefit   float64 `json:"customer_benefit" yaml:"customer_benefit"`
}

// Sum returns the total of all weights.
func (w ScoringWeights) Sum() float64 {
	return w.Profitability + w.DemandPotential + w.RiskAdjustment +
		w.InfrastructureFit + w.CustomerBenefit
}

// BusinessParameters holds the general tuning knobs for scoring.
type BusinessParameters struct {
	MaxScore                     float64  `json:"max_score" yaml:"max_score"`
	PopulationNormalization      float64  `json:"population_normalization_factor" yaml:"population_normalization_factor"`
	LocationDensityNormalization float64  `json:"location_density_normalization" yaml:"location_density_normalization"`
	CustomerBenefitKeywords      []string `json:"customer_benefit_keywords" yaml:"customer_benefit_keywords"`

	// QuarterlyDemandNormalization divides the quarterly-enhanced demand
	// product to keep it on the same scale as the flat model. Flagged for
	// domain-expert review; kept configurable rather than hard-coded.
	QuarterlyDemandNormalization float64 `json:"quarterly_demand_normalization" yaml:"quarterly_demand_normalization"`
}

// EconomicFactors holds the macro inputs for the inflation-adjusted cost
// path. QuarterlyInflation maps quarter keys to projected rates.
type EconomicFactors struct {
	USDToCedisRate     float64            `json:"usd_to_cedis_rate" yaml:"usd_to_cedis_rate"`
	QuarterlyInflation map[string]float64 `json:"quarterly_inflation_projection" yaml:"quarterly_inflation_projection"`
	CurrencyVolatility float64            `json:"currency_volatility" yaml:"currency_volatility"`
}

// InflationFor returns the projected inflation rate for a quarter,
// defaulting to zero when unconfigured.
func (e *EconomicFactors) InflationFor(quarter string) float64 {
	if r, ok := e.QuarterlyInflation[quarter]; ok {
		return r
	}
	return 0
}

var titleCaser = cases.Title(language.English)

// DisplayName converts a snake_case identifier into a human-readable title
// ("staple_food" -> "Staple Food").
func DisplayName(id string) string {
	return titleCaser.String(strings.ReplaceAll(id, "_", " "))
}
