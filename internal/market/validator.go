package market

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/kola-market/market-cli/internal/model"
)

// validate enforces the dataset invariants. Structural and range violations
// are fatal and collected into a single error; cross-reference and
// plausibility issues are advisory and logged as warnings.
func validate(ds *Dataset) error {
	var errs []string

	holidayNames := make(map[string]bool, len(ds.HolidayPeriods))
	for i := range ds.HolidayPeriods {
		h := &ds.HolidayPeriods[i]
		holidayNames[h.Name] = true
		errs = append(errs, validateHoliday(h)...)
	}

	regionNames := make(map[string]bool, len(ds.Regions))
	for i := range ds.Regions {
		r := &ds.Regions[i]
		if regionNames[r.Name] {
			errs = append(errs, fmt.Sprintf("region %q: duplicate name", r.Name))
		}
		regionNames[r.Name] = true
		errs = append(errs, validateRegion(r)...)
	}

	productIDs := make(map[string]bool, len(ds.Products))
	for i := range ds.Products {
		p := &ds.Products[i]
		if productIDs[p.ID] {
			errs = append(errs, fmt.Sprintf("product %q: duplicate product_id", p.ID))
		}
		productIDs[p.ID] = true
		errs = append(errs, validateProduct(p, holidayNames)...)
	}

	errs = append(errs, validateWeights(ds.ScoringWeights)...)
	errs = append(errs, validateParams(ds.BusinessParameters)...)
	errs = append(errs, validateQuarters(ds.Quarters)...)
	errs = append(errs, validateEconomicFactors(ds.EconomicFactors)...)

	if len(errs) > 0 {
		return eris.Errorf("market: dataset validation failed: %s", strings.Join(errs, "; "))
	}

	zap.L().Debug("dataset validated",
		zap.Int("regions", len(ds.Regions)),
		zap.Int("products", len(ds.Products)),
		zap.Int("holidays", len(ds.HolidayPeriods)),
	)
	return nil
}

func validateHoliday(h *model.HolidayPeriod) []string {
	var errs []string
	if h.Name == "" {
		errs = append(errs, "holiday period: missing name")
	}
	if len(h.Months) == 0 {
		errs = append(errs, fmt.Sprintf("holiday %q: months must not be empty", h.Name))
	}
	for _, m := range h.Months {
		if m < 1 || m > 12 {
			errs = append(errs, fmt.Sprintf("holiday %q: month %d out of range 1-12", h.Name, m))
		}
	}
	if h.Multiplier < 0.1 || h.Multiplier > 5.0 {
		errs = append(errs, fmt.Sprintf("holiday %q: multiplier %.2f out of range 0.1-5.0", h.Name, h.Multiplier))
	}
	if h.DurationDays < 1 || h.DurationDays > 365 {
		errs = append(errs, fmt.Sprintf("holiday %q: duration_days %d out of range 1-365", h.Name, h.DurationDays))
	}
	return errs
}

func validateRegion(r *model.Region) []string {
	var errs []string
	if r.Name == "" {
		errs = append(errs, "region: missing name")
	}

	validType := false
	for _, t := range model.RegionTypes {
		if r.Type == t {
			validType = true
			break
		}
	}
	if !validType {
		errs = append(errs, fmt.Sprintf("region %q: unknown type %q", r.Name, r.Type))
	}

	if r.Population <= 0 {
		errs = append(errs, fmt.Sprintf("region %q: population must be positive", r.Name))
	}

	validIncome := false
	for _, lvl := range model.IncomeLevels {
		if r.IncomeLevel == lvl {
			validIncome = true
			break
		}
	}
	if !validIncome {
		errs = append(errs, fmt.Sprintf("region %q: unknown income_level %q", r.Name, r.IncomeLevel))
	}

	for _, required := range []string{"churches", "schools", "markets"} {
		if _, ok := r.KeyLocations[required]; !ok {
			errs = append(errs, fmt.Sprintf("region %q: key_locations missing %q", r.Name, required))
		}
	}
	for venue, count := range r.KeyLocations {
		if count < 0 {
			errs = append(errs, fmt.Sprintf("region %q: key_locations.%s must be non-negative", r.Name, venue))
		}
	}

	unitMetrics := map[string]float64{
		"infrastructure.electricity_reliability":   r.Infrastructure.ElectricityReliability,
		"infrastructure.cold_storage_access":       r.Infrastructure.ColdStorageAccess,
		"infrastructure.transport_quality":         r.Infrastructure.TransportQuality,
		"infrastructure.internet_penetration":      r.Infrastructure.InternetPenetration,
		"customer_behavior.impulse_buying":         r.CustomerBehavior.ImpulseBuying,
		"customer_behavior.brand_consciousness":    r.CustomerBehavior.BrandConsciousness,
		"customer_behavior.price_sensitivity":      r.CustomerBehavior.PriceSensitivity,
		"customer_behavior.digital_payment_adoption": r.CustomerBehavior.DigitalPaymentAdoption,
	}
	for field, value := range unitMetrics {
		if value < 0 || value > 1 {
			errs = append(errs, fmt.Sprintf("region %q: %s must be in [0,1]", r.Name, field))
		}
	}

	if e := r.Economic; e != nil {
		if e.AverageMonthlyIncome < 0 {
			errs = append(errs, fmt.Sprintf("region %q: economic_indicators.average_monthly_income must be non-negative", r.Name))
		}
		if e.UnemploymentRate < 0 || e.UnemploymentRate > 1 {
			errs = append(errs, fmt.Sprintf("region %q: economic_indicators.unemployment_rate must be in [0,1]", r.Name))
		}
		if e.BusinessRegistrationEase < 0 || e.BusinessRegistrationEase > 1 {
			errs = append(errs, fmt.Sprintf("region %q: economic_indicators.business_registration_ease must be in [0,1]", r.Name))
		}
	}
	return errs
}

func validateProduct(p *model.Product, holidays map[string]bool) []string {
	var errs []string
	if p.ID == "" {
		errs = append(errs, "product: missing product_id")
	}
	if p.Name == "" {
		errs = append(errs, fmt.Sprintf("product %q: missing name", p.ID))
	}

	validCategory := false
	for _, c := range model.Categories {
		if p.Category == c {
			validCategory = true
			break
		}
	}
	if !validCategory {
		errs = append(errs, fmt.Sprintf("product %q: unknown category %q", p.ID, p.Category))
	}

	if p.CostPrice <= 0 {
		errs = append(errs, fmt.Sprintf("product %q: cost_price must be positive", p.ID))
	}
	if p.SellingPrice <= 0 {
		errs = append(errs, fmt.Sprintf("product %q: selling_price must be positive", p.ID))
	}
	if p.CostPrice > 0 && p.SellingPrice > 0 && p.SellingPrice <= p.CostPrice {
		errs = append(errs, fmt.Sprintf("product %q: selling_price must exceed cost_price", p.ID))
	}
	if p.PerishabilityDays < 0 {
		errs = append(errs, fmt.Sprintf("product %q: perishability_days must be non-negative", p.ID))
	}
	if p.TypicalSaleTimeDays <= 0 {
		errs = append(errs, fmt.Sprintf("product %q: typical_sale_time_days must be positive", p.ID))
	}
	if len(p.TargetDemographics) == 0 {
		errs = append(errs, fmt.Sprintf("product %q: target_demographics must not be empty", p.ID))
	}

	for key, mult := range p.SeasonalMultipliers {
		if mult <= 0 {
			errs = append(errs, fmt.Sprintf("product %q: seasonal_multipliers.%s must be positive", p.ID, key))
		}
		if key != "normal" && !holidays[key] {
			zap.L().Warn("product seasonal multiplier references unknown holiday",
				zap.String("product", p.ID),
				zap.String("holiday", key),
			)
		}
	}

	for regionType, mult := range p.LocationSuitability {
		if mult <= 0 {
			errs = append(errs, fmt.Sprintf("product %q: location_suitability.%s must be positive", p.ID, regionType))
		} else if mult < 0.1 || mult > 3.0 {
			zap.L().Warn("product location suitability outside typical range 0.1-3.0",
				zap.String("product", p.ID),
				zap.String("region_type", regionType),
				zap.Float64("multiplier", mult),
			)
		}
		known := false
		for _, t := range model.RegionTypes {
			if regionType == t {
				known = true
				break
			}
		}
		if !known {
			zap.L().Warn("product location suitability references unknown region type",
				zap.String("product", p.ID),
				zap.String("region_type", regionType),
			)
		}
	}

	for quarter, mult := range p.QuarterlyDemand {
		validQuarter := false
		for _, q := range model.Quarters {
			if quarter == q {
				validQuarter = true
				break
			}
		}
		if !validQuarter {
			errs = append(errs, fmt.Sprintf("product %q: quarterly_demand has unknown quarter %q", p.ID, quarter))
		}
		if mult <= 0 {
			errs = append(errs, fmt.Sprintf("product %q: quarterly_demand.%s must be positive", p.ID, quarter))
		}
	}

	if s := p.Supplier; s != nil {
		if s.LeadTimeDays < 0 {
			errs = append(errs, fmt.Sprintf("product %q: supplier_info.lead_time_days must be non-negative", p.ID))
		}
		if s.MinimumOrderQuantity <= 0 {
			errs = append(errs, fmt.Sprintf("product %q: supplier_info.minimum_order_quantity must be positive", p.ID))
		}
		if s.SupplierReliability < 0 || s.SupplierReliability > 1 {
			errs = append(errs, fmt.Sprintf("product %q: supplier_info.supplier_reliability must be in [0,1]", p.ID))
		}
	}

	if b := p.BaseCostUSD; b != nil && *b <= 0 {
		errs = append(errs, fmt.Sprintf("product %q: base_cost_usd must be positive", p.ID))
	}
	if b := p.BaseCostCedis; b != nil && *b <= 0 {
		errs = append(errs, fmt.Sprintf("product %q: base_cost_cedis must be positive", p.ID))
	}

	// Advisory plausibility checks.
	for _, tag := range p.StorageRequirements {
		known := false
		for _, k := range model.KnownStorageTags {
			if strings.Contains(tag, k) {
				known = true
				break
			}
		}
		if !known {
			zap.L().Warn("product has unknown storage requirement tag",
				zap.String("product", p.ID),
				zap.String("tag", tag),
			)
		}
	}
	if p.PerishabilityDays > 0 && p.TypicalSaleTimeDays > p.PerishabilityDays {
		zap.L().Warn("product typically sells slower than it perishes",
			zap.String("product", p.ID),
			zap.Int("sale_time_days", p.TypicalSaleTimeDays),
			zap.Int("perishability_days", p.PerishabilityDays),
		)
	}
	if p.CostPrice > 0 {
		margin := p.ProfitMargin()
		if margin < 0.05 {
			zap.L().Warn("product margin is very thin", zap.String("product", p.ID), zap.Float64("margin", margin))
		} else if margin > 3.0 {
			zap.L().Warn("product margin is unusually high", zap.String("product", p.ID), zap.Float64("margin", margin))
		}
	}
	if p.RequiresStorage("digital") && (p.RequiresStorage("cold") || p.RequiresStorage("dry")) {
		zap.L().Warn("digital product declares physical storage requirements", zap.String("product", p.ID))
	}

	return errs
}

func validateWeights(w *model.ScoringWeights) []string {
	var errs []string
	fields := map[string]float64{
		"profitability":      w.Profitability,
		"demand_potential":   w.DemandPotential,
		"risk_adjustment":    w.RiskAdjustment,
		"infrastructure_fit": w.InfrastructureFit,
		"customer_benefit":   w.CustomerBenefit,
	}
	for name, value := range fields {
		if value < 0 || value > 1 {
			errs = append(errs, fmt.Sprintf("scoring_weights.%s must be in [0,1]", name))
		}
	}
	if sum := w.Sum(); sum < 0.99 || sum > 1.01 {
		errs = append(errs, fmt.Sprintf("scoring_weights must sum to 1.0, got %.3f", sum))
	}
	return errs
}

func validateParams(p *model.BusinessParameters) []string {
	var errs []string
	if p.MaxScore <= 0 {
		errs = append(errs, "business_parameters.max_score must be positive")
	}
	if p.PopulationNormalization <= 0 {
		errs = append(errs, "business_parameters.population_normalization_factor must be positive")
	}
	if p.LocationDensityNormalization <= 0 {
		errs = append(errs, "business_parameters.location_density_normalization must be positive")
	}
	if len(p.CustomerBenefitKeywords) == 0 {
		errs = append(errs, "business_parameters.customer_benefit_keywords must not be empty")
	}
	if p.QuarterlyDemandNormalization <= 0 {
		errs = append(errs, "business_parameters.quarterly_demand_normalization must be positive")
	}
	return errs
}

// validateQuarters requires exactly Q1..Q4 covering all twelve months with
// no gaps or overlaps.
func validateQuarters(quarters map[string]model.QuarterData) []string {
	var errs []string
	if len(quarters) != 4 {
		errs = append(errs, fmt.Sprintf("quarters: expected exactly 4 entries, got %d", len(quarters)))
	}

	covered := make(map[int]string, 12)
	for _, key := range model.Quarters {
		q, ok := quarters[key]
		if !ok {
			errs = append(errs, fmt.Sprintf("quarters: missing %s", key))
			continue
		}
		if q.HolidayMultiplier <= 0 {
			errs = append(errs, fmt.Sprintf("quarters.%s: holiday_multiplier must be positive", key))
		}
		for _, m := range q.Months {
			if m < 1 || m > 12 {
				errs = append(errs, fmt.Sprintf("quarters.%s: month %d out of range 1-12", key, m))
				continue
			}
			if prev, dup := covered[m]; dup {
				errs = append(errs, fmt.Sprintf("quarters: month %d covered by both %s and %s", m, prev, key))
			}
			covered[m] = key
		}
	}
	if len(errs) == 0 && len(covered) != 12 {
		errs = append(errs, fmt.Sprintf("quarters: months covered %d of 12", len(covered)))
	}
	return errs
}

func validateEconomicFactors(e *model.EconomicFactors) []string {
	var errs []string
	if e.USDToCedisRate <= 0 {
		errs = append(errs, "economic_factors.usd_to_cedis_rate must be positive")
	}
	if e.CurrencyVolatility < 0 || e.CurrencyVolatility > 1 {
		errs = append(errs, "economic_factors.currency_volatility must be in [0,1]")
	}
	for quarter, rate := range e.QuarterlyInflation {
		validQuarter := false
		for _, q := range model.Quarters {
			if quarter == q {
				validQuarter = true
				break
			}
		}
		if !validQuarter {
			errs = append(errs, fmt.Sprintf("economic_factors.quarterly_inflation_projection has unknown quarter %q", quarter))
		}
		if rate < -1 || rate > 1 {
			errs = append(errs, fmt.Sprintf("economic_factors.quarterly_inflation_projection.%s out of range", quarter))
		}
	}
	return errs
}
