// Package scorer implements the weighted business-viability score. One
// calculator serves both score models: without an economic context it
// behaves as the flat model; with one it applies quarterly demand,
// quarter-indexed holiday multipliers and inflation-adjusted costs.
package scorer

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/kola-market/market-cli/internal/model"
)

// Config carries the calculator's configuration tables.
type Config struct {
	Holidays []model.HolidayPeriod
	Weights  model.ScoringWeights
	Params   model.BusinessParameters
	Quarters map[string]model.QuarterData

	// Economic switches the calculator into the quarterly/inflation
	// model. Nil keeps all quarterly multipliers neutral.
	Economic *model.EconomicFactors
}

// Calculator computes business-viability scores. It is stateless per call
// and safe for concurrent use once constructed.
type Calculator struct {
	holidays []model.HolidayPeriod
	weights  model.ScoringWeights
	params   model.BusinessParameters
	quarters map[string]model.QuarterData
	economic *model.EconomicFactors
}

// New builds a calculator from the given configuration tables.
func New(cfg Config) *Calculator {
	return &Calculator{
		holidays: cfg.Holidays,
		weights:  cfg.Weights,
		params:   cfg.Params,
		quarters: cfg.Quarters,
		economic: cfg.Economic,
	}
}

// categoryVenues maps product categories to the venue types that drive
// their demand. Unmapped categories use the default below.
var categoryVenues = map[string][]string{
	"education":          {"schools"},
	"cultural_goods":     {"churches", "mosques"},
	"telecommunications": {"companies", "estates", "markets"},
	"staple_food":        {"companies", "estates", "markets"},
	"health_products":    {"schools", "companies", "estates"},
}

var defaultVenues = []string{"markets", "companies"}

// impulseCategories are prone to impulse buying.
var impulseCategories = map[string]bool{
	"telecommunications": true,
	"cultural_goods":     true,
}

// incomeBrackets maps income levels to the selling-price range that fits
// them, in cedis.
var incomeBrackets = map[string][2]float64{
	"low":         {0, 25},
	"medium":      {15, 75},
	"medium-high": {40, 150},
	"high":        {75, 500},
}

// Score computes the business-viability score and analysis for one
// product/region/month combination. Deterministic: the same inputs always
// produce the same output.
func (c *Calculator) Score(product *model.Product, region *model.Region, month int) (float64, model.BusinessAnalysis, error) {
	if product == nil {
		return 0, model.BusinessAnalysis{}, eris.New("scorer: product is nil")
	}
	if region == nil {
		return 0, model.BusinessAnalysis{}, eris.New("scorer: region is nil")
	}
	if month < 1 || month > 12 {
		return 0, model.BusinessAnalysis{}, eris.Errorf("scorer: month %d out of range 1-12", month)
	}

	quarter := model.QuarterForMonth(month)
	basis := c.costBasisFor(product, quarter)

	var reasoning []string
	var scores model.ComponentScores

	scores.Profitability = c.profitabilityScore(product, region, basis, &reasoning)
	scores.DemandPotential = c.demandScore(product, region, month, quarter, basis, &reasoning)
	scores.RiskAdjustment = c.riskScore(product, region, quarter, &reasoning)
	scores.InfrastructureFit = c.infrastructureScore(product, region, &reasoning)
	scores.CustomerBenefit = c.benefitScore(product, &reasoning)

	final := scores.Profitability*c.weights.Profitability +
		scores.DemandPotential*c.weights.DemandPotential +
		scores.RiskAdjustment*c.weights.RiskAdjustment +
		scores.InfrastructureFit*c.weights.InfrastructureFit +
		scores.CustomerBenefit*c.weights.CustomerBenefit

	analysis := model.BusinessAnalysis{
		Reasoning:       strings.Join(reasoning, "; "),
		DetailedScores:  scores,
		Financial:       c.financialProjection(product, region, month, quarter, basis, scores.DemandPotential),
		CustomerBenefit: product.CustomerBenefit,
		RiskFactors:     c.riskFactors(product),
	}

	return min(final, c.params.MaxScore), analysis, nil
}

func (c *Calculator) profitabilityScore(product *model.Product, region *model.Region, basis costBasis, reasoning *[]string) float64 {
	monthlyProfitPotential := basis.margin * basis.velocity
	score := min(monthlyProfitPotential*10, 10)

	if basis.margin > 0.5 {
		*reasoning = append(*reasoning, fmt.Sprintf("High profit margin (%.0f%%)", basis.margin*100))
	} else if basis.margin > 0.3 {
		*reasoning = append(*reasoning, fmt.Sprintf("Good profit margin (%.0f%%)", basis.margin*100))
	}
	if basis.velocity > 1 {
		*reasoning = append(*reasoning, fmt.Sprintf("Fast turnover (%d days)", product.TypicalSaleTimeDays))
	}

	adjustment := incomeAdjustment(product.SellingPrice, region.IncomeLevel)
	score *= adjustment
	if adjustment != 1.0 {
		*reasoning = append(*reasoning, fmt.Sprintf("Income level adjustment (%.1fx)", adjustment))
	}

	return score
}

func (c *Calculator) demandScore(product *model.Product, region *model.Region, month int, quarter string, basis costBasis, reasoning *[]string) float64 {
	locationMultiplier := locationSuitability(product, region)
	populationFactor := min(float64(region.Population)/c.params.PopulationNormalization, 3.0)
	holidayBoost := c.holidayBoost(product, month)
	densityFactor := c.locationDensityFactor(product, region)
	behaviorAlignment := behaviorAlignment(product, region, basis)

	if c.economic != nil {
		if q, ok := c.quarters[quarter]; ok {
			holidayBoost = max(holidayBoost, q.HolidayMultiplier)
		}
	}

	score := locationMultiplier * populationFactor * holidayBoost *
		(1 + densityFactor) * behaviorAlignment

	if c.economic != nil {
		qdemand := product.QuarterlyDemandFor(quarter)
		score = score * qdemand / c.params.QuarterlyDemandNormalization
		if qdemand > 1.2 {
			*reasoning = append(*reasoning, fmt.Sprintf("Strong quarterly demand (%.1fx)", qdemand))
		}
	}

	if locationMultiplier > 1.1 {
		*reasoning = append(*reasoning, fmt.Sprintf("Good location fit (%.1fx)", locationMultiplier))
	}
	if holidayBoost > 1.2 {
		*reasoning = append(*reasoning, fmt.Sprintf("Holiday season boost (%.1fx)", holidayBoost))
	}
	if densityFactor > 0.5 {
		*reasoning = append(*reasoning, "High venue density")
	}
	if populationFactor > 1.5 {
		*reasoning = append(*reasoning, "Large population base")
	}
	if behaviorAlignment > 1.1 {
		*reasoning = append(*reasoning, "Strong customer behavior fit")
	}

	return min(score, 10)
}

func (c *Calculator) riskScore(product *model.Product, region *model.Region, quarter string, reasoning *[]string) float64 {
	score := perishabilityScore(product.PerishabilityDays)
	if score < 0.7 {
		*reasoning = append(*reasoning, "High perishability risk")
	}

	compatibility := storageCompatibility(product, region)
	score *= compatibility
	if compatibility < 0.8 {
		*reasoning = append(*reasoning, "Storage infrastructure challenges")
	} else if compatibility > 1.0 {
		*reasoning = append(*reasoning, "Infrastructure advantage")
	}

	score *= max(0.3, 1.0-float64(len(product.RiskFactors))*0.1)
	if len(product.RiskFactors) > 3 {
		*reasoning = append(*reasoning, "Multiple risk factors")
	}

	if c.economic != nil {
		if product.ImportDependent {
			score *= 1 - c.economic.CurrencyVolatility/2
			*reasoning = append(*reasoning, "Currency exposure on imports")
		}
		if product.QuarterlyDemandFor(quarter) < 0.8 {
			score *= 0.9
			*reasoning = append(*reasoning, "Seasonal demand low this quarter")
		}
	}

	return min(score*10, 10)
}

func (c *Calculator) infrastructureScore(product *model.Product, region *model.Region, reasoning *[]string) float64 {
	score := storageCompatibility(product, region)

	// Energy products benefit from unreliable electricity.
	if product.Category == "energy_solutions" {
		factor := 1.2 - region.Infrastructure.ElectricityReliability
		score *= factor
		if factor > 1.0 {
			*reasoning = append(*reasoning, "Benefits from electricity challenges")
		}
	}

	if !product.RequiresStorage("digital") {
		score *= 0.5 + region.Infrastructure.TransportQuality*0.5
		if region.Infrastructure.TransportQuality < 0.6 {
			*reasoning = append(*reasoning, "Transport quality concerns")
		}
	}

	return min(score*10, 10)
}

func (c *Calculator) benefitScore(product *model.Product, reasoning *[]string) float64 {
	keywords := c.params.CustomerBenefitKeywords
	text := strings.ToLower(product.CustomerBenefit)

	matches := 0
	for _, keyword := range keywords {
		if strings.Contains(text, strings.ToLower(keyword)) {
			matches++
		}
	}

	if matches >= 3 {
		*reasoning = append(*reasoning, "Strong customer benefits")
	} else if matches >= 2 {
		*reasoning = append(*reasoning, "Good customer benefits")
	}

	return float64(matches) / float64(len(keywords)) * 10
}

// holidayBoost picks the strongest applicable seasonal multiplier among the
// holidays covering the target month, never the first match.
func (c *Calculator) holidayBoost(product *model.Product, month int) float64 {
	boost := 1.0
	for i := range c.holidays {
		h := &c.holidays[i]
		if !h.Covers(month) {
			continue
		}
		if mult, ok := product.SeasonalMultipliers[h.Name]; ok {
			boost = max(boost, mult)
		}
	}
	return boost
}

func (c *Calculator) locationDensityFactor(product *model.Product, region *model.Region) float64 {
	venues, ok := categoryVenues[product.Category]
	if !ok {
		venues = defaultVenues
	}

	relevant := 0
	for _, venue := range venues {
		relevant += region.KeyLocations[venue]
	}
	return min(float64(relevant)/c.params.LocationDensityNormalization, 2.0)
}

func (c *Calculator) financialProjection(product *model.Product, region *model.Region, month int, quarter string, basis costBasis, demandScore float64) model.FinancialProjection {
	holidayBoost := c.holidayBoost(product, month)
	if c.economic != nil {
		if q, ok := c.quarters[quarter]; ok {
			holidayBoost = max(holidayBoost, q.HolidayMultiplier)
		}
	}
	locationMultiplier := locationSuitability(product, region)
	populationFactor := min(float64(region.Population)/c.params.PopulationNormalization, 2.0)

	adjustedUnits := basis.velocity * locationMultiplier * holidayBoost *
		populationFactor * min(demandScore/5.0, 2.0)

	return model.FinancialProjection{
		CostPrice:               basis.costPrice,
		SellingPrice:            product.SellingPrice,
		ProfitMarginPercent:     fmt.Sprintf("%.0f%%", basis.margin*100),
		EstimatedMonthlyRevenue: adjustedUnits * product.SellingPrice,
		EstimatedMonthlyProfit:  adjustedUnits * basis.profitPerUnit,
		SaleTimeDays:            product.TypicalSaleTimeDays,
		PerishabilityDays:       product.PerishabilityDays,
	}
}

// riskFactors returns the product's risk list, extended with a currency
// exposure entry for imports when the economic model is active. The shared
// product record is never modified.
func (c *Calculator) riskFactors(product *model.Product) []string {
	out := make([]string, len(product.RiskFactors))
	copy(out, product.RiskFactors)
	if c.economic != nil && product.ImportDependent {
		out = append(out, "currency_exposure")
	}
	return out
}

func locationSuitability(product *model.Product, region *model.Region) float64 {
	if mult, ok := product.LocationSuitability[region.Type]; ok {
		return mult
	}
	return 1.0
}

func behaviorAlignment(product *model.Product, region *model.Region, basis costBasis) float64 {
	alignment := 1.0

	// High-margin goods need buyers who are not price sensitive.
	if basis.margin > 1.0 {
		alignment *= 1.2 - region.CustomerBehavior.PriceSensitivity
	}
	if impulseCategories[product.Category] {
		alignment *= 0.8 + region.CustomerBehavior.ImpulseBuying*0.4
	}
	if product.SellingPrice > 50 {
		alignment *= 0.7 + region.CustomerBehavior.BrandConsciousness*0.6
	}

	return alignment
}

func incomeAdjustment(sellingPrice float64, incomeLevel string) float64 {
	bracket, ok := incomeBrackets[incomeLevel]
	if !ok {
		bracket = [2]float64{0, 1000}
	}

	switch {
	case sellingPrice >= bracket[0] && sellingPrice <= bracket[1]:
		return 1.0
	case sellingPrice < bracket[0]:
		// Perceived as cheap for the market.
		return 0.8
	default:
		return max(0.3, 1.0-(sellingPrice-bracket[1])/bracket[1])
	}
}

func perishabilityScore(days int) float64 {
	switch {
	case days == 0 || days > 365:
		return 1.0
	case days > 180:
		return 0.8
	case days > 30:
		return 0.6
	default:
		return 0.3
	}
}

func storageCompatibility(product *model.Product, region *model.Region) float64 {
	compatibility := 1.0

	if product.RequiresStorage("cold") || product.RequiresStorage("cool") {
		compatibility *= region.Infrastructure.ColdStorageAccess
	}
	if product.RequiresStorage("digital") {
		compatibility *= region.Infrastructure.ElectricityReliability
	}
	if product.RequiresStorage("dry") {
		compatibility *= min(1.0, 0.7+region.Infrastructure.TransportQuality*0.3)
	}

	return compatibility
}
