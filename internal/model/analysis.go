package model

// ComponentScores holds the five raw component scores before weighting.
type ComponentScores struct {
	Profitability     float64 `json:"profitability"`
	DemandPotential   float64 `json:"demand_potential"`
	RiskAdjustment    float64 `json:"risk_adjustment"`
	InfrastructureFit float64 `json:"infrastructure_fit"`
	CustomerBenefit   float64 `json:"customer_benefit"`
}

// FinancialProjection estimates monthly revenue and profit for a
// product/region/month combination. Prices reflect the cost basis used for
// the calculation, which may be inflation-adjusted.
type FinancialProjection struct {
	CostPrice               float64 `json:"cost_price_cedis"`
	SellingPrice            float64 `json:"selling_price_cedis"`
	ProfitMarginPercent     string  `json:"profit_margin_percent"`
	EstimatedMonthlyRevenue float64 `json:"estimated_monthly_revenue_cedis"`
	EstimatedMonthlyProfit  float64 `json:"estimated_monthly_profit_cedis"`
	SaleTimeDays            int     `json:"sale_time_days"`
	PerishabilityDays       int     `json:"perishability_days"`
}

// BusinessAnalysis is the structured breakdown emitted alongside every score.
// It is created fresh per scoring call and owned by the caller.
type BusinessAnalysis struct {
	Reasoning       string              `json:"reasoning"`
	DetailedScores  ComponentScores     `json:"detailed_scores"`
	Financial       FinancialProjection `json:"financial_projection"`
	CustomerBenefit string              `json:"customer_benefit"`
	RiskFactors     []string            `json:"risk_factors"`
}

// Recommendation pairs a product with its score and analysis for one region
// and month.
type Recommendation struct {
	ProductID     string           `json:"product_id"`
	Product       string           `json:"product"`
	Category      string           `json:"category"`
	BusinessScore float64          `json:"business_score"`
	Analysis      BusinessAnalysis `json:"analysis"`

	// ordinal of the underlying product, kept for deterministic tie-breaks.
	Ordinal int `json:"-"`
}
