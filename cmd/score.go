package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/kola-market/market-cli/internal/recommender"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a single product in a region",
	Long: `Computes the business-viability score and full analysis for one
product/region/month combination.

Examples:
  market-cli score --region Accra --product rice_imported --month 12
  market-cli score --region Tamale --product solar_lanterns`,
	RunE: runScore,
}

func init() {
	f := scoreCmd.Flags()
	f.String("region", "", "region to analyze (required)")
	f.String("product", "", "product ID to score (required)")
	f.Int("month", 0, "target month 1-12 (default: current month)")
	f.String("data", "", "dataset file path (default: bundled dataset)")
	_ = scoreCmd.MarkFlagRequired("region")
	_ = scoreCmd.MarkFlagRequired("product")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	region, _ := cmd.Flags().GetString("region")
	productID, _ := cmd.Flags().GetString("product")
	month, _ := cmd.Flags().GetInt("month")
	if month == 0 {
		month = int(time.Now().Month())
	}

	store, err := loadStore(cmd)
	if err != nil {
		return err
	}
	rec := newRecommender(store)

	score, analysis, err := rec.Score(productID, region, month)
	if err != nil {
		if recommender.IsInvalidInput(err) {
			return err
		}
		return eris.Wrapf(err, "score: %s in %s", productID, region)
	}

	w := os.Stdout
	fmt.Fprintf(w, "Product: %s\n", productID)
	fmt.Fprintf(w, "Region:  %s\n", region)
	fmt.Fprintf(w, "Month:   %d\n", month)
	fmt.Fprintf(w, "Score:   %.2f / 10\n\n", score)

	fmt.Fprintln(w, "Components:")
	fmt.Fprintf(w, "  %-20s %.2f\n", "profitability", analysis.DetailedScores.Profitability)
	fmt.Fprintf(w, "  %-20s %.2f\n", "demand_potential", analysis.DetailedScores.DemandPotential)
	fmt.Fprintf(w, "  %-20s %.2f\n", "risk_adjustment", analysis.DetailedScores.RiskAdjustment)
	fmt.Fprintf(w, "  %-20s %.2f\n", "infrastructure_fit", analysis.DetailedScores.InfrastructureFit)
	fmt.Fprintf(w, "  %-20s %.2f\n", "customer_benefit", analysis.DetailedScores.CustomerBenefit)

	fin := analysis.Financial
	fmt.Fprintln(w, "\nFinancials:")
	fmt.Fprintf(w, "  Cost: %.2f -> Sell: %.2f (Margin: %s)\n",
		fin.CostPrice, fin.SellingPrice, fin.ProfitMarginPercent)
	fmt.Fprintf(w, "  Est. monthly revenue: %.2f\n", fin.EstimatedMonthlyRevenue)
	fmt.Fprintf(w, "  Est. monthly profit:  %.2f\n", fin.EstimatedMonthlyProfit)

	if analysis.Reasoning != "" {
		fmt.Fprintf(w, "\nAnalysis: %s\n", analysis.Reasoning)
	}
	return nil
}
