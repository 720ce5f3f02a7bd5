package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/kola-market/market-cli/internal/export"
	"github.com/kola-market/market-cli/internal/model"
)

// outputWriter opens the --output path, or stdout when unset. The returned
// closer is a no-op for stdout.
func outputWriter(cmd *cobra.Command) (io.Writer, func(), error) {
	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "create output file %s", path)
	}
	return f, func() { _ = f.Close() }, nil
}

func outputRecommendations(cmd *cobra.Command, recs []model.Recommendation, region string, month int) error {
	format, _ := cmd.Flags().GetString("format")

	w, closeFn, err := outputWriter(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	switch format {
	case "json":
		return export.RecommendationsJSON(w, recs)
	case "csv":
		return export.RecommendationsCSV(w, recs)
	case "table":
		writeRecommendationTable(w, recs, region, month)
		return nil
	default:
		return eris.Errorf("unsupported format %q (want table, json or csv)", format)
	}
}

func writeRecommendationTable(w io.Writer, recs []model.Recommendation, region string, month int) {
	fmt.Fprintf(w, "Recommendations for %s, month %d\n", region, month)
	fmt.Fprintf(w, "%-4s %-25s %-20s %7s %12s %12s\n",
		"#", "Product", "Category", "Score", "Est. Profit", "Est. Revenue")
	fmt.Fprintln(w, strings.Repeat("-", 85))

	for i, rec := range recs {
		fin := rec.Analysis.Financial
		fmt.Fprintf(w, "%-4d %-25s %-20s %7.2f %12.2f %12.2f\n",
			i+1, rec.Product, rec.Category, rec.BusinessScore,
			fin.EstimatedMonthlyProfit, fin.EstimatedMonthlyRevenue)
	}
}

func printRecommendationDetail(w io.Writer, rank int, rec model.Recommendation) {
	fin := rec.Analysis.Financial
	fmt.Fprintf(w, "%d. %s (%s)\n", rank, rec.Product, rec.Category)
	fmt.Fprintf(w, "   Business Score: %.2f/10\n", rec.BusinessScore)
	fmt.Fprintf(w, "   Cost: %.2f -> Sell: %.2f (Margin: %s)\n",
		fin.CostPrice, fin.SellingPrice, fin.ProfitMarginPercent)
	fmt.Fprintf(w, "   Monthly Potential: %.2f profit | %.2f revenue\n",
		fin.EstimatedMonthlyProfit, fin.EstimatedMonthlyRevenue)
	fmt.Fprintf(w, "   Sale Time: %d days | Shelf Life: %d days\n",
		fin.SaleTimeDays, fin.PerishabilityDays)
	fmt.Fprintf(w, "   Customer Benefit: %s\n", rec.Analysis.CustomerBenefit)
	if rec.Analysis.Reasoning != "" {
		fmt.Fprintf(w, "   Analysis: %s\n", rec.Analysis.Reasoning)
	}
	if len(rec.Analysis.RiskFactors) > 0 {
		fmt.Fprintf(w, "   Risks: %s\n", strings.Join(rec.Analysis.RiskFactors, ", "))
	}
	fmt.Fprintln(w)
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
