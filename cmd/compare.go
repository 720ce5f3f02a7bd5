package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/kola-market/market-cli/internal/model"
	"github.com/kola-market/market-cli/internal/recommender"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare regions for a quarter",
	Long: `Runs the quarterly model for two or more regions and prints a
side-by-side comparison with the best opportunity per product.

Examples:
  market-cli compare --regions Accra,Kumasi --quarter Q4
  market-cli compare --regions Accra,Kumasi,Tamale --quarter Q3 --category food`,
	RunE: runCompare,
}

func init() {
	f := compareCmd.Flags()
	f.String("regions", "", "comma-separated regions to compare (required, at least 2)")
	f.String("quarter", "", "target quarter Q1-Q4 (default: current quarter)")
	f.String("category", "", "filter recommendations by category substring")
	f.String("format", "table", "output format: table or json")
	f.String("data", "", "dataset file path (default: bundled dataset)")
	_ = compareCmd.MarkFlagRequired("regions")

	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	regionsFlag, _ := cmd.Flags().GetString("regions")
	quarter, _ := cmd.Flags().GetString("quarter")
	category, _ := cmd.Flags().GetString("category")
	format, _ := cmd.Flags().GetString("format")

	regions := splitAndTrim(regionsFlag)
	if quarter == "" {
		quarter = model.QuarterForMonth(int(time.Now().Month()))
	}

	store, err := loadStore(cmd)
	if err != nil {
		return err
	}
	rec := newRecommender(store)

	cmp, err := rec.CompareRegions(ctx, regions, quarter, category)
	if err != nil {
		return eris.Wrap(err, "compare")
	}

	if format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(cmp)
	}

	printComparison(cmp)
	return nil
}

func printComparison(cmp *recommender.Comparison) {
	w := os.Stdout
	fmt.Fprintf(w, "Region comparison for %s (%s)\n", cmp.Quarter, cmp.QuarterDescription)
	if cmp.CategoryFilter != "" {
		fmt.Fprintf(w, "Category filter: %s\n", cmp.CategoryFilter)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%-12s %10s %10s %12s %-25s %12s\n",
		"Region", "Top", "Average", "Population", "Best Product", "Qtr Profit")
	for _, region := range cmp.Regions {
		s := cmp.Summaries[region]
		fmt.Fprintf(w, "%-12s %10.2f %10.2f %12d %-25s %12.2f\n",
			region, s.TopScore, s.AverageScore, s.Population, s.BestProduct, s.ProfitPotential)
	}

	fmt.Fprintln(w, "\nBest opportunities:")
	for product, opp := range cmp.BestOpportunities {
		fmt.Fprintf(w, "  %-25s best in %-12s (%.2f)\n", product, opp.BestRegion, opp.BestScore)
	}

	fmt.Fprintf(w, "\nBest overall market: %s\n", cmp.Insights.BestOverall)
	fmt.Fprintf(w, "Largest market:      %s\n", cmp.Insights.LargestMarket)
	fmt.Fprintf(w, "Most profitable:     %s\n", cmp.Insights.MostProfitable)
	fmt.Fprintf(w, "%s\n", cmp.Insights.Summary)
}
