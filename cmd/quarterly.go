package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/kola-market/market-cli/internal/model"
)

var quarterlyCmd = &cobra.Command{
	Use:   "quarterly",
	Short: "Rank products for a region and quarter",
	Long: `Generates quarter-optimized recommendations using the economic score
model: quarter-indexed holiday multipliers, per-product quarterly demand and
inflation-adjusted costs.

Examples:
  market-cli quarterly --region Accra --quarter Q4
  market-cli quarterly --region Kumasi --quarter Q3 --limit 15 --format json`,
	RunE: runQuarterly,
}

func init() {
	f := quarterlyCmd.Flags()
	f.String("region", "", "region to analyze (required)")
	f.String("quarter", "", "target quarter Q1-Q4 (default: current quarter)")
	f.Int("limit", 15, "number of recommendations")
	f.String("format", "table", "output format: table, json or csv")
	f.String("output", "", "output file path (default: stdout)")
	f.String("data", "", "dataset file path (default: bundled dataset)")
	_ = quarterlyCmd.MarkFlagRequired("region")

	rootCmd.AddCommand(quarterlyCmd)
}

func runQuarterly(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	region, _ := cmd.Flags().GetString("region")
	quarter, _ := cmd.Flags().GetString("quarter")
	limit, _ := cmd.Flags().GetInt("limit")
	format, _ := cmd.Flags().GetString("format")

	if quarter == "" {
		quarter = model.QuarterForMonth(int(time.Now().Month()))
	}

	store, err := loadStore(cmd)
	if err != nil {
		return err
	}
	rec := newRecommender(store)

	recs, err := rec.RecommendQuarter(ctx, region, quarter, limit)
	if err != nil {
		return eris.Wrap(err, "quarterly")
	}

	if format != "table" {
		return outputRecommendations(cmd, recs, region, 0)
	}

	w := os.Stdout
	quarterInfo, _ := store.Quarter(quarter)
	economic := store.Economic()

	fmt.Fprintf(w, "Quarterly recommendations for %s, %s\n", region, quarter)
	fmt.Fprintf(w, "Season: %s (%s)\n", model.DisplayName(quarterInfo.Season), quarterInfo.Description)
	fmt.Fprintf(w, "USD/GHS rate: %.2f | Inflation: %.1f%% | Holiday boost: %.1fx\n\n",
		economic.USDToCedisRate, economic.InflationFor(quarter)*100, quarterInfo.HolidayMultiplier)

	for i, r := range recs {
		printRecommendationDetail(w, i+1, r)
	}
	return nil
}
