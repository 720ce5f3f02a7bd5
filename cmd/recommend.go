package main

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Rank products for a region and month",
	Long: `Scores every product in the dataset for one region and month, then
prints the top results sorted by business score.

Examples:
  # Top 5 products for Accra in December
  market-cli recommend --region Accra --month 12

  # Top 3 as JSON
  market-cli recommend --region Kumasi --month 6 --limit 3 --format json

  # Export to CSV
  market-cli recommend --region Tamale --format csv --output tamale.csv`,
	RunE: runRecommend,
}

func init() {
	f := recommendCmd.Flags()
	f.String("region", "", "region to analyze (required)")
	f.Int("month", 0, "target month 1-12 (default: current month)")
	f.Int("limit", 0, "number of recommendations (default from config)")
	f.String("format", "table", "output format: table, json or csv")
	f.String("output", "", "output file path (default: stdout)")
	f.String("data", "", "dataset file path (default: bundled dataset)")
	_ = recommendCmd.MarkFlagRequired("region")

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	region, _ := cmd.Flags().GetString("region")
	month, _ := cmd.Flags().GetInt("month")
	limit, _ := cmd.Flags().GetInt("limit")

	if month == 0 {
		month = int(time.Now().Month())
	}
	if limit == 0 {
		limit = cfg.Recommend.Limit
	}

	store, err := loadStore(cmd)
	if err != nil {
		return err
	}
	rec := newRecommender(store)

	recs, err := rec.Recommend(ctx, region, month, limit)
	if err != nil {
		return eris.Wrap(err, "recommend")
	}

	zap.L().Info("recommendations generated",
		zap.String("region", region),
		zap.Int("month", month),
		zap.Int("count", len(recs)),
	)

	return outputRecommendations(cmd, recs, region, month)
}
