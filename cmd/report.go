package main

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kola-market/market-cli/internal/export"
	"github.com/kola-market/market-cli/internal/model"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a quarterly business report",
	Long: `Builds a comprehensive quarterly report across one or more regions:
per-region category summaries, top recommendations with risk levels,
currency exposure and cross-region insights.

Examples:
  market-cli report --regions Accra,Kumasi,Tamale --quarter Q4 --format json --output q4.json
  market-cli report --regions Accra,Kumasi --quarter Q2 --format xlsx --output q2.xlsx`,
	RunE: runReport,
}

func init() {
	f := reportCmd.Flags()
	f.String("regions", "", "comma-separated regions (required)")
	f.String("quarter", "", "target quarter Q1-Q4 (default: current quarter)")
	f.String("format", "json", "output format: json, csv or xlsx")
	f.String("output", "", "output file path (default: stdout)")
	f.String("data", "", "dataset file path (default: bundled dataset)")
	_ = reportCmd.MarkFlagRequired("regions")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	regionsFlag, _ := cmd.Flags().GetString("regions")
	quarter, _ := cmd.Flags().GetString("quarter")
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

	report, err := rec.QuarterlyReport(ctx, regions, quarter)
	if err != nil {
		return eris.Wrap(err, "report")
	}

	zap.L().Info("quarterly report generated",
		zap.String("report_id", report.ID),
		zap.String("quarter", quarter),
		zap.Int("regions", len(regions)),
	)

	w, closeFn, err := outputWriter(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	switch format {
	case "json":
		return export.ReportJSON(w, report)
	case "csv":
		return export.ReportCSV(w, report)
	case "xlsx":
		return export.ReportXLSX(w, report)
	default:
		return eris.Errorf("report: unsupported format %q (want json, csv or xlsx)", format)
	}
}
