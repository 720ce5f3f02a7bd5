// Package export renders recommendation lists and quarterly reports to
// JSON, CSV and XLSX. Exporters only read the computed data; a failed
// export never affects the recommendations themselves.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/kola-market/market-cli/internal/model"
	"github.com/kola-market/market-cli/internal/recommender"
)

// RecommendationsJSON writes a recommendation list as indented JSON.
func RecommendationsJSON(w io.Writer, recs []model.Recommendation) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(recs); err != nil {
		return eris.Wrap(err, "export: encode recommendations json")
	}
	return nil
}

var recommendationHeader = []string{
	"product", "category", "business_score",
	"cost_price_cedis", "selling_price_cedis", "profit_margin",
	"estimated_monthly_revenue_cedis", "estimated_monthly_profit_cedis",
	"sale_time_days", "perishability_days", "reasoning", "risk_factors",
}

// RecommendationsCSV writes a recommendation list as flattened CSV rows.
func RecommendationsCSV(w io.Writer, recs []model.Recommendation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(recommendationHeader); err != nil {
		return eris.Wrap(err, "export: write csv header")
	}

	for _, rec := range recs {
		fin := rec.Analysis.Financial
		row := []string{
			rec.Product,
			rec.Category,
			formatFloat(rec.BusinessScore),
			formatFloat(fin.CostPrice),
			formatFloat(fin.SellingPrice),
			fin.ProfitMarginPercent,
			formatFloat(fin.EstimatedMonthlyRevenue),
			formatFloat(fin.EstimatedMonthlyProfit),
			strconv.Itoa(fin.SaleTimeDays),
			strconv.Itoa(fin.PerishabilityDays),
			rec.Analysis.Reasoning,
			strings.Join(rec.Analysis.RiskFactors, ", "),
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "export: write csv row")
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return eris.Wrap(err, "export: flush csv")
	}
	return nil
}

// ReportJSON writes a quarterly report as indented JSON.
func ReportJSON(w io.Writer, report *recommender.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return eris.Wrap(err, "export: encode report json")
	}
	return nil
}

var reportHeader = []string{
	"report_id", "analysis_date", "quarter", "location", "region_type",
	"population", "product", "category", "business_score",
	"quarterly_profit_potential", "risk_level",
	"infrastructure_score", "currency_risk_exposure",
}

// ReportCSV writes a quarterly report as flattened CSV, one row per
// recommendation per region. Regions are emitted in name order so output is
// reproducible.
func ReportCSV(w io.Writer, report *recommender.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(reportHeader); err != nil {
		return eris.Wrap(err, "export: write report csv header")
	}

	for _, row := range reportRows(report) {
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "export: write report csv row")
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return eris.Wrap(err, "export: flush report csv")
	}
	return nil
}

// ReportXLSX writes a quarterly report as a single-sheet workbook with the
// same flattened layout as the CSV export.
func ReportXLSX(w io.Writer, report *recommender.Report) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Quarterly Analysis")
	if err != nil {
		return eris.Wrap(err, "export: add xlsx sheet")
	}

	header := sheet.AddRow()
	for _, col := range reportHeader {
		header.AddCell().SetString(col)
	}
	for _, row := range reportRows(report) {
		xr := sheet.AddRow()
		for _, value := range row {
			xr.AddCell().SetString(value)
		}
	}

	if err := file.Write(w); err != nil {
		return eris.Wrap(err, "export: write xlsx")
	}
	return nil
}

func reportRows(report *recommender.Report) [][]string {
	regions := make([]string, 0, len(report.Regions))
	for name := range report.Regions {
		regions = append(regions, name)
	}
	sort.Strings(regions)

	var rows [][]string
	for _, regionName := range regions {
		rr := report.Regions[regionName]
		for _, entry := range rr.TopRecommendations {
			rows = append(rows, []string{
				report.ID,
				report.AnalysisDate,
				report.Quarter,
				regionName,
				rr.RegionType,
				strconv.Itoa(rr.Population),
				entry.Product,
				entry.Category,
				formatFloat(entry.BusinessScore),
				formatFloat(entry.QuarterlyProfitPotential),
				entry.RiskLevel,
				formatFloat(rr.InfrastructureScore),
				formatFloat(rr.CurrencyRiskExposure),
			})
		}
	}
	return rows
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
