package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/valuewise/marketval/internal/contract"
	"github.com/valuewise/marketval/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintAnalysisResults outputs a market analysis, dispatching based on the output format configured.
func PrintAnalysisResults(analysis *schema.MarketAnalysis, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, fmtMoney := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, analysis)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVAnalysis(w, analysis, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return errParquetOutput
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAnalysisTable(w, analysis, cfg, fmtFloat, fmtMoney, duration)
		}, "Wrote table")
	}
}

// writeAnalysisTable generates and writes the human-readable table plus summary.
func writeAnalysisTable(w io.Writer, analysis *schema.MarketAnalysis, cfg *contract.Config, fmtFloat, fmtMoney func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)

	headers := []string{"Rank", "Vehicle", "List", "Adjustment", "Adjusted", "Score", "Weight"}
	table.Header(headers)

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	totalWeights := analysis.CalculationBreakdown.TotalWeights
	maxVehicleWidth := getMaxTableVehicleWidth(cfg)

	var data [][]string
	for i, comp := range analysis.Comparables {
		var totalAdj float64
		if comp.Adjustments != nil {
			totalAdj = comp.Adjustments.TotalAdjustment
		}
		weightPct := 0.0
		if totalWeights > 0 {
			weightPct = comp.QualityScore / totalWeights * 100
		}
		row := []string{
			strconv.Itoa(i + 1),
			contract.TruncateLabel(vehicleLabel(&comp), maxVehicleWidth),
			fmtMoney(comp.ListPrice),
			fmtMoney(totalAdj),
			fmtMoney(comp.AdjustedPrice),
			fmtFloat(comp.QualityScore),
			fmtFloat(weightPct) + "%",
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	confidence := contract.GetPlainConfidenceLabel(analysis.ConfidenceLevel)
	if cfg.UseColors {
		confidence = contract.GetColorConfidenceLabel(analysis.ConfidenceLevel)
	}
	if _, err := fmt.Fprintf(w, "Market value: %s (%s of %d comparables)\n",
		fmtMoney(analysis.CalculatedMarketValue), analysis.CalculationMethod, len(analysis.Comparables)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Confidence: %s/100 (%s)\n", fmtFloat(analysis.ConfidenceLevel), confidence); err != nil {
		return err
	}

	if analysis.InsuranceValue > 0 {
		pct := ""
		if analysis.ValueDifferencePercentage != nil {
			pct = fmt.Sprintf(" (%s%%)", fmtFloat(*analysis.ValueDifferencePercentage))
		}
		if _, err := fmt.Fprintf(w, "Insurance valuation: %s, difference %s%s\n",
			fmtMoney(analysis.InsuranceValue), fmtMoney(analysis.ValueDifference), pct); err != nil {
			return err
		}
		if analysis.IsUndervalued {
			if _, err := fmt.Fprintf(w, "⚠️  The insurance valuation appears to undervalue this vehicle\n"); err != nil {
				return err
			}
		}
	}

	if _, err := fmt.Fprintf(w, "\nCalculation steps:\n"); err != nil {
		return err
	}
	for _, step := range analysis.CalculationBreakdown.Steps {
		if _, err := fmt.Fprintf(w, "  %d. %s: %s = %s\n",
			step.Index, step.Description, step.Calculation, fmtFloat(step.Result)); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "\nCalculation completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// writeCSVAnalysis writes one row per comparable with the analysis-level
// figures repeated, so the file stays flat for spreadsheet use.
func writeCSVAnalysis(w io.Writer, analysis *schema.MarketAnalysis, fmtFloat func(float64) string) error {
	header := []string{
		"rank",
		"comparable_id",
		"vehicle",
		"list_price",
		"mileage_adjustment",
		"equipment_adjustment",
		"condition_adjustment",
		"total_adjustment",
		"adjusted_price",
		"quality_score",
		"market_value",
		"confidence",
		"calculated_at",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, comp := range analysis.Comparables {
			var mileageAdj, equipAdj, conditionAdj, totalAdj float64
			if comp.Adjustments != nil {
				mileageAdj = comp.Adjustments.MileageAdjustment.AdjustmentAmount
				for _, ea := range comp.Adjustments.EquipmentAdjustments {
					equipAdj += ea.Value
				}
				conditionAdj = comp.Adjustments.ConditionAdjustment.AdjustmentAmount
				totalAdj = comp.Adjustments.TotalAdjustment
			}
			rec := []string{
				strconv.Itoa(i + 1),
				comp.ID,
				vehicleLabel(&comp),
				fmtFloat(comp.ListPrice),
				fmtFloat(mileageAdj),
				fmtFloat(equipAdj),
				fmtFloat(conditionAdj),
				fmtFloat(totalAdj),
				fmtFloat(comp.AdjustedPrice),
				fmtFloat(comp.QualityScore),
				fmtFloat(analysis.CalculatedMarketValue),
				fmtFloat(analysis.ConfidenceLevel),
				analysis.CalculatedAt.Format(contract.DateTimeFormat),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
