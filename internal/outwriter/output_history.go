package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/valuewise/marketval/internal/contract"
	"github.com/valuewise/marketval/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintHistoryRecords outputs stored analysis records, dispatching based on
// the output format configured.
func PrintHistoryRecords(records []schema.AnalysisRecord, cfg *contract.Config) error {
	fmtFloat, fmtMoney := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, records)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVHistory(w, records, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return errParquetOutput
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHistoryTable(w, records, cfg, fmtFloat, fmtMoney)
		}, "Wrote table")
	}
}

// writeHistoryTable writes the human-readable history table.
func writeHistoryTable(w io.Writer, records []schema.AnalysisRecord, cfg *contract.Config, fmtFloat, fmtMoney func(float64) string) error {
	if len(records) == 0 {
		_, err := fmt.Fprintf(w, "No stored analyses found\n")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"ID", "Appraisal", "Calculated", "Market Value", "Insurance", "Confidence", "Comps"})

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, rec := range records {
		confidence := contract.GetPlainConfidenceLabel(rec.ConfidenceLevel)
		if cfg.UseColors {
			confidence = contract.GetColorConfidenceLabel(rec.ConfidenceLevel)
		}
		data = append(data, []string{
			strconv.FormatInt(rec.AnalysisID, 10),
			rec.AppraisalID,
			rec.CalculatedAt.Format("2006-01-02 15:04"),
			fmtMoney(rec.CalculatedMarketValue),
			fmtMoney(rec.InsuranceValue),
			confidence,
			strconv.Itoa(rec.ComparableCount),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d analyses\n", len(records))
	return err
}

// writeCSVHistory writes one row per stored analysis.
func writeCSVHistory(w io.Writer, records []schema.AnalysisRecord, fmtFloat func(float64) string) error {
	header := []string{
		"analysis_id",
		"appraisal_id",
		"calculated_at",
		"market_value",
		"insurance_value",
		"value_difference",
		"confidence",
		"comparable_count",
		"is_undervalued",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, rec := range records {
			row := []string{
				strconv.FormatInt(rec.AnalysisID, 10),
				rec.AppraisalID,
				rec.CalculatedAt.Format(contract.DateTimeFormat),
				fmtFloat(rec.CalculatedMarketValue),
				fmtFloat(rec.InsuranceValue),
				fmtFloat(rec.ValueDifference),
				fmtFloat(rec.ConfidenceLevel),
				strconv.Itoa(rec.ComparableCount),
				strconv.FormatBool(rec.IsUndervalued),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
