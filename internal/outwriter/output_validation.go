package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/valuewise/marketval/internal/contract"
	"github.com/valuewise/marketval/schema"

	"github.com/olekukonko/tablewriter"
)

// PrintValidationResults outputs per-comparable validation results and the set
// summary, dispatching based on the output format configured.
func PrintValidationResults(results []schema.ValidationResult, summary schema.ValidationSummary, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONValidation(w, results, summary)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVValidation(w, results)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return errParquetOutput
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeValidationTable(w, results, summary, cfg)
		}, "Wrote table")
	}
}

// writeValidationTable writes the human-readable issue table plus summary.
func writeValidationTable(w io.Writer, results []schema.ValidationResult, summary schema.ValidationSummary, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Comparable", "Severity", "Field", "Message"})

	var data [][]string
	for i, res := range results {
		label := "#" + strconv.Itoa(i+1)
		for _, issue := range res.Errors {
			data = append(data, []string{label, severityLabel(issue.Severity, cfg.UseColors), issue.Field, issue.Message})
		}
		for _, issue := range res.Warnings {
			data = append(data, []string{label, severityLabel(issue.Severity, cfg.UseColors), issue.Field, issue.Message})
		}
	}

	if len(data) > 0 {
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintf(w, "No validation issues found\n"); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "Checked %d comparables: %d valid, %d invalid, %d with warnings\n",
		summary.TotalCount, summary.ValidCount, summary.InvalidCount, summary.WarningCount); err != nil {
		return err
	}
	for _, line := range summary.CriticalIssues {
		if _, err := fmt.Fprintf(w, "  %s\n", line); err != nil {
			return err
		}
	}
	return nil
}

// severityLabel renders a severity tag, colored when enabled.
func severityLabel(severity schema.IssueSeverity, useColors bool) string {
	text := string(severity)
	if !useColors {
		return text
	}
	if severity == schema.SeverityError {
		return contract.LowColor.Sprint(text)
	}
	return contract.ModerateColor.Sprint(text)
}

// writeCSVValidation writes one row per issue.
func writeCSVValidation(w io.Writer, results []schema.ValidationResult) error {
	header := []string{"comparable", "severity", "field", "message", "suggested_action"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, res := range results {
			issues := append(append([]schema.ValidationIssue{}, res.Errors...), res.Warnings...)
			for _, issue := range issues {
				rec := []string{
					strconv.Itoa(i + 1),
					string(issue.Severity),
					issue.Field,
					issue.Message,
					issue.SuggestedAction,
				}
				if err := cw.Write(rec); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// writeJSONValidation wraps results and summary into a single document.
func writeJSONValidation(w io.Writer, results []schema.ValidationResult, summary schema.ValidationSummary) error {
	type validationDocument struct {
		Results []schema.ValidationResult `json:"results"`
		Summary schema.ValidationSummary  `json:"summary"`
	}
	return writeJSON(w, validationDocument{Results: results, Summary: summary})
}
