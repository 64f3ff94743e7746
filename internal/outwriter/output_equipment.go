package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/valuewise/marketval/core"
	"github.com/valuewise/marketval/internal/contract"
	"github.com/valuewise/marketval/schema"

	"github.com/olekukonko/tablewriter"
)

// equipmentRow is the render model for one catalog line.
type equipmentRow struct {
	Feature  string  `json:"feature"`
	Category string  `json:"category"`
	Value    float64 `json:"value"`
	Custom   bool    `json:"custom"` // true when a session override applies
}

// PrintEquipmentEntries outputs the equipment valuation table with any
// overrides applied, dispatching based on the output format configured.
func PrintEquipmentEntries(entries []core.CatalogEntry, overrides map[string]float64, cfg *contract.Config) error {
	rows := buildEquipmentRows(entries, overrides)
	fmtFloat, fmtMoney := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rows)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVEquipment(w, rows, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return errParquetOutput
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeEquipmentTable(w, rows, fmtMoney)
		}, "Wrote table")
	}
}

// buildEquipmentRows merges the standard catalog with overrides and sorts by
// category then feature name for stable display.
func buildEquipmentRows(entries []core.CatalogEntry, overrides map[string]float64) []equipmentRow {
	catalog := core.NewEquipmentCatalog()
	catalog.Import(overrides)

	rows := make([]equipmentRow, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		value := catalog.GetValue(entry.Name)
		rows = append(rows, equipmentRow{
			Feature:  entry.Name,
			Category: string(entry.Category),
			Value:    value,
			Custom:   value != entry.Value,
		})
		seen[strings.ToLower(entry.Name)] = struct{}{}
	}

	// Overrides for features outside the standard catalog still show up.
	for name := range overrides {
		if _, ok := seen[strings.ToLower(strings.TrimSpace(name))]; ok {
			continue
		}
		rows = append(rows, equipmentRow{
			Feature:  name,
			Category: "custom",
			Value:    catalog.GetValue(name),
			Custom:   true,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Category != rows[j].Category {
			return rows[i].Category < rows[j].Category
		}
		return rows[i].Feature < rows[j].Feature
	})
	return rows
}

// writeEquipmentTable writes the human-readable valuation table.
func writeEquipmentTable(w io.Writer, rows []equipmentRow, fmtMoney func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Category", "Feature", "Value", "Source"})

	var data [][]string
	for _, row := range rows {
		source := "standard"
		if row.Custom {
			source = "custom"
		}
		data = append(data, []string{row.Category, row.Feature, fmtMoney(row.Value), source})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d equipment features\n", len(rows))
	return err
}

// writeCSVEquipment writes one row per feature.
func writeCSVEquipment(w io.Writer, rows []equipmentRow, fmtFloat func(float64) string) error {
	header := []string{"category", "feature", "value", "custom"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, row := range rows {
			rec := []string{
				row.Category,
				row.Feature,
				fmtFloat(row.Value),
				fmt.Sprintf("%t", row.Custom),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
