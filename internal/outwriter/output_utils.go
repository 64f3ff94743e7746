package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/valuewise/marketval/internal/contract"
	"github.com/valuewise/marketval/schema"
	"golang.org/x/term"
)

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// errParquetOutput is returned when parquet is requested for an interactive
// command. Parquet files come out of 'history export' only.
var errParquetOutput = errors.New("parquet output is only supported by 'history export': use text, csv or json here")

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	if err := writeRows(csvWriter); err != nil {
		return err
	}

	return nil
}

// createFormatters creates the common formatter closures used across multiple output types.
func createFormatters(precision int) (fmtFloat func(float64) string, fmtMoney func(float64) string) {
	fmtFloat = func(v float64) string {
		return fmt.Sprintf("%.*f", precision, v)
	}
	fmtMoney = func(v float64) string {
		if v < 0 {
			return fmt.Sprintf("-$%.*f", precision, -v)
		}
		return fmt.Sprintf("$%.*f", precision, v)
	}
	return fmtFloat, fmtMoney
}

// vehicleLabel renders a comparable as "2020 Honda Accord EX-L".
func vehicleLabel(comp *schema.ComparableVehicle) string {
	parts := []string{fmt.Sprintf("%d", comp.Year), comp.Make, comp.Model}
	if comp.Trim != "" {
		parts = append(parts, comp.Trim)
	}
	return strings.Join(parts, " ")
}

// getMaxTableVehicleWidth calculates the maximum width for the vehicle column
// in table output based on terminal width.
func getMaxTableVehicleWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the fixed columns (rank, prices, adjustment, score,
	// weight) plus table borders, separators and padding.
	baseWidth := 62

	available := termWidth - baseWidth
	if available < 12 {
		// Minimum reasonable vehicle width
		return 12
	}
	if available > 45 {
		// Maximum vehicle width to prevent overly wide tables
		return 45
	}
	return available
}
