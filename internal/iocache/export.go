package iocache

import (
	"errors"
	"fmt"

	"github.com/valuewise/marketval/internal/parquet"
)

// ExecuteHistoryExport performs the actual export of appraisal history to Parquet files.
func ExecuteHistoryExport(outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := Manager.GetHistoryStore()
	if store == nil {
		return errors.New("history tracking is disabled; set --history-backend to enable it")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}

	if status.TotalAnalyses == 0 {
		return errors.New("no appraisal history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total analyses: %d\n", status.TotalAnalyses)
	fmt.Printf("Total contribution records: %d\n", status.TotalComparables)

	analyses, err := store.GetAllAnalyses()
	if err != nil {
		return fmt.Errorf("failed to retrieve analyses: %w", err)
	}

	contributions, err := store.GetAllContributions()
	if err != nil {
		return fmt.Errorf("failed to retrieve contributions: %w", err)
	}

	// Convert to Parquet format
	parquetAnalyses := parquet.ConvertAnalysisRecords(analyses)
	parquetContributions := parquet.ConvertContributionRecords(contributions)

	analysesFile := outputFile + ".analyses.parquet"
	if err := parquet.WriteAnalysesParquet(parquetAnalyses, analysesFile); err != nil {
		return fmt.Errorf("failed to write analyses: %w", err)
	}
	fmt.Printf("Exported %d analyses to: %s\n", len(parquetAnalyses), analysesFile)

	contributionsFile := outputFile + ".contributions.parquet"
	if err := parquet.WriteContributionsParquet(parquetContributions, contributionsFile); err != nil {
		return fmt.Errorf("failed to write contributions: %w", err)
	}
	fmt.Printf("Exported %d contribution records to: %s\n", len(parquetContributions), contributionsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
