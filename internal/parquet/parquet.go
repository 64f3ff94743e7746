// Package parquet provides data structures and functions for exporting stored
// appraisal analyses to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/valuewise/marketval/schema"
)

// Analysis represents one completed market value calculation.
// This struct maps to the marketval_analyses database table.
type Analysis struct {
	// AnalysisID is the unique identifier for this analysis
	AnalysisID int64 `parquet:"analysis_id,snappy"`

	// AppraisalID ties the analysis back to the appraisal case
	AppraisalID string `parquet:"appraisal_id,snappy"`

	// CalculatedAt is when the analysis completed (stored as TIMESTAMP with nanosecond precision)
	CalculatedAt time.Time `parquet:"calculated_at,snappy"`

	// MarketValue is the calculated quality-weighted market value in dollars
	MarketValue float64 `parquet:"market_value,snappy"`

	// InsuranceValue is the insurer's valuation in dollars (0 when unknown)
	InsuranceValue float64 `parquet:"insurance_value,snappy"`

	// ValueDifference is MarketValue minus InsuranceValue
	ValueDifference float64 `parquet:"value_difference,snappy"`

	// ConfidenceLevel is the confidence in the result (0-100)
	ConfidenceLevel float64 `parquet:"confidence_level,snappy"`

	// ComparableCount is the number of comparables behind the analysis
	ComparableCount int32 `parquet:"comparable_count,snappy"`

	// IsUndervalued flags a material shortfall in the insurance valuation
	IsUndervalued bool `parquet:"is_undervalued,snappy"`
}

// Contribution represents one comparable's share of a weighted average.
// This struct maps to the marketval_contributions database table.
type Contribution struct {
	// AnalysisID references the parent analysis
	AnalysisID int64 `parquet:"analysis_id,snappy"`

	// ComparableID identifies the comparable listing
	ComparableID string `parquet:"comparable_id,snappy"`

	// ListPrice is the advertised price in dollars
	ListPrice float64 `parquet:"list_price,snappy"`

	// AdjustedPrice is the list price normalized to the loss vehicle
	AdjustedPrice float64 `parquet:"adjusted_price,snappy"`

	// QualityScore is the comparable's quality score, used as its weight
	QualityScore float64 `parquet:"quality_score,snappy"`

	// WeightedValue is AdjustedPrice times QualityScore
	WeightedValue float64 `parquet:"weighted_value,snappy"`
}

// WriteAnalysesParquet writes a slice of Analysis structs to a Parquet file.
func WriteAnalysesParquet(data []Analysis, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the Analysis struct tags
	writer := parquet.NewGenericWriter[Analysis](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteContributionsParquet writes a slice of Contribution structs to a Parquet file.
func WriteContributionsParquet(data []Contribution, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the Contribution struct tags
	writer := parquet.NewGenericWriter[Contribution](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertAnalysisRecords converts schema.AnalysisRecord to Analysis for Parquet export.
func ConvertAnalysisRecords(records []schema.AnalysisRecord) []Analysis {
	result := make([]Analysis, len(records))
	for i, record := range records {
		result[i] = Analysis{
			AnalysisID:      record.AnalysisID,
			AppraisalID:     record.AppraisalID,
			CalculatedAt:    record.CalculatedAt,
			MarketValue:     record.CalculatedMarketValue,
			InsuranceValue:  record.InsuranceValue,
			ValueDifference: record.ValueDifference,
			ConfidenceLevel: record.ConfidenceLevel,
			ComparableCount: int32(record.ComparableCount),
			IsUndervalued:   record.IsUndervalued,
		}
	}
	return result
}

// ConvertContributionRecords converts schema.ContributionRecord to Contribution for Parquet export.
func ConvertContributionRecords(records []schema.ContributionRecord) []Contribution {
	result := make([]Contribution, len(records))
	for i, record := range records {
		result[i] = Contribution{
			AnalysisID:    record.AnalysisID,
			ComparableID:  record.ComparableID,
			ListPrice:     record.ListPrice,
			AdjustedPrice: record.AdjustedPrice,
			QualityScore:  record.QualityScore,
			WeightedValue: record.WeightedValue,
		}
	}
	return result
}
