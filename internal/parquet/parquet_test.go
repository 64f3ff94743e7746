package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valuewise/marketval/schema"
)

func TestAnalysisStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	pqSchema := parquet.SchemaOf(new(Analysis))
	require.NotNil(t, pqSchema)

	expectedColumns := []string{
		"analysis_id",
		"appraisal_id",
		"calculated_at",
		"market_value",
		"insurance_value",
		"value_difference",
		"confidence_level",
		"comparable_count",
		"is_undervalued",
	}

	for _, colName := range expectedColumns {
		col, ok := pqSchema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestContributionStructTags(t *testing.T) {
	pqSchema := parquet.SchemaOf(new(Contribution))
	require.NotNil(t, pqSchema)

	expectedColumns := []string{
		"analysis_id",
		"comparable_id",
		"list_price",
		"adjusted_price",
		"quality_score",
		"weighted_value",
	}

	for _, colName := range expectedColumns {
		col, ok := pqSchema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestWriteAnalysesParquet(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "analyses.parquet")

	data := []Analysis{
		{
			AnalysisID:      1,
			AppraisalID:     "APP-2024-001",
			CalculatedAt:    time.Now().Add(-time.Hour),
			MarketValue:     25200,
			InsuranceValue:  24000,
			ValueDifference: 1200,
			ConfidenceLevel: 70,
			ComparableCount: 3,
			IsUndervalued:   true,
		},
		{
			AnalysisID:      2,
			AppraisalID:     "APP-2024-002",
			CalculatedAt:    time.Now(),
			MarketValue:     18500,
			ConfidenceLevel: 40,
			ComparableCount: 1,
		},
	}

	err := WriteAnalysesParquet(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	// Read back and verify data
	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[Analysis](file)
	defer func() { _ = reader.Close() }()

	readData := make([]Analysis, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	require.Equal(t, len(data), n, "Should read all records")

	assert.Equal(t, "APP-2024-001", readData[0].AppraisalID)
	assert.InDelta(t, 25200, readData[0].MarketValue, 0.001)
	assert.True(t, readData[0].IsUndervalued)
	assert.Equal(t, int32(1), readData[1].ComparableCount)
}

func TestWriteContributionsParquet(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "contributions.parquet")

	data := []Contribution{
		{AnalysisID: 1, ComparableID: "comp-1", ListPrice: 24000, AdjustedPrice: 24400, QualityScore: 80, WeightedValue: 1952000},
		{AnalysisID: 1, ComparableID: "comp-2", ListPrice: 26000, AdjustedPrice: 26000, QualityScore: 120, WeightedValue: 3120000},
	}

	err := WriteContributionsParquet(data, outputPath)
	require.NoError(t, err)

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[Contribution](file)
	defer func() { _ = reader.Close() }()

	readData := make([]Contribution, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	require.Equal(t, len(data), n)
	assert.Equal(t, "comp-1", readData[0].ComparableID)
	assert.InDelta(t, 3120000, readData[1].WeightedValue, 0.001)
}

func TestConvertAnalysisRecords(t *testing.T) {
	now := time.Now()
	records := []schema.AnalysisRecord{
		{
			AnalysisID:            9,
			AppraisalID:           "APP-X",
			CalculatedAt:          now,
			CalculatedMarketValue: 30000,
			InsuranceValue:        28000,
			ValueDifference:       2000,
			ConfidenceLevel:       85,
			ComparableCount:       4,
			IsUndervalued:         true,
		},
	}

	converted := ConvertAnalysisRecords(records)
	require.Len(t, converted, 1)
	assert.Equal(t, int64(9), converted[0].AnalysisID)
	assert.Equal(t, "APP-X", converted[0].AppraisalID)
	assert.Equal(t, int32(4), converted[0].ComparableCount)
	assert.InDelta(t, 30000, converted[0].MarketValue, 0.001)
}

func TestConvertContributionRecords(t *testing.T) {
	records := []schema.ContributionRecord{
		{AnalysisID: 9, ComparableID: "comp-1", ListPrice: 24000, AdjustedPrice: 24400, QualityScore: 80, WeightedValue: 1952000},
	}

	converted := ConvertContributionRecords(records)
	require.Len(t, converted, 1)
	assert.Equal(t, "comp-1", converted[0].ComparableID)
	assert.InDelta(t, 1952000, converted[0].WeightedValue, 0.001)
}
