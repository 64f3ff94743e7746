package outwriter

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valuewise/marketval/core"
	"github.com/valuewise/marketval/internal/contract"
	"github.com/valuewise/marketval/schema"
)

// sampleAnalysis builds a small analysis with known figures.
func sampleAnalysis() *schema.MarketAnalysis {
	pct := 5.0
	return &schema.MarketAnalysis{
		AppraisalID: "APP-2024-001",
		LossVehicle: schema.LossVehicle{Year: 2020, Make: "Honda", Model: "Accord", Mileage: 50000},
		Comparables: []schema.ComparableVehicle{
			{
				ID: "comp-1", Year: 2020, Make: "Honda", Model: "Accord", Trim: "EX-L",
				ListPrice: 24000, AdjustedPrice: 24400, QualityScore: 80,
				Adjustments: &schema.PriceAdjustments{TotalAdjustment: 400, AdjustedPrice: 24400},
			},
			{
				ID: "comp-2", Year: 2021, Make: "Honda", Model: "Accord",
				ListPrice: 26000, AdjustedPrice: 26000, QualityScore: 120,
				Adjustments: &schema.PriceAdjustments{TotalAdjustment: 0, AdjustedPrice: 26000},
			},
		},
		CalculatedMarketValue:     25360,
		CalculationMethod:         schema.CalculationMethodWeightedAverage,
		ConfidenceLevel:           70,
		InsuranceValue:            24000,
		ValueDifference:           1360,
		ValueDifferencePercentage: &pct,
		IsUndervalued:             true,
		CalculationBreakdown: schema.CalculationBreakdown{
			TotalWeights: 200,
			Steps: []schema.CalculationStep{
				{Index: 1, Description: "Weight comparable comp-1", Calculation: "24400.00 × 80.00", Result: 1952000},
			},
		},
		CalculatedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func testConfig() *contract.Config {
	return &contract.Config{
		Output:       schema.TextOut,
		Precision:    2,
		UseColors:    false,
		Width:        120,
		CacheBackend: schema.NoneBackend,
	}
}

func TestWriteAnalysisTable(t *testing.T) {
	var buf bytes.Buffer
	cfg := testConfig()
	fmtFloat, fmtMoney := createFormatters(cfg.Precision)

	err := writeAnalysisTable(&buf, sampleAnalysis(), cfg, fmtFloat, fmtMoney, 5*time.Millisecond)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "2020 Honda Accord EX-L")
	assert.Contains(t, out, "$25360.00")
	assert.Contains(t, out, "quality-weighted-average of 2 comparables")
	assert.Contains(t, out, "Confidence: 70.00/100 (Moderate)")
	assert.Contains(t, out, "undervalue")
	assert.Contains(t, out, "Weight comparable comp-1")
}

func TestWriteAnalysisCSV(t *testing.T) {
	var buf bytes.Buffer
	fmtFloat, _ := createFormatters(2)

	err := writeCSVAnalysis(&buf, sampleAnalysis(), fmtFloat)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3, "header plus one row per comparable")
	assert.Contains(t, lines[0], "comparable_id")
	assert.Contains(t, lines[1], "comp-1")
	assert.Contains(t, lines[1], "25360.00")
	assert.Contains(t, lines[2], "comp-2")
}

func TestWriteAnalysisJSONToFile(t *testing.T) {
	cfg := testConfig()
	cfg.Output = schema.JSONOut
	cfg.OutputFile = filepath.Join(t.TempDir(), "analysis.json")

	err := PrintAnalysisResults(sampleAnalysis(), cfg, time.Millisecond)
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)

	var decoded schema.MarketAnalysis
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "APP-2024-001", decoded.AppraisalID)
	assert.InDelta(t, 25360, decoded.CalculatedMarketValue, 0.001)
	require.NotNil(t, decoded.ValueDifferencePercentage)
	assert.InDelta(t, 5.0, *decoded.ValueDifferencePercentage, 0.001)
}

func TestParquetRejectedForInteractiveOutput(t *testing.T) {
	cfg := testConfig()
	cfg.Output = schema.ParquetOut

	err := PrintAnalysisResults(sampleAnalysis(), cfg, time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "history export")

	assert.Error(t, PrintValidationResults(nil, schema.ValidationSummary{}, cfg))
	assert.Error(t, PrintScoreBreakdown(&schema.ComparableVehicle{}, schema.QualityScoreBreakdown{}, cfg))
	assert.Error(t, PrintHistoryRecords(nil, cfg))
	assert.Error(t, PrintEquipmentEntries(nil, nil, cfg))
}

func TestWriteValidationTable(t *testing.T) {
	var buf bytes.Buffer
	cfg := testConfig()

	results := []schema.ValidationResult{
		{IsValid: true},
		{
			IsValid: false,
			Errors: []schema.ValidationIssue{
				{Field: "mileage", Severity: schema.SeverityError, Message: "mileage cannot be negative"},
			},
			Warnings: []schema.ValidationIssue{
				{Field: "listPrice", Severity: schema.SeverityWarning, Message: "price is unusually low"},
			},
		},
	}
	summary := schema.ValidationSummary{
		TotalCount:   2,
		ValidCount:   1,
		InvalidCount: 1,
		WarningCount: 1,
		CriticalIssues: []string{
			"Comparable #2 has invalid fields: mileage",
		},
	}

	err := writeValidationTable(&buf, results, summary, cfg)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "mileage cannot be negative")
	assert.Contains(t, out, "Checked 2 comparables: 1 valid, 1 invalid, 1 with warnings")
	assert.Contains(t, out, "Comparable #2 has invalid fields: mileage")
}

func TestWriteValidationTableClean(t *testing.T) {
	var buf bytes.Buffer
	cfg := testConfig()

	results := []schema.ValidationResult{{IsValid: true}}
	summary := schema.ValidationSummary{TotalCount: 1, ValidCount: 1}

	err := writeValidationTable(&buf, results, summary, cfg)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No validation issues found")
}

func TestWriteScoreText(t *testing.T) {
	var buf bytes.Buffer
	fmtFloat, _ := createFormatters(1)

	comp := &schema.ComparableVehicle{Year: 2019, Make: "Toyota", Model: "Camry"}
	breakdown := schema.QualityScoreBreakdown{
		BaseScore:       100,
		DistancePenalty: 5,
		AgeBonus:        5,
		FinalScore:      100,
		Explanations: map[schema.ExplainKey]string{
			schema.ExplainDistance: "150.0 miles away, 50.0 miles beyond the free radius",
		},
	}

	err := writeScoreText(&buf, comp, breakdown, fmtFloat)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "2019 Toyota Camry")
	assert.Contains(t, out, "Distance penalty: -5.0")
	assert.Contains(t, out, "Age bonus: +5.0")
	assert.Contains(t, out, "Final score: 100.0")
	assert.Contains(t, out, "free radius")
	// Zero-valued factors stay out of the listing
	assert.NotContains(t, out, "Mileage penalty")
}

func TestWriteHistoryTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	cfg := testConfig()
	fmtFloat, fmtMoney := createFormatters(cfg.Precision)

	err := writeHistoryTable(&buf, nil, cfg, fmtFloat, fmtMoney)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No stored analyses found")
}

func TestWriteHistoryCSV(t *testing.T) {
	var buf bytes.Buffer
	fmtFloat, _ := createFormatters(2)

	records := []schema.AnalysisRecord{
		{
			AnalysisID:            7,
			AppraisalID:           "APP-2024-001",
			CalculatedAt:          time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
			CalculatedMarketValue: 25360,
			InsuranceValue:        24000,
			ValueDifference:       1360,
			ConfidenceLevel:       70,
			ComparableCount:       2,
			IsUndervalued:         true,
		},
	}

	err := writeCSVHistory(&buf, records, fmtFloat)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "APP-2024-001")
	assert.Contains(t, out, "25360.00")
	assert.Contains(t, out, "true")
}

func TestBuildEquipmentRows(t *testing.T) {
	entries := []core.CatalogEntry{
		{Name: "Navigation", Value: 800, Category: "technology"},
		{Name: "Sunroof", Value: 900, Category: "comfort"},
	}
	overrides := map[string]float64{
		"navigation":   1000,
		"winter tires": 600,
	}

	rows := buildEquipmentRows(entries, overrides)
	require.Len(t, rows, 3)

	byFeature := make(map[string]equipmentRow)
	for _, row := range rows {
		byFeature[row.Feature] = row
	}

	assert.InDelta(t, 1000, byFeature["Navigation"].Value, 0.001)
	assert.True(t, byFeature["Navigation"].Custom)
	assert.InDelta(t, 900, byFeature["Sunroof"].Value, 0.001)
	assert.False(t, byFeature["Sunroof"].Custom)
	assert.InDelta(t, 600, byFeature["winter tires"].Value, 0.001)
	assert.Equal(t, "custom", byFeature["winter tires"].Category)

	// Sorted by category then feature
	assert.Equal(t, "Sunroof", rows[0].Feature)
}

func TestVehicleLabel(t *testing.T) {
	comp := &schema.ComparableVehicle{Year: 2020, Make: "Honda", Model: "Accord"}
	assert.Equal(t, "2020 Honda Accord", vehicleLabel(comp))

	comp.Trim = "EX-L"
	assert.Equal(t, "2020 Honda Accord EX-L", vehicleLabel(comp))
}

func TestCreateFormatters(t *testing.T) {
	fmtFloat, fmtMoney := createFormatters(2)
	assert.Equal(t, "12.35", fmtFloat(12.345))
	assert.Equal(t, "$12.35", fmtMoney(12.345))
	assert.Equal(t, "-$400.00", fmtMoney(-400))
}

func TestGetMaxTableVehicleWidth(t *testing.T) {
	cfg := testConfig()

	cfg.Width = 200
	assert.Equal(t, 45, getMaxTableVehicleWidth(cfg), "Wide terminals cap at the max")

	cfg.Width = 60
	assert.Equal(t, 12, getMaxTableVehicleWidth(cfg), "Narrow terminals floor at the min")

	cfg.Width = 100
	assert.Equal(t, 38, getMaxTableVehicleWidth(cfg))
}
