// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/valuewise/marketval/core"
	"github.com/valuewise/marketval/internal/contract"
	"github.com/valuewise/marketval/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteAnalysis prints a market analysis using the configured output format.
func (ow *OutWriter) WriteAnalysis(analysis *schema.MarketAnalysis, cfg *contract.Config, duration time.Duration) error {
	return PrintAnalysisResults(analysis, cfg, duration)
}

// WriteValidation prints comparable validation results using the configured output format.
func (ow *OutWriter) WriteValidation(results []schema.ValidationResult, summary schema.ValidationSummary, cfg *contract.Config) error {
	return PrintValidationResults(results, summary, cfg)
}

// WriteScore prints a quality score breakdown using the configured output format.
func (ow *OutWriter) WriteScore(comp *schema.ComparableVehicle, breakdown schema.QualityScoreBreakdown, cfg *contract.Config) error {
	return PrintScoreBreakdown(comp, breakdown, cfg)
}

// WriteHistory prints stored analysis records using the configured output format.
func (ow *OutWriter) WriteHistory(records []schema.AnalysisRecord, cfg *contract.Config) error {
	return PrintHistoryRecords(records, cfg)
}

// WriteEquipment prints the equipment valuation table using the configured output format.
func (ow *OutWriter) WriteEquipment(entries []core.CatalogEntry, overrides map[string]float64, cfg *contract.Config) error {
	return PrintEquipmentEntries(entries, overrides, cfg)
}
