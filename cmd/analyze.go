package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/valuewise/marketval/core"
	"github.com/valuewise/marketval/internal/contract"
	"github.com/valuewise/marketval/internal/outwriter"
	"github.com/valuewise/marketval/schema"
)

// analyzeCmd calculates the market value for an appraisal case.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [case-file]",
	Short: "Calculate the market value for an appraisal case.",
	Long: `Compute the quality-weighted market value of a loss vehicle from its
comparable listings.

Each comparable is validated, scored for quality against the loss vehicle,
and adjusted for mileage, equipment and condition differences. Comparables
that fail validation are excluded with a warning. The result includes:
- The final market value and calculation method
- A confidence level (0-100) for the comparable set
- Per-comparable contributions and a step-by-step breakdown
- A comparison against the insurance valuation, when one is provided

When a history backend is configured, each completed analysis is recorded
for later review and export.

Examples:
  # Analyze a case and print the results table
  marketval analyze case.json

  # Export the full analysis as JSON
  marketval analyze case.json --output json --output-file analysis.json

  # Track analyses over time
  marketval analyze case.json --history-backend sqlite`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := executeAnalyze(); err != nil {
			contract.LogFatal("Cannot run market value analysis", err)
		}
	},
}

func executeAnalyze() error {
	c, err := requireCaseFile()
	if err != nil {
		return err
	}

	engine := core.EngineFromConfig(cfg)

	// Drop comparables with blocking validation errors before aggregating.
	results := engine.ValidateMultiple(c.Comparables, &c.LossVehicle)
	summary := engine.ValidationSummary(results)
	for _, issue := range summary.CriticalIssues {
		contract.LogWarning("Excluding comparable: " + issue)
	}
	valid := make([]schema.ComparableVehicle, 0, len(c.Comparables))
	for i, r := range results {
		if r.IsValid {
			valid = append(valid, c.Comparables[i])
		}
	}

	start := time.Now()
	analysis, err := engine.CachedCalculateMarketValue(cacheManager, c.AppraisalID, &c.LossVehicle, valid, c.InsuranceValue)
	if err != nil {
		return err
	}
	duration := time.Since(start)

	recordHistory(analysis)

	return outwriter.NewOutWriter().WriteAnalysis(analysis, cfg, duration)
}

// recordHistory persists a completed analysis when history tracking is on.
// Failures are reported as warnings; they never fail the analysis itself.
func recordHistory(analysis *schema.MarketAnalysis) {
	if cacheManager == nil {
		return
	}
	store := cacheManager.GetHistoryStore()
	if store == nil {
		return
	}

	id, err := store.RecordAnalysis(analysis)
	if err != nil {
		contract.LogWarning("Could not record analysis history: " + err.Error())
		return
	}
	for _, contribution := range analysis.CalculationBreakdown.Contributions {
		if err := store.RecordContribution(id, contribution); err != nil {
			contract.LogWarning("Could not record comparable contribution: " + err.Error())
			return
		}
	}
}
