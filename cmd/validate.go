package cmd

import (
	"github.com/spf13/cobra"
	"github.com/valuewise/marketval/core"
	"github.com/valuewise/marketval/internal/contract"
	"github.com/valuewise/marketval/internal/outwriter"
)

// validateCmd checks a case's comparables without running a calculation.
var validateCmd = &cobra.Command{
	Use:   "validate [case-file]",
	Short: "Validate the comparables in an appraisal case.",
	Long: `Check every comparable in a case for blocking errors and advisory warnings.

Blocking errors make a comparable unusable for valuation:
- Missing make, model or source
- Year, mileage or list price outside acceptable bounds
- Malformed location (expected "City, ST")

Warnings flag data worth a second look but do not block valuation:
- Unknown manufacturer names
- Large distance, age or mileage gaps against the loss vehicle
- Statistical price outliers within the comparable set

Examples:
  # Validate a case before analyzing it
  marketval validate case.json

  # Export issues for review
  marketval validate case.json --output csv --output-file issues.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: configSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := executeValidate(); err != nil {
			contract.LogFatal("Cannot run comparable validation", err)
		}
	},
}

func executeValidate() error {
	c, err := requireCaseFile()
	if err != nil {
		return err
	}

	engine := core.EngineFromConfig(cfg)
	results := engine.ValidateMultiple(c.Comparables, &c.LossVehicle)
	summary := engine.ValidationSummary(results)

	return outwriter.NewOutWriter().WriteValidation(results, summary, cfg)
}
