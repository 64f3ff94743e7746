package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/valuewise/marketval/core"
	"github.com/valuewise/marketval/internal/contract"
	"github.com/valuewise/marketval/internal/outwriter"
)

// scoreCmd shows the quality score breakdown for a single comparable.
var scoreCmd = &cobra.Command{
	Use:   "score [case-file]",
	Short: "Show the quality score breakdown for one comparable.",
	Long: `Compute the quality score of a single comparable against the loss vehicle.

Scoring starts at 100 and applies:
- A distance penalty beyond the free radius
- Age penalties, or a bonus for an exact year match
- Mileage penalties outside a tolerance band, or a bonus inside it
- Equipment penalties for missing features, or bonuses for a match

Each factor comes with a plain-language explanation of how it was derived.

Examples:
  # Score the first comparable in a case
  marketval score case.json

  # Score the third comparable
  marketval score case.json --comparable-index 2`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: configSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := executeScore(); err != nil {
			contract.LogFatal("Cannot run comparable scoring", err)
		}
	},
}

func executeScore() error {
	c, err := requireCaseFile()
	if err != nil {
		return err
	}

	idx := viper.GetInt("comparable-index")
	if idx < 0 || idx >= len(c.Comparables) {
		return fmt.Errorf("comparable index %d is out of range for %d comparables", idx, len(c.Comparables))
	}

	engine := core.EngineFromConfig(cfg)
	comp := &c.Comparables[idx]
	breakdown := engine.ScoreComparable(comp, &c.LossVehicle)

	return outwriter.NewOutWriter().WriteScore(comp, breakdown, cfg)
}
