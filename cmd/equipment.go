package cmd

import (
	"github.com/spf13/cobra"
	"github.com/valuewise/marketval/core"
	"github.com/valuewise/marketval/internal/contract"
	"github.com/valuewise/marketval/internal/outwriter"
)

// equipmentCmd lists the equipment valuation table.
var equipmentCmd = &cobra.Command{
	Use:   "equipment",
	Short: "List the equipment valuation table.",
	Long: `Show every equipment feature the engine can value, with its dollar amount.

The table combines the built-in feature catalog with any custom values from
the config file. Custom values override built-in ones by feature name
(case-insensitive); features unknown to the catalog are listed as custom.

Custom values live under 'equipment-values' in the config file:

  equipment-values:
    Leather Seats: 900
    Lift Kit: 1500

Examples:
  # Show the full valuation table
  marketval equipment

  # Export the table for an adjuster
  marketval equipment --output csv --output-file equipment.csv`,
	PreRunE: configSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := outwriter.NewOutWriter().WriteEquipment(core.StandardEntries(), cfg.EquipmentValues, cfg); err != nil {
			contract.LogFatal("Cannot list equipment values", err)
		}
	},
}
