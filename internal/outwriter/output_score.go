package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/valuewise/marketval/internal/contract"
	"github.com/valuewise/marketval/schema"
)

// PrintScoreBreakdown outputs a single comparable's quality score breakdown,
// dispatching based on the output format configured.
func PrintScoreBreakdown(comp *schema.ComparableVehicle, breakdown schema.QualityScoreBreakdown, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, breakdown)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVScore(w, breakdown, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return errParquetOutput
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScoreText(w, comp, breakdown, fmtFloat)
		}, "Wrote text")
	}
}

// scoreFactors is the fixed display order for score explanation lines.
var scoreFactors = []schema.ExplainKey{
	schema.ExplainDistance,
	schema.ExplainAge,
	schema.ExplainMileage,
	schema.ExplainEquipment,
}

// writeScoreText writes the human-readable breakdown.
func writeScoreText(w io.Writer, comp *schema.ComparableVehicle, breakdown schema.QualityScoreBreakdown, fmtFloat func(float64) string) error {
	if _, err := fmt.Fprintf(w, "Quality score for %s\n", vehicleLabel(comp)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  Base score:  %s\n", fmtFloat(breakdown.BaseScore)); err != nil {
		return err
	}

	lines := []struct {
		label string
		value float64
		sign  string
	}{
		{"Distance penalty", breakdown.DistancePenalty, "-"},
		{"Age penalty", breakdown.AgePenalty, "-"},
		{"Age bonus", breakdown.AgeBonus, "+"},
		{"Mileage penalty", breakdown.MileagePenalty, "-"},
		{"Mileage bonus", breakdown.MileageBonus, "+"},
		{"Equipment penalty", breakdown.EquipmentPenalty, "-"},
		{"Equipment bonus", breakdown.EquipmentBonus, "+"},
	}
	for _, line := range lines {
		if line.value == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "  %s: %s%s\n", line.label, line.sign, fmtFloat(line.value)); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "  Final score: %s\n\n", fmtFloat(breakdown.FinalScore)); err != nil {
		return err
	}

	for _, key := range scoreFactors {
		if explanation, ok := breakdown.Explanations[key]; ok {
			if _, err := fmt.Fprintf(w, "  %s: %s\n", key, explanation); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeCSVScore writes the breakdown as one factor per row.
func writeCSVScore(w io.Writer, breakdown schema.QualityScoreBreakdown, fmtFloat func(float64) string) error {
	header := []string{"factor", "value", "explanation"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		rows := []struct {
			factor string
			value  float64
			key    schema.ExplainKey
		}{
			{"base_score", breakdown.BaseScore, ""},
			{"distance_penalty", -breakdown.DistancePenalty, schema.ExplainDistance},
			{"age_penalty", -breakdown.AgePenalty, schema.ExplainAge},
			{"age_bonus", breakdown.AgeBonus, schema.ExplainAge},
			{"mileage_penalty", -breakdown.MileagePenalty, schema.ExplainMileage},
			{"mileage_bonus", breakdown.MileageBonus, schema.ExplainMileage},
			{"equipment_penalty", -breakdown.EquipmentPenalty, schema.ExplainEquipment},
			{"equipment_bonus", breakdown.EquipmentBonus, schema.ExplainEquipment},
			{"final_score", breakdown.FinalScore, ""},
		}
		for _, row := range rows {
			explanation := ""
			if row.key != "" {
				explanation = breakdown.Explanations[row.key]
			}
			if err := cw.Write([]string{row.factor, fmtFloat(row.value), explanation}); err != nil {
				return err
			}
		}
		return nil
	})
}
