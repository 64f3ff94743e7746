package core

import (
	"fmt"
	"math"

	"github.com/valuewise/marketval/schema"
)

// baseScore is the starting point for every comparable before penalties and
// bonuses are applied.
const baseScore = 100.0

// ScoreComparable scores a comparable against the loss vehicle using the
// default parameters. See Engine.ScoreComparable.
func ScoreComparable(comp *schema.ComparableVehicle, loss *schema.LossVehicle) schema.QualityScoreBreakdown {
	return defaultEngine.ScoreComparable(comp, loss)
}

// ScoreComparable computes a quality score breakdown for a comparable
// relative to the loss vehicle. The score starts at 100, takes penalties and
// bonuses for distance, age, mileage and equipment similarity, and is clamped
// to a minimum of 0. There is no upper clamp: scores above 100 mark
// comparables that are better evidence than the baseline.
//
// The calculator is total: any structurally valid pair produces a breakdown.
// Upstream validation is expected to have rejected malformed comparables.
func (e *Engine) ScoreComparable(comp *schema.ComparableVehicle, loss *schema.LossVehicle) schema.QualityScoreBreakdown {
	b := schema.QualityScoreBreakdown{
		BaseScore:    baseScore,
		Explanations: make(map[schema.ExplainKey]string, 4),
	}

	e.scoreDistance(&b, comp.DistanceFromLoss)
	e.scoreAge(&b, comp.Year, loss.Year)
	e.scoreMileage(&b, comp.Mileage, loss.Mileage)
	e.scoreEquipment(&b, comp.Equipment, loss.Equipment)

	final := b.BaseScore -
		b.DistancePenalty -
		b.AgePenalty + b.AgeBonus -
		b.MileagePenalty + b.MileageBonus -
		b.EquipmentPenalty + b.EquipmentBonus
	b.FinalScore = math.Max(0, final)

	return b
}

// scoreDistance applies a linear penalty for every mile beyond the free
// radius. The penalty itself is unbounded; the final clamp to 0 is the only
// cap, which keeps the score monotonically non-increasing in distance.
func (e *Engine) scoreDistance(b *schema.QualityScoreBreakdown, distance float64) {
	if distance <= e.params.DistanceFreeMiles {
		b.Explanations[schema.ExplainDistance] = fmt.Sprintf(
			"within %.0f miles (%.0f mi away), no distance penalty",
			e.params.DistanceFreeMiles, distance)
		return
	}

	excess := distance - e.params.DistanceFreeMiles
	b.DistancePenalty = excess * e.params.DistancePenaltyPerMile
	b.Explanations[schema.ExplainDistance] = fmt.Sprintf(
		"%.0f miles away, %.0f miles beyond the %.0f mile radius: -%.1f points",
		distance, excess, e.params.DistanceFreeMiles, b.DistancePenalty)
}

// scoreAge rewards an exact model-year match and penalizes gaps beyond the
// free window.
func (e *Engine) scoreAge(b *schema.QualityScoreBreakdown, compYear, lossYear int) {
	gap := compYear - lossYear
	absGap := gap
	if absGap < 0 {
		absGap = -absGap
	}

	switch {
	case absGap == 0:
		b.AgeBonus = e.params.AgeBonusPoints
		b.Explanations[schema.ExplainAge] = fmt.Sprintf(
			"same model year (%d): +%.1f points", compYear, b.AgeBonus)
	case absGap <= e.params.AgeFreeYears:
		b.Explanations[schema.ExplainAge] = fmt.Sprintf(
			"%d year(s) apart (%d vs %d), within tolerance", absGap, compYear, lossYear)
	default:
		over := absGap - e.params.AgeFreeYears
		b.AgePenalty = float64(over) * e.params.AgePenaltyPerYear
		b.Explanations[schema.ExplainAge] = fmt.Sprintf(
			"%d year(s) apart (%d vs %d): -%.1f points", absGap, compYear, lossYear, b.AgePenalty)
	}
}

// scoreMileage compares odometer readings relative to the loss vehicle's
// mileage. Inside the band the comparable earns a bonus; outside, the penalty
// grows with the relative deviation and saturates at the configured cap.
func (e *Engine) scoreMileage(b *schema.QualityScoreBreakdown, compMiles, lossMiles int) {
	base := float64(lossMiles)
	if base < 1 {
		base = 1 // avoid dividing by a zero-mileage loss vehicle
	}
	deviation := math.Abs(float64(compMiles-lossMiles)) / base

	if deviation <= e.params.MileageBandPct {
		b.MileageBonus = e.params.MileageBonusPoints
		b.Explanations[schema.ExplainMileage] = fmt.Sprintf(
			"mileage within %.0f%% of loss vehicle (%.1f%% off): +%.1f points",
			e.params.MileageBandPct*100, deviation*100, b.MileageBonus)
		return
	}

	overPct := (deviation - e.params.MileageBandPct) * 100
	b.MileagePenalty = math.Min(e.params.MileagePenaltyCap, overPct*e.params.MileagePenaltyPerPct)
	b.Explanations[schema.ExplainMileage] = fmt.Sprintf(
		"mileage %.1f%% off loss vehicle, %.1f%% beyond the %.0f%% band: -%.1f points",
		deviation*100, overPct, e.params.MileageBandPct*100, b.MileagePenalty)
}

// scoreEquipment compares the two equipment sets asymmetrically: features the
// comparable lacks are penalized, full coverage of the loss vehicle's
// features is rewarded, and extra features on the comparable are neutral for
// scoring (they are priced by the adjustment calculator instead). The same
// set difference drives the per-feature equipment adjustments, keeping the
// two components consistent.
func (e *Engine) scoreEquipment(b *schema.QualityScoreBreakdown, compFeatures, lossFeatures []string) {
	compSet := schema.EquipmentSet(compFeatures)
	lossSet := schema.EquipmentSet(lossFeatures)

	missing := 0 // loss has, comparable lacks
	matched := 0
	for f := range lossSet {
		if _, ok := compSet[f]; ok {
			matched++
		} else {
			missing++
		}
	}
	extra := len(compSet) - matched

	switch {
	case missing == 0 && extra == 0 && matched > 0:
		b.EquipmentBonus = e.params.EquipmentMatchBonus
		b.Explanations[schema.ExplainEquipment] = fmt.Sprintf(
			"all %d equipment features match exactly: +%.1f points", matched, b.EquipmentBonus)
	case missing == 0 && matched > 0:
		b.EquipmentBonus = e.params.EquipmentCoverageBonus
		b.Explanations[schema.ExplainEquipment] = fmt.Sprintf(
			"all %d loss vehicle features present, %d extra: +%.1f points",
			matched, extra, b.EquipmentBonus)
	case missing > 0:
		b.EquipmentPenalty = float64(missing) * e.params.EquipmentMissingPenalty
		b.Explanations[schema.ExplainEquipment] = fmt.Sprintf(
			"missing %d of %d loss vehicle features: -%.1f points",
			missing, len(lossSet), b.EquipmentPenalty)
	default:
		// Both sets empty, or only extras against an empty loss set.
		b.Explanations[schema.ExplainEquipment] = "no loss vehicle equipment to compare"
	}
}
