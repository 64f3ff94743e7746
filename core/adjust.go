package core

import (
	"fmt"
	"math"
	"sort"

	"github.com/valuewise/marketval/schema"
)

// ComputeAdjustments computes price adjustments using the default parameters
// and the given catalog. See Engine.ComputeAdjustments.
func ComputeAdjustments(comp *schema.ComparableVehicle, loss *schema.LossVehicle, catalog *EquipmentCatalog) schema.PriceAdjustments {
	e := NewEngine(DefaultParams(), catalog)
	return e.ComputeAdjustments(comp, loss)
}

// ComputeAdjustments converts a comparable's list price into an adjusted
// price through three independent, additive categories: mileage, equipment
// and condition. One sign convention drives all three: an adjustment is
// positive when the comparable is inferior to the loss vehicle in that
// factor, so the adjusted price approximates what the comparable would list
// for if it exactly matched the loss vehicle.
//
// Identical inputs yield all-zero adjustments and AdjustedPrice == ListPrice.
func (e *Engine) ComputeAdjustments(comp *schema.ComparableVehicle, loss *schema.LossVehicle) schema.PriceAdjustments {
	adj := schema.PriceAdjustments{
		MileageAdjustment:    e.adjustMileage(comp, loss),
		EquipmentAdjustments: e.adjustEquipment(comp, loss),
		ConditionAdjustment:  e.adjustCondition(comp, loss),
	}

	total := adj.MileageAdjustment.AdjustmentAmount + adj.ConditionAdjustment.AdjustmentAmount
	for _, ea := range adj.EquipmentAdjustments {
		total += ea.Value
	}

	// Floor: an adjusted price is never negative. The clamp is applied to
	// the total so the ListPrice + TotalAdjustment identity still holds.
	if comp.ListPrice+total < 0 {
		total = -comp.ListPrice
	}

	adj.TotalAdjustment = total
	adj.AdjustedPrice = comp.ListPrice + total
	return adj
}

// adjustMileage prices the odometer gap. A comparable with more miles than
// the loss vehicle is the inferior car, so its price is adjusted up to what
// it would list for with the loss vehicle's mileage, and vice versa.
func (e *Engine) adjustMileage(comp *schema.ComparableVehicle, loss *schema.LossVehicle) schema.MileageAdjustment {
	diff := comp.Mileage - loss.Mileage
	amount := float64(diff) * e.params.DepreciationRate

	var explanation string
	switch {
	case diff == 0:
		explanation = "identical mileage, no adjustment"
	case diff > 0:
		explanation = fmt.Sprintf(
			"comparable has %d more miles: +$%.2f at $%.2f/mile", diff, amount, e.params.DepreciationRate)
	default:
		explanation = fmt.Sprintf(
			"comparable has %d fewer miles: -$%.2f at $%.2f/mile", -diff, -amount, e.params.DepreciationRate)
	}

	return schema.MileageAdjustment{
		MileageDifference: diff,
		DepreciationRate:  e.params.DepreciationRate,
		AdjustmentAmount:  amount,
		Explanation:       explanation,
	}
}

// adjustEquipment emits one entry per asymmetric feature. Missing features
// (loss has, comparable lacks) raise the comparable's price by the catalog
// value; extra features lower it. The set difference is the same one used by
// the quality score's equipment component.
func (e *Engine) adjustEquipment(comp *schema.ComparableVehicle, loss *schema.LossVehicle) []schema.EquipmentAdjustment {
	compSet := schema.EquipmentSet(comp.Equipment)
	lossSet := schema.EquipmentSet(loss.Equipment)

	var out []schema.EquipmentAdjustment
	for f := range lossSet {
		if _, ok := compSet[f]; !ok {
			value := e.catalog.GetValue(f)
			out = append(out, schema.EquipmentAdjustment{
				Feature:     f,
				Type:        schema.AdjustmentMissing,
				Value:       value,
				Explanation: fmt.Sprintf("comparable lacks %q: +$%.2f", f, value),
			})
		}
	}
	for f := range compSet {
		if _, ok := lossSet[f]; !ok {
			value := e.catalog.GetValue(f)
			out = append(out, schema.EquipmentAdjustment{
				Feature:     f,
				Type:        schema.AdjustmentExtra,
				Value:       -value,
				Explanation: fmt.Sprintf("comparable has extra %q: -$%.2f", f, value),
			})
		}
	}

	// Map iteration order is random; keep the list deterministic for the
	// breakdown trail.
	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type == schema.AdjustmentMissing
		}
		return out[i].Feature < out[j].Feature
	})
	return out
}

// adjustCondition prices the condition gap with a multiplier per rank step,
// clamped to the configured bounds. A comparable in better condition than the
// loss vehicle gets a multiplier below 1 and a negative adjustment.
func (e *Engine) adjustCondition(comp *schema.ComparableVehicle, loss *schema.LossVehicle) schema.ConditionAdjustment {
	steps := loss.Condition.Rank() - comp.Condition.Rank()
	multiplier := 1.0 + float64(steps)*e.params.ConditionStepPct
	multiplier = math.Min(e.params.ConditionMultiplierMax, math.Max(e.params.ConditionMultiplierMin, multiplier))
	amount := comp.ListPrice * (multiplier - 1.0)

	var explanation string
	switch {
	case steps == 0:
		explanation = fmt.Sprintf("both vehicles in %s condition, no adjustment", comp.Condition)
	case steps < 0:
		explanation = fmt.Sprintf(
			"comparable condition %s is better than loss vehicle %s: %.2fx multiplier, -$%.2f",
			comp.Condition, loss.Condition, multiplier, -amount)
	default:
		explanation = fmt.Sprintf(
			"comparable condition %s is worse than loss vehicle %s: %.2fx multiplier, +$%.2f",
			comp.Condition, loss.Condition, multiplier, amount)
	}

	return schema.ConditionAdjustment{
		ComparableCondition:  comp.Condition,
		LossVehicleCondition: loss.Condition,
		Multiplier:           multiplier,
		AdjustmentAmount:     amount,
		Explanation:          explanation,
	}
}
