// Package core implements the market value calculation engine: quality
// scoring of comparable vehicles, price adjustments, validation and the
// quality-weighted aggregation that produces a market value with a
// reproducible breakdown trail.
//
// All computations are pure, synchronous and total over structurally valid
// inputs. The only session state is the equipment catalog's override map,
// which is owned by the caller and injected explicitly.
package core

import "errors"

// Sentinel errors surfaced by the engine.
var (
	// ErrNoValidComparables is returned when a market value cannot be
	// computed because the comparable set is empty or carries zero total
	// weight.
	ErrNoValidComparables = errors.New("no valid comparables: add at least one comparable vehicle to calculate market value")

	// ErrInvalidEquipmentValue is returned when a custom equipment value
	// is negative.
	ErrInvalidEquipmentValue = errors.New("equipment value must be zero or greater")
)

// Params holds the tunable constants of the engine. The relationships between
// factors are fixed; only the magnitudes are configurable.
type Params struct {
	DepreciationRate float64 // Dollars per mile of odometer gap

	DistanceFreeMiles      float64 // No distance penalty within this radius
	DistancePenaltyPerMile float64 // Points per mile beyond the free radius

	AgeBonusPoints    float64 // Bonus for an exact model-year match
	AgeFreeYears      int     // Year gap with no penalty
	AgePenaltyPerYear float64 // Points per year beyond the free gap

	MileageBandPct       float64 // Relative band around loss mileage with a bonus
	MileageBonusPoints   float64 // Bonus inside the band
	MileagePenaltyPerPct float64 // Points per percentage point outside the band
	MileagePenaltyCap    float64 // Upper bound on the mileage penalty

	EquipmentMatchBonus     float64 // Bonus for an exact non-empty equipment match
	EquipmentCoverageBonus  float64 // Bonus when all loss features are present (extras allowed)
	EquipmentMissingPenalty float64 // Points per feature the comparable lacks

	ConditionStepPct       float64 // Price multiplier step per condition rank
	ConditionMultiplierMin float64 // Lower clamp on the condition multiplier
	ConditionMultiplierMax float64 // Upper clamp on the condition multiplier

	MaterialityPct float64 // Undervaluation threshold, percent of insurance value
}

// DefaultParams returns the engine defaults. These are the values behind the
// documented scoring policy; hosts may tune them through configuration.
func DefaultParams() Params {
	return Params{
		DepreciationRate: 0.20,

		DistanceFreeMiles:      100.0,
		DistancePenaltyPerMile: 0.1,

		AgeBonusPoints:    5.0,
		AgeFreeYears:      1,
		AgePenaltyPerYear: 5.0,

		MileageBandPct:       0.20,
		MileageBonusPoints:   5.0,
		MileagePenaltyPerPct: 0.75,
		MileagePenaltyCap:    40.0,

		EquipmentMatchBonus:     5.0,
		EquipmentCoverageBonus:  2.0,
		EquipmentMissingPenalty: 2.0,

		ConditionStepPct:       0.05,
		ConditionMultiplierMin: 0.80,
		ConditionMultiplierMax: 1.20,

		MaterialityPct: 5.0,
	}
}

// Engine bundles the tunable parameters with an injected equipment catalog.
// An Engine is safe for concurrent use as long as callers serialize catalog
// writes, which are the only mutable state.
type Engine struct {
	params  Params
	catalog *EquipmentCatalog
}

// NewEngine creates an engine with the given parameters and catalog. A nil
// catalog gets a fresh one with no overrides.
func NewEngine(params Params, catalog *EquipmentCatalog) *Engine {
	if catalog == nil {
		catalog = NewEquipmentCatalog()
	}
	return &Engine{params: params, catalog: catalog}
}

// Catalog returns the engine's equipment catalog.
func (e *Engine) Catalog() *EquipmentCatalog {
	return e.catalog
}

// Params returns a copy of the engine's parameters.
func (e *Engine) Params() Params {
	return e.params
}

// defaultEngine backs the package-level convenience functions. It carries no
// catalog overrides, so these functions stay pure.
var defaultEngine = NewEngine(DefaultParams(), NewEquipmentCatalog())
