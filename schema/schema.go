// Package schema has configs, models and shared constants for all parts of marketval.
package schema

import "time"

// LossVehicle represents the vehicle being appraised, as extracted from an
// insurance valuation report. It is an immutable input to a calculation run.
type LossVehicle struct {
	VIN       string    `json:"vin,omitempty"`    // Optional VIN from the report
	Year      int       `json:"year"`             // Model year
	Make      string    `json:"make"`             // Manufacturer name
	Model     string    `json:"model"`            // Model name
	Mileage   int       `json:"mileage"`          // Odometer reading in miles
	Location  string    `json:"location"`         // Free-form "City, ST" location
	Condition Condition `json:"condition"`        // Overall condition rank
	Equipment []string  `json:"equipment"`        // Named equipment features
	Source    string    `json:"source,omitempty"` // Report provenance (e.g. "CCC", "Mitchell")

	// ExtractionConfidence is the PDF extraction confidence (0-1). It is
	// informational only and never feeds into scoring.
	ExtractionConfidence float64 `json:"extractionConfidence,omitempty"`
}

// ComparableVehicle is a similar vehicle listing used as market evidence.
// Computed fields (QualityScore, Adjustments) are filled in by the engine and
// refreshed whenever the loss vehicle or the comparable itself changes.
type ComparableVehicle struct {
	ID          string `json:"id"`
	AppraisalID string `json:"appraisalId"`

	Year             int       `json:"year"`
	Make             string    `json:"make"`
	Model            string    `json:"model"`
	Trim             string    `json:"trim,omitempty"`
	Mileage          int       `json:"mileage"`
	Location         string    `json:"location"`
	Latitude         float64   `json:"latitude,omitempty"`
	Longitude        float64   `json:"longitude,omitempty"`
	DistanceFromLoss float64   `json:"distanceFromLoss"` // Precomputed distance in miles
	Source           string    `json:"source"`           // Listing source (e.g. "AutoTrader")
	ListPrice        float64   `json:"listPrice"`
	Condition        Condition `json:"condition"`
	Equipment        []string  `json:"equipment"`

	QualityScore          float64                `json:"qualityScore"`
	QualityScoreBreakdown *QualityScoreBreakdown `json:"qualityScoreBreakdown,omitempty"`
	Adjustments           *PriceAdjustments      `json:"adjustments,omitempty"`
	AdjustedPrice         float64                `json:"adjustedPrice"`

	DateAdded time.Time `json:"dateAdded"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// QualityScoreBreakdown itemizes how a comparable's quality score was computed.
// All penalty and bonus fields are non-negative magnitudes; the sign is encoded
// in the field name. The invariant is:
//
//	FinalScore = BaseScore - DistancePenalty - AgePenalty + AgeBonus
//	           - MileagePenalty + MileageBonus - EquipmentPenalty + EquipmentBonus
//
// clamped to a minimum of 0. Scores above 100 are valid and indicate a
// better-than-baseline comparable.
type QualityScoreBreakdown struct {
	BaseScore        float64 `json:"baseScore"`
	DistancePenalty  float64 `json:"distancePenalty"`
	AgePenalty       float64 `json:"agePenalty"`
	AgeBonus         float64 `json:"ageBonus"`
	MileagePenalty   float64 `json:"mileagePenalty"`
	MileageBonus     float64 `json:"mileageBonus"`
	EquipmentPenalty float64 `json:"equipmentPenalty"`
	EquipmentBonus   float64 `json:"equipmentBonus"`
	FinalScore       float64 `json:"finalScore"`

	// Explanations holds one human-readable line per factor, keyed by
	// ExplainDistance, ExplainAge, ExplainMileage and ExplainEquipment.
	Explanations map[ExplainKey]string `json:"explanations"`
}

// MileageAdjustment normalizes a comparable's price for the odometer gap
// between it and the loss vehicle.
type MileageAdjustment struct {
	MileageDifference int     `json:"mileageDifference"` // comparable - loss, signed miles
	DepreciationRate  float64 `json:"depreciationRate"`  // dollars per mile
	AdjustmentAmount  float64 `json:"adjustmentAmount"`  // signed dollars
	Explanation       string  `json:"explanation"`
}

// EquipmentAdjustment is one entry per feature present on exactly one of the
// two vehicles.
type EquipmentAdjustment struct {
	Feature     string         `json:"feature"`
	Type        AdjustmentType `json:"type"`  // "missing" or "extra"
	Value       float64        `json:"value"` // signed dollars
	Explanation string         `json:"explanation"`
}

// ConditionAdjustment normalizes a comparable's price for the condition gap
// between it and the loss vehicle.
type ConditionAdjustment struct {
	ComparableCondition  Condition `json:"comparableCondition"`
	LossVehicleCondition Condition `json:"lossVehicleCondition"`
	Multiplier           float64   `json:"multiplier"`
	AdjustmentAmount     float64   `json:"adjustmentAmount"` // signed dollars
	Explanation          string    `json:"explanation"`
}

// PriceAdjustments turns a comparable's list price into an adjusted price.
// The sign convention is fixed across all three categories: an adjustment is
// positive when the comparable is inferior to the loss vehicle in that factor,
// so AdjustedPrice approximates what the comparable would list for if it
// exactly matched the loss vehicle. AdjustedPrice = ListPrice + TotalAdjustment
// holds exactly for every comparable.
type PriceAdjustments struct {
	MileageAdjustment    MileageAdjustment     `json:"mileageAdjustment"`
	EquipmentAdjustments []EquipmentAdjustment `json:"equipmentAdjustments"`
	ConditionAdjustment  ConditionAdjustment   `json:"conditionAdjustment"`
	TotalAdjustment      float64               `json:"totalAdjustment"`
	AdjustedPrice        float64               `json:"adjustedPrice"`
}

// ComparableContribution records one comparable's share of the weighted average.
type ComparableContribution struct {
	ComparableID  string  `json:"comparableId"`
	ListPrice     float64 `json:"listPrice"`
	AdjustedPrice float64 `json:"adjustedPrice"`
	QualityScore  float64 `json:"qualityScore"`
	WeightedValue float64 `json:"weightedValue"` // AdjustedPrice * QualityScore
}

// CalculationStep is one line of the ordered aggregation log. The steps are
// sufficient to reproduce the arithmetic by hand.
type CalculationStep struct {
	Index       int     `json:"index"`
	Description string  `json:"description"`
	Calculation string  `json:"calculation"`
	Result      float64 `json:"result"`
}

// CalculationBreakdown is the reproducible trail behind a market value. It is
// a first-class output consumed by report generation, not a debugging aid.
type CalculationBreakdown struct {
	Contributions      []ComparableContribution `json:"contributions"`
	TotalWeightedValue float64                  `json:"totalWeightedValue"`
	TotalWeights       float64                  `json:"totalWeights"`
	FinalMarketValue   float64                  `json:"finalMarketValue"`
	Steps              []CalculationStep        `json:"steps"`
}

// ConfidenceFactors holds the inputs behind a confidence level.
type ConfidenceFactors struct {
	ComparableCount      int     `json:"comparableCount"`
	QualityScoreVariance float64 `json:"qualityScoreVariance"`
	PriceVariance        float64 `json:"priceVariance"`
}

// MarketAnalysis is the full result of one market value calculation for an
// appraisal. Each recalculation produces a fresh record; analyses are never
// partially mutated.
type MarketAnalysis struct {
	AppraisalID           string              `json:"appraisalId"`
	LossVehicle           LossVehicle         `json:"lossVehicle"`
	Comparables           []ComparableVehicle `json:"comparables"`
	CalculatedMarketValue float64             `json:"calculatedMarketValue"`
	CalculationMethod     string              `json:"calculationMethod"` // always "quality-weighted-average"
	ConfidenceLevel       float64             `json:"confidenceLevel"`   // 0-100
	ConfidenceFactors     ConfidenceFactors   `json:"confidenceFactors"`

	InsuranceValue  float64 `json:"insuranceValue"`
	ValueDifference float64 `json:"valueDifference"` // calculated - insurance

	// ValueDifferencePercentage is nil when InsuranceValue is 0, since the
	// percentage is undefined there (and +Inf does not survive JSON).
	ValueDifferencePercentage *float64 `json:"valueDifferencePercentage"`
	IsUndervalued             bool     `json:"isUndervalued"`

	CalculationBreakdown CalculationBreakdown `json:"calculationBreakdown"`
	CalculatedAt         time.Time            `json:"calculatedAt"`
}

// ValidationIssue is a single field-attributable error or warning.
type ValidationIssue struct {
	Field           string        `json:"field"`
	Severity        IssueSeverity `json:"severity"`
	Message         string        `json:"message"`
	SuggestedAction string        `json:"suggestedAction,omitempty"` // Set for errors only
}

// ValidationResult is the outcome of validating one comparable. Warnings never
// block a save; any error makes IsValid false.
type ValidationResult struct {
	IsValid  bool              `json:"isValid"`
	Errors   []ValidationIssue `json:"errors"`
	Warnings []ValidationIssue `json:"warnings"`
}

// ValidationSummary aggregates validation results across a comparable set.
type ValidationSummary struct {
	TotalCount     int      `json:"totalCount"`
	ValidCount     int      `json:"validCount"`
	InvalidCount   int      `json:"invalidCount"`
	WarningCount   int      `json:"warningCount"`
	CriticalIssues []string `json:"criticalIssues"` // One line per invalid comparable, 1-indexed
}
