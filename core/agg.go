package core

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/valuewise/marketval/schema"
)

// Confidence constants: the baseline grows with the number of comparables and
// saturates at three, then consistency bonuses reward low dispersion in
// adjusted prices and quality scores.
const (
	confidenceBase       = 40.0
	confidencePerComp    = 15.0
	confidenceCompCap    = 3
	consistencyBonusMax  = 15.0
	priceDispersionScale = 100.0 // bonus lost per unit of price CV
	scoreDispersionScale = 50.0  // bonus lost per unit of score CV
)

// CalculateMarketValue computes a market analysis using the default engine.
// See Engine.CalculateMarketValue.
func CalculateMarketValue(appraisalID string, loss *schema.LossVehicle, comparables []schema.ComparableVehicle, insuranceValue float64) (*schema.MarketAnalysis, error) {
	return defaultEngine.CalculateMarketValue(appraisalID, loss, comparables, insuranceValue)
}

// CalculateMarketValue aggregates an appraisal's comparables into a single
// quality-weighted market value:
//
//	finalMarketValue = Σ(adjustedPrice_i × qualityScore_i) / Σ(qualityScore_i)
//
// Each comparable is scored and adjusted against the loss vehicle as part of
// the call, so the result is always relative to the current loss vehicle
// snapshot. Quality scores are used as weights unclamped; a very strong
// comparable is allowed to dominate the average.
//
// Returns ErrNoValidComparables when the set is empty or every quality score
// is zero. Apart from CalculatedAt, the output is fully deterministic for a
// given input set.
func (e *Engine) CalculateMarketValue(appraisalID string, loss *schema.LossVehicle, comparables []schema.ComparableVehicle, insuranceValue float64) (*schema.MarketAnalysis, error) {
	if len(comparables) == 0 {
		return nil, fmt.Errorf("appraisal %s: %w", appraisalID, ErrNoValidComparables)
	}

	scored := make([]schema.ComparableVehicle, len(comparables))
	copy(scored, comparables)

	breakdown := schema.CalculationBreakdown{
		Contributions: make([]schema.ComparableContribution, 0, len(scored)),
	}
	steps := newStepLog()

	var totalWeighted, totalWeights float64
	for i := range scored {
		c := &scored[i]

		sb := e.ScoreComparable(c, loss)
		adj := e.ComputeAdjustments(c, loss)
		c.QualityScore = sb.FinalScore
		c.QualityScoreBreakdown = &sb
		c.Adjustments = &adj
		c.AdjustedPrice = adj.AdjustedPrice

		weighted := adj.AdjustedPrice * sb.FinalScore
		totalWeighted += weighted
		totalWeights += sb.FinalScore

		breakdown.Contributions = append(breakdown.Contributions, schema.ComparableContribution{
			ComparableID:  c.ID,
			ListPrice:     c.ListPrice,
			AdjustedPrice: adj.AdjustedPrice,
			QualityScore:  sb.FinalScore,
			WeightedValue: weighted,
		})
		steps.add(
			fmt.Sprintf("Weight comparable %s", displayID(c, i)),
			fmt.Sprintf("%.2f × %.2f", adj.AdjustedPrice, sb.FinalScore),
			weighted)
	}

	if totalWeights == 0 {
		return nil, fmt.Errorf("appraisal %s: total quality weight is zero: %w", appraisalID, ErrNoValidComparables)
	}

	steps.add("Sum weighted values", sumCalculation(breakdown.Contributions, func(c schema.ComparableContribution) float64 { return c.WeightedValue }), totalWeighted)
	steps.add("Sum quality weights", sumCalculation(breakdown.Contributions, func(c schema.ComparableContribution) float64 { return c.QualityScore }), totalWeights)

	finalValue := totalWeighted / totalWeights
	steps.add("Divide weighted values by weights",
		fmt.Sprintf("%.2f ÷ %.2f", totalWeighted, totalWeights), finalValue)

	breakdown.TotalWeightedValue = totalWeighted
	breakdown.TotalWeights = totalWeights
	breakdown.FinalMarketValue = finalValue
	breakdown.Steps = steps.steps

	analysis := &schema.MarketAnalysis{
		AppraisalID:           appraisalID,
		LossVehicle:           *loss,
		Comparables:           scored,
		CalculatedMarketValue: finalValue,
		CalculationMethod:     schema.CalculationMethodWeightedAverage,
		ConfidenceFactors: schema.ConfidenceFactors{
			ComparableCount:      len(scored),
			QualityScoreVariance: varianceOf(scored, func(c schema.ComparableVehicle) float64 { return c.QualityScore }),
			PriceVariance:        varianceOf(scored, func(c schema.ComparableVehicle) float64 { return c.AdjustedPrice }),
		},
		InsuranceValue:       insuranceValue,
		CalculationBreakdown: breakdown,
		CalculatedAt:         time.Now(),
	}
	analysis.ConfidenceLevel = e.confidenceLevel(scored)
	e.compareToInsurance(analysis)

	return analysis, nil
}

// confidenceLevel combines sample size with price and score consistency.
// More comparables raise the baseline; dispersion in either adjusted prices
// or quality scores erodes the consistency bonuses. Clamped to [0, 100].
func (e *Engine) confidenceLevel(comparables []schema.ComparableVehicle) float64 {
	n := len(comparables)
	capped := n
	if capped > confidenceCompCap {
		capped = confidenceCompCap
	}
	confidence := confidenceBase + float64(capped-1)*confidencePerComp

	prices := make([]float64, n)
	scores := make([]float64, n)
	for i, c := range comparables {
		prices[i] = c.AdjustedPrice
		scores[i] = c.QualityScore
	}

	confidence += consistencyBonus(prices, priceDispersionScale)
	confidence += consistencyBonus(scores, scoreDispersionScale)

	return math.Min(100, math.Max(0, confidence))
}

// consistencyBonus converts a coefficient of variation into a bonus that
// starts at the maximum for identical values and fades to zero as the
// dispersion grows.
func consistencyBonus(values []float64, scale float64) float64 {
	m := mean(values)
	if m == 0 {
		return 0
	}
	cv := stdDev(values, m) / math.Abs(m)
	return math.Max(0, consistencyBonusMax-cv*scale)
}

// compareToInsurance fills in the insurance comparison fields. A zero
// insurance value leaves the percentage undefined rather than crashing, and
// any positive calculated value counts as undervalued in that case.
func (e *Engine) compareToInsurance(a *schema.MarketAnalysis) {
	a.ValueDifference = a.CalculatedMarketValue - a.InsuranceValue

	if a.InsuranceValue == 0 {
		a.ValueDifferencePercentage = nil
		a.IsUndervalued = a.CalculatedMarketValue > 0
		return
	}

	pct := a.ValueDifference / a.InsuranceValue * 100
	a.ValueDifferencePercentage = &pct
	a.IsUndervalued = pct > e.params.MaterialityPct
}

// stepLog builds the ordered, 1-indexed calculation trail.
type stepLog struct {
	steps []schema.CalculationStep
}

func newStepLog() *stepLog {
	return &stepLog{}
}

func (l *stepLog) add(description, calculation string, result float64) {
	l.steps = append(l.steps, schema.CalculationStep{
		Index:       len(l.steps) + 1,
		Description: description,
		Calculation: calculation,
		Result:      result,
	})
}

// displayID prefers the comparable's ID and falls back to its 1-indexed
// position for ad-hoc inputs that never got one.
func displayID(c *schema.ComparableVehicle, idx int) string {
	if c.ID != "" {
		return c.ID
	}
	return fmt.Sprintf("#%d", idx+1)
}

// sumCalculation renders "a + b + c" for the step log.
func sumCalculation(contributions []schema.ComparableContribution, pick func(schema.ComparableContribution) float64) string {
	parts := make([]string, len(contributions))
	for i, c := range contributions {
		parts[i] = fmt.Sprintf("%.2f", pick(c))
	}
	return strings.Join(parts, " + ")
}

// varianceOf computes the population variance of a projected field.
func varianceOf(comparables []schema.ComparableVehicle, pick func(schema.ComparableVehicle) float64) float64 {
	values := make([]float64, len(comparables))
	for i, c := range comparables {
		values[i] = pick(c)
	}
	m := mean(values)
	sd := stdDev(values, m)
	return sd * sd
}
