package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valuewise/marketval/schema"
)

// TestCalculateMarketValueSingleComparable pins the degenerate case: one
// comparable yields its own adjusted price, whatever its weight.
func TestCalculateMarketValueSingleComparable(t *testing.T) {
	loss := testLoss()
	comp := identicalComp()

	analysis, err := CalculateMarketValue("APP-1", loss, []schema.ComparableVehicle{comp}, 0)
	require.NoError(t, err)

	assert.InDelta(t, 25000, analysis.CalculatedMarketValue, 0.001)
	assert.Equal(t, schema.CalculationMethodWeightedAverage, analysis.CalculationMethod)
	assert.Equal(t, 1, analysis.ConfidenceFactors.ComparableCount)
	assert.InDelta(t, 115, analysis.Comparables[0].QualityScore, 0.001)

	// One comparable, fully consistent with itself: 40 base + 15 + 15.
	assert.InDelta(t, 70, analysis.ConfidenceLevel, 0.001)
}

// TestCalculateMarketValueWeightedAverage checks the weighted mean over two
// equally scored comparables.
func TestCalculateMarketValueWeightedAverage(t *testing.T) {
	loss := testLoss()
	cheap := identicalComp()
	cheap.ID = "comp-cheap"
	cheap.ListPrice = 24000
	dear := identicalComp()
	dear.ID = "comp-dear"
	dear.ListPrice = 26000

	analysis, err := CalculateMarketValue("APP-2", loss, []schema.ComparableVehicle{cheap, dear}, 0)
	require.NoError(t, err)

	// Equal 115 weights: (24000*115 + 26000*115) / 230 = 25000.
	assert.InDelta(t, 25000, analysis.CalculatedMarketValue, 0.001)
	assert.InDelta(t, 230, analysis.CalculationBreakdown.TotalWeights, 0.001)

	require.Len(t, analysis.CalculationBreakdown.Contributions, 2)
	first := analysis.CalculationBreakdown.Contributions[0]
	assert.Equal(t, "comp-cheap", first.ComparableID)
	assert.InDelta(t, 24000, first.AdjustedPrice, 0.001)
	assert.InDelta(t, 24000*115, first.WeightedValue, 0.001)
}

// TestCalculateMarketValueDistinctWeights checks that unequal quality scores
// pull the result away from the plain mean, toward the stronger comparable.
func TestCalculateMarketValueDistinctWeights(t *testing.T) {
	loss := testLoss()
	near := identicalComp()
	near.ID = "comp-near"
	near.ListPrice = 24000
	far := identicalComp()
	far.ID = "comp-far"
	far.ListPrice = 26000
	far.DistanceFromLoss = 250 // 150 miles beyond the free radius, -15 points

	analysis, err := CalculateMarketValue("APP-10", loss, []schema.ComparableVehicle{near, far}, 0)
	require.NoError(t, err)

	contributions := analysis.CalculationBreakdown.Contributions
	require.Len(t, contributions, 2)
	assert.InDelta(t, 115, contributions[0].QualityScore, 0.001)
	assert.InDelta(t, 100, contributions[1].QualityScore, 0.001)

	// (24000×115 + 26000×100) / 215 = 24930.23, below the plain mean of 25000.
	assert.InDelta(t, 24930.2326, analysis.CalculatedMarketValue, 0.001)
	assert.Less(t, analysis.CalculatedMarketValue, 25000.0)

	// The weighted average stays inside the adjusted price range.
	assert.GreaterOrEqual(t, analysis.CalculatedMarketValue, 24000.0)
	assert.LessOrEqual(t, analysis.CalculatedMarketValue, 26000.0)

	// The recorded steps reproduce the figure exactly.
	steps := analysis.CalculationBreakdown.Steps
	require.Len(t, steps, 5)
	assert.InDelta(t, 24000*115, steps[0].Result, 0.001)
	assert.InDelta(t, 26000*100, steps[1].Result, 0.001)
	assert.InDelta(t, 24000*115+26000*100, steps[2].Result, 0.001)
	assert.InDelta(t, 215, steps[3].Result, 0.001)
	assert.InDelta(t, steps[2].Result/steps[3].Result, steps[4].Result, 0.001)
	assert.InDelta(t, analysis.CalculatedMarketValue, steps[4].Result, 0.001)
}

// TestCalculateMarketValueBreakdownSteps verifies the reproducible trail.
func TestCalculateMarketValueBreakdownSteps(t *testing.T) {
	loss := testLoss()
	comps := []schema.ComparableVehicle{identicalComp(), identicalComp()}

	analysis, err := CalculateMarketValue("APP-3", loss, comps, 0)
	require.NoError(t, err)

	steps := analysis.CalculationBreakdown.Steps
	// One weighting step per comparable plus the three aggregate steps.
	require.Len(t, steps, 5)
	for i, step := range steps {
		assert.Equal(t, i+1, step.Index)
		assert.NotEmpty(t, step.Description)
		assert.NotEmpty(t, step.Calculation)
	}
	last := steps[len(steps)-1]
	assert.InDelta(t, analysis.CalculatedMarketValue, last.Result, 0.001)
}

// TestCalculateMarketValueNoComparables checks the sentinel on an empty set.
func TestCalculateMarketValueNoComparables(t *testing.T) {
	loss := testLoss()

	_, err := CalculateMarketValue("APP-4", loss, nil, 0)
	assert.ErrorIs(t, err, ErrNoValidComparables)
}

// TestCalculateMarketValueZeroWeight checks the sentinel when every
// comparable scores zero.
func TestCalculateMarketValueZeroWeight(t *testing.T) {
	loss := testLoss()
	comp := identicalComp()
	comp.DistanceFromLoss = 5000 // penalty alone wipes out the score

	_, err := CalculateMarketValue("APP-5", loss, []schema.ComparableVehicle{comp}, 0)
	assert.ErrorIs(t, err, ErrNoValidComparables)
}

// TestConfidenceGrowsWithComparables checks the sample-size baseline.
func TestConfidenceGrowsWithComparables(t *testing.T) {
	loss := testLoss()

	var prev float64
	for n := 1; n <= 3; n++ {
		comps := make([]schema.ComparableVehicle, n)
		for i := range comps {
			comps[i] = identicalComp()
		}
		analysis, err := CalculateMarketValue("APP-6", loss, comps, 0)
		require.NoError(t, err)
		assert.Greater(t, analysis.ConfidenceLevel, prev, "confidence should rise at n=%d", n)
		assert.LessOrEqual(t, analysis.ConfidenceLevel, 100.0)
		prev = analysis.ConfidenceLevel
	}
}

// TestInsuranceComparison covers the materiality threshold and the undefined
// percentage for a zero insurance value.
func TestInsuranceComparison(t *testing.T) {
	loss := testLoss()
	comp := identicalComp() // market value 25000

	t.Run("within materiality", func(t *testing.T) {
		analysis, err := CalculateMarketValue("APP-7", loss, []schema.ComparableVehicle{comp}, 24000)
		require.NoError(t, err)
		require.NotNil(t, analysis.ValueDifferencePercentage)
		assert.InDelta(t, 1000, analysis.ValueDifference, 0.001)
		assert.InDelta(t, 4.1667, *analysis.ValueDifferencePercentage, 0.001)
		assert.False(t, analysis.IsUndervalued, "4.2%% is under the 5%% materiality threshold")
	})

	t.Run("materially undervalued", func(t *testing.T) {
		analysis, err := CalculateMarketValue("APP-8", loss, []schema.ComparableVehicle{comp}, 20000)
		require.NoError(t, err)
		require.NotNil(t, analysis.ValueDifferencePercentage)
		assert.InDelta(t, 25, *analysis.ValueDifferencePercentage, 0.001)
		assert.True(t, analysis.IsUndervalued)
	})

	t.Run("zero insurance value", func(t *testing.T) {
		analysis, err := CalculateMarketValue("APP-9", loss, []schema.ComparableVehicle{comp}, 0)
		require.NoError(t, err)
		assert.Nil(t, analysis.ValueDifferencePercentage, "percentage is undefined without an insurance value")
		assert.True(t, analysis.IsUndervalued)
	})
}
