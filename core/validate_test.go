package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valuewise/marketval/schema"
)

// fieldIssues collects issue messages for one field.
func fieldIssues(issues []schema.ValidationIssue, field string) []string {
	var out []string
	for _, issue := range issues {
		if issue.Field == field {
			out = append(out, issue.Message)
		}
	}
	return out
}

// TestValidateCleanComparable checks that a well-formed comparable passes.
func TestValidateCleanComparable(t *testing.T) {
	loss := testLoss()
	comp := identicalComp()

	r := ValidateComparable(&comp, nil, loss)
	assert.True(t, r.IsValid)
	assert.Empty(t, r.Errors)
	assert.Empty(t, r.Warnings)
}

// TestValidateRequiredFields checks every blocking required-field error.
func TestValidateRequiredFields(t *testing.T) {
	comp := schema.ComparableVehicle{}

	r := ValidateComparable(&comp, nil, nil)
	assert.False(t, r.IsValid)

	for _, field := range []string{"source", "year", "make", "model", "location", "condition"} {
		assert.NotEmpty(t, fieldIssues(r.Errors, field), "expected a required error for %s", field)
	}
}

// TestValidateRanges covers the blocking range checks, table style.
func TestValidateRanges(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *schema.ComparableVehicle)
		field   string
		message string
	}{
		{
			name:    "year too old",
			mutate:  func(c *schema.ComparableVehicle) { c.Year = 1985 },
			field:   "year",
			message: "outside the accepted range",
		},
		{
			name:    "year in the far future",
			mutate:  func(c *schema.ComparableVehicle) { c.Year = 2100 },
			field:   "year",
			message: "outside the accepted range",
		},
		{
			name:    "negative mileage",
			mutate:  func(c *schema.ComparableVehicle) { c.Mileage = -1 },
			field:   "mileage",
			message: "cannot be negative",
		},
		{
			name:    "excessive mileage",
			mutate:  func(c *schema.ComparableVehicle) { c.Mileage = 600000 },
			field:   "mileage",
			message: "exceeds the maximum",
		},
		{
			name:    "price below minimum",
			mutate:  func(c *schema.ComparableVehicle) { c.ListPrice = 100 },
			field:   "listPrice",
			message: "below the minimum",
		},
		{
			name:    "price above maximum",
			mutate:  func(c *schema.ComparableVehicle) { c.ListPrice = 600000 },
			field:   "listPrice",
			message: "exceeds the maximum",
		},
		{
			name:    "malformed location",
			mutate:  func(c *schema.ComparableVehicle) { c.Location = "Columbus Ohio" },
			field:   "location",
			message: `must look like "City, ST"`,
		},
		{
			name:    "unknown condition",
			mutate:  func(c *schema.ComparableVehicle) { c.Condition = "Mint" },
			field:   "condition",
			message: "unknown condition",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comp := identicalComp()
			tt.mutate(&comp)

			r := ValidateComparable(&comp, nil, nil)
			assert.False(t, r.IsValid)
			msgs := fieldIssues(r.Errors, tt.field)
			require.NotEmpty(t, msgs)
			assert.Contains(t, strings.Join(msgs, "; "), tt.message)
		})
	}
}

// TestValidateAdvisoryWarnings covers warnings that never block.
func TestValidateAdvisoryWarnings(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *schema.ComparableVehicle)
		field  string
	}{
		{
			name:   "unknown make",
			mutate: func(c *schema.ComparableVehicle) { c.Make = "Hondo" },
			field:  "make",
		},
		{
			name:   "make with digits",
			mutate: func(c *schema.ComparableVehicle) { c.Make = "H0nda" },
			field:  "make",
		},
		{
			name:   "far distance",
			mutate: func(c *schema.ComparableVehicle) { c.DistanceFromLoss = 450 },
			field:  "distanceFromLoss",
		},
		{
			name:   "moderate distance",
			mutate: func(c *schema.ComparableVehicle) { c.DistanceFromLoss = 200 },
			field:  "distanceFromLoss",
		},
		{
			name:   "very high mileage",
			mutate: func(c *schema.ComparableVehicle) { c.Mileage = 250000 },
			field:  "mileage",
		},
		{
			name:   "no equipment listed",
			mutate: func(c *schema.ComparableVehicle) { c.Equipment = nil },
			field:  "equipment",
		},
		{
			name:   "duplicate equipment",
			mutate: func(c *schema.ComparableVehicle) { c.Equipment = []string{"Sunroof", "sunroof "} },
			field:  "equipment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comp := identicalComp()
			tt.mutate(&comp)

			r := ValidateComparable(&comp, nil, nil)
			assert.True(t, r.IsValid, "warnings must not block")
			assert.NotEmpty(t, fieldIssues(r.Warnings, tt.field))
		})
	}
}

// TestValidateAgainstLoss covers the cross-field drift warnings.
func TestValidateAgainstLoss(t *testing.T) {
	loss := testLoss()

	comp := identicalComp()
	comp.Year = 2015 // 5 years off
	comp.Make = "Toyota"
	comp.Model = "Camry"
	comp.Mileage = 110000 // 120% off

	r := ValidateComparable(&comp, nil, loss)
	assert.True(t, r.IsValid)
	assert.NotEmpty(t, fieldIssues(r.Warnings, "year"))
	assert.NotEmpty(t, fieldIssues(r.Warnings, "make"))
	assert.NotEmpty(t, fieldIssues(r.Warnings, "model"))
	assert.NotEmpty(t, fieldIssues(r.Warnings, "mileage"))
}

// TestValidateOutlier checks the 2-sigma price outlier gate and the minimum
// set size it needs.
func TestValidateOutlier(t *testing.T) {
	loss := testLoss()

	makeSet := func(prices ...float64) []schema.ComparableVehicle {
		out := make([]schema.ComparableVehicle, len(prices))
		for i, p := range prices {
			c := identicalComp()
			c.ListPrice = p
			out[i] = c
		}
		return out
	}

	t.Run("outlier in a set of six", func(t *testing.T) {
		set := makeSet(25000, 25000, 25000, 25000, 25000, 90000)
		r := ValidateComparable(&set[5], set, loss)
		assert.NotEmpty(t, fieldIssues(r.Warnings, "listPrice"))

		r = ValidateComparable(&set[0], set, loss)
		assert.Empty(t, fieldIssues(r.Warnings, "listPrice"))
	})

	t.Run("no gate below three comparables", func(t *testing.T) {
		set := makeSet(24000, 60000)
		r := ValidateComparable(&set[1], set, loss)
		assert.Empty(t, fieldIssues(r.Warnings, "listPrice"))
	})

	t.Run("uniform prices produce no outliers", func(t *testing.T) {
		set := makeSet(25000, 25000, 25000)
		for i := range set {
			r := ValidateComparable(&set[i], set, loss)
			assert.Empty(t, fieldIssues(r.Warnings, "listPrice"))
		}
	})
}

// TestValidationSummary checks counts and the 1-indexed critical issues.
func TestValidationSummary(t *testing.T) {
	loss := testLoss()
	e := NewEngine(DefaultParams(), nil)

	good := identicalComp()
	noisy := identicalComp()
	noisy.Make = "Hondo" // warning only
	broken := identicalComp()
	broken.Mileage = -5
	broken.ListPrice = 100

	results := e.ValidateMultiple([]schema.ComparableVehicle{good, noisy, broken}, loss)
	summary := e.ValidationSummary(results)

	assert.Equal(t, 3, summary.TotalCount)
	assert.Equal(t, 2, summary.ValidCount)
	assert.Equal(t, 1, summary.InvalidCount)
	assert.GreaterOrEqual(t, summary.WarningCount, 1)
	require.Len(t, summary.CriticalIssues, 1)
	assert.Contains(t, summary.CriticalIssues[0], "Comparable #3")
	assert.Contains(t, summary.CriticalIssues[0], "mileage")
	assert.Contains(t, summary.CriticalIssues[0], "listPrice")
}
