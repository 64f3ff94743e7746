package core

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/valuewise/marketval/schema"
)

// Validation bounds for comparables. These are deliberately tighter than the
// loss-vehicle bounds used by VIN decoding elsewhere: market evidence older
// than 1990 is not useful even when the report itself is.
const (
	minComparableYear = 1990
	maxMileage        = 500000
	minListPrice      = 500.0
	maxListPrice      = 500000.0

	highMileageWarn     = 200000
	lowPriceWarn        = 2000.0
	highPriceWarn       = 100000.0
	moderateDistanceMi  = 150.0
	farDistanceMi       = 300.0
	lossYearGapWarn     = 3
	lossMileageGapRatio = 0.5

	// Age-derived mileage plausibility. Typical US usage is ~12k miles a
	// year; far below or above that for the vehicle's age is suspicious.
	typicalMilesPerYear = 12000.0
	lowUsageRatio       = 0.2
	highMilesPerYear    = 25000.0

	// Price outliers need at least this many comparables in the set.
	outlierMinSet    = 3
	outlierStdDevMul = 2.0
)

// locationPattern requires a "<city>, <2-letter-state>" shape. The comma is
// mandatory and the state code is exactly two letters, case-insensitive.
var locationPattern = regexp.MustCompile(`^.+,\s*[A-Za-z]{2}$`)

// ValidateComparable validates a single comparable using the default engine.
// See Engine.ValidateComparable.
func ValidateComparable(comp *schema.ComparableVehicle, allComparables []schema.ComparableVehicle, loss *schema.LossVehicle) schema.ValidationResult {
	return defaultEngine.ValidateComparable(comp, allComparables, loss)
}

// ValidateComparable checks a comparable at two severity tiers. Errors are
// structural and block a save; warnings are advisory and never block. The
// optional loss vehicle enables cross-field checks, and the optional set of
// all comparables enables price-outlier detection (needs at least 3 total).
func (e *Engine) ValidateComparable(comp *schema.ComparableVehicle, allComparables []schema.ComparableVehicle, loss *schema.LossVehicle) schema.ValidationResult {
	r := schema.ValidationResult{}

	e.checkRequiredFields(comp, &r)
	e.checkRanges(comp, &r)
	e.checkAdvisory(comp, &r)
	if loss != nil {
		e.checkAgainstLoss(comp, loss, &r)
	}
	if len(allComparables) >= outlierMinSet {
		e.checkOutlier(comp, allComparables, &r)
	}

	r.IsValid = len(r.Errors) == 0
	return r
}

// ValidateMultiple runs ValidateComparable independently for each comparable
// in the set. No state is shared between items.
func (e *Engine) ValidateMultiple(comparables []schema.ComparableVehicle, loss *schema.LossVehicle) []schema.ValidationResult {
	results := make([]schema.ValidationResult, len(comparables))
	for i := range comparables {
		results[i] = e.ValidateComparable(&comparables[i], comparables, loss)
	}
	return results
}

// ValidationSummary aggregates a set of results into counts and a list of
// critical issues, one line per invalid comparable. Positions are 1-indexed
// to match how the comparables are shown to the user.
func (e *Engine) ValidationSummary(results []schema.ValidationResult) schema.ValidationSummary {
	s := schema.ValidationSummary{TotalCount: len(results)}
	for i, r := range results {
		if r.IsValid {
			s.ValidCount++
		} else {
			s.InvalidCount++
			fields := make([]string, 0, len(r.Errors))
			for _, issue := range r.Errors {
				fields = append(fields, issue.Field)
			}
			s.CriticalIssues = append(s.CriticalIssues,
				fmt.Sprintf("Comparable #%d has invalid fields: %s", i+1, strings.Join(fields, ", ")))
		}
		s.WarningCount += len(r.Warnings)
	}
	return s
}

func addError(r *schema.ValidationResult, field, message, action string) {
	r.Errors = append(r.Errors, schema.ValidationIssue{
		Field:           field,
		Severity:        schema.SeverityError,
		Message:         message,
		SuggestedAction: action,
	})
}

func addWarning(r *schema.ValidationResult, field, message string) {
	r.Warnings = append(r.Warnings, schema.ValidationIssue{
		Field:    field,
		Severity: schema.SeverityWarning,
		Message:  message,
	})
}

// checkRequiredFields flags missing required fields.
func (e *Engine) checkRequiredFields(comp *schema.ComparableVehicle, r *schema.ValidationResult) {
	if strings.TrimSpace(comp.Source) == "" {
		addError(r, "source", "source is required", "Enter where this listing was found")
	}
	if comp.Year == 0 {
		addError(r, "year", "year is required", "Enter the model year")
	}
	if strings.TrimSpace(comp.Make) == "" {
		addError(r, "make", "make is required", "Enter the manufacturer name")
	}
	if strings.TrimSpace(comp.Model) == "" {
		addError(r, "model", "model is required", "Enter the model name")
	}
	if strings.TrimSpace(comp.Location) == "" {
		addError(r, "location", "location is required", "Enter the listing location as City, ST")
	}
	if comp.Condition == "" {
		addError(r, "condition", "condition is required", "Pick one of Salvage, Poor, Fair, Good, Excellent")
	}
}

// checkRanges flags out-of-range values on present fields.
func (e *Engine) checkRanges(comp *schema.ComparableVehicle, r *schema.ValidationResult) {
	maxYear := time.Now().Year() + 2
	if comp.Year != 0 && (comp.Year < minComparableYear || comp.Year > maxYear) {
		addError(r, "year",
			fmt.Sprintf("year %d is outside the accepted range %d-%d", comp.Year, minComparableYear, maxYear),
			"Double-check the model year on the listing")
	}
	if comp.Mileage < 0 {
		addError(r, "mileage", "mileage cannot be negative", "Enter the odometer reading in miles")
	} else if comp.Mileage > maxMileage {
		addError(r, "mileage",
			fmt.Sprintf("mileage %d exceeds the maximum of %d", comp.Mileage, maxMileage),
			"Verify the odometer reading")
	}
	if comp.ListPrice < minListPrice {
		addError(r, "listPrice",
			fmt.Sprintf("list price $%.2f is below the minimum of $%.2f", comp.ListPrice, minListPrice),
			"Enter the asking price from the listing")
	} else if comp.ListPrice > maxListPrice {
		addError(r, "listPrice",
			fmt.Sprintf("list price $%.2f exceeds the maximum of $%.2f", comp.ListPrice, maxListPrice),
			"Verify the asking price")
	}
	if loc := strings.TrimSpace(comp.Location); loc != "" && !locationPattern.MatchString(loc) {
		addError(r, "location",
			fmt.Sprintf("location %q must look like \"City, ST\"", comp.Location),
			"Use a city name followed by a comma and a 2-letter state code")
	}
	if comp.Condition != "" && !comp.Condition.IsValid() {
		addError(r, "condition",
			fmt.Sprintf("unknown condition %q", comp.Condition),
			"Pick one of Salvage, Poor, Fair, Good, Excellent")
	}
}

// checkAdvisory emits field-level warnings that never block a save.
func (e *Engine) checkAdvisory(comp *schema.ComparableVehicle, r *schema.ValidationResult) {
	mk := strings.TrimSpace(comp.Make)
	if mk != "" {
		switch {
		case len(mk) < 2:
			addWarning(r, "make", fmt.Sprintf("make %q is unusually short", comp.Make))
		case containsDigit(mk):
			addWarning(r, "make", fmt.Sprintf("make %q contains digits", comp.Make))
		case !isKnownMake(mk):
			addWarning(r, "make", fmt.Sprintf("make %q is not a recognized manufacturer", comp.Make))
		}
	}

	md := strings.TrimSpace(comp.Model)
	if md != "" && len(md) < 2 {
		addWarning(r, "model", fmt.Sprintf("model %q is unusually short", comp.Model))
	}
	if mk != "" && md != "" && strings.EqualFold(mk, md) {
		addWarning(r, "model", "make and model are identical")
	}

	if comp.Mileage > highMileageWarn {
		addWarning(r, "mileage", fmt.Sprintf("mileage %d is very high", comp.Mileage))
	}
	if age := time.Now().Year() - comp.Year; comp.Year != 0 && age >= 3 && comp.Mileage >= 0 {
		expected := float64(age) * typicalMilesPerYear
		if float64(comp.Mileage) < expected*lowUsageRatio {
			addWarning(r, "mileage",
				fmt.Sprintf("mileage %d is suspiciously low for a %d-year-old vehicle", comp.Mileage, age))
		} else if float64(comp.Mileage) > float64(age)*highMilesPerYear {
			addWarning(r, "mileage",
				fmt.Sprintf("mileage %d is very high for a %d-year-old vehicle", comp.Mileage, age))
		}
	}

	if comp.ListPrice > 0 && comp.ListPrice < lowPriceWarn {
		addWarning(r, "listPrice", fmt.Sprintf("list price $%.2f is unusually low", comp.ListPrice))
	}
	if comp.ListPrice > highPriceWarn {
		addWarning(r, "listPrice", fmt.Sprintf("list price $%.2f is unusually high", comp.ListPrice))
	}

	switch {
	case comp.DistanceFromLoss > farDistanceMi:
		addWarning(r, "distanceFromLoss",
			fmt.Sprintf("listing is %.0f miles away, far from the loss vehicle", comp.DistanceFromLoss))
	case comp.DistanceFromLoss > moderateDistanceMi:
		addWarning(r, "distanceFromLoss",
			fmt.Sprintf("listing is %.0f miles away from the loss vehicle", comp.DistanceFromLoss))
	}

	if len(comp.Equipment) == 0 {
		addWarning(r, "equipment", "no equipment listed; scores may undervalue this comparable")
	} else if dup := firstDuplicate(comp.Equipment); dup != "" {
		addWarning(r, "equipment", fmt.Sprintf("duplicate equipment entry %q", dup))
	}
}

// checkAgainstLoss warns when the comparable drifts far from the loss vehicle.
func (e *Engine) checkAgainstLoss(comp *schema.ComparableVehicle, loss *schema.LossVehicle, r *schema.ValidationResult) {
	if gap := comp.Year - loss.Year; gap > lossYearGapWarn || gap < -lossYearGapWarn {
		addWarning(r, "year",
			fmt.Sprintf("year differs from the loss vehicle by more than %d years", lossYearGapWarn))
	}
	if !strings.EqualFold(strings.TrimSpace(comp.Make), strings.TrimSpace(loss.Make)) {
		addWarning(r, "make", fmt.Sprintf("make %q differs from the loss vehicle's %q", comp.Make, loss.Make))
	}
	if !strings.EqualFold(strings.TrimSpace(comp.Model), strings.TrimSpace(loss.Model)) {
		addWarning(r, "model", fmt.Sprintf("model %q differs from the loss vehicle's %q", comp.Model, loss.Model))
	}
	if loss.Mileage > 0 {
		ratio := math.Abs(float64(comp.Mileage-loss.Mileage)) / float64(loss.Mileage)
		if ratio > lossMileageGapRatio {
			addWarning(r, "mileage",
				fmt.Sprintf("mileage differs from the loss vehicle by %.0f%%", ratio*100))
		}
	}
}

// checkOutlier flags a comparable whose list price sits beyond two standard
// deviations from the set's mean. Requires a set of at least 3; with fewer,
// no outlier warning is ever emitted.
func (e *Engine) checkOutlier(comp *schema.ComparableVehicle, all []schema.ComparableVehicle, r *schema.ValidationResult) {
	prices := make([]float64, 0, len(all))
	for i := range all {
		prices = append(prices, all[i].ListPrice)
	}

	m := mean(prices)
	sd := stdDev(prices, m)
	if sd == 0 {
		return
	}
	if math.Abs(comp.ListPrice-m) > outlierStdDevMul*sd {
		addWarning(r, "listPrice",
			fmt.Sprintf("list price $%.2f is a statistical outlier (set mean $%.2f, std dev $%.2f)",
				comp.ListPrice, m, sd))
	}
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// firstDuplicate returns the first feature that appears more than once after
// normalization, or "" when there are none.
func firstDuplicate(features []string) string {
	seen := make(map[string]struct{}, len(features))
	for _, f := range schema.NormalizeEquipment(features) {
		if _, ok := seen[f]; ok {
			return f
		}
		seen[f] = struct{}{}
	}
	return ""
}

// mean returns the arithmetic mean of the values, 0 for an empty slice.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdDev returns the population standard deviation around the given mean.
func stdDev(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)))
}
