package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestParseCondition tests condition parsing across case and whitespace variants.
func TestParseCondition(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Condition
		wantErr  bool
	}{
		{name: "canonical", input: "Good", expected: ConditionGood},
		{name: "lowercase", input: "excellent", expected: ConditionExcellent},
		{name: "uppercase", input: "SALVAGE", expected: ConditionSalvage},
		{name: "padded", input: "  Fair ", expected: ConditionFair},
		{name: "mixed case", input: "pOoR", expected: ConditionPoor},
		{name: "unknown", input: "Mint", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCondition(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// TestConditionRank verifies the total order over condition ranks.
func TestConditionRank(t *testing.T) {
	assert.Less(t, ConditionSalvage.Rank(), ConditionPoor.Rank())
	assert.Less(t, ConditionPoor.Rank(), ConditionFair.Rank())
	assert.Less(t, ConditionFair.Rank(), ConditionGood.Rank())
	assert.Less(t, ConditionGood.Rank(), ConditionExcellent.Rank())

	// Case variants rank the same as the canonical form.
	assert.Equal(t, ConditionGood.Rank(), Condition("good").Rank())
	assert.Equal(t, ConditionGood.Rank(), Condition(" GOOD ").Rank())

	// Unknown conditions fall back to the Fair rank.
	assert.Equal(t, ConditionFair.Rank(), Condition("Mint").Rank())
}

// TestConditionIsValid checks validity across casing.
func TestConditionIsValid(t *testing.T) {
	assert.True(t, ConditionExcellent.IsValid())
	assert.True(t, Condition("salvage").IsValid())
	assert.False(t, Condition("Mint").IsValid())
	assert.False(t, Condition("").IsValid())
}

// TestNormalizeEquipment checks trimming, lowercasing and empty handling.
func TestNormalizeEquipment(t *testing.T) {
	got := NormalizeEquipment([]string{" Navigation ", "SUNROOF", "", "  ", "Heated Seats"})
	assert.Equal(t, []string{"navigation", "sunroof", "heated seats"}, got)

	assert.Empty(t, NormalizeEquipment(nil))
}

// TestEquipmentSet checks set construction with duplicates collapsed.
func TestEquipmentSet(t *testing.T) {
	set := EquipmentSet([]string{"Navigation", "navigation", "Sunroof"})
	assert.Len(t, set, 2)
	assert.Contains(t, set, "navigation")
	assert.Contains(t, set, "sunroof")
}

// TestBreakdownScore covers the nil-receiver convenience accessor.
func TestBreakdownScore(t *testing.T) {
	var b *QualityScoreBreakdown
	assert.Zero(t, b.Score())

	b = &QualityScoreBreakdown{FinalScore: 87.5}
	assert.Equal(t, 87.5, b.Score())
}

// TestValidationResultHelpers covers error lookup helpers.
func TestValidationResultHelpers(t *testing.T) {
	r := &ValidationResult{
		IsValid: false,
		Errors: []ValidationIssue{
			{Field: "mileage", Severity: SeverityError, Message: "mileage cannot be negative"},
			{Field: "listPrice", Severity: SeverityError, Message: "list price too low"},
		},
	}
	assert.True(t, r.HasErrors())
	assert.Len(t, r.FieldErrors("mileage"), 1)
	assert.Empty(t, r.FieldErrors("year"))

	empty := &ValidationResult{IsValid: true}
	assert.False(t, empty.HasErrors())
}
