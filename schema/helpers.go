package schema

import (
	"fmt"
	"strings"
)

// ParseCondition resolves a free-form condition string to a Condition rank.
// Reports vary in casing ("good", "GOOD", " Good "), so the match is
// case-insensitive and whitespace-trimmed.
func ParseCondition(s string) (Condition, error) {
	trimmed := strings.TrimSpace(s)
	for _, c := range AllConditions {
		if strings.EqualFold(trimmed, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown condition %q: must be one of Salvage, Poor, Fair, Good, Excellent", s)
}

// Rank returns the condition's position in the Salvage < Poor < Fair < Good <
// Excellent order. Unknown conditions rank as Fair so that a malformed value
// produces a neutral adjustment rather than a panic.
func (c Condition) Rank() int {
	if r, ok := conditionRanks[normalizeCondition(c)]; ok {
		return r
	}
	return conditionRanks[ConditionFair]
}

// IsValid reports whether the condition is a known rank, ignoring case.
func (c Condition) IsValid() bool {
	_, ok := conditionRanks[normalizeCondition(c)]
	return ok
}

// normalizeCondition maps case variants onto the canonical constants.
func normalizeCondition(c Condition) Condition {
	trimmed := strings.TrimSpace(string(c))
	for canonical := range conditionRanks {
		if strings.EqualFold(trimmed, string(canonical)) {
			return canonical
		}
	}
	return Condition(trimmed)
}

// NormalizeEquipment lowercases and trims feature names, dropping empties.
// Duplicates are preserved; set semantics are applied by the callers that
// need them.
func NormalizeEquipment(features []string) []string {
	out := make([]string, 0, len(features))
	for _, f := range features {
		name := strings.ToLower(strings.TrimSpace(f))
		if name == "" {
			continue
		}
		out = append(out, name)
	}
	return out
}

// EquipmentSet builds a set of normalized feature names from a list.
func EquipmentSet(features []string) map[string]struct{} {
	set := make(map[string]struct{}, len(features))
	for _, f := range NormalizeEquipment(features) {
		set[f] = struct{}{}
	}
	return set
}

// Score returns the final quality score recorded in the breakdown.
func (b *QualityScoreBreakdown) Score() float64 {
	if b == nil {
		return 0
	}
	return b.FinalScore
}

// HasErrors reports whether any blocking issues were found.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// FieldErrors returns the blocking issues attributed to the given field.
func (r *ValidationResult) FieldErrors(field string) []ValidationIssue {
	var out []ValidationIssue
	for _, issue := range r.Errors {
		if issue.Field == field {
			out = append(out, issue)
		}
	}
	return out
}
