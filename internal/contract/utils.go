package contract

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Confidence label constants.
const (
	HighConfidence     = "High"     // Strong evidence base
	ModerateConfidence = "Moderate" // Usable but thin evidence
	LowConfidence      = "Low"      // Result should be treated with caution
)

// Color variables for console output.
var (
	HighColor     = color.New(color.FgGreen, color.Bold) // solid, trustworthy result
	ModerateColor = color.New(color.FgYellow)            // standard caution
	LowColor      = color.New(color.FgRed, color.Bold)   // weak evidence, review needed
)

// GetPlainConfidenceLabel returns a plain text label for a confidence level.
// This is the core logic used for CSV, JSON and table printing.
func GetPlainConfidenceLabel(confidence float64) string {
	switch {
	case confidence >= 75:
		return HighConfidence
	case confidence >= 50:
		return ModerateConfidence
	default:
		return LowConfidence
	}
}

// GetColorConfidenceLabel returns a colored label for console tables. It uses
// GetPlainConfidenceLabel and applies the matching color.
func GetColorConfidenceLabel(confidence float64) string {
	text := GetPlainConfidenceLabel(confidence)

	switch text {
	case HighConfidence:
		return HighColor.Sprint(text)
	case ModerateConfidence:
		return ModerateColor.Sprint(text)
	default: // "Low"
		return LowColor.Sprint(text)
	}
}

// TruncateLabel truncates a display label to a maximum width with an ellipsis
// suffix. Labels at or under the width pass through unchanged.
func TruncateLabel(label string, maxWidth int) string {
	runes := []rune(label)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return label
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. An empty path means stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "❌ %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarning logs a warning to stderr.
func LogWarning(msg string) {
	fmt.Fprintf(os.Stderr, "⚠️  %s\n", msg)
}
