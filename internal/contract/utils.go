package contract

import (
	"os"

	"github.com/fatih/color"
)

// Percentile tier labels.
const (
	EliteValue   = "Elite"
	GreatValue   = "Great"
	AverageValue = "Average"
	WeakValue    = "Weak"
)

// Color variables for console output.
var (
	EliteColor   = color.New(color.FgRed, color.Bold)
	GreatColor   = color.New(color.FgMagenta, color.Bold)
	AverageColor = color.New(color.FgYellow)
	WeakColor    = color.New(color.FgCyan)
)

// GetPlainLabel returns the tier label for a percentile score. This is
// the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(score float64) string {
	switch {
	case score >= 90:
		return EliteValue
	case score >= 70:
		return GreatValue
	case score >= 40:
		return AverageValue
	default:
		return WeakValue
	}
}

// GetColorLabel returns a colored tier label for console output.
func GetColorLabel(score float64) string {
	text := GetPlainLabel(score)

	switch text {
	case EliteValue:
		return EliteColor.Sprint(text)
	case GreatValue:
		return GreatColor.Sprint(text)
	case AverageValue:
		return AverageColor.Sprint(text)
	default:
		return WeakColor.Sprint(text)
	}
}

// SelectOutputFile returns the file handle for output, defaulting to
// stdout when no path is configured.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}
