// Package output provides terminal formatting for the dashboard views.
package output

import (
	"os"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/FLFTraining/TLC-Dashboard/internal/dataset"
	"github.com/FLFTraining/TLC-Dashboard/internal/report"
)

// ANSI color codes
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	White  = "\033[37m"
)

var useColor = true

// DisableColor disables colored output.
func DisableColor() {
	useColor = false
}

// EnableColor enables colored output.
func EnableColor() {
	useColor = true
}

// IsColorEnabled returns whether color output is enabled.
func IsColorEnabled() bool {
	return useColor && isTerminal()
}

// isTerminal checks if stdout is a terminal.
func isTerminal() bool {
	info, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// Color applies a color to text if color is enabled.
func Color(text, color string) string {
	if !IsColorEnabled() {
		return text
	}
	return color + text + Reset
}

// TierColor returns the color of a compliance tier.
func TierColor(t report.Tier) string {
	switch t {
	case report.TierTop:
		return Green
	case report.TierMid:
		return Yellow
	case report.TierLow:
		return Red
	default:
		return Dim
	}
}

// StatusColor returns the color of an assignment status.
func StatusColor(s dataset.Status) string {
	switch s {
	case dataset.StatusCompleted:
		return Green
	case dataset.StatusInProgress:
		return Yellow
	case dataset.StatusNotStarted:
		return Red
	default:
		return White
	}
}

// FormatStatus colors an assignment status; an empty status shows the
// placeholder.
func FormatStatus(s dataset.Status, placeholder string) string {
	if s.IsEmpty() {
		return Color(placeholder, Dim)
	}
	return Color(s.String(), StatusColor(s))
}

// FormatRate formats a compliance rate as "66.7%", colored by tier.
func FormatRate(rate report.Metric, th report.Thresholds, placeholder string) string {
	if !rate.Valid {
		return Color(placeholder, Dim)
	}
	tier := report.ClassifyMetric(rate, th, report.Labels{}).Tier
	return Color(rate.Format(1, placeholder)+"%", TierColor(tier))
}

// FormatScore formats an average score with one decimal.
func FormatScore(score report.Metric, placeholder string) string {
	if !score.Valid {
		return Color(placeholder, Dim)
	}
	return score.Format(1, placeholder)
}

// FormatClassification colors a tier label.
func FormatClassification(c report.Classification, placeholder string) string {
	if c.Tier == report.TierNone {
		return Color(placeholder, Dim)
	}
	return Color(c.Label, TierColor(c.Tier))
}

// ProgressBar draws a rate as a bar of the given width, colored by tier.
func ProgressBar(rate report.Metric, width int, th report.Thresholds) string {
	if !rate.Valid {
		return Color("["+strings.Repeat("░", width)+"]", Dim)
	}

	filled := int(rate.Value / 100.0 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	tier := report.ClassifyMetric(rate, th, report.Labels{}).Tier
	return Color("["+bar+"]", TierColor(tier))
}

// Header creates a formatted header line.
func Header(text string, width int) string {
	return Color(rule(text, width, "="), Bold)
}

// SubHeader creates a formatted subheader line.
func SubHeader(text string, width int) string {
	return Color(rule(text, width, "-"), Dim)
}

func rule(text string, width int, fill string) string {
	padding := (width - runewidth.StringWidth(text) - 2) / 2
	if padding < 0 {
		padding = 0
	}
	line := strings.Repeat(fill, padding) + " " + text + " " + strings.Repeat(fill, padding)
	for runewidth.StringWidth(line) < width {
		line += fill
	}
	return line
}

// Checkmark returns a colored checkmark or X.
func Checkmark(ok bool) string {
	if ok {
		return Color("✓", Green)
	}
	return Color("✗", Red)
}

// Truncate shortens text to a display width with an ellipsis.
func Truncate(text string, maxWidth int) string {
	if runewidth.StringWidth(text) <= maxWidth {
		return text
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(text, maxWidth, "")
	}
	return runewidth.Truncate(text, maxWidth, "...")
}
