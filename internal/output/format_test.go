package output

import (
	"strings"
	"testing"

	"github.com/FLFTraining/TLC-Dashboard/internal/dataset"
	"github.com/FLFTraining/TLC-Dashboard/internal/report"
)

func TestTierColor(t *testing.T) {
	tests := []struct {
		tier     report.Tier
		expected string
	}{
		{report.TierTop, Green},
		{report.TierMid, Yellow},
		{report.TierLow, Red},
		{report.TierNone, Dim},
	}

	for _, tt := range tests {
		if got := TierColor(tt.tier); got != tt.expected {
			t.Errorf("TierColor(%s) = %q, want %q", tt.tier, got, tt.expected)
		}
	}
}

func TestStatusColor(t *testing.T) {
	tests := []struct {
		status   dataset.Status
		expected string
	}{
		{dataset.StatusCompleted, Green},
		{dataset.StatusInProgress, Yellow},
		{dataset.StatusNotStarted, Red},
		{"Withdrawn", White},
	}

	for _, tt := range tests {
		if got := StatusColor(tt.status); got != tt.expected {
			t.Errorf("StatusColor(%q) = %q, want %q", tt.status, got, tt.expected)
		}
	}
}

func TestFormatRate(t *testing.T) {
	DisableColor()
	defer EnableColor()

	th := report.DefaultThresholds()
	tests := []struct {
		rate     report.Metric
		expected string
	}{
		{report.Percent(2, 3), "66.7%"},
		{report.Percent(4, 4), "100.0%"},
		{report.Percent(0, 3), "0.0%"},
		{report.Undefined(), "—"},
	}

	for _, tt := range tests {
		if got := FormatRate(tt.rate, th, report.Placeholder); got != tt.expected {
			t.Errorf("FormatRate(%v) = %q, want %q", tt.rate, got, tt.expected)
		}
	}
}

func TestFormatScoreAndStatus(t *testing.T) {
	DisableColor()
	defer EnableColor()

	if got := FormatScore(report.Defined(85), "n/a"); got != "85.0" {
		t.Errorf("FormatScore = %q, want 85.0", got)
	}
	if got := FormatScore(report.Undefined(), "n/a"); got != "n/a" {
		t.Errorf("FormatScore(undefined) = %q, want n/a", got)
	}
	if got := FormatStatus("", "-"); got != "-" {
		t.Errorf("FormatStatus(empty) = %q, want -", got)
	}
	if got := FormatStatus(dataset.StatusInProgress, "-"); got != "In Progress" {
		t.Errorf("FormatStatus = %q, want In Progress", got)
	}

	c := report.Classify(40, report.DefaultThresholds(), report.CourseLabels)
	if got := FormatClassification(c, "-"); got != "Needs Attention" {
		t.Errorf("FormatClassification = %q", got)
	}
	if got := FormatClassification(report.Classification{}, "-"); got != "-" {
		t.Errorf("FormatClassification(none) = %q, want -", got)
	}
}

func TestProgressBar(t *testing.T) {
	DisableColor()
	defer EnableColor()

	th := report.DefaultThresholds()
	tests := []struct {
		rate   report.Metric
		filled int
	}{
		{report.Defined(100), 10},
		{report.Defined(50), 5},
		{report.Defined(0), 0},
		{report.Defined(150), 10},
		{report.Undefined(), 0},
	}

	for _, tt := range tests {
		bar := ProgressBar(tt.rate, 10, th)
		if !strings.HasPrefix(bar, "[") || !strings.HasSuffix(bar, "]") {
			t.Errorf("ProgressBar(%v) = %q, want brackets", tt.rate, bar)
		}
		if got := strings.Count(bar, "█"); got != tt.filled {
			t.Errorf("ProgressBar(%v) filled %d, want %d", tt.rate, got, tt.filled)
		}
		if got := strings.Count(bar, "█") + strings.Count(bar, "░"); got != 10 {
			t.Errorf("ProgressBar(%v) width %d, want 10", tt.rate, got)
		}
	}
}

func TestHeader(t *testing.T) {
	DisableColor()
	defer EnableColor()

	h := Header("Summary", 30)
	if displayWidth(h) != 30 {
		t.Errorf("Header width = %d, want 30: %q", displayWidth(h), h)
	}
	if !strings.Contains(h, " Summary ") {
		t.Errorf("Header missing title: %q", h)
	}

	s := SubHeader("Courses", 21)
	if displayWidth(s) != 21 || !strings.HasPrefix(s, "-") {
		t.Errorf("SubHeader = %q", s)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input    string
		maxWidth int
		expected string
	}{
		{"Legal", 10, "Legal"},
		{"Continuing Education", 10, "Continu..."},
		{"abcd", 3, "abc"},
	}

	for _, tt := range tests {
		if got := Truncate(tt.input, tt.maxWidth); got != tt.expected {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.expected)
		}
	}
}
