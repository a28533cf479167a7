package domain

import (
	"fmt"
	"math"
	"strings"
)

// ProductivityMetrics is the read-only metric view of a session, computable
// at any point while active or after close.
type ProductivityMetrics struct {
	SessionID            string  `json:"session_id"`
	DurationSeconds      float64 `json:"duration_seconds"`
	DurationFormatted    string  `json:"duration_formatted"`
	FocusSeconds         float64 `json:"focus_time_seconds"`
	FocusFormatted       string  `json:"focus_time_formatted"`
	DistractionSeconds   float64 `json:"distraction_time_seconds"`
	DistractionFormatted string  `json:"distraction_time_formatted"`
	FocusPercentage      float64 `json:"focus_percentage"`
	ProductivityScore    int     `json:"productivity_score"`
	CheckInCount         int     `json:"check_in_count"`
	CheckInCompliance    float64 `json:"check_in_compliance"`
}

// Score computes the 0-100 productivity score: the focused share of
// classified time, discounted by how much of the default session length
// has elapsed. Short sessions score low even when fully focused.
func Score(focusSec, distractionSec, durationSec, defaultDurationSec float64) int {
	total := focusSec + distractionSec
	if total <= 0 {
		return 0
	}
	base := focusSec / total * 100

	factor := 1.0
	if defaultDurationSec > 0 {
		factor = math.Min(1.0, durationSec/defaultDurationSec)
	}
	return int(math.Round(base * factor))
}

// FocusPercentage returns focus time as a percentage of classified time,
// 0 when nothing has been classified yet.
func FocusPercentage(focusSec, distractionSec float64) float64 {
	total := focusSec + distractionSec
	if total <= 0 {
		return 0
	}
	return focusSec / total * 100
}

// ExpectedCheckIns returns how many check-ins a session of the given
// duration should have seen, never less than one.
func ExpectedCheckIns(durationSec, checkInIntervalSec float64) int {
	if checkInIntervalSec <= 0 {
		return 1
	}
	n := int(durationSec / checkInIntervalSec)
	if n < 1 {
		return 1
	}
	return n
}

// CheckInCompliance returns actual/expected check-ins as a percentage,
// clamped to 100.
func CheckInCompliance(actual int, durationSec, checkInIntervalSec float64) float64 {
	expected := ExpectedCheckIns(durationSec, checkInIntervalSec)
	compliance := float64(actual) / float64(expected) * 100
	return math.Min(100, compliance)
}

// FormatDuration renders whole seconds as H:MM:SS.
func FormatDuration(seconds float64) string {
	s := int(seconds)
	if s < 0 {
		s = 0
	}
	return fmt.Sprintf("%d:%02d:%02d", s/3600, (s%3600)/60, s%60)
}

// AutoSummary builds the single-sentence close summary used when the caller
// supplies none.
func AutoSummary(m ProductivityMetrics, tags []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Focus session completed with a productivity score of %d/100. ", m.ProductivityScore)
	fmt.Fprintf(&b, "Duration: %s. ", m.DurationFormatted)
	fmt.Fprintf(&b, "Time spent focused: %s (%.1f%%). ", m.FocusFormatted, m.FocusPercentage)
	if len(tags) > 0 {
		fmt.Fprintf(&b, "Tags: %s.", strings.Join(tags, ", "))
	}
	return strings.TrimSpace(b.String())
}
