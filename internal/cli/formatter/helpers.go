package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/focusd/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// HumanDate returns a human-friendly absolute date string.
func HumanDate(t time.Time) string {
	now := time.Now()
	y1, m1, d1 := now.Date()
	y2, m2, d2 := t.Date()

	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "Today " + t.Format("15:04")
	}
	yesterday := now.AddDate(0, 0, -1)
	y3, m3, d3 := yesterday.Date()
	if y2 == y3 && m2 == m3 && d2 == d3 {
		return "Yesterday " + t.Format("15:04")
	}
	return t.Format("Jan 2, 2006 15:04")
}

// HumanTimestamp returns a human-friendly relative timestamp string.
func HumanTimestamp(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < 0:
		return HumanDate(t)
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return HumanDate(t)
	}
}

// FormatSeconds renders a second count as H:MM:SS, dimmed when zero.
func FormatSeconds(sec float64) string {
	if sec <= 0 {
		return StyleDim.Render("0:00:00")
	}
	return domain.FormatDuration(sec)
}

// ScoreBadge renders a productivity score like "72/100" with urgency coloring.
func ScoreBadge(score int) string {
	return ScoreStyle(score).Render(fmt.Sprintf("%d/100", score))
}

// Truncate shortens text to max visible characters with an ellipsis.
func Truncate(text string, max int) string {
	if max < 4 || len(text) <= max {
		return text
	}
	return text[:max-3] + "..."
}
