package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/focusd/internal/domain"
)

// FormatMetrics renders the live metrics block shown by the status command.
func FormatMetrics(m domain.ProductivityMetrics) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n\n", Dim("Session"), Bold(m.SessionID))
	fmt.Fprintf(&b, "%s  %s\n", Dim("Score      "), ScoreBadge(m.ProductivityScore))
	fmt.Fprintf(&b, "%s  %s\n", Dim("Focus      "), RenderProgress(m.FocusPercentage/100, 20))
	fmt.Fprintf(&b, "%s  %s focused, %s distracted\n", Dim("Classified "),
		FormatSeconds(m.FocusSeconds), FormatSeconds(m.DistractionSeconds))
	fmt.Fprintf(&b, "%s  %s\n", Dim("Elapsed    "), m.DurationFormatted)
	fmt.Fprintf(&b, "%s  %d (%.0f%% of expected cadence)", Dim("Check-ins  "),
		m.CheckInCount, m.CheckInCompliance)

	return b.String()
}

// FormatSession renders the full session detail view.
func FormatSession(sess *domain.Session) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s  %s\n", Dim("Session"), Bold(sess.ID), StatusPill(sess.Status))
	fmt.Fprintf(&b, "%s  %s\n", Dim("Started"), HumanDate(sess.StartTime))
	if sess.EndTime != nil {
		fmt.Fprintf(&b, "%s  %s\n", Dim("Ended  "), HumanDate(*sess.EndTime))
	}
	fmt.Fprintf(&b, "%s  %s\n", Dim("Length "), FormatSeconds(sess.Duration))
	fmt.Fprintf(&b, "%s  %s\n", Dim("Score  "), ScoreBadge(sess.ProductivityScore))

	var focus, distraction float64
	for _, iv := range sess.FocusPeriods {
		focus += iv.Duration
	}
	for _, iv := range sess.DistractionPeriods {
		distraction += iv.Duration
	}
	fmt.Fprintf(&b, "%s  %s across %d periods\n", Dim("Focus  "),
		FormatSeconds(focus), len(sess.FocusPeriods))
	fmt.Fprintf(&b, "%s  %s across %d periods\n", Dim("Distr. "),
		FormatSeconds(distraction), len(sess.DistractionPeriods))

	if len(sess.Tags) > 0 {
		fmt.Fprintf(&b, "%s  %s\n", Dim("Tags   "), StylePurple.Render(strings.Join(sess.Tags, ", ")))
	}
	if sess.Summary != "" {
		fmt.Fprintf(&b, "\n%s\n%s\n", Header("Summary"), sess.Summary)
	}
	if len(sess.CheckIns) > 0 {
		fmt.Fprintf(&b, "\n%s\n", Header("Check-ins"))
		for _, ci := range sess.CheckIns {
			line := fmt.Sprintf("%s  %s", ci.Timestamp.Format("15:04:05"), ci.Question)
			if ci.Response != "" {
				line += " " + Dim("→ "+Truncate(ci.Response, 60))
			}
			b.WriteString(line + "\n")
		}
	}
	if sess.Notes != "" {
		fmt.Fprintf(&b, "\n%s\n%s\n", Header("Notes"), sess.Notes)
	}

	return strings.TrimRight(b.String(), "\n")
}

// SessionRow flattens a session into the columns used by the list view.
func SessionRow(sess *domain.Session) []string {
	return []string{
		StyleDim.Render(sess.ID),
		HumanTimestamp(sess.StartTime),
		FormatSeconds(sess.Duration),
		ScoreBadge(sess.ProductivityScore),
		StatusPill(sess.Status),
		StylePurple.Render(strings.Join(sess.Tags, ",")),
	}
}
