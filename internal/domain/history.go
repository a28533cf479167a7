package domain

import "time"

// HistoryEntry is the flattened index row recorded for a completed
// session, backing the history views and aggregate stats.
type HistoryEntry struct {
	SessionID          string
	StartTime          time.Time
	EndTime            time.Time
	DurationSeconds    float64
	FocusSeconds       float64
	DistractionSeconds float64
	ProductivityScore  int
	CheckInCount       int
	Tags               []string
	Summary            string
	RecordedAt         time.Time
}

// HistoryStats aggregates recorded sessions.
type HistoryStats struct {
	TotalSessions     int
	TotalFocusSeconds float64
	TotalDistraction  float64
	AverageScore      float64
	AverageFocusShare float64
}

// HistoryFromSession flattens a session document into an index entry.
// Focus and distraction totals are summed from the interval history.
func HistoryFromSession(sess *Session) HistoryEntry {
	var focus, distraction float64
	for _, iv := range sess.FocusPeriods {
		focus += iv.Duration
	}
	for _, iv := range sess.DistractionPeriods {
		distraction += iv.Duration
	}

	end := sess.StartTime
	if sess.EndTime != nil {
		end = *sess.EndTime
	}
	return HistoryEntry{
		SessionID:          sess.ID,
		StartTime:          sess.StartTime,
		EndTime:            end,
		DurationSeconds:    sess.Duration,
		FocusSeconds:       focus,
		DistractionSeconds: distraction,
		ProductivityScore:  sess.ProductivityScore,
		CheckInCount:       len(sess.CheckIns),
		Tags:               append([]string(nil), sess.Tags...),
		Summary:            sess.Summary,
	}
}
