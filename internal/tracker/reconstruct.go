package tracker

import (
	"time"

	"github.com/alexanderramin/focusd/internal/domain"
)

// ledgerState is the full set of derived aggregates a Tracker keeps
// alongside the session document.
type ledgerState struct {
	currentPeriodStart   time.Time
	isCurrentlyFocused   bool
	totalFocusTime       float64
	totalDistractionTime float64
	lastCheckInTime      time.Time
	lastActivityTime     time.Time
}

// reconstruct derives ledger state from a persisted session document in a
// single pure step. Totals are resummed from the interval history rather
// than trusted from any cached scalar; the focus flag compares end
// timestamps only when both interval sequences are non-empty, otherwise it
// keeps the focused default; the check-in clock continues from the last
// recorded check-in; the activity clock is not persisted and restarts at
// now, as does the open period.
func reconstruct(sess *domain.Session, now time.Time) ledgerState {
	state := ledgerState{
		currentPeriodStart: now,
		isCurrentlyFocused: true,
		lastCheckInTime:    now,
		lastActivityTime:   now,
	}

	for _, iv := range sess.FocusPeriods {
		state.totalFocusTime += iv.End.Sub(iv.Start).Seconds()
	}
	for _, iv := range sess.DistractionPeriods {
		state.totalDistractionTime += iv.End.Sub(iv.Start).Seconds()
	}

	if len(sess.FocusPeriods) > 0 && len(sess.DistractionPeriods) > 0 {
		lastFocus := sess.FocusPeriods[len(sess.FocusPeriods)-1].End
		lastDistraction := sess.DistractionPeriods[len(sess.DistractionPeriods)-1].End
		state.isCurrentlyFocused = lastFocus.After(lastDistraction)
	}

	if n := len(sess.CheckIns); n > 0 {
		state.lastCheckInTime = sess.CheckIns[n-1].Timestamp
	}
	return state
}
