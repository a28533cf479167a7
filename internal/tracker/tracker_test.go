package tracker

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/focusd/internal/domain"
	"github.com/alexanderramin/focusd/internal/store"
	"github.com/alexanderramin/focusd/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func newTestTracker(t *testing.T) (*Tracker, *store.FileStore, *testutil.Clock) {
	t.Helper()
	st := store.NewFileStore(filepath.Join(t.TempDir(), "sessions"))
	clock := testutil.NewClock(t0)
	cfg := Config{
		CheckInInterval:        2 * time.Minute,
		DefaultSessionDuration: 2 * time.Hour,
		Now:                    clock.Now,
	}
	tr, err := Open(st, cfg, "")
	require.NoError(t, err)
	return tr, st, clock
}

func TestOpen_PersistsActiveSession(t *testing.T) {
	tr, st, _ := newTestTracker(t)

	sess, err := st.Load(tr.SessionID())
	require.NoError(t, err)
	assert.Equal(t, domain.SessionActive, sess.Status)
	assert.True(t, sess.StartTime.Equal(t0))
	assert.Empty(t, sess.FocusPeriods)
	assert.Empty(t, sess.DistractionPeriods)
}

func TestRecordClassification_IntervalStateMachine(t *testing.T) {
	tr, _, clock := newTestTracker(t)

	// Matching verdict extends the open focus period, no interval stored.
	clock.Set(t0.Add(10 * time.Second))
	require.NoError(t, tr.RecordClassification(testutil.NewTestResult(true, clock.Now())))
	assert.Empty(t, tr.Session().FocusPeriods)

	// Flip to distracted at +40s closes the focus period T0 -> T0+40s.
	clock.Set(t0.Add(40 * time.Second))
	require.NoError(t, tr.RecordClassification(testutil.NewTestResult(false, clock.Now())))

	// Flip back to focused at +90s closes the distraction period.
	clock.Set(t0.Add(90 * time.Second))
	require.NoError(t, tr.RecordClassification(testutil.NewTestResult(true, clock.Now())))

	// Close at +120s shuts the final focus period.
	clock.Set(t0.Add(120 * time.Second))
	final, err := tr.Close("")
	require.NoError(t, err)

	require.Len(t, final.FocusPeriods, 2)
	require.Len(t, final.DistractionPeriods, 1)
	assert.Equal(t, 40.0, final.FocusPeriods[0].Duration)
	assert.Equal(t, 50.0, final.DistractionPeriods[0].Duration)
	assert.Equal(t, 30.0, final.FocusPeriods[1].Duration)

	m := tr.Metrics()
	assert.Equal(t, 70.0, m.FocusSeconds)
	assert.Equal(t, 50.0, m.DistractionSeconds)
	assert.InDelta(t, 58.3, m.FocusPercentage, 0.05)

	// Interval durations sum exactly to the closed session duration.
	var total float64
	for _, iv := range final.FocusPeriods {
		total += iv.Duration
	}
	for _, iv := range final.DistractionPeriods {
		total += iv.Duration
	}
	assert.Equal(t, final.Duration, total)
}

func TestRecordClassification_AtMostOneOpenPeriod(t *testing.T) {
	tr, _, clock := newTestTracker(t)

	verdicts := []bool{true, false, false, true, false, true, true}
	for i, v := range verdicts {
		clock.Set(t0.Add(time.Duration(i+1) * 15 * time.Second))
		require.NoError(t, tr.RecordClassification(testutil.NewTestResult(v, clock.Now())))

		// Every persisted interval is closed; the open one is implicit.
		sess := tr.Session()
		for _, iv := range sess.FocusPeriods {
			assert.False(t, iv.End.IsZero())
		}
		for _, iv := range sess.DistractionPeriods {
			assert.False(t, iv.End.IsZero())
		}
	}
}

func TestRecordClassification_CompletedSessionRejected(t *testing.T) {
	tr, _, clock := newTestTracker(t)
	clock.Advance(time.Minute)
	_, err := tr.Close("")
	require.NoError(t, err)

	err = tr.RecordClassification(testutil.NewTestResult(true, clock.Now()))
	assert.ErrorIs(t, err, ErrSessionCompleted)
}

func TestCompletedSessionRejectsAllMutations(t *testing.T) {
	tr, _, clock := newTestTracker(t)
	clock.Advance(time.Minute)
	_, err := tr.Close("")
	require.NoError(t, err)

	assert.ErrorIs(t, tr.AddCheckIn(domain.CheckIn{Question: "q"}), ErrSessionCompleted)
	assert.ErrorIs(t, tr.AddTag("late"), ErrSessionCompleted)
	assert.ErrorIs(t, tr.AddNote("late note"), ErrSessionCompleted)
}

func TestRecordClassification_ArchiveFailureIsNonFatal(t *testing.T) {
	st := store.NewFileStore(filepath.Join(t.TempDir(), "sessions"))
	failing := &testutil.FailingStore{Store: st, FailArchive: true}
	clock := testutil.NewClock(t0)
	tr, err := Open(failing, Config{
		CheckInInterval:        time.Minute,
		DefaultSessionDuration: time.Hour,
		Now:                    clock.Now,
	}, "")
	require.NoError(t, err)

	clock.Advance(30 * time.Second)
	require.NoError(t, tr.RecordClassification(testutil.NewTestResult(false, clock.Now())))
	assert.Len(t, tr.Session().FocusPeriods, 1)
}

func TestRecordClassification_SaveFailureRollsBack(t *testing.T) {
	st := store.NewFileStore(filepath.Join(t.TempDir(), "sessions"))
	failing := &testutil.FailingStore{Store: st}
	clock := testutil.NewClock(t0)
	tr, err := Open(failing, Config{
		CheckInInterval:        time.Minute,
		DefaultSessionDuration: time.Hour,
		Now:                    clock.Now,
	}, "")
	require.NoError(t, err)

	failing.FailSave = true
	clock.Advance(30 * time.Second)
	err = tr.RecordClassification(testutil.NewTestResult(false, clock.Now()))
	require.Error(t, err)

	// The flip was rolled back: recording the same verdict later still
	// closes the original focus period from the session start.
	failing.FailSave = false
	clock.Set(t0.Add(60 * time.Second))
	require.NoError(t, tr.RecordClassification(testutil.NewTestResult(false, clock.Now())))

	sess := tr.Session()
	require.Len(t, sess.FocusPeriods, 1)
	assert.True(t, sess.FocusPeriods[0].Start.Equal(t0))
	assert.Equal(t, 60.0, sess.FocusPeriods[0].Duration)
}

func TestClose_AlreadyCompleted(t *testing.T) {
	tr, _, clock := newTestTracker(t)
	clock.Advance(time.Minute)
	_, err := tr.Close("done")
	require.NoError(t, err)

	_, err = tr.Close("again")
	assert.ErrorIs(t, err, ErrSessionCompleted)
}

func TestClose_ShortSessionScorePenalty(t *testing.T) {
	tr, _, clock := newTestTracker(t)

	// Fully focused for 60s against a 7200s default duration.
	clock.Set(t0.Add(60 * time.Second))
	final, err := tr.Close("")
	require.NoError(t, err)
	assert.Equal(t, 1, final.ProductivityScore)
}

func TestClose_AutoSummary(t *testing.T) {
	tr, _, clock := newTestTracker(t)
	require.NoError(t, tr.AddTag("deep-work"))

	clock.Set(t0.Add(30 * time.Minute))
	final, err := tr.Close("")
	require.NoError(t, err)
	assert.Contains(t, final.Summary, "Focus session completed")
	assert.Contains(t, final.Summary, "Tags: deep-work.")
	assert.Equal(t, domain.SessionCompleted, final.Status)
	require.NotNil(t, final.EndTime)
	assert.Equal(t, 1800.0, final.Duration)
}

func TestClose_ExplicitSummaryWins(t *testing.T) {
	tr, _, clock := newTestTracker(t)
	clock.Advance(time.Minute)
	final, err := tr.Close("wrote the intro chapter")
	require.NoError(t, err)
	assert.Equal(t, "wrote the intro chapter", final.Summary)
}

func TestAddTag_DuplicateIsNoOp(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	require.NoError(t, tr.AddTag("go"))
	require.NoError(t, tr.AddTag("go"))
	assert.Equal(t, []string{"go"}, tr.Session().Tags)
}

func TestAddNote_AppendsTimestamped(t *testing.T) {
	tr, _, clock := newTestTracker(t)
	require.NoError(t, tr.AddNote("starting on the parser"))
	clock.Advance(5 * time.Minute)
	require.NoError(t, tr.AddNote("parser done"))

	notes := tr.Session().Notes
	assert.Contains(t, notes, "starting on the parser")
	assert.Contains(t, notes, "parser done")
	assert.Contains(t, notes, "[2025-06-01T09:00:00Z]")
}

func TestCheckInCadence(t *testing.T) {
	tr, _, clock := newTestTracker(t)
	assert.False(t, tr.ShouldCheckIn())

	clock.Advance(2 * time.Minute)
	assert.True(t, tr.ShouldCheckIn())

	require.NoError(t, tr.AddCheckIn(domain.CheckIn{
		Kind:     domain.CheckInAutomatic,
		Question: "How's your progress?",
	}))
	assert.False(t, tr.ShouldCheckIn())

	sess := tr.Session()
	require.Len(t, sess.CheckIns, 1)
	assert.NotEmpty(t, sess.CheckIns[0].ID)
	assert.True(t, sess.CheckIns[0].Timestamp.Equal(clock.Now()))
}

func TestMetrics_CheckInCompliance(t *testing.T) {
	tr, _, clock := newTestTracker(t)

	// 600s session with 120s cadence and 2 check-ins -> 40% compliance.
	require.NoError(t, tr.AddCheckIn(domain.CheckIn{Question: "q1"}))
	clock.Advance(5 * time.Minute)
	require.NoError(t, tr.AddCheckIn(domain.CheckIn{Question: "q2"}))
	clock.Set(t0.Add(600 * time.Second))

	m := tr.Metrics()
	assert.Equal(t, 2, m.CheckInCount)
	assert.Equal(t, 40.0, m.CheckInCompliance)
	assert.Equal(t, 600.0, m.DurationSeconds)
}

func TestIsInactive(t *testing.T) {
	tr, _, clock := newTestTracker(t)
	assert.False(t, tr.IsInactive(5*time.Minute))

	clock.Advance(5 * time.Minute)
	assert.True(t, tr.IsInactive(5*time.Minute))

	// Activity resets on classification.
	require.NoError(t, tr.RecordClassification(testutil.NewTestResult(true, clock.Now())))
	assert.False(t, tr.IsInactive(5*time.Minute))
}

func TestResume_ReconstructsAggregates(t *testing.T) {
	tr, st, clock := newTestTracker(t)

	clock.Set(t0.Add(40 * time.Second))
	require.NoError(t, tr.RecordClassification(testutil.NewTestResult(false, clock.Now())))
	clock.Set(t0.Add(90 * time.Second))
	require.NoError(t, tr.RecordClassification(testutil.NewTestResult(true, clock.Now())))
	require.NoError(t, tr.AddCheckIn(domain.CheckIn{Question: "q"}))

	resumeAt := t0.Add(10 * time.Minute)
	resumed, err := Resume(st, Config{
		CheckInInterval:        2 * time.Minute,
		DefaultSessionDuration: 2 * time.Hour,
		Now:                    testutil.NewClock(resumeAt).Now,
	}, tr.SessionID())
	require.NoError(t, err)

	assert.Equal(t, 40.0, resumed.totalFocusTime)
	assert.Equal(t, 50.0, resumed.totalDistractionTime)
	assert.True(t, resumed.isCurrentlyFocused)
	// Check-in clock continues from history; activity clock resets.
	assert.True(t, resumed.lastCheckInTime.Equal(t0.Add(90*time.Second)))
	assert.True(t, resumed.lastActivityTime.Equal(resumeAt))
	assert.True(t, resumed.currentPeriodStart.Equal(resumeAt))
}

func TestResume_ScoreRecomputableFromIntervalsAlone(t *testing.T) {
	tr, st, clock := newTestTracker(t)

	clock.Set(t0.Add(40 * time.Second))
	require.NoError(t, tr.RecordClassification(testutil.NewTestResult(false, clock.Now())))
	clock.Set(t0.Add(120 * time.Second))
	final, err := tr.Close("")
	require.NoError(t, err)

	resumed, err := Resume(st, Config{
		CheckInInterval:        2 * time.Minute,
		DefaultSessionDuration: 2 * time.Hour,
	}, tr.SessionID())
	require.NoError(t, err)

	score := domain.Score(resumed.totalFocusTime, resumed.totalDistractionTime,
		final.Duration, (2 * time.Hour).Seconds())
	assert.Equal(t, final.ProductivityScore, score)
}

func TestResume_NotFound(t *testing.T) {
	st := store.NewFileStore(t.TempDir())
	_, err := Resume(st, Config{}, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestReconstruct_EmptyDistractionsDefaultsFocused(t *testing.T) {
	sess := domain.NewSession("x", t0)
	sess.FocusPeriods = append(sess.FocusPeriods, domain.Interval{
		Start: t0, End: t0.Add(time.Minute), Duration: 60,
	})
	state := reconstruct(sess, t0.Add(time.Hour))
	assert.True(t, state.isCurrentlyFocused)
	assert.Equal(t, 60.0, state.totalFocusTime)
}

func TestReconstruct_LastIntervalKindWins(t *testing.T) {
	sess := domain.NewSession("x", t0)
	sess.FocusPeriods = append(sess.FocusPeriods, domain.Interval{
		Start: t0, End: t0.Add(time.Minute),
	})
	sess.DistractionPeriods = append(sess.DistractionPeriods, domain.Interval{
		Start: t0.Add(time.Minute), End: t0.Add(2 * time.Minute),
	})
	state := reconstruct(sess, t0.Add(time.Hour))
	assert.False(t, state.isCurrentlyFocused)
}

func TestReconstruct_OnlyDistractions(t *testing.T) {
	sess := domain.NewSession("x", t0)
	sess.DistractionPeriods = append(sess.DistractionPeriods, domain.Interval{
		Start: t0, End: t0.Add(time.Minute),
	})
	state := reconstruct(sess, t0.Add(time.Hour))
	// An empty focus sequence keeps the focused default; end timestamps
	// are compared only when both sequences are non-empty.
	assert.True(t, state.isCurrentlyFocused)
	assert.Equal(t, 60.0, state.totalDistractionTime)
}
