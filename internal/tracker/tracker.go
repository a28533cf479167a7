package tracker

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/alexanderramin/focusd/internal/domain"
	"github.com/alexanderramin/focusd/internal/store"
	"github.com/google/uuid"
)

// Config carries the tracking cadence values plus the injected clock and
// log sink. Zero values fall back to time.Now and a discarded log.
type Config struct {
	CheckInInterval        time.Duration
	DefaultSessionDuration time.Duration
	Now                    func() time.Time
	LogWriter              io.Writer
}

func (c Config) clock() func() time.Time {
	if c.Now != nil {
		return c.Now
	}
	return time.Now
}

func (c Config) logWriter() io.Writer {
	if c.LogWriter != nil {
		return c.LogWriter
	}
	return io.Discard
}

// Tracker owns one session and serializes every mutation behind its lock:
// interval close/open, score recompute, and persist form a single critical
// section per call. Read operations work on deep copies.
type Tracker struct {
	mu   sync.Mutex
	st   store.Store
	cfg  Config
	now  func() time.Time
	logw io.Writer

	sess *domain.Session

	// Implicit open-interval state; becomes a stored Interval only when a
	// classification flips the focus flag or the session closes.
	currentPeriodStart   time.Time
	isCurrentlyFocused   bool
	totalFocusTime       float64
	totalDistractionTime float64
	lastCheckInTime      time.Time
	lastActivityTime     time.Time
}

// Open creates a new active session and persists it immediately. The
// session starts focused, with an implicit open focus period beginning at
// the start time. An empty id yields a timestamp-derived one.
func Open(st store.Store, cfg Config, id string) (*Tracker, error) {
	t := &Tracker{st: st, cfg: cfg, now: cfg.clock(), logw: cfg.logWriter()}
	start := t.now()
	t.sess = domain.NewSession(id, start)
	t.currentPeriodStart = start
	t.isCurrentlyFocused = true
	t.lastCheckInTime = start
	t.lastActivityTime = start

	if err := st.Save(t.sess); err != nil {
		return nil, fmt.Errorf("persisting new session: %w", err)
	}
	return t, nil
}

// Resume loads a persisted session and reconstructs the in-memory
// aggregates from its document in one step. The inactivity clock resets to
// the resume time, and a fresh open period starts now.
func Resume(st store.Store, cfg Config, id string) (*Tracker, error) {
	sess, err := st.Load(id)
	if err != nil {
		return nil, err
	}

	t := &Tracker{st: st, cfg: cfg, now: cfg.clock(), logw: cfg.logWriter()}
	state := reconstruct(sess, t.now())
	t.sess = sess
	t.currentPeriodStart = state.currentPeriodStart
	t.isCurrentlyFocused = state.isCurrentlyFocused
	t.totalFocusTime = state.totalFocusTime
	t.totalDistractionTime = state.totalDistractionTime
	t.lastCheckInTime = state.lastCheckInTime
	t.lastActivityTime = state.lastActivityTime
	return t, nil
}

// SessionID returns the tracked session's ID.
func (t *Tracker) SessionID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sess.ID
}

// StartTime returns when the tracked session began.
func (t *Tracker) StartTime() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sess.StartTime
}

// Session returns a deep copy of the current session document.
func (t *Tracker) Session() *domain.Session {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sess.Clone()
}

// RecordClassification folds one classification verdict into the interval
// state machine. A verdict matching the current state extends the open
// period; a flip closes it at the result's timestamp and opens the
// opposite kind. The raw result is archived first; archive failure is
// logged and does not block the state update. The updated session is
// persisted; on persist failure the in-memory state is rolled back.
func (t *Tracker) RecordClassification(res *domain.ClassificationResult) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.sess.Status == domain.SessionCompleted {
		return fmt.Errorf("recording classification: %w", ErrSessionCompleted)
	}

	if err := t.st.ArchiveClassification(t.sess.ID, res); err != nil {
		fmt.Fprintf(t.logw, "focusd: archiving classification for %s: %v\n", t.sess.ID, err)
	}

	ts := res.Timestamp
	if ts.IsZero() {
		ts = t.now()
	}

	prev := t.checkpoint()

	if res.IsProductive != t.isCurrentlyFocused {
		t.closeOpenPeriod(ts)
		t.isCurrentlyFocused = res.IsProductive
		t.currentPeriodStart = ts
	}
	t.lastActivityTime = ts
	t.updateScore(t.now())

	if err := t.st.Save(t.sess); err != nil {
		t.restore(prev)
		return fmt.Errorf("persisting session: %w", err)
	}
	return nil
}

// AddCheckIn appends a check-in and resets the check-in clock.
func (t *Tracker) AddCheckIn(ci domain.CheckIn) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.sess.Status == domain.SessionCompleted {
		return fmt.Errorf("adding check-in: %w", ErrSessionCompleted)
	}

	now := t.now()
	if ci.Timestamp.IsZero() {
		ci.Timestamp = now
	}
	if ci.ID == "" {
		ci.ID = uuid.New().String()
	}
	if ci.Kind == "" {
		ci.Kind = domain.CheckInManual
	}

	prev := t.checkpoint()
	t.sess.CheckIns = append(t.sess.CheckIns, ci)
	t.lastCheckInTime = now

	if err := t.st.Save(t.sess); err != nil {
		t.restore(prev)
		return fmt.Errorf("persisting session: %w", err)
	}
	return nil
}

// AddTag adds a tag to the session. Re-adding an existing tag is a no-op.
func (t *Tracker) AddTag(tag string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.sess.Status == domain.SessionCompleted {
		return fmt.Errorf("adding tag: %w", ErrSessionCompleted)
	}
	if t.sess.HasTag(tag) {
		return nil
	}

	prev := t.checkpoint()
	t.sess.Tags = append(t.sess.Tags, tag)

	if err := t.st.Save(t.sess); err != nil {
		t.restore(prev)
		return fmt.Errorf("persisting session: %w", err)
	}
	return nil
}

// AddNote appends a timestamp-prefixed note line.
func (t *Tracker) AddNote(text string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.sess.Status == domain.SessionCompleted {
		return fmt.Errorf("adding note: %w", ErrSessionCompleted)
	}

	prev := t.checkpoint()
	t.sess.AppendNote(t.now(), text)

	if err := t.st.Save(t.sess); err != nil {
		t.restore(prev)
		return fmt.Errorf("persisting session: %w", err)
	}
	return nil
}

// Close shuts the open period, finalizes duration and score, sets the
// summary (auto-generated when empty), marks the session completed, and
// persists. Closing an already-completed session is an error.
func (t *Tracker) Close(summary string) (*domain.Session, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.sess.Status == domain.SessionCompleted {
		return nil, fmt.Errorf("closing session: %w", ErrSessionCompleted)
	}

	prev := t.checkpoint()
	end := t.now()

	t.closeOpenPeriod(end)
	t.sess.EndTime = &end
	t.sess.Duration = end.Sub(t.sess.StartTime).Seconds()
	t.updateScore(end)

	if summary == "" {
		summary = domain.AutoSummary(t.metricsLocked(end), t.sess.Tags)
	}
	t.sess.Summary = summary
	t.sess.Status = domain.SessionCompleted

	if err := t.st.Save(t.sess); err != nil {
		t.restore(prev)
		return nil, fmt.Errorf("persisting session: %w", err)
	}
	return t.sess.Clone(), nil
}

// Metrics computes the productivity metric view as of now (or as of the
// end time once closed).
func (t *Tracker) Metrics() domain.ProductivityMetrics {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.metricsLocked(t.now())
}

// ShouldCheckIn reports whether the check-in cadence has elapsed.
func (t *Tracker) ShouldCheckIn() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.now().Sub(t.lastCheckInTime) >= t.cfg.CheckInInterval
}

// IsInactive reports whether no activity has been recorded for at least
// the given threshold.
func (t *Tracker) IsInactive(threshold time.Duration) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.now().Sub(t.lastActivityTime) >= threshold
}

// closeOpenPeriod appends the implicit open period as a stored interval
// ending at ts and folds its duration into the matching running total.
// Callers hold the lock.
func (t *Tracker) closeOpenPeriod(ts time.Time) {
	iv := domain.Interval{
		Start:    t.currentPeriodStart,
		End:      ts,
		Duration: ts.Sub(t.currentPeriodStart).Seconds(),
	}
	if t.isCurrentlyFocused {
		t.totalFocusTime += iv.Duration
		t.sess.FocusPeriods = append(t.sess.FocusPeriods, iv)
	} else {
		t.totalDistractionTime += iv.Duration
		t.sess.DistractionPeriods = append(t.sess.DistractionPeriods, iv)
	}
}

// updateScore recomputes the score from the running totals. For an active
// session the elapsed wall clock stands in for the final duration.
func (t *Tracker) updateScore(now time.Time) {
	dur := t.sess.Duration
	if t.sess.Status == domain.SessionActive {
		dur = now.Sub(t.sess.StartTime).Seconds()
	}
	t.sess.ProductivityScore = domain.Score(
		t.totalFocusTime, t.totalDistractionTime, dur, t.cfg.DefaultSessionDuration.Seconds())
}

func (t *Tracker) metricsLocked(now time.Time) domain.ProductivityMetrics {
	dur := t.sess.Duration
	if t.sess.EndTime == nil {
		dur = now.Sub(t.sess.StartTime).Seconds()
	}
	return domain.ProductivityMetrics{
		SessionID:            t.sess.ID,
		DurationSeconds:      dur,
		DurationFormatted:    domain.FormatDuration(dur),
		FocusSeconds:         t.totalFocusTime,
		FocusFormatted:       domain.FormatDuration(t.totalFocusTime),
		DistractionSeconds:   t.totalDistractionTime,
		DistractionFormatted: domain.FormatDuration(t.totalDistractionTime),
		FocusPercentage:      domain.FocusPercentage(t.totalFocusTime, t.totalDistractionTime),
		ProductivityScore:    t.sess.ProductivityScore,
		CheckInCount:         len(t.sess.CheckIns),
		CheckInCompliance:    domain.CheckInCompliance(len(t.sess.CheckIns), dur, t.cfg.CheckInInterval.Seconds()),
	}
}

// checkpoint captures all mutable state so a failed persist can restore it,
// keeping memory and disk from diverging. Callers hold the lock.
type ledgerCheckpoint struct {
	sess                 *domain.Session
	currentPeriodStart   time.Time
	isCurrentlyFocused   bool
	totalFocusTime       float64
	totalDistractionTime float64
	lastCheckInTime      time.Time
	lastActivityTime     time.Time
}

func (t *Tracker) checkpoint() ledgerCheckpoint {
	return ledgerCheckpoint{
		sess:                 t.sess.Clone(),
		currentPeriodStart:   t.currentPeriodStart,
		isCurrentlyFocused:   t.isCurrentlyFocused,
		totalFocusTime:       t.totalFocusTime,
		totalDistractionTime: t.totalDistractionTime,
		lastCheckInTime:      t.lastCheckInTime,
		lastActivityTime:     t.lastActivityTime,
	}
}

func (t *Tracker) restore(cp ledgerCheckpoint) {
	t.sess = cp.sess
	t.currentPeriodStart = cp.currentPeriodStart
	t.isCurrentlyFocused = cp.isCurrentlyFocused
	t.totalFocusTime = cp.totalFocusTime
	t.totalDistractionTime = cp.totalDistractionTime
	t.lastCheckInTime = cp.lastCheckInTime
	t.lastActivityTime = cp.lastActivityTime
}
