// Package scheduler decides when the next capture+classify cycle fires,
// when a check-in is due, and when a session should auto-end. It drives the
// session ledger but never owns its state.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/focusd/internal/capture"
	"github.com/alexanderramin/focusd/internal/domain"
	"github.com/alexanderramin/focusd/internal/vision"
)

// Automatic check-in questions. The inactive variant is used once the
// ledger has seen no activity for the configured threshold.
const (
	questionProgress = "How's your progress?"
	questionInactive = "I haven't noticed much activity recently. Are you still working or taking a break?"
)

// Ledger is the mutation surface the scheduler drives. Implemented by
// tracker.Tracker; every call serializes through the ledger's own lock.
type Ledger interface {
	RecordClassification(res *domain.ClassificationResult) error
	AddCheckIn(ci domain.CheckIn) error
	ShouldCheckIn() bool
	IsInactive(threshold time.Duration) bool
	StartTime() time.Time
}

// Config carries the scheduling cadence values and the injected clock.
type Config struct {
	CaptureInterval     time.Duration
	SessionDuration     time.Duration
	AutoEnd             bool
	InactivityThreshold time.Duration
	Now                 func() time.Time
}

func (c Config) clock() func() time.Time {
	if c.Now != nil {
		return c.Now
	}
	return time.Now
}

// Scheduler owns the capture timing state. One Scheduler drives one ledger.
type Scheduler struct {
	cfg        Config
	ledger     Ledger
	provider   capture.Provider
	classifier vision.Classifier
	now        func() time.Time

	lastCaptureTime time.Time
}

// New creates a Scheduler. The first capture becomes due one full interval
// after construction.
func New(cfg Config, ledger Ledger, provider capture.Provider, classifier vision.Classifier) *Scheduler {
	s := &Scheduler{
		cfg:        cfg,
		ledger:     ledger,
		provider:   provider,
		classifier: classifier,
		now:        cfg.clock(),
	}
	s.lastCaptureTime = s.now()
	return s
}

// DueForCapture reports whether the capture interval has elapsed.
func (s *Scheduler) DueForCapture(now time.Time) bool {
	return now.Sub(s.lastCaptureTime) >= s.cfg.CaptureInterval
}

// DueForAutoEnd reports whether the session has outlived its configured
// duration. Always false when auto-end is disabled.
func (s *Scheduler) DueForAutoEnd(now, sessionStart time.Time) bool {
	if !s.cfg.AutoEnd {
		return false
	}
	return now.Sub(sessionStart) >= s.cfg.SessionDuration
}

// Tick runs one evaluation cycle: a capture+classify+record pass when due,
// then an independent check-in evaluation. A capture that yields no image
// is a silent skip, eligible again next interval. A classification failure
// consumes the tick (no backoff beyond the regular interval) and is
// returned for the caller to log.
func (s *Scheduler) Tick(ctx context.Context) error {
	now := s.now()

	var tickErr error
	if s.DueForCapture(now) {
		tickErr = s.captureAndRecord(ctx, now)
	}

	if s.ledger.ShouldCheckIn() {
		ci := domain.CheckIn{
			Kind:     domain.CheckInAutomatic,
			Question: questionProgress,
		}
		if s.cfg.InactivityThreshold > 0 && s.ledger.IsInactive(s.cfg.InactivityThreshold) {
			ci.Question = questionInactive
		}
		if err := s.ledger.AddCheckIn(ci); err != nil && tickErr == nil {
			tickErr = fmt.Errorf("adding automatic check-in: %w", err)
		}
	}
	return tickErr
}

func (s *Scheduler) captureAndRecord(ctx context.Context, now time.Time) error {
	path, err := s.provider.Capture(ctx, true)
	if err != nil || path == "" {
		// No image this tick; retry at the next interval without
		// advancing the capture clock.
		return nil
	}

	res, err := s.classifier.Classify(ctx, path)
	if err != nil {
		// The capture was spent; wait for the next regular interval.
		s.lastCaptureTime = now
		return fmt.Errorf("classifying capture: %w", err)
	}
	res.AutoCapture = true

	if err := s.ledger.RecordClassification(res); err != nil {
		s.lastCaptureTime = now
		return fmt.Errorf("recording classification: %w", err)
	}

	s.lastCaptureTime = now
	return nil
}
