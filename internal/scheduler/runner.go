package scheduler

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Runner is the cancellable drive loop around a Scheduler. Tick timing is
// measured tick-start to tick-start: a slow capture or classification call
// never compounds into interval drift, the ticker simply drops missed
// fires. Errors from a single tick are logged and the loop continues; only
// cancellation stops it.
type Runner struct {
	sched    *Scheduler
	interval time.Duration
	logw     io.Writer

	autoEnd chan struct{}
}

// NewRunner creates a Runner evaluating the scheduler every interval.
func NewRunner(sched *Scheduler, interval time.Duration, logw io.Writer) *Runner {
	if logw == nil {
		logw = io.Discard
	}
	return &Runner{
		sched:    sched,
		interval: interval,
		logw:     logw,
		autoEnd:  make(chan struct{}, 1),
	}
}

// AutoEnd signals once when the session outlives its configured duration.
// The runner never closes the session itself; whoever owns the session
// lifecycle reacts to this signal through the normal serialized path.
func (r *Runner) AutoEnd() <-chan struct{} {
	return r.autoEnd
}

// Run loops until ctx is cancelled. The cancellation flag is checked both
// before and after the blocking tick so a stop request arriving mid-tick
// is honored promptly.
func (r *Runner) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if ctx.Err() != nil {
			return
		}
		if err := r.sched.Tick(ctx); err != nil {
			fmt.Fprintf(r.logw, "focusd: tick: %v\n", err)
		}
		if ctx.Err() != nil {
			return
		}

		now := r.sched.now()
		if r.sched.DueForAutoEnd(now, r.sched.ledger.StartTime()) {
			select {
			case r.autoEnd <- struct{}{}:
			default:
			}
		}
	}
}
