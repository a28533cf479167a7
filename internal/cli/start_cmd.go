package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexanderramin/focusd/internal/cli/formatter"
	"github.com/alexanderramin/focusd/internal/scheduler"
	"github.com/alexanderramin/focusd/internal/tracker"
	"github.com/spf13/cobra"
)

func newStartCmd(app *App) *cobra.Command {
	var durationMin int
	var tags []string
	var noAutoEnd bool

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a focus session and run the capture loop",
		Long: "Starts a new focus session and runs the capture loop in the " +
			"foreground until interrupted or the session duration elapses.",
		RunE: func(cmd *cobra.Command, args []string) error {
			sessionDuration := app.Config.DefaultSessionDuration()
			if durationMin > 0 {
				sessionDuration = time.Duration(durationMin) * time.Minute
			}

			trk, err := tracker.Open(app.Store, app.trackerConfig(), "")
			if err != nil {
				return err
			}
			for _, tag := range tags {
				if err := trk.AddTag(tag); err != nil {
					return err
				}
			}

			capturesDir, err := app.Store.CapturesDir(trk.SessionID())
			if err != nil {
				return err
			}

			sched := scheduler.New(scheduler.Config{
				CaptureInterval:     app.Config.CaptureInterval(),
				SessionDuration:     sessionDuration,
				AutoEnd:             app.Config.Session.AutoEnd && !noAutoEnd,
				InactivityThreshold: app.Config.InactivityThreshold(),
			}, trk, app.NewProvider(capturesDir), app.Classifier)
			runner := scheduler.NewRunner(sched, app.Config.CaptureInterval(), os.Stderr)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Printf("Started session %s (capture every %s). Ctrl-C to end.\n",
				formatter.Bold(trk.SessionID()), app.Config.CaptureInterval())

			done := make(chan struct{})
			go func() {
				runner.Run(ctx)
				close(done)
			}()

			select {
			case <-ctx.Done():
				fmt.Println("\nEnding session...")
			case <-runner.AutoEnd():
				fmt.Println("\nSession duration reached, ending session...")
			}
			stop()
			<-done

			sess, err := trk.Close("")
			if err != nil {
				return fmt.Errorf("closing session: %w", err)
			}
			if err := app.History.RecordSession(context.Background(), sess); err != nil {
				fmt.Fprintf(os.Stderr, "focusd: recording history: %v\n", err)
			}

			fmt.Print(formatter.RenderBox("Session Complete", formatter.FormatSession(sess)))
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().IntVar(&durationMin, "duration", 0, "Session duration in minutes (0 uses the configured default)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tags to attach to the session")
	cmd.Flags().BoolVar(&noAutoEnd, "no-auto-end", false, "Keep running past the session duration")

	return cmd
}
