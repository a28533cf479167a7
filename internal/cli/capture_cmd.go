package cli

import (
	"fmt"

	"github.com/alexanderramin/focusd/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCaptureCmd(app *App) *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Run one capture and classification cycle now",
		Long: "Captures the screen immediately, classifies it, and records the " +
			"verdict on the active session, independent of the capture loop's cadence.",
		RunE: func(cmd *cobra.Command, args []string) error {
			trk, err := app.resumeSession(sessionID)
			if err != nil {
				return err
			}

			capturesDir, err := app.Store.CapturesDir(trk.SessionID())
			if err != nil {
				return err
			}

			path, err := app.NewProvider(capturesDir).Capture(cmd.Context(), true)
			if err != nil {
				return fmt.Errorf("capturing screen: %w", err)
			}
			if path == "" {
				return fmt.Errorf("capture produced no image")
			}

			res, err := app.Classifier.Classify(cmd.Context(), path)
			if err != nil {
				return fmt.Errorf("classifying capture: %w", err)
			}
			if err := trk.RecordClassification(res); err != nil {
				return err
			}

			fmt.Printf("%s  %s\n", formatter.VerdictPill(res.IsProductive), formatter.Dim(path))
			if len(res.DetectedApps) > 0 {
				fmt.Printf("Apps: %s\n", formatter.Dim(fmt.Sprintf("%v", res.DetectedApps)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session ID (defaults to the latest active session)")

	return cmd
}
