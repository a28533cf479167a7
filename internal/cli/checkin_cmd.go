package cli

import (
	"fmt"

	"github.com/alexanderramin/focusd/internal/domain"
	"github.com/spf13/cobra"
)

const manualCheckInQuestion = "How is the session going?"

func newCheckinCmd(app *App) *cobra.Command {
	var sessionID, message string

	cmd := &cobra.Command{
		Use:   "checkin",
		Short: "Record a manual check-in on the active session",
		RunE: func(cmd *cobra.Command, args []string) error {
			trk, err := app.resumeSession(sessionID)
			if err != nil {
				return err
			}

			response := message
			if response == "" {
				if app.IsInteractive == nil || !app.IsInteractive() {
					return fmt.Errorf("no terminal available; pass --message")
				}
				if err := checkinForm(manualCheckInQuestion, &response).Run(); err != nil {
					return err
				}
			}

			ci := domain.CheckIn{
				Kind:     domain.CheckInManual,
				Question: manualCheckInQuestion,
				Response: response,
			}
			if err := trk.AddCheckIn(ci); err != nil {
				return err
			}

			fmt.Printf("Check-in recorded for session %s.\n", trk.SessionID())
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session ID (defaults to the latest active session)")
	cmd.Flags().StringVarP(&message, "message", "m", "", "Check-in response (skips the interactive form)")

	return cmd
}
