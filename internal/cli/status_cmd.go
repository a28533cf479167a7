package cli

import (
	"fmt"

	"github.com/alexanderramin/focusd/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show live metrics for the active session",
		RunE: func(cmd *cobra.Command, args []string) error {
			trk, err := app.resumeSession(sessionID)
			if err != nil {
				return err
			}

			fmt.Print(formatter.RenderBox("Focus Session", formatter.FormatMetrics(trk.Metrics())))
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session ID (defaults to the latest active session)")

	return cmd
}
