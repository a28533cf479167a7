package cli

import (
	"fmt"

	"github.com/alexanderramin/focusd/internal/cli/formatter"
	"github.com/alexanderramin/focusd/internal/domain"
	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Query the completed-session history index",
	}

	cmd.AddCommand(
		newHistoryListCmd(app),
		newHistoryStatsCmd(app),
	)

	return cmd
}

func newHistoryListCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent completed sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.History.ListRecent(cmd.Context(), days)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("No completed sessions recorded.")
				return nil
			}

			headers := []string{"ID", "STARTED", "LENGTH", "FOCUS", "SCORE", "CHECK-INS"}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{
					formatter.Dim(e.SessionID),
					formatter.HumanTimestamp(e.StartTime),
					formatter.FormatSeconds(e.DurationSeconds),
					formatter.FormatSeconds(e.FocusSeconds),
					formatter.ScoreBadge(e.ProductivityScore),
					fmt.Sprintf("%d", e.CheckInCount),
				})
			}

			fmt.Print(formatter.RenderBox("History", formatter.RenderTable(headers, rows)))
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "Number of recent days to include")

	return cmd
}

func newHistoryStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate statistics across recorded sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := app.History.Stats(cmd.Context())
			if err != nil {
				return err
			}

			content := fmt.Sprintf("%s  %d\n", formatter.Dim("Sessions    "), stats.TotalSessions)
			content += fmt.Sprintf("%s  %s\n", formatter.Dim("Focus time  "), domain.FormatDuration(stats.TotalFocusSeconds))
			content += fmt.Sprintf("%s  %s\n", formatter.Dim("Distraction "), domain.FormatDuration(stats.TotalDistraction))
			content += fmt.Sprintf("%s  %.1f/100\n", formatter.Dim("Avg score   "), stats.AverageScore)
			content += fmt.Sprintf("%s  %s", formatter.Dim("Avg focus   "), formatter.RenderProgress(stats.AverageFocusShare/100, 20))

			fmt.Print(formatter.RenderBox("All-Time Stats", content))
			fmt.Println()
			return nil
		},
	}
}
