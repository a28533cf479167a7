package cli

import (
	"fmt"

	"github.com/alexanderramin/focusd/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newSessionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect stored focus sessions",
	}

	cmd.AddCommand(
		newSessionListCmd(app),
		newSessionShowCmd(app),
		newSessionRemoveCmd(app),
	)

	return cmd
}

func newSessionListCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored sessions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := app.Store.List(limit)
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				fmt.Println("No sessions found.")
				return nil
			}

			headers := []string{"ID", "STARTED", "LENGTH", "SCORE", "STATUS", "TAGS"}
			rows := make([][]string, 0, len(sessions))
			for _, sess := range sessions {
				rows = append(rows, formatter.SessionRow(sess))
			}

			fmt.Print(formatter.RenderBox("Sessions", formatter.RenderTable(headers, rows)))
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of sessions to show (0 for all)")

	return cmd
}

func newSessionShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <session-id>",
		Short: "Show the full detail of one session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := app.Store.Load(args[0])
			if err != nil {
				return err
			}

			fmt.Print(formatter.RenderBox("", formatter.FormatSession(sess)))
			fmt.Println()
			return nil
		},
	}
}

func newSessionRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <session-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a session and all its captures",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := app.Store.Delete(args[0])
			if err != nil {
				return err
			}
			if !removed {
				fmt.Printf("Session %s not found.\n", args[0])
				return nil
			}
			if err := app.History.Delete(cmd.Context(), args[0]); err != nil {
				fmt.Printf("Deleted session %s (history index entry not removed: %v).\n", args[0], err)
				return nil
			}
			fmt.Printf("Deleted session %s.\n", args[0])
			return nil
		},
	}
}
