package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newTagCmd(app *App) *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "tag <tag>...",
		Short: "Attach tags to the active session",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trk, err := app.resumeSession(sessionID)
			if err != nil {
				return err
			}

			for _, tag := range args {
				if err := trk.AddTag(tag); err != nil {
					return err
				}
			}

			fmt.Printf("Tagged session %s with %s.\n", trk.SessionID(), strings.Join(args, ", "))
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session ID (defaults to the latest active session)")

	return cmd
}

func newNoteCmd(app *App) *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "note <text>",
		Short: "Append a timestamped note to the active session",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trk, err := app.resumeSession(sessionID)
			if err != nil {
				return err
			}

			if err := trk.AddNote(strings.Join(args, " ")); err != nil {
				return err
			}

			fmt.Printf("Note added to session %s.\n", trk.SessionID())
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session ID (defaults to the latest active session)")

	return cmd
}
