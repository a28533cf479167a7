package cli

import (
	"fmt"

	"github.com/alexanderramin/focusd/internal/capture"
	"github.com/alexanderramin/focusd/internal/config"
	"github.com/alexanderramin/focusd/internal/service"
	"github.com/alexanderramin/focusd/internal/store"
	"github.com/alexanderramin/focusd/internal/tracker"
	"github.com/alexanderramin/focusd/internal/vision"
	"github.com/spf13/cobra"
)

// App holds the wired collaborators used by CLI commands.
type App struct {
	Config     config.Config
	Store      *store.FileStore
	History    service.HistoryService
	Classifier vision.Classifier

	// NewProvider builds a capture provider writing into the given
	// session's captures directory.
	NewProvider func(dir string) capture.Provider

	// IsInteractive reports whether stdin is a terminal; gates the
	// interactive check-in form.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "focusd" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "focusd",
		Short: "Screen-capture based focus session tracker",
	}

	root.AddCommand(
		newStartCmd(app),
		newStatusCmd(app),
		newWatchCmd(app),
		newSessionCmd(app),
		newCheckinCmd(app),
		newTagCmd(app),
		newNoteCmd(app),
		newCaptureCmd(app),
		newHistoryCmd(app),
	)

	return root
}

func (app *App) trackerConfig() tracker.Config {
	return tracker.Config{
		CheckInInterval:        app.Config.CheckInInterval(),
		DefaultSessionDuration: app.Config.DefaultSessionDuration(),
	}
}

// resumeSession resumes the named session, or the most recent active one
// when id is empty.
func (app *App) resumeSession(id string) (*tracker.Tracker, error) {
	if id == "" {
		sess, err := app.Store.LatestActive()
		if err != nil {
			return nil, fmt.Errorf("no active session: %w", err)
		}
		id = sess.ID
	}
	return tracker.Resume(app.Store, app.trackerConfig(), id)
}
