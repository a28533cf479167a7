package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/focusd/internal/cli/formatter"
	"github.com/alexanderramin/focusd/internal/domain"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func newWatchCmd(app *App) *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Live dashboard for the active session",
		RunE: func(cmd *cobra.Command, args []string) error {
			trk, err := app.resumeSession(sessionID)
			if err != nil {
				return err
			}

			model := newWatchModel(app, trk.SessionID())
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session ID (defaults to the latest active session)")

	return cmd
}

type watchTickMsg time.Time

type watchModel struct {
	app       *App
	sessionID string
	spinner   spinner.Model

	metrics domain.ProductivityMetrics
	status  domain.SessionStatus
	err     error
}

func newWatchModel(app *App, sessionID string) watchModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	return watchModel{
		app:       app,
		sessionID: sessionID,
		spinner:   sp,
		status:    domain.SessionActive,
	}
}

func watchTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.refresh, m.spinner.Tick, watchTick())
}

// refresh reloads the session document and recomputes live metrics. Runs
// off the bubbletea update loop as a command.
func (m watchModel) refresh() tea.Msg {
	trk, err := m.app.resumeSession(m.sessionID)
	if err != nil {
		return err
	}
	return watchStateMsg{metrics: trk.Metrics(), status: trk.Session().Status}
}

type watchStateMsg struct {
	metrics domain.ProductivityMetrics
	status  domain.SessionStatus
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case watchTickMsg:
		return m, tea.Batch(m.refresh, watchTick())
	case watchStateMsg:
		m.metrics = msg.metrics
		m.status = msg.status
		m.err = nil
		if m.status == domain.SessionCompleted {
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case error:
		m.err = msg
	}
	return m, nil
}

func (m watchModel) View() string {
	if m.err != nil {
		return formatter.StyleRed.Render("watch: "+m.err.Error()) + "\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n\n", m.spinner.View(), formatter.Dim("watching"))
	b.WriteString(formatter.FormatMetrics(m.metrics))

	total := m.app.Config.DefaultSessionDuration().Seconds()
	if total > 0 {
		fmt.Fprintf(&b, "\n%s  %s", formatter.Dim("Progress   "),
			formatter.RenderProgress(m.metrics.DurationSeconds/total, 30))
	}

	b.WriteString("\n\n" + formatter.Dim("q to quit") + "\n")
	return formatter.RenderBox("", b.String())
}
