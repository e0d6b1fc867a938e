package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/pullup/internal/config"
	"github.com/alexanderramin/pullup/internal/engine"
	"github.com/alexanderramin/pullup/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// App holds the services and settings used by CLI commands and the TUI.
type App struct {
	Workouts service.WorkoutService
	Recorder *service.Recorder
	Backup   service.BackupService
	Config   config.Config

	// Clock drives session countdowns; nil means the system clock.
	Clock engine.Clock
	// SessionObserver receives guided-session lifecycle events.
	SessionObserver engine.Observer

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool
	// TickCmd schedules the session refresh tick; nil means tea.Tick.
	TickCmd func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd
}

func (a *App) clock() engine.Clock {
	if a.Clock == nil {
		return engine.SystemClock{}
	}
	return a.Clock
}

func (a *App) now() time.Time {
	return a.clock().Now()
}

func (a *App) tick(fn func(time.Time) tea.Msg) tea.Cmd {
	if a.TickCmd != nil {
		return a.TickCmd(a.Config.TickInterval(), fn)
	}
	return tea.Tick(a.Config.TickInterval(), fn)
}

// NewRootCmd creates the top-level "pullup" command and registers all
// subcommands against the provided App. Without a subcommand it opens the
// TUI when attached to a terminal.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "pullup",
		Short:         "Guided pull-up training sessions and workout log",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive == nil || !app.IsInteractive() {
				return cmd.Help()
			}
			return runTUI(newAppModel(app))
		},
	}

	root.AddCommand(
		newWorkoutCmd(app),
		newProtocolsCmd(app),
	)

	return root
}

func runTUI(m appModel) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("running tui: %w", err)
	}
	if fm, ok := final.(appModel); ok && fm.state.App.Recorder != nil {
		// Let a save started by the last session finish before exit.
		fm.state.App.Recorder.Wait()
	}
	return nil
}
