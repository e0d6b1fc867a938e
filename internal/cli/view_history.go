package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/pullup/internal/cli/formatter"
	"github.com/alexanderramin/pullup/internal/domain"
	"github.com/alexanderramin/pullup/internal/repository"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const historyLimit = 100

type historyLoadedMsg struct {
	workouts []*domain.Workout
	err      error
}

type historyKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Open   key.Binding
	Delete key.Binding
}

// historyView lists stored workouts, newest first.
type historyView struct {
	state    *SharedState
	keys     historyKeyMap
	workouts []*domain.Workout
	cursor   int
	err      error
	loaded   bool
}

func newHistoryView(state *SharedState) *historyView {
	return &historyView{
		state: state,
		keys: historyKeyMap{
			Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
			Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
			Open:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
			Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		},
	}
}

func (v *historyView) load() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		ws, err := app.Workouts.List(context.Background(), repository.WorkoutFilter{Limit: historyLimit})
		return historyLoadedMsg{workouts: ws, err: err}
	}
}

func (v *historyView) Init() tea.Cmd {
	return v.load()
}

func (v *historyView) selected() *domain.Workout {
	if v.cursor < 0 || v.cursor >= len(v.workouts) {
		return nil
	}
	return v.workouts[v.cursor]
}

func (v *historyView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		v.loaded = true
		v.workouts, v.err = msg.workouts, msg.err
		v.cursor = min(v.cursor, max(len(v.workouts)-1, 0))
		return v, nil

	case refreshViewMsg:
		return v, v.load()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Up):
			v.cursor = max(v.cursor-1, 0)
		case key.Matches(msg, v.keys.Down):
			v.cursor = min(v.cursor+1, max(len(v.workouts)-1, 0))
		case key.Matches(msg, v.keys.Open):
			if w := v.selected(); w != nil {
				return v, pushView(newStoredSummaryView(v.state, w.ID))
			}
		case key.Matches(msg, v.keys.Delete):
			if w := v.selected(); w != nil {
				label := fmt.Sprintf("%s workout from %s", w.Protocol.DisplayName(), formatter.HumanDateFrom(w.Date, v.state.Now()))
				return v, execConfirmDelete(v.state, w.ID, label)
			}
		}
	}
	return v, nil
}

func (v *historyView) View() string {
	switch {
	case !v.loaded:
		return "\n  " + formatter.Dim("Loading...")
	case v.err != nil:
		return "\n  " + formatter.StyleRed.Render("Error: ") + v.err.Error()
	case len(v.workouts) == 0:
		return "\n  " + formatter.Dim("No workouts yet. Start a session from the home screen.")
	}

	lines := strings.Split(strings.TrimRight(formatter.RenderWorkoutTable(v.workouts, v.state.Now()), "\n"), "\n")
	var b strings.Builder
	b.WriteString("\n")
	for i, line := range lines {
		marker := "  "
		if i-2 == v.cursor {
			marker = formatter.StyleHeader.Render("▸ ")
		}
		b.WriteString("  " + marker + line + "\n")
	}
	return b.String()
}

func (v *historyView) ID() ViewID    { return ViewHistory }
func (v *historyView) Title() string { return "History" }
func (v *historyView) ShortHelp() []key.Binding {
	return []key.Binding{v.keys.Up, v.keys.Down, v.keys.Open, v.keys.Delete}
}
