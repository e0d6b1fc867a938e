package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/pullup/internal/cli/formatter"
	"github.com/alexanderramin/pullup/internal/domain"
	"github.com/alexanderramin/pullup/internal/service"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// saveDoneMsg carries a background save result back into the loop.
type saveDoneMsg struct {
	source <-chan service.SaveResult
	result service.SaveResult
}

type summaryLoadedMsg struct {
	id      string
	summary *service.WorkoutSummary
	err     error
}

func waitForSave(ch <-chan service.SaveResult) tea.Cmd {
	return func() tea.Msg {
		return saveDoneMsg{source: ch, result: <-ch}
	}
}

func loadSummary(app *App, id string) tea.Cmd {
	return func() tea.Msg {
		sum, err := app.Workouts.Summary(context.Background(), id)
		return summaryLoadedMsg{id: id, summary: sum, err: err}
	}
}

// summaryView shows a finished or stored workout: per-set values, the
// protocol score and the comparison with the previous workout.
type summaryView struct {
	state    *SharedState
	protocol domain.Protocol

	// results is set for a session that just finished; it keeps X markers
	// that storage flattens to 0.
	results []domain.UnitResult
	saving  <-chan service.SaveResult
	saveErr error

	workoutID string
	summary   *service.WorkoutSummary
	loadErr   error

	editKey  key.Binding
	doneKey  key.Binding
	editSet  int
	editReps string
}

func newSummaryView(state *SharedState, p domain.Protocol, results []domain.UnitResult, saving <-chan service.SaveResult) *summaryView {
	v := newBaseSummaryView(state)
	v.protocol = p
	v.results = results
	v.saving = saving
	return v
}

func newStoredSummaryView(state *SharedState, id string) *summaryView {
	v := newBaseSummaryView(state)
	v.workoutID = id
	return v
}

func newBaseSummaryView(state *SharedState) *summaryView {
	return &summaryView{
		state:   state,
		editKey: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit set")),
		doneKey: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "done")),
	}
}

func (v *summaryView) Init() tea.Cmd {
	v.refreshKeys()
	if v.saving != nil {
		return waitForSave(v.saving)
	}
	if v.workoutID != "" {
		return loadSummary(v.state.App, v.workoutID)
	}
	return nil
}

func (v *summaryView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case saveDoneMsg:
		if msg.source != v.saving {
			return v, nil
		}
		v.saving = nil
		if msg.result.Err != nil {
			v.saveErr = msg.result.Err
			return v, nil
		}
		v.workoutID = msg.result.Workout.ID
		return v, loadSummary(v.state.App, v.workoutID)

	case summaryLoadedMsg:
		if msg.id != v.workoutID {
			return v, nil
		}
		v.summary, v.loadErr = msg.summary, msg.err
		if msg.summary != nil {
			v.protocol = msg.summary.Workout.Protocol
		}
		v.refreshKeys()
		return v, nil

	case refreshViewMsg:
		if v.workoutID != "" {
			return v, loadSummary(v.state.App, v.workoutID)
		}
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.editKey):
			return v, v.startEdit()
		case key.Matches(msg, v.doneKey):
			return v, popView()
		}
	}
	return v, nil
}

func (v *summaryView) refreshKeys() {
	v.editKey.SetEnabled(v.summary != nil && len(v.summary.Workout.Reps) > 0)
}

func (v *summaryView) startEdit() tea.Cmd {
	if v.summary == nil {
		return nil
	}
	w := v.summary.Workout
	v.editSet, v.editReps = 1, ""
	form := wizardEditSet(w, &v.editSet, &v.editReps)
	id := w.ID
	return startWizardCmd(v.state, "Edit set", form, func() tea.Cmd {
		return editSetCmd(v.state.App, id, &v.editSet, &v.editReps)
	})
}

func (v *summaryView) View() string {
	var b strings.Builder
	b.WriteString("\n")

	if v.results != nil {
		fmt.Fprintf(&b, "  %s %s\n", formatter.Dim("Recorded:"), formatter.FormatResults(v.results))
	}

	switch {
	case v.saving != nil:
		fmt.Fprintf(&b, "  %s\n", formatter.Dim("Saving..."))
	case v.saveErr != nil:
		fmt.Fprintf(&b, "  %s %s\n", formatter.StyleRed.Render("Not saved:"), v.saveErr.Error())
	case v.loadErr != nil:
		fmt.Fprintf(&b, "  %s %s\n", formatter.StyleRed.Render("Error:"), v.loadErr.Error())
	}

	if v.summary != nil {
		b.WriteString("\n")
		b.WriteString(formatter.RenderBox("Summary",
			formatter.RenderWorkoutSummary(v.summary.Workout, v.summary.Previous, v.state.Now())))
		b.WriteString("\n")
	} else if v.results != nil {
		score := domain.TotalScore(v.protocol, domain.StoredReps(v.results))
		fmt.Fprintf(&b, "  %s %s\n", formatter.Dim("Total:"), formatter.Bold(fmt.Sprintf("%d", score)))
	}
	return b.String()
}

func (v *summaryView) ID() ViewID    { return ViewSummary }
func (v *summaryView) Title() string { return "Summary" }
func (v *summaryView) ShortHelp() []key.Binding {
	return []key.Binding{v.editKey, v.doneKey}
}
