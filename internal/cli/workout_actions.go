package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/alexanderramin/pullup/internal/cli/formatter"
	tea "github.com/charmbracelet/bubbletea"
)

// wizardCompleteStatus returns a wizardCompleteMsg that shows text in the
// status line once the wizard is gone.
func wizardCompleteStatus(text string) tea.Msg {
	return wizardCompleteMsg{nextCmd: setStatus(text)}
}

func errorStatus(err error) string {
	return formatter.StyleRed.Render("Error: ") + err.Error()
}

// editSetCmd applies a wizard's set correction. set and reps are read when
// the command runs, after the form has written them.
func editSetCmd(app *App, id string, set *int, reps *string) tea.Cmd {
	return func() tea.Msg {
		n, err := strconv.Atoi(*reps)
		if err != nil {
			return statusMsg{text: errorStatus(fmt.Errorf("reps: %w", err))}
		}
		w, err := app.Workouts.EditSet(context.Background(), id, *set, n)
		if err != nil {
			return statusMsg{text: errorStatus(err)}
		}
		return actionDoneMsg{text: fmt.Sprintf("%s Set %d is now %d (total %s)",
			formatter.StyleGreen.Render("✔"), *set, n, formatter.Bold(strconv.Itoa(w.Score())))}
	}
}

// execConfirmDelete pushes a confirmation wizard and deletes the workout if
// confirmed.
func execConfirmDelete(state *SharedState, id, label string) tea.Cmd {
	var confirmed bool
	form := wizardConfirm(fmt.Sprintf("Delete %s?", label), &confirmed)
	return pushView(newWizardView(state, "Confirm Delete", form, func() tea.Cmd {
		if !confirmed {
			return setStatus(formatter.Dim("Cancelled."))
		}
		return func() tea.Msg {
			if err := state.App.Workouts.Delete(context.Background(), id); err != nil {
				return statusMsg{text: errorStatus(err)}
			}
			return actionDoneMsg{text: fmt.Sprintf("%s Deleted: %s",
				formatter.StyleGreen.Render("✔"), formatter.Bold(label))}
		}
	}))
}

// saveStatus renders the status line for a finished background save.
func saveStatus(res saveDoneMsg) string {
	if res.result.Err != nil {
		return formatter.StyleRed.Render("Not saved: ") + res.result.Err.Error()
	}
	w := res.result.Workout
	return fmt.Sprintf("%s Saved %s workout (total %s)",
		formatter.StyleGreen.Render("✔"), w.Protocol.DisplayName(), formatter.Bold(strconv.Itoa(w.Score())))
}
