package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/pullup/internal/cli/formatter"
	"github.com/alexanderramin/pullup/internal/domain"
	"github.com/alexanderramin/pullup/internal/engine"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// pullupHuhTheme returns a custom huh theme using the Gruvbox palette.
func pullupHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// wizardSelectProtocol creates a huh form to pick the protocol for a new session.
func wizardSelectProtocol(result *domain.Protocol) *huh.Form {
	if *result == "" {
		*result = domain.ProtocolMaxEffort
	}
	options := make([]huh.Option[domain.Protocol], 0, len(domain.Protocols))
	for _, p := range domain.Protocols {
		options = append(options, huh.NewOption(p.DisplayName(), p))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[domain.Protocol]().
				Title("Which protocol?").
				Options(options...).
				Value(result),
		),
	).WithTheme(pullupHuhTheme()).WithShowHelp(false)
}

// wizardEditSet creates a two-step form: pick a set, then enter its corrected
// rep count. It returns nil when the workout has no sets.
func wizardEditSet(w *domain.Workout, set *int, reps *string) *huh.Form {
	if w == nil || len(w.Reps) == 0 {
		return nil
	}
	if *set < 1 || *set > len(w.Reps) {
		*set = 1
	}

	options := make([]huh.Option[int], 0, len(w.Reps))
	for i, r := range w.Reps {
		options = append(options, huh.NewOption(fmt.Sprintf("Set %d (%d)", i+1, r), i+1))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Which set?").
				Options(options...).
				Value(set),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Reps").
				Placeholder(fmt.Sprintf("0-%d", engine.DefaultMaxReps)).
				Value(reps).
				Validate(validateRepCount),
		),
	).WithTheme(pullupHuhTheme()).WithShowHelp(false)
}

// validateRepCount accepts an integer between 0 and the entry ceiling.
func validateRepCount(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 || v > engine.DefaultMaxReps {
		return fmt.Errorf("enter a number from 0 to %d", engine.DefaultMaxReps)
	}
	return nil
}

// wizardConfirm creates a huh form for a yes/no confirmation.
func wizardConfirm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(pullupHuhTheme()).WithShowHelp(false)
}
