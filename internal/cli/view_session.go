package cli

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/pullup/internal/cli/formatter"
	"github.com/alexanderramin/pullup/internal/domain"
	"github.com/alexanderramin/pullup/internal/engine"
	"github.com/alexanderramin/pullup/internal/service"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	// cellPixels approximates a terminal row in the pixel units the rep
	// wheel drag uses.
	cellPixels = 16.0
	// dragStepPixels matches the wheel's pixels per step.
	dragStepPixels = 30.0
	// wheelRadius is how many options are drawn above and below the cursor.
	wheelRadius = 2
)

type sessionTickMsg struct{}

type sessionKeyMap struct {
	Complete    key.Binding
	Rep         key.Binding
	FastForward key.Binding
	Undo        key.Binding
	Up          key.Binding
	Down        key.Binding
	Abandon     key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func newSessionKeyMap() sessionKeyMap {
	return sessionKeyMap{
		Complete:    key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "set done")),
		Rep:         key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "+1 rep")),
		FastForward: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "skip rest")),
		Undo:        key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo set")),
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "more")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "fewer")),
		Abandon:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "form broke")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc", "abandon")),
	}
}

func (k sessionKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Complete, k.Rep, k.Up, k.Down, k.FastForward, k.Undo, k.Quit}
}

func (k sessionKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Complete, k.Rep, k.Undo},
		{k.Up, k.Down, k.Abandon},
		{k.FastForward, k.Help, k.Quit},
	}
}

// sessionView runs one guided session. It owns the engine controller and
// feeds it ticks and key presses from the bubbletea loop.
type sessionView struct {
	state    *SharedState
	ctrl     *engine.Controller
	protocol domain.Protocol
	keys     sessionKeyMap
	help     help.Model
	bar      progress.Model

	finished    []domain.UnitResult
	completed   bool
	confirmQuit bool

	dragging bool
	lastY    int
}

func newSessionView(state *SharedState, p domain.Protocol) (*sessionView, error) {
	cfg, err := state.App.Config.SessionConfig(p)
	if err != nil {
		return nil, err
	}

	v := &sessionView{
		state:    state,
		protocol: p,
		keys:     newSessionKeyMap(),
		help:     help.New(),
		bar: progress.New(
			progress.WithSolidFill(string(formatter.ColorYellow)),
			progress.WithoutPercentage(),
			progress.WithWidth(40),
		),
	}
	v.ctrl = engine.NewController(state.App.clock(), engine.WithObserver(state.App.SessionObserver))
	v.ctrl.OnComplete(func(results []domain.UnitResult) {
		v.finished = results
		v.completed = true
	})
	if err := v.ctrl.Start(cfg); err != nil {
		return nil, err
	}
	v.refreshKeys()
	return v, nil
}

func (v *sessionView) Init() tea.Cmd {
	return v.scheduleTick()
}

func (v *sessionView) scheduleTick() tea.Cmd {
	return v.state.App.tick(func(time.Time) tea.Msg { return sessionTickMsg{} })
}

func (v *sessionView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.bar.Width = max(min(msg.Width-16, 60), 10)
		v.help.Width = msg.Width
		return v, nil

	case sessionTickMsg:
		if v.completed || !v.ctrl.Active() {
			return v, nil
		}
		v.ctrl.Tick()
		return v, v.afterCommand(v.scheduleTick())

	case tea.KeyMsg:
		return v, v.handleKey(msg)

	case tea.MouseMsg:
		v.handleMouse(msg)
		return v, v.afterCommand(nil)
	}
	return v, nil
}

func (v *sessionView) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, v.keys.Quit) {
		if !v.confirmQuit {
			v.confirmQuit = true
			return setStatus(formatter.StyleYellow.Render("Press esc again to abandon this session without saving."))
		}
		v.ctrl.Discard()
		return tea.Batch(setStatus(formatter.Dim("Session abandoned.")), popView())
	}
	v.confirmQuit = false

	switch {
	case key.Matches(msg, v.keys.Help):
		v.help.ShowAll = !v.help.ShowAll
	case key.Matches(msg, v.keys.Complete):
		v.ctrl.CompleteUnit(nil)
	case key.Matches(msg, v.keys.Rep):
		v.ctrl.CompleteRep()
	case key.Matches(msg, v.keys.FastForward):
		v.ctrl.FastForward()
	case key.Matches(msg, v.keys.Undo):
		v.ctrl.Undo()
	case key.Matches(msg, v.keys.Up):
		v.ctrl.StepEntry(1)
	case key.Matches(msg, v.keys.Down):
		v.ctrl.StepEntry(-1)
	case key.Matches(msg, v.keys.Abandon):
		v.ctrl.SelectEntry(domain.Abandoned)
	}
	return v.afterCommand(nil)
}

func (v *sessionView) handleMouse(msg tea.MouseMsg) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		v.ctrl.StepEntry(1)
	case msg.Button == tea.MouseButtonWheelDown:
		v.ctrl.StepEntry(-1)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		v.dragging = true
		v.lastY = msg.Y
	case msg.Action == tea.MouseActionMotion && v.dragging:
		dy := float64(msg.Y-v.lastY) * cellPixels
		if math.Round(dy/dragStepPixels) != 0 {
			v.ctrl.DragEntry(dy)
			v.lastY = msg.Y
		}
	case msg.Action == tea.MouseActionRelease:
		v.dragging = false
	}
}

// afterCommand hands a finished session to the summary view, or continues
// with next.
func (v *sessionView) afterCommand(next tea.Cmd) tea.Cmd {
	v.refreshKeys()
	if !v.completed {
		return next
	}

	var saving <-chan service.SaveResult
	if rec := v.state.App.Recorder; rec != nil {
		saving = rec.Save(v.protocol, v.finished)
	}
	return replaceView(newSummaryView(v.state, v.protocol, v.finished, saving))
}

// refreshKeys enables only the bindings the current phase reacts to.
func (v *sessionView) refreshKeys() {
	s := v.ctrl.Snapshot()
	ladder := v.protocol == domain.ProtocolLadder
	performing := s.Phase == domain.PhasePerforming

	v.keys.Rep.SetEnabled(ladder && performing)
	v.keys.FastForward.SetEnabled(s.Countdown.Running)
	v.keys.Undo.SetEnabled(s.CanUndo)
	v.keys.Up.SetEnabled(s.Entry != nil)
	v.keys.Down.SetEnabled(s.Entry != nil)
	v.keys.Abandon.SetEnabled(s.Entry != nil)

	recording := s.Phase == domain.PhaseRecordingInput
	completeHelp := "set done"
	if recording {
		completeHelp = "save reps"
	}
	v.keys.Complete.SetHelp("space", completeHelp)
	// A ladder set may also end during the short rest between reps.
	ladderRest := ladder && s.Phase == domain.PhaseResting && !s.CanUndo
	ladderEmpty := ladder && s.Reps == 0 && len(s.Results) == 0
	v.keys.Complete.SetEnabled((performing || recording || ladderRest) && !ladderEmpty)
}

func (v *sessionView) View() string {
	s := v.ctrl.Snapshot()
	var b strings.Builder

	unit := min(s.UnitIndex, s.TotalUnits)
	fmt.Fprintf(&b, "\n  %s  %s\n\n", formatter.ProtocolBadge(v.protocol),
		formatter.Dim(fmt.Sprintf("Set %d of %d", unit, s.TotalUnits)))

	var current *domain.UnitResult
	if s.Entry != nil {
		sel := s.Selected
		current = &sel
	}
	fmt.Fprintf(&b, "  %s\n\n", formatter.SetProgressStrip(s.TotalUnits, s.Results, current))
	fmt.Fprintf(&b, "  %s  %s\n\n", formatter.PhaseLabel(s.Phase), v.prompt(s))

	if s.Countdown.Running {
		fmt.Fprintf(&b, "  %s %s\n\n", v.bar.ViewAs(s.Countdown.Progress),
			formatter.Bold(formatter.FormatClock(s.Countdown.Seconds())))
	}

	if v.protocol == domain.ProtocolLadder && s.Phase != domain.PhaseComplete {
		fmt.Fprintf(&b, "  %s %s\n\n", formatter.Dim("Reps this set:"), formatter.Bold(fmt.Sprintf("%d", s.Reps)))
	}

	if s.Entry != nil {
		b.WriteString(renderWheel(s.Options, s.Cursor, *s.Entry))
		b.WriteString("\n")
	}

	if v.help.ShowAll {
		b.WriteString("\n" + v.help.View(v.keys) + "\n")
	}
	return b.String()
}

func (v *sessionView) prompt(s engine.Snapshot) string {
	switch v.protocol {
	case domain.ProtocolMaxEffort:
		switch s.Phase {
		case domain.PhasePerforming:
			return "Max reps with good form, then press space."
		case domain.PhaseResting:
			return "Rest. Pick your reps while you recover."
		case domain.PhaseRecordingInput:
			return "How many reps did you get?"
		}
	case domain.ProtocolAutoVolume:
		switch s.Phase {
		case domain.PhasePerforming:
			return "Do your set, then press space."
		case domain.PhaseResting:
			return "Rest. Reps are saved when the timer ends."
		}
	case domain.ProtocolLadder:
		switch s.Phase {
		case domain.PhasePerforming:
			return "Press r after each rep; space when the set is done."
		case domain.PhaseResting:
			if s.CanUndo {
				return "Set saved. Press u to undo before the rest ends."
			}
			return "Rest before the next rep."
		case domain.PhaseComplete:
			return "Last set saved. Press u to undo before the rest ends."
		}
	}
	return ""
}

// renderWheel draws the options around the cursor with higher values on top.
func renderWheel(options []domain.UnitResult, cursor int, c engine.WheelConstraint) string {
	var b strings.Builder
	for i := cursor + wheelRadius; i >= cursor-wheelRadius; i-- {
		if i < 0 || i >= len(options) {
			b.WriteString("\n")
			continue
		}
		label := fmt.Sprintf("%3s", options[i].String())
		if i == cursor {
			b.WriteString("    " + formatter.StyleHeader.Render("▸ "+label+" ◂") + "\n")
			continue
		}
		b.WriteString("      " + formatter.Dim(label) + "\n")
	}
	b.WriteString("  " + formatter.Dim(fmt.Sprintf("range %d-%d, X = form broke", c.Min, c.Max)) + "\n")
	return b.String()
}

func (v *sessionView) ID() ViewID    { return ViewSession }
func (v *sessionView) Title() string { return v.protocol.DisplayName() }
func (v *sessionView) ShortHelp() []key.Binding {
	return v.keys.ShortHelp()
}
