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

const recentLimit = 5

// ── messages ─────────────────────────────────────────────────────────────────

type homeLoadedMsg struct {
	recent []*domain.Workout
	err    error
}

// todayCheckedMsg reports whether a workout is already dated today.
type todayCheckedMsg struct {
	protocol domain.Protocol
	done     bool
	err      error
}

// ── view ─────────────────────────────────────────────────────────────────────

type homeKeyMap struct {
	Protocols []key.Binding // one per domain.Protocols entry
	Pick      key.Binding
	History   key.Binding
	Anyway    key.Binding
}

// homeView is the bottom of the stack: the protocol menu and the most
// recent workouts.
type homeView struct {
	state   *SharedState
	keys    homeKeyMap
	recent  []*domain.Workout
	loading bool
	err     error

	picked domain.Protocol
	// blocked is the protocol refused because today already has a
	// workout; Anyway starts it regardless.
	blocked domain.Protocol
}

func newHomeView(state *SharedState) *homeView {
	keys := homeKeyMap{
		Pick:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
		History: key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "history")),
		Anyway:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "train anyway")),
	}
	for i, p := range domain.Protocols {
		n := fmt.Sprintf("%d", i+1)
		keys.Protocols = append(keys.Protocols,
			key.NewBinding(key.WithKeys(n), key.WithHelp(n, p.DisplayName())))
	}
	return &homeView{state: state, keys: keys, loading: true}
}

func (v *homeView) ID() ViewID    { return ViewHome }
func (v *homeView) Title() string { return "" }

func (v *homeView) ShortHelp() []key.Binding {
	if v.blocked != "" {
		return []key.Binding{v.keys.Anyway, v.keys.Pick, v.keys.History}
	}
	return []key.Binding{v.keys.Pick, v.keys.History}
}

func (v *homeView) Init() tea.Cmd {
	return v.loadRecent()
}

func (v *homeView) loadRecent() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		ws, err := app.Workouts.List(context.Background(), repository.WorkoutFilter{Limit: recentLimit})
		return homeLoadedMsg{recent: ws, err: err}
	}
}

func (v *homeView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case homeLoadedMsg:
		v.loading = false
		v.recent, v.err = msg.recent, msg.err
		return v, nil

	case refreshViewMsg:
		return v, v.loadRecent()

	case todayCheckedMsg:
		switch {
		case msg.err != nil:
			return v, setStatus(errorStatus(msg.err))
		case msg.done:
			v.blocked = msg.protocol
			return v, setStatus(formatter.StyleYellow.Render("Workout already completed today. Come back tomorrow!") +
				formatter.Dim(fmt.Sprintf("  enter: start %s anyway", msg.protocol.DisplayName())))
		}
		return v, startSessionCmd(v.state, msg.protocol)

	case tea.KeyMsg:
		blocked := v.blocked
		v.blocked = ""
		if blocked != "" && key.Matches(msg, v.keys.Anyway) {
			return v, startSessionCmd(v.state, blocked)
		}
		for i, b := range v.keys.Protocols {
			if key.Matches(msg, b) {
				return v, checkTodayCmd(v.state, domain.Protocols[i])
			}
		}
		switch {
		case key.Matches(msg, v.keys.Pick):
			form := wizardSelectProtocol(&v.picked)
			return v, startWizardCmd(v.state, "Start", form, func() tea.Cmd {
				return checkTodayCmd(v.state, v.picked)
			})
		case key.Matches(msg, v.keys.History):
			return v, pushView(newHistoryView(v.state))
		}
	}
	return v, nil
}

// checkTodayCmd looks for a workout already dated on the local calendar day
// before a guided session for p is started.
func checkTodayCmd(state *SharedState, p domain.Protocol) tea.Cmd {
	app := state.App
	today := state.Now()
	return func() tea.Msg {
		done, err := app.Workouts.HasWorkoutOn(context.Background(), today)
		return todayCheckedMsg{protocol: p, done: done, err: err}
	}
}

// startSessionCmd pushes a guided session for p, or reports why it could
// not start.
func startSessionCmd(state *SharedState, p domain.Protocol) tea.Cmd {
	sv, err := newSessionView(state, p)
	if err != nil {
		return setStatus(errorStatus(err))
	}
	return pushView(sv)
}

func (v *homeView) View() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + formatter.StyleHeader.Render("START A SESSION") + "\n\n")
	for i, p := range domain.Protocols {
		fmt.Fprintf(&b, "  %s  %s\n", formatter.Bold(fmt.Sprintf("%d", i+1)), formatter.ProtocolBadge(p))
	}

	b.WriteString("\n  " + formatter.StyleHeader.Render("RECENT") + "\n\n")
	switch {
	case v.loading:
		b.WriteString("  " + formatter.Dim("Loading...") + "\n")
	case v.err != nil:
		b.WriteString("  " + errorStatus(v.err) + "\n")
	case len(v.recent) == 0:
		b.WriteString("  " + formatter.Dim("No workouts yet.") + "\n")
	default:
		table := formatter.RenderWorkoutTable(v.recent, v.state.Now())
		for _, line := range strings.Split(strings.TrimRight(table, "\n"), "\n") {
			b.WriteString("  " + line + "\n")
		}
	}
	return b.String()
}
