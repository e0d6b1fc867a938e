package cli

import (
	"testing"
	"time"

	"github.com/alexanderramin/pullup/internal/engine"
	"github.com/alexanderramin/pullup/internal/teatest"
)

// TestDriver wraps teatest.Driver with pullup-specific inspection methods.
// It provides access to appModel internals (view stack, shared state,
// the running session) that the generic driver can't see.
type TestDriver struct {
	*teatest.Driver
	clock *engine.FakeClock
}

// NewTestDriver creates a TestDriver from a test App.
// It constructs the appModel, sets terminal size, and drains Init()
// (which loads the home view synchronously via in-memory SQLite).
// The cmd timeout covers background saves finishing on the recorder.
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()

	m := newAppModel(app)
	d := teatest.New(t, m, teatest.WithSize(120, 40), teatest.WithCmdTimeout(time.Second))
	d.DrainInit()

	clock, _ := app.Clock.(*engine.FakeClock)
	return &TestDriver{Driver: d, clock: clock}
}

// ── High-level helpers ───────────────────────────────────────────────────────

// Elapse advances the session clock by dur and delivers one refresh tick.
func (d *TestDriver) Elapse(dur time.Duration) {
	d.T.Helper()
	if d.clock == nil {
		d.T.Fatal("Elapse needs an App with an engine.FakeClock")
	}
	d.clock.Advance(dur)
	d.Send(sessionTickMsg{})
}

// StepWheel presses up (n > 0) or down (n < 0) |n| times.
func (d *TestDriver) StepWheel(n int) {
	d.T.Helper()
	for ; n > 0; n-- {
		d.PressUp()
	}
	for ; n < 0; n++ {
		d.PressDown()
	}
}

// ── pullup-specific inspection ───────────────────────────────────────────────

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// ActiveViewTitle returns the Title() of the top view on the stack.
func (d *TestDriver) ActiveViewTitle() string {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ""
	}
	return v.Title()
}

// ViewStackLen returns the number of views on the stack.
func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

// ViewStackIDs returns the ViewIDs of all views on the stack, bottom to top.
func (d *TestDriver) ViewStackIDs() []ViewID {
	m := d.appModel()
	ids := make([]ViewID, len(m.viewStack))
	for i, v := range m.viewStack {
		ids[i] = v.ID()
	}
	return ids
}

// State returns the shared state for inspection.
func (d *TestDriver) State() *SharedState {
	return d.appModel().state
}

// Session returns the running session view, or nil.
func (d *TestDriver) Session() *sessionView {
	m := d.appModel()
	sv, _ := m.activeView().(*sessionView)
	return sv
}

// Snapshot returns the running session's read model.
func (d *TestDriver) Snapshot() engine.Snapshot {
	d.T.Helper()
	sv := d.Session()
	if sv == nil {
		d.T.Fatalf("no session on top of the stack (top is %v)", d.ActiveViewID())
	}
	return sv.ctrl.Snapshot()
}

// Summary returns the summary view on top of the stack, or nil.
func (d *TestDriver) Summary() *summaryView {
	m := d.appModel()
	sv, _ := m.activeView().(*summaryView)
	return sv
}

// IsQuitting returns whether the app has signaled a quit.
// Checks model.quitting (q/Ctrl+C) and the driver's Quitting flag
// (tea.QuitMsg seen while draining).
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}
