package engine

import (
	"fmt"
	"slices"
	"time"

	"github.com/alexanderramin/pullup/internal/domain"
)

// Snapshot is the read model handed to the presentation layer.
type Snapshot struct {
	Active     bool
	Protocol   domain.Protocol
	Phase      domain.Phase
	UnitIndex  int
	TotalUnits int
	Results    []domain.UnitResult
	Reps       int
	Countdown  CountdownState

	// Entry is non-nil while a count can be picked.
	Entry    *WheelConstraint
	Selected domain.UnitResult
	Options  []domain.UnitResult
	Cursor   int

	CanUndo bool
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithObserver routes lifecycle events to o.
func WithObserver(o Observer) ControllerOption {
	return func(c *Controller) {
		if o != nil {
			c.observer = o
		}
	}
}

// Controller owns the single in-memory session. It feeds commands to the
// protocol machine, runs the countdown each transition asks for, and
// reports the finished result sequence exactly once.
//
// Controller is not safe for concurrent use; all calls are expected on the
// caller's event loop.
type Controller struct {
	clock      Clock
	observer   Observer
	onComplete func([]domain.UnitResult)

	active    bool
	machine   Machine
	state     SessionState
	countdown *Countdown
	wheel     *RepWheel
	entrySeq  int
}

// NewController returns an idle controller using clock for all timing.
func NewController(clock Clock, opts ...ControllerOption) *Controller {
	if clock == nil {
		clock = SystemClock{}
	}
	c := &Controller{clock: clock, observer: NoopObserver{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnComplete registers the terminal callback. It runs after the controller
// has already discarded the session, so it may start a new one.
func (c *Controller) OnComplete(fn func(results []domain.UnitResult)) {
	c.onComplete = fn
}

// Start begins a session for cfg.
func (c *Controller) Start(cfg domain.SessionConfig) error {
	if c.active {
		return ErrSessionActive
	}
	m, err := NewMachine(cfg.Protocol)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid session config: %w", err)
	}

	c.machine = m
	c.state = SessionState{Config: cfg, Phase: domain.PhaseIdle}
	c.active = true
	c.entrySeq = 0
	c.emit("session_started", map[string]any{"units": cfg.TotalUnits, "rest_s": cfg.RestSeconds})
	c.apply(Command{Kind: CmdStart})
	return nil
}

// CompleteUnit signals the end of the current unit, or confirms a count.
// A nil value uses the entry's current selection.
func (c *Controller) CompleteUnit(value *domain.UnitResult) {
	c.apply(Command{Kind: CmdCompleteUnit, Value: value})
}

// CompleteRep counts one repetition of a ladder unit.
func (c *Controller) CompleteRep() {
	c.apply(Command{Kind: CmdCompleteRep})
}

// FastForward force-expires the live countdown.
func (c *Controller) FastForward() {
	if c.countdown != nil {
		c.countdown.ForceExpire()
	}
}

// Undo reverses the last unit close where the protocol supports it.
func (c *Controller) Undo() {
	if !c.active || !c.state.CanUndo() {
		return
	}
	c.emit("undo", nil)
	c.apply(Command{Kind: CmdUndo})
}

// Tick refreshes the live countdown from the clock.
func (c *Controller) Tick() {
	if c.countdown != nil {
		c.countdown.Tick()
	}
}

// StepEntry moves the entry cursor by delta.
func (c *Controller) StepEntry(delta int) {
	if c.wheel == nil {
		return
	}
	v := c.wheel.Step(delta)
	c.apply(Command{Kind: CmdSelect, Value: &v})
}

// DragEntry moves the entry cursor by a vertical drag distance in pixels.
func (c *Controller) DragEntry(dy float64) {
	if c.wheel == nil {
		return
	}
	v := c.wheel.Drag(dy)
	c.apply(Command{Kind: CmdSelect, Value: &v})
}

// SelectEntry moves the entry cursor to v, reporting false if v is not
// selectable.
func (c *Controller) SelectEntry(v domain.UnitResult) bool {
	if c.wheel == nil || !c.wheel.Select(v) {
		return false
	}
	sel := c.wheel.Value()
	c.apply(Command{Kind: CmdSelect, Value: &sel})
	return true
}

// Discard drops the session without a completion event.
func (c *Controller) Discard() {
	if !c.active {
		return
	}
	c.emit("session_discarded", map[string]any{"recorded": len(c.state.Results)})
	c.reset()
}

// Active reports whether a session is in memory.
func (c *Controller) Active() bool { return c.active }

// Snapshot returns the current read model.
func (c *Controller) Snapshot() Snapshot {
	if !c.active {
		return Snapshot{Phase: domain.PhaseIdle}
	}
	s := Snapshot{
		Active:     true,
		Protocol:   c.state.Config.Protocol,
		Phase:      c.state.Phase,
		UnitIndex:  c.state.UnitIndex,
		TotalUnits: c.state.Config.TotalUnits,
		Results:    slices.Clone(c.state.Results),
		Reps:       c.state.Reps,
		Selected:   c.state.Selected,
		CanUndo:    c.state.CanUndo(),
	}
	if c.countdown != nil {
		s.Countdown = c.countdown.State()
	}
	if c.state.Entry != nil && c.wheel != nil {
		entry := *c.state.Entry
		s.Entry = &entry
		s.Options = c.wheel.Options()
		s.Cursor = c.wheel.Index()
	}
	return s
}

func (c *Controller) apply(cmd Command) {
	if !c.active {
		return
	}
	before := len(c.state.Results)
	next, eff := c.machine.Transition(c.state, cmd)
	c.state = next
	c.syncEntry()

	if len(next.Results) > before {
		c.emit("unit_recorded", map[string]any{"value": next.Results[len(next.Results)-1].String()})
	}

	c.schedule(eff)
	c.maybeComplete()
}

// syncEntry keeps the wheel aligned with the state's entry, building a new
// wheel on every reopening.
func (c *Controller) syncEntry() {
	if c.state.Entry == nil {
		c.wheel = nil
		return
	}
	if c.wheel != nil && c.state.EntrySeq == c.entrySeq {
		return
	}
	c.wheel = NewRepWheel(*c.state.Entry)
	c.wheel.Select(c.state.Selected)
	c.entrySeq = c.state.EntrySeq
}

func (c *Controller) schedule(eff Effect) {
	switch eff.Kind {
	case EffectStartCountdown:
		if c.countdown != nil {
			c.countdown.Cancel()
		}
		var cd *Countdown
		cd = NewCountdown(c.clock, func() { c.countdownExpired(cd) })
		c.countdown = cd
		cd.Start(time.Duration(eff.Seconds) * time.Second)
	case EffectCancelCountdown:
		if c.countdown != nil {
			c.countdown.Cancel()
			c.countdown = nil
		}
	}
}

func (c *Controller) countdownExpired(cd *Countdown) {
	if c.countdown != cd {
		return
	}
	c.countdown = nil
	c.apply(Command{Kind: CmdExpire})
}

func (c *Controller) maybeComplete() {
	if !c.active || c.state.Phase != domain.PhaseComplete || c.countdown != nil {
		return
	}
	results := slices.Clone(c.state.Results)
	fn := c.onComplete
	c.emit("session_complete", map[string]any{"results": domain.StoredReps(results)})
	c.reset()
	if fn != nil {
		fn(results)
	}
}

func (c *Controller) reset() {
	if c.countdown != nil {
		c.countdown.Cancel()
	}
	c.active = false
	c.machine = nil
	c.state = SessionState{}
	c.countdown = nil
	c.wheel = nil
	c.entrySeq = 0
}

func (c *Controller) emit(name string, fields map[string]any) {
	c.observer.ObserveSession(Event{
		Name:     name,
		Protocol: c.state.Config.Protocol,
		Unit:     c.state.UnitIndex,
		Fields:   fields,
	})
}
