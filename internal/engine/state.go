package engine

import (
	"errors"
	"fmt"
	"slices"

	"github.com/alexanderramin/pullup/internal/domain"
)

// ErrUnsupportedProtocol is returned when a session is requested for a
// protocol without a state machine.
var ErrUnsupportedProtocol = errors.New("unsupported protocol")

// ErrSessionActive is returned by Start while another session is running.
var ErrSessionActive = errors.New("a session is already in progress")

// CommandKind enumerates the inputs a protocol machine reacts to.
type CommandKind int

const (
	CmdStart CommandKind = iota
	CmdCompleteUnit
	CmdCompleteRep
	CmdExpire
	CmdUndo
	CmdSelect
)

func (k CommandKind) String() string {
	switch k {
	case CmdStart:
		return "start"
	case CmdCompleteUnit:
		return "complete_unit"
	case CmdCompleteRep:
		return "complete_rep"
	case CmdExpire:
		return "expire"
	case CmdUndo:
		return "undo"
	case CmdSelect:
		return "select"
	default:
		return fmt.Sprintf("command(%d)", int(k))
	}
}

// Command is one input to a transition. Value is optional and only read by
// CmdCompleteUnit and CmdSelect.
type Command struct {
	Kind  CommandKind
	Value *domain.UnitResult
}

// EffectKind enumerates the side effects a transition asks the controller
// to perform.
type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectStartCountdown
	EffectCancelCountdown
)

// Effect is the scheduling request returned alongside a new state.
type Effect struct {
	Kind    EffectKind
	Seconds int
}

func startCountdown(seconds int) Effect {
	return Effect{Kind: EffectStartCountdown, Seconds: seconds}
}

var (
	noEffect     = Effect{}
	cancelEffect = Effect{Kind: EffectCancelCountdown}
)

// undoEntry is the depth-1 history kept by the ladder protocol.
type undoEntry struct {
	result domain.UnitResult
	reps   int
}

// SessionState is the complete in-memory state of a guided session.
// Transitions treat it as a value and never mutate the receiver's Results.
type SessionState struct {
	Config    domain.SessionConfig
	Phase     domain.Phase
	UnitIndex int // 1-based; len(Results)+1 once started
	Results   []domain.UnitResult

	// Reps is the ladder's in-progress repetition counter.
	Reps int

	// Entry is non-nil while the rep entry control is open.
	Entry    *WheelConstraint
	Selected domain.UnitResult
	// EntrySeq increments on every opening so the controller can tell a
	// reopened entry from the same one.
	EntrySeq int

	undo *undoEntry
}

// CanUndo reports whether a unit close can be reversed.
func (s SessionState) CanUndo() bool { return s.undo != nil }

// openEntry recomputes the constraint from the results so far. A value
// already picked on a preview entry survives the reopening if still allowed.
func (s SessionState) openEntry() SessionState {
	c := Resolve(s.Results)
	keep := s.Entry != nil && c.Allows(s.Selected)
	s.Entry = &c
	s.EntrySeq++
	if !keep {
		s.Selected = c.Initial
	}
	return s
}

func (s SessionState) closeEntry() SessionState {
	s.Entry = nil
	return s
}

// appendResult records r for the current unit and advances the index,
// entering Complete when the last unit is recorded.
func (s SessionState) appendResult(r domain.UnitResult) SessionState {
	s.Results = append(slices.Clone(s.Results), r)
	s.UnitIndex = len(s.Results) + 1
	if len(s.Results) >= s.Config.TotalUnits {
		s.Phase = domain.PhaseComplete
	} else {
		s.Phase = domain.PhasePerforming
	}
	return s
}

func (s SessionState) selectValue(cmd Command) SessionState {
	if s.Entry == nil || cmd.Value == nil || !s.Entry.Allows(*cmd.Value) {
		return s
	}
	s.Selected = *cmd.Value
	return s
}

func begin(s SessionState) (SessionState, Effect) {
	s.Phase = domain.PhasePerforming
	s.UnitIndex = 1
	s.Results = nil
	return s, noEffect
}

// Machine is a protocol's pure transition function.
type Machine interface {
	Protocol() domain.Protocol
	Transition(s SessionState, cmd Command) (SessionState, Effect)
}

// NewMachine returns the state machine for p.
func NewMachine(p domain.Protocol) (Machine, error) {
	switch p {
	case domain.ProtocolMaxEffort:
		return MaxEffort{}, nil
	case domain.ProtocolAutoVolume:
		return AutoVolume{}, nil
	case domain.ProtocolLadder:
		return Ladder{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedProtocol, p)
}
