package engine

import (
	"slices"

	"github.com/alexanderramin/pullup/internal/domain"
)

// Ladder climbs one rep at a time within a unit, resting between reps.
// Closing a unit can be undone until the rest that follows it ends.
type Ladder struct{}

func (Ladder) Protocol() domain.Protocol { return domain.ProtocolLadder }

func (Ladder) Transition(s SessionState, cmd Command) (SessionState, Effect) {
	if s.Phase == domain.PhaseIdle {
		if cmd.Kind == CmdStart {
			return begin(s)
		}
		return s, noEffect
	}

	switch cmd.Kind {
	case CmdCompleteRep:
		if s.Phase != domain.PhasePerforming {
			return s, noEffect
		}
		s.Reps++
		s.undo = nil
		s.Phase = domain.PhaseResting
		return s, startCountdown(s.Config.RestSeconds)

	case CmdCompleteUnit:
		if s.undo != nil || s.Phase == domain.PhaseComplete {
			return s, noEffect
		}
		// The first unit cannot close before a rep is counted.
		if s.Reps == 0 && len(s.Results) == 0 {
			return s, noEffect
		}
		r := domain.Reps(s.Reps)
		if cmd.Value != nil {
			r = *cmd.Value
		}
		s.undo = &undoEntry{result: r, reps: s.Reps}
		s.Reps = 0
		s = s.appendResult(r)
		if s.Phase != domain.PhaseComplete {
			s.Phase = domain.PhaseResting
		}
		// The last unit also gets its rest; completion is reported once it ends.
		return s, startCountdown(s.Config.RestSeconds)

	case CmdUndo:
		if s.undo == nil || len(s.Results) == 0 {
			return s, noEffect
		}
		s.Results = slices.Clone(s.Results[:len(s.Results)-1])
		s.UnitIndex = len(s.Results) + 1
		s.Reps = s.undo.reps
		s.undo = nil
		s.Phase = domain.PhasePerforming
		return s, cancelEffect

	case CmdExpire:
		s.undo = nil
		if s.Phase == domain.PhaseResting {
			s.Phase = domain.PhasePerforming
		}
		return s, noEffect
	}
	return s, noEffect
}
