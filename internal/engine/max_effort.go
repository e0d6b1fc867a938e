package engine

import "github.com/alexanderramin/pullup/internal/domain"

// MaxEffort runs few all-out sets with long rests. The work phase is
// untimed; the count is entered after the rest has elapsed and confirmed
// explicitly.
type MaxEffort struct{}

func (MaxEffort) Protocol() domain.Protocol { return domain.ProtocolMaxEffort }

func (MaxEffort) Transition(s SessionState, cmd Command) (SessionState, Effect) {
	switch s.Phase {
	case domain.PhaseIdle:
		if cmd.Kind == CmdStart {
			return begin(s)
		}

	case domain.PhasePerforming:
		if cmd.Kind == CmdCompleteUnit {
			s.Phase = domain.PhaseResting
			s = s.openEntry()
			return s, startCountdown(s.Config.RestSeconds)
		}

	case domain.PhaseResting:
		switch cmd.Kind {
		case CmdSelect:
			return s.selectValue(cmd), noEffect
		case CmdExpire:
			s.Phase = domain.PhaseRecordingInput
			return s.openEntry(), noEffect
		}

	case domain.PhaseRecordingInput:
		switch cmd.Kind {
		case CmdSelect:
			return s.selectValue(cmd), noEffect
		case CmdCompleteUnit:
			v := s.Selected
			if cmd.Value != nil {
				if !s.Entry.Allows(*cmd.Value) {
					return s, noEffect
				}
				v = *cmd.Value
			}
			return s.closeEntry().appendResult(v), noEffect
		}
	}
	return s, noEffect
}
