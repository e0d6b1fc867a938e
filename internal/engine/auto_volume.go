package engine

import "github.com/alexanderramin/pullup/internal/domain"

// AutoVolume runs many sub-maximal sets on short rests. The count is picked
// while the rest runs and committed the moment the rest ends, with no
// confirmation step.
type AutoVolume struct{}

func (AutoVolume) Protocol() domain.Protocol { return domain.ProtocolAutoVolume }

func (AutoVolume) Transition(s SessionState, cmd Command) (SessionState, Effect) {
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
		case CmdSelect, CmdCompleteUnit:
			return s.selectValue(cmd), noEffect
		case CmdExpire:
			return s.closeEntry().appendResult(s.Selected), noEffect
		}
	}
	return s, noEffect
}
