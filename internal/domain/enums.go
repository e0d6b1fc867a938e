package domain

import "fmt"

// Protocol identifies a guided workout protocol.
type Protocol string

const (
	ProtocolMaxEffort  Protocol = "max-day"
	ProtocolAutoVolume Protocol = "sub-max-volume"
	ProtocolLadder     Protocol = "ladder-volume"
)

// ValidProtocols is the canonical set of accepted protocol strings.
var ValidProtocols = map[Protocol]bool{
	ProtocolMaxEffort:  true,
	ProtocolAutoVolume: true,
	ProtocolLadder:     true,
}

// Protocols lists the protocols in display order.
var Protocols = []Protocol{ProtocolMaxEffort, ProtocolAutoVolume, ProtocolLadder}

// ParseProtocol accepts the canonical slug or one of the short aliases
// ("max", "volume", "ladder").
func ParseProtocol(s string) (Protocol, error) {
	switch s {
	case "max", "max-effort":
		return ProtocolMaxEffort, nil
	case "volume", "auto-volume":
		return ProtocolAutoVolume, nil
	case "ladder":
		return ProtocolLadder, nil
	}
	p := Protocol(s)
	if !ValidProtocols[p] {
		return "", fmt.Errorf("unknown protocol %q (want max-day, sub-max-volume or ladder-volume)", s)
	}
	return p, nil
}

// DisplayName returns the human-facing protocol name.
func (p Protocol) DisplayName() string {
	switch p {
	case ProtocolMaxEffort:
		return "Max Day"
	case ProtocolAutoVolume:
		return "Sub Max Volume"
	case ProtocolLadder:
		return "Ladder Volume"
	default:
		return string(p)
	}
}

// Phase is the position of a guided session in its protocol.
type Phase string

const (
	PhaseIdle           Phase = "idle"
	PhasePerforming     Phase = "performing"
	PhaseResting        Phase = "resting"
	PhaseRecordingInput Phase = "recording_input"
	PhaseComplete       Phase = "complete"
)
