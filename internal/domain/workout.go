package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidSet  = errors.New("set number out of range")
	ErrInvalidReps = errors.New("repetition count must be non-negative")
)

// SessionConfig is the immutable shape of one guided session.
type SessionConfig struct {
	Protocol    Protocol
	TotalUnits  int
	RestSeconds int
}

// DefaultSessionConfig returns the canonical configuration for a protocol.
// The bool is false for an unknown protocol.
func DefaultSessionConfig(p Protocol) (SessionConfig, bool) {
	switch p {
	case ProtocolMaxEffort:
		return SessionConfig{Protocol: p, TotalUnits: 3, RestSeconds: 300}, true
	case ProtocolAutoVolume:
		return SessionConfig{Protocol: p, TotalUnits: 10, RestSeconds: 60}, true
	case ProtocolLadder:
		return SessionConfig{Protocol: p, TotalUnits: 5, RestSeconds: 30}, true
	}
	return SessionConfig{}, false
}

// Validate checks the numeric bounds of the config.
func (c SessionConfig) Validate() error {
	if c.TotalUnits <= 0 {
		return fmt.Errorf("total units must be positive, got %d", c.TotalUnits)
	}
	if c.RestSeconds < 0 {
		return fmt.Errorf("rest seconds must be non-negative, got %d", c.RestSeconds)
	}
	return nil
}

// Workout is a persisted training session: the stored rep list tagged with
// its protocol and calendar date.
type Workout struct {
	ID        string
	Protocol  Protocol
	Date      time.Time
	Reps      []int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewWorkout builds a workout record from a completed result sequence.
func NewWorkout(p Protocol, date time.Time, results []UnitResult) *Workout {
	y, m, d := date.Date()
	return &Workout{
		Protocol: p,
		Date:     time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		Reps:     StoredReps(results),
	}
}

// Score returns the protocol-aware total for the workout.
func (w *Workout) Score() int {
	return TotalScore(w.Protocol, w.Reps)
}

// TotalReps returns the plain sum of recorded values.
func (w *Workout) TotalReps() int {
	total := 0
	for _, r := range w.Reps {
		total += r
	}
	return total
}

// EditSet replaces the value of a 1-based set number.
func (w *Workout) EditSet(set, reps int, now time.Time) error {
	if set < 1 || set > len(w.Reps) {
		return fmt.Errorf("set %d of %d: %w", set, len(w.Reps), ErrInvalidSet)
	}
	if reps < 0 {
		return fmt.Errorf("set %d: %w", set, ErrInvalidReps)
	}
	w.Reps[set-1] = reps
	w.UpdatedAt = now
	return nil
}

// LadderScore is the volume of one ladder unit climbed to n:
// n + (n-1) + ... + 1.
func LadderScore(n int) int {
	if n <= 0 {
		return 0
	}
	return n * (n + 1) / 2
}

// TotalScore sums a stored rep list. Ladder units count their full climb.
func TotalScore(p Protocol, reps []int) int {
	total := 0
	for _, r := range reps {
		if p == ProtocolLadder {
			total += LadderScore(r)
			continue
		}
		if r > 0 {
			total += r
		}
	}
	return total
}
