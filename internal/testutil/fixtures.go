package testutil

import (
	"time"

	"github.com/alexanderramin/pullup/internal/domain"
	"github.com/google/uuid"
)

// Workout options
type WorkoutOption func(*domain.Workout)

func WithReps(reps ...int) WorkoutOption {
	return func(w *domain.Workout) {
		w.Reps = append([]int(nil), reps...)
	}
}

func WithProtocol(p domain.Protocol) WorkoutOption {
	return func(w *domain.Workout) {
		w.Protocol = p
	}
}

func WithDate(d time.Time) WorkoutOption {
	return func(w *domain.Workout) {
		y, m, day := d.Date()
		w.Date = time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	}
}

// WithCreatedAt sets both timestamps; ordering of "previous workout" lookups
// follows CreatedAt.
func WithCreatedAt(t time.Time) WorkoutOption {
	return func(w *domain.Workout) {
		w.CreatedAt = t.UTC().Truncate(time.Second)
		w.UpdatedAt = w.CreatedAt
	}
}

// NewTestWorkout returns a max-effort workout dated today (local calendar
// day) with reps 7,5,4.
func NewTestWorkout(opts ...WorkoutOption) *domain.Workout {
	y, m, d := time.Now().Date()
	now := time.Now().UTC().Truncate(time.Second)
	w := &domain.Workout{
		ID:        uuid.New().String(),
		Protocol:  domain.ProtocolMaxEffort,
		Date:      time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		Reps:      []int{7, 5, 4},
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}
