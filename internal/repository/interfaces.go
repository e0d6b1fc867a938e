package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/pullup/internal/domain"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// WorkoutFilter narrows a workout listing. Zero values mean no restriction.
type WorkoutFilter struct {
	Protocol domain.Protocol
	Since    time.Time
	Limit    int
}

type WorkoutRepo interface {
	Create(ctx context.Context, w *domain.Workout) error
	GetByID(ctx context.Context, id string) (*domain.Workout, error)
	List(ctx context.Context, f WorkoutFilter) ([]*domain.Workout, error)
	// ListRecent returns workouts dated within days calendar days before today.
	ListRecent(ctx context.Context, today time.Time, days int) ([]*domain.Workout, error)
	// CountOn counts workouts dated on the calendar day of date.
	CountOn(ctx context.Context, date time.Time) (int, error)
	// LatestBefore returns the most recent workout of the protocol created
	// before the given instant.
	LatestBefore(ctx context.Context, p domain.Protocol, before time.Time) (*domain.Workout, error)
	Update(ctx context.Context, w *domain.Workout) error
	Delete(ctx context.Context, id string) error
}
