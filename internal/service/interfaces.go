package service

import (
	"context"
	"time"

	"github.com/alexanderramin/pullup/internal/domain"
	"github.com/alexanderramin/pullup/internal/importer"
	"github.com/alexanderramin/pullup/internal/repository"
)

// WorkoutSummary pairs a workout with the previous workout of the same
// protocol, if any.
type WorkoutSummary struct {
	Workout   *domain.Workout
	Previous  *domain.Workout
	Score     int
	PrevScore int
}

// Delta is the score change against the previous workout; zero when there is
// no previous workout.
func (s WorkoutSummary) Delta() int {
	if s.Previous == nil {
		return 0
	}
	return s.Score - s.PrevScore
}

type WorkoutService interface {
	// Record persists a completed guided session.
	Record(ctx context.Context, p domain.Protocol, results []domain.UnitResult) (*domain.Workout, error)
	// LogManual persists a workout entered after the fact.
	LogManual(ctx context.Context, p domain.Protocol, date time.Time, reps []int) (*domain.Workout, error)
	GetByID(ctx context.Context, id string) (*domain.Workout, error)
	List(ctx context.Context, f repository.WorkoutFilter) ([]*domain.Workout, error)
	HasWorkoutOn(ctx context.Context, date time.Time) (bool, error)
	Summary(ctx context.Context, id string) (*WorkoutSummary, error)
	EditSet(ctx context.Context, id string, set, reps int) (*domain.Workout, error)
	Delete(ctx context.Context, id string) error
}

// ImportResult holds the outcome of a workout import.
type ImportResult struct {
	Imported int
	// Skipped counts records whose id already exists.
	Skipped int
}

// BackupService moves the workout log in and out of JSON backup files.
type BackupService interface {
	Export(ctx context.Context, f repository.WorkoutFilter) (*importer.WorkoutFile, error)
	ImportWorkouts(ctx context.Context, filePath string) (*ImportResult, error)
	ImportFromFile(ctx context.Context, file *importer.WorkoutFile) (*ImportResult, error)
}
