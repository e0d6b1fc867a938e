package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/pullup/internal/db"
	"github.com/alexanderramin/pullup/internal/domain"
	"github.com/alexanderramin/pullup/internal/repository"
)

type workoutService struct {
	workouts repository.WorkoutRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
	now      func() time.Time
}

func NewWorkoutService(
	workouts repository.WorkoutRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) WorkoutService {
	return &workoutService{
		workouts: workouts,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
	}
}

func (s *workoutService) Record(ctx context.Context, p domain.Protocol, results []domain.UnitResult) (w *domain.Workout, err error) {
	startedAt := time.Now().UTC()
	ev := UseCaseEvent{Name: "record_workout", Protocol: p, Sets: len(results)}
	defer func() { observeSince(ctx, s.observer, &ev, startedAt, err) }()

	if !domain.ValidProtocols[p] {
		return nil, fmt.Errorf("recording workout: unknown protocol %q", p)
	}
	// The calendar date is the local day; timestamps are stored in UTC.
	now := s.now()
	w = domain.NewWorkout(p, now, results)
	w.CreatedAt = now.UTC()
	w.UpdatedAt = w.CreatedAt
	if err = s.workouts.Create(ctx, w); err != nil {
		return nil, err
	}
	ev.WorkoutID = w.ID
	return w, nil
}

func (s *workoutService) LogManual(ctx context.Context, p domain.Protocol, date time.Time, reps []int) (w *domain.Workout, err error) {
	startedAt := time.Now().UTC()
	ev := UseCaseEvent{Name: "log_workout", Protocol: p, Sets: len(reps)}
	defer func() { observeSince(ctx, s.observer, &ev, startedAt, err) }()

	if !domain.ValidProtocols[p] {
		return nil, fmt.Errorf("logging workout: unknown protocol %q", p)
	}
	results := make([]domain.UnitResult, len(reps))
	for i, r := range reps {
		if r < 0 {
			return nil, fmt.Errorf("set %d: %w", i+1, domain.ErrInvalidReps)
		}
		results[i] = domain.Reps(r)
	}
	now := s.now().UTC()
	w = domain.NewWorkout(p, date, results)
	w.CreatedAt = now
	w.UpdatedAt = now
	if err = s.workouts.Create(ctx, w); err != nil {
		return nil, err
	}
	ev.WorkoutID = w.ID
	return w, nil
}

func (s *workoutService) GetByID(ctx context.Context, id string) (*domain.Workout, error) {
	return s.workouts.GetByID(ctx, id)
}

// HasWorkoutOn reports whether any workout is dated on the calendar day of
// date, read in date's location.
func (s *workoutService) HasWorkoutOn(ctx context.Context, date time.Time) (bool, error) {
	n, err := s.workouts.CountOn(ctx, date)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *workoutService) List(ctx context.Context, f repository.WorkoutFilter) ([]*domain.Workout, error) {
	return s.workouts.List(ctx, f)
}

func (s *workoutService) Summary(ctx context.Context, id string) (*WorkoutSummary, error) {
	w, err := s.workouts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	sum := &WorkoutSummary{Workout: w, Score: w.Score()}

	prev, err := s.workouts.LatestBefore(ctx, w.Protocol, w.CreatedAt)
	switch {
	case errors.Is(err, repository.ErrNotFound):
	case err != nil:
		return nil, fmt.Errorf("loading previous workout: %w", err)
	default:
		sum.Previous = prev
		sum.PrevScore = prev.Score()
	}
	return sum, nil
}

// EditSet replaces one set value inside a single transaction.
func (s *workoutService) EditSet(ctx context.Context, id string, set, reps int) (w *domain.Workout, err error) {
	startedAt := time.Now().UTC()
	ev := UseCaseEvent{
		Name:      "edit_workout_set",
		WorkoutID: id,
		Attrs:     []slog.Attr{slog.Int("set", set), slog.Int("reps", reps)},
	}
	defer func() { observeSince(ctx, s.observer, &ev, startedAt, err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txWorkouts := repository.NewSQLiteWorkoutRepo(tx)

		cur, err := txWorkouts.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := cur.EditSet(set, reps, s.now().UTC()); err != nil {
			return err
		}
		if err := txWorkouts.Update(ctx, cur); err != nil {
			return err
		}
		w = cur
		return nil
	})
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (s *workoutService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now().UTC()
	ev := UseCaseEvent{Name: "delete_workout", WorkoutID: id}
	defer func() { observeSince(ctx, s.observer, &ev, startedAt, err) }()

	return s.workouts.Delete(ctx, id)
}
