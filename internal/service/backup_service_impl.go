package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/pullup/internal/db"
	"github.com/alexanderramin/pullup/internal/importer"
	"github.com/alexanderramin/pullup/internal/repository"
)

type backupService struct {
	workouts repository.WorkoutRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
	now      func() time.Time
}

func NewBackupService(
	workouts repository.WorkoutRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) BackupService {
	return &backupService{
		workouts: workouts,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *backupService) Export(ctx context.Context, f repository.WorkoutFilter) (*importer.WorkoutFile, error) {
	ws, err := s.workouts.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("listing workouts: %w", err)
	}
	return importer.Export(ws, s.now()), nil
}

func (s *backupService) ImportWorkouts(ctx context.Context, filePath string) (*ImportResult, error) {
	file, err := importer.LoadWorkoutFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportFromFile(ctx, file)
}

// ImportFromFile validates the whole file first, then inserts every new
// workout in one transaction. Records whose id is already stored are
// skipped, so importing the same backup twice changes nothing.
func (s *backupService) ImportFromFile(ctx context.Context, file *importer.WorkoutFile) (res *ImportResult, err error) {
	startedAt := time.Now().UTC()
	ev := UseCaseEvent{
		Name:  "import_workouts",
		Attrs: []slog.Attr{slog.Int("records", len(file.Workouts))},
	}
	defer func() {
		if res != nil {
			ev.Attrs = append(ev.Attrs, slog.Int("imported", res.Imported), slog.Int("skipped", res.Skipped))
		}
		observeSince(ctx, s.observer, &ev, startedAt, err)
	}()

	if errs := importer.ValidateWorkoutFile(file); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	ws, err := importer.Convert(file, s.now())
	if err != nil {
		return nil, fmt.Errorf("converting import file: %w", err)
	}

	result := &ImportResult{}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txWorkouts := repository.NewSQLiteWorkoutRepo(tx)
		for i, w := range ws {
			if w.ID != "" {
				_, err := txWorkouts.GetByID(ctx, w.ID)
				if err == nil {
					result.Skipped++
					continue
				}
				if !errors.Is(err, repository.ErrNotFound) {
					return err
				}
			}
			if err := txWorkouts.Create(ctx, w); err != nil {
				return fmt.Errorf("creating workout %d: %w", i+1, err)
			}
			result.Imported++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return errors.New(msg)
}
