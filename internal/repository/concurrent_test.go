package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/pullup/internal/db"
	"github.com/alexanderramin/pullup/internal/domain"
	"github.com/alexanderramin/pullup/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Background saves run while the history view reads; readers must never see
// a half-written row.
func TestConcurrentAccess_ReadDuringWrite(t *testing.T) {
	database := testutil.NewFileTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteWorkoutRepo(database)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			w := testutil.NewTestWorkout(testutil.WithProtocol(domain.ProtocolAutoVolume),
				testutil.WithReps(8, 8, 8, 7, 7, 7, 6, 6, 6, 5))
			if err := repo.Create(ctx, w); err != nil {
				t.Errorf("writer: create workout %d: %v", i, err)
				return
			}
		}
	}()

	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				list, err := repo.List(ctx, WorkoutFilter{})
				if err != nil {
					t.Errorf("reader %d: list workouts: %v", reader, err)
					return
				}
				for _, w := range list {
					if w.ID == "" || len(w.Reps) != 10 {
						t.Errorf("reader %d: got partial workout %+v", reader, w)
					}
				}
			}
		}(r)
	}

	wg.Wait()

	list, err := repo.List(ctx, WorkoutFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 20)
}

func TestConcurrentAccess_ParallelEditsInTx(t *testing.T) {
	database := testutil.NewFileTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteWorkoutRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	w := testutil.NewTestWorkout(testutil.WithProtocol(domain.ProtocolLadder), testutil.WithReps(0, 0, 0, 0, 0))
	require.NoError(t, repo.Create(ctx, w))

	retryTx := func(fn func() error) error {
		const maxRetries = 10
		var err error
		for attempt := 0; attempt < maxRetries; attempt++ {
			if err = fn(); err == nil {
				return nil
			}
			time.Sleep(time.Millisecond * time.Duration(1<<attempt))
		}
		return err
	}

	var wg sync.WaitGroup
	errCh := make(chan error, 5)
	for set := 1; set <= 5; set++ {
		wg.Add(1)
		go func(set int) {
			defer wg.Done()
			err := retryTx(func() error {
				return uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
					txRepo := NewSQLiteWorkoutRepo(tx)
					cur, err := txRepo.GetByID(ctx, w.ID)
					if err != nil {
						return err
					}
					if err := cur.EditSet(set, set, time.Now()); err != nil {
						return err
					}
					return txRepo.Update(ctx, cur)
				})
			})
			if err != nil {
				errCh <- err
			}
		}(set)
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		require.NoError(t, err)
	}

	got, err := repo.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, got.Reps, "no edit may be lost")
}
