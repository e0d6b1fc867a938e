package db_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/pullup/internal/db"
	"github.com/alexanderramin/pullup/internal/domain"
	"github.com/alexanderramin/pullup/internal/repository"
	"github.com/alexanderramin/pullup/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uowSetup(t *testing.T) (*db.SQLiteUnitOfWork, *repository.SQLiteWorkoutRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	return db.NewSQLiteUnitOfWork(database), repository.NewSQLiteWorkoutRepo(database)
}

func ladderWorkout(reps ...int) *domain.Workout {
	return testutil.NewTestWorkout(
		testutil.WithProtocol(domain.ProtocolLadder),
		testutil.WithReps(reps...),
		testutil.WithDate(time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)),
	)
}

func TestWithinTx_CommitsWorkoutWrites(t *testing.T) {
	uow, repo := uowSetup(t)
	ctx := context.Background()
	w := ladderWorkout(3, 2, 2)

	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txRepo := repository.NewSQLiteWorkoutRepo(tx)
		if err := txRepo.Create(ctx, w); err != nil {
			return err
		}
		if err := w.EditSet(2, 4, time.Now().UTC()); err != nil {
			return err
		}
		return txRepo.Update(ctx, w)
	})
	require.NoError(t, err)

	stored, err := repo.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4, 2}, stored.Reps)
	assert.Equal(t, domain.ProtocolLadder, stored.Protocol)
}

func TestWithinTx_RollbackDiscardsCreate(t *testing.T) {
	uow, repo := uowSetup(t)
	ctx := context.Background()
	w := ladderWorkout(1, 1)
	boom := errors.New("import aborted")

	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteWorkoutRepo(tx).Create(ctx, w); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = repo.GetByID(ctx, w.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestWithinTx_RollbackKeepsPriorReps(t *testing.T) {
	uow, repo := uowSetup(t)
	ctx := context.Background()
	w := ladderWorkout(5, 4, 4)
	require.NoError(t, repo.Create(ctx, w))

	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txRepo := repository.NewSQLiteWorkoutRepo(tx)
		cur, err := txRepo.GetByID(ctx, w.ID)
		if err != nil {
			return err
		}
		cur.Reps[0] = 9
		if err := txRepo.Update(ctx, cur); err != nil {
			return err
		}
		// A second write fails after the first succeeded.
		return txRepo.Create(ctx, cur)
	})
	require.Error(t, err)

	stored, err := repo.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 4, 4}, stored.Reps)
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	uow, repo := uowSetup(t)
	ctx := context.Background()
	w := ladderWorkout(2)

	assert.Panics(t, func() {
		_ = uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			_ = repository.NewSQLiteWorkoutRepo(tx).Create(ctx, w)
			panic("boom")
		})
	})

	list, err := repo.List(ctx, repository.WorkoutFilter{Protocol: domain.ProtocolLadder})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestWithinTx_BeginFailsOnClosedDB(t *testing.T) {
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Close())

	err = db.NewSQLiteUnitOfWork(database).WithinTx(context.Background(), func(context.Context, db.DBTX) error {
		t.Fatal("callback must not run")
		return nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "beginning transaction")
}
