package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/pullup/internal/domain"
	"github.com/alexanderramin/pullup/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func workoutTestSetup(t *testing.T) *SQLiteWorkoutRepo {
	t.Helper()
	return NewSQLiteWorkoutRepo(testutil.NewTestDB(t))
}

func daysAgo(n int) time.Time {
	return time.Now().AddDate(0, 0, -n)
}

func TestWorkoutRepo_CreateAndGetByID(t *testing.T) {
	repo := workoutTestSetup(t)
	ctx := context.Background()

	w := testutil.NewTestWorkout(testutil.WithReps(7, 0, 4))
	require.NoError(t, repo.Create(ctx, w))

	fetched, err := repo.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, w.ID, fetched.ID)
	assert.Equal(t, domain.ProtocolMaxEffort, fetched.Protocol)
	assert.Equal(t, []int{7, 0, 4}, fetched.Reps)
	assert.True(t, w.Date.Equal(fetched.Date))
	assert.True(t, w.CreatedAt.Equal(fetched.CreatedAt))
}

func TestWorkoutRepo_CreateAssignsIDAndTimestamps(t *testing.T) {
	repo := workoutTestSetup(t)
	ctx := context.Background()

	w := domain.NewWorkout(domain.ProtocolLadder, time.Now(), []domain.UnitResult{1, 2, 3})
	require.NoError(t, repo.Create(ctx, w))

	assert.NotEmpty(t, w.ID)
	assert.False(t, w.CreatedAt.IsZero())
	assert.Equal(t, w.CreatedAt, w.UpdatedAt)
}

func TestWorkoutRepo_EmptyRepsRoundTrip(t *testing.T) {
	repo := workoutTestSetup(t)
	ctx := context.Background()

	w := testutil.NewTestWorkout(testutil.WithReps())
	require.NoError(t, repo.Create(ctx, w))

	fetched, err := repo.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Empty(t, fetched.Reps)
}

func TestWorkoutRepo_GetByID_NotFound(t *testing.T) {
	repo := workoutTestSetup(t)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWorkoutRepo_ListFiltersAndOrder(t *testing.T) {
	repo := workoutTestSetup(t)
	ctx := context.Background()

	old := testutil.NewTestWorkout(testutil.WithDate(daysAgo(30)))
	mid := testutil.NewTestWorkout(testutil.WithDate(daysAgo(3)), testutil.WithProtocol(domain.ProtocolLadder))
	recent := testutil.NewTestWorkout(testutil.WithDate(daysAgo(1)))
	for _, w := range []*domain.Workout{old, mid, recent} {
		require.NoError(t, repo.Create(ctx, w))
	}

	all, err := repo.List(ctx, WorkoutFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{recent.ID, mid.ID, old.ID}, []string{all[0].ID, all[1].ID, all[2].ID})

	maxOnly, err := repo.List(ctx, WorkoutFilter{Protocol: domain.ProtocolMaxEffort})
	require.NoError(t, err)
	assert.Len(t, maxOnly, 2)

	sinceWeek, err := repo.List(ctx, WorkoutFilter{Since: daysAgo(7)})
	require.NoError(t, err)
	assert.Len(t, sinceWeek, 2)

	limited, err := repo.List(ctx, WorkoutFilter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, recent.ID, limited[0].ID)
}

func TestWorkoutRepo_ListRecent(t *testing.T) {
	repo := workoutTestSetup(t)
	ctx := context.Background()
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	inside := testutil.NewTestWorkout(testutil.WithDate(today.AddDate(0, 0, -2)))
	edge := testutil.NewTestWorkout(testutil.WithDate(today.AddDate(0, 0, -7)))
	require.NoError(t, repo.Create(ctx, inside))
	require.NoError(t, repo.Create(ctx, edge))
	require.NoError(t, repo.Create(ctx, testutil.NewTestWorkout(testutil.WithDate(today.AddDate(0, 0, -8)))))

	list, err := repo.ListRecent(ctx, today, 7)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, inside.ID, list[0].ID)
	assert.Equal(t, edge.ID, list[1].ID)
}

func TestWorkoutRepo_CountOn(t *testing.T) {
	repo := workoutTestSetup(t)
	ctx := context.Background()
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, testutil.NewTestWorkout(testutil.WithDate(day))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestWorkout(testutil.WithDate(day), testutil.WithProtocol(domain.ProtocolLadder))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestWorkout(testutil.WithDate(day.AddDate(0, 0, 1)))))

	n, err := repo.CountOn(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = repo.CountOn(ctx, day.AddDate(0, 0, -1))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestWorkoutRepo_LatestBefore(t *testing.T) {
	repo := workoutTestSetup(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	first := testutil.NewTestWorkout(testutil.WithCreatedAt(base), testutil.WithReps(6, 5, 5))
	second := testutil.NewTestWorkout(testutil.WithCreatedAt(base.Add(24*time.Hour)), testutil.WithReps(7, 5, 4))
	ladder := testutil.NewTestWorkout(testutil.WithCreatedAt(base.Add(36*time.Hour)), testutil.WithProtocol(domain.ProtocolLadder))
	for _, w := range []*domain.Workout{first, second, ladder} {
		require.NoError(t, repo.Create(ctx, w))
	}

	prev, err := repo.LatestBefore(ctx, domain.ProtocolMaxEffort, second.CreatedAt)
	require.NoError(t, err)
	assert.Equal(t, first.ID, prev.ID)

	latest, err := repo.LatestBefore(ctx, domain.ProtocolMaxEffort, base.Add(72*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)

	_, err = repo.LatestBefore(ctx, domain.ProtocolAutoVolume, base.Add(72*time.Hour))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWorkoutRepo_Update(t *testing.T) {
	repo := workoutTestSetup(t)
	ctx := context.Background()

	w := testutil.NewTestWorkout()
	require.NoError(t, repo.Create(ctx, w))

	edited := w.CreatedAt.Add(time.Hour)
	require.NoError(t, w.EditSet(2, 6, edited))
	require.NoError(t, repo.Update(ctx, w))

	fetched, err := repo.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{7, 6, 4}, fetched.Reps)
	assert.True(t, edited.Equal(fetched.UpdatedAt))
}

func TestWorkoutRepo_UpdateMissing(t *testing.T) {
	repo := workoutTestSetup(t)

	err := repo.Update(context.Background(), testutil.NewTestWorkout())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWorkoutRepo_Delete(t *testing.T) {
	repo := workoutTestSetup(t)
	ctx := context.Background()

	w := testutil.NewTestWorkout()
	require.NoError(t, repo.Create(ctx, w))
	require.NoError(t, repo.Delete(ctx, w.ID))

	_, err := repo.GetByID(ctx, w.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, w.ID), ErrNotFound)
}

func TestDecodeReps_Invalid(t *testing.T) {
	_, err := decodeReps("7,x")
	assert.Error(t, err)
}
