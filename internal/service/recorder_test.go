package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/pullup/internal/domain"
	"github.com/alexanderramin/pullup/internal/repository"
	"github.com/alexanderramin/pullup/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingWorkouts holds Record until release is closed.
type blockingWorkouts struct {
	WorkoutService
	release chan struct{}
	err     error
}

func (b *blockingWorkouts) Record(ctx context.Context, p domain.Protocol, results []domain.UnitResult) (*domain.Workout, error) {
	<-b.release
	if b.err != nil {
		return nil, b.err
	}
	return domain.NewWorkout(p, time.Now(), results), nil
}

func TestRecorder_SavePersists(t *testing.T) {
	svc, repo, _ := setupWorkoutService(t)
	rec := NewRecorder(svc)

	res := <-rec.Save(domain.ProtocolAutoVolume, []domain.UnitResult{8, 8, 7})
	require.NoError(t, res.Err)
	require.NotNil(t, res.Workout)
	rec.Close()

	list, err := repo.List(context.Background(), repository.WorkoutFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []int{8, 8, 7}, list[0].Reps)
}

func TestRecorder_SaveDoesNotBlock(t *testing.T) {
	stub := &blockingWorkouts{release: make(chan struct{})}
	rec := NewRecorder(stub)

	done := rec.Save(domain.ProtocolLadder, []domain.UnitResult{1, 2})
	select {
	case <-done:
		t.Fatal("save finished before storage released")
	default:
	}

	close(stub.release)
	rec.Wait()
	res := <-done
	assert.NoError(t, res.Err)
}

func TestRecorder_CopiesResults(t *testing.T) {
	stub := &blockingWorkouts{release: make(chan struct{})}
	rec := NewRecorder(stub)

	results := []domain.UnitResult{4, 4}
	done := rec.Save(domain.ProtocolAutoVolume, results)
	results[0] = 99
	close(stub.release)

	res := <-done
	assert.Equal(t, []int{4, 4}, res.Workout.Reps)
	rec.Close()
}

func TestRecorder_ErrorHandler(t *testing.T) {
	boom := errors.New("db locked")
	stub := &blockingWorkouts{release: make(chan struct{}), err: boom}
	close(stub.release)

	var (
		mu   sync.Mutex
		seen []SaveResult
	)
	rec := NewRecorder(stub, WithSaveErrorHandler(func(r SaveResult) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, r)
	}))

	res := <-rec.Save(domain.ProtocolMaxEffort, []domain.UnitResult{5})
	rec.Close()

	assert.ErrorIs(t, res.Err, boom)
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, seen, 1)
	assert.Equal(t, domain.ProtocolMaxEffort, seen[0].Protocol)
}

func TestRecorder_SaveAfterClose(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewWorkoutService(repository.NewSQLiteWorkoutRepo(database), testutil.NewTestUoW(database))
	rec := NewRecorder(svc, WithSaveTimeout(time.Second))
	rec.Close()

	res := <-rec.Save(domain.ProtocolMaxEffort, []domain.UnitResult{5})
	assert.ErrorIs(t, res.Err, ErrRecorderClosed)
}
