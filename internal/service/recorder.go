package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/alexanderramin/pullup/internal/domain"
)

// ErrRecorderClosed is reported for saves submitted after Close.
var ErrRecorderClosed = errors.New("recorder closed")

const defaultSaveTimeout = 10 * time.Second

// SaveResult is the outcome of one background save.
type SaveResult struct {
	Protocol domain.Protocol
	Workout  *domain.Workout
	Err      error
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithSaveErrorHandler registers a callback for failed saves. It runs on the
// saving goroutine.
func WithSaveErrorHandler(fn func(SaveResult)) RecorderOption {
	return func(r *Recorder) { r.onError = fn }
}

// WithSaveTimeout bounds each save.
func WithSaveTimeout(d time.Duration) RecorderOption {
	return func(r *Recorder) { r.timeout = d }
}

// Recorder persists completed sessions in the background. A session's
// completion never waits on storage.
type Recorder struct {
	workouts WorkoutService
	onError  func(SaveResult)
	timeout  time.Duration

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewRecorder(workouts WorkoutService, opts ...RecorderOption) *Recorder {
	r := &Recorder{workouts: workouts, timeout: defaultSaveTimeout}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Save starts persisting results and returns immediately. The returned
// channel receives exactly one SaveResult and may be ignored.
func (r *Recorder) Save(p domain.Protocol, results []domain.UnitResult) <-chan SaveResult {
	out := make(chan SaveResult, 1)
	results = append([]domain.UnitResult(nil), results...)

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		r.finish(out, SaveResult{Protocol: p, Err: ErrRecorderClosed})
		return out
	}
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		w, err := r.workouts.Record(ctx, p, results)
		r.finish(out, SaveResult{Protocol: p, Workout: w, Err: err})
	}()
	return out
}

func (r *Recorder) finish(out chan<- SaveResult, res SaveResult) {
	if res.Err != nil && r.onError != nil {
		r.onError(res)
	}
	out <- res
	close(out)
}

// Wait blocks until every pending save has finished.
func (r *Recorder) Wait() {
	r.wg.Wait()
}

// Close rejects further saves and waits for pending ones.
func (r *Recorder) Close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	r.wg.Wait()
}
