package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/pullup/internal/domain"
)

// UseCaseEvent describes one finished service call. Protocol, WorkoutID and
// Sets are left zero when the use case has none; Attrs carries anything
// specific to a single use case.
type UseCaseEvent struct {
	Name      string
	StartedAt time.Time
	Duration  time.Duration
	Success   bool
	Err       error

	Protocol  domain.Protocol
	WorkoutID string
	Sets      int
	Attrs     []slog.Attr
}

// LogValue renders the event as a flat slog group.
func (e UseCaseEvent) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, 6+len(e.Attrs))
	attrs = append(attrs,
		slog.String("use_case", e.Name),
		slog.Int64("duration_ms", e.Duration.Milliseconds()),
		slog.Bool("success", e.Success),
	)
	if e.Protocol != "" {
		attrs = append(attrs, slog.String("protocol", string(e.Protocol)))
	}
	if e.WorkoutID != "" {
		attrs = append(attrs, slog.String("workout_id", e.WorkoutID))
	}
	if e.Sets > 0 {
		attrs = append(attrs, slog.Int("sets", e.Sets))
	}
	attrs = append(attrs, e.Attrs...)
	if e.Err != nil {
		attrs = append(attrs, slog.String("error", e.Err.Error()))
	}
	return slog.GroupValue(attrs...)
}

// Attr returns the value of a use-case specific attribute.
func (e UseCaseEvent) Attr(key string) (slog.Value, bool) {
	for _, a := range e.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return slog.Value{}, false
}

type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger *slog.Logger
}

// NewLogUseCaseObserver logs one service_use_case line per event to w.
func NewLogUseCaseObserver(w io.Writer) UseCaseObserver {
	if w == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	level := slog.LevelInfo
	if event.Err != nil {
		level = slog.LevelError
	}
	o.logger.LogAttrs(ctx, level, "service_use_case", event.LogValue().Group()...)
}

// observeSince finishes ev with the outcome of a call started at startedAt
// and hands it to obs.
func observeSince(ctx context.Context, obs UseCaseObserver, ev *UseCaseEvent, startedAt time.Time, err error) {
	ev.StartedAt = startedAt
	ev.Duration = time.Since(startedAt)
	ev.Success = err == nil
	ev.Err = err
	obs.ObserveUseCase(ctx, *ev)
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}
