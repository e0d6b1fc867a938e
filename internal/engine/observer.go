package engine

import (
	"io"
	"log/slog"

	"github.com/alexanderramin/pullup/internal/domain"
)

// Event is a session lifecycle notification.
type Event struct {
	Name     string
	Protocol domain.Protocol
	Unit     int
	Fields   map[string]any
}

// Observer receives session lifecycle events.
type Observer interface {
	ObserveSession(event Event)
}

// NoopObserver ignores all events.
type NoopObserver struct{}

func (NoopObserver) ObserveSession(Event) {}

type logObserver struct {
	logger *slog.Logger
}

// NewLogObserver writes session events to w as slog text records.
func NewLogObserver(w io.Writer) Observer {
	if w == nil {
		return NoopObserver{}
	}
	return &logObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logObserver) ObserveSession(event Event) {
	attrs := make([]any, 0, 6+len(event.Fields)*2)
	attrs = append(attrs,
		"event", event.Name,
		"protocol", string(event.Protocol),
		"unit", event.Unit,
	)
	for k, v := range event.Fields {
		attrs = append(attrs, k, v)
	}
	o.logger.Info("workout_session", attrs...)
}
