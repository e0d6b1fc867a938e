package cli

import "time"

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Status is the transient line shown above the key hints, used for
	// background save results.
	Status string

	// Terminal dimensions
	Width  int
	Height int
}

// Now returns the session clock's current time.
func (s *SharedState) Now() time.Time {
	return s.App.now()
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator) and
// status bar (3 lines: status, separator, hints).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 5
	if h < 1 {
		return 1
	}
	return h
}
