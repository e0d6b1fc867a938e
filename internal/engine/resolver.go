package engine

import "github.com/alexanderramin/pullup/internal/domain"

const (
	// DefaultMinReps is the lowest count the wheel offers.
	DefaultMinReps = 1
	// DefaultMaxReps is the ceiling before any numeric result exists.
	DefaultMaxReps = 50
)

// WheelConstraint bounds one opening of the rep entry control.
type WheelConstraint struct {
	Min int
	Max int
	// PreferSentinelFirst places Abandoned before the numbers.
	PreferSentinelFirst bool
	// Initial is where the cursor starts.
	Initial domain.UnitResult
}

// Resolve derives the entry constraint from the results so far. Reps are
// expected to hold or decline within a session, so the ceiling is the
// lowest numeric result recorded.
func Resolve(prior []domain.UnitResult) WheelConstraint {
	numeric := domain.NumericResults(prior)
	if len(numeric) == 0 {
		return WheelConstraint{
			Min:                 DefaultMinReps,
			Max:                 DefaultMaxReps,
			PreferSentinelFirst: true,
			Initial:             domain.Abandoned,
		}
	}

	lowest := numeric[0]
	for _, n := range numeric[1:] {
		if n < lowest {
			lowest = n
		}
	}
	maxReps := max(lowest, DefaultMinReps)

	last, _ := domain.LastNumeric(prior)
	initial := min(max(last, DefaultMinReps), maxReps)

	return WheelConstraint{
		Min:     DefaultMinReps,
		Max:     maxReps,
		Initial: domain.Reps(initial),
	}
}

// Allows reports whether v is selectable under the constraint.
func (c WheelConstraint) Allows(v domain.UnitResult) bool {
	if v.IsAbandoned() {
		return true
	}
	n := int(v)
	return n >= c.Min && n <= c.Max
}
