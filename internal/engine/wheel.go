package engine

import (
	"math"
	"slices"

	"github.com/alexanderramin/pullup/internal/domain"
)

// dragStepPixels is the vertical drag distance that moves the wheel one step.
const dragStepPixels = 30

// RepWheel is the bounded, steppable picker used to record a unit result.
// Options run Min..Max with Abandoned at the front or the back.
type RepWheel struct {
	constraint WheelConstraint
	options    []domain.UnitResult
	cursor     int
}

// NewRepWheel builds a wheel for the constraint with the cursor on
// constraint.Initial.
func NewRepWheel(c WheelConstraint) *RepWheel {
	if c.Min < DefaultMinReps {
		c.Min = DefaultMinReps
	}
	if c.Max < c.Min {
		c.Max = c.Min
	}

	opts := make([]domain.UnitResult, 0, c.Max-c.Min+2)
	if c.PreferSentinelFirst {
		opts = append(opts, domain.Abandoned)
	}
	for n := c.Min; n <= c.Max; n++ {
		opts = append(opts, domain.Reps(n))
	}
	if !c.PreferSentinelFirst {
		opts = append(opts, domain.Abandoned)
	}

	w := &RepWheel{constraint: c, options: opts}
	if !w.Select(c.Initial) {
		w.cursor = 0
	}
	return w
}

func (w *RepWheel) Constraint() WheelConstraint { return w.constraint }

// Options returns a copy of the selectable values in wheel order.
func (w *RepWheel) Options() []domain.UnitResult { return slices.Clone(w.options) }

// Index returns the cursor position within Options.
func (w *RepWheel) Index() int { return w.cursor }

// Value returns the selected result.
func (w *RepWheel) Value() domain.UnitResult { return w.options[w.cursor] }

// Step moves the cursor by delta positions, clamped to the ends.
func (w *RepWheel) Step(delta int) domain.UnitResult {
	w.cursor = min(max(w.cursor+delta, 0), len(w.options)-1)
	return w.Value()
}

// Drag converts a vertical drag distance in pixels into wheel steps.
func (w *RepWheel) Drag(dy float64) domain.UnitResult {
	steps := int(math.Round(dy / dragStepPixels))
	return w.Step(steps)
}

// Select moves the cursor to v. It reports false, leaving the cursor
// unchanged, when v is not on the wheel.
func (w *RepWheel) Select(v domain.UnitResult) bool {
	if v.IsAbandoned() {
		v = domain.Abandoned
	}
	i := slices.Index(w.options, v)
	if i < 0 {
		return false
	}
	w.cursor = i
	return true
}
