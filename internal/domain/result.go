package domain

import "strconv"

// UnitResult is the outcome of one unit (set): a non-negative repetition
// count, or Abandoned when no valid count could be recorded.
type UnitResult int

// Abandoned marks a unit without a countable result (form breakdown).
const Abandoned UnitResult = -1

// Reps wraps a repetition count. Negative counts collapse to Abandoned.
func Reps(n int) UnitResult {
	if n < 0 {
		return Abandoned
	}
	return UnitResult(n)
}

func (r UnitResult) IsAbandoned() bool { return r < 0 }

// Count returns the repetition count and whether the result is numeric.
func (r UnitResult) Count() (int, bool) {
	if r.IsAbandoned() {
		return 0, false
	}
	return int(r), true
}

// Stored returns the value handed to storage; Abandoned is stored as 0.
func (r UnitResult) Stored() int {
	n, _ := r.Count()
	return n
}

func (r UnitResult) String() string {
	if r.IsAbandoned() {
		return "X"
	}
	return strconv.Itoa(int(r))
}

// StoredReps translates a result sequence into the integer list persisted
// for a workout.
func StoredReps(results []UnitResult) []int {
	out := make([]int, len(results))
	for i, r := range results {
		out[i] = r.Stored()
	}
	return out
}

// NumericResults returns the numeric counts in order, skipping Abandoned.
func NumericResults(results []UnitResult) []int {
	var out []int
	for _, r := range results {
		if n, ok := r.Count(); ok {
			out = append(out, n)
		}
	}
	return out
}

// LastNumeric returns the most recent numeric result.
func LastNumeric(results []UnitResult) (int, bool) {
	for i := len(results) - 1; i >= 0; i-- {
		if n, ok := results[i].Count(); ok {
			return n, true
		}
	}
	return 0, false
}
