package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func TestLadderScore(t *testing.T) {
	cases := []struct {
		n    int
		want int
	}{
		{0, 0},
		{1, 1},
		{4, 10},
		{5, 15},
		{-2, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, LadderScore(tc.n), "n=%d", tc.n)
	}
}

func TestTotalScore_LadderUsesTriangularSums(t *testing.T) {
	assert.Equal(t, 10+6+3, TotalScore(ProtocolLadder, []int{4, 3, 2}))
}

func TestTotalScore_PlainSumForOtherProtocols(t *testing.T) {
	assert.Equal(t, 16, TotalScore(ProtocolMaxEffort, []int{7, 5, 4}))
	assert.Equal(t, 12, TotalScore(ProtocolAutoVolume, []int{6, 6, 0}))
}

func TestStoredReps_AbandonedBecomesZero(t *testing.T) {
	got := StoredReps([]UnitResult{Reps(7), Abandoned, Reps(4)})
	assert.Equal(t, []int{7, 0, 4}, got)
}

func TestUnitResult_String(t *testing.T) {
	assert.Equal(t, "X", Abandoned.String())
	assert.Equal(t, "12", Reps(12).String())
	assert.True(t, Reps(-3).IsAbandoned())
}

func TestLastNumeric_SkipsAbandoned(t *testing.T) {
	n, ok := LastNumeric([]UnitResult{Reps(8), Reps(6), Abandoned})
	require.True(t, ok)
	assert.Equal(t, 6, n)

	_, ok = LastNumeric([]UnitResult{Abandoned})
	assert.False(t, ok)
}

func TestNewWorkout_TruncatesDate(t *testing.T) {
	w := NewWorkout(ProtocolMaxEffort, testNow, []UnitResult{Reps(7), Reps(5), Abandoned})
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), w.Date)
	assert.Equal(t, []int{7, 5, 0}, w.Reps)
	assert.Equal(t, 12, w.TotalReps())
}

func TestEditSet(t *testing.T) {
	w := &Workout{Protocol: ProtocolMaxEffort, Reps: []int{7, 5, 4}}
	require.NoError(t, w.EditSet(2, 6, testNow))
	assert.Equal(t, []int{7, 6, 4}, w.Reps)
	assert.Equal(t, testNow, w.UpdatedAt)

	err := w.EditSet(4, 1, testNow)
	assert.ErrorIs(t, err, ErrInvalidSet)

	err = w.EditSet(1, -1, testNow)
	assert.ErrorIs(t, err, ErrInvalidReps)
	assert.Equal(t, []int{7, 6, 4}, w.Reps, "reps should not change on error")
}

func TestParseProtocol(t *testing.T) {
	p, err := ParseProtocol("ladder")
	require.NoError(t, err)
	assert.Equal(t, ProtocolLadder, p)

	p, err = ParseProtocol("sub-max-volume")
	require.NoError(t, err)
	assert.Equal(t, ProtocolAutoVolume, p)

	_, err = ParseProtocol("tabata")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown protocol")
}

func TestDefaultSessionConfig(t *testing.T) {
	cfg, ok := DefaultSessionConfig(ProtocolMaxEffort)
	require.True(t, ok)
	assert.Equal(t, 3, cfg.TotalUnits)
	assert.Equal(t, 300, cfg.RestSeconds)
	require.NoError(t, cfg.Validate())

	_, ok = DefaultSessionConfig(Protocol("tabata"))
	assert.False(t, ok)

	assert.Error(t, SessionConfig{TotalUnits: 0}.Validate())
	assert.Error(t, SessionConfig{TotalUnits: 3, RestSeconds: -1}.Validate())
}
