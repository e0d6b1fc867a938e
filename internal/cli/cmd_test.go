package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/pullup/internal/config"
	"github.com/alexanderramin/pullup/internal/domain"
	"github.com/alexanderramin/pullup/internal/engine"
	"github.com/alexanderramin/pullup/internal/repository"
	"github.com/alexanderramin/pullup/internal/service"
	"github.com/alexanderramin/pullup/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
// Session time comes from a fake clock and the refresh tick is disabled, so
// tests drive countdowns with TestDriver.Elapse.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)

	repo := repository.NewSQLiteWorkoutRepo(database)
	uow := testutil.NewTestUoW(database)
	workouts := service.NewWorkoutService(repo, uow)
	rec := service.NewRecorder(workouts)
	t.Cleanup(rec.Close)

	return &App{
		Workouts:      workouts,
		Recorder:      rec,
		Backup:        service.NewBackupService(repo, uow),
		Config:        config.DefaultConfig(),
		Clock:         engine.NewFakeClock(time.Now()),
		IsInteractive: func() bool { return false },
		TickCmd: func(time.Duration, func(time.Time) tea.Msg) tea.Cmd {
			return nil
		},
	}
}

// seedWorkout logs a workout through the service.
func seedWorkout(t *testing.T, app *App, p domain.Protocol, date time.Time, reps ...int) *domain.Workout {
	t.Helper()
	w, err := app.Workouts.LogManual(context.Background(), p, date, reps)
	require.NoError(t, err)
	return w
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// --- Root command ---

func TestRootCmd_NoArgs_ShowsHelp(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.Contains(t, output, "pullup")
	assert.Contains(t, output, "workout")
}

func TestWorkoutStart_RequiresTerminal(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "workout", "start", "--protocol", "ladder-volume")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}

// --- protocols ---

func TestProtocolsCmd_ListsAll(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app, "protocols")
	require.NoError(t, err)
	assert.Contains(t, output, "max-day")
	assert.Contains(t, output, "sub-max-volume")
	assert.Contains(t, output, "ladder-volume")
	assert.Contains(t, output, "5:00")
}

func TestProtocolsCmd_RestOverride(t *testing.T) {
	app := testApp(t)
	app.Config.RestSeconds[domain.ProtocolLadder] = 45

	output, err := executeCmd(t, app, "protocols")
	require.NoError(t, err)
	assert.Contains(t, output, "0:45")
}

// --- workout log ---

func TestWorkoutLog_Persists(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app, "workout", "log", "-p", "max-day", "--reps", "7,5,4", "--date", "2026-03-02")
	require.NoError(t, err)
	assert.Contains(t, output, "Logged Max Day")
	assert.Contains(t, output, "total 16")

	list, err := app.Workouts.List(context.Background(), repository.WorkoutFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []int{7, 5, 4}, list[0].Reps)
	assert.Equal(t, "2026-03-02", list[0].Date.Format("2006-01-02"))
}

func TestWorkoutLog_LadderScore(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app, "workout", "log", "-p", "ladder-volume", "--reps", "3,4")
	require.NoError(t, err)
	// 3 -> 6, 4 -> 10
	assert.Contains(t, output, "total 16")
}

func TestWorkoutLog_Validation(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing protocol", []string{"--reps", "5"}, "--protocol is required"},
		{"unknown protocol", []string{"-p", "deadlift", "--reps", "5"}, "deadlift"},
		{"missing reps", []string{"-p", "max-day"}, "at least one set"},
		{"bad date", []string{"-p", "max-day", "--reps", "5", "--date", "03/02/2026"}, "invalid --date"},
		{"negative reps", []string{"-p", "max-day", "--reps", "5,-1"}, "non-negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := testApp(t)
			args := append([]string{"workout", "log"}, tt.args...)
			_, err := executeCmd(t, app, args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// --- workout list ---

func TestWorkoutList_Empty(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app, "workout", "list")
	require.NoError(t, err)
	assert.Contains(t, output, "No workouts found.")
}

func TestWorkoutList_FiltersByProtocolAndDays(t *testing.T) {
	app := testApp(t)
	now := time.Now()
	seedWorkout(t, app, domain.ProtocolMaxEffort, now, 8, 6, 5)
	seedWorkout(t, app, domain.ProtocolLadder, now, 3, 3)
	seedWorkout(t, app, domain.ProtocolMaxEffort, now.AddDate(0, 0, -60), 4, 4, 4)

	output, err := executeCmd(t, app, "workout", "ls", "-p", "max-day")
	require.NoError(t, err)
	assert.Contains(t, output, "8 · 6 · 5")
	assert.NotContains(t, output, "3 · 3")
	assert.NotContains(t, output, "4 · 4 · 4", "older than the default 30 days")

	output, err = executeCmd(t, app, "workout", "ls", "--days", "0")
	require.NoError(t, err)
	assert.Contains(t, output, "4 · 4 · 4")
	assert.Contains(t, output, "3 · 3")
}

// --- workout show / edit / remove ---

func TestWorkoutShow_ComparesWithPrevious(t *testing.T) {
	app := testApp(t)
	now := time.Now()
	seedWorkout(t, app, domain.ProtocolMaxEffort, now.AddDate(0, 0, -3), 6, 5, 4)
	// CreatedAt is second-granular; keep the two records apart.
	time.Sleep(1100 * time.Millisecond)
	w := seedWorkout(t, app, domain.ProtocolMaxEffort, now, 8, 6, 5)

	output, err := executeCmd(t, app, "workout", "show", w.ID[:8])
	require.NoError(t, err)
	assert.Contains(t, output, "Set 1:")
	assert.Contains(t, output, "Total:")
	assert.Contains(t, output, "19")
	assert.Contains(t, output, "Previous:")
	assert.Contains(t, output, "+4")
}

func TestWorkoutShow_UnknownID(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "workout", "show", "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestWorkoutEdit_CorrectsOneSet(t *testing.T) {
	app := testApp(t)
	w := seedWorkout(t, app, domain.ProtocolAutoVolume, time.Now(), 5, 5, 5)

	output, err := executeCmd(t, app, "workout", "edit", w.ID, "--set", "2", "--reps", "3")
	require.NoError(t, err)
	assert.Contains(t, output, "Set 2 is now 3 reps")
	assert.Contains(t, output, "total 13")

	got, err := app.Workouts.GetByID(context.Background(), w.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 3, 5}, got.Reps)
}

func TestWorkoutEdit_SetOutOfRange(t *testing.T) {
	app := testApp(t)
	w := seedWorkout(t, app, domain.ProtocolAutoVolume, time.Now(), 5, 5)

	_, err := executeCmd(t, app, "workout", "edit", w.ID, "--set", "3", "--reps", "4")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidSet)
}

func TestWorkoutEdit_RequiresFlags(t *testing.T) {
	app := testApp(t)
	w := seedWorkout(t, app, domain.ProtocolAutoVolume, time.Now(), 5)

	_, err := executeCmd(t, app, "workout", "edit", w.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestWorkoutRemove(t *testing.T) {
	app := testApp(t)
	w := seedWorkout(t, app, domain.ProtocolLadder, time.Now(), 2, 3)

	output, err := executeCmd(t, app, "workout", "rm", w.ID[:8])
	require.NoError(t, err)
	assert.Contains(t, output, "Removed workout "+w.ID)

	_, err = app.Workouts.GetByID(context.Background(), w.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestResolveWorkoutID_Errors(t *testing.T) {
	app := testApp(t)
	seedWorkout(t, app, domain.ProtocolLadder, time.Now(), 1)

	_, err := resolveWorkoutID(context.Background(), app, "  ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")

	_, err = resolveWorkoutID(context.Background(), app, "zzzz")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// --- workout export / import ---

func TestWorkoutExportImport_RoundTrip(t *testing.T) {
	src := testApp(t)
	seedWorkout(t, src, domain.ProtocolMaxEffort, time.Now(), 7, 5, 4)
	seedWorkout(t, src, domain.ProtocolLadder, time.Now(), 3, 2)

	path := filepath.Join(t.TempDir(), "backup.json")
	output, err := executeCmd(t, src, "workout", "export", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, output, "Exported 2 workouts")

	dst := testApp(t)
	output, err = executeCmd(t, dst, "workout", "import", path)
	require.NoError(t, err)
	assert.Contains(t, output, "Imported 2 workouts")
	assert.Len(t, listWorkouts(t, dst), 2)

	output, err = executeCmd(t, dst, "workout", "import", path)
	require.NoError(t, err)
	assert.Contains(t, output, "Imported 0 workouts (2 already present)")
}

func TestWorkoutExport_Stdout(t *testing.T) {
	app := testApp(t)
	seedWorkout(t, app, domain.ProtocolAutoVolume, time.Now(), 5, 5)
	seedWorkout(t, app, domain.ProtocolLadder, time.Now(), 1)

	output, err := executeCmd(t, app, "workout", "export", "-p", "sub-max-volume")
	require.NoError(t, err)
	assert.Contains(t, output, `"version": 1`)
	assert.Contains(t, output, `"protocol": "sub-max-volume"`)
	assert.NotContains(t, output, "ladder-volume")
}

func TestWorkoutImport_InvalidFile(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":1,"workouts":[{"protocol":"pyramid","date":"2026-03-02","reps":[3]}]}`), 0o644))

	_, err := executeCmd(t, app, "workout", "import", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import validation failed")
	assert.Empty(t, listWorkouts(t, app))
}

// listWorkouts returns every stored workout, newest first.
func listWorkouts(t *testing.T, app *App) []*domain.Workout {
	t.Helper()
	ws, err := app.Workouts.List(context.Background(), repository.WorkoutFilter{})
	require.NoError(t, err)
	return ws
}
