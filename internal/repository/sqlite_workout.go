package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pullup/internal/db"
	"github.com/alexanderramin/pullup/internal/domain"
	"github.com/google/uuid"
)

// SQLiteWorkoutRepo implements WorkoutRepo using a SQLite database.
type SQLiteWorkoutRepo struct {
	db db.DBTX
}

// NewSQLiteWorkoutRepo creates a new SQLiteWorkoutRepo. conn may be the
// database handle or a transaction from a unit of work.
func NewSQLiteWorkoutRepo(conn db.DBTX) *SQLiteWorkoutRepo {
	return &SQLiteWorkoutRepo{db: conn}
}

const workoutColumns = `id, protocol, workout_date, reps, created_at, updated_at`

// Create inserts the workout, assigning an ID and timestamps when unset.
func (r *SQLiteWorkoutRepo) Create(ctx context.Context, w *domain.Workout) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now().UTC()
	}
	if w.UpdatedAt.IsZero() {
		w.UpdatedAt = w.CreatedAt
	}

	query := `INSERT INTO workouts (` + workoutColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		w.ID,
		string(w.Protocol),
		w.Date.Format(dateLayout),
		encodeReps(w.Reps),
		formatTime(w.CreatedAt),
		formatTime(w.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting workout: %w", err)
	}
	return nil
}

func (r *SQLiteWorkoutRepo) GetByID(ctx context.Context, id string) (*domain.Workout, error) {
	query := `SELECT ` + workoutColumns + ` FROM workouts WHERE id = ?`
	return r.scanWorkout(r.db.QueryRowContext(ctx, query, id))
}

// List returns workouts newest first.
func (r *SQLiteWorkoutRepo) List(ctx context.Context, f WorkoutFilter) ([]*domain.Workout, error) {
	var (
		where []string
		args  []any
	)
	if f.Protocol != "" {
		where = append(where, "protocol = ?")
		args = append(args, string(f.Protocol))
	}
	if !f.Since.IsZero() {
		where = append(where, "workout_date >= ?")
		args = append(args, f.Since.Format(dateLayout))
	}

	query := `SELECT ` + workoutColumns + ` FROM workouts`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY workout_date DESC, created_at DESC`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing workouts: %w", err)
	}
	defer rows.Close()
	return r.scanWorkouts(rows)
}

// ListRecent returns workouts dated within the last days calendar days. The
// window is anchored on today's date as the caller sees it, not on SQLite's
// UTC clock.
func (r *SQLiteWorkoutRepo) ListRecent(ctx context.Context, today time.Time, days int) ([]*domain.Workout, error) {
	query := `SELECT ` + workoutColumns + ` FROM workouts
		WHERE workout_date >= ?
		ORDER BY workout_date DESC, created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, today.AddDate(0, 0, -days).Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("listing recent workouts: %w", err)
	}
	defer rows.Close()
	return r.scanWorkouts(rows)
}

func (r *SQLiteWorkoutRepo) CountOn(ctx context.Context, date time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM workouts WHERE workout_date = ?`, date.Format(dateLayout)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting workouts: %w", err)
	}
	return n, nil
}

func (r *SQLiteWorkoutRepo) LatestBefore(ctx context.Context, p domain.Protocol, before time.Time) (*domain.Workout, error) {
	query := `SELECT ` + workoutColumns + ` FROM workouts
		WHERE protocol = ? AND created_at < ?
		ORDER BY created_at DESC LIMIT 1`
	return r.scanWorkout(r.db.QueryRowContext(ctx, query, string(p), formatTime(before)))
}

// Update rewrites the rep list and date of an existing workout.
func (r *SQLiteWorkoutRepo) Update(ctx context.Context, w *domain.Workout) error {
	updated := nowUTC()
	if !w.UpdatedAt.IsZero() {
		updated = formatTime(w.UpdatedAt)
	}
	query := `UPDATE workouts SET workout_date = ?, reps = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		w.Date.Format(dateLayout),
		encodeReps(w.Reps),
		updated,
		w.ID,
	)
	if err != nil {
		return fmt.Errorf("updating workout: %w", err)
	}
	return requireAffected(res, "workout")
}

func (r *SQLiteWorkoutRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM workouts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting workout: %w", err)
	}
	return requireAffected(res, "workout")
}

func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanWorkout scans a single workout from a *sql.Row.
func (r *SQLiteWorkoutRepo) scanWorkout(row *sql.Row) (*domain.Workout, error) {
	w, err := r.scanInto(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("workout: %w", ErrNotFound)
		}
		return nil, err
	}
	return w, nil
}

// scanWorkouts scans multiple workouts from *sql.Rows.
func (r *SQLiteWorkoutRepo) scanWorkouts(rows *sql.Rows) ([]*domain.Workout, error) {
	var workouts []*domain.Workout
	for rows.Next() {
		w, err := r.scanInto(rows)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating workouts: %w", err)
	}
	return workouts, nil
}

func (r *SQLiteWorkoutRepo) scanInto(s rowScanner) (*domain.Workout, error) {
	var (
		w                          domain.Workout
		protocol, date, reps       string
		createdAtStr, updatedAtStr string
	)
	if err := s.Scan(&w.ID, &protocol, &date, &reps, &createdAtStr, &updatedAtStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning workout: %w", err)
	}

	var err error
	w.Protocol = domain.Protocol(protocol)
	if w.Date, err = time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("parsing workout_date: %w", err)
	}
	if w.Reps, err = decodeReps(reps); err != nil {
		return nil, fmt.Errorf("workout %s: %w", w.ID, err)
	}
	if w.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	w.UpdatedAt = w.CreatedAt
	if updatedAtStr != "" {
		if w.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
			return nil, fmt.Errorf("parsing updated_at: %w", err)
		}
	}
	return &w, nil
}
