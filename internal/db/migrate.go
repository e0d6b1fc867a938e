package db

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

// Migrate runs all schema migrations. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN is not idempotent in SQLite.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateNormalizeReps(db); err != nil {
		return fmt.Errorf("normalizing stored reps: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS workouts (
		id           TEXT PRIMARY KEY,
		protocol     TEXT NOT NULL
		             CHECK(protocol IN ('max-day','sub-max-volume','ladder-volume')),
		workout_date TEXT NOT NULL,
		reps         TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL
	)`,

	`ALTER TABLE workouts ADD COLUMN updated_at TEXT NOT NULL DEFAULT ''`,

	`CREATE INDEX IF NOT EXISTS idx_workouts_date ON workouts(workout_date)`,
	`CREATE INDEX IF NOT EXISTS idx_workouts_protocol_date ON workouts(protocol, workout_date)`,
}

// migrateNormalizeReps rewrites rep lists imported in older layouts
// ("[7,5,4]" or "7, 5, 4") into the canonical "7,5,4" form, and fills
// updated_at where the column was added after the row.
func migrateNormalizeReps(db *sql.DB) error {
	ctx := context.Background()

	rows, err := db.QueryContext(ctx, `SELECT id, reps FROM workouts
		WHERE reps LIKE '[%' OR reps LIKE '% %'`)
	if err != nil {
		return fmt.Errorf("scanning legacy reps: %w", err)
	}
	type fix struct{ id, reps string }
	var fixes []fix
	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			rows.Close()
			return fmt.Errorf("reading legacy reps: %w", err)
		}
		canon, err := canonicalReps(raw)
		if err != nil {
			rows.Close()
			return fmt.Errorf("workout %s: %w", id, err)
		}
		fixes = append(fixes, fix{id: id, reps: canon})
	}
	if err := rows.Close(); err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting migration transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	for _, f := range fixes {
		if _, err := tx.ExecContext(ctx, `UPDATE workouts SET reps = ? WHERE id = ?`, f.reps, f.id); err != nil {
			return fmt.Errorf("rewriting reps for %s: %w", f.id, err)
		}
	}
	if _, err := tx.ExecContext(ctx, `UPDATE workouts SET updated_at = created_at WHERE updated_at = ''`); err != nil {
		return fmt.Errorf("backfilling updated_at: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing reps migration: %w", err)
	}
	committed = true
	return nil
}

func canonicalReps(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "[")
	raw = strings.TrimSuffix(raw, "]")
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return "", fmt.Errorf("invalid rep value %q", p)
		}
		out = append(out, strconv.Itoa(n))
	}
	return strings.Join(out, ","), nil
}
