package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/pullup/internal/domain"
)

// Convert transforms a validated WorkoutFile into domain workouts ready for
// persistence. Call ValidateWorkoutFile first; Convert assumes the file is
// valid. Records without created_at are stamped with now.
func Convert(file *WorkoutFile, now time.Time) ([]*domain.Workout, error) {
	out := make([]*domain.Workout, 0, len(file.Workouts))
	for i, rec := range file.Workouts {
		date, err := time.Parse(dateLayout, rec.Date)
		if err != nil {
			return nil, fmt.Errorf("workouts[%d]: parsing date: %w", i, err)
		}

		created := now.UTC().Truncate(time.Second)
		if rec.CreatedAt != "" {
			created, err = time.Parse(time.RFC3339, rec.CreatedAt)
			if err != nil {
				return nil, fmt.Errorf("workouts[%d]: parsing created_at: %w", i, err)
			}
			created = created.UTC()
		}

		out = append(out, &domain.Workout{
			ID:        rec.ID,
			Protocol:  domain.Protocol(rec.Protocol),
			Date:      date,
			Reps:      append([]int(nil), rec.Reps...),
			CreatedAt: created,
			UpdatedAt: created,
		})
	}
	return out, nil
}

// Export builds a backup file for workouts, preserving their IDs so a
// re-import of the same file is a no-op.
func Export(workouts []*domain.Workout, now time.Time) *WorkoutFile {
	file := &WorkoutFile{
		Version:    FormatVersion,
		ExportedAt: now.UTC().Format(time.RFC3339),
		Workouts:   make([]WorkoutRecord, 0, len(workouts)),
	}
	for _, w := range workouts {
		file.Workouts = append(file.Workouts, WorkoutRecord{
			ID:        w.ID,
			Protocol:  string(w.Protocol),
			Date:      w.Date.Format(dateLayout),
			Reps:      append([]int(nil), w.Reps...),
			CreatedAt: w.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return file
}
