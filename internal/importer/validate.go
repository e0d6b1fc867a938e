package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/pullup/internal/domain"
)

// ValidateWorkoutFile checks a backup for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateWorkoutFile(file *WorkoutFile) []error {
	var errs []error

	if file.Version != FormatVersion {
		errs = append(errs, fmt.Errorf("version: unsupported value %d (expected %d)", file.Version, FormatVersion))
	}
	if len(file.Workouts) == 0 {
		errs = append(errs, fmt.Errorf("workouts: at least one workout is required"))
	}

	ids := make(map[string]bool)
	for i, w := range file.Workouts {
		errs = append(errs, validateWorkout(fmt.Sprintf("workouts[%d]", i), w, ids)...)
	}
	return errs
}

func validateWorkout(path string, w WorkoutRecord, ids map[string]bool) []error {
	var errs []error

	if w.ID != "" {
		if ids[w.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", path, w.ID))
		}
		ids[w.ID] = true
	}
	if !domain.ValidProtocols[domain.Protocol(w.Protocol)] {
		errs = append(errs, fmt.Errorf("%s.protocol: invalid value %q", path, w.Protocol))
	}
	if w.Date == "" {
		errs = append(errs, fmt.Errorf("%s.date is required", path))
	} else if _, err := time.Parse(dateLayout, w.Date); err != nil {
		errs = append(errs, fmt.Errorf("%s.date: invalid date format %q (expected YYYY-MM-DD)", path, w.Date))
	}
	if w.CreatedAt != "" {
		if _, err := time.Parse(time.RFC3339, w.CreatedAt); err != nil {
			errs = append(errs, fmt.Errorf("%s.created_at: invalid timestamp %q (expected RFC 3339)", path, w.CreatedAt))
		}
	}
	if len(w.Reps) == 0 {
		errs = append(errs, fmt.Errorf("%s.reps: at least one set is required", path))
	}
	for j, r := range w.Reps {
		if r < 0 {
			errs = append(errs, fmt.Errorf("%s.reps[%d]: must be non-negative, got %d", path, j, r))
		}
	}
	return errs
}
