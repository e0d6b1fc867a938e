package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// FormatVersion is the backup file layout written by Export.
const FormatVersion = 1

const dateLayout = "2006-01-02"

// WorkoutFile is the top-level JSON structure for workout backups.
type WorkoutFile struct {
	Version    int             `json:"version"`
	ExportedAt string          `json:"exported_at,omitempty"`
	Workouts   []WorkoutRecord `json:"workouts"`
}

// WorkoutRecord is one workout in a backup file. ID and CreatedAt are
// optional on import; records without an ID always create a new workout.
type WorkoutRecord struct {
	ID        string `json:"id,omitempty"`
	Protocol  string `json:"protocol"`
	Date      string `json:"date"`
	Reps      []int  `json:"reps"`
	CreatedAt string `json:"created_at,omitempty"`
}

// LoadWorkoutFile reads and parses a workout backup file.
func LoadWorkoutFile(path string) (*WorkoutFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseWorkoutFile(f)
}

// ParseWorkoutFile decodes a backup from r, rejecting unknown fields.
func ParseWorkoutFile(r io.Reader) (*WorkoutFile, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var file WorkoutFile
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("parsing workout file: %w", err)
	}
	return &file, nil
}

// WriteWorkoutFile encodes file to w as indented JSON.
func WriteWorkoutFile(w io.Writer, file *WorkoutFile) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(file); err != nil {
		return fmt.Errorf("writing workout file: %w", err)
	}
	return nil
}
