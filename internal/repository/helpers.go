package repository

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// encodeReps renders a rep list in the stored "7,5,4" form.
func encodeReps(reps []int) string {
	parts := make([]string, len(reps))
	for i, r := range reps {
		parts[i] = strconv.Itoa(r)
	}
	return strings.Join(parts, ",")
}

// decodeReps parses the stored form. An empty string is an empty list.
func decodeReps(s string) ([]int, error) {
	if s == "" {
		return []int{}, nil
	}
	parts := strings.Split(s, ",")
	reps := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid rep value %q: %w", p, err)
		}
		reps[i] = n
	}
	return reps, nil
}

// formatTime converts a time to the RFC3339 UTC form used for timestamps.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return formatTime(time.Now())
}
