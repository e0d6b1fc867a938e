package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/pullup/internal/domain"
)

// FormatResult renders one unit result; Abandoned shows as a red X.
func FormatResult(r domain.UnitResult) string {
	if r.IsAbandoned() {
		return StyleRed.Render("X")
	}
	return r.String()
}

// FormatResults joins results as "7 · X · 4".
func FormatResults(results []domain.UnitResult) string {
	parts := make([]string, len(results))
	for i, r := range results {
		parts[i] = FormatResult(r)
	}
	return strings.Join(parts, Dim(" · "))
}

// FormatReps joins stored reps as "7 · 5 · 4".
func FormatReps(reps []int) string {
	if len(reps) == 0 {
		return Dim("--")
	}
	parts := make([]string, len(reps))
	for i, r := range reps {
		parts[i] = strconv.Itoa(r)
	}
	return strings.Join(parts, Dim(" · "))
}

// SetProgressStrip renders one marker per unit: done units show their value,
// the current unit shows the pending selection (or ↓ when there is none), and
// remaining units show a dash.
func SetProgressStrip(total int, results []domain.UnitResult, current *domain.UnitResult) string {
	cells := make([]string, 0, total)
	for i := 0; i < total; i++ {
		switch {
		case i < len(results):
			r := results[i]
			if r.IsAbandoned() {
				cells = append(cells, StyleRed.Render("[ X]"))
			} else {
				cells = append(cells, StyleGreen.Render(fmt.Sprintf("[%2d]", int(r))))
			}
		case i == len(results):
			if current != nil && !current.IsAbandoned() {
				cells = append(cells, StyleHeader.Render(fmt.Sprintf("[%02d]", int(*current))))
			} else {
				cells = append(cells, StyleHeader.Render("[ ↓]"))
			}
		default:
			cells = append(cells, StyleDim.Render("[ -]"))
		}
	}
	return strings.Join(cells, " ")
}

// RenderWorkoutTable renders the history table, newest first as given.
func RenderWorkoutTable(workouts []*domain.Workout, now time.Time) string {
	headers := []string{"DATE", "PROTOCOL", "REPS", "TOTAL", "ID"}
	rows := make([][]string, 0, len(workouts))
	for _, w := range workouts {
		rows = append(rows, []string{
			HumanDateFrom(w.Date, now),
			ProtocolBadge(w.Protocol),
			FormatReps(w.Reps),
			Bold(strconv.Itoa(w.Score())),
			TruncID(w.ID),
		})
	}
	return RenderTable(headers, rows, 3)
}

// RenderWorkoutSummary renders per-set values, the protocol score and, when
// prev is non-nil, the comparison with the previous workout.
func RenderWorkoutSummary(w *domain.Workout, prev *domain.Workout, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n\n", ProtocolBadge(w.Protocol), Dim(HumanDateFrom(w.Date, now)))
	for i, r := range w.Reps {
		line := fmt.Sprintf("  %s %s", Dim(fmt.Sprintf("Set %d:", i+1)), StyleFg.Render(fmt.Sprintf("%d reps", r)))
		if w.Protocol == domain.ProtocolLadder {
			line += Dim(fmt.Sprintf("  (%d)", domain.LadderScore(r)))
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s %s\n", Dim("Total:"), Bold(strconv.Itoa(w.Score())))

	if prev != nil {
		prevScore := prev.Score()
		fmt.Fprintf(&b, "  %s %s  %s  %s\n",
			Dim("Previous:"),
			FormatReps(prev.Reps),
			Dim(fmt.Sprintf("(%d, %s)", prevScore, HumanDateFrom(prev.Date, now))),
			FormatDelta(w.Score()-prevScore),
		)
	}
	return b.String()
}

// RenderProtocols renders the protocol catalogue.
func RenderProtocols(configs []domain.SessionConfig) string {
	headers := []string{"PROTOCOL", "NAME", "SETS", "REST"}
	rows := make([][]string, 0, len(configs))
	for _, c := range configs {
		rows = append(rows, []string{
			string(c.Protocol),
			ProtocolBadge(c.Protocol),
			strconv.Itoa(c.TotalUnits),
			FormatClock(c.RestSeconds),
		})
	}
	return RenderTable(headers, rows, 2, 3)
}
