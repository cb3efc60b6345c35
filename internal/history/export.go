package history

import (
	"fmt"
	"strings"
	"time"
)

// Report is the opaque handle ExportSummary hands back: a suggested
// filename plus the rendered bytes. The only contract is that presenting
// it to the user counts as the export acknowledgement.
type Report struct {
	Filename string
	Content  []byte
}

// ExportSummary renders entries as a plain-text report for doctor review.
func ExportSummary(entries []Entry) Report {
	var sb strings.Builder
	sb.WriteString("NeuroWatch Patient Report\n")
	sb.WriteString("Generated " + time.Now().Format(time.RFC3339) + "\n\n")
	if len(entries) == 0 {
		sb.WriteString("No recorded days.\n")
	}
	for _, e := range entries {
		fmt.Fprintf(&sb, "== %s ==\n", e.Date)
		fmt.Fprintf(&sb, "Heart Rate: %s  Gait: %s  Tremor: %s  Voice: %s\n", e.HeartRate, e.Gait, e.Tremor, e.Voice)
		fmt.Fprintf(&sb, "Breathing: %s  Sleep Quality: %s  Fall Detected: %s  Muscle: %s\n",
			e.Breathing, e.SleepQuality, e.FallDetected, e.MuscleMovement)
		fmt.Fprintf(&sb, "Meals: breakfast %s / lunch %s / snack %s / dinner %s\n", e.Breakfast, e.Lunch, e.Snack, e.Dinner)
		fmt.Fprintf(&sb, "Sleep: %s hours  Activity: %s\n\n", e.SleepHours, e.Activity)
	}
	return Report{
		Filename: "neurowatch-report-" + time.Now().Format("2006-01-02") + ".txt",
		Content:  []byte(sb.String()),
	}
}
