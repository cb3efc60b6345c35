// Package history assembles the read-mostly daily view that joins vitals
// and lifestyle data by date. Nothing here is persisted; the report is
// rebuilt from its sources on every request.
package history

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"neurowatch/internal/models"
	"neurowatch/internal/risk"
)

// Placeholder stands in for any reading we do not have. Missing data is
// never an error anywhere in this system.
const Placeholder = "--"

// VitalsSource supplies the newest snapshot for an identity.
type VitalsSource interface {
	Current(identityID string) (models.VitalMetricsSnapshot, risk.Level, bool)
}

// LifestyleSource supplies all stored lifestyle records for an identity.
type LifestyleSource interface {
	LoadAll(ctx context.Context, identityID string) ([]models.LifestyleRecord, error)
}

// Entry is one day of the joined report. All fields are display strings so
// absent readings carry the placeholder instead of a zero that looks real.
type Entry struct {
	Date           string `json:"date"`
	HeartRate      string `json:"heart_rate"`
	Gait           string `json:"gait"`
	Tremor         string `json:"tremor"`
	Voice          string `json:"voice"`
	Breathing      string `json:"breathing"`
	SleepQuality   string `json:"sleep_quality"`
	FallDetected   string `json:"fall_detected"`
	MuscleMovement string `json:"muscle_movement"`
	Breakfast      string `json:"breakfast"`
	Lunch          string `json:"lunch"`
	Snack          string `json:"snack"`
	Dinner         string `json:"dinner"`
	SleepHours     string `json:"sleep_hours"`
	Activity       string `json:"activity"`
}

// Reporter builds daily history reports.
type Reporter struct {
	vitals    VitalsSource
	lifestyle LifestyleSource
	now       func() time.Time
}

func NewReporter(v VitalsSource, l LifestyleSource) *Reporter {
	return &Reporter{vitals: v, lifestyle: l, now: time.Now}
}

// BuildReport joins the latest vitals snapshot (dated "today") with every
// lifestyle record, newest first. A date present on only one side still
// produces an entry, with placeholders for the other side.
func (r *Reporter) BuildReport(ctx context.Context, identityID string) ([]Entry, error) {
	records, err := r.lifestyle.LoadAll(ctx, identityID)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]Entry)
	for _, rec := range records {
		e := emptyEntry(rec.Date)
		fillLifestyle(&e, rec)
		byDate[rec.Date] = e
	}

	if snap, _, ok := r.vitals.Current(identityID); ok {
		today := r.now().Format("2006-01-02")
		e, exists := byDate[today]
		if !exists {
			e = emptyEntry(today)
		}
		fillVitals(&e, snap)
		byDate[today] = e
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	entries := make([]Entry, 0, len(dates))
	for _, d := range dates {
		entries = append(entries, byDate[d])
	}
	return entries, nil
}

func emptyEntry(date string) Entry {
	return Entry{
		Date:           date,
		HeartRate:      Placeholder,
		Gait:           Placeholder,
		Tremor:         Placeholder,
		Voice:          Placeholder,
		Breathing:      Placeholder,
		SleepQuality:   Placeholder,
		FallDetected:   Placeholder,
		MuscleMovement: Placeholder,
		Breakfast:      Placeholder,
		Lunch:          Placeholder,
		Snack:          Placeholder,
		Dinner:         Placeholder,
		SleepHours:     Placeholder,
		Activity:       Placeholder,
	}
}

func fillLifestyle(e *Entry, rec models.LifestyleRecord) {
	if rec.Breakfast != "" {
		e.Breakfast = rec.Breakfast
	}
	if rec.Lunch != "" {
		e.Lunch = rec.Lunch
	}
	if rec.Snack != "" {
		e.Snack = rec.Snack
	}
	if rec.Dinner != "" {
		e.Dinner = rec.Dinner
	}
	e.SleepHours = strconv.FormatFloat(rec.SleepHours, 'f', -1, 64)
	if rec.Activity != "" {
		e.Activity = rec.Activity
	}
}

func fillVitals(e *Entry, snap models.VitalMetricsSnapshot) {
	if snap.HeartRate != nil {
		e.HeartRate = fmt.Sprintf("%g bpm", *snap.HeartRate)
	}
	if snap.Gait != nil {
		e.Gait = strconv.FormatFloat(*snap.Gait, 'f', -1, 64)
	}
	if snap.Tremor != nil {
		e.Tremor = strconv.FormatFloat(*snap.Tremor, 'f', -1, 64)
	}
	if snap.Voice != nil {
		e.Voice = strconv.FormatFloat(*snap.Voice, 'f', -1, 64)
	}
	if snap.Breathing != nil {
		e.Breathing = fmt.Sprintf("%g rpm", *snap.Breathing)
	}
	if snap.SleepQuality != nil {
		e.SleepQuality = fmt.Sprintf("%g%%", *snap.SleepQuality)
	}
	if snap.FallDetected != nil {
		if *snap.FallDetected {
			e.FallDetected = "Yes"
		} else {
			e.FallDetected = "No"
		}
	}
	if snap.MuscleMovement != nil && *snap.MuscleMovement != "" {
		e.MuscleMovement = *snap.MuscleMovement
	}
}
