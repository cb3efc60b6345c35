package models

import "time"

// Identity is a registered user account. PasswordHash never leaves the server;
// API responses carry the identity with the hash stripped.
type Identity struct {
	ID                 string    `json:"id"`
	Username           string    `json:"username"`
	Email              string    `json:"email"`
	PasswordHash       string    `json:"password_hash,omitempty"`
	FullName           string    `json:"full_name"`
	EmailNotifications bool      `json:"email_notifications"`
	CreatedAt          time.Time `json:"created_at"`
}

// Sanitized returns a copy safe to hand to clients.
func (i Identity) Sanitized() Identity {
	i.PasswordHash = ""
	return i
}

// VitalMetricsSnapshot is the latest reading set pushed from the watch.
// Every field is optional; a nil field renders as a placeholder, never an error.
type VitalMetricsSnapshot struct {
	HeartRate      *float64 `json:"heartRate,omitempty"`
	Gait           *float64 `json:"gait,omitempty"`
	Tremor         *float64 `json:"tremor,omitempty"`
	Voice          *float64 `json:"voice,omitempty"`
	Breathing      *float64 `json:"breathing,omitempty"`
	SleepQuality   *float64 `json:"sleepQuality,omitempty"`
	FallDetected   *bool    `json:"fallDetected,omitempty"`
	MuscleMovement *string  `json:"muscleMovement,omitempty"`
}

// LifestyleRecord is a user-entered daily log. One record per user per
// calendar day; Date is always YYYY-MM-DD.
type LifestyleRecord struct {
	Date       string  `json:"date"`
	Breakfast  string  `json:"breakfast"`
	Lunch      string  `json:"lunch"`
	Snack      string  `json:"snack"`
	Dinner     string  `json:"dinner"`
	SleepHours float64 `json:"sleepHours"`
	Activity   string  `json:"activity"`
}

// ActivityOptions are the choices offered by the lifestyle form.
var ActivityOptions = []string{"Walking", "Running", "Swimming", "Cycling", "Yoga", "Gym", "None"}

// Appointment is a booked visit with a neurologist.
type Appointment struct {
	ID     string `json:"id,omitempty"`
	Doctor string `json:"doctor"`
	Date   string `json:"date"` // YYYY-MM-DD
	Time   string `json:"time"`
	Reason string `json:"reason,omitempty"`
}
