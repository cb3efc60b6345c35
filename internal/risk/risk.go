// Package risk classifies a vitals snapshot into a three-level risk
// category. The weights and thresholds here are the clinical model of the
// whole system; do not change them without revisiting every consumer.
package risk

import "neurowatch/internal/models"

// Level is the derived health-risk classification. It is recomputed from
// the newest snapshot on every change and never persisted.
type Level int

const (
	Low Level = iota
	Moderate
	High
)

func (l Level) String() string {
	switch l {
	case High:
		return "High Risk"
	case Moderate:
		return "Moderate Risk"
	default:
		return "Low Risk"
	}
}

// MarshalJSON renders the user-facing label.
func (l Level) MarshalJSON() ([]byte, error) {
	return []byte(`"` + l.String() + `"`), nil
}

// Score maps a snapshot to a Level. Absent fields contribute nothing; the
// corresponding rule is skipped, not failed.
//
//	tremor > 60                       +2
//	gait < 60                         +2
//	voice < 70                        +1
//	heartRate > 110 or < 55           +1
//	fall detected                     +3
//
// points >= 6 is High, >= 3 is Moderate, otherwise Low.
func Score(s models.VitalMetricsSnapshot) Level {
	points := Points(s)
	switch {
	case points >= 6:
		return High
	case points >= 3:
		return Moderate
	default:
		return Low
	}
}

// Points returns the raw weighted sum behind Score.
func Points(s models.VitalMetricsSnapshot) int {
	points := 0
	if s.Tremor != nil && *s.Tremor > 60 {
		points += 2
	}
	if s.Gait != nil && *s.Gait < 60 {
		points += 2
	}
	if s.Voice != nil && *s.Voice < 70 {
		points += 1
	}
	if s.HeartRate != nil && (*s.HeartRate > 110 || *s.HeartRate < 55) {
		points += 1
	}
	if s.FallDetected != nil && *s.FallDetected {
		points += 3
	}
	return points
}
