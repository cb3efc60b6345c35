// Package appointments books visits with neurologists. The doctor list is
// fixed in code, as it was in the original booking page.
package appointments

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"neurowatch/internal/models"
	"neurowatch/internal/store"
)

var ErrInvalid = errors.New("appointments: doctor, date and time are required")

// Doctors available for booking.
var Doctors = []string{
	"Dr. Sarah Chen - Movement Disorders",
	"Dr. Michael Torres - Neurology",
	"Dr. Emily Watson - Geriatric Neurology",
	"Dr. James Park - Neurophysiology",
}

// Book stores the appointments for identities under /appointments.
type Book struct {
	store store.RecordStore
}

func NewBook(s store.RecordStore) *Book {
	return &Book{store: s}
}

func path(identityID string) string {
	return "appointments/" + identityID
}

// Schedule appends the appointment under an auto-generated key and returns
// it with the key filled in.
func (b *Book) Schedule(ctx context.Context, identityID string, appt models.Appointment) (models.Appointment, error) {
	if appt.Doctor == "" || appt.Date == "" || appt.Time == "" {
		return models.Appointment{}, ErrInvalid
	}
	if _, err := time.Parse("2006-01-02", appt.Date); err != nil {
		return models.Appointment{}, fmt.Errorf("%w: bad date %q", ErrInvalid, appt.Date)
	}
	appt.ID = ""
	key, err := b.store.Post(ctx, path(identityID), appt)
	if err != nil {
		return models.Appointment{}, err
	}
	appt.ID = key
	return appt, nil
}

// Upcoming lists the identity's appointments, soonest first. None is an
// empty slice, not an error.
func (b *Book) Upcoming(ctx context.Context, identityID string) ([]models.Appointment, error) {
	byKey := make(map[string]models.Appointment)
	err := b.store.Get(ctx, path(identityID), &byKey)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	appts := make([]models.Appointment, 0, len(byKey))
	for key, a := range byKey {
		a.ID = key
		appts = append(appts, a)
	}
	sort.Slice(appts, func(i, j int) bool {
		if appts[i].Date != appts[j].Date {
			return appts[i].Date < appts[j].Date
		}
		return appts[i].Time < appts[j].Time
	})
	return appts, nil
}
