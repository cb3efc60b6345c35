package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"neurowatch/internal/appointments"
	"neurowatch/internal/models"
)

type AppointmentsHandler struct {
	book *appointments.Book
}

func NewAppointmentsHandler(book *appointments.Book) *AppointmentsHandler {
	return &AppointmentsHandler{book: book}
}

// Schedule books an appointment for the current identity.
func (h *AppointmentsHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	id, ok := identityID(w, r)
	if !ok {
		return
	}
	var appt models.Appointment
	if err := json.NewDecoder(r.Body).Decode(&appt); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	booked, err := h.book.Schedule(r.Context(), id, appt)
	if err != nil {
		if errors.Is(err, appointments.ErrInvalid) {
			http.Error(w, "doctor, date and time are required", http.StatusBadRequest)
			return
		}
		http.Error(w, "could not book", http.StatusBadGateway)
		return
	}
	writeJSON(w, booked)
}

// List returns upcoming appointments, soonest first.
func (h *AppointmentsHandler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := identityID(w, r)
	if !ok {
		return
	}
	appts, err := h.book.Upcoming(r.Context(), id)
	if err != nil {
		http.Error(w, "could not fetch", http.StatusBadGateway)
		return
	}
	if appts == nil {
		appts = []models.Appointment{}
	}
	writeJSON(w, appts)
}

// Doctors returns the bookable doctor directory.
func (h *AppointmentsHandler) Doctors(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, appointments.Doctors)
}
