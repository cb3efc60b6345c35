package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"neurowatch/internal/accounts"
)

type ProfileHandler struct {
	directory *accounts.Directory
}

func NewProfileHandler(directory *accounts.Directory) *ProfileHandler {
	return &ProfileHandler{directory: directory}
}

// GetMe returns the current identity's profile.
func (h *ProfileHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	id, ok := identityID(w, r)
	if !ok {
		return
	}
	identity, err := h.directory.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, accounts.ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not reach account store", http.StatusBadGateway)
		return
	}
	writeJSON(w, identity)
}

// UpdateNotifications flips the email-notification preference.
func (h *ProfileHandler) UpdateNotifications(w http.ResponseWriter, r *http.Request) {
	id, ok := identityID(w, r)
	if !ok {
		return
	}
	var body struct {
		Enabled *bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Enabled == nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if err := h.directory.UpdateNotificationPreference(r.Context(), id, *body.Enabled); err != nil {
		if errors.Is(err, accounts.ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not update", http.StatusBadGateway)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
