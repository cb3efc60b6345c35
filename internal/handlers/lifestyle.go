package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"neurowatch/internal/lifestyle"
	"neurowatch/internal/models"
)

type LifestyleHandler struct {
	log *lifestyle.Log
}

func NewLifestyleHandler(log *lifestyle.Log) *LifestyleHandler {
	return &LifestyleHandler{log: log}
}

// Save upserts the day's record. Saving twice on one date replaces the
// earlier record.
func (h *LifestyleHandler) Save(w http.ResponseWriter, r *http.Request) {
	id, ok := identityID(w, r)
	if !ok {
		return
	}
	var record models.LifestyleRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if err := h.log.Save(r.Context(), id, record); err != nil {
		if errors.Is(err, lifestyle.ErrInvalidDate) {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		http.Error(w, "could not save", http.StatusBadGateway)
		return
	}
	writeJSON(w, map[string]any{"message": "Lifestyle data saved successfully!"})
}

// List returns every stored record, oldest first.
func (h *LifestyleHandler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := identityID(w, r)
	if !ok {
		return
	}
	records, err := h.log.LoadAll(r.Context(), id)
	if err != nil {
		http.Error(w, "could not fetch", http.StatusBadGateway)
		return
	}
	if records == nil {
		records = []models.LifestyleRecord{}
	}
	writeJSON(w, records)
}
