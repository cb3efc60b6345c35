package handlers

import (
	"net/http"

	"neurowatch/internal/models"
	"neurowatch/internal/risk"
	"neurowatch/internal/vitals"
)

type VitalsHandler struct {
	monitor *vitals.Monitor
}

func NewVitalsHandler(monitor *vitals.Monitor) *VitalsHandler {
	return &VitalsHandler{monitor: monitor}
}

type vitalsResponse struct {
	Snapshot  models.VitalMetricsSnapshot `json:"snapshot"`
	RiskLevel risk.Level                  `json:"risk_level"`
	HasData   bool                        `json:"has_data"`
}

// Get returns the newest snapshot and its risk level. Absent readings are
// a valid response, not an error; the client renders placeholders.
func (h *VitalsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := identityID(w, r)
	if !ok {
		return
	}
	snap, level, hasData := h.monitor.Current(id)
	writeJSON(w, vitalsResponse{Snapshot: snap, RiskLevel: level, HasData: hasData})
}
