package handlers

import (
	"net/http"

	"neurowatch/internal/history"
)

type HistoryHandler struct {
	reporter *history.Reporter
}

func NewHistoryHandler(reporter *history.Reporter) *HistoryHandler {
	return &HistoryHandler{reporter: reporter}
}

// Report returns the joined daily history, newest first.
func (h *HistoryHandler) Report(w http.ResponseWriter, r *http.Request) {
	id, ok := identityID(w, r)
	if !ok {
		return
	}
	entries, err := h.reporter.BuildReport(r.Context(), id)
	if err != nil {
		http.Error(w, "could not build report", http.StatusBadGateway)
		return
	}
	if entries == nil {
		entries = []history.Entry{}
	}
	writeJSON(w, entries)
}

// Export renders the report as a downloadable text file.
func (h *HistoryHandler) Export(w http.ResponseWriter, r *http.Request) {
	id, ok := identityID(w, r)
	if !ok {
		return
	}
	entries, err := h.reporter.BuildReport(r.Context(), id)
	if err != nil {
		http.Error(w, "could not build report", http.StatusBadGateway)
		return
	}
	report := history.ExportSummary(entries)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.Filename+`"`)
	w.Write(report.Content)
}
