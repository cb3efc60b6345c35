package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"neurowatch/internal/analysis"
)

type AnalysisHandler struct {
	analyzer *analysis.Analyzer
}

func NewAnalysisHandler(analyzer *analysis.Analyzer) *AnalysisHandler {
	return &AnalysisHandler{analyzer: analyzer}
}

type analyzeRequest struct {
	Filename string `json:"filename"`
}

type analyzeResponse struct {
	Score int    `json:"score"`
	Label string `json:"label"`
}

func (h *AnalysisHandler) Voice(w http.ResponseWriter, r *http.Request) {
	h.analyze(w, r, "Voice Stability Score", h.analyzer.AnalyzeVoice)
}

func (h *AnalysisHandler) Gait(w http.ResponseWriter, r *http.Request) {
	h.analyze(w, r, "Gait Score", h.analyzer.AnalyzeGait)
}

func (h *AnalysisHandler) analyze(w http.ResponseWriter, r *http.Request, label string,
	fn func(ctx context.Context, identityID, filename string) (int, error)) {
	id, ok := identityID(w, r)
	if !ok {
		return
	}
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	score, err := fn(r.Context(), id, req.Filename)
	if err != nil {
		if errors.Is(err, analysis.ErrNoFile) {
			http.Error(w, "no file selected", http.StatusBadRequest)
			return
		}
		http.Error(w, "could not record score", http.StatusBadGateway)
		return
	}
	writeJSON(w, analyzeResponse{Score: score, Label: label})
}
