package handlers

import (
	"encoding/json"
	"net/http"

	"neurowatch/internal/middleware"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// identityID pulls the authenticated identity from the request context.
// The auth middleware guarantees it on protected routes.
func identityID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := middleware.IdentityID(r.Context())
	if !ok {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
	}
	return id, ok
}
