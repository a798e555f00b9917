package api

import (
	"net/http"
	"time"
)

func (h *Handlers) recommendations(w http.ResponseWriter, r *http.Request) {
	target := time.Time{}
	if raw := r.URL.Query().Get("time"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			http.Error(w, "invalid time, want RFC3339", http.StatusBadRequest)
			return
		}
		target = parsed
	}
	recs, err := h.Recommender.Recommend(r.Context(), target)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"recommendations": recs})
}
