package api

import "net/http"

func (h *Handlers) listAreas(w http.ResponseWriter, r *http.Request) {
	areas, err := h.Catalog.Areas(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, areas)
}

func (h *Handlers) getArea(w http.ResponseWriter, r *http.Request) {
	area, ok := h.lookupArea(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, area)
}

func (h *Handlers) listLanes(w http.ResponseWriter, r *http.Request) {
	area, ok := h.lookupArea(w, r)
	if !ok {
		return
	}
	lanes, err := h.Catalog.Lanes(r.Context(), area.ID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, lanes)
}
