package api

import "net/http"

func (h *Handlers) areaStatus(w http.ResponseWriter, r *http.Request) {
	area, ok := h.lookupArea(w, r)
	if !ok {
		return
	}
	current, err := h.Status.Current(r.Context(), area.ID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{
		"area_id":   area.ID,
		"area_name": area.Name,
		"current":   current,
	})
}

func (h *Handlers) laneStatuses(w http.ResponseWriter, r *http.Request) {
	area, ok := h.lookupArea(w, r)
	if !ok {
		return
	}
	lanes, err := h.Catalog.Lanes(r.Context(), area.ID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	ids := make([]string, 0, len(lanes))
	for _, l := range lanes {
		ids = append(ids, l.ID)
	}
	statuses := h.Status.CurrentLanes(r.Context(), ids)

	out := make([]map[string]any, 0, len(lanes))
	for _, l := range lanes {
		entry := map[string]any{
			"lane_id":   l.ID,
			"lane_name": l.Name,
			"position":  l.Position,
		}
		if s, ok := statuses[l.ID]; ok {
			entry["current"] = s
		}
		out = append(out, entry)
	}
	h.writeJSON(w, map[string]any{
		"area_id": area.ID,
		"lanes":   out,
	})
}
