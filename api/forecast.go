package api

import (
	"net/http"
	"strconv"
	"time"
)

// forecastDate parses the optional date query parameter, defaulting to
// today. Only the calendar day matters to the forecasters.
func forecastDate(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return time.Now(), nil
	}
	return time.Parse("2006-01-02", raw)
}

func (h *Handlers) areaForecast(w http.ResponseWriter, r *http.Request) {
	area, ok := h.lookupArea(w, r)
	if !ok {
		return
	}
	target, err := forecastDate(r)
	if err != nil {
		http.Error(w, "invalid date, want YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	predictions, err := h.Areas.Forecast(r.Context(), area.ID, target)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{
		"area_id":     area.ID,
		"area_name":   area.Name,
		"date":        target.Format("2006-01-02"),
		"predictions": predictions,
	})
}

func (h *Handlers) areaWeekly(w http.ResponseWriter, r *http.Request) {
	area, ok := h.lookupArea(w, r)
	if !ok {
		return
	}
	patterns, err := h.Weekly.WeeklyPatterns(r.Context(), area.ID, time.Now())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{
		"area_id":   area.ID,
		"area_name": area.Name,
		"patterns":  patterns,
	})
}

func (h *Handlers) laneForecast(w http.ResponseWriter, r *http.Request) {
	lane, ok := h.lookupLane(w, r)
	if !ok {
		return
	}
	target, err := forecastDate(r)
	if err != nil {
		http.Error(w, "invalid date, want YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	predictions, err := h.Lanes.Forecast(r.Context(), lane.ID, target)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{
		"lane_id":     lane.ID,
		"lane_name":   lane.Name,
		"date":        target.Format("2006-01-02"),
		"predictions": predictions,
	})
}

func (h *Handlers) laneTrend(w http.ResponseWriter, r *http.Request) {
	lane, ok := h.lookupLane(w, r)
	if !ok {
		return
	}
	hours := h.TrendHours
	if raw := r.URL.Query().Get("hours"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 24 {
			http.Error(w, "invalid hours, want 1-24", http.StatusBadRequest)
			return
		}
		hours = n
	}
	trend, slots, err := h.Lanes.Trend(r.Context(), lane.ID, hours)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{
		"lane_id":     lane.ID,
		"lane_name":   lane.Name,
		"hours_ahead": hours,
		"trend":       trend,
		"predictions": slots,
	})
}
