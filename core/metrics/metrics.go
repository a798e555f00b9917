// Package metrics defines the observability events emitted by the
// forecasting engine and the sink interface adapters implement.
package metrics

import "time"

// ForecastEvent describes one computed forecast.
type ForecastEvent struct {
	// Kind is "area" or "lane".
	Kind string
	// EntityID is the area or lane the forecast was computed for.
	EntityID string
	// HistoryHours counts slots derived from historical samples.
	HistoryHours int
	// TypicalHours counts slots filled from the typical-pattern tables.
	TypicalHours int
	Duration     time.Duration
	Time         time.Time
}

// RecommendationEvent describes one recommendation run.
type RecommendationEvent struct {
	Locations int
	Avoid     int
	Proceed   int
	Ideal     int
	Time      time.Time
}

// Sink records engine events for observability purposes.
type Sink interface {
	RecordForecast(ev ForecastEvent) error
	RecordRecommendation(ev RecommendationEvent) error
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) RecordForecast(ForecastEvent) error             { return nil }
func (NopSink) RecordRecommendation(RecommendationEvent) error { return nil }
