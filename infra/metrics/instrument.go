package metrics

import (
	"context"
	"time"

	"github.com/Ishaq7892/trafficsense/core/forecast"
	coremetrics "github.com/Ishaq7892/trafficsense/core/metrics"
	"github.com/Ishaq7892/trafficsense/core/model"
	"github.com/Ishaq7892/trafficsense/core/route"
)

// AreaForecaster matches the hourly forecast surface being instrumented.
type AreaForecaster interface {
	Forecast(ctx context.Context, areaID string, target time.Time) ([]model.HourlyPrediction, error)
}

// InstrumentedHourly decorates an area forecaster with event recording.
// Sink errors are dropped; observability must not fail a forecast.
type InstrumentedHourly struct {
	next AreaForecaster
	sink coremetrics.Sink
}

// NewInstrumentedHourly wraps the forecaster with the sink.
func NewInstrumentedHourly(next AreaForecaster, sink coremetrics.Sink) *InstrumentedHourly {
	return &InstrumentedHourly{next: next, sink: sink}
}

// Forecast forwards the call and records a forecast event.
func (i *InstrumentedHourly) Forecast(ctx context.Context, areaID string, target time.Time) ([]model.HourlyPrediction, error) {
	start := time.Now()
	predictions, err := i.next.Forecast(ctx, areaID, target)
	if err != nil {
		return nil, err
	}

	typical := 0
	for _, p := range predictions {
		if isTypicalSlot(p) {
			typical++
		}
	}
	_ = i.sink.RecordForecast(coremetrics.ForecastEvent{
		Kind:         "area",
		EntityID:     areaID,
		HistoryHours: len(predictions) - typical,
		TypicalHours: typical,
		Duration:     time.Since(start),
		Time:         start,
	})
	return predictions, nil
}

// Recommender matches the route recommendation surface.
type Recommender interface {
	Recommend(ctx context.Context, target time.Time) ([]route.Recommendation, error)
}

// InstrumentedRecommender decorates a recommender with verdict counting.
type InstrumentedRecommender struct {
	next Recommender
	sink coremetrics.Sink
}

// NewInstrumentedRecommender wraps the recommender with the sink.
func NewInstrumentedRecommender(next Recommender, sink coremetrics.Sink) *InstrumentedRecommender {
	return &InstrumentedRecommender{next: next, sink: sink}
}

// Recommend forwards the call and records per-verdict counts.
func (i *InstrumentedRecommender) Recommend(ctx context.Context, target time.Time) ([]route.Recommendation, error) {
	recs, err := i.next.Recommend(ctx, target)
	if err != nil {
		return nil, err
	}

	ev := coremetrics.RecommendationEvent{Locations: len(recs), Time: time.Now()}
	for _, rec := range recs {
		switch rec.Verdict {
		case route.VerdictAvoid:
			ev.Avoid++
		case route.VerdictIdeal:
			ev.Ideal++
		default:
			ev.Proceed++
		}
	}
	_ = i.sink.RecordRecommendation(ev)
	return recs, nil
}

// isTypicalSlot reports whether a slot carries exactly the typical
// fallback values for its hour. A data-derived slot can coincide, but
// the approximation is good enough for counters.
func isTypicalSlot(p model.HourlyPrediction) bool {
	return p.Confidence == 0.3 &&
		p.Density == forecast.TypicalDensity(p.Hour) &&
		p.Level == forecast.TypicalLevel(p.Hour)
}
