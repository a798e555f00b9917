package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ishaq7892/trafficsense/core/forecast"
	coremetrics "github.com/Ishaq7892/trafficsense/core/metrics"
	"github.com/Ishaq7892/trafficsense/core/model"
	"github.com/Ishaq7892/trafficsense/core/route"
)

type captureSink struct {
	forecasts       []coremetrics.ForecastEvent
	recommendations []coremetrics.RecommendationEvent
}

func (c *captureSink) RecordForecast(ev coremetrics.ForecastEvent) error {
	c.forecasts = append(c.forecasts, ev)
	return nil
}

func (c *captureSink) RecordRecommendation(ev coremetrics.RecommendationEvent) error {
	c.recommendations = append(c.recommendations, ev)
	return nil
}

type stubForecaster struct{}

func (stubForecaster) Forecast(_ context.Context, _ string, _ time.Time) ([]model.HourlyPrediction, error) {
	out := make([]model.HourlyPrediction, 24)
	for h := range out {
		out[h] = model.HourlyPrediction{Hour: h, Level: model.LevelMedium, Density: 50, Confidence: 0.5}
	}
	// Two typical-fallback slots.
	for _, h := range []int{2, 3} {
		out[h] = model.HourlyPrediction{
			Hour:       h,
			Level:      forecast.TypicalLevel(h),
			Density:    forecast.TypicalDensity(h),
			Confidence: 0.3,
		}
	}
	return out, nil
}

type stubRecommender struct{}

func (stubRecommender) Recommend(context.Context, time.Time) ([]route.Recommendation, error) {
	return []route.Recommendation{
		{Verdict: route.VerdictAvoid},
		{Verdict: route.VerdictIdeal},
		{Verdict: route.VerdictProceed},
		{Verdict: route.VerdictProceed},
	}, nil
}

func TestInstrumentedHourlyCountsTypicalSlots(t *testing.T) {
	sink := &captureSink{}
	f := NewInstrumentedHourly(stubForecaster{}, sink)

	predictions, err := f.Forecast(context.Background(), "a1", time.Now())
	require.NoError(t, err)
	assert.Len(t, predictions, 24)

	require.Len(t, sink.forecasts, 1)
	ev := sink.forecasts[0]
	assert.Equal(t, "area", ev.Kind)
	assert.Equal(t, "a1", ev.EntityID)
	assert.Equal(t, 2, ev.TypicalHours)
	assert.Equal(t, 22, ev.HistoryHours)
}

func TestInstrumentedRecommenderCountsVerdicts(t *testing.T) {
	sink := &captureSink{}
	r := NewInstrumentedRecommender(stubRecommender{}, sink)

	recs, err := r.Recommend(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Len(t, recs, 4)

	require.Len(t, sink.recommendations, 1)
	ev := sink.recommendations[0]
	assert.Equal(t, 4, ev.Locations)
	assert.Equal(t, 1, ev.Avoid)
	assert.Equal(t, 1, ev.Ideal)
	assert.Equal(t, 2, ev.Proceed)
}
