package status

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ishaq7892/trafficsense/core/model"
)

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

type fakeAreaForecaster struct {
	predictions []model.HourlyPrediction
	err         error
}

func (f *fakeAreaForecaster) Forecast(context.Context, string, time.Time) ([]model.HourlyPrediction, error) {
	return f.predictions, f.err
}

type fakeLaneForecaster struct {
	results map[string][]model.LaneHourlyPrediction
}

func (f *fakeLaneForecaster) ForecastMany(_ context.Context, _ []string, _ time.Time) map[string][]model.LaneHourlyPrediction {
	return f.results
}

func fullDay(level model.TrafficLevel, density float64) []model.HourlyPrediction {
	out := make([]model.HourlyPrediction, 24)
	for h := range out {
		out[h] = model.HourlyPrediction{Hour: h, Level: level, Density: density, Confidence: 0.5}
	}
	return out
}

func TestCurrentPicksPresentHour(t *testing.T) {
	predictions := fullDay(model.LevelLow, 20)
	predictions[14] = model.HourlyPrediction{Hour: 14, Level: model.LevelHigh, Density: 80, Confidence: 0.9}

	r := NewResolver(&fakeAreaForecaster{predictions: predictions}, &fakeLaneForecaster{}, nopLogger{})
	r.now = func() time.Time { return time.Date(2025, 3, 12, 14, 45, 0, 0, time.UTC) }

	current, err := r.Current(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, model.LevelHigh, current.Level)
	assert.Equal(t, "heavy", current.DisplayLevel)
	assert.InDelta(t, 80, current.DensityScore, 1e-9)
	assert.InDelta(t, 0.9, current.Confidence, 1e-9)
}

func TestCurrentDefaultsOnMissingSlot(t *testing.T) {
	r := NewResolver(&fakeAreaForecaster{predictions: nil}, &fakeLaneForecaster{}, nopLogger{})
	r.now = func() time.Time { return time.Date(2025, 3, 12, 14, 0, 0, 0, time.UTC) }

	current, err := r.Current(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, model.LevelMedium, current.Level)
	assert.Equal(t, "moderate", current.DisplayLevel)
	assert.InDelta(t, 50, current.DensityScore, 1e-9)
	assert.InDelta(t, 0.3, current.Confidence, 1e-9)
}

func TestCurrentPropagatesForecastError(t *testing.T) {
	r := NewResolver(&fakeAreaForecaster{err: errors.New("boom")}, &fakeLaneForecaster{}, nopLogger{})
	_, err := r.Current(context.Background(), "a1")
	assert.Error(t, err)
}

func TestCurrentLanes(t *testing.T) {
	lanes := &fakeLaneForecaster{results: map[string][]model.LaneHourlyPrediction{
		"l1": {{Hour: 14, Level: model.LevelMedium, Density: 50, VehicleCount: 42}},
		"l2": {}, // failed forecast upstream
	}}
	r := NewResolver(&fakeAreaForecaster{}, lanes, nopLogger{})
	r.now = func() time.Time { return time.Date(2025, 3, 12, 14, 0, 0, 0, time.UTC) }

	current := r.CurrentLanes(context.Background(), []string{"l1", "l2"})
	require.Len(t, current, 1)
	assert.Equal(t, 42, current["l1"].VehicleCount)
	if _, ok := current["l2"]; ok {
		t.Error("lane without a current slot must be absent")
	}
}
