// Package metrics implements the observability sinks for forecast and
// recommendation events.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	coremetrics "github.com/Ishaq7892/trafficsense/core/metrics"
)

// PromSink records engine events in Prometheus metrics.
type PromSink struct {
	forecasts       *prometheus.CounterVec
	fallbackHours   *prometheus.CounterVec
	duration        *prometheus.HistogramVec
	recommendations *prometheus.CounterVec
}

// NewPromSink registers the engine metrics on the default registerer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	forecasts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "trafficsense_forecasts_total",
		Help: "Total number of computed forecasts",
	}, []string{"kind"})
	fallbackHours := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "trafficsense_forecast_fallback_hours_total",
		Help: "Forecast slots filled from typical patterns instead of history",
	}, []string{"kind"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "trafficsense_forecast_duration_seconds",
		Help:    "Time spent computing a forecast",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})
	recommendations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "trafficsense_recommendations_total",
		Help: "Total number of route recommendations by verdict",
	}, []string{"verdict"})

	if err := register(reg, &forecasts); err != nil {
		return nil, err
	}
	if err := register(reg, &fallbackHours); err != nil {
		return nil, err
	}
	if err := registerHistogram(reg, &duration); err != nil {
		return nil, err
	}
	if err := register(reg, &recommendations); err != nil {
		return nil, err
	}
	return &PromSink{
		forecasts:       forecasts,
		fallbackHours:   fallbackHours,
		duration:        duration,
		recommendations: recommendations,
	}, nil
}

func register(reg prometheus.Registerer, vec **prometheus.CounterVec) error {
	if err := reg.Register(*vec); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return err
		}
		*vec = are.ExistingCollector.(*prometheus.CounterVec)
	}
	return nil
}

func registerHistogram(reg prometheus.Registerer, vec **prometheus.HistogramVec) error {
	if err := reg.Register(*vec); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return err
		}
		*vec = are.ExistingCollector.(*prometheus.HistogramVec)
	}
	return nil
}

// RecordForecast increments the forecast counters.
func (s *PromSink) RecordForecast(ev coremetrics.ForecastEvent) error {
	s.forecasts.WithLabelValues(ev.Kind).Inc()
	s.fallbackHours.WithLabelValues(ev.Kind).Add(float64(ev.TypicalHours))
	s.duration.WithLabelValues(ev.Kind).Observe(ev.Duration.Seconds())
	return nil
}

// RecordRecommendation increments the verdict counters.
func (s *PromSink) RecordRecommendation(ev coremetrics.RecommendationEvent) error {
	s.recommendations.WithLabelValues("avoid").Add(float64(ev.Avoid))
	s.recommendations.WithLabelValues("proceed").Add(float64(ev.Proceed))
	s.recommendations.WithLabelValues("ideal").Add(float64(ev.Ideal))
	return nil
}

// StartPromServer exposes /metrics until the context is cancelled.
func StartPromServer(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: ":" + port, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
