// Package app wires the configuration, storage, forecasters and HTTP
// surface into a runnable service.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Ishaq7892/trafficsense/api"
	"github.com/Ishaq7892/trafficsense/config"
	"github.com/Ishaq7892/trafficsense/core/forecast"
	coremetrics "github.com/Ishaq7892/trafficsense/core/metrics"
	"github.com/Ishaq7892/trafficsense/core/resolve"
	"github.com/Ishaq7892/trafficsense/core/route"
	"github.com/Ishaq7892/trafficsense/core/status"
	"github.com/Ishaq7892/trafficsense/infra/cache"
	"github.com/Ishaq7892/trafficsense/infra/logger"
	"github.com/Ishaq7892/trafficsense/infra/metrics"
	"github.com/Ishaq7892/trafficsense/infra/store"
)

// Service holds the assembled engine and its HTTP server.
type Service struct {
	Store       store.Store
	Resolver    *resolve.Resolver
	Hourly      *forecast.Hourly
	Lanes       *forecast.Lane
	Handlers    *api.Handlers
	cache       *cache.ForecastCache
	addr        string
	promEnabled bool
	promPort    string
	log         logger.Logger
}

// New creates a Service from the configuration.
func New(ctx context.Context, cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	st, err := store.New(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink()
		if err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.Sink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = coremetrics.NewMultiSink(sinks...)
	}

	hourly := forecast.NewHourly(st, cfg.Forecast.LookbackDays, logger.New("forecast"))
	lanes := forecast.NewLane(st, cfg.Forecast.LookbackDays, logger.New("forecast"))

	var areaForecaster api.AreaForecaster = hourly
	var fc *cache.ForecastCache
	if cfg.Cache.Enabled {
		fc, err = cache.New(cfg.Cache, logger.New("cache"))
		if err != nil {
			logg.Warnf("forecast cache unavailable, continuing without: %v", err)
		} else {
			areaForecaster = cache.NewCachedHourly(areaForecaster, fc)
		}
	}
	areaForecaster = metrics.NewInstrumentedHourly(areaForecaster, sink)

	resolver := resolve.New()
	statuses := status.NewResolver(areaForecaster, lanes, logger.New("status"))
	recommender := route.New(st, areaForecaster, resolver, cfg.Forecast.TargetLocations, logger.New("route"))

	handlers := &api.Handlers{
		Catalog:     st,
		Areas:       areaForecaster,
		Weekly:      hourly,
		Lanes:       lanes,
		Status:      statuses,
		Recommender: metrics.NewInstrumentedRecommender(recommender, sink),
		TrendHours:  cfg.Forecast.TrendHours,
		Log:         logger.New("api"),
	}

	return &Service{
		Store:       st,
		Resolver:    resolver,
		Hourly:      hourly,
		Lanes:       lanes,
		Handlers:    handlers,
		cache:       fc,
		addr:        cfg.API.Addr,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promPort:    cfg.Metrics.PrometheusPort,
		log:         logg,
	}, nil
}

// Run serves the API until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	srv := &http.Server{Addr: s.addr, Handler: s.Handlers.NewMux()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.log.Infof("serving API on %s", s.addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close releases the store and cache connections.
func (s *Service) Close() error {
	var errs []error
	if s.cache != nil {
		errs = append(errs, s.cache.Close())
	}
	errs = append(errs, s.Store.Close())
	return errors.Join(errs...)
}
