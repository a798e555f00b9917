// Package cache provides an optional redis-backed forecast cache.
// Caching is purely a latency optimisation: a disabled cache leaves the
// forecast semantics untouched.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Ishaq7892/trafficsense/config"
	"github.com/Ishaq7892/trafficsense/core/logger"
	"github.com/Ishaq7892/trafficsense/core/model"
)

// AreaForecaster is the forecast surface the cache decorates.
type AreaForecaster interface {
	Forecast(ctx context.Context, areaID string, target time.Time) ([]model.HourlyPrediction, error)
}

// ForecastCache stores serialized 24-slot forecasts with a short TTL.
type ForecastCache struct {
	client *redis.Client
	ttl    time.Duration
	log    logger.Logger
}

// New connects to redis and verifies the connection.
func New(cfg config.CacheConfig, log logger.Logger) (*ForecastCache, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return &ForecastCache{
		client: client,
		ttl:    time.Duration(cfg.TTLSeconds) * time.Second,
		log:    log,
	}, nil
}

// Close releases the redis connection.
func (c *ForecastCache) Close() error { return c.client.Close() }

func forecastKey(areaID string, target time.Time) string {
	return "forecast:area:" + areaID + ":" + target.Format("2006-01-02")
}

// Get returns the cached forecast for the area and date, if present.
func (c *ForecastCache) Get(ctx context.Context, areaID string, target time.Time) ([]model.HourlyPrediction, bool) {
	raw, err := c.client.Get(ctx, forecastKey(areaID, target)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warnf("forecast cache get: %v", err)
		}
		return nil, false
	}
	var predictions []model.HourlyPrediction
	if err := json.Unmarshal(raw, &predictions); err != nil {
		c.log.Warnf("forecast cache decode: %v", err)
		return nil, false
	}
	return predictions, true
}

// Set stores the forecast under the area/date key.
func (c *ForecastCache) Set(ctx context.Context, areaID string, target time.Time, predictions []model.HourlyPrediction) {
	raw, err := json.Marshal(predictions)
	if err != nil {
		c.log.Warnf("forecast cache encode: %v", err)
		return
	}
	if err := c.client.Set(ctx, forecastKey(areaID, target), raw, c.ttl).Err(); err != nil {
		c.log.Warnf("forecast cache set: %v", err)
	}
}

// CachedHourly decorates an area forecaster with the cache. Cache
// failures fall through to the wrapped forecaster.
type CachedHourly struct {
	next  AreaForecaster
	cache *ForecastCache
}

// NewCachedHourly wraps the forecaster with the cache.
func NewCachedHourly(next AreaForecaster, cache *ForecastCache) *CachedHourly {
	return &CachedHourly{next: next, cache: cache}
}

// Forecast serves from the cache when possible.
func (c *CachedHourly) Forecast(ctx context.Context, areaID string, target time.Time) ([]model.HourlyPrediction, error) {
	if predictions, ok := c.cache.Get(ctx, areaID, target); ok {
		return predictions, nil
	}
	predictions, err := c.next.Forecast(ctx, areaID, target)
	if err != nil {
		return nil, err
	}
	c.cache.Set(ctx, areaID, target, predictions)
	return predictions, nil
}
