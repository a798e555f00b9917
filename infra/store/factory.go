// Package store provides the persistent backends for the area/lane
// catalog and the append-only traffic records.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/Ishaq7892/trafficsense/config"
	"github.com/Ishaq7892/trafficsense/core/history"
	"github.com/Ishaq7892/trafficsense/core/model"
)

// Writer is the ingest-facing side of a store. The forecasting engine
// never uses it; records are appended by uploads and seeding only.
type Writer interface {
	InsertArea(ctx context.Context, area model.Area) error
	InsertLane(ctx context.Context, lane model.Lane) error
	InsertTrafficRecords(ctx context.Context, records []model.TrafficRecord) error
	InsertLaneTrafficRecords(ctx context.Context, records []model.LaneTrafficRecord) error
	// SaveDailySummary caches a computed per-day summary. It is an
	// optional analytics cache, never read back by the forecasters.
	SaveDailySummary(ctx context.Context, areaID string, day time.Time, s history.DailySummary) error
}

// Store combines the catalog, record and writer surfaces of a backend.
type Store interface {
	history.RecordStore
	history.Catalog
	Writer
	Close() error
}

// New opens the store selected by the configuration.
func New(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case "sqlite":
		return NewSQLiteStore(cfg.Path)
	case "postgres":
		return NewPostgresStore(ctx, cfg.DSN)
	default:
		return nil, fmt.Errorf("unknown storage backend %s", cfg.Backend)
	}
}

// day truncates a timestamp to midnight UTC for analytics keys.
func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
