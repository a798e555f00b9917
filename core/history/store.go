// Package history fetches and aggregates historical traffic records.
// The store behind the interfaces is append-only: the engine reads
// records and never mutates them.
package history

import (
	"context"
	"errors"
	"time"

	"github.com/Ishaq7892/trafficsense/core/model"
)

// ErrNotFound signals that a catalog entity does not exist. Data
// sparsity is never reported through this error; only a genuinely
// missing area or lane is.
var ErrNotFound = errors.New("not found")

// RecordStore fetches historical traffic records, ascending by time.
type RecordStore interface {
	TrafficRecords(ctx context.Context, areaID string, from, to time.Time) ([]model.TrafficRecord, error)
	LaneTrafficRecords(ctx context.Context, laneID string, from, to time.Time) ([]model.LaneTrafficRecord, error)
}

// Catalog provides read-only access to the seeded areas and lanes.
type Catalog interface {
	Areas(ctx context.Context) ([]model.Area, error)
	Area(ctx context.Context, id string) (model.Area, error)
	// AreaByName matches case-insensitively and tolerates partial
	// names. It returns ErrNotFound when nothing matches.
	AreaByName(ctx context.Context, name string) (model.Area, error)
	Lanes(ctx context.Context, areaID string) ([]model.Lane, error)
	Lane(ctx context.Context, id string) (model.Lane, error)
}
