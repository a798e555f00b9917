package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ishaq7892/trafficsense/core/history"
	"github.com/Ishaq7892/trafficsense/core/model"
)

// PostgresStore keeps the catalog and traffic records in PostgreSQL,
// for deployments that share the database with the upload pipeline.
type PostgresStore struct {
	pool *pgxpool.Pool
}

const postgresSchema = `
CREATE TABLE IF NOT EXISTS areas (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    category TEXT,
    region TEXT,
    latitude DOUBLE PRECISION DEFAULT 0,
    longitude DOUBLE PRECISION DEFAULT 0,
    is_circle BOOLEAN NOT NULL DEFAULT FALSE,
    lane_count INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS lanes (
    id TEXT PRIMARY KEY,
    area_id TEXT NOT NULL REFERENCES areas(id),
    position TEXT NOT NULL,
    name TEXT DEFAULT '',
    direction TEXT DEFAULT ''
);
CREATE TABLE IF NOT EXISTS traffic_data (
    id TEXT PRIMARY KEY,
    area_id TEXT NOT NULL REFERENCES areas(id),
    ts TIMESTAMPTZ NOT NULL,
    density DOUBLE PRECISION NOT NULL,
    level TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_traffic_data_area_ts ON traffic_data(area_id, ts);
CREATE TABLE IF NOT EXISTS lane_traffic_data (
    id TEXT PRIMARY KEY,
    lane_id TEXT NOT NULL REFERENCES lanes(id),
    ts TIMESTAMPTZ NOT NULL,
    vehicle_count INTEGER NOT NULL,
    density DOUBLE PRECISION NOT NULL,
    level TEXT NOT NULL,
    avg_speed DOUBLE PRECISION NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_lane_traffic_data_lane_ts ON lane_traffic_data(lane_id, ts);
CREATE TABLE IF NOT EXISTS traffic_analytics (
    area_id TEXT NOT NULL,
    day DATE NOT NULL,
    avg_density DOUBLE PRECISION,
    busiest_hour INTEGER,
    quietest_hour INTEGER,
    total_records INTEGER,
    PRIMARY KEY(area_id, day)
);`

// NewPostgresStore connects to the database and ensures the schema.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, err
	}
	return &PostgresStore{pool: pool}, nil
}

// Areas lists every catalog area ordered by name.
func (s *PostgresStore) Areas(ctx context.Context) ([]model.Area, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name, category, region, latitude, longitude, is_circle, lane_count
        FROM areas ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var areas []model.Area
	for rows.Next() {
		var a model.Area
		var category string
		if err := rows.Scan(&a.ID, &a.Name, &category, &a.Region, &a.Latitude, &a.Longitude, &a.IsCircle, &a.LaneCount); err != nil {
			return nil, err
		}
		a.Category = model.AreaCategory(category)
		areas = append(areas, a)
	}
	return areas, rows.Err()
}

// Area fetches one area by id.
func (s *PostgresStore) Area(ctx context.Context, id string) (model.Area, error) {
	var a model.Area
	var category string
	err := s.pool.QueryRow(ctx, `SELECT id, name, category, region, latitude, longitude, is_circle, lane_count
        FROM areas WHERE id = $1`, id).
		Scan(&a.ID, &a.Name, &category, &a.Region, &a.Latitude, &a.Longitude, &a.IsCircle, &a.LaneCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Area{}, history.ErrNotFound
	}
	a.Category = model.AreaCategory(category)
	return a, err
}

// AreaByName fetches the first area matching the name, tolerating case
// and partial matches.
func (s *PostgresStore) AreaByName(ctx context.Context, name string) (model.Area, error) {
	var a model.Area
	var category string
	err := s.pool.QueryRow(ctx, `SELECT id, name, category, region, latitude, longitude, is_circle, lane_count
        FROM areas WHERE name ILIKE '%' || $1 || '%' ORDER BY name LIMIT 1`, name).
		Scan(&a.ID, &a.Name, &category, &a.Region, &a.Latitude, &a.Longitude, &a.IsCircle, &a.LaneCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Area{}, history.ErrNotFound
	}
	a.Category = model.AreaCategory(category)
	return a, err
}

// Lanes lists the lanes of an area ordered by position.
func (s *PostgresStore) Lanes(ctx context.Context, areaID string) ([]model.Lane, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, area_id, position, name, direction
        FROM lanes WHERE area_id = $1 ORDER BY position`, areaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var lanes []model.Lane
	for rows.Next() {
		var l model.Lane
		if err := rows.Scan(&l.ID, &l.AreaID, &l.Position, &l.Name, &l.Direction); err != nil {
			return nil, err
		}
		lanes = append(lanes, l)
	}
	return lanes, rows.Err()
}

// Lane fetches one lane by id.
func (s *PostgresStore) Lane(ctx context.Context, id string) (model.Lane, error) {
	var l model.Lane
	err := s.pool.QueryRow(ctx, `SELECT id, area_id, position, name, direction
        FROM lanes WHERE id = $1`, id).Scan(&l.ID, &l.AreaID, &l.Position, &l.Name, &l.Direction)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Lane{}, history.ErrNotFound
	}
	return l, err
}

// TrafficRecords returns area records in [from,to], ascending by time.
func (s *PostgresStore) TrafficRecords(ctx context.Context, areaID string, from, to time.Time) ([]model.TrafficRecord, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, area_id, ts, density, level
        FROM traffic_data WHERE area_id = $1 AND ts >= $2 AND ts <= $3 ORDER BY ts`,
		areaID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var records []model.TrafficRecord
	for rows.Next() {
		var r model.TrafficRecord
		if err := rows.Scan(&r.ID, &r.AreaID, &r.Timestamp, &r.DensityScore, &r.Level); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// LaneTrafficRecords returns lane records in [from,to], ascending by time.
func (s *PostgresStore) LaneTrafficRecords(ctx context.Context, laneID string, from, to time.Time) ([]model.LaneTrafficRecord, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, lane_id, ts, vehicle_count, density, level, avg_speed
        FROM lane_traffic_data WHERE lane_id = $1 AND ts >= $2 AND ts <= $3 ORDER BY ts`,
		laneID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var records []model.LaneTrafficRecord
	for rows.Next() {
		var r model.LaneTrafficRecord
		if err := rows.Scan(&r.ID, &r.LaneID, &r.Timestamp, &r.VehicleCount, &r.DensityScore, &r.Level, &r.AvgSpeed); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// InsertArea stores a new catalog area, assigning an id when missing.
func (s *PostgresStore) InsertArea(ctx context.Context, area model.Area) error {
	if err := area.Validate(); err != nil {
		return err
	}
	if area.ID == "" {
		area.ID = uuid.NewString()
	}
	_, err := s.pool.Exec(ctx, `INSERT INTO areas (id, name, category, region, latitude, longitude, is_circle, lane_count)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		area.ID, area.Name, string(area.Category), area.Region, area.Latitude, area.Longitude, area.IsCircle, area.LaneCount)
	return err
}

// InsertLane stores a new catalog lane, assigning an id when missing.
func (s *PostgresStore) InsertLane(ctx context.Context, lane model.Lane) error {
	if err := lane.Validate(); err != nil {
		return err
	}
	if lane.ID == "" {
		lane.ID = uuid.NewString()
	}
	_, err := s.pool.Exec(ctx, `INSERT INTO lanes (id, area_id, position, name, direction)
        VALUES ($1, $2, $3, $4, $5)`,
		lane.ID, lane.AreaID, string(lane.Position), lane.Name, lane.Direction)
	return err
}

// InsertTrafficRecords appends a batch of area records in one transaction.
func (s *PostgresStore) InsertTrafficRecords(ctx context.Context, records []model.TrafficRecord) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return err
		}
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		if _, err := tx.Exec(ctx, `INSERT INTO traffic_data (id, area_id, ts, density, level)
            VALUES ($1, $2, $3, $4, $5)`,
			r.ID, r.AreaID, r.Timestamp, r.DensityScore, string(r.Level)); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// InsertLaneTrafficRecords appends a batch of lane records in one transaction.
func (s *PostgresStore) InsertLaneTrafficRecords(ctx context.Context, records []model.LaneTrafficRecord) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return err
		}
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		if _, err := tx.Exec(ctx, `INSERT INTO lane_traffic_data (id, lane_id, ts, vehicle_count, density, level, avg_speed)
            VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			r.ID, r.LaneID, r.Timestamp, r.VehicleCount, r.DensityScore, string(r.Level), r.AvgSpeed); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// SaveDailySummary upserts the analytics cache row for the day.
func (s *PostgresStore) SaveDailySummary(ctx context.Context, areaID string, d time.Time, sum history.DailySummary) error {
	_, err := s.pool.Exec(ctx, `INSERT INTO traffic_analytics (area_id, day, avg_density, busiest_hour, quietest_hour, total_records)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (area_id, day) DO UPDATE SET
            avg_density = EXCLUDED.avg_density,
            busiest_hour = EXCLUDED.busiest_hour,
            quietest_hour = EXCLUDED.quietest_hour,
            total_records = EXCLUDED.total_records`,
		areaID, day(d), sum.AvgDensity, sum.BusiestHour, sum.QuietestHour, sum.TotalRecords)
	return err
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
