package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/Ishaq7892/trafficsense/core/history"
	"github.com/Ishaq7892/trafficsense/core/model"
)

// SQLiteStore keeps the catalog and traffic records in a SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS areas (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    category TEXT,
    region TEXT,
    latitude REAL,
    longitude REAL,
    is_circle INTEGER NOT NULL DEFAULT 0,
    lane_count INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS lanes (
    id TEXT PRIMARY KEY,
    area_id TEXT NOT NULL REFERENCES areas(id),
    position TEXT NOT NULL,
    name TEXT,
    direction TEXT
);
CREATE TABLE IF NOT EXISTS traffic_data (
    id TEXT PRIMARY KEY,
    area_id TEXT NOT NULL REFERENCES areas(id),
    ts INTEGER NOT NULL,
    density REAL NOT NULL,
    level TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_traffic_data_area_ts ON traffic_data(area_id, ts);
CREATE TABLE IF NOT EXISTS lane_traffic_data (
    id TEXT PRIMARY KEY,
    lane_id TEXT NOT NULL REFERENCES lanes(id),
    ts INTEGER NOT NULL,
    vehicle_count INTEGER NOT NULL,
    density REAL NOT NULL,
    level TEXT NOT NULL,
    avg_speed REAL NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_lane_traffic_data_lane_ts ON lane_traffic_data(lane_id, ts);
CREATE TABLE IF NOT EXISTS traffic_analytics (
    area_id TEXT NOT NULL,
    day INTEGER NOT NULL,
    avg_density REAL,
    busiest_hour INTEGER,
    quietest_hour INTEGER,
    total_records INTEGER,
    PRIMARY KEY(area_id, day)
);`

// NewSQLiteStore opens or creates the database and ensures the schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Areas lists every catalog area ordered by name.
func (s *SQLiteStore) Areas(ctx context.Context) ([]model.Area, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, category, region, latitude, longitude, is_circle, lane_count
        FROM areas ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var areas []model.Area
	for rows.Next() {
		a, err := scanArea(rows)
		if err != nil {
			return nil, err
		}
		areas = append(areas, a)
	}
	return areas, rows.Err()
}

// Area fetches one area by id.
func (s *SQLiteStore) Area(ctx context.Context, id string) (model.Area, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, name, category, region, latitude, longitude, is_circle, lane_count
        FROM areas WHERE id = ?`, id)
	a, err := scanArea(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Area{}, history.ErrNotFound
	}
	return a, err
}

// AreaByName fetches the first area matching the name, tolerating case
// and partial matches.
func (s *SQLiteStore) AreaByName(ctx context.Context, name string) (model.Area, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, name, category, region, latitude, longitude, is_circle, lane_count
        FROM areas WHERE name LIKE '%' || ? || '%' COLLATE NOCASE ORDER BY name LIMIT 1`, name)
	a, err := scanArea(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Area{}, history.ErrNotFound
	}
	return a, err
}

// Lanes lists the lanes of an area ordered by position.
func (s *SQLiteStore) Lanes(ctx context.Context, areaID string) ([]model.Lane, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, area_id, position, name, direction
        FROM lanes WHERE area_id = ? ORDER BY position`, areaID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
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
func (s *SQLiteStore) Lane(ctx context.Context, id string) (model.Lane, error) {
	var l model.Lane
	err := s.db.QueryRowContext(ctx, `SELECT id, area_id, position, name, direction
        FROM lanes WHERE id = ?`, id).Scan(&l.ID, &l.AreaID, &l.Position, &l.Name, &l.Direction)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Lane{}, history.ErrNotFound
	}
	return l, err
}

// TrafficRecords returns area records in [from,to], ascending by time.
func (s *SQLiteStore) TrafficRecords(ctx context.Context, areaID string, from, to time.Time) ([]model.TrafficRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, area_id, ts, density, level
        FROM traffic_data WHERE area_id = ? AND ts >= ? AND ts <= ? ORDER BY ts`,
		areaID, from.Unix(), to.Unix())
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var records []model.TrafficRecord
	for rows.Next() {
		var r model.TrafficRecord
		var ts int64
		if err := rows.Scan(&r.ID, &r.AreaID, &ts, &r.DensityScore, &r.Level); err != nil {
			return nil, err
		}
		r.Timestamp = time.Unix(ts, 0).UTC()
		records = append(records, r)
	}
	return records, rows.Err()
}

// LaneTrafficRecords returns lane records in [from,to], ascending by time.
func (s *SQLiteStore) LaneTrafficRecords(ctx context.Context, laneID string, from, to time.Time) ([]model.LaneTrafficRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, lane_id, ts, vehicle_count, density, level, avg_speed
        FROM lane_traffic_data WHERE lane_id = ? AND ts >= ? AND ts <= ? ORDER BY ts`,
		laneID, from.Unix(), to.Unix())
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var records []model.LaneTrafficRecord
	for rows.Next() {
		var r model.LaneTrafficRecord
		var ts int64
		if err := rows.Scan(&r.ID, &r.LaneID, &ts, &r.VehicleCount, &r.DensityScore, &r.Level, &r.AvgSpeed); err != nil {
			return nil, err
		}
		r.Timestamp = time.Unix(ts, 0).UTC()
		records = append(records, r)
	}
	return records, rows.Err()
}

// InsertArea stores a new catalog area, assigning an id when missing.
func (s *SQLiteStore) InsertArea(ctx context.Context, area model.Area) error {
	if err := area.Validate(); err != nil {
		return err
	}
	if area.ID == "" {
		area.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO areas (id, name, category, region, latitude, longitude, is_circle, lane_count)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		area.ID, area.Name, string(area.Category), area.Region, area.Latitude, area.Longitude, area.IsCircle, area.LaneCount)
	return err
}

// InsertLane stores a new catalog lane, assigning an id when missing.
func (s *SQLiteStore) InsertLane(ctx context.Context, lane model.Lane) error {
	if err := lane.Validate(); err != nil {
		return err
	}
	if lane.ID == "" {
		lane.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO lanes (id, area_id, position, name, direction)
        VALUES (?, ?, ?, ?, ?)`,
		lane.ID, lane.AreaID, string(lane.Position), lane.Name, lane.Direction)
	return err
}

// InsertTrafficRecords appends a batch of area records in one transaction.
func (s *SQLiteStore) InsertTrafficRecords(ctx context.Context, records []model.TrafficRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, r := range records {
		if err := r.Validate(); err != nil {
			_ = tx.Rollback()
			return err
		}
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO traffic_data (id, area_id, ts, density, level)
            VALUES (?, ?, ?, ?, ?)`,
			r.ID, r.AreaID, r.Timestamp.Unix(), r.DensityScore, string(r.Level)); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// InsertLaneTrafficRecords appends a batch of lane records in one transaction.
func (s *SQLiteStore) InsertLaneTrafficRecords(ctx context.Context, records []model.LaneTrafficRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, r := range records {
		if err := r.Validate(); err != nil {
			_ = tx.Rollback()
			return err
		}
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO lane_traffic_data (id, lane_id, ts, vehicle_count, density, level, avg_speed)
            VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.LaneID, r.Timestamp.Unix(), r.VehicleCount, r.DensityScore, string(r.Level), r.AvgSpeed); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// SaveDailySummary upserts the analytics cache row for the day.
func (s *SQLiteStore) SaveDailySummary(ctx context.Context, areaID string, d time.Time, sum history.DailySummary) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO traffic_analytics (area_id, day, avg_density, busiest_hour, quietest_hour, total_records)
        VALUES (?, ?, ?, ?, ?, ?)
        ON CONFLICT(area_id, day) DO UPDATE SET
            avg_density = excluded.avg_density,
            busiest_hour = excluded.busiest_hour,
            quietest_hour = excluded.quietest_hour,
            total_records = excluded.total_records`,
		areaID, day(d).Unix(), sum.AvgDensity, sum.BusiestHour, sum.QuietestHour, sum.TotalRecords)
	return err
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArea(row rowScanner) (model.Area, error) {
	var a model.Area
	var category string
	err := row.Scan(&a.ID, &a.Name, &category, &a.Region, &a.Latitude, &a.Longitude, &a.IsCircle, &a.LaneCount)
	a.Category = model.AreaCategory(category)
	return a, err
}
