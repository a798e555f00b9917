// Package ingest imports uploaded spreadsheet exports of traffic counts
// into the store. Rows are validated individually: a bad row is skipped
// and reported, never fatal for the batch.
package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Ishaq7892/trafficsense/core/classify"
	"github.com/Ishaq7892/trafficsense/core/history"
	"github.com/Ishaq7892/trafficsense/core/logger"
	"github.com/Ishaq7892/trafficsense/core/model"
	"github.com/Ishaq7892/trafficsense/core/resolve"
	"github.com/Ishaq7892/trafficsense/infra/store"
)

// maxAreaNameLen truncates uploaded location names.
const maxAreaNameLen = 100

// RowError reports why one CSV row was skipped.
type RowError struct {
	Line   int
	Reason string
}

// Result summarises an import run.
type Result struct {
	Inserted int
	Skipped  []RowError
}

// Importer turns CSV rows into stored traffic records. Location names
// that have no direct catalog match are mapped through the resolver.
type Importer struct {
	catalog  history.Catalog
	writer   store.Writer
	resolver *resolve.Resolver
	log      logger.Logger
}

// New creates an importer over the given store.
func New(catalog history.Catalog, writer store.Writer, resolver *resolve.Resolver, log logger.Logger) *Importer {
	return &Importer{catalog: catalog, writer: writer, resolver: resolver, log: log}
}

// ImportAreaRecords reads area rows with header columns
// area (or circle), timestamp, density.
func (i *Importer) ImportAreaRecords(ctx context.Context, r io.Reader) (Result, error) {
	rows, header, err := readAll(r)
	if err != nil {
		return Result{}, err
	}

	var result Result
	var records []model.TrafficRecord
	for n, row := range rows {
		line := n + 2 // header is line 1
		name := field(row, header, "circle", "area")
		tsRaw := field(row, header, "timestamp")
		densityRaw := field(row, header, "density")
		if name == "" || tsRaw == "" || densityRaw == "" {
			result.Skipped = append(result.Skipped, RowError{Line: line, Reason: "missing required fields"})
			continue
		}

		area, err := i.resolveArea(ctx, name)
		if err != nil {
			result.Skipped = append(result.Skipped, RowError{Line: line, Reason: err.Error()})
			continue
		}
		ts, err := parseTimestamp(tsRaw)
		if err != nil {
			result.Skipped = append(result.Skipped, RowError{Line: line, Reason: err.Error()})
			continue
		}
		density, err := parseDensity(densityRaw)
		if err != nil {
			result.Skipped = append(result.Skipped, RowError{Line: line, Reason: err.Error()})
			continue
		}

		records = append(records, model.TrafficRecord{
			AreaID:       area.ID,
			Timestamp:    ts,
			DensityScore: density,
			Level:        classify.Classify(density, ts, area.Category),
		})
	}

	if len(records) == 0 {
		return result, fmt.Errorf("no valid traffic records found")
	}
	if err := i.writer.InsertTrafficRecords(ctx, records); err != nil {
		return result, err
	}
	i.updateAnalytics(ctx, records)
	result.Inserted = len(records)
	return result, nil
}

// updateAnalytics refreshes the per-day summary cache for every
// area/day touched by the batch. The cache is advisory; failures are
// logged and never fail the import.
func (i *Importer) updateAnalytics(ctx context.Context, records []model.TrafficRecord) {
	type key struct {
		areaID string
		day    time.Time
	}
	byDay := make(map[key][]model.TrafficRecord)
	for _, r := range records {
		d := time.Date(r.Timestamp.Year(), r.Timestamp.Month(), r.Timestamp.Day(), 0, 0, 0, 0, time.UTC)
		k := key{areaID: r.AreaID, day: d}
		byDay[k] = append(byDay[k], r)
	}
	for k, rs := range byDay {
		if err := i.writer.SaveDailySummary(ctx, k.areaID, k.day, history.Summarize(rs)); err != nil {
			i.log.Warnf("save daily summary for area %s: %v", k.areaID, err)
		}
	}
}

// ImportLaneRecords reads lane rows with header columns
// area (or circle), lane_position, timestamp, vehicle_count, density
// and optional avg_speed.
func (i *Importer) ImportLaneRecords(ctx context.Context, r io.Reader) (Result, error) {
	rows, header, err := readAll(r)
	if err != nil {
		return Result{}, err
	}

	var result Result
	var records []model.LaneTrafficRecord
	for n, row := range rows {
		line := n + 2
		name := field(row, header, "circle", "area")
		position := model.LanePosition(field(row, header, "lane_position"))
		tsRaw := field(row, header, "timestamp")
		countRaw := field(row, header, "vehicle_count")
		densityRaw := field(row, header, "density")
		if name == "" || tsRaw == "" || countRaw == "" || densityRaw == "" {
			result.Skipped = append(result.Skipped, RowError{Line: line, Reason: "missing required fields"})
			continue
		}
		if !position.Valid() {
			result.Skipped = append(result.Skipped, RowError{Line: line, Reason: fmt.Sprintf("invalid lane position %q", position)})
			continue
		}

		area, err := i.resolveArea(ctx, name)
		if err != nil {
			result.Skipped = append(result.Skipped, RowError{Line: line, Reason: err.Error()})
			continue
		}
		lane, err := i.findLane(ctx, area.ID, position)
		if err != nil {
			result.Skipped = append(result.Skipped, RowError{Line: line, Reason: err.Error()})
			continue
		}
		ts, err := parseTimestamp(tsRaw)
		if err != nil {
			result.Skipped = append(result.Skipped, RowError{Line: line, Reason: err.Error()})
			continue
		}
		density, err := parseDensity(densityRaw)
		if err != nil {
			result.Skipped = append(result.Skipped, RowError{Line: line, Reason: err.Error()})
			continue
		}
		count, err := strconv.Atoi(countRaw)
		if err != nil || count < 0 {
			result.Skipped = append(result.Skipped, RowError{Line: line, Reason: fmt.Sprintf("invalid vehicle count %q", countRaw)})
			continue
		}

		rec := model.LaneTrafficRecord{
			LaneID:       lane.ID,
			Timestamp:    ts,
			VehicleCount: count,
			DensityScore: density,
			Level:        classify.Classify(density, ts, area.Category),
		}
		if speedRaw := field(row, header, "avg_speed"); speedRaw != "" {
			speed, err := strconv.ParseFloat(speedRaw, 64)
			if err != nil || speed < 0 {
				result.Skipped = append(result.Skipped, RowError{Line: line, Reason: fmt.Sprintf("invalid average speed %q", speedRaw)})
				continue
			}
			rec.AvgSpeed = speed
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return result, fmt.Errorf("no valid lane traffic records found")
	}
	if err := i.writer.InsertLaneTrafficRecords(ctx, records); err != nil {
		return result, err
	}
	result.Inserted = len(records)
	return result, nil
}

// resolveArea finds the catalog area for an uploaded location name,
// trying a direct match first and the resolver's mapping second.
func (i *Importer) resolveArea(ctx context.Context, name string) (model.Area, error) {
	name = strings.TrimSpace(name)
	if len(name) > maxAreaNameLen {
		name = name[:maxAreaNameLen]
	}
	if len(name) < 2 {
		return model.Area{}, fmt.Errorf("invalid area name %q", name)
	}

	area, err := i.catalog.AreaByName(ctx, name)
	if err == nil {
		return area, nil
	}
	mapping := i.resolver.Resolve(name)
	area, err = i.catalog.AreaByName(ctx, mapping.Area)
	if err != nil {
		return model.Area{}, fmt.Errorf("area %q not found (mapped to %q)", name, mapping.Area)
	}
	i.log.Debugf("mapped uploaded area %q to %q (%s)", name, mapping.Area, mapping.Reason)
	return area, nil
}

func (i *Importer) findLane(ctx context.Context, areaID string, position model.LanePosition) (model.Lane, error) {
	lanes, err := i.catalog.Lanes(ctx, areaID)
	if err != nil {
		return model.Lane{}, err
	}
	for _, l := range lanes {
		if l.Position == position {
			return l, nil
		}
	}
	return model.Lane{}, fmt.Errorf("no %s lane in area %s", position, areaID)
}

func readAll(r io.Reader) (rows [][]string, header map[string]int, err error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	all, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(all) < 2 {
		return nil, nil, fmt.Errorf("file is empty")
	}
	header = make(map[string]int, len(all[0]))
	for idx, name := range all[0] {
		header[strings.ToLower(strings.TrimSpace(name))] = idx
	}
	return all[1:], header, nil
}

// field returns the first non-empty named column of the row.
func field(row []string, header map[string]int, names ...string) string {
	for _, name := range names {
		if idx, ok := header[name]; ok && idx < len(row) {
			if v := strings.TrimSpace(row[idx]); v != "" {
				return v
			}
		}
	}
	return ""
}

func parseTimestamp(raw string) (time.Time, error) {
	layouts := []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02 15:04", "02/01/2006 15:04"}
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", raw)
}

func parseDensity(raw string) (float64, error) {
	d, err := strconv.ParseFloat(raw, 64)
	if err != nil || d < 0 || d > 100 {
		return 0, fmt.Errorf("invalid density score %q", raw)
	}
	return d, nil
}
