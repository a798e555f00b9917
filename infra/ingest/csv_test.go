package ingest

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ishaq7892/trafficsense/core/history"
	"github.com/Ishaq7892/trafficsense/core/model"
	"github.com/Ishaq7892/trafficsense/core/resolve"
)

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

type fakeCatalog struct {
	areas []model.Area
	lanes map[string][]model.Lane
}

func (f *fakeCatalog) Areas(context.Context) ([]model.Area, error) { return f.areas, nil }

func (f *fakeCatalog) Area(_ context.Context, id string) (model.Area, error) {
	for _, a := range f.areas {
		if a.ID == id {
			return a, nil
		}
	}
	return model.Area{}, history.ErrNotFound
}

func (f *fakeCatalog) AreaByName(_ context.Context, name string) (model.Area, error) {
	for _, a := range f.areas {
		if strings.Contains(strings.ToLower(a.Name), strings.ToLower(name)) {
			return a, nil
		}
	}
	return model.Area{}, history.ErrNotFound
}

func (f *fakeCatalog) Lanes(_ context.Context, areaID string) ([]model.Lane, error) {
	return f.lanes[areaID], nil
}

func (f *fakeCatalog) Lane(context.Context, string) (model.Lane, error) {
	return model.Lane{}, history.ErrNotFound
}

type captureWriter struct {
	records     []model.TrafficRecord
	laneRecords []model.LaneTrafficRecord
	summaries   map[string]history.DailySummary
}

func (w *captureWriter) InsertArea(context.Context, model.Area) error { return nil }
func (w *captureWriter) InsertLane(context.Context, model.Lane) error { return nil }

func (w *captureWriter) InsertTrafficRecords(_ context.Context, records []model.TrafficRecord) error {
	w.records = append(w.records, records...)
	return nil
}

func (w *captureWriter) InsertLaneTrafficRecords(_ context.Context, records []model.LaneTrafficRecord) error {
	w.laneRecords = append(w.laneRecords, records...)
	return nil
}

func (w *captureWriter) SaveDailySummary(_ context.Context, areaID string, d time.Time, s history.DailySummary) error {
	if w.summaries == nil {
		w.summaries = make(map[string]history.DailySummary)
	}
	w.summaries[areaID+"/"+d.Format("2006-01-02")] = s
	return nil
}

func newTestImporter(catalog *fakeCatalog, writer *captureWriter) *Importer {
	return New(catalog, writer, resolve.New(), nopLogger{})
}

func TestImportAreaRecords(t *testing.T) {
	catalog := &fakeCatalog{areas: []model.Area{
		{ID: "a1", Name: "Gokulam", Category: model.CategoryResidential},
	}}
	writer := &captureWriter{}
	imp := newTestImporter(catalog, writer)

	csv := `circle,timestamp,density
Gokulam,2025-03-10 08:00:00,60
Gokulam,2025-03-10 09:00,45.5
Gokulam,not-a-time,50
Gokulam,2025-03-10 10:00,140
,2025-03-10 11:00,50
`
	result, err := imp.ImportAreaRecords(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Inserted)
	require.Len(t, result.Skipped, 3)
	assert.Equal(t, 4, result.Skipped[0].Line)
	require.Len(t, writer.records, 2)

	first := writer.records[0]
	assert.Equal(t, "a1", first.AreaID)
	assert.InDelta(t, 60, first.DensityScore, 1e-9)
	// 60 * 1.3 (morning rush) * 0.9 (residential) = 70.2 -> high
	assert.Equal(t, model.LevelHigh, first.Level)

	// The per-day analytics cache is refreshed for the imported day.
	sum, ok := writer.summaries["a1/2025-03-10"]
	require.True(t, ok, "expected a daily summary for the imported day")
	assert.Equal(t, 2, sum.TotalRecords)
	assert.Equal(t, 8, sum.BusiestHour)
}

func TestImportAreaRecordsMapsUnknownNames(t *testing.T) {
	catalog := &fakeCatalog{areas: []model.Area{
		{ID: "a1", Name: "Hebbal", Category: model.CategoryIndustrial},
	}}
	writer := &captureWriter{}
	imp := newTestImporter(catalog, writer)

	csv := "area,timestamp,density\nWhitefield Industrial Area,2025-03-10 11:00,50\n"
	result, err := imp.ImportAreaRecords(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Inserted)
	assert.Equal(t, "a1", writer.records[0].AreaID)
}

func TestImportAreaRecordsEmptyBatch(t *testing.T) {
	catalog := &fakeCatalog{}
	imp := newTestImporter(catalog, &captureWriter{})

	csv := "circle,timestamp,density\nGokulam,bad,60\n"
	_, err := imp.ImportAreaRecords(context.Background(), strings.NewReader(csv))
	assert.Error(t, err)
}

func TestImportLaneRecords(t *testing.T) {
	catalog := &fakeCatalog{
		areas: []model.Area{{ID: "a1", Name: "LIC Circle", IsCircle: true}},
		lanes: map[string][]model.Lane{
			"a1": {{ID: "l1", AreaID: "a1", Position: model.Lane1, Name: "north approach"}},
		},
	}
	writer := &captureWriter{}
	imp := newTestImporter(catalog, writer)

	csv := `circle,lane_position,timestamp,vehicle_count,density,avg_speed
LIC Circle,lane_1,2025-03-10T11:00:00Z,42,55,18.5
LIC Circle,lane_9,2025-03-10T11:00:00Z,42,55,
LIC Circle,lane_1,2025-03-10T12:00:00Z,-3,55,
`
	result, err := imp.ImportLaneRecords(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Inserted)
	assert.Len(t, result.Skipped, 2)
	require.Len(t, writer.laneRecords, 1)

	rec := writer.laneRecords[0]
	assert.Equal(t, "l1", rec.LaneID)
	assert.Equal(t, 42, rec.VehicleCount)
	assert.InDelta(t, 18.5, rec.AvgSpeed, 1e-9)
}

func TestImportRejectsEmptyFile(t *testing.T) {
	imp := newTestImporter(&fakeCatalog{}, &captureWriter{})
	_, err := imp.ImportAreaRecords(context.Background(), strings.NewReader("circle,timestamp,density\n"))
	assert.Error(t, err)
}
