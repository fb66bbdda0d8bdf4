package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ffcal/pkg/contracts/domain"
)

func tehranTime(t *testing.T, y int, m time.Month, d, hh, mm int) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Tehran")
	require.NoError(t, err)
	return time.Date(y, m, d, hh, mm, 0, 0, loc)
}

func sampleEvent(t *testing.T) domain.Event {
	return domain.Event{
		DateTime: tehranTime(t, 2025, time.January, 5, 12, 30),
		Currency: "USD",
		Impact:   domain.ImpactHigh,
		Name:     "Nonfarm Payroll",
		Actual:   "150K",
		Forecast: "170K",
		Previous: "140K",
		Detail:   "Speaker: Fed Chair",
	}
}

func TestWrite_HeaderAndRecord(t *testing.T) {
	var buf bytes.Buffer
	e := NewCSVExporter(nil)

	require.NoError(t, e.Write(&buf, []domain.Event{sampleEvent(t)}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "DateTime,Currency,Impact,Event,Actual,Forecast,Previous,Detail", lines[0])
	assert.Equal(t, "2025-01-05T12:30:00+03:30,USD,High,Nonfarm Payroll,150K,170K,140K,Speaker: Fed Chair", lines[1])
}

func TestWrite_EscapingRoundTrips(t *testing.T) {
	evt := sampleEvent(t)
	evt.Detail = `Speaker: Fed Chair | Notes: "Detailed", specs`
	evt.Name = "CPI m/m, core"

	var buf bytes.Buffer
	e := NewCSVExporter(nil)
	require.NoError(t, e.Write(&buf, []domain.Event{evt}))

	records, err := csv.NewReader(bytes.NewReader(buf.Bytes())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, Header, records[0])
	assert.Equal(t, "CPI m/m, core", records[1][3])
	assert.Equal(t, `Speaker: Fed Chair | Notes: "Detailed", specs`, records[1][7])
}

func TestWrite_EmptyValuesStayEmpty(t *testing.T) {
	evt := domain.Event{
		DateTime: tehranTime(t, 2025, time.January, 6, 0, 0),
		Impact:   domain.ImpactHoliday,
		Name:     "Bank Holiday",
	}

	var buf bytes.Buffer
	e := NewCSVExporter(nil)
	require.NoError(t, e.Write(&buf, []domain.Event{evt}))

	records, err := csv.NewReader(bytes.NewReader(buf.Bytes())).ReadAll()
	require.NoError(t, err)
	row := records[1]
	assert.Empty(t, row[1], "currency")
	assert.Empty(t, row[4], "actual")
	assert.Empty(t, row[5], "forecast")
	assert.Empty(t, row[6], "previous")
	assert.Empty(t, row[7], "detail")
}

func TestExport_WritesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "events.csv")

	e := NewCSVExporter(nil)
	require.NoError(t, e.Export(path, []domain.Event{sampleEvent(t)}))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Nonfarm Payroll")

	// no temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "events.csv", entries[0].Name())
}

func TestExport_Overwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0644))

	e := NewCSVExporter(nil)
	require.NoError(t, e.Export(path, nil))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "DateTime,Currency,Impact,Event,Actual,Forecast,Previous,Detail\n", string(content))
}

func TestExport_FailureLeavesNoPartialFile(t *testing.T) {
	dir := t.TempDir()
	// a directory standing where the output file should go makes the
	// final rename fail after the temp file was written
	path := filepath.Join(dir, "events.csv")
	require.NoError(t, os.MkdirAll(path, 0755))

	e := NewCSVExporter(nil)
	err := e.Export(path, []domain.Event{sampleEvent(t)})
	require.Error(t, err)

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	require.Len(t, entries, 1, "temp files must be cleaned up")
	assert.Equal(t, "events.csv", entries[0].Name())
	assert.True(t, entries[0].IsDir(), "the pre-existing entry is untouched")
}
