package exporter

import (
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	apperrors "ffcal/internal/errors"
	"ffcal/pkg/contracts/domain"
)

// Header is the fixed CSV header row.
var Header = []string{"DateTime", "Currency", "Impact", "Event", "Actual", "Forecast", "Previous", "Detail"}

// CSVExporter writes event records as CSV
type CSVExporter struct {
	logger *slog.Logger
}

// NewCSVExporter creates a new CSV exporter
func NewCSVExporter(logger *slog.Logger) *CSVExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVExporter{logger: logger}
}

// Export writes the events to filePath atomically. Either the whole
// file is written or nothing changes on disk.
func (e *CSVExporter) Export(filePath string, events []domain.Event) error {
	e.logger.Info("writing CSV export",
		slog.String("path", filePath),
		slog.Int("events", len(events)))

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return apperrors.NewExportError("failed to create output directory", err)
	}

	tmp, err := os.CreateTemp(dir, ".ffcal-*.csv")
	if err != nil {
		return apperrors.NewExportError("failed to create temp file", err)
	}
	tmpPath := tmp.Name()

	if err := e.Write(tmp, events); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return apperrors.NewExportError("failed to close temp file", err)
	}

	if err := os.Rename(tmpPath, filePath); err != nil {
		os.Remove(tmpPath)
		return apperrors.NewExportError("failed to move output into place", err)
	}

	return nil
}

// Write streams the header and event records to w.
func (e *CSVExporter) Write(w io.Writer, events []domain.Event) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(Header); err != nil {
		return apperrors.NewExportError("failed to write header", err)
	}
	for i, evt := range events {
		if err := writer.Write(record(evt)); err != nil {
			return apperrors.NewExportError("failed to write record", err).
				WithContext("record", i)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return apperrors.NewExportError("failed to flush output", err)
	}
	return nil
}

// record renders one event as a CSV row.
func record(evt domain.Event) []string {
	return []string{
		formatDateTime(evt.DateTime),
		evt.Currency,
		string(evt.Impact),
		evt.Name,
		evt.Actual,
		evt.Forecast,
		evt.Previous,
		evt.Detail,
	}
}
