package exporter

import (
	"time"
)

// formatDateTime renders a timestamp in the sortable RFC 3339 form
// including the timezone offset, e.g. "2025-01-05T12:30:00+03:30".
func formatDateTime(t time.Time) string {
	return t.Format(time.RFC3339)
}
