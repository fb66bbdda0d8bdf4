package parser

import (
	"log/slog"
	"strings"

	"ffcal/pkg/contracts/domain"
)

// Calendar table selectors, matching the site's markup
const (
	selectorRows       = "table.calendar__table tr.calendar__row"
	selectorDayBreaker = "calendar__row--day-breaker"
	selectorDayCell    = "td.calendar__cell"
	selectorTime       = "td.calendar__time"
	selectorCurrency   = "td.calendar__currency"
	selectorImpact     = "td.calendar__impact"
	selectorImpactIcon = "td.calendar__impact span"
	selectorEvent      = "td.calendar__event"
	selectorActual     = "td.calendar__actual"
	selectorForecast   = "td.calendar__forecast"
	selectorPrevious   = "td.calendar__previous"
	selectorDetailLink = "td.calendar__detail a"

	attrDetailRef = "data-event-id"
)

// RawRow is one event row as it appears on the page, before any
// date/time resolution. DateHeader is non-empty only on the first row
// of a new calendar day; an empty header means "same day as the
// previous row". DetailRef is an opaque reference to the row's
// unexpanded detail panel, or "" when the row has none.
type RawRow struct {
	DateHeader string
	Time       string
	Currency   string
	Impact     string
	Event      string
	Actual     string
	Forecast   string
	Previous   string
	DetailRef  string
}

// HasDetail reports whether the row declares an expandable panel.
func (r RawRow) HasDetail() bool {
	return r.DetailRef != ""
}

// RowParser extracts raw rows from a rendered calendar page.
type RowParser struct {
	logger *slog.Logger
}

// NewRowParser creates a RowParser logging through the given logger.
func NewRowParser(logger *slog.Logger) *RowParser {
	if logger == nil {
		logger = slog.Default()
	}
	return &RowParser{logger: logger}
}

// ParseRows walks the calendar table in document order and returns the
// raw event rows. Day-breaker rows fold into the DateHeader of the next
// event row. Rows without an event name are skipped; rows missing
// expected cells are skipped and counted in diag, never failing the
// page.
func (p *RowParser) ParseRows(root Node, diag *domain.Diagnostics) []RawRow {
	var (
		rows          []RawRow
		pendingHeader string
	)

	for _, row := range root.Find(selectorRows) {
		class := row.Attr("class")

		if strings.Contains(class, selectorDayBreaker) {
			if cell, ok := row.First(selectorDayCell); ok {
				pendingHeader = cell.Text()
			} else {
				pendingHeader = row.Text()
			}
			continue
		}

		raw, ok := p.parseEventRow(row)
		if !ok {
			diag.ParseWarnings++
			continue
		}
		if raw.Event == "" {
			diag.RowsSkipped++
			continue
		}

		raw.DateHeader = pendingHeader
		pendingHeader = ""
		rows = append(rows, raw)
	}

	p.logger.Debug("parsed calendar rows",
		slog.Int("rows", len(rows)),
		slog.Int("skipped", diag.RowsSkipped),
		slog.Int("warnings", diag.ParseWarnings))

	return rows
}

// parseEventRow extracts the cell values of one event row. The second
// return value is false when the row lacks the expected column set.
func (p *RowParser) parseEventRow(row Node) (RawRow, bool) {
	timeCell, timeOK := row.First(selectorTime)
	eventCell, eventOK := row.First(selectorEvent)
	if !timeOK || !eventOK {
		p.logger.Warn("malformed calendar row, missing expected cells",
			slog.Bool("has_time", timeOK),
			slog.Bool("has_event", eventOK))
		return RawRow{}, false
	}

	raw := RawRow{
		Time:     timeCell.Text(),
		Event:    eventCell.Text(),
		Currency: cellText(row, selectorCurrency),
		Actual:   cellText(row, selectorActual),
		Forecast: cellText(row, selectorForecast),
		Previous: cellText(row, selectorPrevious),
		Impact:   impactText(row),
	}

	if _, ok := row.First(selectorDetailLink); ok {
		raw.DetailRef = row.Attr(attrDetailRef)
	}

	return raw, true
}

// impactText prefers the icon's title attribute ("High Impact
// Expected") over the cell text, which is usually empty.
func impactText(row Node) string {
	if icon, ok := row.First(selectorImpactIcon); ok {
		if title := icon.Attr("title"); title != "" {
			return title
		}
	}
	return cellText(row, selectorImpact)
}

func cellText(row Node, selector string) string {
	if cell, ok := row.First(selector); ok {
		return cell.Text()
	}
	return ""
}
