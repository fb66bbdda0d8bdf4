// Package normalize resolves a raw row's partial date/time information
// into an absolute timestamp.
//
// The calendar page prints a date header once per day and leaves it off
// subsequent rows of the same day; times may likewise be blank, meaning
// "same time as the previous row". That inheritance is ordering
// dependent, so the per-page state lives in an immutable PageContext
// value threaded through row processing: every call takes a context and
// returns the updated one alongside the resolved timestamp.
package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	apperrors "ffcal/internal/errors"
	"ffcal/internal/parser"
)

// Policy defaults for non-clock time values
var (
	allDayClock   = Clock{Hour: 23, Min: 59, Sec: 59, Known: true}
	noDataClock   = Clock{Hour: 0, Min: 0, Sec: 1, Known: true}
	midnightClock = Clock{Known: true}
)

var clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*(am|pm)$`)

// Clock is a wall-clock time of day. Known is false for the zero Clock
// so "no time seen yet" is distinguishable from midnight.
type Clock struct {
	Hour, Min, Sec int
	Known          bool
}

// PageContext is the transient per-page state for date and time
// carry-forward. It is a value: Normalize returns an updated copy and
// never mutates its input, keeping the ordering-dependent logic
// auditable. A fresh context must be created per page; it never leaks
// across page boundaries.
type PageContext struct {
	// Anchor is the month/year the page was requested for; headers
	// without a year are resolved against it.
	Anchor time.Time
	// ActiveDate is the date established by the last day-breaker
	// header, at midnight in the source timezone. Zero until the first
	// header is seen.
	ActiveDate time.Time
	// LastClock is the last explicit time seen on the active date.
	LastClock Clock
}

// NewPageContext creates the context for a page covering the given
// anchor date (any day inside the requested month).
func NewPageContext(anchor time.Time) PageContext {
	return PageContext{Anchor: anchor}
}

// Result is the outcome of normalizing one row.
type Result struct {
	// Time is the absolute timestamp in the target timezone.
	Time time.Time
	// Context is the updated page context to thread into the next row.
	Context PageContext
	// TimeFallback is true when the row's time text was unrecognized
	// and the policy default was applied.
	TimeFallback bool
}

// Normalizer merges row date/time fragments with the page context and
// converts source-timezone wall times to the target timezone.
type Normalizer struct {
	source *time.Location
	target *time.Location
}

// NewNormalizer creates a Normalizer. source must be the timezone the
// page session is configured to display; target is the caller's
// requested output timezone.
func NewNormalizer(source, target *time.Location) *Normalizer {
	return &Normalizer{source: source, target: target}
}

// Normalize resolves one raw row against the page context.
//
// A non-empty date header replaces the active date and clears the time
// carry-forward; an empty header reuses the active date unchanged. A
// row before any header is a parse warning: there is no date to
// inherit.
func (n *Normalizer) Normalize(row parser.RawRow, pc PageContext) (Result, error) {
	if header := strings.TrimSpace(row.DateHeader); header != "" {
		day, err := parseDayHeader(header, pc.Anchor)
		if err != nil {
			return Result{}, err
		}
		pc.ActiveDate = day
		pc.LastClock = Clock{}
	}

	if pc.ActiveDate.IsZero() {
		return Result{}, apperrors.NewParseWarning("event row before any date header", nil).
			WithContext("event", row.Event)
	}

	clock, fallback := n.parseTime(row.Time, pc.LastClock)
	pc.LastClock = clock

	d := pc.ActiveDate
	local := time.Date(d.Year(), d.Month(), d.Day(),
		clock.Hour, clock.Min, clock.Sec, 0, n.source)

	return Result{
		Time:         local.In(n.target),
		Context:      pc,
		TimeFallback: fallback,
	}, nil
}

// parseDayHeader parses a day-breaker header such as "Sun Jan 5" or
// "SunJan 5 2025". Only the trailing month, day and optional year
// tokens are significant. Without a year the anchor's year applies,
// rolled over when the header month sits on the other side of a year
// boundary from the anchor month.
func parseDayHeader(header string, anchor time.Time) (time.Time, error) {
	fields := strings.Fields(header)
	if len(fields) < 2 {
		return time.Time{}, apperrors.NewParseWarning(
			fmt.Sprintf("unrecognized date header %q", header), nil)
	}

	year := 0
	if y, err := strconv.Atoi(fields[len(fields)-1]); err == nil && y >= 1000 {
		year = y
		fields = fields[:len(fields)-1]
		if len(fields) < 2 {
			return time.Time{}, apperrors.NewParseWarning(
				fmt.Sprintf("unrecognized date header %q", header), nil)
		}
	}

	monthText := fields[len(fields)-2]
	dayText := fields[len(fields)-1]

	// weekday and month may run together in rendered text ("SunJan")
	if len(monthText) > 3 {
		monthText = monthText[len(monthText)-3:]
	}
	month, err := parseMonth(monthText)
	if err != nil {
		return time.Time{}, apperrors.NewParseWarning(
			fmt.Sprintf("unrecognized month in date header %q", header), err)
	}

	day, err := strconv.Atoi(dayText)
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, apperrors.NewParseWarning(
			fmt.Sprintf("unrecognized day in date header %q", header), err)
	}

	if year == 0 {
		year = inferYear(month, anchor)
	}

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), nil
}

// inferYear resolves a yearless header month against the requested
// anchor month. A January header on a December page belongs to the
// next year; a December header on a January page to the previous one.
func inferYear(month time.Month, anchor time.Time) int {
	switch {
	case month == time.January && anchor.Month() == time.December:
		return anchor.Year() + 1
	case month == time.December && anchor.Month() == time.January:
		return anchor.Year() - 1
	default:
		return anchor.Year()
	}
}

func parseMonth(s string) (time.Month, error) {
	s = strings.ToLower(s)
	if len(s) > 0 {
		s = strings.ToUpper(s[:1]) + s[1:]
	}
	t, err := time.Parse("Jan", s)
	if err != nil {
		return 0, err
	}
	return t.Month(), nil
}

// parseTime maps the row's time text onto a wall clock. Blank text
// inherits the previous row's clock on the same date, defaulting to
// midnight with a fallback flag when there is nothing to inherit.
// Unrecognized text falls back to midnight and is flagged; it is never
// silently treated as parsed.
func (n *Normalizer) parseTime(text string, last Clock) (clock Clock, fallback bool) {
	trimmed := strings.ToLower(strings.TrimSpace(text))

	switch {
	case trimmed == "":
		if last.Known {
			return last, false
		}
		return midnightClock, true
	case strings.Contains(trimmed, "day"): // "All Day"
		return allDayClock, false
	case strings.Contains(trimmed, "data"): // "No Data"
		return noDataClock, false
	case strings.Contains(trimmed, "tentative"):
		return midnightClock, false
	}

	if m := clockPattern.FindStringSubmatch(trimmed); m != nil {
		hour, _ := strconv.Atoi(m[1])
		min, _ := strconv.Atoi(m[2])
		if hour >= 1 && hour <= 12 && min <= 59 {
			if m[3] == "pm" && hour < 12 {
				hour += 12
			}
			if m[3] == "am" && hour == 12 {
				hour = 0
			}
			return Clock{Hour: hour, Min: min, Known: true}, false
		}
	}

	return midnightClock, true
}
