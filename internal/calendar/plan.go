package calendar

import (
	"fmt"
	"time"

	"ffcal/internal/config"
	apperrors "ffcal/internal/errors"
)

// Page is one calendar page to visit, together with the sub-interval of
// the requested range it covers. Rows outside [Start, End] are dropped
// during extraction: month pages pad their edges with neighbouring days.
type Page struct {
	URL   string
	Start time.Time
	End   time.Time
}

// PlanPages splits the inclusive [start, end] range into per-month
// pages. Months fully inside the range use the month address, months
// covered partially use the range address over the covered interval.
// A single day is a valid degenerate range.
func PlanPages(b *URLBuilder, start, end time.Time) ([]Page, error) {
	start = truncateDay(start)
	end = truncateDay(end)

	if err := checkDate(start); err != nil {
		return nil, err
	}
	if err := checkDate(end); err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, apperrors.NewInvalidDateError(
			fmt.Sprintf("start %s after end %s",
				start.Format(config.InputDateFormat), end.Format(config.InputDateFormat)), nil)
	}

	var pages []Page
	for cur := monthStart(start); !cur.After(end); cur = cur.AddDate(0, 1, 0) {
		monthEnd := cur.AddDate(0, 1, -1)

		pageStart := maxDate(start, cur)
		pageEnd := minDate(end, monthEnd)

		var (
			url string
			err error
		)
		switch {
		case pageStart.Equal(pageEnd):
			url, err = b.ForDay(pageStart)
		case pageStart.Equal(cur) && pageEnd.Equal(monthEnd):
			url, err = b.ForMonth(cur.Year(), cur.Month())
		default:
			url, err = b.ForRange(pageStart, pageEnd)
		}
		if err != nil {
			return nil, err
		}

		pages = append(pages, Page{URL: url, Start: pageStart, End: pageEnd})
	}

	return pages, nil
}

func truncateDay(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

func monthStart(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
}

func maxDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minDate(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
