package calendar

import (
	"fmt"
	"strings"
	"time"

	"ffcal/internal/config"
	apperrors "ffcal/internal/errors"
)

// URLBuilder builds calendar page addresses. It is stateless: the same
// date always yields the same address.
type URLBuilder struct {
	baseURL string
}

// NewURLBuilder creates a URLBuilder rooted at the calendar base URL.
func NewURLBuilder(baseURL string) *URLBuilder {
	return &URLBuilder{baseURL: strings.TrimRight(baseURL, "/?")}
}

// ForDay returns the address of a single day's page, e.g.
// ".../calendar?day=jan5.2025".
func (b *URLBuilder) ForDay(d time.Time) (string, error) {
	if err := checkDate(d); err != nil {
		return "", err
	}
	return b.baseURL + "?day=" + dayToken(d), nil
}

// ForMonth returns the address of a full month's page, e.g.
// ".../calendar?month=jan.2025".
func (b *URLBuilder) ForMonth(year int, month time.Month) (string, error) {
	d := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	if err := checkDate(d); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s?month=%s.%d", b.baseURL, monthToken(month), year), nil
}

// ForRange returns the address of a day-interval page, e.g.
// ".../calendar?range=dec20.2024-dec30.2024". The range is inclusive.
func (b *URLBuilder) ForRange(start, end time.Time) (string, error) {
	if err := checkDate(start); err != nil {
		return "", err
	}
	if err := checkDate(end); err != nil {
		return "", err
	}
	if end.Before(start) {
		return "", apperrors.NewInvalidDateError(
			fmt.Sprintf("range end %s before start %s",
				end.Format(config.InputDateFormat), start.Format(config.InputDateFormat)), nil)
	}
	return fmt.Sprintf("%s?range=%s-%s", b.baseURL, dayToken(start), dayToken(end)), nil
}

// dayToken renders a date in the site's token form: lower-case month
// abbreviation, unpadded day, full year ("jan5.2025").
func dayToken(d time.Time) string {
	return fmt.Sprintf("%s%d.%d", monthToken(d.Month()), d.Day(), d.Year())
}

func monthToken(m time.Month) string {
	return strings.ToLower(m.String()[:3])
}

func checkDate(d time.Time) error {
	if d.IsZero() {
		return apperrors.NewInvalidDateError("zero date", nil)
	}
	if d.Year() < config.MinCalendarYear {
		return apperrors.NewInvalidDateError(
			fmt.Sprintf("year %d predates the calendar archive (earliest %d)",
				d.Year(), config.MinCalendarYear), nil)
	}
	return nil
}
