package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "ffcal/internal/errors"
)

const testBase = "https://www.forexfactory.com/calendar"

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestURLBuilder_ForDay(t *testing.T) {
	b := NewURLBuilder(testBase)

	url, err := b.ForDay(date(2025, time.January, 5))
	require.NoError(t, err)
	assert.Equal(t, testBase+"?day=jan5.2025", url)

	// no zero padding, lower-case month
	url, err = b.ForDay(date(2024, time.December, 20))
	require.NoError(t, err)
	assert.Equal(t, testBase+"?day=dec20.2024", url)
}

func TestURLBuilder_ForMonth(t *testing.T) {
	b := NewURLBuilder(testBase)

	url, err := b.ForMonth(2025, time.January)
	require.NoError(t, err)
	assert.Equal(t, testBase+"?month=jan.2025", url)
}

func TestURLBuilder_ForRange(t *testing.T) {
	b := NewURLBuilder(testBase)

	url, err := b.ForRange(date(2024, time.December, 20), date(2024, time.December, 30))
	require.NoError(t, err)
	assert.Equal(t, testBase+"?range=dec20.2024-dec30.2024", url)

	_, err = b.ForRange(date(2024, time.December, 30), date(2024, time.December, 20))
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeInvalidDate))
}

func TestURLBuilder_Stable(t *testing.T) {
	b := NewURLBuilder(testBase)
	d := date(2025, time.March, 14)

	first, err := b.ForDay(d)
	require.NoError(t, err)
	second, err := b.ForDay(d)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestURLBuilder_RejectsArchaicDates(t *testing.T) {
	b := NewURLBuilder(testBase)

	_, err := b.ForDay(date(1999, time.June, 1))
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeInvalidDate))

	_, err = b.ForMonth(2006, time.December)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeInvalidDate))

	_, err = b.ForDay(time.Time{})
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeInvalidDate))
}
