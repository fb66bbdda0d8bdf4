package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ffcal/pkg/contracts/domain"
)

const samplePage = `
<html><body>
<table class="calendar__table">
  <tr class="calendar__row calendar__row--day-breaker">
    <td class="calendar__cell">Sun Jan 5</td>
  </tr>
  <tr class="calendar__row" data-event-id="112233">
    <td class="calendar__cell calendar__time">12:30pm</td>
    <td class="calendar__cell calendar__currency">USD</td>
    <td class="calendar__cell calendar__impact"><span title="High Impact Expected"></span></td>
    <td class="calendar__cell calendar__event">Nonfarm Payroll</td>
    <td class="calendar__cell calendar__actual">150K</td>
    <td class="calendar__cell calendar__forecast">170K</td>
    <td class="calendar__cell calendar__previous">140K</td>
    <td class="calendar__cell calendar__detail"><a title="Open Detail"></a></td>
  </tr>
  <tr class="calendar__row">
    <td class="calendar__cell calendar__time"></td>
    <td class="calendar__cell calendar__currency">USD</td>
    <td class="calendar__cell calendar__impact"><span title="Low Impact Expected"></span></td>
    <td class="calendar__cell calendar__event">Fed Speech</td>
    <td class="calendar__cell calendar__actual"></td>
    <td class="calendar__cell calendar__forecast"></td>
    <td class="calendar__cell calendar__previous"></td>
  </tr>
  <tr class="calendar__row">
    <td class="calendar__cell calendar__time">All Day</td>
    <td class="calendar__cell calendar__currency"></td>
    <td class="calendar__cell calendar__impact">Holiday</td>
    <td class="calendar__cell calendar__event">Bank Holiday</td>
    <td class="calendar__cell calendar__actual"></td>
    <td class="calendar__cell calendar__forecast"></td>
    <td class="calendar__cell calendar__previous"></td>
  </tr>
  <tr class="calendar__row">
    <td class="calendar__cell calendar__time">2:00pm</td>
    <td class="calendar__cell calendar__currency">EUR</td>
    <td class="calendar__cell calendar__impact"><span title="Medium Impact Expected"></span></td>
    <td class="calendar__cell calendar__event"></td>
    <td class="calendar__cell calendar__actual"></td>
    <td class="calendar__cell calendar__forecast"></td>
    <td class="calendar__cell calendar__previous"></td>
  </tr>
  <tr class="calendar__row">
    <td class="calendar__cell">broken row</td>
  </tr>
</table>
</body></html>`

func TestParseRows(t *testing.T) {
	root, err := ParseDocument(samplePage)
	require.NoError(t, err)

	var diag domain.Diagnostics
	rows := NewRowParser(nil).ParseRows(root, &diag)

	require.Len(t, rows, 3)

	// first row carries the day-breaker header and a detail reference
	assert.Equal(t, "Sun Jan 5", rows[0].DateHeader)
	assert.Equal(t, "12:30pm", rows[0].Time)
	assert.Equal(t, "USD", rows[0].Currency)
	assert.Equal(t, "High Impact Expected", rows[0].Impact)
	assert.Equal(t, "Nonfarm Payroll", rows[0].Event)
	assert.Equal(t, "150K", rows[0].Actual)
	assert.Equal(t, "170K", rows[0].Forecast)
	assert.Equal(t, "140K", rows[0].Previous)
	assert.Equal(t, "112233", rows[0].DetailRef)
	assert.True(t, rows[0].HasDetail())

	// second row inherits nothing explicitly: blank header and time
	assert.Empty(t, rows[1].DateHeader)
	assert.Empty(t, rows[1].Time)
	assert.Equal(t, "Fed Speech", rows[1].Event)
	assert.False(t, rows[1].HasDetail())

	// holiday banner row: no currency, impact from cell text
	assert.Empty(t, rows[2].Currency)
	assert.Equal(t, "Holiday", rows[2].Impact)
	assert.Equal(t, "All Day", rows[2].Time)

	// one nameless row skipped, one malformed row warned
	assert.Equal(t, 1, diag.RowsSkipped)
	assert.Equal(t, 1, diag.ParseWarnings)
}

func TestParseRows_OrderPreserved(t *testing.T) {
	root, err := ParseDocument(samplePage)
	require.NoError(t, err)

	var diag domain.Diagnostics
	rows := NewRowParser(nil).ParseRows(root, &diag)

	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r.Event
	}
	assert.Equal(t, []string{"Nonfarm Payroll", "Fed Speech", "Bank Holiday"}, names)
}

func TestParseRows_EmptyPage(t *testing.T) {
	root, err := ParseDocument("<html><body><p>no calendar here</p></body></html>")
	require.NoError(t, err)

	var diag domain.Diagnostics
	rows := NewRowParser(nil).ParseRows(root, &diag)
	assert.Empty(t, rows)
	assert.Equal(t, domain.Diagnostics{}, diag)
}
