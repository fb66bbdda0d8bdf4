package main

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ffcal/internal/config"
	apperrors "ffcal/internal/errors"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		name      string
		from      string
		to        string
		wantStart time.Time
		wantEnd   time.Time
		wantErr   bool
	}{
		{
			name:      "valid range",
			from:      "2025-01-05",
			to:        "2025-01-10",
			wantStart: time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "missing to defaults to single day",
			from:      "2025-01-05",
			wantStart: time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC),
		},
		{name: "malformed from", from: "05/01/2025", wantErr: true},
		{name: "malformed to", from: "2025-01-05", to: "soon", wantErr: true},
		{name: "from after to", from: "2025-01-10", to: "2025-01-05", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := parseRange(tt.from, tt.to)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsType(err, apperrors.ErrTypeInvalidDate))
				return
			}
			require.NoError(t, err)
			assert.True(t, start.Equal(tt.wantStart))
			assert.True(t, end.Equal(tt.wantEnd))
		})
	}
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitOK, exitCode(nil))
	assert.Equal(t, exitPartial, exitCode(fmt.Errorf("%w (2 pages)", errPartialResult)))
	assert.Equal(t, exitFailure, exitCode(errors.New("browser crashed")))
	assert.Equal(t, exitFailure, exitCode(apperrors.NewInvalidDateError("bad", nil)))
}

func TestRootCmdFlags(t *testing.T) {
	cmd := newRootCmd()

	for _, name := range []string{"from", "to", "timezone", "out", "config", "headless", "log-level"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "flag --%s", name)
	}

	tz, err := cmd.Flags().GetString("timezone")
	require.NoError(t, err)
	assert.Equal(t, "UTC", tz)

	out, err := cmd.Flags().GetString("out")
	require.NoError(t, err)
	assert.Equal(t, "calendar_events.csv", out)

	assert.Equal(t, config.AppName, cmd.Use)
	assert.Equal(t, config.AppVersion, cmd.Version)
}

func TestRootCmd_RequiresFrom(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--timezone", "Asia/Tehran"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "from")
}
