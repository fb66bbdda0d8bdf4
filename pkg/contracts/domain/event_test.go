package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseImpact(t *testing.T) {
	tests := []struct {
		label    string
		expected Impact
	}{
		{"High Impact Expected", ImpactHigh},
		{"Medium Impact Expected", ImpactMedium},
		{"Low Impact Expected", ImpactLow},
		{"Holiday", ImpactHoliday},
		{"Non-Economic", ImpactHoliday},
		{"high", ImpactHigh},
		{"", ImpactUnknown},
		{"something else", ImpactUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseImpact(tt.label))
		})
	}
}

func TestEvent_IsHoliday(t *testing.T) {
	assert.True(t, Event{Impact: ImpactHoliday}.IsHoliday())
	assert.False(t, Event{Impact: ImpactHigh}.IsHoliday())
}
