package domain

import (
	"strings"
	"time"
)

// Event represents one economic-calendar row after normalization.
// Actual, Forecast and Previous keep the site's display text ("150K",
// "0.5%", ...); an absent value is the empty string, never "0".
type Event struct {
	DateTime time.Time `json:"datetime" validate:"required"`
	Currency string    `json:"currency,omitempty" validate:"omitempty,len=3"`
	Impact   Impact    `json:"impact"`
	Name     string    `json:"event" validate:"required"`
	Actual   string    `json:"actual,omitempty"`
	Forecast string    `json:"forecast,omitempty"`
	Previous string    `json:"previous,omitempty"`
	Detail   string    `json:"detail,omitempty"`
}

// Impact represents the expected market impact of an event
type Impact string

const (
	ImpactHigh    Impact = "High"
	ImpactMedium  Impact = "Medium"
	ImpactLow     Impact = "Low"
	ImpactHoliday Impact = "Holiday"
	ImpactUnknown Impact = "Unknown"
)

// ParseImpact maps the site's impact labels (usually the icon's title
// attribute, e.g. "High Impact Expected") onto the Impact enum.
func ParseImpact(label string) Impact {
	switch {
	case containsFold(label, "high"):
		return ImpactHigh
	case containsFold(label, "medium"), containsFold(label, "med"):
		return ImpactMedium
	case containsFold(label, "low"):
		return ImpactLow
	case containsFold(label, "holiday"), containsFold(label, "non-economic"):
		return ImpactHoliday
	default:
		return ImpactUnknown
	}
}

// IsHoliday reports whether the event is a holiday / non-economic banner.
func (e Event) IsHoliday() bool {
	return e.Impact == ImpactHoliday
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), substr)
}
