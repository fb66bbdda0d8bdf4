package config

import "time"

// Application constants
const (
	AppName    = "ffcal"
	AppVersion = "1.0.0"

	// MinCalendarYear is the earliest year the calendar site serves.
	// Requests before it are rejected as invalid input.
	MinCalendarYear = 2007

	// Date formats accepted on the command line
	InputDateFormat = "2006-01-02"

	// DefaultPageTimeout bounds one page navigation
	DefaultPageTimeout = 45 * time.Second

	// Pacing between page navigations; calendar sites throttle
	// aggressive clients behind bot protection.
	DefaultRateLimitRPS   = 0.5
	DefaultRateLimitBurst = 1
)
