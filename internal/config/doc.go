// Package config provides application configuration for the calendar
// scraper.
//
// Configuration is layered: struct-tag defaults, then an optional YAML
// file, then FFCAL_* environment variables. The result is validated
// with go-playground/validator struct tags before use.
//
// The scrape section carries the session-wide settings the extraction
// pipeline depends on, most importantly the source display timezone:
// the calendar site renders all times in a session-configurable zone,
// and timestamp normalization is only correct when SourceTimezone
// matches it.
package config
