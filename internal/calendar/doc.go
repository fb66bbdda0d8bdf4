// Package calendar derives the set of calendar page addresses covering
// a requested date range.
//
// The site addresses pages with three query parameters: a single day
// ("?day=jan5.2025"), a whole month ("?month=jan.2025") or an arbitrary
// day interval ("?range=dec20.2024-dec30.2024"). A requested range is
// split per month: fully covered months use the month form, partially
// covered months the range form, so every page is visited exactly once.
package calendar
