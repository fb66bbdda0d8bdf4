// Package exporter serializes scraped calendar events to CSV.
//
// The output carries a fixed header row and one record per event;
// encoding/csv provides the quoting and escaping, which matters because
// the Detail column routinely contains commas and quotes. Files are
// written atomically: the data goes to a temp file that is renamed into
// place only after a successful flush, so a failed export never leaves
// a partial file behind.
package exporter
