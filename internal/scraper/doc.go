// Package scraper drives the extraction pipeline over a date range.
//
// The PageSource provider is the only collaborator that touches the
// network: it returns rendered calendar pages and performs on-demand
// detail-panel expansion. The production provider runs a chromedp
// browser session; tests substitute canned HTML.
//
// The orchestrator visits each planned page exactly once, processes its
// rows with an isolated per-page context, and accumulates events in
// request order. A failed page becomes a failure-manifest entry, never
// a failed range.
package scraper
