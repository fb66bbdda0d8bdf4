package scraper

import (
	"context"

	"ffcal/internal/parser"
)

// PageSource provides rendered calendar pages. Implementations own the
// fetching protocol (browser session, fixtures); the pipeline treats
// them as an opaque capability.
type PageSource interface {
	// FetchPage loads the page at the given address and returns a
	// handle to its rendered content. Failures are reported as
	// FETCH-type application errors.
	FetchPage(ctx context.Context, url string) (Page, error)
}

// Page is one fetched calendar page. It exposes the rendered tree and
// the two-phase detail expansion the detail resolver requests through
// the parser.Expander contract.
type Page interface {
	parser.Expander

	// Root returns the rendered page tree.
	Root() parser.Node
	// Close releases any resources held for the page (a browser tab,
	// typically). Safe to call once processing is done.
	Close() error
}
