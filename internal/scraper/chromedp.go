package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/chromedp"
	"golang.org/x/time/rate"

	"ffcal/internal/config"
	apperrors "ffcal/internal/errors"
	"ffcal/internal/parser"
)

const (
	selectorCalendarTable = "table.calendar__table"
	selectorSpecsTable    = "table.calendarspecs"
)

// BrowserProvider is the chromedp-backed PageSource. One browser runs
// per scrape session; every fetched page gets its own tab so pages can
// be processed independently.
type BrowserProvider struct {
	browserCtx context.Context
	limiter    *rate.Limiter
	timeout    time.Duration
	logger     *slog.Logger
}

// NewBrowserProvider starts a browser session configured per cfg. The
// returned cleanup function shuts the browser down and must be called
// when the scrape is finished.
func NewBrowserProvider(ctx context.Context, cfg config.ScrapeConfig, logger *slog.Logger) (*BrowserProvider, func(), error) {
	if logger == nil {
		logger = slog.Default()
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.WindowSize(1400, 1000),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	// launch the browser eagerly so startup problems surface here
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, nil, fmt.Errorf("failed to start browser: %w", err)
	}

	cleanup := func() {
		cancelBrowser()
		cancelAlloc()
	}

	timeout := cfg.PageTimeout
	if timeout <= 0 {
		timeout = config.DefaultPageTimeout
	}

	return &BrowserProvider{
		browserCtx: browserCtx,
		limiter:    newPageLimiter(cfg),
		timeout:    timeout,
		logger:     logger,
	}, cleanup, nil
}

// newPageLimiter builds the navigation pacer, falling back to the
// default pacing when the config carries no usable values.
func newPageLimiter(cfg config.ScrapeConfig) *rate.Limiter {
	rps := cfg.RateLimitRPS
	if rps <= 0 {
		rps = config.DefaultRateLimitRPS
	}
	burst := cfg.RateLimitBurst
	if burst < 1 {
		burst = config.DefaultRateLimitBurst
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// FetchPage navigates a fresh tab to the page, waits for the calendar
// table to render, and snapshots the document.
func (p *BrowserProvider) FetchPage(ctx context.Context, url string) (Page, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, apperrors.NewFetchError(url, err)
	}

	tabCtx, cancelTab := chromedp.NewContext(p.browserCtx)

	p.logger.Info("fetching calendar page", slog.String("url", url))

	var html string
	err := p.runWithTimeout(ctx, tabCtx,
		chromedp.Navigate(url),
		chromedp.WaitVisible(selectorCalendarTable, chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		cancelTab()
		return nil, apperrors.NewFetchError(url, err)
	}

	root, err := parser.ParseDocument(html)
	if err != nil {
		cancelTab()
		return nil, apperrors.NewFetchError(url, err)
	}

	return &browserPage{
		provider: p,
		tabCtx:   tabCtx,
		cancel:   cancelTab,
		root:     root,
		url:      url,
	}, nil
}

// runWithTimeout runs chromedp actions on the tab, bounded by the page
// timeout and the caller's context.
func (p *BrowserProvider) runWithTimeout(ctx, tabCtx context.Context, actions ...chromedp.Action) error {
	timed, cancel := context.WithTimeout(tabCtx, p.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- chromedp.Run(timed, actions...)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		cancel()
		<-done
		return ctx.Err()
	}
}

// browserPage is one open tab holding a rendered calendar page.
type browserPage struct {
	provider *BrowserProvider
	tabCtx   context.Context
	cancel   context.CancelFunc
	root     parser.Node
	url      string
}

func (pg *browserPage) Root() parser.Node {
	return pg.root
}

// ExpandDetail clicks the row's detail link, waits for the spec panel
// to appear, snapshots it, then closes the panel again so only one is
// ever open.
func (pg *browserPage) ExpandDetail(ctx context.Context, ref string) (parser.Node, error) {
	if err := pg.provider.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	linkSel := fmt.Sprintf(`tr.calendar__row[data-event-id=%q] td.calendar__detail a`, ref)

	var html string
	err := pg.provider.runWithTimeout(ctx, pg.tabCtx,
		chromedp.Click(linkSel, chromedp.ByQuery),
		chromedp.WaitVisible(selectorSpecsTable, chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("expanding detail %s on %s: %w", ref, pg.url, err)
	}

	// toggle the panel closed; a stuck panel only costs screen space,
	// so a failed close is not an error
	if closeErr := pg.provider.runWithTimeout(ctx, pg.tabCtx,
		chromedp.Click(linkSel, chromedp.ByQuery),
	); closeErr != nil {
		pg.provider.logger.Debug("failed to close detail panel",
			slog.String("ref", ref), slog.String("error", closeErr.Error()))
	}

	doc, err := parser.ParseDocument(html)
	if err != nil {
		return nil, err
	}

	tables := doc.Find(selectorSpecsTable)
	if len(tables) == 0 {
		return nil, fmt.Errorf("detail panel for %s rendered without a spec table", ref)
	}
	// the page may nest a second specs table; the last holds the
	// event specification
	return tables[len(tables)-1], nil
}

func (pg *browserPage) Close() error {
	pg.cancel()
	return nil
}
