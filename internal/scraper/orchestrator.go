package scraper

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"ffcal/internal/calendar"
	"ffcal/internal/infrastructure"
	"ffcal/internal/normalize"
	"ffcal/internal/parser"
	"ffcal/pkg/contracts/domain"
)

// Orchestrator walks the requested date range page by page and
// accumulates normalized events.
type Orchestrator struct {
	provider    PageSource
	builder     *calendar.URLBuilder
	rowParser   *parser.RowParser
	normalizer  *normalize.Normalizer
	concurrency int
	logger      *slog.Logger
}

// NewOrchestrator wires the pipeline. source is the timezone the
// page session displays times in; target is the output timezone.
func NewOrchestrator(provider PageSource, baseURL string, source, target *time.Location, concurrency int, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &Orchestrator{
		provider:    provider,
		builder:     calendar.NewURLBuilder(baseURL),
		rowParser:   parser.NewRowParser(logger),
		normalizer:  normalize.NewNormalizer(source, target),
		concurrency: concurrency,
		logger:      logger,
	}
}

// pageOutcome is the result of processing one planned page.
type pageOutcome struct {
	events  []domain.Event
	diag    domain.Diagnostics
	failure *domain.PageFailure
}

// Run scrapes the inclusive [start, end] range. Invalid input dates
// fail immediately; a failed page is recorded in the result's failure
// manifest and the remaining pages still run. Cancellation is honoured
// between pages, never mid-page, so emitted records always reflect a
// fully processed page.
func (o *Orchestrator) Run(ctx context.Context, start, end time.Time) (domain.ScrapeResult, error) {
	pages, err := calendar.PlanPages(o.builder, start, end)
	if err != nil {
		return domain.ScrapeResult{}, err
	}

	o.logger.Info("scrape planned",
		slog.Int("pages", len(pages)),
		slog.String("start", start.Format("2006-01-02")),
		slog.String("end", end.Format("2006-01-02")))

	outcomes := make([]pageOutcome, len(pages))

	if o.concurrency == 1 {
		for i, page := range pages {
			if err := ctx.Err(); err != nil {
				return domain.ScrapeResult{}, err
			}
			outcomes[i] = o.processPage(ctx, page)
		}
	} else {
		// pages are independent: each gets its own isolated page
		// context, and outcomes are assembled by index so the final
		// ordering matches the requested range regardless of
		// completion order
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(o.concurrency)
		for i, page := range pages {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				outcomes[i] = o.processPage(gctx, page)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return domain.ScrapeResult{}, err
		}
	}

	var result domain.ScrapeResult
	for _, out := range outcomes {
		result.Events = append(result.Events, out.events...)
		result.Diagnostics.Merge(out.diag)
		if out.failure != nil {
			result.Failures = append(result.Failures, *out.failure)
		}
	}

	o.logger.Info("scrape finished",
		slog.Int("events", len(result.Events)),
		slog.Int("failed_pages", len(result.Failures)),
		slog.Int("rows_skipped", result.Diagnostics.RowsSkipped),
		slog.Int("parse_warnings", result.Diagnostics.ParseWarnings),
		slog.Int("time_fallbacks", result.Diagnostics.TimeFallbacks))

	return result, nil
}

// processPage fetches and extracts one page. All failures end up in
// the outcome; none propagate.
func (o *Orchestrator) processPage(ctx context.Context, page calendar.Page) pageOutcome {
	logger := infrastructure.LoggerFromContext(ctx).With(slog.String("url", page.URL))

	var out pageOutcome

	fetched, err := o.provider.FetchPage(ctx, page.URL)
	if err != nil {
		logger.Warn("page fetch failed", slog.String("error", err.Error()))
		out.failure = &domain.PageFailure{
			URL:   page.URL,
			Start: page.Start,
			End:   page.End,
			Cause: err.Error(),
		}
		return out
	}
	defer fetched.Close()

	rows := o.rowParser.ParseRows(fetched.Root(), &out.diag)
	resolver := parser.NewDetailResolver(fetched, logger)

	pc := normalize.NewPageContext(page.Start)
	for _, row := range rows {
		res, err := o.normalizer.Normalize(row, pc)
		if err != nil {
			logger.Warn("row skipped", slog.String("event", row.Event),
				slog.String("error", err.Error()))
			out.diag.ParseWarnings++
			continue
		}
		pc = res.Context
		if res.TimeFallback {
			logger.Warn("time fell back to policy default",
				slog.String("event", row.Event), slog.String("time", row.Time))
			out.diag.TimeFallbacks++
		}

		// month pages pad their edges with neighbouring days; keep
		// only rows inside the page's covered interval
		if pc.ActiveDate.Before(page.Start) || pc.ActiveDate.After(page.End) {
			continue
		}

		detail, err := resolver.Resolve(ctx, row.DetailRef)
		if err != nil {
			logger.Warn("detail resolution failed", slog.String("event", row.Event),
				slog.String("error", err.Error()))
			out.diag.ParseWarnings++
		}

		out.events = append(out.events, domain.Event{
			DateTime: res.Time,
			Currency: row.Currency,
			Impact:   domain.ParseImpact(row.Impact),
			Name:     row.Event,
			Actual:   row.Actual,
			Forecast: row.Forecast,
			Previous: row.Previous,
			Detail:   detail,
		})
	}

	logger.Info("page processed", slog.Int("events", len(out.events)))
	return out
}
