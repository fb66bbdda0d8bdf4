// Command ffcal scrapes economic-calendar events for a date range and
// exports them as CSV with all timestamps converted to a target
// timezone.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"ffcal/internal/config"
	apperrors "ffcal/internal/errors"
	"ffcal/internal/exporter"
	"ffcal/internal/infrastructure"
	"ffcal/internal/scraper"
)

// exit codes for the overall run outcome
const (
	exitOK      = 0
	exitFailure = 1
	exitPartial = 2
)

// errPartialResult marks a run that produced output but lost pages.
var errPartialResult = errors.New("some calendar pages failed to fetch")

type options struct {
	from       string
	to         string
	timezone   string
	out        string
	configFile string
	headless   bool
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:     config.AppName,
		Version: config.AppVersion,
		Short:   "Export economic-calendar events to CSV",
		Long: `ffcal scrapes an economic-calendar website over a browser session,
expands each event's detail panel, normalizes all timestamps to the
requested timezone, and writes one CSV record per event.

A page that fails to load does not abort the run: its dates are listed
as failures and the exit status is ` + fmt.Sprint(exitPartial) + `.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.from, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.to, "to", "", "end date (YYYY-MM-DD), defaults to --from")
	cmd.Flags().StringVar(&opts.timezone, "timezone", "UTC", "target timezone for event timestamps (IANA name)")
	cmd.Flags().StringVar(&opts.out, "out", "calendar_events.csv", "output CSV path")
	cmd.Flags().StringVar(&opts.configFile, "config", "", "optional YAML config file")
	cmd.Flags().BoolVar(&opts.headless, "headless", true, "run the browser headless")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "override configured log level")
	cobra.CheckErr(cmd.MarkFlagRequired("from"))

	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("headless") {
		cfg.Scrape.Headless = opts.headless
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return err
	}

	ctx := infrastructure.WithRunID(cmd.Context(), uuid.NewString())
	logger = infrastructure.LoggerFromContext(ctx)

	start, end, err := parseRange(opts.from, opts.to)
	if err != nil {
		return err
	}

	target, err := time.LoadLocation(opts.timezone)
	if err != nil {
		return apperrors.NewInvalidDateError(
			fmt.Sprintf("unknown timezone %q", opts.timezone), err)
	}
	source, err := cfg.Scrape.SourceLocation()
	if err != nil {
		return apperrors.NewConfigError("source timezone", err)
	}

	logger.Info("starting scrape",
		slog.String("from", start.Format(config.InputDateFormat)),
		slog.String("to", end.Format(config.InputDateFormat)),
		slog.String("timezone", opts.timezone),
		slog.String("out", opts.out))

	provider, cleanup, err := scraper.NewBrowserProvider(ctx, cfg.Scrape, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	orch := scraper.NewOrchestrator(provider, cfg.Scrape.BaseURL,
		source, target, cfg.Scrape.Concurrency, logger)

	result, err := orch.Run(ctx, start, end)
	if err != nil {
		return err
	}

	if err := exporter.NewCSVExporter(logger).Export(opts.out, result.Events); err != nil {
		return err
	}

	logger.Info("export written",
		slog.String("path", opts.out),
		slog.Int("events", len(result.Events)))

	if result.Partial() {
		for _, f := range result.Failures {
			logger.Warn("page failed",
				slog.String("url", f.URL),
				slog.String("from", f.Start.Format(config.InputDateFormat)),
				slog.String("to", f.End.Format(config.InputDateFormat)),
				slog.String("cause", f.Cause))
		}
		return fmt.Errorf("%w (%d pages)", errPartialResult, len(result.Failures))
	}

	return nil
}

// parseRange validates and parses the CLI date range. A missing --to
// makes the range the single --from day.
func parseRange(fromStr, toStr string) (time.Time, time.Time, error) {
	start, err := time.Parse(config.InputDateFormat, fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewInvalidDateError(
			fmt.Sprintf("invalid --from date %q, want YYYY-MM-DD", fromStr), err)
	}

	if toStr == "" {
		return start, start, nil
	}

	end, err := time.Parse(config.InputDateFormat, toStr)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewInvalidDateError(
			fmt.Sprintf("invalid --to date %q, want YYYY-MM-DD", toStr), err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, apperrors.NewInvalidDateError(
			fmt.Sprintf("--from %s is after --to %s", fromStr, toStr), nil)
	}

	return start, end, nil
}

// exitCode maps the run outcome onto the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errPartialResult):
		return exitPartial
	default:
		return exitFailure
	}
}

func main() {
	os.Exit(execute())
}

// execute runs the command and returns the process exit code. os.Exit
// lives in main so the deferred cleanup here still runs.
func execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer infrastructure.CloseLogFile()

	err := newRootCmd().ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return exitCode(err)
}
