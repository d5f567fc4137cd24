package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pincrawl"
	"github.com/fwojciec/pincrawl/crawl"
	"github.com/fwojciec/pincrawl/download"
	"github.com/fwojciec/pincrawl/fs"
	"github.com/fwojciec/pincrawl/goquery"
	pinhttp "github.com/fwojciec/pincrawl/http"
	"github.com/fwojciec/pincrawl/rod"
	pinslog "github.com/fwojciec/pincrawl/slog"
	"github.com/fwojciec/pincrawl/ximage"
	"github.com/google/uuid"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pincrawl"),
		kong.Description("Scrape images from a scroll-driven board or search feed"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	_, err = parser.Parse(args)
	if err != nil {
		return err
	}

	startURL := cli.URL
	if cli.Query != "" {
		startURL = SearchURL(cli.Query)
	}

	runID := uuid.NewString()

	logger, closeLog, err := newLogger(stderr, cli.Verbose, cli.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()
	logger = logger.With("run", runID)

	logger.Info("starting", "url", startURL, "out", cli.Out, "maxImages", cli.MaxImages)

	// Collection stage.
	surface, err := rod.NewSurface(
		rod.WithHeadless(!cli.Headful),
	)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
		return fmt.Errorf("failed to start browser: %w", err)
	}

	var renderSurface pincrawl.RenderSurface = surface
	if cli.Verbose {
		renderSurface = rod.NewLoggingSurface(surface, logger)
	}

	claims := crawl.NewClaimSet()
	collector := &crawl.Collector{
		Surface:        renderSurface,
		Extractor:      goquery.NewExtractor(),
		Policy:         pincrawl.NewHostPolicy(splitHosts(cli.AllowedHosts)),
		Resolver:       pincrawl.NewVariantResolver(),
		Claims:         claims,
		MaxImages:      cli.MaxImages,
		MaxScrolls:     cli.Scrolls,
		StallThreshold: cli.Stall,
		SettleDelay:    cli.Settle,
		ScrollLogEvery: cli.ScrollLogEvery,
		Logger:         logger,
	}

	candidates, err := collector.Collect(ctx, startURL)

	// The browser is only needed for collection; release it before the
	// download stage starts competing for resources.
	if cerr := renderSurface.Close(); cerr != nil {
		logger.Warn("browser close failed", "err", cerr)
	}

	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Collected %d image URLs\n", len(candidates))

	if cli.SaveURLs != "" {
		if err := fs.WriteURLList(cli.SaveURLs, runID, candidates); err != nil {
			logger.Warn("failed to save url list", "path", cli.SaveURLs, "err", err)
		} else {
			fmt.Fprintf(stdout, "Saved URL list to %s\n", cli.SaveURLs)
		}
	}

	if len(candidates) == 0 {
		fmt.Fprintln(stdout, "Nothing to download")
		return nil
	}

	// Download stage.
	var fetcher pincrawl.ImageFetcher = pinhttp.NewFetcher(
		pinhttp.WithTimeout(cli.Timeout),
		pinhttp.WithReferer(startURL),
	)
	if cli.Verbose {
		fetcher = pinslog.NewLoggingFetcher(fetcher, logger)
	}
	defer fetcher.Close()

	pipeline := &download.Pipeline{
		Fetcher: fetcher,
		Writer:        fs.NewWriter(cli.Out),
		Claims:        claims,
		Filter:        pincrawl.QualityFilter{MinBytes: cli.MinBytes, MinDim: cli.MinDim},
		Concurrency:   cli.Concurrency,
		Timeout:       cli.Timeout,
		ProgressEvery: cli.ProgressEvery,
		Progress: func(completed, total int) {
			fmt.Fprintf(stdout, "Downloaded %d/%d\n", completed, total)
		},
		Logger: logger,
	}
	if cli.MinDim > 0 {
		pipeline.Prober = ximage.Prober{}
	}
	if cli.RateLimit > 0 {
		pipeline.Limiter = crawl.NewHostLimiter(cli.RateLimit)
	}

	counters, err := pipeline.Run(ctx, candidates)
	if err != nil {
		return err
	}

	logger.Info("finished",
		"attempted", counters.Attempted,
		"accepted", counters.Accepted,
		"rejected", counters.Rejected,
		"failed", counters.Failed,
	)
	fmt.Fprintf(stdout, "Done: %d saved, %d rejected, %d failed (of %d)\n",
		counters.Accepted, counters.Rejected, counters.Failed, counters.Attempted)

	return nil
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Query string `short:"q" xor:"source" required:"" help:"Search query to scrape results for"`
	URL   string `short:"u" xor:"source" required:"" help:"Feed or board URL to scrape"`

	Out       string `short:"o" default:"images" help:"Output directory for downloaded images"`
	MaxImages int    `default:"50" help:"Stop collecting after this many image URLs"`
	Scrolls   int    `default:"80" help:"Hard ceiling on scroll attempts"`
	Stall     int    `default:"5" help:"Stop after this many scrolls with no new images"`

	Settle      time.Duration `default:"1200ms" help:"Wait after each scroll before re-reading the page"`
	Concurrency int           `short:"c" default:"8" help:"Concurrent download limit"`
	Timeout     time.Duration `short:"t" default:"20s" help:"Per-image download timeout"`

	MinBytes     int     `default:"10000" help:"Discard images smaller than this many bytes"`
	MinDim       int     `default:"200" help:"Discard images with a dimension below this (0 disables)"`
	AllowedHosts string  `default:"i.pinimg.com" help:"Comma-separated trusted image hosts (* allows all)"`
	RateLimit    float64 `default:"0" help:"Max requests per second per host (0 disables)"`

	SaveURLs       string `help:"Also save the collected URL list to this file"`
	ProgressEvery  int    `default:"10" help:"Print download progress every N images"`
	ScrollLogEvery int    `default:"5" help:"Log scroll progress every N scrolls"`

	Headful bool   `help:"Run the browser with a visible window"`
	Verbose bool   `short:"v" help:"Enable debug logging"`
	LogFile string `help:"Also write logs to this file"`
}

// splitHosts parses the comma-separated allowed-hosts flag. A lone "*"
// disables host filtering.
func splitHosts(s string) []string {
	if s == "" {
		return nil
	}
	var hosts []string
	for _, h := range strings.Split(s, ",") {
		if h = strings.TrimSpace(h); h != "" {
			hosts = append(hosts, h)
		}
	}
	if len(hosts) == 1 && hosts[0] == pincrawl.Wildcard {
		return nil
	}
	return hosts
}

// newLogger builds the run logger. Logs go to stderr so stdout stays clean
// for progress output; with a log file they go to both.
func newLogger(stderr io.Writer, verbose bool, logFile string) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	w := stderr
	closeLog := func() {}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = io.MultiWriter(stderr, f)
		closeLog = func() { _ = f.Close() }
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closeLog, nil
}
