// Package slog provides logging decorators for pincrawl interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pincrawl"
)

// Ensure LoggingFetcher implements pincrawl.ImageFetcher.
var _ pincrawl.ImageFetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps an ImageFetcher with debug logging of every request.
type LoggingFetcher struct {
	next   pincrawl.ImageFetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next pincrawl.ImageFetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the outcome.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (*pincrawl.ImageData, error) {
	begin := time.Now()
	data, err := f.next.Fetch(ctx, url)
	if err != nil {
		f.logger.Debug("fetch failed",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
		return nil, err
	}
	f.logger.Debug("fetched",
		"url", url,
		"duration", time.Since(begin),
		"bytes", len(data.Body),
		"contentType", data.ContentType,
	)
	return data, nil
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
