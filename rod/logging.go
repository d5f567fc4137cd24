package rod

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pincrawl"
)

// Ensure LoggingSurface implements pincrawl.RenderSurface.
var _ pincrawl.RenderSurface = (*LoggingSurface)(nil)

// LoggingSurface wraps a RenderSurface with debug logging.
type LoggingSurface struct {
	next   pincrawl.RenderSurface
	logger *slog.Logger
}

// NewLoggingSurface creates a new LoggingSurface.
func NewLoggingSurface(next pincrawl.RenderSurface, logger *slog.Logger) *LoggingSurface {
	return &LoggingSurface{next: next, logger: logger}
}

// Navigate logs the URL being opened and delegates to the wrapped surface.
func (s *LoggingSurface) Navigate(ctx context.Context, url string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("navigate",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Navigate(ctx, url)
}

// ScrollByPage delegates to the wrapped surface.
func (s *LoggingSurface) ScrollByPage(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("scroll",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ScrollByPage(ctx)
}

// HTML delegates to the wrapped surface and logs the document size.
func (s *LoggingSurface) HTML(ctx context.Context) (html string, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("read page",
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.HTML(ctx)
}

// Close delegates to the wrapped surface.
func (s *LoggingSurface) Close() error {
	return s.next.Close()
}
