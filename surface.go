package pincrawl

import "context"

// RenderSurface drives a rendered browser page. Lazily-loaded content is
// reflected only after a settle delay, which callers must wait out between
// ScrollByPage and HTML.
// Implementations may use browser automation to execute JavaScript.
type RenderSurface interface {
	// Navigate opens a URL and waits for the initial page load.
	Navigate(ctx context.Context, url string) error

	// ScrollByPage scrolls the page down by one page height to trigger
	// lazy content loading.
	ScrollByPage(ctx context.Context) error

	// HTML returns the current rendered HTML of the page.
	HTML(ctx context.Context) (string, error)

	// Close releases browser resources.
	// Must be called when the RenderSurface is no longer needed.
	Close() error
}
