package pincrawl

import "context"

// ImageData holds the bytes of a fetched image along with transport metadata
// needed to derive a safe file extension.
type ImageData struct {
	Body        []byte
	ContentType string
}

// ImageFetcher retrieves image bytes from URLs.
// The context controls the per-item deadline and cancellation.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) (*ImageData, error)

	// Close releases transport resources.
	Close() error
}

// HostLimiter provides per-host rate limiting for downloads.
type HostLimiter interface {
	// Wait blocks until the rate limit allows a request to the host.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, host string) error
}
