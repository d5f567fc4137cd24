package mock

import (
	"context"

	"github.com/fwojciec/pincrawl"
)

var _ pincrawl.ImageFetcher = (*ImageFetcher)(nil)

// ImageFetcher is a mock implementation of pincrawl.ImageFetcher.
type ImageFetcher struct {
	FetchFn func(ctx context.Context, url string) (*pincrawl.ImageData, error)
	CloseFn func() error
}

func (f *ImageFetcher) Fetch(ctx context.Context, url string) (*pincrawl.ImageData, error) {
	return f.FetchFn(ctx, url)
}

func (f *ImageFetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ pincrawl.HostLimiter = (*HostLimiter)(nil)

// HostLimiter is a mock implementation of pincrawl.HostLimiter.
type HostLimiter struct {
	WaitFn func(ctx context.Context, host string) error
}

func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	return l.WaitFn(ctx, host)
}
