package mock

import (
	"context"

	"github.com/fwojciec/pincrawl"
)

var _ pincrawl.RenderSurface = (*RenderSurface)(nil)

// RenderSurface is a mock implementation of pincrawl.RenderSurface.
type RenderSurface struct {
	NavigateFn     func(ctx context.Context, url string) error
	ScrollByPageFn func(ctx context.Context) error
	HTMLFn         func(ctx context.Context) (string, error)
	CloseFn        func() error
}

func (s *RenderSurface) Navigate(ctx context.Context, url string) error {
	return s.NavigateFn(ctx, url)
}

func (s *RenderSurface) ScrollByPage(ctx context.Context) error {
	return s.ScrollByPageFn(ctx)
}

func (s *RenderSurface) HTML(ctx context.Context) (string, error) {
	return s.HTMLFn(ctx)
}

func (s *RenderSurface) Close() error {
	return s.CloseFn()
}
