package mock

import "github.com/fwojciec/pincrawl"

var _ pincrawl.ImageExtractor = (*ImageExtractor)(nil)

// ImageExtractor is a mock implementation of pincrawl.ImageExtractor.
type ImageExtractor struct {
	ImageURLsFn func(html, baseURL string) ([]string, error)
}

func (e *ImageExtractor) ImageURLs(html, baseURL string) ([]string, error) {
	return e.ImageURLsFn(html, baseURL)
}
