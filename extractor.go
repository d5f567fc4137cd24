package pincrawl

// ImageExtractor pulls candidate image URLs out of rendered HTML.
// Implementations select one "best" URL per image element, preferring
// higher-resolution srcset entries, and resolve relative URLs against
// baseURL. The returned order is document order with duplicates removed.
type ImageExtractor interface {
	ImageURLs(html, baseURL string) ([]string, error)
}
