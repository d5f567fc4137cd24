package goquery_test

import (
	"testing"

	"github.com/fwojciec/pincrawl/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseURL = "https://www.pinterest.com/search/pins/?q=test"

func TestExtractor_ImageURLs_uses_src_when_no_srcset(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<img src="https://i.pinimg.com/236x/aa/bb/cc/img1.jpg">
	</body></html>`

	e := goquery.NewExtractor()
	urls, err := e.ImageURLs(html, baseURL)

	require.NoError(t, err)
	assert.Equal(t, []string{"https://i.pinimg.com/236x/aa/bb/cc/img1.jpg"}, urls)
}

func TestExtractor_ImageURLs_prefers_highest_srcset_width(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<img src="https://cdn.example.com/small.jpg"
		     srcset="https://cdn.example.com/a-320.jpg 320w,
		             https://cdn.example.com/a-1280.jpg 1280w,
		             https://cdn.example.com/a-640.jpg 640w">
	</body></html>`

	e := goquery.NewExtractor()
	urls, err := e.ImageURLs(html, baseURL)

	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn.example.com/a-1280.jpg"}, urls)
}

func TestExtractor_ImageURLs_scores_density_descriptors(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<img srcset="https://cdn.example.com/a-1x.jpg 1x, https://cdn.example.com/a-2x.jpg 2x">
	</body></html>`

	e := goquery.NewExtractor()
	urls, err := e.ImageURLs(html, baseURL)

	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn.example.com/a-2x.jpg"}, urls)
}

func TestExtractor_ImageURLs_preferred_pattern_beats_score(t *testing.T) {
	t.Parallel()

	// The 970w entry scores higher, but the 736x path segment is a known
	// high-quality variant and wins.
	html := `<html><body>
		<img src="https://i.pinimg.com/75x75_RS/aa/img.jpg"
		     srcset="https://other.example.com/huge.jpg 970w,
		             https://i.pinimg.com/736x/aa/img.jpg 736w">
	</body></html>`

	e := goquery.NewExtractor()
	urls, err := e.ImageURLs(html, baseURL)

	require.NoError(t, err)
	assert.Equal(t, []string{"https://i.pinimg.com/736x/aa/img.jpg"}, urls)
}

func TestExtractor_ImageURLs_resolves_relative_URLs(t *testing.T) {
	t.Parallel()

	html := `<html><body><img src="/images/photo.jpg"></body></html>`

	e := goquery.NewExtractor()
	urls, err := e.ImageURLs(html, "https://www.pinterest.com/board/")

	require.NoError(t, err)
	assert.Equal(t, []string{"https://www.pinterest.com/images/photo.jpg"}, urls)
}

func TestExtractor_ImageURLs_skips_data_URIs_and_empty_imgs(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<img src="data:image/gif;base64,R0lGODlhAQABAAAAACw=">
		<img>
		<img src="https://i.pinimg.com/236x/ok.jpg">
	</body></html>`

	e := goquery.NewExtractor()
	urls, err := e.ImageURLs(html, baseURL)

	require.NoError(t, err)
	assert.Equal(t, []string{"https://i.pinimg.com/236x/ok.jpg"}, urls)
}

func TestExtractor_ImageURLs_deduplicates_in_document_order(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<img src="https://i.pinimg.com/236x/first.jpg">
		<img src="https://i.pinimg.com/236x/second.jpg">
		<img src="https://i.pinimg.com/236x/first.jpg">
	</body></html>`

	e := goquery.NewExtractor()
	urls, err := e.ImageURLs(html, baseURL)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://i.pinimg.com/236x/first.jpg",
		"https://i.pinimg.com/236x/second.jpg",
	}, urls)
}

func TestExtractor_ImageURLs_empty_document(t *testing.T) {
	t.Parallel()

	e := goquery.NewExtractor()
	urls, err := e.ImageURLs("<html><body></body></html>", baseURL)

	require.NoError(t, err)
	assert.Empty(t, urls)
}
