//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/pincrawl"
	"github.com/fwojciec/pincrawl/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Surface implements pincrawl.RenderSurface.
var _ pincrawl.RenderSurface = (*rod.Surface)(nil)

func TestSurface_Navigate_ReturnsRenderedHTML(t *testing.T) {
	t.Parallel()

	// Serve a page that uses JavaScript to inject an image element.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Test Page</title></head>
<body>
<div id="feed"></div>
<script>
const img = document.createElement('img');
img.src = '/images/rendered.jpg';
document.getElementById('feed').appendChild(img);
</script>
</body>
</html>`))
	}))
	defer srv.Close()

	surface, err := rod.NewSurface()
	require.NoError(t, err)
	defer surface.Close()

	require.NoError(t, surface.Navigate(context.Background(), srv.URL))

	html, err := surface.HTML(context.Background())
	require.NoError(t, err)
	assert.Contains(t, html, "rendered.jpg")
}

func TestSurface_ScrollByPage_TriggersLazyContent(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<body style="height: 5000px">
<script>
window.addEventListener('scroll', () => {
  const img = document.createElement('img');
  img.src = '/images/lazy.jpg';
  document.body.appendChild(img);
});
</script>
</body>
</html>`))
	}))
	defer srv.Close()

	surface, err := rod.NewSurface()
	require.NoError(t, err)
	defer surface.Close()

	ctx := context.Background()
	require.NoError(t, surface.Navigate(ctx, srv.URL))
	require.NoError(t, surface.ScrollByPage(ctx))

	// Give the scroll handler a moment to run.
	time.Sleep(200 * time.Millisecond)

	html, err := surface.HTML(ctx)
	require.NoError(t, err)
	assert.Contains(t, html, "lazy.jpg")
}

func TestSurface_Navigate_ContextCancellation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Don't respond - let context cancellation take effect.
		select {}
	}))
	defer srv.Close()

	surface, err := rod.NewSurface()
	require.NoError(t, err)
	defer surface.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	err = surface.Navigate(ctx, srv.URL)
	require.Error(t, err)
}

func TestSurface_ScrollBeforeNavigate_ReturnsError(t *testing.T) {
	t.Parallel()

	surface, err := rod.NewSurface()
	require.NoError(t, err)
	defer surface.Close()

	err = surface.ScrollByPage(context.Background())
	require.Error(t, err)
	assert.Equal(t, pincrawl.EINTERNAL, pincrawl.ErrorCode(err))
}
