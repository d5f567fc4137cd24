package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/pincrawl"
	pinhttp "github.com/fwojciec/pincrawl/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Fetcher implements pincrawl.ImageFetcher.
var _ pincrawl.ImageFetcher = (*pinhttp.Fetcher)(nil)

func TestFetcher_Fetch_returns_body_and_content_type(t *testing.T) {
	t.Parallel()

	payload := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	f := pinhttp.NewFetcher()
	defer f.Close()

	data, err := f.Fetch(context.Background(), srv.URL+"/img.jpg")

	require.NoError(t, err)
	assert.Equal(t, payload, data.Body)
	assert.Equal(t, "image/jpeg", data.ContentType)
}

func TestFetcher_Fetch_sends_user_agent_and_referer(t *testing.T) {
	t.Parallel()

	var gotUA, gotReferer string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotReferer = r.Header.Get("Referer")
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	f := pinhttp.NewFetcher(
		pinhttp.WithUserAgent("test-agent/1.0"),
		pinhttp.WithReferer("https://www.pinterest.com/"),
	)
	defer f.Close()

	_, err := f.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, "test-agent/1.0", gotUA)
	assert.Equal(t, "https://www.pinterest.com/", gotReferer)
}

func TestFetcher_Fetch_non_200_is_an_error(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	f := pinhttp.NewFetcher()
	defer f.Close()

	_, err := f.Fetch(context.Background(), srv.URL+"/missing.jpg")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestFetcher_Fetch_respects_context_deadline(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	f := pinhttp.NewFetcher()
	defer f.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := f.Fetch(ctx, srv.URL)

	require.Error(t, err)
}
