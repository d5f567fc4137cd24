// Package rod provides a browser-automation implementation of
// pincrawl.RenderSurface using Chrome via go-rod.
package rod

import (
	"context"
	"fmt"

	"github.com/fwojciec/pincrawl"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Default browser viewport. Tall enough that one scroll page covers a
// meaningful slice of a lazily-loaded feed.
const (
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 2000
)

// DefaultUserAgent is a desktop Chrome user agent. Image CDNs and feed pages
// serve degraded markup to obviously-automated agents.
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

// Ensure Surface implements pincrawl.RenderSurface at compile time.
var _ pincrawl.RenderSurface = (*Surface)(nil)

// Surface drives a single rendered browser page using Chrome automation.
// The page is created on Navigate and reused across scroll/extract cycles.
type Surface struct {
	browser *rod.Browser
	page    *rod.Page

	headless  bool
	userAgent string
	width     int
	height    int
}

// Option configures a Surface.
type Option func(*Surface)

// WithHeadless controls whether the browser runs headless. Defaults to true.
func WithHeadless(headless bool) Option {
	return func(s *Surface) {
		s.headless = headless
	}
}

// WithUserAgent overrides the browser user agent.
func WithUserAgent(ua string) Option {
	return func(s *Surface) {
		s.userAgent = ua
	}
}

// WithViewport overrides the browser viewport size.
func WithViewport(width, height int) Option {
	return func(s *Surface) {
		s.width = width
		s.height = height
	}
}

// NewSurface launches a Chrome browser and returns a Surface.
// Close must be called when the Surface is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewSurface(opts ...Option) (*Surface, error) {
	s := &Surface{
		headless:  true,
		userAgent: DefaultUserAgent,
		width:     DefaultViewportWidth,
		height:    DefaultViewportHeight,
	}
	for _, opt := range opts {
		opt(s)
	}

	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(s.headless)

	u, err := lnchr.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill() // Clean up launched process on connection failure
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	s.browser = browser
	return s, nil
}

// Navigate opens the URL in a fresh page and waits for the initial load.
// Any previously opened page is closed first.
func (s *Surface) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.page != nil {
		_ = s.page.Close()
		s.page = nil
	}

	page, err := s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return err
	}

	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
		UserAgent: s.userAgent,
	}); err != nil {
		_ = page.Close()
		return err
	}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             s.width,
		Height:            s.height,
		DeviceScaleFactor: 1,
	}); err != nil {
		_ = page.Close()
		return err
	}

	p := page.Context(ctx)
	if err := p.Navigate(url); err != nil {
		_ = page.Close()
		return err
	}
	if err := p.WaitLoad(); err != nil {
		_ = page.Close()
		return err
	}

	s.page = page
	return nil
}

// ScrollByPage scrolls to the bottom of the current document, which is what
// triggers lazy feeds to append more content.
func (s *Surface) ScrollByPage(ctx context.Context) error {
	if s.page == nil {
		return pincrawl.Errorf(pincrawl.EINTERNAL, "scroll before navigation")
	}
	_, err := s.page.Context(ctx).Eval(`() => window.scrollTo(0, document.body.scrollHeight)`)
	return err
}

// HTML returns the current rendered HTML of the page.
func (s *Surface) HTML(ctx context.Context) (string, error) {
	if s.page == nil {
		return "", pincrawl.Errorf(pincrawl.EINTERNAL, "read before navigation")
	}
	return s.page.Context(ctx).HTML()
}

// Close releases browser resources.
func (s *Surface) Close() error {
	if s.page != nil {
		_ = s.page.Close()
		s.page = nil
	}
	return s.browser.Close()
}
