// Package crawl provides the page collection loop that drives a render
// surface through repeated scroll/extract cycles, accumulating a
// deduplicated ordered sequence of download candidates.
package crawl

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/pincrawl"
)

// Collection defaults. Lazy feeds give no end-of-content signal, so the loop
// is bounded by a quota, a stall threshold, and a hard scroll ceiling. The
// timing values are empirically tuned and expected to drift as page-load
// behavior changes upstream, which is why they are configuration.
const (
	DefaultMaxImages      = 50
	DefaultMaxScrolls     = 80
	DefaultStallThreshold = 5
	DefaultSettleDelay    = 1200 * time.Millisecond
	DefaultHydrationDelay = 1500 * time.Millisecond
	DefaultScrollLogEvery = 5
)

// Collector drives a render surface and accumulates image candidates.
// State is mutated only by Collect's single goroutine; each run starts from
// fresh state with no leakage between runs.
type Collector struct {
	Surface   pincrawl.RenderSurface
	Extractor pincrawl.ImageExtractor
	Policy    *pincrawl.HostPolicy
	Resolver  *pincrawl.VariantResolver

	// Claims is shared with the download stage so that fallback fetches
	// cannot re-download an already-scheduled URL. Defaults to a fresh
	// ClaimSet.
	Claims pincrawl.Claimer

	// MaxImages stops collection as soon as the quota is reached.
	MaxImages int

	// MaxScrolls is the hard ceiling on scroll ticks.
	MaxScrolls int

	// StallThreshold stops collection after this many consecutive ticks
	// that claimed zero new candidates.
	StallThreshold int

	// SettleDelay is how long to wait after a scroll before trusting the
	// extracted DOM content. Zero means the default; negative disables
	// the wait.
	SettleDelay time.Duration

	// HydrationDelay is an extra wait after navigation, before the first
	// extract tick, giving the page time to hydrate its initial content.
	// Zero means the default; negative disables the wait.
	HydrationDelay time.Duration

	// ScrollLogEvery logs collection progress every N ticks.
	ScrollLogEvery int

	Logger *slog.Logger
}

// Collect navigates to startURL and runs scroll/extract ticks until the
// image quota is reached, progress stalls, the scroll ceiling is hit, or ctx
// is canceled. It returns whatever was gathered; the only error case is a
// navigation failure before the first tick, which leaves nothing to
// download.
func (c *Collector) Collect(ctx context.Context, startURL string) ([]pincrawl.ImageCandidate, error) {
	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	policy := c.Policy
	if policy == nil {
		policy = pincrawl.NewHostPolicy(nil)
	}
	resolver := c.Resolver
	if resolver == nil {
		resolver = pincrawl.NewVariantResolver()
	}
	claims := c.Claims
	if claims == nil {
		claims = NewClaimSet()
	}

	maxImages := defaultInt(c.MaxImages, DefaultMaxImages)
	maxScrolls := defaultInt(c.MaxScrolls, DefaultMaxScrolls)
	stallThreshold := defaultInt(c.StallThreshold, DefaultStallThreshold)
	logEvery := defaultInt(c.ScrollLogEvery, DefaultScrollLogEvery)

	if err := c.Surface.Navigate(ctx, startURL); err != nil {
		return nil, pincrawl.Errorf(pincrawl.ECOLLECTION, "navigate %s: %v", startURL, err)
	}
	if !sleepCtx(ctx, delayOrDefault(c.HydrationDelay, DefaultHydrationDelay)) {
		return nil, nil
	}

	var candidates []pincrawl.ImageCandidate
	stallStreak := 0

	for tick := 0; tick < maxScrolls; tick++ {
		if ctx.Err() != nil {
			logger.Info("collection interrupted", "collected", len(candidates))
			return candidates, nil
		}

		newly := 0
		urls, err := c.extract(ctx, startURL)
		if err != nil {
			// Transient DOM read failures are expected on a live page;
			// the tick counts as zero progress instead of aborting.
			logger.Warn("extract tick failed", "tick", tick+1, "err", err)
		}

		for _, raw := range urls {
			host := hostOf(raw)
			if host == "" || !policy.Allowed(host) {
				continue
			}
			resolved := resolver.Resolve(raw)
			if !claims.TryClaim(resolved) {
				continue
			}
			candidates = append(candidates, pincrawl.ImageCandidate{
				RawURL:      raw,
				ResolvedURL: resolved,
				SourceHost:  hostOf(resolved),
				Index:       len(candidates),
			})
			newly++

			if len(candidates) >= maxImages {
				logger.Info("image quota reached", "collected", len(candidates), "scrolls", tick+1)
				return candidates, nil
			}
		}

		if newly == 0 {
			stallStreak++
		} else {
			stallStreak = 0
		}

		if tick == 0 || (tick+1)%logEvery == 0 {
			logger.Info("scroll progress",
				"scroll", tick+1,
				"max", maxScrolls,
				"collected", len(candidates),
			)
		}

		if stallStreak >= stallThreshold {
			logger.Info("no new images for several scrolls; stopping collection early",
				"collected", len(candidates),
				"scrolls", tick+1,
			)
			return candidates, nil
		}

		if err := c.Surface.ScrollByPage(ctx); err != nil {
			logger.Warn("scroll failed", "tick", tick+1, "err", err)
		}
		if !sleepCtx(ctx, delayOrDefault(c.SettleDelay, DefaultSettleDelay)) {
			logger.Info("collection interrupted", "collected", len(candidates))
			return candidates, nil
		}
	}

	logger.Info("scroll ceiling reached", "collected", len(candidates), "scrolls", maxScrolls)
	return candidates, nil
}

// extract reads the current page and returns the candidate URLs visible in it.
func (c *Collector) extract(ctx context.Context, baseURL string) ([]string, error) {
	html, err := c.Surface.HTML(ctx)
	if err != nil {
		return nil, err
	}
	return c.Extractor.ImageURLs(html, baseURL)
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

func defaultInt(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// delayOrDefault maps the zero value to def and negative values to no wait.
func delayOrDefault(d, def time.Duration) time.Duration {
	if d == 0 {
		return def
	}
	if d < 0 {
		return 0
	}
	return d
}

// sleepCtx waits for d, returning false if ctx is canceled first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
