// Package download provides the bounded-concurrency pipeline that fetches
// collected image candidates, filters low-quality results, and persists
// accepted files.
package download

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/fwojciec/pincrawl"
	"golang.org/x/sync/errgroup"
)

// Pipeline defaults.
const (
	DefaultConcurrency   = 8
	DefaultTimeout       = 20 * time.Second
	DefaultProgressEvery = 10
)

// Pipeline downloads candidates with a fixed-size worker pool. Workers pull
// from a shared FIFO queue so earlier-discovered (more relevant) images are
// fetched first. Each item is fault-isolated: a failed fetch produces a
// Failed result and never aborts the run.
type Pipeline struct {
	Fetcher pincrawl.ImageFetcher
	Writer  pincrawl.FileWriter

	// Prober is optional; without it dimension checks are skipped.
	Prober pincrawl.DimensionProber

	// Limiter is optional per-host politeness.
	Limiter pincrawl.HostLimiter

	// Claims is the claim set shared with the collection stage. It guards
	// fallback fetches of the un-promoted raw URL so the same logical
	// image is never written twice.
	Claims pincrawl.Claimer

	Filter pincrawl.QualityFilter

	// Concurrency is the number of download workers.
	Concurrency int

	// Timeout is the hard per-item fetch deadline.
	Timeout time.Duration

	// Progress, when set, is invoked every ProgressEvery completions and
	// once more at the end.
	Progress      pincrawl.ProgressFunc
	ProgressEvery int

	Logger *slog.Logger
}

// Run downloads all candidates and returns aggregate counters. It returns
// only after every candidate has produced a result; on context cancellation
// remaining candidates are skipped and the counters cover only processed
// items. The returned error is reserved for future use and currently always
// nil: per-item failures are reported through the counters.
func (p *Pipeline) Run(ctx context.Context, candidates []pincrawl.ImageCandidate) (pincrawl.Counters, error) {
	logger := p.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	total := len(candidates)
	if total == 0 {
		return pincrawl.Counters{}, nil
	}

	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	progressEvery := p.ProgressEvery
	if progressEvery <= 0 {
		progressEvery = DefaultProgressEvery
	}

	jobs := make(chan pincrawl.ImageCandidate)
	go func() {
		defer close(jobs)
		for _, cand := range candidates {
			select {
			case jobs <- cand:
			case <-ctx.Done():
				return
			}
		}
	}()

	var (
		mu        sync.Mutex
		counters  pincrawl.Counters
		completed int
	)

	record := func(res pincrawl.DownloadResult) {
		mu.Lock()
		counters.Record(res)
		completed++
		done := completed
		mu.Unlock()

		switch res.Outcome {
		case pincrawl.OutcomeAccepted:
			logger.Debug("saved", "url", res.Candidate.ResolvedURL, "path", res.Path, "bytes", res.Bytes)
		case pincrawl.OutcomeRejected:
			logger.Debug("rejected", "url", res.Candidate.ResolvedURL, "reason", res.Reason)
		case pincrawl.OutcomeFailed:
			logger.Warn("download failed", "url", res.Candidate.ResolvedURL, "err", res.Err)
		}

		if p.Progress != nil && (done%progressEvery == 0 || done == total) {
			p.Progress(done, total)
		}
	}

	var g errgroup.Group
	for i := 0; i < concurrency; i++ {
		g.Go(func() error {
			for cand := range jobs {
				if ctx.Err() != nil {
					continue
				}
				record(p.process(ctx, cand, logger))
			}
			return nil
		})
	}
	_ = g.Wait()

	return counters, nil
}

// process runs one candidate from fetch through quality filtering to disk.
func (p *Pipeline) process(ctx context.Context, cand pincrawl.ImageCandidate, logger *slog.Logger) pincrawl.DownloadResult {
	res := pincrawl.DownloadResult{Candidate: cand}

	name := Filename(cand, "")
	if p.Writer.Exists(name) {
		logger.Debug("already downloaded", "url", cand.ResolvedURL, "file", name)
		res.Outcome = pincrawl.OutcomeAccepted
		res.Path = name
		return res
	}

	if p.Limiter != nil {
		if err := p.Limiter.Wait(ctx, cand.SourceHost); err != nil {
			res.Outcome = pincrawl.OutcomeFailed
			res.Err = err
			return res
		}
	}

	data, err := p.fetchOnce(ctx, cand.ResolvedURL)
	if err != nil {
		// The promoted variant may not exist on the CDN. Fall back to the
		// URL as observed in the page, but only if no other worker has
		// claimed it.
		if ctx.Err() == nil && cand.RawURL != cand.ResolvedURL &&
			p.Claims != nil && p.Claims.TryClaim(cand.RawURL) {
			data, err = p.fetchOnce(ctx, cand.RawURL)
		}
		if err != nil {
			res.Outcome = pincrawl.OutcomeFailed
			res.Err = err
			return res
		}
	}

	byteLen := len(data.Body)
	if ok, reason := p.Filter.Check(byteLen, 0, 0, false); !ok {
		res.Outcome = pincrawl.OutcomeRejected
		res.Reason = reason
		return res
	}

	if p.Prober != nil && p.Filter.MinDim > 0 {
		width, height, perr := p.Prober.Dimensions(data.Body)
		if perr != nil {
			res.Outcome = pincrawl.OutcomeRejected
			res.Reason = pincrawl.RejectUnreadableImage
			return res
		}
		if ok, reason := p.Filter.Check(byteLen, width, height, true); !ok {
			res.Outcome = pincrawl.OutcomeRejected
			res.Reason = reason
			return res
		}
	}

	path, err := p.Writer.Write(Filename(cand, data.ContentType), data.Body)
	if err != nil {
		res.Outcome = pincrawl.OutcomeFailed
		res.Err = err
		return res
	}

	res.Outcome = pincrawl.OutcomeAccepted
	res.Path = path
	res.Bytes = byteLen
	return res
}

func (p *Pipeline) fetchOnce(ctx context.Context, url string) (*pincrawl.ImageData, error) {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	tctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return p.Fetcher.Fetch(tctx, url)
}
