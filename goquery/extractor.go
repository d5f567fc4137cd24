// Package goquery provides an HTML image extractor built on goquery.
// It selects one best-quality URL per img element, scoring srcset entries
// by their width or density descriptors.
package goquery

import (
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pincrawl"
)

// densityWeight converts an "Nx" density descriptor into a score roughly
// comparable with "Nw" width descriptors.
const densityWeight = 1000

// defaultPreferredPattern matches URL path segments that name a large or
// original-quality CDN variant. A pool entry matching it wins over the
// highest-scored srcset entry.
var defaultPreferredPattern = regexp.MustCompile(`/\d{3,4}x/|/originals/`)

// Ensure Extractor implements pincrawl.ImageExtractor at compile time.
var _ pincrawl.ImageExtractor = (*Extractor)(nil)

// Extractor finds the best candidate URL for every img element in a document.
type Extractor struct {
	preferred *regexp.Regexp
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithPreferredPattern overrides the pattern that marks a URL as a known
// high-quality variant.
func WithPreferredPattern(re *regexp.Regexp) Option {
	return func(e *Extractor) {
		e.preferred = re
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{preferred: defaultPreferredPattern}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ImageURLs returns one URL per img element, in document order with
// duplicates removed. Relative URLs are resolved against baseURL.
func (e *Extractor) ImageURLs(html, baseURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, pincrawl.Errorf(pincrawl.EINVALID, "parse HTML: %v", err)
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		base = nil
	}

	var urls []string
	seen := make(map[string]struct{})

	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		src, _ := sel.Attr("src")
		srcset, _ := sel.Attr("srcset")

		best := e.bestCandidate(src, srcset)
		if best == "" {
			return
		}

		abs, ok := absolutize(base, best)
		if !ok {
			return
		}

		if _, dup := seen[abs]; dup {
			return
		}
		seen[abs] = struct{}{}
		urls = append(urls, abs)
	})

	return urls, nil
}

// candidate is one entry in the pool of URLs for a single img element.
type candidate struct {
	url   string
	score float64
}

// bestCandidate picks the best URL for one img element: a pool entry
// matching the preferred pattern wins, otherwise the highest-scored entry.
// The plain src attribute participates with score zero.
func (e *Extractor) bestCandidate(src, srcset string) string {
	var pool []candidate
	if src != "" {
		pool = append(pool, candidate{url: src})
	}
	pool = append(pool, parseSrcset(srcset)...)
	if len(pool) == 0 {
		return ""
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].score > pool[j].score
	})

	for _, c := range pool {
		if e.preferred.MatchString(c.url) {
			return c.url
		}
	}
	return pool[0].url
}

// parseSrcset parses a srcset attribute into scored candidates. Width
// descriptors ("736w") score as the width; density descriptors ("2x") are
// weighted so that a higher density beats any realistic width.
func parseSrcset(srcset string) []candidate {
	var out []candidate
	for _, entry := range strings.Split(srcset, ",") {
		fields := strings.Fields(strings.TrimSpace(entry))
		if len(fields) == 0 || fields[0] == "" {
			continue
		}
		c := candidate{url: fields[0]}
		if len(fields) > 1 {
			d := fields[1]
			switch {
			case strings.HasSuffix(d, "w"):
				if n, err := strconv.Atoi(strings.TrimSuffix(d, "w")); err == nil {
					c.score = float64(n)
				}
			case strings.HasSuffix(d, "x"):
				if f, err := strconv.ParseFloat(strings.TrimSuffix(d, "x"), 64); err == nil {
					c.score = f * densityWeight
				}
			}
		}
		out = append(out, c)
	}
	return out
}

// absolutize resolves raw against base and filters out non-fetchable URLs
// such as data: and javascript: schemes.
func absolutize(base *url.URL, raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	if base != nil {
		u = base.ResolveReference(u)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	if u.Host == "" {
		return "", false
	}
	return u.String(), true
}
