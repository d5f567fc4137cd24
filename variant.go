package pincrawl

import (
	"net/url"
	"regexp"
	"strings"
)

// VariantRule rewrites size-coded path segments for one CDN's naming
// convention. Rules are data, not code, so new CDN conventions can be added
// without touching the pipeline.
type VariantRule struct {
	// HostSuffix is the host the rule applies to, matched exact-or-suffix.
	HostSuffix string

	// SizeSegment matches a resolution-coded path segment, e.g. "/236x/".
	SizeSegment *regexp.Regexp

	// Preferred is the replacement segment naming the largest known size.
	Preferred string

	// Final matches paths that are already at original quality and must
	// not be rewritten.
	Final *regexp.Regexp
}

// PinimgRule returns the variant rule for the i.pinimg.com CDN, which encodes
// thumbnail sizes as path segments like /236x/, /474x/, /564x/ or /75x75_RS/.
// The largest named size is /736x/; /originals/ URLs are left untouched.
func PinimgRule() VariantRule {
	return VariantRule{
		HostSuffix:  "pinimg.com",
		SizeSegment: regexp.MustCompile(`/\d+x(?:\d+)?(?:_[A-Za-z]+)?/`),
		Preferred:   "/736x/",
		Final:       regexp.MustCompile(`/originals/`),
	}
}

// VariantResolver rewrites candidate URLs to prefer higher-resolution
// siblings when the host's naming convention is known.
type VariantResolver struct {
	rules []VariantRule
}

// NewVariantResolver creates a resolver with the given rules.
// With no rules it defaults to the pinimg rule.
func NewVariantResolver(rules ...VariantRule) *VariantResolver {
	if len(rules) == 0 {
		rules = []VariantRule{PinimgRule()}
	}
	return &VariantResolver{rules: rules}
}

// Resolve returns the preferred variant of rawURL, or rawURL unchanged when
// no rule matches. Resolve is pure and idempotent:
// Resolve(Resolve(u)) == Resolve(u) for all u.
func (r *VariantResolver) Resolve(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}

	host := strings.ToLower(u.Host)
	for _, rule := range r.rules {
		if host != rule.HostSuffix && !strings.HasSuffix(host, "."+rule.HostSuffix) {
			continue
		}
		if rule.Final != nil && rule.Final.MatchString(u.Path) {
			return rawURL
		}
		path := rule.SizeSegment.ReplaceAllString(u.Path, rule.Preferred)
		if path == u.Path {
			return rawURL
		}
		u.Path = path
		return u.String()
	}

	return rawURL
}
