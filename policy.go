package pincrawl

import "strings"

// Wildcard is the HostPolicy sentinel that allows any host.
const Wildcard = "*"

// HostPolicy decides whether a URL's host is trusted for download.
// Untrusted candidates are dropped before they enter the collection state,
// which saves bandwidth and avoids amplifying abuse.
//
// Comparison is case-insensitive exact-or-suffix match: "pinimg.com" allows
// both "pinimg.com" and "i.pinimg.com". An empty set or the Wildcard
// sentinel allows all hosts.
type HostPolicy struct {
	wildcard bool
	hosts    []string
}

// NewHostPolicy creates a HostPolicy from a set of allowed host names.
func NewHostPolicy(hosts []string) *HostPolicy {
	p := &HostPolicy{}
	for _, h := range hosts {
		h = strings.ToLower(strings.TrimSpace(h))
		if h == "" {
			continue
		}
		if h == Wildcard {
			p.wildcard = true
			continue
		}
		p.hosts = append(p.hosts, h)
	}
	if len(p.hosts) == 0 && !p.wildcard {
		p.wildcard = true
	}
	return p
}

// Allowed reports whether host is trusted.
func (p *HostPolicy) Allowed(host string) bool {
	if p.wildcard {
		return true
	}
	host = strings.ToLower(host)
	for _, h := range p.hosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}
