package crawl

import (
	"sync"

	"github.com/fwojciec/pincrawl"
)

// Compile-time interface verification.
var _ pincrawl.Claimer = (*ClaimSet)(nil)

// ClaimSet records claimed keys with exactly-once semantics.
// It is safe for concurrent use by multiple goroutines.
//
// The set is exact rather than probabilistic: a false positive here would
// silently drop an image, and the expected key count per run is small.
type ClaimSet struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewClaimSet creates an empty ClaimSet.
func NewClaimSet() *ClaimSet {
	return &ClaimSet{seen: make(map[string]struct{})}
}

// TryClaim returns true iff key was not previously claimed, recording the
// claim as a side effect.
func (s *ClaimSet) TryClaim(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[key]; ok {
		return false
	}
	s.seen[key] = struct{}{}
	return true
}

// Len returns the number of claimed keys.
func (s *ClaimSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}
