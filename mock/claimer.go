package mock

import "github.com/fwojciec/pincrawl"

var _ pincrawl.Claimer = (*Claimer)(nil)

// Claimer is a mock implementation of pincrawl.Claimer.
type Claimer struct {
	TryClaimFn func(key string) bool
}

func (c *Claimer) TryClaim(key string) bool {
	return c.TryClaimFn(key)
}
