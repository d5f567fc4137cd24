package mock

import "github.com/fwojciec/pincrawl"

var _ pincrawl.DimensionProber = (*DimensionProber)(nil)

// DimensionProber is a mock implementation of pincrawl.DimensionProber.
type DimensionProber struct {
	DimensionsFn func(data []byte) (width, height int, err error)
}

func (p *DimensionProber) Dimensions(data []byte) (int, int, error) {
	return p.DimensionsFn(data)
}
