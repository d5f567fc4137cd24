// Package ximage provides an image dimension prober built on the standard
// image decoders plus golang.org/x/image for webp support.
package ximage

import (
	"bytes"
	"image"

	// Registered for image.DecodeConfig.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/fwojciec/pincrawl"
)

// Ensure Prober implements pincrawl.DimensionProber at compile time.
var _ pincrawl.DimensionProber = Prober{}

// Prober decodes pixel dimensions from image headers without decoding the
// full image.
type Prober struct{}

// Dimensions returns the width and height of the encoded image in data.
func (Prober) Dimensions(data []byte) (int, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, pincrawl.Errorf(pincrawl.EINVALID, "decode image dimensions: %v", err)
	}
	return cfg.Width, cfg.Height, nil
}
