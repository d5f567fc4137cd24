package pincrawl

// DimensionProber decodes the pixel dimensions of an image buffer.
// The prober is an optional collaborator: when absent, dimension-based
// quality checks are skipped entirely.
type DimensionProber interface {
	Dimensions(data []byte) (width, height int, err error)
}
