package pincrawl

// ImageCandidate is a discovered, host-approved image URL that has not been
// fetched yet. Identity for deduplication is ResolvedURL, the URL after
// resolution-preference rewriting.
type ImageCandidate struct {
	// RawURL is the URL exactly as observed in the page.
	RawURL string

	// ResolvedURL is the URL after VariantResolver rewriting. It is the
	// deduplication key and the URL the download stage fetches first.
	ResolvedURL string

	// SourceHost is the host component of ResolvedURL.
	SourceHost string

	// Index is the zero-based discovery position. Earlier-discovered images
	// are typically more relevant and are downloaded first.
	Index int
}

// Validate returns an error if the candidate contains invalid fields.
func (c *ImageCandidate) Validate() error {
	if c.RawURL == "" {
		return Errorf(EINVALID, "candidate raw URL required")
	}
	if c.ResolvedURL == "" {
		return Errorf(EINVALID, "candidate resolved URL required")
	}
	if c.SourceHost == "" {
		return Errorf(EINVALID, "candidate source host required")
	}
	return nil
}

// Claimer records which resolved URLs have been scheduled for download.
// It is shared between the collection loop and any download-stage fallback
// logic that re-derives URLs, so claims must be exactly-once per key.
type Claimer interface {
	// TryClaim returns true iff key was not previously claimed,
	// recording the claim as a side effect.
	// Implementations must be safe for concurrent use.
	TryClaim(key string) bool
}
