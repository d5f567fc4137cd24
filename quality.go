package pincrawl

// RejectReason explains why a fetched image was discarded.
type RejectReason string

// Reject reasons recorded on DownloadResult.
const (
	RejectTooSmallBytes      RejectReason = "tooSmallBytes"
	RejectTooSmallDimensions RejectReason = "tooSmallDimensions"
	RejectUnreadableImage    RejectReason = "unreadableImage"
)

// QualityFilter is a pure predicate over fetched bytes and optional decoded
// dimensions. It performs no I/O.
type QualityFilter struct {
	// MinBytes rejects images smaller than this many bytes.
	MinBytes int

	// MinDim rejects images whose smaller dimension is below this value.
	// Only applied when dimensions are available.
	MinDim int
}

// Check reports whether an image passes the filter. haveDims indicates that
// width and height were successfully decoded; when false the dimension check
// is skipped, which is a degraded-but-valid mode rather than a failure.
func (f QualityFilter) Check(byteLen, width, height int, haveDims bool) (bool, RejectReason) {
	if byteLen < f.MinBytes {
		return false, RejectTooSmallBytes
	}
	if f.MinDim > 0 && haveDims {
		if width < f.MinDim || height < f.MinDim {
			return false, RejectTooSmallDimensions
		}
	}
	return true, ""
}
