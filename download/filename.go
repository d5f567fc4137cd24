package download

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/pincrawl"
)

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// Filename derives a stable, collision-free file name for a candidate. It
// combines the discovery index (preserving page order in directory listings)
// with a digest of the resolved URL. The extension comes from the URL path,
// corrected to .webp when the server reports a WebP content type.
func Filename(c pincrawl.ImageCandidate, contentType string) string {
	ext := extFromURL(c.ResolvedURL)
	if strings.Contains(strings.ToLower(contentType), "image/webp") {
		ext = ".webp"
	}
	return fmt.Sprintf("%04d_%016x%s", c.Index, xxhash.Sum64String(c.ResolvedURL), ext)
}

func extFromURL(raw string) string {
	p := raw
	if u, err := url.Parse(raw); err == nil {
		p = u.Path
	}
	ext := strings.ToLower(path.Ext(p))
	if !imageExts[ext] {
		return ".jpg"
	}
	return ext
}
