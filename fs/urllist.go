package fs

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/pincrawl"
)

// WriteURLList saves the resolved URLs of all collected candidates to a
// plain text file, one per line, preceded by a comment header recording the
// run ID and timestamp. The list preserves discovery order.
func WriteURLList(path, runID string, candidates []pincrawl.ImageCandidate) error {
	var b strings.Builder
	b.WriteString("# run ")
	b.WriteString(runID)
	b.WriteString(" ")
	b.WriteString(time.Now().UTC().Format(time.RFC3339))
	b.WriteString("\n")
	for _, c := range candidates {
		b.WriteString(c.ResolvedURL)
		b.WriteString("\n")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(b.String()), 0644)
}
