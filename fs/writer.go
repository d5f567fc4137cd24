// Package fs provides file-based storage for downloaded images and URL
// manifests.
package fs

import (
	"os"
	"path/filepath"

	"github.com/fwojciec/pincrawl"
)

// Ensure Writer implements pincrawl.FileWriter at compile time.
var _ pincrawl.FileWriter = (*Writer)(nil)

// Writer writes image files into a single output directory. Names are
// produced by the download stage and contain no path separators, so writes
// never escape the base directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer rooted at the given directory. The
// directory is created on first write if it does not exist.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// Write stores data under name in the base directory and returns the full
// path of the written file.
func (w *Writer) Write(name string, data []byte) (string, error) {
	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(w.baseDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// Exists reports whether a file with the given name is already present.
func (w *Writer) Exists(name string) bool {
	_, err := os.Stat(filepath.Join(w.baseDir, name))
	return err == nil
}
