package mock

import "github.com/fwojciec/pincrawl"

var _ pincrawl.FileWriter = (*FileWriter)(nil)

// FileWriter is a mock implementation of pincrawl.FileWriter.
type FileWriter struct {
	WriteFn  func(name string, data []byte) (string, error)
	ExistsFn func(name string) bool
}

func (w *FileWriter) Write(name string, data []byte) (string, error) {
	return w.WriteFn(name, data)
}

func (w *FileWriter) Exists(name string) bool {
	if w.ExistsFn == nil {
		return false
	}
	return w.ExistsFn(name)
}
