package pincrawl

// FileWriter persists accepted image bytes under an output directory.
// Implementations create the directory if absent.
type FileWriter interface {
	// Write stores data under the given file name and returns the full
	// path of the written file.
	Write(name string, data []byte) (path string, err error)

	// Exists reports whether a file with the given name is already
	// present, allowing re-runs to skip refetching.
	Exists(name string) bool
}
