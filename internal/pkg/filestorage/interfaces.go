package filestorage

import "errors"

// ErrFileNotFound is returned when a stored path no longer exists on disk
var ErrFileNotFound = errors.New("file not found")

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// Path returns where a file called name lives in the storage
	Path(name string) string

	// WriteFile atomically creates or replaces name and returns its path
	WriteFile(name string, data []byte) (string, error)

	// ReadFile returns the content stored at path
	ReadFile(path string) ([]byte, error)

	// DeleteFile removes path. Missing files are not an error.
	DeleteFile(path string) error
}
