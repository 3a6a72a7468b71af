package filestorage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/yigit/hogwarts/internal/pkg/logger"
)

// LocalStorage keeps files in a single directory on the local filesystem.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a LocalStorage rooted at basePath, creating it if needed.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{basePath: basePath}, nil
}

// Path returns the path of name inside the storage directory
func (ls *LocalStorage) Path(name string) string {
	return filepath.Join(ls.basePath, filepath.Base(name))
}

// WriteFile writes data to a temporary file and renames it over name,
// so readers see either the old or the new content.
func (ls *LocalStorage) WriteFile(name string, data []byte) (string, error) {
	base := filepath.Base(name)
	if base == "." || base == string(filepath.Separator) || strings.TrimSpace(base) == "" {
		return "", fmt.Errorf("invalid file name: %q", name)
	}

	// The directory may have been removed since startup
	if err := os.MkdirAll(ls.basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", ls.basePath).Msg("Failed to create storage directory")
		return "", fmt.Errorf("failed to create storage directory: %w", err)
	}

	dstPath := ls.Path(base)
	tmpPath := filepath.Join(ls.basePath, "."+uuid.New().String()+".tmp")

	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		logger.Error().Err(err).Str("path", tmpPath).Msg("Failed to write temporary file")
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	if err := os.Rename(tmpPath, dstPath); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to move file into place")
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	logger.Debug().Str("path", dstPath).Int("bytes", len(data)).Msg("File saved")
	return dstPath, nil
}

// ReadFile returns the content of path, ErrFileNotFound when it is gone
func (ls *LocalStorage) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrFileNotFound
		}
		logger.Error().Err(err).Str("path", path).Msg("Failed to read file")
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// DeleteFile removes path. Returns nil if the file does not exist.
func (ls *LocalStorage) DeleteFile(path string) error {
	if path == "" {
		return nil
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn().Str("path", path).Msg("File to delete does not exist")
			return nil
		}
		logger.Error().Err(err).Str("path", path).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", path).Msg("File deleted successfully")
	return nil
}
