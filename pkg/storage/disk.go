// Package storage persists uploaded files. The disk implementation stands
// in for the media host behind a narrow interface so registration can
// roll back an orphaned document when a later step fails.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Store is the upload backend contract consumed by the services.
type Store interface {
	// Save persists the uploaded file and returns the stored name.
	Save(file *multipart.FileHeader) (string, error)
	// Remove deletes a stored file. Removing a missing file is not an error.
	Remove(name string) error
	// Path resolves a stored name to an absolute path, failing if the
	// file does not exist.
	Path(name string) (string, error)
}

// DiskStore keeps uploads in a flat local directory with random names.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the uploads directory if needed.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create uploads dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Save streams the upload to disk under a random name, keeping the
// original extension. A partially written file is removed on error.
func (s *DiskStore) Save(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	name := uuid.NewString() + filepath.Ext(file.Filename)
	path := filepath.Join(s.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to close file: %w", err)
	}

	return name, nil
}

// Remove deletes a stored file by name. The name is flattened to its
// base so callers cannot escape the uploads directory.
func (s *DiskStore) Remove(name string) error {
	if name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, filepath.Base(name)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

// Path resolves a stored name to its on-disk location.
func (s *DiskStore) Path(name string) (string, error) {
	path := filepath.Join(s.dir, filepath.Base(name))
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("document not found: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("invalid document path")
	}
	return path, nil
}
