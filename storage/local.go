// Package storage keeps interview artifacts on the local filesystem until
// they are delivered and cleaned up.
package storage

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/lithammer/shortuuid/v4"
	"github.com/pkg/errors"
)

// LocalStore writes files under a root directory, one subdirectory per
// category.
type LocalStore struct {
	root string
}

// NewLocal creates a store rooted at dir, creating it if needed.
func NewLocal(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, errors.Wrapf(err, "failed to create storage directory %s", dir)
	}
	return &LocalStore{root: dir}, nil
}

// Store writes data into the category subdirectory under a generated name
// and returns the file path.
func (s *LocalStore) Store(ctx context.Context, data []byte, category string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	category = sanitizeCategory(category)
	dir := filepath.Join(s.root, category)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", errors.Wrapf(err, "failed to create category directory %s", dir)
	}

	path := filepath.Join(dir, shortuuid.New()+extensionFor(data))
	if err := os.WriteFile(path, data, 0640); err != nil {
		return "", errors.Wrapf(err, "failed to write file %s", path)
	}
	return path, nil
}

// Delete removes a stored file. Missing files are not an error since cleanup
// may run more than once.
func (s *LocalStore) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "failed to delete file %s", path)
	}
	return nil
}

func sanitizeCategory(category string) string {
	category = strings.TrimSpace(category)
	category = filepath.Base(category)
	if category == "" || category == "." || category == string(filepath.Separator) {
		return "misc"
	}
	return category
}

func extensionFor(data []byte) string {
	switch http.DetectContentType(data) {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "application/pdf":
		return ".pdf"
	default:
		return ".bin"
	}
}
