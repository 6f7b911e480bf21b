// Package storage keeps medical record attachments on local disk, in a
// Google Cloud Storage bucket, or on Cloudinary.
package storage

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("file not found")
	ErrInvalidKey = errors.New("invalid file key")
	// ErrNotServed is returned by Open on stores whose files are fetched
	// directly from the provider's URL.
	ErrNotServed = errors.New("file is served by the storage provider")
)

// Stored describes a saved file. URL is empty when the application serves
// the file itself through Open.
type Stored struct {
	Key string
	URL string
}

// FileStore defines the interface for attachment storage.
type FileStore interface {
	Save(ctx context.Context, key string, r io.Reader) (Stored, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// NewKey returns a fresh, unguessable key that keeps the original extension.
func NewKey(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !keyPattern.MatchString("x" + ext) {
		ext = ""
	}
	return uuid.New().String() + ext
}

// ValidKey rejects keys that could escape the storage namespace.
func ValidKey(key string) bool {
	return keyPattern.MatchString(key) && !strings.Contains(key, "..")
}
