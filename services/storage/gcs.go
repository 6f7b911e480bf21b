package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"path/filepath"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSStore keeps files as private objects in a Google Cloud Storage (Firebase
// Storage) bucket. Objects are read back through the application.
type GCSStore struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewGCSStore creates the client from a service account file, or from
// application default credentials when credentialsFile is empty.
func NewGCSStore(ctx context.Context, credentialsFile, bucket, prefix string) (*GCSStore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &GCSStore{client: client, bucket: bucket, prefix: prefix}, nil
}

func (s *GCSStore) object(key string) (*storage.ObjectHandle, error) {
	if !ValidKey(key) {
		return nil, ErrInvalidKey
	}
	return s.client.Bucket(s.bucket).Object(path.Join(s.prefix, key)), nil
}

func (s *GCSStore) Save(ctx context.Context, key string, r io.Reader) (Stored, error) {
	obj, err := s.object(key)
	if err != nil {
		return Stored{}, err
	}
	w := obj.If(storage.Conditions{DoesNotExist: true}).NewWriter(ctx)
	if ext := filepath.Ext(key); ext != "" {
		w.ObjectAttrs.ContentType = mime.TypeByExtension(ext)
	}

	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return Stored{}, fmt.Errorf("failed to copy file to storage: %w", err)
	}
	if err := w.Close(); err != nil {
		return Stored{}, fmt.Errorf("failed to close writer: %w", err)
	}
	return Stored{Key: key}, nil
}

func (s *GCSStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := s.object(key)
	if err != nil {
		return nil, err
	}
	r, err := obj.NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to open object: %w", err)
	}
	return r, nil
}

// Delete deletes an object from the bucket.
func (s *GCSStore) Delete(ctx context.Context, key string) error {
	obj, err := s.object(key)
	if err != nil {
		return err
	}
	if err := obj.Delete(ctx); err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *GCSStore) Close() error {
	return s.client.Close()
}
