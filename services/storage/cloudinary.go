package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStore uploads attachments as raw assets. Clients download them
// from the returned secure URL.
type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStore(cloudName, apiKey, apiSecret, folder string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryStore{cld: cld, folder: folder}, nil
}

func (s *CloudinaryStore) publicID(key string) string {
	if s.folder == "" {
		return key
	}
	return s.folder + "/" + key
}

func (s *CloudinaryStore) Save(ctx context.Context, key string, r io.Reader) (Stored, error) {
	if !ValidKey(key) {
		return Stored{}, ErrInvalidKey
	}
	resp, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		PublicID:     s.publicID(key),
		ResourceType: "raw",
	})
	if err != nil {
		return Stored{}, fmt.Errorf("cloudinary upload failed: %w", err)
	}
	if resp.Error.Message != "" {
		return Stored{}, fmt.Errorf("cloudinary upload failed: %s", resp.Error.Message)
	}
	if resp.SecureURL == "" {
		return Stored{}, fmt.Errorf("cloudinary upload returned no URL")
	}
	return Stored{Key: key, URL: resp.SecureURL}, nil
}

func (s *CloudinaryStore) Open(context.Context, string) (io.ReadCloser, error) {
	return nil, ErrNotServed
}

func (s *CloudinaryStore) Delete(ctx context.Context, key string) error {
	if !ValidKey(key) {
		return ErrInvalidKey
	}
	resp, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     s.publicID(key),
		ResourceType: "raw",
	})
	if err != nil {
		return fmt.Errorf("cloudinary delete failed: %w", err)
	}
	if resp.Error.Message != "" {
		return fmt.Errorf("cloudinary delete failed: %s", resp.Error.Message)
	}
	return nil
}
