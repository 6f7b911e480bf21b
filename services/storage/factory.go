package storage

import (
	"context"

	"go.uber.org/zap"

	"sahayata/config"
)

const remoteFolder = "sahayata/medical-records"

// NewFromConfig builds the attachment store selected by STORAGE_BACKEND,
// wrapped in EncryptedStore when ATTACHMENT_ENCRYPTION_KEY is set.
func NewFromConfig(ctx context.Context, cfg *config.Config, logger *zap.Logger) (FileStore, error) {
	var (
		store FileStore
		err   error
	)
	switch cfg.StorageBackend {
	case config.StorageCloudinary:
		store, err = NewCloudinaryStore(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, remoteFolder)
	case config.StorageGCS:
		store, err = NewGCSStore(ctx, cfg.FirebaseCredentialsFile, cfg.StorageBucket, remoteFolder)
	default:
		store, err = NewDiskStore(cfg.UploadDir)
	}
	if err != nil {
		return nil, err
	}

	if cfg.AttachmentEncryptionKey == "" {
		logger.Info("attachment storage ready", zap.String("backend", backendName(cfg)))
		return store, nil
	}
	if cfg.StorageBackend == config.StorageCloudinary {
		logger.Warn("ATTACHMENT_ENCRYPTION_KEY ignored: cloudinary files are served by the provider")
		return store, nil
	}
	encrypted, err := NewEncryptedStore(store, cfg.AttachmentEncryptionKey)
	if err != nil {
		return nil, err
	}
	logger.Info("attachment storage ready", zap.String("backend", backendName(cfg)), zap.Bool("encrypted", true))
	return encrypted, nil
}

func backendName(cfg *config.Config) string {
	if cfg.StorageBackend == "" {
		return config.StorageDisk
	}
	return cfg.StorageBackend
}
