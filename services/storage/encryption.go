package storage

import (
	"bytes"
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
)

// EncryptedStore encrypts attachments at rest with AES-256 GCM. The stored
// object is the nonce followed by the ciphertext. Files are buffered in
// memory, so callers must cap upload size.
type EncryptedStore struct {
	inner FileStore
	aead  cipher.AEAD
}

// NewEncryptedStore derives a 32-byte key from secret with SHA-256.
func NewEncryptedStore(inner FileStore, secret string) (*EncryptedStore, error) {
	if secret == "" {
		return nil, errors.New("encryption key is empty")
	}
	keyHash := sha256.Sum256([]byte(secret))

	block, err := aes.NewCipher(keyHash[:])
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return &EncryptedStore{inner: inner, aead: aead}, nil
}

func (s *EncryptedStore) Save(ctx context.Context, key string, r io.Reader) (Stored, error) {
	plaintext, err := io.ReadAll(r)
	if err != nil {
		return Stored{}, fmt.Errorf("failed to read file: %w", err)
	}
	sealed, err := s.seal(plaintext)
	if err != nil {
		return Stored{}, err
	}
	stored, err := s.inner.Save(ctx, key, bytes.NewReader(sealed))
	if err != nil {
		return Stored{}, err
	}
	// The provider URL would only ever serve ciphertext.
	stored.URL = ""
	return stored, nil
}

func (s *EncryptedStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	rc, err := s.inner.Open(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	sealed, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read encrypted file: %w", err)
	}
	plaintext, err := s.open(sealed)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(plaintext)), nil
}

func (s *EncryptedStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}

func (s *EncryptedStore) seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return s.aead.Seal(nonce, nonce, plaintext, nil), nil
}

func (s *EncryptedStore) open(sealed []byte) ([]byte, error) {
	size := s.aead.NonceSize()
	if len(sealed) < size {
		return nil, errors.New("encrypted file is truncated")
	}
	plaintext, err := s.aead.Open(nil, sealed[:size], sealed[size:], nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt file: %w", err)
	}
	return plaintext, nil
}
