package storage

import (
	"context"
	"errors"
	"time"

	reportapp "github.com/teakhata/backend/internal/application/report"
)

// StubObjectStorage is a placeholder implementation of ObjectStorage.
// Uploads are discarded and download links are fabricated. Use this for
// local development when no MinIO/S3 backend is running.
type StubObjectStorage struct {
	// BaseURL is the base URL for generated download URLs
	// Defaults to "https://storage.example.com" if not set
	BaseURL string
}

// NewStubObjectStorage creates a new StubObjectStorage
func NewStubObjectStorage() *StubObjectStorage {
	return &StubObjectStorage{
		BaseURL: "https://storage.example.com",
	}
}

// Ensure StubObjectStorage implements ObjectStorage
var _ reportapp.ObjectStorage = (*StubObjectStorage)(nil)

// Upload is a no-op stub that always succeeds
func (s *StubObjectStorage) Upload(ctx context.Context, storageKey string, data []byte, contentType string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}
	// No-op: In stub mode, the rendered file is discarded
	return nil
}

// GenerateDownloadURL generates a stub presigned URL for downloading a file
func (s *StubObjectStorage) GenerateDownloadURL(
	ctx context.Context,
	storageKey string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}

	expiresAt := time.Now().Add(expiresIn)
	url := s.BaseURL + "/download/" + storageKey + "?expires=" + expiresAt.Format(time.RFC3339)

	return url, expiresAt, nil
}
