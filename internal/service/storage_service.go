package service

import (
	"context"
	"errors"
	"io"
	"path"

	"pdf-fusion/internal/domain"

	storage_go "github.com/supabase-community/storage-go"
)

const mergedPrefix = "merged"

// ObjectStorage is the subset of the Supabase storage client used to publish
// outputs.
type ObjectStorage interface {
	UploadFile(bucketId string, relativePath string, data io.Reader, fileOptions ...storage_go.FileOptions) (storage_go.FileUploadResponse, error)
}

// StorageService publishes merged documents to a Supabase storage bucket.
type StorageService struct {
	storage func() ObjectStorage
	bucket  string
	logger  domain.Logger
}

// NewStorageService creates a publisher. storage is resolved on every call so
// the client can be initialized after the service is wired.
func NewStorageService(storage func() ObjectStorage, bucket string, logger domain.Logger) *StorageService {
	return &StorageService{
		storage: storage,
		bucket:  bucket,
		logger:  logger,
	}
}

// Publish uploads r as merged/<name>, replacing any previous upload, and
// returns the bucket-relative location.
func (s *StorageService) Publish(ctx context.Context, name string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := s.storage()
	if client == nil {
		return "", errors.New("storage client not initialized")
	}

	objectPath := path.Join(mergedPrefix, name)
	contentType := "application/pdf"
	upsert := true

	_, err := client.UploadFile(s.bucket, objectPath, r, storage_go.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", err
	}

	location := s.bucket + "/" + objectPath
	s.logger.Info("Merged document published", "location", location)
	return location, nil
}
