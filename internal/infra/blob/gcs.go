package blob

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"

	"docvault/internal/domain"
)

// GCSStore keeps blobs as objects in a Google Cloud Storage bucket.
type GCSStore struct {
	bucket *storage.BucketHandle
}

func NewGCSStore(ctx context.Context, bucketName string) (*GCSStore, error) {
	if bucketName == "" {
		return nil, fmt.Errorf("%w: gcs bucket is required", domain.ErrInvalid)
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: gcs client: %v", domain.ErrIO, err)
	}
	return &GCSStore{bucket: client.Bucket(bucketName)}, nil
}

func (s *GCSStore) Retrieve(ctx context.Context, key string) (io.ReadCloser, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: blob key is required", domain.ErrInvalid)
	}
	r, err := s.bucket.Object(key).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: retrieve %s: %v", domain.ErrIO, key, err)
	}
	return r, nil
}

// Store writes the object only if it does not already exist, so a blob key
// can never be silently overwritten.
func (s *GCSStore) Store(ctx context.Context, key string, r io.Reader) (string, error) {
	if key == "" {
		return "", fmt.Errorf("%w: blob key is required", domain.ErrInvalid)
	}
	w := s.bucket.Object(key).If(storage.Conditions{DoesNotExist: true}).NewWriter(ctx)
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", storeError(key, err)
	}
	if err := w.Close(); err != nil {
		return "", storeError(key, err)
	}
	return key, nil
}

func storeError(key string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == 412 {
		return fmt.Errorf("%w: blob %s already exists", domain.ErrConflict, key)
	}
	return fmt.Errorf("%w: store %s: %v", domain.ErrIO, key, err)
}
