package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
)

// GCSStorage keeps uploads in a Google Cloud Storage bucket.
type GCSStorage struct {
	client *gcs.Client
	bucket string
}

// NewGCSStorage builds a bucket-backed store using application default credentials.
func NewGCSStorage(ctx context.Context, bucket string) (*GCSStorage, error) {
	if bucket == "" {
		return nil, fmt.Errorf("gcs bucket is required")
	}
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}
	return &GCSStorage{client: client, bucket: bucket}, nil
}

// Save streams the reader into a new object.
func (s *GCSStorage) Save(ctx context.Context, name string, r io.Reader, contentType string) (int64, error) {
	object, err := CleanName(name)
	if err != nil {
		return 0, err
	}
	w := s.client.Bucket(s.bucket).Object(object).NewWriter(ctx)
	w.ContentType = contentType
	written, err := io.Copy(w, r)
	if err != nil {
		_ = w.Close()
		return 0, fmt.Errorf("write gcs object: %w", err)
	}
	if err := w.Close(); err != nil {
		return 0, fmt.Errorf("finalize gcs object: %w", err)
	}
	return written, nil
}

// Open returns a reader for the object.
func (s *GCSStorage) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	object, err := CleanName(name)
	if err != nil {
		return nil, err
	}
	reader, err := s.client.Bucket(s.bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("open gcs object: %w", err)
	}
	return reader, nil
}

// Delete removes the object. Objects already gone are not an error.
func (s *GCSStorage) Delete(ctx context.Context, name string) error {
	object, err := CleanName(name)
	if err != nil {
		return err
	}
	if err := s.client.Bucket(s.bucket).Object(object).Delete(ctx); err != nil && !errors.Is(err, gcs.ErrObjectNotExist) {
		return fmt.Errorf("delete gcs object: %w", err)
	}
	return nil
}

// URL builds the public object URL.
func (s *GCSStorage) URL(name string) string {
	object, err := CleanName(name)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, object)
}

// Close releases the underlying client.
func (s *GCSStorage) Close() error {
	return s.client.Close()
}
