package storage

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/memari-majid/paperwatch/pkg/domain/interfaces"
)

type gcsStore struct {
	client *storage.Client
	bucket string
}

// NewGCS creates an artifact store backed by Google Cloud Storage. It uses
// Application Default Credentials.
func NewGCS(ctx context.Context, bucket string) (interfaces.ArtifactStore, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GCS client")
	}

	return &gcsStore{client: client, bucket: bucket}, nil
}

// Upload stores data under key and returns a gs:// locator
func (s *gcsStore) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", goerr.Wrap(err, "failed to write GCS object",
			goerr.V("bucket", s.bucket), goerr.V("key", key))
	}
	if err := w.Close(); err != nil {
		return "", goerr.Wrap(err, "failed to finalize GCS object",
			goerr.V("bucket", s.bucket), goerr.V("key", key))
	}

	return fmt.Sprintf("gs://%s/%s", s.bucket, key), nil
}
