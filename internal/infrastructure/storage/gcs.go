package storage

import (
	"context"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// NewGCSClient uses credsPath when set and Application Default Credentials otherwise.
func NewGCSClient(ctx context.Context, credsPath string) (*gcs.Client, error) {
	if credsPath == "" {
		return gcs.NewClient(ctx)
	}
	return gcs.NewClient(ctx, option.WithCredentialsFile(credsPath))
}

// GCS stores objects in one bucket. Objects are expected to be publicly
// readable through a bucket-level IAM policy.
type GCS struct {
	Client       *gcs.Client
	Bucket       string
	CacheControl string
}

func NewGCS(client *gcs.Client, bucket string) *GCS {
	return &GCS{Client: client, Bucket: bucket, CacheControl: "public, max-age=86400"}
}

func (g *GCS) Put(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	if g.Client == nil || g.Bucket == "" {
		return "", ErrNotConfigured
	}
	w := g.Client.Bucket(g.Bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = g.CacheControl
	w.ChunkSize = 0 // avatars are small; upload in one request
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("gcs write %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("gcs close %s: %w", key, err)
	}
	return gcsURL(g.Bucket, key), nil
}

func gcsURL(bucket, key string) string {
	return "https://storage.googleapis.com/" + bucket + "/" + key
}
