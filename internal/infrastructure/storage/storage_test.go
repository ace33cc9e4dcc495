package storage

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvatarKey(t *testing.T) {
	k := AvatarKey("u1", `C:\photos\Me.PNG`)
	assert.True(t, strings.HasPrefix(k, "avatars/u1/"), k)
	assert.True(t, strings.HasSuffix(k, ".png"), k)
	assert.NotEqual(t, k, AvatarKey("u1", "Me.PNG"))
}

func TestDisabledStorage(t *testing.T) {
	_, err := Disabled{}.Put(context.Background(), "k", "image/png", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestS3PutAgainstCompatibleEndpoint(t *testing.T) {
	var (
		mu      sync.Mutex
		gotPath string
		gotBody []byte
		gotType string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		gotPath = r.URL.Path
		gotType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("ETag", `"abc"`)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s, err := NewS3(context.Background(), S3Options{
		Region:    "us-east-1",
		Endpoint:  srv.URL,
		AccessKey: "minio",
		SecretKey: "minio123",
		Bucket:    "avatars",
	})
	require.NoError(t, err)

	url, err := s.Put(context.Background(), "avatars/u1/a.png", "image/png", bytes.NewReader([]byte("PNGDATA")))
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/avatars/avatars/u1/a.png", url)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "/avatars/avatars/u1/a.png", gotPath)
	assert.Equal(t, "image/png", gotType)
	assert.Contains(t, string(gotBody), "PNGDATA")
}

func TestS3URL(t *testing.T) {
	s := &S3{opts: S3Options{Bucket: "b", Region: "eu-west-1"}}
	assert.Equal(t, "https://b.s3.eu-west-1.amazonaws.com/k", s.URL("k"))
	s.opts.PublicURL = "https://cdn.example.com/"
	assert.Equal(t, "https://cdn.example.com/k", s.URL("k"))
}

func TestGCSRequiresClient(t *testing.T) {
	_, err := NewGCS(nil, "bucket").Put(context.Background(), "k", "image/png", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Equal(t, "https://storage.googleapis.com/b/avatars/u1/a.png", gcsURL("b", "avatars/u1/a.png"))
}
