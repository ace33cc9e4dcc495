// Package storage uploads profile images to an object store.
package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// ErrNotConfigured is returned when no object store is set up.
var ErrNotConfigured = errors.New("object storage not configured")

// ObjectStorage stores an object and returns its public URL.
type ObjectStorage interface {
	Put(ctx context.Context, key, contentType string, r io.Reader) (string, error)
}

// AvatarKey builds avatars/<userID>/<uuid><ext> keeping only the lower-cased extension of filename.
func AvatarKey(userID, filename string) string {
	ext := strings.ToLower(path.Ext(strings.ReplaceAll(filename, "\\", "/")))
	return path.Join("avatars", userID, uuid.NewString()+ext)
}

// Disabled is used when STORAGE_DRIVER=none.
type Disabled struct{}

func (Disabled) Put(context.Context, string, string, io.Reader) (string, error) {
	return "", ErrNotConfigured
}
