package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
)

// Store persists uploaded media blobs addressed by a relative name.
type Store interface {
	Save(ctx context.Context, name string, r io.Reader, contentType string) (int64, error)
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Delete(ctx context.Context, name string) error
	URL(name string) string
}

// CleanName normalises a relative object name and keeps it inside the store root.
func CleanName(name string) (string, error) {
	name = strings.ReplaceAll(strings.TrimSpace(name), "\\", "/")
	cleaned := strings.TrimPrefix(path.Clean("/"+name), "/")
	if cleaned == "" || cleaned == "." {
		return "", fmt.Errorf("invalid object name %q", name)
	}
	return cleaned, nil
}
