package storage

import (
	"context"
	"io"
	"path/filepath"
	"strings"
)

// Store persists uploaded post images and returns the path recorded on
// the post.
type Store interface {
	Save(ctx context.Context, r io.Reader, filename, contentType string) (string, error)
	Remove(ctx context.Context, path string) error
}

var allowedExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true,
	".gif": true, ".webp": true,
}

// AllowedImage reports whether the uploaded filename has an accepted
// image extension.
func AllowedImage(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}
