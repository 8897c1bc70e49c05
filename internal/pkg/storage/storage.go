package storage

import (
	"context"
	"errors"
	"io"
)

var ErrInvalidPath = errors.New("invalid file path")

// FileStorage keeps uploaded documents under slash-separated keys.
type FileStorage interface {
	// Save writes the content under key and returns the stored key.
	Save(ctx context.Context, key string, content io.Reader, contentType string) (string, error)

	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the file. Deleting a missing file is not an error.
	Delete(ctx context.Context, key string) error

	// URL returns the public address of key.
	URL(key string) string
}
