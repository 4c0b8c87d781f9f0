package storage

import (
	"context"
	"io"
)

// Storage holds uploaded transcript files between the upload request and
// the import worker that parses them.
type Storage interface {
	Upload(ctx context.Context, key string, data io.Reader) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}
