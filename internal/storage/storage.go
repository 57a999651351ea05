package storage

import (
	"context"
	"io"
)

// Service persists uploaded binary content under a stored filename and
// streams it back on request. Implementations: local disk and Amazon S3.
type Service interface {
	Save(ctx context.Context, filename string, content io.Reader, size int64, contentType string) error
	Open(ctx context.Context, filename string) (io.ReadCloser, error)
}
