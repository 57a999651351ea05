package repository

import (
	"context"

	"blog-api/internal/domain"
)

// FileRepository records metadata for uploaded binaries. Ids are time-based
// and assigned by the caller, not the store.
type FileRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, file *domain.UploadedFile) error
	GetByID(ctx context.Context, id string) (*domain.UploadedFile, error)
	GetByFilename(ctx context.Context, filename string) (*domain.UploadedFile, error)
	List(ctx context.Context, page Page) ([]domain.UploadedFile, int, error)
}
