package repository

import (
	"context"

	"blog-api/internal/domain"
)

// PostRepository defines persistence operations for Post entities. List
// returns the page slice plus the filtered total before slicing.
type PostRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id string) (*domain.Post, error)
	List(ctx context.Context, filter PostFilter, page Page) ([]domain.Post, int, error)
}
