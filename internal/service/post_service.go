package service

import (
	"context"
	"strings"
	"time"

	"blog-api/internal/domain"
	"blog-api/internal/repository"
	"blog-api/internal/validation"
)

// CreatePostInput carries the client-supplied fields of a new post. The
// author is never taken from the body; it comes from the verified claims.
type CreatePostInput struct {
	Title       string
	Content     string
	Category    string
	Tags        []string
	IsPublished bool
}

type PostService interface {
	Create(ctx context.Context, authorID string, in CreatePostInput) (*domain.Post, error)
	List(ctx context.Context, filter repository.PostFilter, page repository.Page) ([]domain.Post, int, error)
}

type postService struct {
	posts repository.PostRepository
}

func NewPostService(posts repository.PostRepository) PostService {
	return &postService{posts: posts}
}

func (s *postService) Create(ctx context.Context, authorID string, in CreatePostInput) (*domain.Post, error) {
	if err := validation.Post(validation.NewPost{
		Title:    in.Title,
		Content:  in.Content,
		Category: in.Category,
	}); err != nil {
		return nil, err
	}

	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	post := &domain.Post{
		Title:       in.Title,
		Content:     in.Content,
		AuthorID:    authorID,
		Category:    in.Category,
		Tags:        tags,
		IsPublished: in.IsPublished,
		ReadTime:    estimateReadTime(in.Content),
	}
	if in.IsPublished {
		now := time.Now().UTC()
		post.PublishedAt = &now
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) List(ctx context.Context, filter repository.PostFilter, page repository.Page) ([]domain.Post, int, error) {
	return s.posts.List(ctx, filter, page)
}

// estimateReadTime is the ceiling of the space-separated word count over a
// 200 words-per-minute reading speed.
func estimateReadTime(content string) int {
	words := len(strings.Split(content, " "))
	return (words + 199) / 200
}
