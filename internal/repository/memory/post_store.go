package memory

import (
	"context"
	"strconv"
	"sync"
	"time"

	"blog-api/internal/domain"
	"blog-api/internal/repository"
)

type PostStore struct {
	mu    sync.Mutex
	seq   int64
	posts []domain.Post
	byID  map[string]int
}

func NewPostStore() *PostStore {
	return &PostStore{byID: make(map[string]int)}
}

func (s *PostStore) Init(ctx context.Context) error {
	return nil
}

func (s *PostStore) Create(ctx context.Context, post *domain.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	post.ID = strconv.FormatInt(s.seq, 10)
	post.CreatedAt = time.Now().UTC()

	s.byID[post.ID] = len(s.posts)
	s.posts = append(s.posts, copyPost(*post))
	return nil
}

func (s *PostStore) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	post := copyPost(s.posts[idx])
	return &post, nil
}

func (s *PostStore) List(ctx context.Context, filter repository.PostFilter, page repository.Page) ([]domain.Post, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []domain.Post
	for i := range s.posts {
		if filter.AuthorID != "" && s.posts[i].AuthorID != filter.AuthorID {
			continue
		}
		if filter.Category != "" && s.posts[i].Category != filter.Category {
			continue
		}
		matched = append(matched, s.posts[i])
	}

	total := len(matched)
	start, end := page.Bounds(total)
	out := make([]domain.Post, 0, end-start)
	for _, post := range matched[start:end] {
		out = append(out, copyPost(post))
	}
	return out, total, nil
}

// copyPost deep-copies the fields a caller could otherwise reach back into.
// An empty tag slice stays empty rather than collapsing to nil, so posts
// created without tags keep serializing as "tags": [].
func copyPost(post domain.Post) domain.Post {
	if post.Tags != nil {
		post.Tags = append(make([]string, 0, len(post.Tags)), post.Tags...)
	}
	if post.PublishedAt != nil {
		published := *post.PublishedAt
		post.PublishedAt = &published
	}
	return post
}

var _ repository.PostRepository = (*PostStore)(nil)
