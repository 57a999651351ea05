// Package memory provides the default Collection Store backend:
// mutex-guarded, insertion-ordered tables with per-table id counters.
// Entities are copied on the way in and out so callers can never mutate
// stored state out-of-band.
package memory

import (
	"context"
	"strconv"
	"sync"
	"time"

	"blog-api/internal/domain"
	"blog-api/internal/repository"
)

type UserStore struct {
	mu      sync.Mutex
	seq     int64
	users   []domain.User
	byID    map[string]int
	byEmail map[string]int
}

func NewUserStore() *UserStore {
	return &UserStore{
		byID:    make(map[string]int),
		byEmail: make(map[string]int),
	}
}

func (s *UserStore) Init(ctx context.Context) error {
	return nil
}

func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[user.Email]; exists {
		return repository.ErrDuplicateEmail
	}

	s.seq++
	user.ID = strconv.FormatInt(s.seq, 10)
	user.CreatedAt = time.Now().UTC()

	s.byID[user.ID] = len(s.users)
	s.byEmail[user.Email] = len(s.users)
	s.users = append(s.users, *user)
	return nil
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	user := s.users[idx]
	return &user, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	user := s.users[idx]
	return &user, nil
}

func (s *UserStore) List(ctx context.Context, page repository.Page) ([]domain.User, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := len(s.users)
	start, end := page.Bounds(total)
	out := make([]domain.User, end-start)
	copy(out, s.users[start:end])
	return out, total, nil
}

var _ repository.UserRepository = (*UserStore)(nil)
