package memory

import (
	"context"
	"sync"

	"blog-api/internal/domain"
	"blog-api/internal/repository"
)

type FileStore struct {
	mu         sync.Mutex
	files      []domain.UploadedFile
	byID       map[string]int
	byFilename map[string]int
}

func NewFileStore() *FileStore {
	return &FileStore{
		byID:       make(map[string]int),
		byFilename: make(map[string]int),
	}
}

func (s *FileStore) Init(ctx context.Context) error {
	return nil
}

func (s *FileStore) Create(ctx context.Context, file *domain.UploadedFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byID[file.ID] = len(s.files)
	s.byFilename[file.Filename] = len(s.files)
	s.files = append(s.files, copyFile(*file))
	return nil
}

func (s *FileStore) GetByID(ctx context.Context, id string) (*domain.UploadedFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	file := copyFile(s.files[idx])
	return &file, nil
}

func (s *FileStore) GetByFilename(ctx context.Context, filename string) (*domain.UploadedFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.byFilename[filename]
	if !ok {
		return nil, repository.ErrNotFound
	}
	file := copyFile(s.files[idx])
	return &file, nil
}

func (s *FileStore) List(ctx context.Context, page repository.Page) ([]domain.UploadedFile, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := len(s.files)
	start, end := page.Bounds(total)
	out := make([]domain.UploadedFile, 0, end-start)
	for _, file := range s.files[start:end] {
		out = append(out, copyFile(file))
	}
	return out, total, nil
}

func copyFile(file domain.UploadedFile) domain.UploadedFile {
	if file.Description != nil {
		description := *file.Description
		file.Description = &description
	}
	return file
}

var _ repository.FileRepository = (*FileStore)(nil)
