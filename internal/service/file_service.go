package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"blog-api/internal/apperr"
	"blog-api/internal/domain"
	"blog-api/internal/repository"
	"blog-api/internal/storage"
)

// SaveFileInput describes one uploaded binary part.
type SaveFileInput struct {
	OriginalName string
	Size         int64
	ContentType  string
	Description  *string
	Content      io.Reader
}

// FileService stores uploaded binaries in the blob store and records their
// metadata.
type FileService interface {
	Save(ctx context.Context, publicBase string, in SaveFileInput) (*domain.UploadedFile, error)
	Open(ctx context.Context, filename string) (*domain.UploadedFile, io.ReadCloser, error)
}

type fileService struct {
	files repository.FileRepository
	blobs storage.Service
}

func NewFileService(files repository.FileRepository, blobs storage.Service) FileService {
	return &fileService{files: files, blobs: blobs}
}

func (s *fileService) Save(ctx context.Context, publicBase string, in SaveFileInput) (*domain.UploadedFile, error) {
	now := time.Now().UTC()
	filename := storedFilename(in.OriginalName, now)

	if err := s.blobs.Save(ctx, filename, in.Content, in.Size, in.ContentType); err != nil {
		return nil, fmt.Errorf("store blob: %w", err)
	}

	file := &domain.UploadedFile{
		ID:          fmt.Sprintf("file_%d", now.UnixMilli()),
		Filename:    filename,
		URL:         fmt.Sprintf("%s/uploads/%s", strings.TrimSuffix(publicBase, "/"), filename),
		Size:        in.Size,
		MimeType:    in.ContentType,
		Description: in.Description,
		UploadedAt:  now,
	}

	if err := s.files.Create(ctx, file); err != nil {
		return nil, err
	}
	return file, nil
}

func (s *fileService) Open(ctx context.Context, filename string) (*domain.UploadedFile, io.ReadCloser, error) {
	file, err := s.files.GetByFilename(ctx, filename)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, apperr.New(apperr.KindNotFound,
				"Not found",
				"The requested file does not exist")
		}
		return nil, nil, err
	}

	content, err := s.blobs.Open(ctx, file.Filename)
	if err != nil {
		return nil, nil, fmt.Errorf("open blob: %w", err)
	}
	return file, content, nil
}

// storedFilename derives a collision-resistant name from the upload instant,
// a random suffix, and the original extension.
func storedFilename(originalName string, now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("file-%d-%s%s", now.UnixMilli(), suffix, ext)
}
