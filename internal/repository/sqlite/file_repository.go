package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"blog-api/internal/domain"
	"blog-api/internal/repository"
)

const createFilesTable = `
CREATE TABLE IF NOT EXISTS files (
	id TEXT PRIMARY KEY,
	filename TEXT NOT NULL UNIQUE,
	url TEXT NOT NULL,
	size INTEGER NOT NULL,
	mime_type TEXT NOT NULL,
	description TEXT NULL,
	uploaded_at DATETIME NOT NULL
);
`

type FileRepository struct {
	db *sql.DB
}

func NewFileRepository(db *sql.DB) repository.FileRepository {
	return &FileRepository{db: db}
}

func (r *FileRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createFilesTable); err != nil {
		return fmt.Errorf("create files table: %w", err)
	}
	return nil
}

func (r *FileRepository) Create(ctx context.Context, file *domain.UploadedFile) error {
	var description any
	if file.Description != nil {
		description = *file.Description
	}
	if _, err := r.db.ExecContext(ctx, `
INSERT INTO files (id, filename, url, size, mime_type, description, uploaded_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		file.ID,
		file.Filename,
		file.URL,
		file.Size,
		file.MimeType,
		description,
		file.UploadedAt,
	); err != nil {
		return fmt.Errorf("insert file: %w", err)
	}
	return nil
}

func (r *FileRepository) GetByID(ctx context.Context, id string) (*domain.UploadedFile, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, filename, url, size, mime_type, description, uploaded_at
FROM files
WHERE id = ?`,
		id,
	)
	return scanFile(row)
}

func (r *FileRepository) GetByFilename(ctx context.Context, filename string) (*domain.UploadedFile, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, filename, url, size, mime_type, description, uploaded_at
FROM files
WHERE filename = ?`,
		filename,
	)
	return scanFile(row)
}

func (r *FileRepository) List(ctx context.Context, page repository.Page) ([]domain.UploadedFile, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM files`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count files: %w", err)
	}

	query := `
SELECT id, filename, url, size, mime_type, description, uploaded_at
FROM files
ORDER BY uploaded_at ASC`
	args := []any{}
	if page.Size > 0 {
		start, _ := page.Bounds(total)
		query += ` LIMIT ? OFFSET ?`
		args = append(args, page.Size, start)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query files: %w", err)
	}
	defer rows.Close()

	var files []domain.UploadedFile
	for rows.Next() {
		file, err := scanFile(rows)
		if err != nil {
			return nil, 0, err
		}
		files = append(files, *file)
	}
	return files, total, rows.Err()
}

func scanFile(row interface {
	Scan(dest ...any) error
}) (*domain.UploadedFile, error) {
	var (
		file        domain.UploadedFile
		description sql.NullString
	)
	if err := row.Scan(
		&file.ID,
		&file.Filename,
		&file.URL,
		&file.Size,
		&file.MimeType,
		&description,
		&file.UploadedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan file: %w", err)
	}
	file.UploadedAt = file.UploadedAt.UTC()
	if description.Valid {
		file.Description = &description.String
	}
	return &file, nil
}
