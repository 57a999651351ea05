package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"blog-api/internal/domain"
	"blog-api/internal/repository"
)

const createPostsTable = `
CREATE TABLE IF NOT EXISTS posts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	content TEXT NOT NULL,
	author_id TEXT NOT NULL,
	category TEXT NOT NULL,
	tags TEXT NOT NULL DEFAULT '[]',
	is_published INTEGER NOT NULL DEFAULT 0,
	published_at DATETIME NULL,
	read_time INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_posts_author_id ON posts(author_id);
CREATE INDEX IF NOT EXISTS idx_posts_category ON posts(category);
`

type PostRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) repository.PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createPostsTable); err != nil {
		return fmt.Errorf("create posts table: %w", err)
	}
	return nil
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	post.CreatedAt = time.Now().UTC()

	tags, err := json.Marshal(post.Tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO posts (title, content, author_id, category, tags, is_published, published_at, read_time, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		post.Title,
		post.Content,
		post.AuthorID,
		post.Category,
		string(tags),
		post.IsPublished,
		nullTime(post.PublishedAt),
		post.ReadTime,
		post.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("post last insert id: %w", err)
	}
	post.ID = strconv.FormatInt(id, 10)
	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	numeric, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	row := r.db.QueryRowContext(ctx, `
SELECT id, title, content, author_id, category, tags, is_published, published_at, read_time, created_at
FROM posts
WHERE id = ?`,
		numeric,
	)
	return scanPost(row)
}

func (r *PostRepository) List(ctx context.Context, filter repository.PostFilter, page repository.Page) ([]domain.Post, int, error) {
	var (
		conditions []string
		args       []any
	)
	if filter.AuthorID != "" {
		conditions = append(conditions, "author_id = ?")
		args = append(args, filter.AuthorID)
	}
	if filter.Category != "" {
		conditions = append(conditions, "category = ?")
		args = append(args, filter.Category)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	query := `
SELECT id, title, content, author_id, category, tags, is_published, published_at, read_time, created_at
FROM posts` + where + `
ORDER BY id ASC`
	if page.Size > 0 {
		start, _ := page.Bounds(total)
		query += ` LIMIT ? OFFSET ?`
		args = append(args, page.Size, start)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, 0, err
		}
		posts = append(posts, *post)
	}
	return posts, total, rows.Err()
}

func scanPost(row interface {
	Scan(dest ...any) error
}) (*domain.Post, error) {
	var (
		post        domain.Post
		id          int64
		tags        string
		publishedAt sql.NullTime
	)
	if err := row.Scan(
		&id,
		&post.Title,
		&post.Content,
		&post.AuthorID,
		&post.Category,
		&tags,
		&post.IsPublished,
		&publishedAt,
		&post.ReadTime,
		&post.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan post: %w", err)
	}

	post.ID = strconv.FormatInt(id, 10)
	post.CreatedAt = post.CreatedAt.UTC()
	if err := json.Unmarshal([]byte(tags), &post.Tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}
	if publishedAt.Valid {
		t := publishedAt.Time.UTC()
		post.PublishedAt = &t
	}
	return &post, nil
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}
