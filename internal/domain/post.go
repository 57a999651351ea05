package domain

import "time"

// PostCategories is the closed set of categories a post may carry.
var PostCategories = []string{"technology", "lifestyle", "business", "sports"}

// Post represents a blog post authored by a user.
type Post struct {
	ID          string
	Title       string
	Content     string
	AuthorID    string
	Category    string
	Tags        []string
	IsPublished bool
	PublishedAt *time.Time
	ReadTime    int
	CreatedAt   time.Time
}
