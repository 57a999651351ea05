// Package validation holds the per-resource rule sets applied before any
// collection mutation. Rules run in a fixed order: the required-field check
// aggregates every missing field, later length and enum checks stop at the
// first failure.
package validation

import (
	"strings"

	"blog-api/internal/apperr"
	"blog-api/internal/domain"
)

// NewUser is the payload validated before user creation.
type NewUser struct {
	Name     string
	Email    string
	Password string
}

// NewPost is the payload validated before post creation.
type NewPost struct {
	Title    string
	Content  string
	Category string
}

// User enforces the user-creation rule set. A nil result means the payload
// may be stored.
func User(in NewUser) *apperr.Error {
	details := map[string]string{}
	if in.Name == "" {
		details["name"] = "Name is required"
	}
	if in.Email == "" {
		details["email"] = "Email is required"
	}
	if in.Password == "" {
		details["password"] = "Password is required"
	}
	if len(details) > 0 {
		return apperr.ValidationDetails("Name, email, and password are required", details)
	}

	if len(in.Name) < 2 || len(in.Name) > 100 {
		return apperr.Validation("Name must be between 2 and 100 characters")
	}
	if len(in.Password) < 8 {
		return apperr.Validation("Password must be at least 8 characters long")
	}
	return nil
}

// Post enforces the post-creation rule set.
func Post(in NewPost) *apperr.Error {
	if in.Title == "" || in.Content == "" || in.Category == "" {
		return apperr.Validation("Title, content, and category are required")
	}
	if len(in.Title) < 5 || len(in.Title) > 200 {
		return apperr.Validation("Title must be between 5 and 200 characters")
	}
	if len(in.Content) < 10 {
		return apperr.Validation("Content must be at least 10 characters long")
	}
	if !validCategory(in.Category) {
		return apperr.Validation("Invalid category. Must be one of: " + strings.Join(domain.PostCategories, ", "))
	}
	return nil
}

func validCategory(category string) bool {
	for _, c := range domain.PostCategories {
		if c == category {
			return true
		}
	}
	return false
}
