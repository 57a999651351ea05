package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"blog-api/internal/apperr"
	"blog-api/internal/domain"
	"blog-api/internal/repository"
	"blog-api/internal/validation"
)

// UserService owns user credentials: registration, password verification,
// and reads.
type UserService interface {
	Register(ctx context.Context, name, email, password, role string) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, page repository.Page) ([]domain.User, int, error)
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) Register(ctx context.Context, name, email, password, role string) (*domain.User, error) {
	if err := validation.User(validation.NewUser{
		Name:     name,
		Email:    email,
		Password: password,
	}); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// role intentionally not validated against an enum; arbitrary strings
	// round-trip
	if role == "" {
		role = domain.RoleUser
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Status:       domain.StatusActive,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperr.New(apperr.KindConflict,
				"User already exists",
				"A user with this email address already exists")
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, apperr.Validation("Email and password are required")
	}

	invalid := apperr.New(apperr.KindUnauthorized,
		"Invalid credentials",
		"Email or password is incorrect")

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, invalid
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, invalid
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.KindNotFound,
				"User not found",
				"User with the specified ID does not exist")
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, page repository.Page) ([]domain.User, int, error) {
	return s.users.List(ctx, page)
}
