package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"identity-service/internal/auth"
	"identity-service/internal/domain"
	"identity-service/internal/repository"
)

var (
	// ErrInvalidCredentials indicates that provided login credentials are
	// incorrect. Unknown email and wrong password both map here so callers
	// cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserAlreadyExists is returned when registering a taken email or username.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrUserNotFound is returned for lookups of absent accounts.
	ErrUserNotFound = errors.New("user not found")
)

const (
	// DefaultListLimit bounds listings when the caller gives no limit.
	DefaultListLimit = 20
	maxListLimit     = 100
)

// RegisterInput carries registration fields that already passed field
// validation at the transport boundary.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Image    string
}

// UserService describes account lifecycle operations.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, offset, limit int64) ([]domain.User, error)
	SetImage(ctx context.Context, id int64, imageURL string) error
}

type userService struct {
	users  repository.UserRepository
	tokens *auth.TokenService
}

func NewUserService(users repository.UserRepository, tokens *auth.TokenService) UserService {
	return &userService{users: users, tokens: tokens}
}

// Register derives a username, hashes the password, and persists the
// account. The inputs are validated before this point; derivation and
// hashing happen strictly after validation so length checks always see the
// raw password.
func (s *userService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     DeriveUsername(name),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Image:        strings.TrimSpace(in.Image),
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "already exists") {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	return sanitizeUser(user), nil
}

// Login verifies the password for the account registered under email and
// issues a bearer token. An account with an empty stored hash can never
// authenticate.
func (s *userService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "not found") {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return sanitizeUser(user), token, nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "not found") {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "not found") {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) List(ctx context.Context, offset, limit int64) ([]domain.User, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	users, err := s.users.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

func (s *userService) SetImage(ctx context.Context, id int64, imageURL string) error {
	if err := s.users.UpdateImage(ctx, id, imageURL); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "not found") {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Name:      user.Name,
		Image:     user.Image,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
