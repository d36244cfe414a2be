package repository

import (
	"context"

	"identity-service/internal/domain"
)

// UserRepository defines persistence operations for User entities.
// List returns previews: the password hash column is never scanned.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) (int64, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context, offset, limit int64) ([]domain.User, error)
	UpdateImage(ctx context.Context, id int64, imageURL string) error
}
