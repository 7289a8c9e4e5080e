package ports

import (
	"context"

	"github.com/notekeeper/notes-api/internal/core/domain"
)

// UserRepository defines persistence for credential records.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// UpdatePassword replaces the stored hash for the given email.
	// Returns domain.ErrUserNotFound when no such user exists.
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}
