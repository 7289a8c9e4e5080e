package ports

import (
	"context"

	"github.com/notekeeper/notes-api/internal/core/domain"
)

// AuthService defines the credential and token operations.
type AuthService interface {
	Register(ctx context.Context, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	// MintToken issues a token for an already-established identity,
	// mirroring the login flow driven by an external identity provider.
	MintToken(email string) (string, error)
	ChangePassword(ctx context.Context, email, currentPassword, newPassword string) error
}
