package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/notekeeper/notes-api/internal/core/domain"
	"github.com/notekeeper/notes-api/internal/core/ports"
)

// AuthService implements registration, login, token minting and password
// change. Tokens are stateless HS256 JWTs carrying the owner email and an
// expiry; nothing is stored server-side, so there is no revocation.
type AuthService struct {
	repo       ports.UserRepository
	jwtSecret  string
	tokenTTL   time.Duration
	bcryptCost int
}

func NewAuthService(repo ports.UserRepository, jwtSecret string, tokenTTL time.Duration, bcryptCost int) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 12 * time.Hour
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL, bcryptCost: bcryptCost}
}

func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		// An unknown email reports the same error as a bad password so
		// the response does not reveal which accounts exist.
		if err == domain.ErrUserNotFound {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}

	return s.MintToken(user.Email)
}

// MintToken issues a signed, time-limited token for the given email.
func (s *AuthService) MintToken(email string) (string, error) {
	if email == "" {
		return "", domain.ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"email": email,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) ChangePassword(ctx context.Context, email, currentPassword, newPassword string) error {
	if newPassword == "" {
		return domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return err
	}

	// No new token is issued here; the caller re-authenticates.
	return s.repo.UpdatePassword(ctx, email, string(hash))
}
