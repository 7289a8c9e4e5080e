package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/notekeeper/notes-api/internal/core/domain"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		copy.ID = user.Email
	}
	r.users[copy.Email] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, email, passwordHash string) error {
	u, ok := r.users[email]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, bcrypt.MinCost)

	user, err := svc.Register(context.Background(), "alice@example.com", "pass123")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user == nil {
		t.Fatalf("expected user, got nil")
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, bcrypt.MinCost)

	if _, err := svc.Register(context.Background(), "", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "bob@example.com", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for empty password, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, bcrypt.MinCost)

	_, _ = svc.Register(context.Background(), "bob@example.com", "pass")
	if _, err := svc.Register(context.Background(), "bob@example.com", "pass2"); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, bcrypt.MinCost)

	if _, err := svc.Register(context.Background(), "carol@example.com", "s3cret"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, err := svc.Login(context.Background(), "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["email"] != "carol@example.com" {
		t.Fatalf("expected email claim, got %v", claims["email"])
	}
	if _, ok := claims["exp"]; !ok {
		t.Fatalf("expected exp claim")
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, bcrypt.MinCost)

	_, _ = svc.Register(context.Background(), "dave@example.com", "goodpass")
	if _, err := svc.Login(context.Background(), "dave@example.com", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, bcrypt.MinCost)

	// An unknown account must look identical to a wrong password.
	if _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_MintToken(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), "secret", time.Hour, bcrypt.MinCost)

	token, err := svc.MintToken("erin@example.com")
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["email"] != "erin@example.com" {
		t.Fatalf("expected email claim, got %v", claims["email"])
	}

	if _, err := svc.MintToken(""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for empty email, got %v", err)
	}
}

func TestAuthService_ChangePassword_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, bcrypt.MinCost)

	_, _ = svc.Register(context.Background(), "frank@example.com", "oldpass")
	if err := svc.ChangePassword(context.Background(), "frank@example.com", "oldpass", "newpass"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	if _, err := svc.Login(context.Background(), "frank@example.com", "oldpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("old password should no longer work, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "frank@example.com", "newpass"); err != nil {
		t.Fatalf("new password should work: %v", err)
	}
}

func TestAuthService_ChangePassword_WrongCurrent(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, bcrypt.MinCost)

	_, _ = svc.Register(context.Background(), "grace@example.com", "oldpass")
	if err := svc.ChangePassword(context.Background(), "grace@example.com", "wrong", "newpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	// The failed attempt must leave the stored hash untouched.
	if _, err := svc.Login(context.Background(), "grace@example.com", "oldpass"); err != nil {
		t.Fatalf("old password should still work after failed change: %v", err)
	}
}

func TestAuthService_ChangePassword_UnknownUser(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), "secret", time.Hour, bcrypt.MinCost)

	if err := svc.ChangePassword(context.Background(), "ghost@example.com", "a", "b"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
