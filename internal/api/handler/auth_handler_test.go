package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/notekeeper/notes-api/internal/core/domain"
)

type stubAuthService struct {
	registerFn       func(ctx context.Context, email, password string) (*domain.User, error)
	loginFn          func(ctx context.Context, email, password string) (string, error)
	mintTokenFn      func(email string) (string, error)
	changePasswordFn func(ctx context.Context, email, currentPassword, newPassword string) error
}

func (s *stubAuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	return s.registerFn(ctx, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) MintToken(email string) (string, error) {
	return s.mintTokenFn(email)
}

func (s *stubAuthService) ChangePassword(ctx context.Context, email, currentPassword, newPassword string) error {
	return s.changePasswordFn(ctx, email, currentPassword, newPassword)
}

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func httpErrorCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected echo.HTTPError, got %v", err)
	}
	return he.Code
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, email, password string) (*domain.User, error) {
			if email != "alice@example.com" || password != "secret1" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return &domain.User{Email: email, CreatedAt: time.Now().UTC()}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/auth/register", `{"email":"alice@example.com","password":"secret1"}`)
	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["email"] != "alice@example.com" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, email, password string) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/auth/register", `{"email":"bob@example.com","password":"secret1"}`)
	err := handler.Register(c)
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Register_InvalidEmail(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, email, password string) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/auth/register", `{"email":"not-an-email","password":"secret1"}`)
	if code := httpErrorCode(t, handler.Register(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestAuthHandler_Register_ShortPassword(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, email, password string) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/auth/register", `{"email":"a@example.com","password":"abc"}`)
	if code := httpErrorCode(t, handler.Register(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, error) {
			if email != "alice@example.com" || password != "secret1" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return "token123", nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"secret1"}`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, error) {
			return "", domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"badpass"}`)
	if err := handler.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_MintToken(t *testing.T) {
	stub := &stubAuthService{
		mintTokenFn: func(email string) (string, error) {
			if email != "alice@example.com" {
				t.Fatalf("unexpected email: %s", email)
			}
			return "minted", nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/auth/token", `{"email":"alice@example.com"}`)
	if err := handler.MintToken(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "minted" {
		t.Fatalf("expected minted token, got %v", resp["token"])
	}
}

func TestAuthHandler_ChangePassword_UsesTokenIdentity(t *testing.T) {
	stub := &stubAuthService{
		changePasswordFn: func(ctx context.Context, email, currentPassword, newPassword string) error {
			if email != "alice@example.com" {
				t.Fatalf("expected identity from context, got %s", email)
			}
			if currentPassword != "oldpass" || newPassword != "newpass" {
				t.Fatalf("unexpected passwords: %s %s", currentPassword, newPassword)
			}
			return nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/auth/change-password", `{"current_password":"oldpass","new_password":"newpass"}`)
	c.Set("email", "alice@example.com")

	if err := handler.ChangePassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_ChangePassword_NoIdentity(t *testing.T) {
	stub := &stubAuthService{
		changePasswordFn: func(ctx context.Context, email, currentPassword, newPassword string) error {
			t.Fatalf("should not be called")
			return nil
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/auth/change-password", `{"current_password":"a","new_password":"newpass"}`)
	if code := httpErrorCode(t, handler.ChangePassword(c)); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}
