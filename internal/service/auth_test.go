package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"docvault/internal/auth"
	memoryrepo "docvault/internal/repository/memory"
	"docvault/internal/service"
	apperrors "docvault/pkg/errors"
)

const testJWTSecret = "0123456789abcdefghijklmnopqrstuvwxyzABCDEF"

func newAuthService(t *testing.T) *service.AuthService {
	t.Helper()
	jwtService := auth.NewJWTService(testJWTSecret, time.Hour)
	return service.NewAuthService(memoryrepo.NewUserRepository(), jwtService)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)

	u, err := svc.Register(context.Background(), service.RegisterInput{
		Email:    "alice@example.com",
		Name:     "Alice",
		Password: "a-long-enough-password",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if u.PasswordHash == "a-long-enough-password" {
		t.Fatal("password must not be stored in clear")
	}

	token, logged, err := svc.Login(context.Background(), "alice@example.com", "a-long-enough-password")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if token == "" {
		t.Error("login should yield a token")
	}
	if logged.ID != u.ID {
		t.Errorf("logged in as %s, expected %s", logged.ID, u.ID)
	}

	// The token round-trips through verification.
	claims, err := auth.NewJWTService(testJWTSecret, time.Hour).Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if claims.UserID != u.ID {
		t.Errorf("claims.UserID = %s, expected %s", claims.UserID, u.ID)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newAuthService(t)

	tests := []struct {
		name  string
		input service.RegisterInput
	}{
		{"Invalid email", service.RegisterInput{Email: "not-an-email", Password: "a-long-enough-password"}},
		{"Short password", service.RegisterInput{Email: "bob@example.com", Password: "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.input)
			if !errors.Is(err, apperrors.ErrBadRequest) {
				t.Errorf("expected bad request, got: %v", err)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)

	if _, err := svc.Register(context.Background(), service.RegisterInput{
		Email:    "alice@example.com",
		Password: "a-long-enough-password",
	}); err != nil {
		t.Fatal(err)
	}

	_, err := svc.Register(context.Background(), service.RegisterInput{
		Email:    "ALICE@example.com",
		Password: "another-long-password",
	})
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Errorf("duplicate email should conflict, got: %v", err)
	}
}

// Unknown email and wrong password must be indistinguishable.
func TestLoginFailureIsUniform(t *testing.T) {
	svc := newAuthService(t)

	if _, err := svc.Register(context.Background(), service.RegisterInput{
		Email:    "alice@example.com",
		Password: "a-long-enough-password",
	}); err != nil {
		t.Fatal(err)
	}

	_, _, errUnknown := svc.Login(context.Background(), "nobody@example.com", "a-long-enough-password")
	_, _, errWrong := svc.Login(context.Background(), "alice@example.com", "the-wrong-password")

	if !errors.Is(errUnknown, apperrors.ErrInvalidCredentials) {
		t.Errorf("unknown email: expected invalid credentials, got: %v", errUnknown)
	}
	if !errors.Is(errWrong, apperrors.ErrInvalidCredentials) {
		t.Errorf("wrong password: expected invalid credentials, got: %v", errWrong)
	}
	if errUnknown.Error() != errWrong.Error() {
		t.Error("failure messages must not reveal whether the account exists")
	}
}
