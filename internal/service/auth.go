package service

import (
	"context"
	"errors"

	"docvault/internal/auth"
	"docvault/internal/domain/user"
	"docvault/internal/repository"
	apperrors "docvault/pkg/errors"
	"docvault/pkg/password"
	"docvault/pkg/validator"
)

// AuthService handles account creation and credential verification.
type AuthService struct {
	users repository.UserRepository
	jwt   *auth.JWTService
}

func NewAuthService(users repository.UserRepository, jwt *auth.JWTService) *AuthService {
	return &AuthService{users: users, jwt: jwt}
}

type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*user.User, error) {
	if err := validator.Email(input.Email); err != nil {
		return nil, apperrors.BadRequestWrap(msgInvalidRegistration, err)
	}
	if err := validator.Password(input.Password); err != nil {
		return nil, apperrors.BadRequestWrap(msgInvalidRegistration, err)
	}

	hash, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	return s.users.Create(ctx, user.CreateUserInput{
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: hash,
	})
}

// Login verifies credentials and returns a signed JWT for the user.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, plainPassword string) (string, *user.User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil, apperrors.InvalidCredentials()
		}
		return "", nil, err
	}

	if !password.Verify(plainPassword, u.PasswordHash) {
		return "", nil, apperrors.InvalidCredentials()
	}

	token, err := s.jwt.Generate(u.ID, u.Email)
	if err != nil {
		return "", nil, err
	}

	return token, u, nil
}

func (s *AuthService) GetUser(ctx context.Context, email string) (*user.User, error) {
	return s.users.GetByEmail(ctx, email)
}
