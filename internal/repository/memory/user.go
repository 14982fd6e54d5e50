package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"docvault/internal/domain/user"
	apperrors "docvault/pkg/errors"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*user.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[uuid.UUID]*user.User)}
}

func (r *UserRepository) Create(ctx context.Context, input user.CreateUserInput) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, input.Email) {
			return nil, apperrors.Conflict(errEmailTaken)
		}
	}

	u := &user.User{
		ID:           uuid.New(),
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: input.PasswordHash,
		CreatedAt:    time.Now(),
	}
	r.users[u.ID] = u

	cloned := *u
	return &cloned, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.NotFound(errUserNotFound)
	}

	cloned := *u
	return &cloned, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cloned := *u
			return &cloned, nil
		}
	}

	return nil, apperrors.NotFound(errUserNotFound)
}
