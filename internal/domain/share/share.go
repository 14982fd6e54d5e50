package share

import (
	"time"

	"github.com/google/uuid"

	"docvault/internal/domain/permission"
)

// UserShare grants a permission set on a file to a known user.
type UserShare struct {
	ID          uuid.UUID      `json:"id"`
	FileID      uuid.UUID      `json:"file_id"`
	SharedBy    uuid.UUID      `json:"shared_by"`
	SharedWith  uuid.UUID      `json:"shared_with"`
	Permissions permission.Set `json:"permissions"`
	Message     string         `json:"message,omitempty"`
	ExpiresAt   *time.Time     `json:"expires_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

type CreateUserShareInput struct {
	FileID      uuid.UUID
	SharedBy    uuid.UUID
	SharedWith  uuid.UUID
	Permissions permission.Set
	Message     string
	ExpiresAt   *time.Time
}

// EmailShare is an invitation keyed by email address. No permission record
// exists until the invitation is accepted by a resolvable user.
type EmailShare struct {
	ID          uuid.UUID      `json:"id"`
	FileID      uuid.UUID      `json:"file_id"`
	SharedBy    uuid.UUID      `json:"shared_by"`
	Email       string         `json:"email"`
	Permissions permission.Set `json:"permissions"`
	Message     string         `json:"message,omitempty"`
	ExpiresAt   *time.Time     `json:"expires_at,omitempty"`
	IsAccepted  bool           `json:"is_accepted"`
	CreatedAt   time.Time      `json:"created_at"`
}

type CreateEmailShareInput struct {
	FileID      uuid.UUID
	SharedBy    uuid.UUID
	Email       string
	Permissions permission.Set
	Message     string
	ExpiresAt   *time.Time
}

// Link is an anonymous, token-addressed grant of file access. The token is
// stored hashed; the clear token appears only in the share URL handed back
// at creation time.
type Link struct {
	ID           uuid.UUID      `json:"id"`
	FileID       uuid.UUID      `json:"file_id"`
	TokenHash    string         `json:"-"`
	CreatedBy    uuid.UUID      `json:"created_by"`
	Permissions  permission.Set `json:"permissions"`
	ExpiresAt    *time.Time     `json:"expires_at,omitempty"`
	PasswordHash string         `json:"-"`
	MaxUses      *int           `json:"max_uses,omitempty"`
	UsesCount    int            `json:"uses_count"`
	CreatedAt    time.Time      `json:"created_at"`
}

// HasPassword reports whether the link requires a password to resolve.
func (l *Link) HasPassword() bool {
	return l.PasswordHash != ""
}

type CreateLinkInput struct {
	FileID       uuid.UUID
	TokenHash    string
	CreatedBy    uuid.UUID
	Permissions  permission.Set
	ExpiresAt    *time.Time
	PasswordHash string
	MaxUses      *int
}
