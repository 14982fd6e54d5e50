package project

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsPublic    bool      `json:"is_public"`
	Tags        []string  `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// VisibleTo reports whether the user may see the project at all.
// Owners always see their projects; everyone sees public ones.
func (p *Project) VisibleTo(userID uuid.UUID) bool {
	return p.IsPublic || p.OwnerID == userID
}

type CreateProjectInput struct {
	OwnerID     uuid.UUID
	Name        string
	Description string
	IsPublic    bool
}

type UpdateProjectInput struct {
	Name        *string
	Description *string
	IsPublic    *bool
}
