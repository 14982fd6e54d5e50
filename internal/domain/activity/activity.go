package activity

import (
	"time"

	"github.com/google/uuid"
)

// Type classifies one audited action against a project or its files.
type Type string

const (
	TypeCreated               Type = "created"
	TypeUpdated               Type = "updated"
	TypeDeleted               Type = "deleted"
	TypeFileAdded             Type = "file_added"
	TypeFileUpdated           Type = "file_updated"
	TypeFileDeleted           Type = "file_deleted"
	TypeFileMoved             Type = "file_moved"
	TypeFileDownloaded        Type = "file_downloaded"
	TypeFileShared            Type = "file_shared"
	TypeFilePermissionUpdated Type = "file_permission_updated"
	TypeTagAdded              Type = "tag_added"
	TypeTagRemoved            Type = "tag_removed"
	TypeCommented             Type = "commented"
)

// Activity is one immutable audit entry. Entries are never updated or
// deleted, even after the project or file they describe is gone.
type Activity struct {
	ID        uuid.UUID      `json:"id"`
	ProjectID uuid.UUID      `json:"project_id"`
	UserID    uuid.UUID      `json:"user_id"`
	Type      Type           `json:"type"`
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

type RecordInput struct {
	ProjectID uuid.UUID
	UserID    uuid.UUID
	Type      Type
	Details   map[string]any
}
