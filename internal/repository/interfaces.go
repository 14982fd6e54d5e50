package repository

import (
	"context"

	"github.com/google/uuid"

	"docvault/internal/domain/activity"
	"docvault/internal/domain/file"
	"docvault/internal/domain/permission"
	"docvault/internal/domain/project"
	"docvault/internal/domain/share"
	"docvault/internal/domain/user"
)

// Provider-side repository interfaces. The postgres and memory packages
// both satisfy these; the service layer depends on nothing else.

type UserRepository interface {
	Create(ctx context.Context, input user.CreateUserInput) (*user.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}

type ProjectRepository interface {
	Create(ctx context.Context, input project.CreateProjectInput) (*project.Project, error)
	GetByID(ctx context.Context, id uuid.UUID) (*project.Project, error)
	GetByOwnerAndName(ctx context.Context, ownerID uuid.UUID, name string) (*project.Project, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*project.Project, error)
	Update(ctx context.Context, id uuid.UUID, input project.UpdateProjectInput) (*project.Project, error)
	SetTags(ctx context.Context, id uuid.UUID, tags []string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type FileRepository interface {
	Create(ctx context.Context, input file.CreateFileInput) (*file.File, error)
	GetByID(ctx context.Context, id uuid.UUID) (*file.File, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*file.File, error)
	Update(ctx context.Context, id uuid.UUID, input file.UpdateFileInput) (*file.File, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByProject(ctx context.Context, projectID uuid.UUID) (int64, error)
}

type PermissionRepository interface {
	// Set replaces any existing record for the (file, user) pair.
	Set(ctx context.Context, input permission.SetPermissionsInput) (*permission.Record, error)
	Get(ctx context.Context, fileID, userID uuid.UUID) (*permission.Record, error)
	ListByFile(ctx context.Context, fileID uuid.UUID) ([]*permission.Record, error)
	DeleteByFile(ctx context.Context, fileID uuid.UUID) error
}

type ShareRepository interface {
	CreateUserShare(ctx context.Context, input share.CreateUserShareInput) (*share.UserShare, error)
	ListUserSharesByFile(ctx context.Context, fileID uuid.UUID) ([]*share.UserShare, error)

	CreateEmailShare(ctx context.Context, input share.CreateEmailShareInput) (*share.EmailShare, error)
	GetEmailShare(ctx context.Context, id uuid.UUID) (*share.EmailShare, error)
	ListEmailSharesByFile(ctx context.Context, fileID uuid.UUID) ([]*share.EmailShare, error)
	MarkEmailShareAccepted(ctx context.Context, id uuid.UUID) error

	CreateLink(ctx context.Context, input share.CreateLinkInput) (*share.Link, error)
	GetLinkByTokenHash(ctx context.Context, tokenHash string) (*share.Link, error)
	ListLinksByFile(ctx context.Context, fileID uuid.UUID) ([]*share.Link, error)
	// ConsumeLinkUse increments uses_count by one, guarded against the
	// max-uses cap so concurrent resolutions cannot overrun it. Returns
	// the new count, or ErrUsageExceeded once the cap is reached.
	ConsumeLinkUse(ctx context.Context, id uuid.UUID) (int, error)
	DeleteLink(ctx context.Context, id uuid.UUID) error
}

type ActivityRepository interface {
	Create(ctx context.Context, input activity.RecordInput) (*activity.Activity, error)
	// ListByProject returns entries newest-first; limit <= 0 means all.
	ListByProject(ctx context.Context, projectID uuid.UUID, limit int) ([]*activity.Activity, error)
}
