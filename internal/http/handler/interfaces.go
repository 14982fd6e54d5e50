package handler

import (
	"context"

	"github.com/google/uuid"

	"docvault/internal/domain/activity"
	"docvault/internal/domain/file"
	"docvault/internal/domain/permission"
	"docvault/internal/domain/project"
	"docvault/internal/domain/share"
	"docvault/internal/domain/user"
	"docvault/internal/service"
)

// Consumer-side interfaces defined by handlers. Each interface contains
// only the methods the handler actually calls, so tests can stub them.

type AuthOperations interface {
	Register(ctx context.Context, input service.RegisterInput) (*user.User, error)
	Login(ctx context.Context, email, password string) (string, *user.User, error)
}

type ProjectOperations interface {
	CreateProject(ctx context.Context, ownerID uuid.UUID, input service.CreateProjectInput) (*project.Project, error)
	GetProject(ctx context.Context, userID, projectID uuid.UUID) (*project.Project, error)
	ListProjects(ctx context.Context, ownerID uuid.UUID) ([]*project.Project, error)
	UpdateProject(ctx context.Context, userID, projectID uuid.UUID, input project.UpdateProjectInput) (*project.Project, error)
	DeleteProject(ctx context.Context, userID, projectID uuid.UUID) error
	AddTag(ctx context.Context, userID, projectID uuid.UUID, tag string) (*project.Project, error)
	RemoveTag(ctx context.Context, userID, projectID uuid.UUID, tag string) (*project.Project, error)
	Comment(ctx context.Context, userID, projectID uuid.UUID, text string) (*activity.Activity, error)
	ListActivities(ctx context.Context, userID, projectID uuid.UUID, limit int) ([]*activity.Activity, error)
}

type FileOperations interface {
	Upload(ctx context.Context, userID, projectID uuid.UUID, input service.UploadFileInput) (*file.File, error)
	GetFile(ctx context.Context, userID, fileID uuid.UUID) (*file.File, error)
	ListFiles(ctx context.Context, userID, projectID uuid.UUID) ([]*file.File, error)
	Download(ctx context.Context, userID, fileID uuid.UUID) (*file.File, []byte, error)
	UpdateFile(ctx context.Context, userID, fileID uuid.UUID, input file.UpdateFileInput) (*file.File, error)
	DeleteFile(ctx context.Context, userID, fileID uuid.UUID) error
	MoveFile(ctx context.Context, userID, fileID, targetProjectID uuid.UUID) (*file.File, error)
	SetGlobalSizeLimit(maxBytes int64) error
	AddSizeLimitRule(rule file.LimitRule) error
}

type ShareOperations interface {
	GetFilePermissions(ctx context.Context, userID, fileID uuid.UUID) ([]*permission.Record, error)
	UpdateFilePermissions(ctx context.Context, userID, fileID, targetUserID uuid.UUID, perms permission.Set) (*permission.Record, error)
	ShareWithUser(ctx context.Context, userID uuid.UUID, input service.ShareWithUserInput) (*share.UserShare, error)
	ShareWithEmail(ctx context.Context, userID uuid.UUID, input service.ShareWithEmailInput) (*share.EmailShare, error)
	AcceptEmailShare(ctx context.Context, userID, shareID uuid.UUID) (*permission.Record, error)
	ListUserShares(ctx context.Context, userID, fileID uuid.UUID) ([]*share.UserShare, error)
	ListEmailShares(ctx context.Context, userID, fileID uuid.UUID) ([]*share.EmailShare, error)
	GenerateLink(ctx context.Context, userID uuid.UUID, input service.GenerateLinkInput) (*service.GeneratedLink, error)
	ListLinks(ctx context.Context, userID, fileID uuid.UUID) ([]*share.Link, error)
	RevokeLink(ctx context.Context, userID, fileID, linkID uuid.UUID) error
	ResolveLink(ctx context.Context, token, password string) (*service.ResolvedShare, error)
}
