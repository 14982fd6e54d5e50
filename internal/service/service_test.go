package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"docvault/internal/activity"
	"docvault/internal/domain/file"
	"docvault/internal/domain/project"
	"docvault/internal/domain/user"
	"docvault/internal/permission"
	memoryrepo "docvault/internal/repository/memory"
	"docvault/internal/service"
	memorystore "docvault/internal/storage/memory"
	"docvault/pkg/mailer"
)

// env wires the full service layer onto in-memory backends.
type env struct {
	users      *memoryrepo.UserRepository
	projects   *memoryrepo.ProjectRepository
	files      *memoryrepo.FileRepository
	shares     *memoryrepo.ShareRepository
	activities *memoryrepo.ActivityRepository
	blobs      *memorystore.Store
	perms      *permission.Store

	authSvc    *service.AuthService
	fileSvc    *service.FileService
	projectSvc *service.ProjectService
	shareSvc   *service.ShareService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	e := &env{
		users:      memoryrepo.NewUserRepository(),
		projects:   memoryrepo.NewProjectRepository(),
		files:      memoryrepo.NewFileRepository(),
		shares:     memoryrepo.NewShareRepository(),
		activities: memoryrepo.NewActivityRepository(),
		blobs:      memorystore.NewStore(),
	}
	e.perms = permission.NewStore(memoryrepo.NewPermissionRepository(), e.files)

	logger := activity.NewLogger(e.activities)
	limits := file.NewLimitPolicy()

	e.fileSvc = service.NewFileService(e.projects, e.files, e.perms, e.blobs, limits, logger)
	e.projectSvc = service.NewProjectService(e.projects, e.fileSvc, logger)
	e.shareSvc = service.NewShareService(
		e.shares, e.users, e.files, e.perms, e.blobs, logger,
		mailer.NewNoopProvider(), "noreply@docvault.dev", "https://docvault.dev/shares",
	)

	return e
}

func (e *env) createUser(t *testing.T, email string) *user.User {
	t.Helper()
	u, err := e.users.Create(context.Background(), user.CreateUserInput{
		Email:        email,
		Name:         "Test User",
		PasswordHash: "$2a$12$not.a.real.hash.for.these.tests",
	})
	if err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	return u
}

func (e *env) createProject(t *testing.T, ownerID uuid.UUID, name string, isPublic bool) *project.Project {
	t.Helper()
	p, err := e.projectSvc.CreateProject(context.Background(), ownerID, service.CreateProjectInput{
		Name:     name,
		IsPublic: isPublic,
	})
	if err != nil {
		t.Fatalf("failed to create project %s: %v", name, err)
	}
	return p
}

func (e *env) uploadFile(t *testing.T, userID, projectID uuid.UUID, name string, content []byte) *file.File {
	t.Helper()
	f, err := e.fileSvc.Upload(context.Background(), userID, projectID, service.UploadFileInput{
		Name:    name,
		Type:    file.TypeDocument,
		Content: content,
	})
	if err != nil {
		t.Fatalf("failed to upload %s: %v", name, err)
	}
	return f
}
