package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"docvault/internal/activity"
	domainactivity "docvault/internal/domain/activity"
	"docvault/internal/domain/file"
	domainpermission "docvault/internal/domain/permission"
	"docvault/internal/permission"
	"docvault/internal/repository"
	"docvault/internal/storage"
	apperrors "docvault/pkg/errors"
	"docvault/pkg/validator"
)

const msgInvalidFileType = "invalid file type"

// FileService implements the file lifecycle: upload, download, update,
// move across projects and delete. Every operation on a specific file
// goes through the permission store; operations scoped to a project go
// through the visibility check first.
type FileService struct {
	projects   repository.ProjectRepository
	files      repository.FileRepository
	perms      *permission.Store
	blobs      storage.BlobStore
	limits     *file.LimitPolicy
	activities *activity.Logger
}

func NewFileService(
	projects repository.ProjectRepository,
	files repository.FileRepository,
	perms *permission.Store,
	blobs storage.BlobStore,
	limits *file.LimitPolicy,
	activities *activity.Logger,
) *FileService {
	return &FileService{
		projects:   projects,
		files:      files,
		perms:      perms,
		blobs:      blobs,
		limits:     limits,
		activities: activities,
	}
}

func (s *FileService) visibleProject(ctx context.Context, userID, projectID uuid.UUID) error {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if !p.VisibleTo(userID) {
		return apperrors.NotFound(msgProjectNotFound)
	}
	return nil
}

// storageKey derives a collision-resistant stored name by hashing the
// upload instant together with the declared name, keeping the extension
// so stored objects remain recognizable.
func storageKey(name string) string {
	sum := sha256.Sum256([]byte(strconv.FormatInt(time.Now().UnixNano(), 10) + ":" + name))
	return hex.EncodeToString(sum[:]) + strings.ToLower(filepath.Ext(name))
}

type UploadFileInput struct {
	Name        string
	Type        file.Type
	Format      file.Format
	Description string
	Content     []byte
}

func (s *FileService) Upload(ctx context.Context, userID, projectID uuid.UUID, input UploadFileInput) (*file.File, error) {
	if err := s.visibleProject(ctx, userID, projectID); err != nil {
		return nil, err
	}

	if err := validator.FileName(input.Name); err != nil {
		return nil, apperrors.BadRequestWrap(msgInvalidFileInput, err)
	}
	if err := validator.Description(input.Description); err != nil {
		return nil, apperrors.BadRequestWrap(msgInvalidFileInput, err)
	}
	if !input.Type.Validate() {
		return nil, apperrors.BadRequest(msgInvalidFileType)
	}

	format := input.Format
	if format == "" {
		format = file.FormatFromName(input.Name)
	}

	size := int64(len(input.Content))
	if err := validator.FileSize(size); err != nil {
		return nil, apperrors.BadRequestWrap(msgInvalidFileInput, err)
	}
	if err := s.limits.Check(input.Type, format, size); err != nil {
		return nil, apperrors.BadRequestWrap(msgInvalidFileInput, err)
	}

	key := storageKey(input.Name)
	if err := s.blobs.Put(ctx, key, input.Content); err != nil {
		return nil, apperrors.BadRequestWrap(msgStoredContentWrite, err)
	}

	f, err := s.files.Create(ctx, file.CreateFileInput{
		ProjectID:   projectID,
		Name:        input.Name,
		StorageKey:  key,
		Type:        input.Type,
		Format:      format,
		SizeBytes:   size,
		Description: input.Description,
		UploadedBy:  userID,
	})
	if err != nil {
		return nil, err
	}

	// Redundant with the uploader bypass, but makes the uploader's
	// grant visible when the permission matrix is enumerated.
	if _, err := s.perms.SetPermissions(ctx, f.ID, userID, domainpermission.FullSet()); err != nil {
		return nil, err
	}

	if _, err := s.activities.Record(ctx, domainactivity.RecordInput{
		ProjectID: projectID,
		UserID:    userID,
		Type:      domainactivity.TypeFileAdded,
		Details:   map[string]any{detailKeyFileID: f.ID.String(), detailKeyFileName: f.Name},
	}); err != nil {
		return nil, err
	}

	return f, nil
}

func (s *FileService) GetFile(ctx context.Context, userID, fileID uuid.UUID) (*file.File, error) {
	if err := s.perms.Require(ctx, fileID, userID, domainpermission.PermissionView); err != nil {
		return nil, err
	}
	return s.files.GetByID(ctx, fileID)
}

func (s *FileService) ListFiles(ctx context.Context, userID, projectID uuid.UUID) ([]*file.File, error) {
	if err := s.visibleProject(ctx, userID, projectID); err != nil {
		return nil, err
	}
	return s.files.ListByProject(ctx, projectID)
}

// Download returns the file record together with its full stored content.
func (s *FileService) Download(ctx context.Context, userID, fileID uuid.UUID) (*file.File, []byte, error) {
	if err := s.perms.Require(ctx, fileID, userID, domainpermission.PermissionDownload); err != nil {
		return nil, nil, err
	}

	f, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		return nil, nil, err
	}

	content, err := s.blobs.Get(ctx, f.StorageKey)
	if err != nil {
		return nil, nil, apperrors.BadRequestWrap(msgStoredContentRead, err)
	}

	s.activities.RecordBestEffort(f.ProjectID, userID, domainactivity.TypeFileDownloaded, map[string]any{
		detailKeyFileID:   f.ID.String(),
		detailKeyFileName: f.Name,
	})

	return f, content, nil
}

func (s *FileService) UpdateFile(ctx context.Context, userID, fileID uuid.UUID, input file.UpdateFileInput) (*file.File, error) {
	if err := s.perms.Require(ctx, fileID, userID, domainpermission.PermissionEdit); err != nil {
		return nil, err
	}

	if input.Name != nil {
		if err := validator.FileName(*input.Name); err != nil {
			return nil, apperrors.BadRequestWrap(msgInvalidFileInput, err)
		}
	}
	if input.Description != nil {
		if err := validator.Description(*input.Description); err != nil {
			return nil, apperrors.BadRequestWrap(msgInvalidFileInput, err)
		}
	}

	f, err := s.files.Update(ctx, fileID, input)
	if err != nil {
		return nil, err
	}

	s.activities.RecordBestEffort(f.ProjectID, userID, domainactivity.TypeFileUpdated, map[string]any{
		detailKeyFileID:   f.ID.String(),
		detailKeyFileName: f.Name,
	})

	return f, nil
}

func (s *FileService) DeleteFile(ctx context.Context, userID, fileID uuid.UUID) error {
	if err := s.perms.Require(ctx, fileID, userID, domainpermission.PermissionDelete); err != nil {
		return err
	}

	f, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		return err
	}

	if err := s.blobs.Delete(ctx, f.StorageKey); err != nil {
		return apperrors.BadRequestWrap(msgStoredContentWrite, err)
	}

	if err := s.perms.DeleteByFile(ctx, fileID); err != nil {
		return err
	}

	if err := s.files.Delete(ctx, fileID); err != nil {
		return err
	}

	if _, err := s.activities.Record(ctx, domainactivity.RecordInput{
		ProjectID: f.ProjectID,
		UserID:    userID,
		Type:      domainactivity.TypeFileDeleted,
		Details:   map[string]any{detailKeyFileID: f.ID.String(), detailKeyFileName: f.Name},
	}); err != nil {
		return err
	}

	return nil
}

// MoveFile re-issues the file under a fresh identifier in the target
// project and deletes the source record. Recorded permission grants move
// with the file. Both projects get a trail entry so each feed remains
// self-consistent.
func (s *FileService) MoveFile(ctx context.Context, userID, fileID, targetProjectID uuid.UUID) (*file.File, error) {
	f, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		return nil, err
	}

	if err := s.visibleProject(ctx, userID, f.ProjectID); err != nil {
		return nil, err
	}
	if err := s.visibleProject(ctx, userID, targetProjectID); err != nil {
		return nil, err
	}

	if err := s.perms.Require(ctx, fileID, userID, domainpermission.PermissionEdit); err != nil {
		return nil, err
	}

	moved, err := s.files.Create(ctx, file.CreateFileInput{
		ProjectID:   targetProjectID,
		Name:        f.Name,
		StorageKey:  f.StorageKey,
		Type:        f.Type,
		Format:      f.Format,
		SizeBytes:   f.SizeBytes,
		Description: f.Description,
		UploadedBy:  f.UploadedBy,
	})
	if err != nil {
		return nil, err
	}

	records, err := s.perms.ListByFile(ctx, fileID)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if _, err := s.perms.SetPermissions(ctx, moved.ID, rec.UserID, rec.Permissions); err != nil {
			return nil, err
		}
	}

	if err := s.perms.DeleteByFile(ctx, fileID); err != nil {
		return nil, err
	}
	if err := s.files.Delete(ctx, fileID); err != nil {
		return nil, err
	}

	if _, err := s.activities.Record(ctx, domainactivity.RecordInput{
		ProjectID: f.ProjectID,
		UserID:    userID,
		Type:      domainactivity.TypeFileMoved,
		Details: map[string]any{
			detailKeyFileID:   moved.ID.String(),
			detailKeyFileName: f.Name,
			detailKeyTargetID: targetProjectID.String(),
		},
	}); err != nil {
		return nil, err
	}

	if _, err := s.activities.Record(ctx, domainactivity.RecordInput{
		ProjectID: targetProjectID,
		UserID:    userID,
		Type:      domainactivity.TypeFileAdded,
		Details: map[string]any{
			detailKeyFileID:   moved.ID.String(),
			detailKeyFileName: f.Name,
			detailKeySourceID: f.ProjectID.String(),
		},
	}); err != nil {
		return nil, err
	}

	return moved, nil
}

// SetGlobalSizeLimit replaces the global upload ceiling.
func (s *FileService) SetGlobalSizeLimit(maxBytes int64) error {
	if err := s.limits.SetGlobal(maxBytes); err != nil {
		return apperrors.BadRequestWrap(msgInvalidSizeLimit, err)
	}
	return nil
}

// AddSizeLimitRule registers a narrowing limit for the named types
// and/or formats. The strictest matching bound always wins.
func (s *FileService) AddSizeLimitRule(rule file.LimitRule) error {
	if err := s.limits.AddRule(rule); err != nil {
		return apperrors.BadRequestWrap(msgInvalidSizeLimit, err)
	}
	return nil
}

// deleteProjectFiles removes every file in the project along with its
// content and permission records. Called from project deletion, which
// has already verified ownership.
func (s *FileService) deleteProjectFiles(ctx context.Context, projectID uuid.UUID) error {
	files, err := s.files.ListByProject(ctx, projectID)
	if err != nil {
		return err
	}

	for _, f := range files {
		if err := s.blobs.Delete(ctx, f.StorageKey); err != nil {
			return apperrors.BadRequestWrap(msgStoredContentWrite, err)
		}
		if err := s.perms.DeleteByFile(ctx, f.ID); err != nil {
			return err
		}
	}

	if _, err := s.files.DeleteByProject(ctx, projectID); err != nil {
		return err
	}

	return nil
}
