package permission

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"docvault/internal/domain/file"
	domain "docvault/internal/domain/permission"
	"docvault/internal/repository"
	apperrors "docvault/pkg/errors"
)

const (
	errMsgPermissionRequired = "permission denied"
	errMsgInvalidPermissions = "invalid permission set"
)

// FileGetter resolves file records; the store needs the uploader for the
// uploader bypass.
type FileGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*file.File, error)
}

// Store answers and records per-file per-user capability queries. Checks
// fail closed: no record means no access. The single exception is the
// uploader bypass, which grants the file's uploader every permission
// without a record being written.
type Store struct {
	records repository.PermissionRepository
	files   FileGetter
}

func NewStore(records repository.PermissionRepository, files FileGetter) *Store {
	return &Store{records: records, files: files}
}

// SetPermissions replaces (never merges) the record for the (file, user)
// pair and returns the new record.
func (s *Store) SetPermissions(ctx context.Context, fileID, userID uuid.UUID, perms domain.Set) (*domain.Record, error) {
	if err := perms.Validate(); err != nil {
		return nil, apperrors.BadRequestWrap(errMsgInvalidPermissions, err)
	}

	return s.records.Set(ctx, domain.SetPermissionsInput{
		FileID:      fileID,
		UserID:      userID,
		Permissions: perms,
	})
}

// HasPermission reports whether the user holds the permission on the file.
// The uploader always passes; otherwise the recorded set must satisfy the
// requested kind (FULL_ACCESS satisfies everything).
func (s *Store) HasPermission(ctx context.Context, fileID, userID uuid.UUID, perm domain.Permission) (bool, error) {
	f, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		return false, err
	}
	if f.UploadedBy == userID {
		return true, nil
	}

	rec, err := s.records.Get(ctx, fileID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	return rec.Permissions.Satisfies(perm), nil
}

// Require is HasPermission with a forbidden error instead of a false.
func (s *Store) Require(ctx context.Context, fileID, userID uuid.UUID, perm domain.Permission) error {
	allowed, err := s.HasPermission(ctx, fileID, userID, perm)
	if err != nil {
		return err
	}
	if !allowed {
		return apperrors.Forbidden(errMsgPermissionRequired)
	}

	return nil
}

// ListByFile returns every recorded permission for the file.
func (s *Store) ListByFile(ctx context.Context, fileID uuid.UUID) ([]*domain.Record, error) {
	return s.records.ListByFile(ctx, fileID)
}

// Get returns the single record for the (file, user) pair, if any.
func (s *Store) Get(ctx context.Context, fileID, userID uuid.UUID) (*domain.Record, error) {
	return s.records.Get(ctx, fileID, userID)
}

// DeleteByFile drops all recorded permissions for the file.
func (s *Store) DeleteByFile(ctx context.Context, fileID uuid.UUID) error {
	return s.records.DeleteByFile(ctx, fileID)
}
