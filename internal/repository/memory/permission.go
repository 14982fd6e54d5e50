package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"docvault/internal/domain/permission"
	apperrors "docvault/pkg/errors"
)

type permissionKey struct {
	fileID uuid.UUID
	userID uuid.UUID
}

type PermissionRepository struct {
	mu      sync.RWMutex
	records map[permissionKey]*permission.Record
}

func NewPermissionRepository() *PermissionRepository {
	return &PermissionRepository{records: make(map[permissionKey]*permission.Record)}
}

func clonePermission(rec *permission.Record) *permission.Record {
	cloned := *rec
	cloned.Permissions = append(permission.Set(nil), rec.Permissions...)
	return &cloned
}

// Set replaces any existing record for the (file, user) pair.
func (r *PermissionRepository) Set(ctx context.Context, input permission.SetPermissionsInput) (*permission.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec := &permission.Record{
		FileID:      input.FileID,
		UserID:      input.UserID,
		Permissions: append(permission.Set(nil), input.Permissions...),
		CreatedAt:   time.Now(),
	}
	r.records[permissionKey{fileID: input.FileID, userID: input.UserID}] = rec

	return clonePermission(rec), nil
}

func (r *PermissionRepository) Get(ctx context.Context, fileID, userID uuid.UUID) (*permission.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[permissionKey{fileID: fileID, userID: userID}]
	if !ok {
		return nil, apperrors.NotFound(errPermissionNotFound)
	}

	return clonePermission(rec), nil
}

func (r *PermissionRepository) ListByFile(ctx context.Context, fileID uuid.UUID) ([]*permission.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]*permission.Record, 0)
	for key, rec := range r.records {
		if key.fileID == fileID {
			records = append(records, clonePermission(rec))
		}
	}

	return records, nil
}

func (r *PermissionRepository) DeleteByFile(ctx context.Context, fileID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key := range r.records {
		if key.fileID == fileID {
			delete(r.records, key)
		}
	}

	return nil
}
