package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"docvault/internal/domain/file"
	apperrors "docvault/pkg/errors"
)

type FileRepository struct {
	mu    sync.RWMutex
	files map[uuid.UUID]*file.File
}

func NewFileRepository() *FileRepository {
	return &FileRepository{files: make(map[uuid.UUID]*file.File)}
}

func (r *FileRepository) Create(ctx context.Context, input file.CreateFileInput) (*file.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	f := &file.File{
		ID:          uuid.New(),
		ProjectID:   input.ProjectID,
		Name:        input.Name,
		StorageKey:  input.StorageKey,
		Type:        input.Type,
		Format:      input.Format,
		SizeBytes:   input.SizeBytes,
		Description: input.Description,
		UploadedBy:  input.UploadedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.files[f.ID] = f

	cloned := *f
	return &cloned, nil
}

func (r *FileRepository) GetByID(ctx context.Context, id uuid.UUID) (*file.File, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.files[id]
	if !ok {
		return nil, apperrors.NotFound(errFileNotFound)
	}

	cloned := *f
	return &cloned, nil
}

func (r *FileRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*file.File, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	files := make([]*file.File, 0)
	for _, f := range r.files {
		if f.ProjectID == projectID {
			cloned := *f
			files = append(files, &cloned)
		}
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].CreatedAt.After(files[j].CreatedAt)
	})

	return files, nil
}

func (r *FileRepository) Update(ctx context.Context, id uuid.UUID, input file.UpdateFileInput) (*file.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.files[id]
	if !ok {
		return nil, apperrors.NotFound(errFileNotFound)
	}

	if input.Name != nil {
		f.Name = *input.Name
	}
	if input.Description != nil {
		f.Description = *input.Description
	}
	if input.IsShared != nil {
		f.IsShared = *input.IsShared
	}
	if input.IsPublic != nil {
		f.IsPublic = *input.IsPublic
	}
	f.UpdatedAt = time.Now()

	cloned := *f
	return &cloned, nil
}

func (r *FileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.files[id]; !ok {
		return apperrors.NotFound(errFileNotFound)
	}

	delete(r.files, id)
	return nil
}

func (r *FileRepository) DeleteByProject(ctx context.Context, projectID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int64
	for id, f := range r.files {
		if f.ProjectID == projectID {
			delete(r.files, id)
			removed++
		}
	}

	return removed, nil
}
