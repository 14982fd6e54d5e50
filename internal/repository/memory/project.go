package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"docvault/internal/domain/project"
	apperrors "docvault/pkg/errors"
)

type ProjectRepository struct {
	mu       sync.RWMutex
	projects map[uuid.UUID]*project.Project
}

func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{projects: make(map[uuid.UUID]*project.Project)}
}

func cloneProject(p *project.Project) *project.Project {
	cloned := *p
	cloned.Tags = append([]string(nil), p.Tags...)
	return &cloned
}

func (r *ProjectRepository) Create(ctx context.Context, input project.CreateProjectInput) (*project.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.projects {
		if p.OwnerID == input.OwnerID && strings.EqualFold(p.Name, input.Name) {
			return nil, apperrors.Conflict(errProjectNameTaken)
		}
	}

	now := time.Now()
	p := &project.Project{
		ID:          uuid.New(),
		OwnerID:     input.OwnerID,
		Name:        input.Name,
		Description: input.Description,
		IsPublic:    input.IsPublic,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.projects[p.ID] = p

	return cloneProject(p), nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.projects[id]
	if !ok {
		return nil, apperrors.NotFound(errProjectNotFound)
	}

	return cloneProject(p), nil
}

func (r *ProjectRepository) GetByOwnerAndName(ctx context.Context, ownerID uuid.UUID, name string) (*project.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.projects {
		if p.OwnerID == ownerID && strings.EqualFold(p.Name, name) {
			return cloneProject(p), nil
		}
	}

	return nil, apperrors.NotFound(errProjectNotFound)
}

func (r *ProjectRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*project.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	projects := make([]*project.Project, 0)
	for _, p := range r.projects {
		if p.OwnerID == ownerID {
			projects = append(projects, cloneProject(p))
		}
	}

	sort.Slice(projects, func(i, j int) bool {
		return projects[i].CreatedAt.After(projects[j].CreatedAt)
	})

	return projects, nil
}

func (r *ProjectRepository) Update(ctx context.Context, id uuid.UUID, input project.UpdateProjectInput) (*project.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.projects[id]
	if !ok {
		return nil, apperrors.NotFound(errProjectNotFound)
	}

	if input.Name != nil {
		for _, other := range r.projects {
			if other.ID != id && other.OwnerID == p.OwnerID && strings.EqualFold(other.Name, *input.Name) {
				return nil, apperrors.Conflict(errProjectNameTaken)
			}
		}
		p.Name = *input.Name
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if input.IsPublic != nil {
		p.IsPublic = *input.IsPublic
	}
	p.UpdatedAt = time.Now()

	return cloneProject(p), nil
}

func (r *ProjectRepository) SetTags(ctx context.Context, id uuid.UUID, tags []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.projects[id]
	if !ok {
		return apperrors.NotFound(errProjectNotFound)
	}

	p.Tags = append([]string(nil), tags...)
	p.UpdatedAt = time.Now()
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.projects[id]; !ok {
		return apperrors.NotFound(errProjectNotFound)
	}

	delete(r.projects, id)
	return nil
}
