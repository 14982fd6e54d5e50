package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"docvault/internal/activity"
	domainactivity "docvault/internal/domain/activity"
	"docvault/internal/domain/project"
	"docvault/internal/repository"
	apperrors "docvault/pkg/errors"
	"docvault/pkg/validator"
)

// ProjectService owns project CRUD, tags, comments and the activity feed.
// Project-level operations are gated on ownership; reads on visibility
// (owner or public). File-level gating lives in FileService.
type ProjectService struct {
	projects   repository.ProjectRepository
	files      *FileService
	activities *activity.Logger
}

func NewProjectService(projects repository.ProjectRepository, files *FileService, activities *activity.Logger) *ProjectService {
	return &ProjectService{
		projects:   projects,
		files:      files,
		activities: activities,
	}
}

type CreateProjectInput struct {
	Name        string
	Description string
	IsPublic    bool
}

func (s *ProjectService) CreateProject(ctx context.Context, ownerID uuid.UUID, input CreateProjectInput) (*project.Project, error) {
	if err := validator.ProjectName(input.Name); err != nil {
		return nil, apperrors.BadRequestWrap(msgInvalidProjectInput, err)
	}
	if err := validator.Description(input.Description); err != nil {
		return nil, apperrors.BadRequestWrap(msgInvalidProjectInput, err)
	}

	if _, err := s.projects.GetByOwnerAndName(ctx, ownerID, input.Name); err == nil {
		return nil, apperrors.Conflict(msgProjectNameTaken)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	p, err := s.projects.Create(ctx, project.CreateProjectInput{
		OwnerID:     ownerID,
		Name:        input.Name,
		Description: input.Description,
		IsPublic:    input.IsPublic,
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.activities.Record(ctx, domainactivity.RecordInput{
		ProjectID: p.ID,
		UserID:    ownerID,
		Type:      domainactivity.TypeCreated,
	}); err != nil {
		return nil, err
	}

	return p, nil
}

// visibleProject resolves the project and hides private projects from
// non-owners behind a not-found, so probing cannot confirm existence.
func (s *ProjectService) visibleProject(ctx context.Context, userID, projectID uuid.UUID) (*project.Project, error) {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !p.VisibleTo(userID) {
		return nil, apperrors.NotFound(msgProjectNotFound)
	}
	return p, nil
}

// ownedProject resolves the project and requires the caller to own it.
func (s *ProjectService) ownedProject(ctx context.Context, userID, projectID uuid.UUID) (*project.Project, error) {
	p, err := s.visibleProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != userID {
		return nil, apperrors.Forbidden(msgProjectOwnerOnly)
	}
	return p, nil
}

func (s *ProjectService) GetProject(ctx context.Context, userID, projectID uuid.UUID) (*project.Project, error) {
	return s.visibleProject(ctx, userID, projectID)
}

func (s *ProjectService) ListProjects(ctx context.Context, ownerID uuid.UUID) ([]*project.Project, error) {
	return s.projects.ListByOwner(ctx, ownerID)
}

func (s *ProjectService) UpdateProject(ctx context.Context, userID, projectID uuid.UUID, input project.UpdateProjectInput) (*project.Project, error) {
	if _, err := s.ownedProject(ctx, userID, projectID); err != nil {
		return nil, err
	}

	if input.Name != nil {
		if err := validator.ProjectName(*input.Name); err != nil {
			return nil, apperrors.BadRequestWrap(msgInvalidProjectInput, err)
		}
		if existing, err := s.projects.GetByOwnerAndName(ctx, userID, *input.Name); err == nil && existing.ID != projectID {
			return nil, apperrors.Conflict(msgProjectNameTaken)
		} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}
	if input.Description != nil {
		if err := validator.Description(*input.Description); err != nil {
			return nil, apperrors.BadRequestWrap(msgInvalidProjectInput, err)
		}
	}

	p, err := s.projects.Update(ctx, projectID, input)
	if err != nil {
		return nil, err
	}

	s.activities.RecordBestEffort(projectID, userID, domainactivity.TypeUpdated, nil)

	return p, nil
}

// DeleteProject removes the project, its files and their stored content.
// The activity trail is deliberately left in place: entries describing a
// deleted project stay retrievable.
func (s *ProjectService) DeleteProject(ctx context.Context, userID, projectID uuid.UUID) error {
	if _, err := s.ownedProject(ctx, userID, projectID); err != nil {
		return err
	}

	if err := s.files.deleteProjectFiles(ctx, projectID); err != nil {
		return err
	}

	if err := s.projects.Delete(ctx, projectID); err != nil {
		return err
	}

	if _, err := s.activities.Record(ctx, domainactivity.RecordInput{
		ProjectID: projectID,
		UserID:    userID,
		Type:      domainactivity.TypeDeleted,
	}); err != nil {
		return err
	}

	return nil
}

func (s *ProjectService) AddTag(ctx context.Context, userID, projectID uuid.UUID, tag string) (*project.Project, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil, apperrors.BadRequest(msgTagEmpty)
	}

	p, err := s.ownedProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	for _, existing := range p.Tags {
		if strings.EqualFold(existing, tag) {
			return p, nil
		}
	}

	tags := append(append([]string(nil), p.Tags...), tag)
	if err := s.projects.SetTags(ctx, projectID, tags); err != nil {
		return nil, err
	}
	p.Tags = tags

	s.activities.RecordBestEffort(projectID, userID, domainactivity.TypeTagAdded, map[string]any{detailKeyTag: tag})

	return p, nil
}

func (s *ProjectService) RemoveTag(ctx context.Context, userID, projectID uuid.UUID, tag string) (*project.Project, error) {
	p, err := s.ownedProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	tags := make([]string, 0, len(p.Tags))
	found := false
	for _, existing := range p.Tags {
		if strings.EqualFold(existing, tag) {
			found = true
			continue
		}
		tags = append(tags, existing)
	}
	if !found {
		return nil, apperrors.NotFound(msgTagNotFound)
	}

	if err := s.projects.SetTags(ctx, projectID, tags); err != nil {
		return nil, err
	}
	p.Tags = tags

	s.activities.RecordBestEffort(projectID, userID, domainactivity.TypeTagRemoved, map[string]any{detailKeyTag: tag})

	return p, nil
}

func (s *ProjectService) Comment(ctx context.Context, userID, projectID uuid.UUID, text string) (*domainactivity.Activity, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.BadRequest(msgCommentEmpty)
	}
	if err := validator.Description(text); err != nil {
		return nil, apperrors.BadRequestWrap(msgInvalidProjectInput, err)
	}

	if _, err := s.visibleProject(ctx, userID, projectID); err != nil {
		return nil, err
	}

	return s.activities.Record(ctx, domainactivity.RecordInput{
		ProjectID: projectID,
		UserID:    userID,
		Type:      domainactivity.TypeCommented,
		Details:   map[string]any{detailKeyComment: text},
	})
}

// ListActivities returns the project's activity feed, newest first. The
// project row may already be gone; in that case the trail is served to
// the requesting user as-is.
func (s *ProjectService) ListActivities(ctx context.Context, userID, projectID uuid.UUID, limit int) ([]*domainactivity.Activity, error) {
	p, err := s.projects.GetByID(ctx, projectID)
	switch {
	case err == nil:
		if !p.VisibleTo(userID) {
			return nil, apperrors.NotFound(msgProjectNotFound)
		}
	case errors.Is(err, apperrors.ErrNotFound):
		// Project already deleted; its trail stays retrievable.
	default:
		return nil, err
	}

	return s.activities.ListByProject(ctx, projectID, limit)
}
