package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"docvault/internal/domain/project"
	apperrors "docvault/pkg/errors"
)

type ProjectRepository struct {
	db *DB
}

func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, input project.CreateProjectInput) (*project.Project, error) {
	query := `
		INSERT INTO projects (owner_id, name, description, is_public)
		VALUES ($1, $2, $3, $4)
		RETURNING id, owner_id, name, description, is_public, tags, created_at, updated_at
	`

	p := &project.Project{}
	err := r.db.Pool.QueryRow(ctx, query, input.OwnerID, input.Name, input.Description, input.IsPublic).Scan(
		&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.IsPublic, &p.Tags, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict(errProjectNameTaken)
		}
		return nil, errFailedCreateProject(err)
	}

	return p, nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	query := `
		SELECT id, owner_id, name, description, is_public, tags, created_at, updated_at
		FROM projects WHERE id = $1
	`

	p := &project.Project{}
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.IsPublic, &p.Tags, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errProjectNotFound)
		}
		return nil, errFailedGetProject(err)
	}

	return p, nil
}

func (r *ProjectRepository) GetByOwnerAndName(ctx context.Context, ownerID uuid.UUID, name string) (*project.Project, error) {
	query := `
		SELECT id, owner_id, name, description, is_public, tags, created_at, updated_at
		FROM projects WHERE owner_id = $1 AND lower(name) = lower($2)
	`

	p := &project.Project{}
	err := r.db.Pool.QueryRow(ctx, query, ownerID, name).Scan(
		&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.IsPublic, &p.Tags, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errProjectNotFound)
		}
		return nil, errFailedGetProject(err)
	}

	return p, nil
}

func (r *ProjectRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*project.Project, error) {
	query := `
		SELECT id, owner_id, name, description, is_public, tags, created_at, updated_at
		FROM projects WHERE owner_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, errFailedListProjects(err)
	}
	defer rows.Close()

	projects := make([]*project.Project, 0)
	for rows.Next() {
		p := &project.Project{}
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.IsPublic, &p.Tags, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, errFailedScanProject(err)
		}
		projects = append(projects, p)
	}

	return projects, rows.Err()
}

func (r *ProjectRepository) Update(ctx context.Context, id uuid.UUID, input project.UpdateProjectInput) (*project.Project, error) {
	query := "UPDATE projects SET updated_at = NOW()"
	args := []interface{}{id}
	argCount := 1

	if input.Name != nil {
		argCount++
		query += fmt.Sprintf(", name = $%d", argCount)
		args = append(args, *input.Name)
	}

	if input.Description != nil {
		argCount++
		query += fmt.Sprintf(", description = $%d", argCount)
		args = append(args, *input.Description)
	}

	if input.IsPublic != nil {
		argCount++
		query += fmt.Sprintf(", is_public = $%d", argCount)
		args = append(args, *input.IsPublic)
	}

	query += " WHERE id = $1 RETURNING id, owner_id, name, description, is_public, tags, created_at, updated_at"

	p := &project.Project{}
	err := r.db.Pool.QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.IsPublic, &p.Tags, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errProjectNotFound)
		}
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict(errProjectNameTaken)
		}
		return nil, errFailedUpdateProject(err)
	}

	return p, nil
}

func (r *ProjectRepository) SetTags(ctx context.Context, id uuid.UUID, tags []string) error {
	query := "UPDATE projects SET tags = $2, updated_at = NOW() WHERE id = $1"
	result, err := r.db.Pool.Exec(ctx, query, id, tags)
	if err != nil {
		return errFailedSetTags(err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errProjectNotFound)
	}

	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := "DELETE FROM projects WHERE id = $1"
	result, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return errFailedDeleteProject(err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errProjectNotFound)
	}

	return nil
}
