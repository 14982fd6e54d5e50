package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"docvault/internal/domain/file"
	apperrors "docvault/pkg/errors"
)

type FileRepository struct {
	db *DB
}

func NewFileRepository(db *DB) *FileRepository {
	return &FileRepository{db: db}
}

const fileColumns = "id, project_id, name, storage_key, type, format, size_bytes, description, uploaded_by, is_shared, is_public, created_at, updated_at"

func scanFile(row pgx.Row) (*file.File, error) {
	f := &file.File{}
	err := row.Scan(
		&f.ID, &f.ProjectID, &f.Name, &f.StorageKey, &f.Type, &f.Format, &f.SizeBytes,
		&f.Description, &f.UploadedBy, &f.IsShared, &f.IsPublic, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *FileRepository) Create(ctx context.Context, input file.CreateFileInput) (*file.File, error) {
	query := `
		INSERT INTO files (project_id, name, storage_key, type, format, size_bytes, description, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + fileColumns

	f, err := scanFile(r.db.Pool.QueryRow(ctx, query,
		input.ProjectID, input.Name, input.StorageKey, input.Type, input.Format,
		input.SizeBytes, input.Description, input.UploadedBy,
	))
	if err != nil {
		return nil, errFailedCreateFile(err)
	}

	return f, nil
}

func (r *FileRepository) GetByID(ctx context.Context, id uuid.UUID) (*file.File, error) {
	query := "SELECT " + fileColumns + " FROM files WHERE id = $1"

	f, err := scanFile(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errFileNotFound)
		}
		return nil, errFailedGetFile(err)
	}

	return f, nil
}

func (r *FileRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*file.File, error) {
	query := "SELECT " + fileColumns + " FROM files WHERE project_id = $1 ORDER BY created_at DESC"

	rows, err := r.db.Pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, errFailedListFiles(err)
	}
	defer rows.Close()

	files := make([]*file.File, 0)
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, errFailedScanFile(err)
		}
		files = append(files, f)
	}

	return files, rows.Err()
}

func (r *FileRepository) Update(ctx context.Context, id uuid.UUID, input file.UpdateFileInput) (*file.File, error) {
	query := "UPDATE files SET updated_at = NOW()"
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

	if input.IsShared != nil {
		argCount++
		query += fmt.Sprintf(", is_shared = $%d", argCount)
		args = append(args, *input.IsShared)
	}

	if input.IsPublic != nil {
		argCount++
		query += fmt.Sprintf(", is_public = $%d", argCount)
		args = append(args, *input.IsPublic)
	}

	query += " WHERE id = $1 RETURNING " + fileColumns

	f, err := scanFile(r.db.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errFileNotFound)
		}
		return nil, errFailedUpdateFile(err)
	}

	return f, nil
}

func (r *FileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := "DELETE FROM files WHERE id = $1"
	result, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return errFailedDeleteFile(err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errFileNotFound)
	}

	return nil
}

func (r *FileRepository) DeleteByProject(ctx context.Context, projectID uuid.UUID) (int64, error) {
	query := "DELETE FROM files WHERE project_id = $1"
	result, err := r.db.Pool.Exec(ctx, query, projectID)
	if err != nil {
		return 0, errFailedDeleteProjectFiles(err)
	}

	return result.RowsAffected(), nil
}
