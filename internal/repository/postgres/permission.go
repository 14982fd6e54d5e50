package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"docvault/internal/domain/permission"
	apperrors "docvault/pkg/errors"
)

type PermissionRepository struct {
	db *DB
}

func NewPermissionRepository(db *DB) *PermissionRepository {
	return &PermissionRepository{db: db}
}

func permissionsToStrings(set permission.Set) []string {
	out := make([]string, len(set))
	for i, p := range set {
		out[i] = string(p)
	}
	return out
}

func stringsToPermissions(values []string) permission.Set {
	out := make(permission.Set, len(values))
	for i, v := range values {
		out[i] = permission.Permission(v)
	}
	return out
}

// Set replaces any existing record for the (file, user) pair in a single
// upsert, keeping the at-most-one-record-per-pair invariant in the schema.
func (r *PermissionRepository) Set(ctx context.Context, input permission.SetPermissionsInput) (*permission.Record, error) {
	query := `
		INSERT INTO file_permissions (file_id, user_id, permissions)
		VALUES ($1, $2, $3)
		ON CONFLICT (file_id, user_id)
		DO UPDATE SET permissions = EXCLUDED.permissions, created_at = NOW()
		RETURNING file_id, user_id, permissions, created_at
	`

	rec := &permission.Record{}
	var perms []string
	err := r.db.Pool.QueryRow(ctx, query, input.FileID, input.UserID, permissionsToStrings(input.Permissions)).Scan(
		&rec.FileID, &rec.UserID, &perms, &rec.CreatedAt,
	)
	if err != nil {
		return nil, errFailedSetPermissions(err)
	}
	rec.Permissions = stringsToPermissions(perms)

	return rec, nil
}

func (r *PermissionRepository) Get(ctx context.Context, fileID, userID uuid.UUID) (*permission.Record, error) {
	query := `
		SELECT file_id, user_id, permissions, created_at
		FROM file_permissions WHERE file_id = $1 AND user_id = $2
	`

	rec := &permission.Record{}
	var perms []string
	err := r.db.Pool.QueryRow(ctx, query, fileID, userID).Scan(
		&rec.FileID, &rec.UserID, &perms, &rec.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errPermissionNotFound)
		}
		return nil, errFailedGetPermission(err)
	}
	rec.Permissions = stringsToPermissions(perms)

	return rec, nil
}

func (r *PermissionRepository) ListByFile(ctx context.Context, fileID uuid.UUID) ([]*permission.Record, error) {
	query := `
		SELECT file_id, user_id, permissions, created_at
		FROM file_permissions WHERE file_id = $1
	`

	rows, err := r.db.Pool.Query(ctx, query, fileID)
	if err != nil {
		return nil, errFailedListPermissions(err)
	}
	defer rows.Close()

	records := make([]*permission.Record, 0)
	for rows.Next() {
		rec := &permission.Record{}
		var perms []string
		if err := rows.Scan(&rec.FileID, &rec.UserID, &perms, &rec.CreatedAt); err != nil {
			return nil, errFailedScanPermission(err)
		}
		rec.Permissions = stringsToPermissions(perms)
		records = append(records, rec)
	}

	return records, rows.Err()
}

func (r *PermissionRepository) DeleteByFile(ctx context.Context, fileID uuid.UUID) error {
	query := "DELETE FROM file_permissions WHERE file_id = $1"
	if _, err := r.db.Pool.Exec(ctx, query, fileID); err != nil {
		return errFailedDeletePermissions(err)
	}

	return nil
}
