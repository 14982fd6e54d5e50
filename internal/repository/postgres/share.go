package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"docvault/internal/domain/share"
	apperrors "docvault/pkg/errors"
)

type ShareRepository struct {
	db *DB
}

func NewShareRepository(db *DB) *ShareRepository {
	return &ShareRepository{db: db}
}

func (r *ShareRepository) CreateUserShare(ctx context.Context, input share.CreateUserShareInput) (*share.UserShare, error) {
	query := `
		INSERT INTO user_shares (file_id, shared_by, shared_with, permissions, message, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, file_id, shared_by, shared_with, permissions, message, expires_at, created_at
	`

	s := &share.UserShare{}
	var perms []string
	err := r.db.Pool.QueryRow(ctx, query,
		input.FileID, input.SharedBy, input.SharedWith,
		permissionsToStrings(input.Permissions), input.Message, input.ExpiresAt,
	).Scan(&s.ID, &s.FileID, &s.SharedBy, &s.SharedWith, &perms, &s.Message, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		return nil, errFailedCreateUserShare(err)
	}
	s.Permissions = stringsToPermissions(perms)

	return s, nil
}

func (r *ShareRepository) ListUserSharesByFile(ctx context.Context, fileID uuid.UUID) ([]*share.UserShare, error) {
	query := `
		SELECT id, file_id, shared_by, shared_with, permissions, message, expires_at, created_at
		FROM user_shares WHERE file_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, fileID)
	if err != nil {
		return nil, errFailedListUserShares(err)
	}
	defer rows.Close()

	shares := make([]*share.UserShare, 0)
	for rows.Next() {
		s := &share.UserShare{}
		var perms []string
		if err := rows.Scan(&s.ID, &s.FileID, &s.SharedBy, &s.SharedWith, &perms, &s.Message, &s.ExpiresAt, &s.CreatedAt); err != nil {
			return nil, errFailedScanUserShare(err)
		}
		s.Permissions = stringsToPermissions(perms)
		shares = append(shares, s)
	}

	return shares, rows.Err()
}

func (r *ShareRepository) CreateEmailShare(ctx context.Context, input share.CreateEmailShareInput) (*share.EmailShare, error) {
	query := `
		INSERT INTO email_shares (file_id, shared_by, email, permissions, message, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, file_id, shared_by, email, permissions, message, expires_at, is_accepted, created_at
	`

	s := &share.EmailShare{}
	var perms []string
	err := r.db.Pool.QueryRow(ctx, query,
		input.FileID, input.SharedBy, input.Email,
		permissionsToStrings(input.Permissions), input.Message, input.ExpiresAt,
	).Scan(&s.ID, &s.FileID, &s.SharedBy, &s.Email, &perms, &s.Message, &s.ExpiresAt, &s.IsAccepted, &s.CreatedAt)
	if err != nil {
		return nil, errFailedCreateEmailShare(err)
	}
	s.Permissions = stringsToPermissions(perms)

	return s, nil
}

func (r *ShareRepository) GetEmailShare(ctx context.Context, id uuid.UUID) (*share.EmailShare, error) {
	query := `
		SELECT id, file_id, shared_by, email, permissions, message, expires_at, is_accepted, created_at
		FROM email_shares WHERE id = $1
	`

	s := &share.EmailShare{}
	var perms []string
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.FileID, &s.SharedBy, &s.Email, &perms, &s.Message, &s.ExpiresAt, &s.IsAccepted, &s.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errEmailShareNotFound)
		}
		return nil, errFailedGetEmailShare(err)
	}
	s.Permissions = stringsToPermissions(perms)

	return s, nil
}

func (r *ShareRepository) ListEmailSharesByFile(ctx context.Context, fileID uuid.UUID) ([]*share.EmailShare, error) {
	query := `
		SELECT id, file_id, shared_by, email, permissions, message, expires_at, is_accepted, created_at
		FROM email_shares WHERE file_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, fileID)
	if err != nil {
		return nil, errFailedListEmailShares(err)
	}
	defer rows.Close()

	shares := make([]*share.EmailShare, 0)
	for rows.Next() {
		s := &share.EmailShare{}
		var perms []string
		if err := rows.Scan(&s.ID, &s.FileID, &s.SharedBy, &s.Email, &perms, &s.Message, &s.ExpiresAt, &s.IsAccepted, &s.CreatedAt); err != nil {
			return nil, errFailedScanEmailShare(err)
		}
		s.Permissions = stringsToPermissions(perms)
		shares = append(shares, s)
	}

	return shares, rows.Err()
}

func (r *ShareRepository) MarkEmailShareAccepted(ctx context.Context, id uuid.UUID) error {
	query := "UPDATE email_shares SET is_accepted = TRUE WHERE id = $1"
	result, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return errFailedAcceptEmailShare(err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errEmailShareNotFound)
	}

	return nil
}

const shareLinkColumns = "id, file_id, token_hash, created_by, permissions, expires_at, password_hash, max_uses, uses_count, created_at"

func scanShareLink(row pgx.Row) (*share.Link, error) {
	l := &share.Link{}
	var perms []string
	err := row.Scan(
		&l.ID, &l.FileID, &l.TokenHash, &l.CreatedBy, &perms,
		&l.ExpiresAt, &l.PasswordHash, &l.MaxUses, &l.UsesCount, &l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	l.Permissions = stringsToPermissions(perms)
	return l, nil
}

func (r *ShareRepository) CreateLink(ctx context.Context, input share.CreateLinkInput) (*share.Link, error) {
	query := `
		INSERT INTO share_links (file_id, token_hash, created_by, permissions, expires_at, password_hash, max_uses)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + shareLinkColumns

	l, err := scanShareLink(r.db.Pool.QueryRow(ctx, query,
		input.FileID, input.TokenHash, input.CreatedBy,
		permissionsToStrings(input.Permissions), input.ExpiresAt, input.PasswordHash, input.MaxUses,
	))
	if err != nil {
		return nil, errFailedCreateShareLink(err)
	}

	return l, nil
}

func (r *ShareRepository) GetLinkByTokenHash(ctx context.Context, tokenHash string) (*share.Link, error) {
	query := "SELECT " + shareLinkColumns + " FROM share_links WHERE token_hash = $1"

	l, err := scanShareLink(r.db.Pool.QueryRow(ctx, query, tokenHash))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errShareLinkNotFound)
		}
		return nil, errFailedGetShareLink(err)
	}

	return l, nil
}

func (r *ShareRepository) ListLinksByFile(ctx context.Context, fileID uuid.UUID) ([]*share.Link, error) {
	query := "SELECT " + shareLinkColumns + " FROM share_links WHERE file_id = $1 ORDER BY created_at DESC"

	rows, err := r.db.Pool.Query(ctx, query, fileID)
	if err != nil {
		return nil, errFailedListShareLinks(err)
	}
	defer rows.Close()

	links := make([]*share.Link, 0)
	for rows.Next() {
		l, err := scanShareLink(rows)
		if err != nil {
			return nil, errFailedScanShareLink(err)
		}
		links = append(links, l)
	}

	return links, rows.Err()
}

// ConsumeLinkUse increments uses_count with the max-uses cap folded into
// the UPDATE predicate, so two concurrent resolutions cannot both take the
// last remaining use.
func (r *ShareRepository) ConsumeLinkUse(ctx context.Context, id uuid.UUID) (int, error) {
	query := `
		UPDATE share_links
		SET uses_count = uses_count + 1
		WHERE id = $1 AND (max_uses IS NULL OR uses_count < max_uses)
		RETURNING uses_count
	`

	var usesCount int
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(&usesCount)
	if err == nil {
		return usesCount, nil
	}
	if err != pgx.ErrNoRows {
		return 0, errFailedConsumeLinkUse(err)
	}

	// No row updated: either the link is gone or the cap is reached.
	exists := false
	if err := r.db.Pool.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM share_links WHERE id = $1)", id).Scan(&exists); err != nil {
		return 0, errFailedConsumeLinkUse(err)
	}
	if !exists {
		return 0, apperrors.NotFound(errShareLinkNotFound)
	}

	return 0, apperrors.UsageExceeded(errLinkUsesExhausted)
}

func (r *ShareRepository) DeleteLink(ctx context.Context, id uuid.UUID) error {
	query := "DELETE FROM share_links WHERE id = $1"
	result, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return errFailedDeleteShareLink(err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errShareLinkNotFound)
	}

	return nil
}
