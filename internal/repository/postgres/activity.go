package postgres

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"docvault/internal/domain/activity"
)

// ActivityRepository is append-only. There is deliberately no update or
// delete path; the audit trail outlives the project it describes, so the
// activities table carries no foreign key to projects.
type ActivityRepository struct {
	db *DB
}

func NewActivityRepository(db *DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(ctx context.Context, input activity.RecordInput) (*activity.Activity, error) {
	var detailsJSON []byte
	var err error
	if input.Details != nil {
		detailsJSON, err = json.Marshal(input.Details)
		if err != nil {
			return nil, errFailedCreateActivity(err)
		}
	}

	query := `
		INSERT INTO activities (project_id, user_id, type, details)
		VALUES ($1, $2, $3, $4)
		RETURNING id, project_id, user_id, type, details, created_at
	`

	a := &activity.Activity{}
	var storedDetails []byte
	err = r.db.Pool.QueryRow(ctx, query, input.ProjectID, input.UserID, input.Type, detailsJSON).Scan(
		&a.ID, &a.ProjectID, &a.UserID, &a.Type, &storedDetails, &a.CreatedAt,
	)
	if err != nil {
		return nil, errFailedCreateActivity(err)
	}

	if len(storedDetails) > 0 {
		if err := json.Unmarshal(storedDetails, &a.Details); err != nil {
			return nil, errFailedCreateActivity(err)
		}
	}

	return a, nil
}

func (r *ActivityRepository) ListByProject(ctx context.Context, projectID uuid.UUID, limit int) ([]*activity.Activity, error) {
	query := `
		SELECT id, project_id, user_id, type, details, created_at
		FROM activities WHERE project_id = $1
		ORDER BY created_at DESC
	`
	args := []interface{}{projectID}

	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, errFailedListActivities(err)
	}
	defer rows.Close()

	entries := make([]*activity.Activity, 0)
	for rows.Next() {
		a := &activity.Activity{}
		var detailsJSON []byte
		if err := rows.Scan(&a.ID, &a.ProjectID, &a.UserID, &a.Type, &detailsJSON, &a.CreatedAt); err != nil {
			return nil, errFailedScanActivity(err)
		}
		if len(detailsJSON) > 0 {
			if err := json.Unmarshal(detailsJSON, &a.Details); err != nil {
				return nil, errFailedScanActivity(err)
			}
		}
		entries = append(entries, a)
	}

	return entries, rows.Err()
}
