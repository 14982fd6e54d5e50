package activity

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "docvault/internal/domain/activity"
	"docvault/internal/repository"
)

const bestEffortTimeout = 2 * time.Second

// Logger appends entries to the per-project activity log. Entries are
// never updated or deleted once written, and they carry no reference
// back to a live project row, so the trail survives project deletion.
type Logger struct {
	repo repository.ActivityRepository
}

func NewLogger(repo repository.ActivityRepository) *Logger {
	return &Logger{repo: repo}
}

// Record appends one entry and returns it.
func (l *Logger) Record(ctx context.Context, input domain.RecordInput) (*domain.Activity, error) {
	return l.repo.Create(ctx, input)
}

// RecordBestEffort appends an entry without failing the caller. Used
// for secondary trail entries where the primary operation has already
// succeeded and must not be rolled back over a logging failure.
func (l *Logger) RecordBestEffort(projectID, userID uuid.UUID, activityType domain.Type, details map[string]any) {
	ctx, cancel := context.WithTimeout(context.Background(), bestEffortTimeout)
	go func() {
		defer cancel()
		_, _ = l.repo.Create(ctx, domain.RecordInput{
			ProjectID: projectID,
			UserID:    userID,
			Type:      activityType,
			Details:   details,
		})
	}()
}

// ListByProject returns entries newest first. A limit of zero or less
// returns the full trail.
func (l *Logger) ListByProject(ctx context.Context, projectID uuid.UUID, limit int) ([]*domain.Activity, error) {
	return l.repo.ListByProject(ctx, projectID, limit)
}
