package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"docvault/internal/domain/activity"
)

// ActivityRepository is append-only: entries are never mutated or removed,
// even after the project they describe is deleted.
type ActivityRepository struct {
	mu      sync.RWMutex
	entries []*activity.Activity
}

func NewActivityRepository() *ActivityRepository {
	return &ActivityRepository{}
}

func cloneActivity(a *activity.Activity) *activity.Activity {
	cloned := *a
	if a.Details != nil {
		cloned.Details = make(map[string]any, len(a.Details))
		for k, v := range a.Details {
			cloned.Details[k] = v
		}
	}
	return &cloned
}

func (r *ActivityRepository) Create(ctx context.Context, input activity.RecordInput) (*activity.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a := &activity.Activity{
		ID:        uuid.New(),
		ProjectID: input.ProjectID,
		UserID:    input.UserID,
		Type:      input.Type,
		Details:   input.Details,
		CreatedAt: time.Now(),
	}
	r.entries = append(r.entries, a)

	return cloneActivity(a), nil
}

func (r *ActivityRepository) ListByProject(ctx context.Context, projectID uuid.UUID, limit int) ([]*activity.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]*activity.Activity, 0)
	for _, a := range r.entries {
		if a.ProjectID == projectID {
			entries = append(entries, cloneActivity(a))
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	return entries, nil
}
