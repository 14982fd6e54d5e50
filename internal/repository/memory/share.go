package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"docvault/internal/domain/permission"
	"docvault/internal/domain/share"
	apperrors "docvault/pkg/errors"
)

type ShareRepository struct {
	mu          sync.Mutex
	userShares  map[uuid.UUID]*share.UserShare
	emailShares map[uuid.UUID]*share.EmailShare
	links       map[uuid.UUID]*share.Link
	linksByHash map[string]uuid.UUID
}

func NewShareRepository() *ShareRepository {
	return &ShareRepository{
		userShares:  make(map[uuid.UUID]*share.UserShare),
		emailShares: make(map[uuid.UUID]*share.EmailShare),
		links:       make(map[uuid.UUID]*share.Link),
		linksByHash: make(map[string]uuid.UUID),
	}
}

func cloneUserShare(s *share.UserShare) *share.UserShare {
	cloned := *s
	cloned.Permissions = append(permission.Set(nil), s.Permissions...)
	return &cloned
}

func cloneEmailShare(s *share.EmailShare) *share.EmailShare {
	cloned := *s
	cloned.Permissions = append(permission.Set(nil), s.Permissions...)
	return &cloned
}

func cloneLink(l *share.Link) *share.Link {
	cloned := *l
	cloned.Permissions = append(permission.Set(nil), l.Permissions...)
	if l.MaxUses != nil {
		maxUses := *l.MaxUses
		cloned.MaxUses = &maxUses
	}
	return &cloned
}

func (r *ShareRepository) CreateUserShare(ctx context.Context, input share.CreateUserShareInput) (*share.UserShare, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := &share.UserShare{
		ID:          uuid.New(),
		FileID:      input.FileID,
		SharedBy:    input.SharedBy,
		SharedWith:  input.SharedWith,
		Permissions: append(permission.Set(nil), input.Permissions...),
		Message:     input.Message,
		ExpiresAt:   input.ExpiresAt,
		CreatedAt:   time.Now(),
	}
	r.userShares[s.ID] = s

	return cloneUserShare(s), nil
}

func (r *ShareRepository) ListUserSharesByFile(ctx context.Context, fileID uuid.UUID) ([]*share.UserShare, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	shares := make([]*share.UserShare, 0)
	for _, s := range r.userShares {
		if s.FileID == fileID {
			shares = append(shares, cloneUserShare(s))
		}
	}

	sort.Slice(shares, func(i, j int) bool {
		return shares[i].CreatedAt.After(shares[j].CreatedAt)
	})

	return shares, nil
}

func (r *ShareRepository) CreateEmailShare(ctx context.Context, input share.CreateEmailShareInput) (*share.EmailShare, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := &share.EmailShare{
		ID:          uuid.New(),
		FileID:      input.FileID,
		SharedBy:    input.SharedBy,
		Email:       input.Email,
		Permissions: append(permission.Set(nil), input.Permissions...),
		Message:     input.Message,
		ExpiresAt:   input.ExpiresAt,
		CreatedAt:   time.Now(),
	}
	r.emailShares[s.ID] = s

	return cloneEmailShare(s), nil
}

func (r *ShareRepository) GetEmailShare(ctx context.Context, id uuid.UUID) (*share.EmailShare, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.emailShares[id]
	if !ok {
		return nil, apperrors.NotFound(errEmailShareNotFound)
	}

	return cloneEmailShare(s), nil
}

func (r *ShareRepository) ListEmailSharesByFile(ctx context.Context, fileID uuid.UUID) ([]*share.EmailShare, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	shares := make([]*share.EmailShare, 0)
	for _, s := range r.emailShares {
		if s.FileID == fileID {
			shares = append(shares, cloneEmailShare(s))
		}
	}

	sort.Slice(shares, func(i, j int) bool {
		return shares[i].CreatedAt.After(shares[j].CreatedAt)
	})

	return shares, nil
}

func (r *ShareRepository) MarkEmailShareAccepted(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.emailShares[id]
	if !ok {
		return apperrors.NotFound(errEmailShareNotFound)
	}

	s.IsAccepted = true
	return nil
}

func (r *ShareRepository) CreateLink(ctx context.Context, input share.CreateLinkInput) (*share.Link, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l := &share.Link{
		ID:           uuid.New(),
		FileID:       input.FileID,
		TokenHash:    input.TokenHash,
		CreatedBy:    input.CreatedBy,
		Permissions:  append(permission.Set(nil), input.Permissions...),
		ExpiresAt:    input.ExpiresAt,
		PasswordHash: input.PasswordHash,
		MaxUses:      input.MaxUses,
		CreatedAt:    time.Now(),
	}
	r.links[l.ID] = l
	r.linksByHash[l.TokenHash] = l.ID

	return cloneLink(l), nil
}

func (r *ShareRepository) GetLinkByTokenHash(ctx context.Context, tokenHash string) (*share.Link, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.linksByHash[tokenHash]
	if !ok {
		return nil, apperrors.NotFound(errShareLinkNotFound)
	}

	return cloneLink(r.links[id]), nil
}

func (r *ShareRepository) ListLinksByFile(ctx context.Context, fileID uuid.UUID) ([]*share.Link, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	links := make([]*share.Link, 0)
	for _, l := range r.links {
		if l.FileID == fileID {
			links = append(links, cloneLink(l))
		}
	}

	sort.Slice(links, func(i, j int) bool {
		return links[i].CreatedAt.After(links[j].CreatedAt)
	})

	return links, nil
}

// ConsumeLinkUse performs the read-modify-write under the registry lock so
// concurrent resolutions cannot overrun the max-uses cap.
func (r *ShareRepository) ConsumeLinkUse(ctx context.Context, id uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.links[id]
	if !ok {
		return 0, apperrors.NotFound(errShareLinkNotFound)
	}

	if l.MaxUses != nil && l.UsesCount >= *l.MaxUses {
		return l.UsesCount, apperrors.UsageExceeded(errLinkUsesExhausted)
	}

	l.UsesCount++
	return l.UsesCount, nil
}

func (r *ShareRepository) DeleteLink(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.links[id]
	if !ok {
		return apperrors.NotFound(errShareLinkNotFound)
	}

	delete(r.linksByHash, l.TokenHash)
	delete(r.links, id)
	return nil
}
