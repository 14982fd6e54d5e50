package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"docvault/internal/activity"
	"docvault/internal/auth"
	domainactivity "docvault/internal/domain/activity"
	"docvault/internal/domain/file"
	domainpermission "docvault/internal/domain/permission"
	"docvault/internal/domain/share"
	"docvault/internal/permission"
	"docvault/internal/repository"
	"docvault/internal/storage"
	apperrors "docvault/pkg/errors"
	"docvault/pkg/mailer"
	"docvault/pkg/password"
	"docvault/pkg/token"
	"docvault/pkg/validator"
)

const mailSendTimeout = 10 * time.Second

// ShareService implements the three share kinds: direct user shares,
// email invitations and anonymous tokenized links. Issuing any of them
// requires SHARE permission on the file; resolving a link requires
// nothing but the token (and the password, when one is set).
type ShareService struct {
	shares     repository.ShareRepository
	users      repository.UserRepository
	files      repository.FileRepository
	perms      *permission.Store
	blobs      storage.BlobStore
	activities *activity.Logger
	mail       mailer.Provider
	mailFrom   string
	baseURL    string
}

func NewShareService(
	shares repository.ShareRepository,
	users repository.UserRepository,
	files repository.FileRepository,
	perms *permission.Store,
	blobs storage.BlobStore,
	activities *activity.Logger,
	mail mailer.Provider,
	mailFrom string,
	baseURL string,
) *ShareService {
	return &ShareService{
		shares:     shares,
		users:      users,
		files:      files,
		perms:      perms,
		blobs:      blobs,
		activities: activities,
		mail:       mail,
		mailFrom:   mailFrom,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// GetFilePermissions returns the file's permission matrix for holders of
// SHARE permission. A user without SHARE who has a grant of their own
// sees exactly that one record.
func (s *ShareService) GetFilePermissions(ctx context.Context, userID, fileID uuid.UUID) ([]*domainpermission.Record, error) {
	canShare, err := s.perms.HasPermission(ctx, fileID, userID, domainpermission.PermissionShare)
	if err != nil {
		return nil, err
	}
	if canShare {
		return s.perms.ListByFile(ctx, fileID)
	}

	rec, err := s.perms.Get(ctx, fileID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Forbidden(msgPermissionListOwnOnly)
		}
		return nil, err
	}

	return []*domainpermission.Record{rec}, nil
}

// UpdateFilePermissions replaces the target user's grant on the file.
func (s *ShareService) UpdateFilePermissions(ctx context.Context, userID, fileID, targetUserID uuid.UUID, perms domainpermission.Set) (*domainpermission.Record, error) {
	if err := s.perms.Require(ctx, fileID, userID, domainpermission.PermissionShare); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByID(ctx, targetUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound(msgTargetUserNotFound)
		}
		return nil, err
	}

	rec, err := s.perms.SetPermissions(ctx, fileID, targetUserID, perms)
	if err != nil {
		return nil, err
	}

	f, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		return nil, err
	}

	s.activities.RecordBestEffort(f.ProjectID, userID, domainactivity.TypeFilePermissionUpdated, map[string]any{
		detailKeyFileID:     fileID.String(),
		detailKeySharedWith: targetUserID.String(),
	})

	return rec, nil
}

type ShareWithUserInput struct {
	FileID      uuid.UUID
	SharedWith  uuid.UUID
	Permissions domainpermission.Set
	Message     string
	ExpiresAt   *time.Time
}

// ShareWithUser records the share and synchronously grants the stated
// permissions to the target user.
func (s *ShareService) ShareWithUser(ctx context.Context, userID uuid.UUID, input ShareWithUserInput) (*share.UserShare, error) {
	if err := s.perms.Require(ctx, input.FileID, userID, domainpermission.PermissionShare); err != nil {
		return nil, err
	}
	if err := input.Permissions.Validate(); err != nil {
		return nil, apperrors.BadRequestWrap(msgInvalidShareInput, err)
	}
	if err := validator.Expiration(input.ExpiresAt); err != nil {
		return nil, apperrors.BadRequestWrap(msgInvalidShareInput, err)
	}

	if _, err := s.users.GetByID(ctx, input.SharedWith); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound(msgTargetUserNotFound)
		}
		return nil, err
	}

	created, err := s.shares.CreateUserShare(ctx, share.CreateUserShareInput{
		FileID:      input.FileID,
		SharedBy:    userID,
		SharedWith:  input.SharedWith,
		Permissions: input.Permissions,
		Message:     input.Message,
		ExpiresAt:   input.ExpiresAt,
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.perms.SetPermissions(ctx, input.FileID, input.SharedWith, input.Permissions); err != nil {
		return nil, err
	}

	f, err := s.markShared(ctx, input.FileID)
	if err != nil {
		return nil, err
	}

	s.activities.RecordBestEffort(f.ProjectID, userID, domainactivity.TypeFileShared, map[string]any{
		detailKeyFileID:     input.FileID.String(),
		detailKeySharedWith: input.SharedWith.String(),
	})

	return created, nil
}

type ShareWithEmailInput struct {
	FileID      uuid.UUID
	Email       string
	Permissions domainpermission.Set
	Message     string
	ExpiresAt   *time.Time
}

// ShareWithEmail records an invitation keyed by address. No permission
// is granted until the invitation is accepted by a signed-in user with
// that address. Delivery of the invitation mail is best-effort.
func (s *ShareService) ShareWithEmail(ctx context.Context, userID uuid.UUID, input ShareWithEmailInput) (*share.EmailShare, error) {
	if err := s.perms.Require(ctx, input.FileID, userID, domainpermission.PermissionShare); err != nil {
		return nil, err
	}
	if err := validator.Email(input.Email); err != nil {
		return nil, apperrors.BadRequestWrap(msgInvalidShareInput, err)
	}
	if err := input.Permissions.Validate(); err != nil {
		return nil, apperrors.BadRequestWrap(msgInvalidShareInput, err)
	}
	if err := validator.Expiration(input.ExpiresAt); err != nil {
		return nil, apperrors.BadRequestWrap(msgInvalidShareInput, err)
	}

	created, err := s.shares.CreateEmailShare(ctx, share.CreateEmailShareInput{
		FileID:      input.FileID,
		SharedBy:    userID,
		Email:       input.Email,
		Permissions: input.Permissions,
		Message:     input.Message,
		ExpiresAt:   input.ExpiresAt,
	})
	if err != nil {
		return nil, err
	}

	f, err := s.markShared(ctx, input.FileID)
	if err != nil {
		return nil, err
	}

	s.sendInvitation(userID, input.Email, f.Name)

	s.activities.RecordBestEffort(f.ProjectID, userID, domainactivity.TypeFileShared, map[string]any{
		detailKeyFileID: input.FileID.String(),
		detailKeyEmail:  input.Email,
	})

	return created, nil
}

func (s *ShareService) sendInvitation(sharerID uuid.UUID, recipient, fileName string) {
	if s.mail == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), mailSendTimeout)
		defer cancel()

		sharerName := "Someone"
		if sharer, err := s.users.GetByID(ctx, sharerID); err == nil {
			if sharer.Name != "" {
				sharerName = sharer.Name
			} else {
				sharerName = sharer.Email
			}
		}

		_, _ = s.mail.Send(ctx, mailer.ShareInvitation(s.mailFrom, recipient, sharerName, fileName))
	}()
}

// AcceptEmailShare flips the invitation to accepted and writes the
// permission record for the now resolvable user. Only a user signed in
// with the invited address may accept.
func (s *ShareService) AcceptEmailShare(ctx context.Context, userID, shareID uuid.UUID) (*domainpermission.Record, error) {
	es, err := s.shares.GetEmailShare(ctx, shareID)
	if err != nil {
		return nil, err
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(u.Email, es.Email) {
		return nil, apperrors.Forbidden(msgEmailShareNotForUser)
	}

	if es.IsAccepted {
		return nil, apperrors.Conflict(msgEmailShareAccepted)
	}
	if es.ExpiresAt != nil && es.ExpiresAt.Before(time.Now()) {
		return nil, apperrors.Expired(msgEmailShareExpired)
	}

	if err := s.shares.MarkEmailShareAccepted(ctx, shareID); err != nil {
		return nil, err
	}

	rec, err := s.perms.SetPermissions(ctx, es.FileID, userID, es.Permissions)
	if err != nil {
		return nil, err
	}

	if f, err := s.files.GetByID(ctx, es.FileID); err == nil {
		s.activities.RecordBestEffort(f.ProjectID, userID, domainactivity.TypeFilePermissionUpdated, map[string]any{
			detailKeyFileID:     es.FileID.String(),
			detailKeySharedWith: userID.String(),
		})
	}

	return rec, nil
}

func (s *ShareService) ListUserShares(ctx context.Context, userID, fileID uuid.UUID) ([]*share.UserShare, error) {
	if err := s.perms.Require(ctx, fileID, userID, domainpermission.PermissionShare); err != nil {
		return nil, err
	}
	return s.shares.ListUserSharesByFile(ctx, fileID)
}

func (s *ShareService) ListEmailShares(ctx context.Context, userID, fileID uuid.UUID) ([]*share.EmailShare, error) {
	if err := s.perms.Require(ctx, fileID, userID, domainpermission.PermissionShare); err != nil {
		return nil, err
	}
	return s.shares.ListEmailSharesByFile(ctx, fileID)
}

type GenerateLinkInput struct {
	FileID      uuid.UUID
	Permissions domainpermission.Set
	ExpiresAt   *time.Time
	Password    string
	MaxUses     *int
}

// GeneratedLink carries the clear token exactly once: at mint time. The
// stored record keeps only the hash.
type GeneratedLink struct {
	Link  *share.Link `json:"link"`
	Token string      `json:"token"`
	URL   string      `json:"url"`
}

func (s *ShareService) GenerateLink(ctx context.Context, userID uuid.UUID, input GenerateLinkInput) (*GeneratedLink, error) {
	if err := s.perms.Require(ctx, input.FileID, userID, domainpermission.PermissionShare); err != nil {
		return nil, err
	}
	if err := input.Permissions.Validate(); err != nil {
		return nil, apperrors.BadRequestWrap(msgInvalidShareInput, err)
	}
	if err := validator.Expiration(input.ExpiresAt); err != nil {
		return nil, apperrors.BadRequestWrap(msgInvalidShareInput, err)
	}
	if err := validator.MaxUses(input.MaxUses); err != nil {
		return nil, apperrors.BadRequestWrap(msgInvalidShareInput, err)
	}

	clearToken, err := token.GenerateShareToken()
	if err != nil {
		return nil, err
	}

	passwordHash := ""
	if input.Password != "" {
		passwordHash, err = password.Hash(input.Password)
		if err != nil {
			return nil, err
		}
	}

	link, err := s.shares.CreateLink(ctx, share.CreateLinkInput{
		FileID:       input.FileID,
		TokenHash:    auth.HashToken(clearToken),
		CreatedBy:    userID,
		Permissions:  input.Permissions,
		ExpiresAt:    input.ExpiresAt,
		PasswordHash: passwordHash,
		MaxUses:      input.MaxUses,
	})
	if err != nil {
		return nil, err
	}

	f, err := s.markShared(ctx, input.FileID)
	if err != nil {
		return nil, err
	}

	s.activities.RecordBestEffort(f.ProjectID, userID, domainactivity.TypeFileShared, map[string]any{
		detailKeyFileID: input.FileID.String(),
		detailKeyVia:    detailViaShareLink,
	})

	return &GeneratedLink{
		Link:  link,
		Token: clearToken,
		URL:   s.baseURL + "/" + clearToken,
	}, nil
}

func (s *ShareService) ListLinks(ctx context.Context, userID, fileID uuid.UUID) ([]*share.Link, error) {
	if err := s.perms.Require(ctx, fileID, userID, domainpermission.PermissionShare); err != nil {
		return nil, err
	}
	return s.shares.ListLinksByFile(ctx, fileID)
}

func (s *ShareService) RevokeLink(ctx context.Context, userID, fileID, linkID uuid.UUID) error {
	if err := s.perms.Require(ctx, fileID, userID, domainpermission.PermissionShare); err != nil {
		return err
	}

	links, err := s.shares.ListLinksByFile(ctx, fileID)
	if err != nil {
		return err
	}
	for _, l := range links {
		if l.ID == linkID {
			return s.shares.DeleteLink(ctx, linkID)
		}
	}

	return apperrors.NotFound(msgShareLinkNotFound)
}

// SharedFileInfo is the slice of file metadata an anonymous resolution
// may disclose. Storage keys, project scoping and uploader identity
// stay server-side.
type SharedFileInfo struct {
	Name        string      `json:"name"`
	Type        file.Type   `json:"type"`
	Format      file.Format `json:"format"`
	SizeBytes   int64       `json:"size_bytes"`
	Description string      `json:"description,omitempty"`
	UploadedAt  time.Time   `json:"uploaded_at"`
}

func sharedFileInfo(f *file.File) *SharedFileInfo {
	return &SharedFileInfo{
		Name:        f.Name,
		Type:        f.Type,
		Format:      f.Format,
		SizeBytes:   f.SizeBytes,
		Description: f.Description,
		UploadedAt:  f.CreatedAt,
	}
}

// ResolvedShare is the outcome of an anonymous link resolution. Content
// is present only when the link's grant includes DOWNLOAD; a VIEW-only
// link yields metadata and nothing else.
type ResolvedShare struct {
	File        *SharedFileInfo      `json:"file"`
	Content     []byte               `json:"content,omitempty"`
	Permissions domainpermission.Set `json:"permissions"`
}

// ResolveLink is the single access path for share links. Checks run in a
// fixed order so failures stay distinguishable: existence, expiration,
// usage cap, password. The uses counter moves by exactly one per
// successful resolution and never on a failed attempt.
func (s *ShareService) ResolveLink(ctx context.Context, clearToken, linkPassword string) (*ResolvedShare, error) {
	link, err := s.shares.GetLinkByTokenHash(ctx, auth.HashToken(clearToken))
	if err != nil {
		// Burn the work a hit would cost so a miss is not
		// distinguishable from a mismatch by latency.
		auth.ConstantTimeHashAndCompare(clearToken, "")
		return nil, apperrors.NotFound(msgShareLinkNotFound)
	}

	if !auth.ConstantTimeHashAndCompare(clearToken, link.TokenHash) {
		return nil, apperrors.NotFound(msgShareLinkNotFound)
	}

	if link.ExpiresAt != nil && link.ExpiresAt.Before(time.Now()) {
		return nil, apperrors.Expired(msgShareLinkExpired)
	}

	if link.MaxUses != nil && link.UsesCount >= *link.MaxUses {
		return nil, apperrors.UsageExceeded(msgShareLinkUsesExceeded)
	}

	if link.HasPassword() {
		if linkPassword == "" || !password.Verify(linkPassword, link.PasswordHash) {
			return nil, apperrors.Unauthorized(msgShareLinkPassword)
		}
	}

	// Guarded increment: concurrent resolutions cannot overrun the cap.
	if _, err := s.shares.ConsumeLinkUse(ctx, link.ID); err != nil {
		return nil, err
	}

	f, err := s.files.GetByID(ctx, link.FileID)
	if err != nil {
		return nil, err
	}

	resolved := &ResolvedShare{
		File:        sharedFileInfo(f),
		Permissions: link.Permissions,
	}

	if link.Permissions.Satisfies(domainpermission.PermissionDownload) {
		content, err := s.blobs.Get(ctx, f.StorageKey)
		if err != nil {
			return nil, apperrors.BadRequestWrap(msgStoredContentRead, err)
		}
		resolved.Content = content

		s.activities.RecordBestEffort(f.ProjectID, uuid.Nil, domainactivity.TypeFileDownloaded, map[string]any{
			detailKeyFileID: f.ID.String(),
			detailKeyVia:    detailViaShareLink,
		})
	}

	return resolved, nil
}

func (s *ShareService) markShared(ctx context.Context, fileID uuid.UUID) (*file.File, error) {
	f, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if f.IsShared {
		return f, nil
	}

	isShared := true
	return s.files.Update(ctx, fileID, file.UpdateFileInput{IsShared: &isShared})
}
