package service_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"docvault/internal/auth"
	domainpermission "docvault/internal/domain/permission"
	"docvault/internal/domain/share"
	"docvault/internal/service"
	apperrors "docvault/pkg/errors"
)

var hexToken = regexp.MustCompile(`^[a-f0-9]{64}$`)

func TestGenerateLinkMintsTokenOnce(t *testing.T) {
	e := newEnv(t)
	owner := e.createUser(t, "owner@example.com")
	p := e.createProject(t, owner.ID, "Shared", false)
	f := e.uploadFile(t, owner.ID, p.ID, "doc.pdf", []byte("x"))

	link, err := e.shareSvc.GenerateLink(context.Background(), owner.ID, service.GenerateLinkInput{
		FileID:      f.ID,
		Permissions: domainpermission.Set{domainpermission.PermissionView},
	})
	if err != nil {
		t.Fatalf("GenerateLink failed: %v", err)
	}

	if !hexToken.MatchString(link.Token) {
		t.Errorf("Token = %q, expected 64 hex characters", link.Token)
	}
	if link.URL != "https://docvault.dev/shares/"+link.Token {
		t.Errorf("URL = %q, expected base URL + token", link.URL)
	}

	// Only the hash is at rest.
	if link.Link.TokenHash == link.Token {
		t.Error("stored token must be hashed")
	}
	if link.Link.TokenHash != auth.HashToken(link.Token) {
		t.Error("stored hash does not match the minted token")
	}

	// Issuing a link flips the shared flag on the file.
	stored, err := e.files.GetByID(context.Background(), f.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !stored.IsShared {
		t.Error("file should be flagged shared after a link is issued")
	}
}

func TestGenerateLinkRequiresSharePermission(t *testing.T) {
	e := newEnv(t)
	owner := e.createUser(t, "owner@example.com")
	other := e.createUser(t, "other@example.com")
	p := e.createProject(t, owner.ID, "Shared", false)
	f := e.uploadFile(t, owner.ID, p.ID, "doc.pdf", []byte("x"))

	_, err := e.shareSvc.GenerateLink(context.Background(), other.ID, service.GenerateLinkInput{
		FileID:      f.ID,
		Permissions: domainpermission.Set{domainpermission.PermissionView},
	})
	if !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("link generation without SHARE should be forbidden, got: %v", err)
	}
}

func TestGenerateLinkValidation(t *testing.T) {
	e := newEnv(t)
	owner := e.createUser(t, "owner@example.com")
	p := e.createProject(t, owner.ID, "Shared", false)
	f := e.uploadFile(t, owner.ID, p.ID, "doc.pdf", []byte("x"))

	past := time.Now().Add(-time.Hour)
	zero := 0

	tests := []struct {
		name  string
		input service.GenerateLinkInput
	}{
		{"Invalid permission kind", service.GenerateLinkInput{FileID: f.ID, Permissions: domainpermission.Set{"READ"}}},
		{"Expiration in the past", service.GenerateLinkInput{FileID: f.ID, Permissions: domainpermission.Set{domainpermission.PermissionView}, ExpiresAt: &past}},
		{"Non-positive max uses", service.GenerateLinkInput{FileID: f.ID, Permissions: domainpermission.Set{domainpermission.PermissionView}, MaxUses: &zero}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.shareSvc.GenerateLink(context.Background(), owner.ID, tt.input)
			if !errors.Is(err, apperrors.ErrBadRequest) {
				t.Errorf("expected bad request, got: %v", err)
			}
		})
	}
}

func TestResolveLinkReturnsContentForDownloadGrant(t *testing.T) {
	e := newEnv(t)
	owner := e.createUser(t, "owner@example.com")
	p := e.createProject(t, owner.ID, "Shared", false)
	payload := []byte("link payload")
	f := e.uploadFile(t, owner.ID, p.ID, "doc.pdf", payload)

	link, err := e.shareSvc.GenerateLink(context.Background(), owner.ID, service.GenerateLinkInput{
		FileID:      f.ID,
		Permissions: domainpermission.Set{domainpermission.PermissionView, domainpermission.PermissionDownload},
	})
	if err != nil {
		t.Fatal(err)
	}

	resolved, err := e.shareSvc.ResolveLink(context.Background(), link.Token, "")
	if err != nil {
		t.Fatalf("ResolveLink failed: %v", err)
	}
	if resolved.File == nil || resolved.File.Name != "doc.pdf" {
		t.Error("resolved metadata does not describe the shared file")
	}
	if resolved.File.SizeBytes != int64(len(payload)) {
		t.Errorf("SizeBytes = %d, expected %d", resolved.File.SizeBytes, len(payload))
	}
	if !bytes.Equal(resolved.Content, payload) {
		t.Error("resolved content differs from uploaded content")
	}
	if !resolved.Permissions.Contains(domainpermission.PermissionDownload) {
		t.Errorf("Permissions = %v, expected the link's grant", resolved.Permissions)
	}
}

func TestResolveLinkViewOnlyOmitsContent(t *testing.T) {
	e := newEnv(t)
	owner := e.createUser(t, "owner@example.com")
	p := e.createProject(t, owner.ID, "Shared", false)
	f := e.uploadFile(t, owner.ID, p.ID, "doc.pdf", []byte("secret bytes"))

	link, err := e.shareSvc.GenerateLink(context.Background(), owner.ID, service.GenerateLinkInput{
		FileID:      f.ID,
		Permissions: domainpermission.Set{domainpermission.PermissionView},
	})
	if err != nil {
		t.Fatal(err)
	}

	resolved, err := e.shareSvc.ResolveLink(context.Background(), link.Token, "")
	if err != nil {
		t.Fatalf("ResolveLink failed: %v", err)
	}
	if resolved.File == nil || resolved.File.Name != "doc.pdf" {
		t.Error("VIEW link should still return file metadata")
	}
	if resolved.Content != nil {
		t.Error("VIEW-only link must not return content")
	}
}

// Anonymous resolutions disclose only name, type, format, size,
// description and the upload timestamp. Storage keys, project and
// uploader ids never reach the caller.
func TestResolveLinkMetadataOmitsInternals(t *testing.T) {
	e := newEnv(t)
	owner := e.createUser(t, "owner@example.com")
	p := e.createProject(t, owner.ID, "Shared", false)
	f := e.uploadFile(t, owner.ID, p.ID, "doc.pdf", []byte("x"))

	link, err := e.shareSvc.GenerateLink(context.Background(), owner.ID, service.GenerateLinkInput{
		FileID:      f.ID,
		Permissions: domainpermission.Set{domainpermission.PermissionView},
	})
	if err != nil {
		t.Fatal(err)
	}

	resolved, err := e.shareSvc.ResolveLink(context.Background(), link.Token, "")
	if err != nil {
		t.Fatalf("ResolveLink failed: %v", err)
	}

	payload, err := json.Marshal(resolved)
	if err != nil {
		t.Fatal(err)
	}
	body := string(payload)

	if !strings.Contains(body, `"doc.pdf"`) {
		t.Error("resolved payload should carry the file name")
	}
	for _, leaked := range []string{
		"storage_key", "project_id", "uploaded_by", "is_public", "is_shared",
		f.StorageKey, f.ProjectID.String(), owner.ID.String(),
	} {
		if strings.Contains(body, leaked) {
			t.Errorf("resolved payload leaks %q", leaked)
		}
	}
}

func TestResolveLinkUnknownToken(t *testing.T) {
	e := newEnv(t)

	_, err := e.shareSvc.ResolveLink(context.Background(), strings.Repeat("f", 64), "")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("unknown token should yield not found, got: %v", err)
	}
}

func TestResolveLinkPassword(t *testing.T) {
	e := newEnv(t)
	owner := e.createUser(t, "owner@example.com")
	p := e.createProject(t, owner.ID, "Shared", false)
	f := e.uploadFile(t, owner.ID, p.ID, "doc.pdf", []byte("x"))

	link, err := e.shareSvc.GenerateLink(context.Background(), owner.ID, service.GenerateLinkInput{
		FileID:      f.ID,
		Permissions: domainpermission.Set{domainpermission.PermissionView},
		Password:    "correct horse battery staple",
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := e.shareSvc.ResolveLink(context.Background(), link.Token, ""); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Errorf("missing password should be unauthorized, got: %v", err)
	}
	if _, err := e.shareSvc.ResolveLink(context.Background(), link.Token, "wrong"); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Errorf("wrong password should be unauthorized, got: %v", err)
	}
	if _, err := e.shareSvc.ResolveLink(context.Background(), link.Token, "correct horse battery staple"); err != nil {
		t.Errorf("correct password should pass: %v", err)
	}

	// Failed attempts must not move the counter; the one success does.
	links, err := e.shareSvc.ListLinks(context.Background(), owner.ID, f.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(links) != 1 {
		t.Fatalf("got %d links, expected 1", len(links))
	}
	if links[0].UsesCount != 1 {
		t.Errorf("UsesCount = %d, expected 1", links[0].UsesCount)
	}
}

func TestResolveLinkMaxUses(t *testing.T) {
	e := newEnv(t)
	owner := e.createUser(t, "owner@example.com")
	p := e.createProject(t, owner.ID, "Shared", false)
	f := e.uploadFile(t, owner.ID, p.ID, "doc.pdf", []byte("x"))

	maxUses := 1
	link, err := e.shareSvc.GenerateLink(context.Background(), owner.ID, service.GenerateLinkInput{
		FileID:      f.ID,
		Permissions: domainpermission.Set{domainpermission.PermissionView},
		MaxUses:     &maxUses,
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := e.shareSvc.ResolveLink(context.Background(), link.Token, ""); err != nil {
		t.Fatalf("first resolution should pass: %v", err)
	}
	if _, err := e.shareSvc.ResolveLink(context.Background(), link.Token, ""); !errors.Is(err, apperrors.ErrUsageExceeded) {
		t.Errorf("second resolution should exceed usage, got: %v", err)
	}
}

// An expired link with a wrong password reports expiry, not the password:
// checks run existence, expiration, usage cap, then password.
func TestResolveLinkCheckOrder(t *testing.T) {
	e := newEnv(t)
	owner := e.createUser(t, "owner@example.com")
	p := e.createProject(t, owner.ID, "Shared", false)
	f := e.uploadFile(t, owner.ID, p.ID, "doc.pdf", []byte("x"))

	// Expired links cannot be minted through the service; write the
	// record directly the way an aged row would look.
	past := time.Now().Add(-time.Minute)
	clearToken := "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	_, err := e.shares.CreateLink(context.Background(), share.CreateLinkInput{
		FileID:       f.ID,
		TokenHash:    auth.HashToken(clearToken),
		CreatedBy:    owner.ID,
		Permissions:  domainpermission.Set{domainpermission.PermissionView},
		ExpiresAt:    &past,
		PasswordHash: "$2a$12$not.a.real.hash.for.these.tests",
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := e.shareSvc.ResolveLink(context.Background(), clearToken, "whatever"); !errors.Is(err, apperrors.ErrExpired) {
		t.Errorf("expired link should report expiry before the password check, got: %v", err)
	}

	// A capped link likewise wins over the password check.
	maxUses := 1
	cappedToken := "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	capped, err := e.shares.CreateLink(context.Background(), share.CreateLinkInput{
		FileID:       f.ID,
		TokenHash:    auth.HashToken(cappedToken),
		CreatedBy:    owner.ID,
		Permissions:  domainpermission.Set{domainpermission.PermissionView},
		PasswordHash: "$2a$12$not.a.real.hash.for.these.tests",
		MaxUses:      &maxUses,
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.shares.ConsumeLinkUse(context.Background(), capped.ID); err != nil {
		t.Fatal(err)
	}

	if _, err := e.shareSvc.ResolveLink(context.Background(), cappedToken, "whatever"); !errors.Is(err, apperrors.ErrUsageExceeded) {
		t.Errorf("capped link should report usage before the password check, got: %v", err)
	}
}

func TestRevokeLink(t *testing.T) {
	e := newEnv(t)
	owner := e.createUser(t, "owner@example.com")
	other := e.createUser(t, "other@example.com")
	p := e.createProject(t, owner.ID, "Shared", false)
	f := e.uploadFile(t, owner.ID, p.ID, "doc.pdf", []byte("x"))

	link, err := e.shareSvc.GenerateLink(context.Background(), owner.ID, service.GenerateLinkInput{
		FileID:      f.ID,
		Permissions: domainpermission.Set{domainpermission.PermissionView},
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := e.shareSvc.RevokeLink(context.Background(), other.ID, f.ID, link.Link.ID); !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("revocation without SHARE should be forbidden, got: %v", err)
	}

	if err := e.shareSvc.RevokeLink(context.Background(), owner.ID, f.ID, link.Link.ID); err != nil {
		t.Fatalf("RevokeLink failed: %v", err)
	}

	if _, err := e.shareSvc.ResolveLink(context.Background(), link.Token, ""); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("revoked link should resolve to not found, got: %v", err)
	}
}

func TestShareWithUserGrantsImmediately(t *testing.T) {
	e := newEnv(t)
	owner := e.createUser(t, "owner@example.com")
	reader := e.createUser(t, "reader@example.com")
	p := e.createProject(t, owner.ID, "Shared", false)
	f := e.uploadFile(t, owner.ID, p.ID, "doc.pdf", []byte("x"))

	created, err := e.shareSvc.ShareWithUser(context.Background(), owner.ID, service.ShareWithUserInput{
		FileID:      f.ID,
		SharedWith:  reader.ID,
		Permissions: domainpermission.Set{domainpermission.PermissionView},
		Message:     "have a look",
	})
	if err != nil {
		t.Fatalf("ShareWithUser failed: %v", err)
	}
	if created.SharedWith != reader.ID {
		t.Errorf("SharedWith = %s, expected reader", created.SharedWith)
	}

	if _, err := e.fileSvc.GetFile(context.Background(), reader.ID, f.ID); err != nil {
		t.Errorf("reader should hold VIEW right away: %v", err)
	}
}

func TestShareWithUnknownUser(t *testing.T) {
	e := newEnv(t)
	owner := e.createUser(t, "owner@example.com")
	p := e.createProject(t, owner.ID, "Shared", false)
	f := e.uploadFile(t, owner.ID, p.ID, "doc.pdf", []byte("x"))

	_, err := e.shareSvc.ShareWithUser(context.Background(), owner.ID, service.ShareWithUserInput{
		FileID:      f.ID,
		SharedWith:  e.createUser(t, "temp@example.com").ID,
		Permissions: domainpermission.Set{domainpermission.PermissionView},
	})
	if err != nil {
		t.Fatal(err)
	}

	_, err = e.shareSvc.ShareWithUser(context.Background(), owner.ID, service.ShareWithUserInput{
		FileID:      f.ID,
		SharedWith:  uuid.New(),
		Permissions: domainpermission.Set{domainpermission.PermissionView},
	})
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("sharing with an unknown user should yield not found, got: %v", err)
	}
}

func TestEmailShareAcceptFlow(t *testing.T) {
	e := newEnv(t)
	owner := e.createUser(t, "owner@example.com")
	bob := e.createUser(t, "bob@example.com")
	mallory := e.createUser(t, "mallory@example.com")
	p := e.createProject(t, owner.ID, "Shared", false)
	f := e.uploadFile(t, owner.ID, p.ID, "doc.pdf", []byte("x"))

	created, err := e.shareSvc.ShareWithEmail(context.Background(), owner.ID, service.ShareWithEmailInput{
		FileID:      f.ID,
		Email:       "Bob@Example.com",
		Permissions: domainpermission.Set{domainpermission.PermissionView, domainpermission.PermissionDownload},
	})
	if err != nil {
		t.Fatalf("ShareWithEmail failed: %v", err)
	}
	if created.IsAccepted {
		t.Error("a fresh invitation must not be accepted")
	}

	// No permission is granted until acceptance.
	if _, err := e.fileSvc.GetFile(context.Background(), bob.ID, f.ID); !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("invitee should have no access before accepting, got: %v", err)
	}

	// Only the invited address may accept.
	if _, err := e.shareSvc.AcceptEmailShare(context.Background(), mallory.ID, created.ID); !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("acceptance by another user should be forbidden, got: %v", err)
	}

	// Address matching is case-insensitive.
	rec, err := e.shareSvc.AcceptEmailShare(context.Background(), bob.ID, created.ID)
	if err != nil {
		t.Fatalf("AcceptEmailShare failed: %v", err)
	}
	if !rec.Permissions.Contains(domainpermission.PermissionDownload) {
		t.Errorf("accepted grant = %v, expected the invitation's set", rec.Permissions)
	}

	if _, err := e.fileSvc.GetFile(context.Background(), bob.ID, f.ID); err != nil {
		t.Errorf("invitee should hold VIEW after accepting: %v", err)
	}

	// Acceptance is one-shot.
	if _, err := e.shareSvc.AcceptEmailShare(context.Background(), bob.ID, created.ID); !errors.Is(err, apperrors.ErrConflict) {
		t.Errorf("double acceptance should conflict, got: %v", err)
	}
}

func TestAcceptExpiredEmailShare(t *testing.T) {
	e := newEnv(t)
	owner := e.createUser(t, "owner@example.com")
	bob := e.createUser(t, "bob@example.com")
	p := e.createProject(t, owner.ID, "Shared", false)
	f := e.uploadFile(t, owner.ID, p.ID, "doc.pdf", []byte("x"))

	past := time.Now().Add(-time.Minute)
	created, err := e.shares.CreateEmailShare(context.Background(), share.CreateEmailShareInput{
		FileID:      f.ID,
		SharedBy:    owner.ID,
		Email:       "bob@example.com",
		Permissions: domainpermission.Set{domainpermission.PermissionView},
		ExpiresAt:   &past,
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := e.shareSvc.AcceptEmailShare(context.Background(), bob.ID, created.ID); !errors.Is(err, apperrors.ErrExpired) {
		t.Errorf("accepting an expired invitation should yield expired, got: %v", err)
	}
}

func TestGetFilePermissionsScoping(t *testing.T) {
	e := newEnv(t)
	owner := e.createUser(t, "owner@example.com")
	reader := e.createUser(t, "reader@example.com")
	stranger := e.createUser(t, "stranger@example.com")
	p := e.createProject(t, owner.ID, "Shared", false)
	f := e.uploadFile(t, owner.ID, p.ID, "doc.pdf", []byte("x"))

	if _, err := e.shareSvc.ShareWithUser(context.Background(), owner.ID, service.ShareWithUserInput{
		FileID:      f.ID,
		SharedWith:  reader.ID,
		Permissions: domainpermission.Set{domainpermission.PermissionView},
	}); err != nil {
		t.Fatal(err)
	}

	// The uploader (SHARE via bypass) sees the full matrix.
	records, err := e.shareSvc.GetFilePermissions(context.Background(), owner.ID, f.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Errorf("owner sees %d records, expected 2 (own grant + reader's)", len(records))
	}

	// A plain grantee sees exactly their own record.
	records, err = e.shareSvc.GetFilePermissions(context.Background(), reader.ID, f.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].UserID != reader.ID {
		t.Errorf("reader should see only their own record, got %v", records)
	}

	// No grant at all: forbidden.
	if _, err := e.shareSvc.GetFilePermissions(context.Background(), stranger.ID, f.ID); !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("stranger should be forbidden, got: %v", err)
	}
}

func TestUpdateFilePermissionsReplacesGrant(t *testing.T) {
	e := newEnv(t)
	owner := e.createUser(t, "owner@example.com")
	reader := e.createUser(t, "reader@example.com")
	p := e.createProject(t, owner.ID, "Shared", false)
	f := e.uploadFile(t, owner.ID, p.ID, "doc.pdf", []byte("x"))

	if _, err := e.shareSvc.UpdateFilePermissions(context.Background(), owner.ID, f.ID, reader.ID,
		domainpermission.Set{domainpermission.PermissionView, domainpermission.PermissionDownload}); err != nil {
		t.Fatal(err)
	}

	rec, err := e.shareSvc.UpdateFilePermissions(context.Background(), owner.ID, f.ID, reader.ID,
		domainpermission.Set{domainpermission.PermissionView})
	if err != nil {
		t.Fatal(err)
	}
	if rec.Permissions.Contains(domainpermission.PermissionDownload) {
		t.Error("update must replace the grant, not merge into it")
	}

	if _, _, err := e.fileSvc.Download(context.Background(), reader.ID, f.ID); !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("download after the grant was narrowed should be forbidden, got: %v", err)
	}
}
