package service_test

import (
	"context"
	"errors"
	"testing"

	domainactivity "docvault/internal/domain/activity"
	"docvault/internal/domain/project"
	"docvault/internal/service"
	apperrors "docvault/pkg/errors"
)

func TestCreateProjectDuplicateName(t *testing.T) {
	e := newEnv(t)
	owner := e.createUser(t, "owner@example.com")
	other := e.createUser(t, "other@example.com")

	e.createProject(t, owner.ID, "Research", false)

	// Same owner, same name (case-insensitively) conflicts.
	_, err := e.projectSvc.CreateProject(context.Background(), owner.ID, service.CreateProjectInput{Name: "research"})
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Errorf("duplicate name for the same owner should conflict, got: %v", err)
	}

	// A different owner may reuse the name.
	if _, err := e.projectSvc.CreateProject(context.Background(), other.ID, service.CreateProjectInput{Name: "Research"}); err != nil {
		t.Errorf("name reuse across owners should pass: %v", err)
	}
}

func TestProjectVisibility(t *testing.T) {
	e := newEnv(t)
	owner := e.createUser(t, "owner@example.com")
	other := e.createUser(t, "other@example.com")

	private := e.createProject(t, owner.ID, "Private", false)
	public := e.createProject(t, owner.ID, "Public", true)

	if _, err := e.projectSvc.GetProject(context.Background(), owner.ID, private.ID); err != nil {
		t.Errorf("owner should see their private project: %v", err)
	}

	// Not forbidden: a private project must not confirm its existence.
	if _, err := e.projectSvc.GetProject(context.Background(), other.ID, private.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("private project should be not found for non-owners, got: %v", err)
	}

	if _, err := e.projectSvc.GetProject(context.Background(), other.ID, public.ID); err != nil {
		t.Errorf("public project should be visible to everyone: %v", err)
	}
}

func TestUpdateProjectOwnerOnly(t *testing.T) {
	e := newEnv(t)
	owner := e.createUser(t, "owner@example.com")
	other := e.createUser(t, "other@example.com")
	public := e.createProject(t, owner.ID, "Public", true)

	name := "Renamed"
	if _, err := e.projectSvc.UpdateProject(context.Background(), other.ID, public.ID, project.UpdateProjectInput{Name: &name}); !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("non-owner update on a visible project should be forbidden, got: %v", err)
	}

	updated, err := e.projectSvc.UpdateProject(context.Background(), owner.ID, public.ID, project.UpdateProjectInput{Name: &name})
	if err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if updated.Name != name {
		t.Errorf("Name = %q, expected %q", updated.Name, name)
	}
}

func TestUpdateProjectRenameConflict(t *testing.T) {
	e := newEnv(t)
	owner := e.createUser(t, "owner@example.com")
	e.createProject(t, owner.ID, "First", false)
	second := e.createProject(t, owner.ID, "Second", false)

	name := "first"
	if _, err := e.projectSvc.UpdateProject(context.Background(), owner.ID, second.ID, project.UpdateProjectInput{Name: &name}); !errors.Is(err, apperrors.ErrConflict) {
		t.Errorf("rename onto a sibling's name should conflict, got: %v", err)
	}

	// Renaming to the project's own name (case change) is not a conflict.
	own := "SECOND"
	if _, err := e.projectSvc.UpdateProject(context.Background(), owner.ID, second.ID, project.UpdateProjectInput{Name: &own}); err != nil {
		t.Errorf("case-only rename of own project should pass: %v", err)
	}
}

func TestProjectTags(t *testing.T) {
	e := newEnv(t)
	owner := e.createUser(t, "owner@example.com")
	p := e.createProject(t, owner.ID, "Tagged", false)

	if _, err := e.projectSvc.AddTag(context.Background(), owner.ID, p.ID, "legal"); err != nil {
		t.Fatal(err)
	}

	// Duplicate tag (case-insensitively) is a no-op, not an error.
	updated, err := e.projectSvc.AddTag(context.Background(), owner.ID, p.ID, "LEGAL")
	if err != nil {
		t.Fatal(err)
	}
	if len(updated.Tags) != 1 {
		t.Errorf("Tags = %v, expected a single entry", updated.Tags)
	}

	if _, err := e.projectSvc.AddTag(context.Background(), owner.ID, p.ID, "   "); !errors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("blank tag should be rejected, got: %v", err)
	}

	if _, err := e.projectSvc.RemoveTag(context.Background(), owner.ID, p.ID, "missing"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("removing an absent tag should yield not found, got: %v", err)
	}

	updated, err = e.projectSvc.RemoveTag(context.Background(), owner.ID, p.ID, "Legal")
	if err != nil {
		t.Fatal(err)
	}
	if len(updated.Tags) != 0 {
		t.Errorf("Tags = %v, expected empty after removal", updated.Tags)
	}
}

func TestCommentLandsInTrail(t *testing.T) {
	e := newEnv(t)
	owner := e.createUser(t, "owner@example.com")
	visitor := e.createUser(t, "visitor@example.com")
	public := e.createProject(t, owner.ID, "Public", true)

	if _, err := e.projectSvc.Comment(context.Background(), owner.ID, public.ID, "  "); !errors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("blank comment should be rejected, got: %v", err)
	}

	// Any user who can see the project may comment.
	entry, err := e.projectSvc.Comment(context.Background(), visitor.ID, public.ID, "looks good")
	if err != nil {
		t.Fatalf("Comment failed: %v", err)
	}
	if entry.Type != domainactivity.TypeCommented {
		t.Errorf("Type = %s, expected commented", entry.Type)
	}
	if entry.Details["comment"] != "looks good" {
		t.Errorf("Details = %v, expected the comment text", entry.Details)
	}
}

func TestListActivitiesOrderAndLimit(t *testing.T) {
	e := newEnv(t)
	owner := e.createUser(t, "owner@example.com")
	p := e.createProject(t, owner.ID, "Busy", false)

	comments := []string{"first", "second", "third"}
	for _, text := range comments {
		if _, err := e.projectSvc.Comment(context.Background(), owner.ID, p.ID, text); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := e.projectSvc.ListActivities(context.Background(), owner.ID, p.ID, 0)
	if err != nil {
		t.Fatal(err)
	}
	// created + three comments, newest first.
	if len(entries) != 4 {
		t.Fatalf("got %d entries, expected 4", len(entries))
	}
	if entries[0].Details["comment"] != "third" {
		t.Errorf("newest entry = %v, expected the last comment", entries[0].Details)
	}
	if entries[len(entries)-1].Type != domainactivity.TypeCreated {
		t.Errorf("oldest entry type = %s, expected created", entries[len(entries)-1].Type)
	}

	limited, err := e.projectSvc.ListActivities(context.Background(), owner.ID, p.ID, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 {
		t.Errorf("got %d entries with limit 2", len(limited))
	}
}

func TestListActivitiesHidesInvisibleProjects(t *testing.T) {
	e := newEnv(t)
	owner := e.createUser(t, "owner@example.com")
	other := e.createUser(t, "other@example.com")
	private := e.createProject(t, owner.ID, "Private", false)

	_, err := e.projectSvc.ListActivities(context.Background(), other.ID, private.ID, 0)
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("trail of an invisible project should be not found, got: %v", err)
	}
}

func TestDeleteProjectKeepsTrail(t *testing.T) {
	e := newEnv(t)
	owner := e.createUser(t, "owner@example.com")
	p := e.createProject(t, owner.ID, "Doomed", false)
	f := e.uploadFile(t, owner.ID, p.ID, "doc.txt", []byte("bytes"))

	if err := e.projectSvc.DeleteProject(context.Background(), owner.ID, p.ID); err != nil {
		t.Fatalf("DeleteProject failed: %v", err)
	}

	if _, err := e.projects.GetByID(context.Background(), p.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("project row should be gone, got: %v", err)
	}
	if _, err := e.blobs.Get(context.Background(), f.StorageKey); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("stored content should be gone, got: %v", err)
	}

	// The trail outlives the project and records the deletion itself.
	entries, err := e.projectSvc.ListActivities(context.Background(), owner.ID, p.ID, 0)
	if err != nil {
		t.Fatalf("trail of a deleted project should stay retrievable: %v", err)
	}
	if len(entries) < 3 {
		t.Fatalf("got %d entries, expected at least created, file_added and deleted", len(entries))
	}
	if entries[0].Type != domainactivity.TypeDeleted {
		t.Errorf("newest entry type = %s, expected deleted", entries[0].Type)
	}
}

func TestDeleteProjectOwnerOnly(t *testing.T) {
	e := newEnv(t)
	owner := e.createUser(t, "owner@example.com")
	other := e.createUser(t, "other@example.com")
	public := e.createProject(t, owner.ID, "Public", true)

	if err := e.projectSvc.DeleteProject(context.Background(), other.ID, public.ID); !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("non-owner delete should be forbidden, got: %v", err)
	}
}
