package storage

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func createTestUser(t *testing.T, repo *SQLiteRepository, email string) *User {
	t.Helper()
	u := &User{Email: email, DisplayName: "Test User", PasswordHash: "hash"}
	if err := repo.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return u
}

func TestCreateAndGetUser(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	u := createTestUser(t, repo, "ada@example.com")
	if u.ID == "" {
		t.Fatal("expected generated user id")
	}

	byEmail, err := repo.GetUserByEmail(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if byEmail.ID != u.ID {
		t.Errorf("GetUserByEmail id = %q, want %q", byEmail.ID, u.ID)
	}

	byID, err := repo.GetUserByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if byID.Email != "ada@example.com" {
		t.Errorf("GetUserByID email = %q", byID.Email)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	repo := newTestRepo(t)
	createTestUser(t, repo, "dup@example.com")

	err := repo.CreateUser(context.Background(), &User{Email: "dup@example.com", PasswordHash: "other"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestGetUserNotFound(t *testing.T) {
	repo := newTestRepo(t)
	if _, err := repo.GetUserByEmail(context.Background(), "nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStatementLifecycle(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	u := createTestUser(t, repo, "owner@example.com")

	payload := json.RawMessage(`{"grossRevenue":{"value":5000,"formatted":"$5,000.00"}}`)
	id, err := repo.CreateStatement(ctx, u.ID, payload)
	if err != nil {
		t.Fatalf("CreateStatement: %v", err)
	}

	rec, err := repo.GetStatement(ctx, id, u.ID)
	if err != nil {
		t.Fatalf("GetStatement: %v", err)
	}
	if string(rec.Payload) != string(payload) {
		t.Errorf("payload = %s, want %s", rec.Payload, payload)
	}
	if rec.ExportStatus != ExportPending {
		t.Errorf("export status = %q, want %q", rec.ExportStatus, ExportPending)
	}

	updated := json.RawMessage(`{"grossRevenue":{"value":6000,"formatted":"$6,000.00"}}`)
	if err := repo.UpdateStatement(ctx, id, u.ID, updated); err != nil {
		t.Fatalf("UpdateStatement: %v", err)
	}
	rec, err = repo.GetStatement(ctx, id, u.ID)
	if err != nil {
		t.Fatalf("GetStatement after update: %v", err)
	}
	if string(rec.Payload) != string(updated) {
		t.Errorf("payload after update = %s", rec.Payload)
	}
}

func TestStatementOwnership(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	owner := createTestUser(t, repo, "owner@example.com")
	other := createTestUser(t, repo, "other@example.com")

	id, err := repo.CreateStatement(ctx, owner.ID, json.RawMessage(`{}`))
	if err != nil {
		t.Fatalf("CreateStatement: %v", err)
	}

	if _, err := repo.GetStatement(ctx, id, other.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("cross-user get: expected ErrNotFound, got %v", err)
	}
	if err := repo.UpdateStatement(ctx, id, other.ID, json.RawMessage(`{"x":1}`)); !errors.Is(err, ErrNotFound) {
		t.Errorf("cross-user update: expected ErrNotFound, got %v", err)
	}
}

func TestListStatementsPagination(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	u := createTestUser(t, repo, "pager@example.com")

	for i := 0; i < 5; i++ {
		if _, err := repo.CreateStatement(ctx, u.ID, json.RawMessage(`{}`)); err != nil {
			t.Fatalf("CreateStatement %d: %v", i, err)
		}
	}

	page1, total, err := repo.ListStatements(ctx, u.ID, 1, 2)
	if err != nil {
		t.Fatalf("ListStatements: %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if len(page1) != 2 {
		t.Errorf("page 1 size = %d, want 2", len(page1))
	}

	page3, _, err := repo.ListStatements(ctx, u.ID, 3, 2)
	if err != nil {
		t.Fatalf("ListStatements page 3: %v", err)
	}
	if len(page3) != 1 {
		t.Errorf("page 3 size = %d, want 1", len(page3))
	}
}

func TestExportStatusFlow(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	u := createTestUser(t, repo, "export@example.com")

	id, err := repo.CreateStatement(ctx, u.ID, json.RawMessage(`{}`))
	if err != nil {
		t.Fatalf("CreateStatement: %v", err)
	}

	pending, err := repo.GetPendingExports(ctx, 10)
	if err != nil {
		t.Fatalf("GetPendingExports: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != id {
		t.Fatalf("pending = %+v, want one record with id %s", pending, id)
	}

	if err := repo.MarkExported(ctx, id); err != nil {
		t.Fatalf("MarkExported: %v", err)
	}
	pending, err = repo.GetPendingExports(ctx, 10)
	if err != nil {
		t.Fatalf("GetPendingExports after mark: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("expected no pending exports, got %d", len(pending))
	}

	// Updating the payload re-queues the statement for export.
	if err := repo.UpdateStatement(ctx, id, u.ID, json.RawMessage(`{"v":2}`)); err != nil {
		t.Fatalf("UpdateStatement: %v", err)
	}
	pending, err = repo.GetPendingExports(ctx, 10)
	if err != nil {
		t.Fatalf("GetPendingExports after update: %v", err)
	}
	if len(pending) != 1 {
		t.Errorf("expected statement re-queued for export, got %d pending", len(pending))
	}

	if err := repo.MarkExportError(ctx, id); err != nil {
		t.Fatalf("MarkExportError: %v", err)
	}
	rec, err := repo.GetStatementForExport(ctx, id)
	if err != nil {
		t.Fatalf("GetStatementForExport: %v", err)
	}
	if rec.ExportStatus != ExportError {
		t.Errorf("export status = %q, want %q", rec.ExportStatus, ExportError)
	}
}
