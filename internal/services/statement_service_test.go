package services

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"homeledger/internal/core"
	"homeledger/internal/storage"
)

func newTestService(t *testing.T) (*StatementService, *storage.SQLiteRepository) {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	// nil AMQP client: publishing is skipped, saves must still succeed.
	return NewStatementService(repo, nil), repo
}

func newTestUser(t *testing.T, repo *storage.SQLiteRepository) string {
	t.Helper()
	u := &storage.User{Email: "svc@example.com", PasswordHash: "hash"}
	if err := repo.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return u.ID
}

func sampleForm() *core.FormInput {
	return &core.FormInput{
		Income:     core.IncomeSection{PrimaryIncome: "5000"},
		Deductions: core.DeductionsSection{FederalIncomeTax: "800"},
		Needs:      core.NeedsSection{HousingExpenses: "1500"},
	}
}

func TestCreateStatementPersistsComputedPayload(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	userID := newTestUser(t, repo)

	result, err := svc.CreateStatement(ctx, userID, sampleForm(), nil)
	if err != nil {
		t.Fatalf("CreateStatement: %v", err)
	}
	if result.ID == "" {
		t.Fatal("expected statement id")
	}
	if got := result.Statement.GrossRevenue.Formatted; got != "$5,000.00" {
		t.Errorf("gross revenue = %q, want %q", got, "$5,000.00")
	}

	rec, err := repo.GetStatement(ctx, result.ID, userID)
	if err != nil {
		t.Fatalf("GetStatement: %v", err)
	}
	var stored core.Statement
	if err := json.Unmarshal(rec.Payload, &stored); err != nil {
		t.Fatalf("unmarshal stored payload: %v", err)
	}
	if stored.NetRevenue.Formatted != "$4,200.00" {
		t.Errorf("stored net revenue = %q, want %q", stored.NetRevenue.Formatted, "$4,200.00")
	}
}

func TestUpdateStatementReplacesPayload(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	userID := newTestUser(t, repo)

	created, err := svc.CreateStatement(ctx, userID, sampleForm(), nil)
	if err != nil {
		t.Fatalf("CreateStatement: %v", err)
	}

	form := sampleForm()
	form.Income.PrimaryIncome = "6000"
	updated, err := svc.UpdateStatement(ctx, created.ID, userID, form, nil)
	if err != nil {
		t.Fatalf("UpdateStatement: %v", err)
	}
	if updated.Statement.GrossRevenue.Formatted != "$6,000.00" {
		t.Errorf("updated gross revenue = %q", updated.Statement.GrossRevenue.Formatted)
	}

	rec, err := repo.GetStatement(ctx, created.ID, userID)
	if err != nil {
		t.Fatalf("GetStatement: %v", err)
	}
	var stored core.Statement
	if err := json.Unmarshal(rec.Payload, &stored); err != nil {
		t.Fatalf("unmarshal stored payload: %v", err)
	}
	if stored.GrossRevenue.Formatted != "$6,000.00" {
		t.Errorf("stored gross revenue = %q", stored.GrossRevenue.Formatted)
	}
}

func TestUpdateStatementUnknownID(t *testing.T) {
	svc, repo := newTestService(t)
	userID := newTestUser(t, repo)

	_, err := svc.UpdateStatement(context.Background(), "no-such-id", userID, sampleForm(), nil)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListStatements(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	userID := newTestUser(t, repo)

	for i := 0; i < 3; i++ {
		if _, err := svc.CreateStatement(ctx, userID, sampleForm(), nil); err != nil {
			t.Fatalf("CreateStatement %d: %v", i, err)
		}
	}

	items, total, err := svc.ListStatements(ctx, userID, 1, 10)
	if err != nil {
		t.Fatalf("ListStatements: %v", err)
	}
	if total != 3 || len(items) != 3 {
		t.Errorf("total = %d, items = %d, want 3 and 3", total, len(items))
	}
}
