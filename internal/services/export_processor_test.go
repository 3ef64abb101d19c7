package services

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"homeledger/internal/core"
	"homeledger/internal/sheets/memory"
	"homeledger/internal/storage"
)

func TestProcessStatementExportsRow(t *testing.T) {
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	defer repo.Close()
	ctx := context.Background()

	u := &storage.User{Email: "export@example.com", PasswordHash: "hash"}
	if err := repo.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	st := core.ComputeStatement(&core.FormInput{
		Income:     core.IncomeSection{PrimaryIncome: "5000"},
		Deductions: core.DeductionsSection{FederalIncomeTax: "800"},
	}, nil)
	payload, err := json.Marshal(st)
	if err != nil {
		t.Fatalf("marshal statement: %v", err)
	}
	id, err := repo.CreateStatement(ctx, u.ID, payload)
	if err != nil {
		t.Fatalf("CreateStatement: %v", err)
	}

	store := memory.New()
	p := NewExportProcessor(repo, store, DefaultExportProcessorConfig())

	if err := p.ProcessStatement(ctx, id); err != nil {
		t.Fatalf("ProcessStatement: %v", err)
	}

	rows := store.Rows()
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0].StatementID != id {
		t.Errorf("row statement id = %q, want %q", rows[0].StatementID, id)
	}
	if rows[0].GrossRevenue != 5000 || rows[0].NetRevenue != 4200 {
		t.Errorf("row values = %+v", rows[0])
	}

	rec, err := repo.GetStatementForExport(ctx, id)
	if err != nil {
		t.Fatalf("GetStatementForExport: %v", err)
	}
	if rec.ExportStatus != storage.ExportSynced {
		t.Errorf("export status = %q, want %q", rec.ExportStatus, storage.ExportSynced)
	}

	// A synced statement no longer shows up in the sweep.
	pending, err := repo.GetPendingExports(ctx, 10)
	if err != nil {
		t.Fatalf("GetPendingExports: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("pending after export = %d, want 0", len(pending))
	}
}

func TestProcessStatementUnknownID(t *testing.T) {
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	defer repo.Close()

	p := NewExportProcessor(repo, memory.New(), DefaultExportProcessorConfig())
	if err := p.ProcessStatement(context.Background(), "missing"); err == nil {
		t.Error("expected error for unknown statement id")
	}
}

func TestExportMarksErrorOnBadPayload(t *testing.T) {
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	defer repo.Close()
	ctx := context.Background()

	u := &storage.User{Email: "bad@example.com", PasswordHash: "hash"}
	if err := repo.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	id, err := repo.CreateStatement(ctx, u.ID, json.RawMessage(`not json`))
	if err != nil {
		t.Fatalf("CreateStatement: %v", err)
	}

	p := NewExportProcessor(repo, memory.New(), DefaultExportProcessorConfig())
	if err := p.ProcessStatement(ctx, id); err == nil {
		t.Fatal("expected unmarshal error")
	}

	rec, err := repo.GetStatementForExport(ctx, id)
	if err != nil {
		t.Fatalf("GetStatementForExport: %v", err)
	}
	if rec.ExportStatus != storage.ExportError {
		t.Errorf("export status = %q, want %q", rec.ExportStatus, storage.ExportError)
	}
}
