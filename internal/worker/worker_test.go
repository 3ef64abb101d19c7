package worker

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"homeledger/internal/amqp"
	"homeledger/internal/core"
	"homeledger/internal/services"
	"homeledger/internal/sheets/memory"
	"homeledger/internal/storage"
)

type fakeMailer struct {
	sent []string
}

func (m *fakeMailer) SendQuickReport(_ context.Context, name, recipient, body string) error {
	m.sent = append(m.sent, recipient)
	return nil
}

func TestHandleExportMessage(t *testing.T) {
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	defer repo.Close()
	ctx := context.Background()

	u := &storage.User{Email: "w@example.com", PasswordHash: "hash"}
	if err := repo.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	st := core.ComputeStatement(&core.FormInput{
		Income: core.IncomeSection{PrimaryIncome: "5000"},
	}, nil)
	payload, _ := json.Marshal(st)
	id, err := repo.CreateStatement(ctx, u.ID, payload)
	if err != nil {
		t.Fatalf("CreateStatement: %v", err)
	}

	store := memory.New()
	w := NewJobWorker(
		services.NewExportProcessor(repo, store, services.DefaultExportProcessorConfig()),
		&fakeMailer{},
	)

	if err := w.HandleMessage(ctx, amqp.NewStatementExportMessage(id, u.ID)); err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if rows := store.Rows(); len(rows) != 1 || rows[0].StatementID != id {
		t.Errorf("rows = %+v, want one row for %s", store.Rows(), id)
	}
}

func TestHandleEmailMessage(t *testing.T) {
	mailer := &fakeMailer{}
	w := NewJobWorker(nil, mailer)

	msg := amqp.NewReportEmailMessage("Ada", "ada@example.com", "report body")
	if err := w.HandleMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if len(mailer.sent) != 1 || mailer.sent[0] != "ada@example.com" {
		t.Errorf("sent = %v", mailer.sent)
	}
}

func TestHandleUnknownKind(t *testing.T) {
	w := NewJobWorker(nil, &fakeMailer{})
	if err := w.HandleMessage(context.Background(), &amqp.JobMessage{Kind: "mystery"}); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestHandleExportWithoutExporter(t *testing.T) {
	w := NewJobWorker(nil, nil)
	msg := amqp.NewStatementExportMessage("stmt-1", "user-1")
	if err := w.HandleMessage(context.Background(), msg); err != nil {
		t.Errorf("export without exporter should be skipped, got %v", err)
	}
}
