package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"homeledger/internal/core"
	"homeledger/internal/sheets"
	"homeledger/internal/storage"
)

// ExportProcessorConfig holds configuration for the export processor.
type ExportProcessorConfig struct {
	// PollInterval is how often to sweep for pending statements.
	PollInterval time.Duration

	// BatchSize is the max number of statements per sweep.
	BatchSize int
}

// DefaultExportProcessorConfig returns sensible defaults.
func DefaultExportProcessorConfig() ExportProcessorConfig {
	return ExportProcessorConfig{
		PollInterval: 30 * time.Second,
		BatchSize:    10,
	}
}

// ExportProcessor pushes saved statements to the spreadsheet. Queue
// messages drive the fast path; a periodic sweep picks up statements
// whose message was lost. Statements marked with an export error stay
// parked until their payload is updated again.
type ExportProcessor struct {
	storage *storage.SQLiteRepository
	writer  sheets.StatementWriter
	config  ExportProcessorConfig

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func NewExportProcessor(storage *storage.SQLiteRepository, writer sheets.StatementWriter, config ExportProcessorConfig) *ExportProcessor {
	return &ExportProcessor{
		storage: storage,
		writer:  writer,
		config:  config,
	}
}

// ProcessStatement exports a single statement by id. Used by the queue
// consumer; an error requeues the message.
func (p *ExportProcessor) ProcessStatement(ctx context.Context, statementID string) error {
	rec, err := p.storage.GetStatementForExport(ctx, statementID)
	if err != nil {
		return fmt.Errorf("load statement %s: %w", statementID, err)
	}
	return p.export(ctx, rec)
}

func (p *ExportProcessor) export(ctx context.Context, rec *storage.StatementRecord) error {
	var st core.Statement
	if err := json.Unmarshal(rec.Payload, &st); err != nil {
		// The payload is unreadable; retrying will not help.
		if markErr := p.storage.MarkExportError(ctx, rec.ID); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark export error", "statement_id", rec.ID, "error", markErr)
		}
		return fmt.Errorf("unmarshal statement %s: %w", rec.ID, err)
	}

	row := sheets.NewSummaryRow(rec.ID, &st)
	rowRef, err := p.writer.Append(ctx, row)
	if err != nil {
		if markErr := p.storage.MarkExportError(ctx, rec.ID); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark export error", "statement_id", rec.ID, "error", markErr)
		}
		return fmt.Errorf("append statement %s: %w", rec.ID, err)
	}

	if err := p.storage.MarkExported(ctx, rec.ID); err != nil {
		return fmt.Errorf("mark exported %s: %w", rec.ID, err)
	}

	slog.InfoContext(ctx, "Exported statement to spreadsheet",
		"statement_id", rec.ID,
		"row", rowRef)
	return nil
}

// Start begins the periodic sweep. Returns an error if already running.
func (p *ExportProcessor) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return fmt.Errorf("export processor is already running")
	}
	p.running = true
	p.stopCh = make(chan struct{})
	p.doneCh = make(chan struct{})
	p.mu.Unlock()

	go p.runLoop(ctx)

	slog.InfoContext(ctx, "Export processor started",
		"poll_interval", p.config.PollInterval,
		"batch_size", p.config.BatchSize)
	return nil
}

// Stop gracefully stops the sweep and waits for the loop to exit.
func (p *ExportProcessor) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return nil
	}
	p.mu.Unlock()

	close(p.stopCh)

	select {
	case <-p.doneCh:
		slog.InfoContext(ctx, "Export processor stopped gracefully")
	case <-ctx.Done():
		slog.WarnContext(ctx, "Export processor stop timed out")
		return ctx.Err()
	}

	p.mu.Lock()
	p.running = false
	p.mu.Unlock()
	return nil
}

func (p *ExportProcessor) runLoop(ctx context.Context) {
	defer close(p.doneCh)

	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.sweep(ctx)
		}
	}
}

// sweep exports a batch of statements still marked pending.
func (p *ExportProcessor) sweep(ctx context.Context) {
	pending, err := p.storage.GetPendingExports(ctx, p.config.BatchSize)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to load pending exports", "error", err)
		return
	}
	if len(pending) == 0 {
		return
	}

	slog.InfoContext(ctx, "Sweeping pending exports", "count", len(pending))
	for i := range pending {
		if err := p.export(ctx, &pending[i]); err != nil {
			slog.ErrorContext(ctx, "Sweep export failed",
				"statement_id", pending[i].ID, "error", err)
		}
	}
}
