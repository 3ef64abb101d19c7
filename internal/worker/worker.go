// Package worker dispatches statement job messages to the spreadsheet
// exporter and the quick report mailer.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"homeledger/internal/amqp"
	"homeledger/internal/email"
	"homeledger/internal/services"
)

// JobWorker routes queue messages to the right processor.
type JobWorker struct {
	exports *services.ExportProcessor
	mailer  email.Mailer
}

func NewJobWorker(exports *services.ExportProcessor, mailer email.Mailer) *JobWorker {
	return &JobWorker{
		exports: exports,
		mailer:  mailer,
	}
}

// HandleMessage processes one job message. Errors bubble up to the
// consumer, which requeues the delivery.
func (w *JobWorker) HandleMessage(ctx context.Context, msg *amqp.JobMessage) error {
	switch msg.Kind {
	case amqp.KindStatementExport:
		return w.handleExport(ctx, msg.Statement)
	case amqp.KindReportEmail:
		return w.handleEmail(ctx, msg.Report)
	default:
		return fmt.Errorf("unknown message kind %q", msg.Kind)
	}
}

func (w *JobWorker) handleExport(ctx context.Context, msg *amqp.StatementExportMessage) error {
	if w.exports == nil {
		slog.WarnContext(ctx, "No exporter configured, skipping statement export",
			"statement_id", msg.StatementID)
		return nil
	}

	slog.InfoContext(ctx, "Processing statement export",
		"statement_id", msg.StatementID,
		"user_id", msg.UserID)
	return w.exports.ProcessStatement(ctx, msg.StatementID)
}

func (w *JobWorker) handleEmail(ctx context.Context, msg *amqp.ReportEmailMessage) error {
	if w.mailer == nil {
		slog.WarnContext(ctx, "No mailer configured, skipping report email",
			"recipient", msg.Recipient)
		return nil
	}

	slog.InfoContext(ctx, "Processing report email", "recipient", msg.Recipient)
	return w.mailer.SendQuickReport(ctx, msg.Name, msg.Recipient, msg.Body)
}
