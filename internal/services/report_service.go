package services

import (
	"context"
	"log/slog"

	"homeledger/internal/amqp"
	"homeledger/internal/core"
)

// ReportService computes quick reports and queues their email delivery.
type ReportService struct {
	amqpClient *amqp.Client
}

func NewReportService(amqpClient *amqp.Client) *ReportService {
	return &ReportService{amqpClient: amqpClient}
}

// QuickReport computes the report and, when an email address was given,
// queues its delivery. The computed report is always returned so the
// caller sees the result even if the broker is down.
func (s *ReportService) QuickReport(ctx context.Context, in core.QuickReportInput) core.QuickReport {
	report := core.ComputeQuickReport(in)

	if in.Email == "" {
		return report
	}
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping report email", "recipient", in.Email)
		return report
	}
	if err := s.amqpClient.PublishReportEmail(ctx, in.Name, in.Email, report.RenderText()); err != nil {
		slog.ErrorContext(ctx, "Failed to publish report email message",
			"recipient", in.Email, "error", err)
	}
	return report
}
