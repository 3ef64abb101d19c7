// Package services orchestrates the statement engine across storage, the
// message queue and the spreadsheet exporter.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"homeledger/internal/amqp"
	"homeledger/internal/core"
	"homeledger/internal/storage"
)

// StatementService computes statements and persists them, queueing a
// spreadsheet export for each save.
type StatementService struct {
	storage    *storage.SQLiteRepository
	amqpClient *amqp.Client
}

func NewStatementService(storage *storage.SQLiteRepository, amqpClient *amqp.Client) *StatementService {
	return &StatementService{
		storage:    storage,
		amqpClient: amqpClient,
	}
}

// StatementResult pairs a stored statement id with its computed payload.
type StatementResult struct {
	ID        string          `json:"id"`
	Statement *core.Statement `json:"statement"`
}

// CreateStatement computes a statement from the form and saves it.
func (s *StatementService) CreateStatement(ctx context.Context, userID string, form *core.FormInput, settings core.C2ESettings) (*StatementResult, error) {
	st := core.ComputeStatement(form, settings)

	payload, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("marshal statement: %w", err)
	}

	id, err := s.storage.CreateStatement(ctx, userID, payload)
	if err != nil {
		return nil, fmt.Errorf("save statement: %w", err)
	}

	// Queue the spreadsheet export. The statement is already saved, so a
	// publish failure must not fail the request; the periodic sweep will
	// pick the row up later.
	s.publishExport(ctx, id, userID)

	return &StatementResult{ID: id, Statement: st}, nil
}

// UpdateStatement recomputes a statement and replaces the stored payload.
func (s *StatementService) UpdateStatement(ctx context.Context, id, userID string, form *core.FormInput, settings core.C2ESettings) (*StatementResult, error) {
	st := core.ComputeStatement(form, settings)

	payload, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("marshal statement: %w", err)
	}

	if err := s.storage.UpdateStatement(ctx, id, userID, payload); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("update statement: %w", err)
	}

	s.publishExport(ctx, id, userID)

	return &StatementResult{ID: id, Statement: st}, nil
}

// GetStatement loads one of the user's stored statements.
func (s *StatementService) GetStatement(ctx context.Context, id, userID string) (*storage.StatementRecord, error) {
	return s.storage.GetStatement(ctx, id, userID)
}

// ListStatements returns one page of the user's statements plus the total.
func (s *StatementService) ListStatements(ctx context.Context, userID string, page, limit int) ([]storage.StatementRecord, int, error) {
	return s.storage.ListStatements(ctx, userID, page, limit)
}

func (s *StatementService) publishExport(ctx context.Context, id, userID string) {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping export message", "statement_id", id)
		return
	}
	if err := s.amqpClient.PublishStatementExport(ctx, id, userID); err != nil {
		slog.ErrorContext(ctx, "Failed to publish export message",
			"statement_id", id, "error", err)
	}
}
