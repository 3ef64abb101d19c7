package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"homeledger/internal/auth"
	"homeledger/internal/core"
	"homeledger/internal/storage"
)

// statementRequest is the body of POST /api/statements and PUT
// /api/statements/{id}: the raw form values plus the cost-to-earn toggle
// settings keyed by field name.
type statementRequest struct {
	Form     core.FormInput    `json:"form"`
	Settings core.C2ESettings  `json:"settings"`
}

type statementListItem struct {
	ID           string          `json:"id"`
	ExportStatus string          `json:"exportStatus"`
	CreatedAt    string          `json:"createdAt"`
	UpdatedAt    string          `json:"updatedAt"`
	Statement    json.RawMessage `json:"statement"`
}

type statementListResponse struct {
	Items []statementListItem `json:"items"`
	Total int                 `json:"total"`
	Page  int                 `json:"page"`
	Limit int                 `json:"limit"`
}

// handleStatements serves POST (create) and GET (list) on /api/statements.
func (s *Server) handleStatements(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.createStatement(w, r)
	case http.MethodGet:
		s.listStatements(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleStatementByID serves GET and PUT on /api/statements/{id}.
func (s *Server) handleStatementByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/statements/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "statement not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.getStatement(w, r, id)
	case http.MethodPut:
		s.updateStatement(w, r, id)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) createStatement(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req statementRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.statements.CreateStatement(r.Context(), userID, &req.Form, req.Settings)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to create statement", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save statement")
		return
	}

	if s.metrics != nil {
		s.metrics.StatementComputed()
	}
	writeJSON(w, http.StatusCreated, result)
}

func (s *Server) updateStatement(w http.ResponseWriter, r *http.Request, id string) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req statementRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.statements.UpdateStatement(r.Context(), id, userID, &req.Form, req.Settings)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "statement not found")
			return
		}
		slog.ErrorContext(r.Context(), "Failed to update statement", "statement_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update statement")
		return
	}

	if s.metrics != nil {
		s.metrics.StatementComputed()
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) getStatement(w http.ResponseWriter, r *http.Request, id string) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	rec, err := s.statements.GetStatement(r.Context(), id, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "statement not found")
			return
		}
		slog.ErrorContext(r.Context(), "Failed to load statement", "statement_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load statement")
		return
	}

	writeJSON(w, http.StatusOK, recordToItem(rec))
}

func (s *Server) listStatements(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)
	if limit > 100 {
		limit = 100
	}

	records, total, err := s.statements.ListStatements(r.Context(), userID, page, limit)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list statements", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list statements")
		return
	}

	items := make([]statementListItem, 0, len(records))
	for i := range records {
		items = append(items, recordToItem(&records[i]))
	}

	writeJSON(w, http.StatusOK, statementListResponse{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

func recordToItem(rec *storage.StatementRecord) statementListItem {
	return statementListItem{
		ID:           rec.ID,
		ExportStatus: rec.ExportStatus,
		CreatedAt:    rec.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:    rec.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
		Statement:    rec.Payload,
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
