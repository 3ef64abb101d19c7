// Package storage persists users and computed statements in SQLite.
//
// Statements are stored as opaque JSON blobs keyed by a generated id and
// the owning user id; an update replaces the payload wholesale. The
// export_status column tracks which statements still need to be pushed to
// the spreadsheet exporter.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

var (
	// ErrNotFound is returned when a row does not exist or belongs to a
	// different user. Callers must not learn which of the two it was.
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken is returned when a user registration collides on email.
	ErrEmailTaken = errors.New("email already registered")
)

// Export statuses for the spreadsheet sync worker.
const (
	ExportPending = "pending"
	ExportSynced  = "synced"
	ExportError   = "error"
)

// User is a stored account row.
type User struct {
	ID           string
	Email        string
	DisplayName  string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// StatementRecord is a stored statement row. Payload is the statement JSON
// exactly as computed; the engine's wire shape is preserved byte for byte.
type StatementRecord struct {
	ID           string
	UserID       string
	Payload      json.RawMessage
	ExportStatus string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// CreateUser inserts a new account, generating its id.
func (r *SQLiteRepository) CreateUser(ctx context.Context, u *User) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, email, display_name, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.DisplayName, u.PasswordHash, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		// The unique index on email is the source of truth for duplicates.
		var existing string
		lookupErr := r.db.QueryRowContext(ctx,
			`SELECT id FROM users WHERE email = ?`, u.Email).Scan(&existing)
		if lookupErr == nil {
			return ErrEmailTaken
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetUserByEmail returns the account for an email, or ErrNotFound.
func (r *SQLiteRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx, `
		SELECT id, email, display_name, password_hash, created_at, updated_at
		FROM users WHERE email = ?`, email))
}

// GetUserByID returns the account for an id, or ErrNotFound.
func (r *SQLiteRepository) GetUserByID(ctx context.Context, id string) (*User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx, `
		SELECT id, email, display_name, password_hash, created_at, updated_at
		FROM users WHERE id = ?`, id))
}

func (r *SQLiteRepository) scanUser(row *sql.Row) (*User, error) {
	u := &User{}
	err := row.Scan(&u.ID, &u.Email, &u.DisplayName, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return u, nil
}

// CreateStatement stores a freshly computed statement and returns its id.
func (r *SQLiteRepository) CreateStatement(ctx context.Context, userID string, payload json.RawMessage) (string, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO statements (id, user_id, payload, export_status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id, userID, string(payload), ExportPending, now, now)
	if err != nil {
		return "", fmt.Errorf("create statement: %w", err)
	}
	return id, nil
}

// UpdateStatement replaces the payload of an existing statement. Ownership
// is enforced in the WHERE clause; updating another user's statement is
// indistinguishable from updating a missing one.
func (r *SQLiteRepository) UpdateStatement(ctx context.Context, id, userID string, payload json.RawMessage) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE statements
		SET payload = ?, export_status = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		string(payload), ExportPending, time.Now().UTC(), id, userID)
	if err != nil {
		return fmt.Errorf("update statement: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update statement rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetStatement returns one statement owned by userID.
func (r *SQLiteRepository) GetStatement(ctx context.Context, id, userID string) (*StatementRecord, error) {
	rec := &StatementRecord{}
	var payload string
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, payload, export_status, created_at, updated_at
		FROM statements WHERE id = ? AND user_id = ?`, id, userID).
		Scan(&rec.ID, &rec.UserID, &payload, &rec.ExportStatus, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get statement: %w", err)
	}
	rec.Payload = json.RawMessage(payload)
	return rec, nil
}

// ListStatements returns one page of a user's statements, newest first,
// along with the total count for pagination.
func (r *SQLiteRepository) ListStatements(ctx context.Context, userID string, page, limit int) ([]StatementRecord, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM statements WHERE user_id = ?`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count statements: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, payload, export_status, created_at, updated_at
		FROM statements WHERE user_id = ?
		ORDER BY created_at DESC, id
		LIMIT ? OFFSET ?`, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list statements: %w", err)
	}
	defer rows.Close()

	var out []StatementRecord
	for rows.Next() {
		rec := StatementRecord{}
		var payload string
		if err := rows.Scan(&rec.ID, &rec.UserID, &payload, &rec.ExportStatus, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan statement: %w", err)
		}
		rec.Payload = json.RawMessage(payload)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate statements: %w", err)
	}
	return out, total, nil
}

// GetStatementForExport loads one statement by id regardless of owner.
// Only the export worker uses this path.
func (r *SQLiteRepository) GetStatementForExport(ctx context.Context, id string) (*StatementRecord, error) {
	rec := &StatementRecord{}
	var payload string
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, payload, export_status, created_at, updated_at
		FROM statements WHERE id = ?`, id).
		Scan(&rec.ID, &rec.UserID, &payload, &rec.ExportStatus, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get statement for export: %w", err)
	}
	rec.Payload = json.RawMessage(payload)
	return rec, nil
}

// GetPendingExports returns statements not yet pushed to the spreadsheet,
// oldest first, capped at limit.
func (r *SQLiteRepository) GetPendingExports(ctx context.Context, limit int) ([]StatementRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, payload, export_status, created_at, updated_at
		FROM statements WHERE export_status = ?
		ORDER BY updated_at
		LIMIT ?`, ExportPending, limit)
	if err != nil {
		return nil, fmt.Errorf("get pending exports: %w", err)
	}
	defer rows.Close()

	var out []StatementRecord
	for rows.Next() {
		rec := StatementRecord{}
		var payload string
		if err := rows.Scan(&rec.ID, &rec.UserID, &payload, &rec.ExportStatus, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan pending export: %w", err)
		}
		rec.Payload = json.RawMessage(payload)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// MarkExported records a successful spreadsheet export.
func (r *SQLiteRepository) MarkExported(ctx context.Context, id string) error {
	return r.setExportStatus(ctx, id, ExportSynced)
}

// MarkExportError records a failed spreadsheet export so the periodic
// sweep can retry it later.
func (r *SQLiteRepository) MarkExportError(ctx context.Context, id string) error {
	return r.setExportStatus(ctx, id, ExportError)
}

func (r *SQLiteRepository) setExportStatus(ctx context.Context, id, status string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE statements SET export_status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("set export status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set export status rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
