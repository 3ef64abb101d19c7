// Package memory provides an in-memory statement writer used in tests and
// local runs without Google credentials.
package memory

import (
	"context"
	"fmt"
	"sync"

	"homeledger/internal/sheets"
)

type Store struct {
	mu   sync.Mutex
	rows []sheets.SummaryRow
}

func New() *Store {
	return &Store{}
}

// Append stores the row and returns a synthetic row reference.
func (s *Store) Append(_ context.Context, row sheets.SummaryRow) (string, error) {
	if err := row.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, row)
	return fmt.Sprintf("mem:%d", len(s.rows)), nil
}

// Rows returns a copy of the appended rows.
func (s *Store) Rows() []sheets.SummaryRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sheets.SummaryRow(nil), s.rows...)
}
