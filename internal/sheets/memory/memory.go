package memory

import (
	"context"
	"sync"

	ports "financas/internal/sheets"
)

// Store is an in-memory row store speaking the same port as the Sheets
// client. It is the default backend for local runs and the test double for
// everything above the store layer.
type Store struct {
	mu     sync.Mutex
	header []string
	rows   [][]string

	// Optional fault injection for tests.
	appendErr error
	readErr   error
}

var _ ports.RowStore = (*Store)(nil)

// New creates a store with the standard 5-column header already in place.
func New() *Store {
	return &Store{header: []string{"data", "descricao", "categoria", "valor", "cartao"}}
}

// NewWithHeader creates a store whose tab carries the given header row.
// Useful for exercising schema-mismatch handling.
func NewWithHeader(header []string) *Store {
	return &Store{header: append([]string(nil), header...)}
}

// AppendRow implements ports.RowAppender.
func (s *Store) AppendRow(_ context.Context, row []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.appendErr != nil {
		return s.appendErr
	}
	s.rows = append(s.rows, append([]string(nil), row...))
	return nil
}

// ReadRows implements ports.RowReader. Rows come back in storage order.
func (s *Store) ReadRows(_ context.Context) ([]string, [][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return nil, nil, s.readErr
	}
	header := append([]string(nil), s.header...)
	rows := make([][]string, 0, len(s.rows))
	for _, r := range s.rows {
		rows = append(rows, append([]string(nil), r...))
	}
	return header, rows, nil
}

// FailAppend makes every subsequent AppendRow return err. Pass nil to clear.
func (s *Store) FailAppend(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendErr = err
}

// FailRead makes every subsequent ReadRows return err. Pass nil to clear.
func (s *Store) FailRead(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readErr = err
}

// Len returns the number of data rows stored.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}
