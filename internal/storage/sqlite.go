package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"financas/internal/core"
	ports "financas/internal/sheets"

	_ "modernc.org/sqlite"
)

// SQLiteStore is a local, durable row store speaking the same port as the
// Sheets client. Rows keep the tab's text representation; coercion still
// happens on read, above the store layer.
type SQLiteStore struct {
	db *sql.DB
}

var _ ports.RowStore = (*SQLiteStore)(nil)

// NewSQLiteStore opens (or creates) the database at dbPath and runs
// migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// AppendRow implements ports.RowAppender. Rows shorter than the schema are
// padded with empty cells, matching how a sparse sheet row reads back.
func (s *SQLiteStore) AppendRow(ctx context.Context, row []string) error {
	padded := make([]string, len(core.Columns))
	copy(padded, row)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (data, descricao, categoria, valor, cartao) VALUES (?, ?, ?, ?, ?)`,
		padded[0], padded[1], padded[2], padded[3], padded[4])
	if err != nil {
		return fmt.Errorf("%w: insert transaction: %v", ports.ErrStore, err)
	}
	return nil
}

// ReadRows implements ports.RowReader. The synthesized header matches the
// sheet schema so the repository's projection applies unchanged.
func (s *SQLiteStore) ReadRows(ctx context.Context) ([]string, [][]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT data, descricao, categoria, valor, cartao FROM transactions ORDER BY id`)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: select transactions: %v", ports.ErrStore, err)
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		row := make([]string, 5)
		if err := rows.Scan(&row[0], &row[1], &row[2], &row[3], &row[4]); err != nil {
			return nil, nil, fmt.Errorf("%w: scan transaction: %v", ports.ErrStore, err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w: iterate transactions: %v", ports.ErrStore, err)
	}

	header := append([]string(nil), core.Columns...)
	return header, out, nil
}
