package backend

import (
	"time"
)

// Type selects which row store backs the repository.
type Type string

const (
	MemoryBackend Type = "memory"
	SheetsBackend Type = "sheets"
	SQLiteBackend Type = "sqlite"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case MemoryBackend, SheetsBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}

// Config holds what each backend needs.
type Config struct {
	Type Type

	// SQLite specific
	SQLiteDBPath string

	// Google Sheets specific
	GoogleSpreadsheetID      string
	GoogleTabName            string
	GoogleServiceAccountJSON string
	GoogleServiceAccountFile string
	HandleTTL                time.Duration
}

// CleanupFunc releases whatever the backend holds open.
type CleanupFunc func() error
