package sheets

import (
	"context"
	"errors"
)

// Store error taxonomy. Backends wrap their native failures into these so the
// layers above can classify without knowing the transport.
var (
	// ErrAuth means the credential bundle is missing or was rejected.
	ErrAuth = errors.New("store authentication failed")
	// ErrNotFound means the spreadsheet, or the tab after a creation
	// attempt, could not be resolved.
	ErrNotFound = errors.New("sheet or tab not found")
	// ErrStore is the catch-all for any other remote-store failure
	// (network, quota, service error).
	ErrStore = errors.New("store error")
)

// Ports for outbound row stores.
type (
	// RowAppender appends one raw row after the last data row of the tab.
	RowAppender interface {
		AppendRow(ctx context.Context, row []string) error
	}

	// RowReader returns the tab's header row and every data row beneath it,
	// in storage order. An empty or freshly created tab yields the header
	// and no rows.
	RowReader interface {
		ReadRows(ctx context.Context) (header []string, rows [][]string, err error)
	}

	// RowStore is the full port a backend implements.
	RowStore interface {
		RowAppender
		RowReader
	}
)
