// Package records exposes the transaction rows of the backing tab as a
// consistent record set: fixed 5-column schema, most-recent-first ordering,
// and a short-lived read cache so dashboard views do not hammer the store.
package records

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"financas/internal/cache"
	"financas/internal/core"
	applog "financas/internal/log"
	"financas/internal/sheets"
)

// ErrSchemaMismatch reports a tab whose header row does not carry all five
// expected columns. The whole result set is discarded in that case; rows
// cannot be trusted against an unknown layout.
var ErrSchemaMismatch = errors.New("sheet header does not match expected schema")

// DefaultReadTTL is how long a fetched record set is served from memory.
// Own writes invalidate it immediately; writes from other clients of the
// sheet become visible within this window.
const DefaultReadTTL = 5 * time.Minute

const recordsKey = "records"

// Repository reads and writes transaction records over a row store.
type Repository struct {
	store sheets.RowStore
	reads *cache.TTLCache[[]core.Record]
}

// New creates a repository over the given store with the given read TTL.
func New(store sheets.RowStore, readTTL time.Duration) *Repository {
	if readTTL <= 0 {
		readTTL = DefaultReadTTL
	}
	return &Repository{
		store: store,
		reads: cache.NewTTLCache[[]core.Record](readTTL),
	}
}

// ReadCache exposes the read cache for cleanup registration.
func (r *Repository) ReadCache() cache.Cleaner {
	return r.reads
}

// Append serializes the record in header order and appends it as the last
// row of the tab. On success the read cache is invalidated so the next read
// observes the new row. No retry on failure; the error goes upward.
func (r *Repository) Append(ctx context.Context, rec core.Record) error {
	if err := r.store.AppendRow(ctx, rec.Row()); err != nil {
		return fmt.Errorf("append record: %w", err)
	}
	r.reads.Delete(recordsKey)

	slog.InfoContext(ctx, "Record appended",
		applog.FieldComponent, applog.ComponentRecords,
		applog.FieldOperation, applog.OpAppend,
		applog.FieldDescription, rec.Description,
		applog.FieldCategory, rec.Category,
		applog.FieldCard, rec.Card)
	return nil
}

// ListAll fetches every data row, re-projects it onto the fixed five-column
// schema and returns records most recently appended first. An empty tab
// yields an empty set; a header missing any expected column yields
// ErrSchemaMismatch and no records.
func (r *Repository) ListAll(ctx context.Context) ([]core.Record, error) {
	if cached, ok := r.reads.Get(recordsKey); ok {
		return cached, nil
	}

	header, rows, err := r.store.ReadRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(header) == 0 && len(rows) == 0 {
		// Empty or freshly created tab.
		return []core.Record{}, nil
	}

	recs, err := projectRows(header, rows)
	if err != nil {
		return nil, err
	}

	// Most recently appended first.
	reverse(recs)

	r.reads.Set(recordsKey, recs)
	return recs, nil
}

// projectRows maps raw rows onto the expected schema by header name. Extra
// columns are ignored; cells beyond a row's length read as empty. This is
// the single place holding the discard-on-mismatch policy.
func projectRows(header []string, rows [][]string) ([]core.Record, error) {
	idx := make(map[string]int, len(core.Columns))
	for i, name := range header {
		idx[name] = i
	}
	for _, name := range core.Columns {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("%w: expected %v, found %v", ErrSchemaMismatch, core.Columns, header)
		}
	}

	recs := make([]core.Record, 0, len(rows))
	for _, row := range rows {
		rec := core.Record{
			Date:        cell(row, idx[core.ColData]),
			Description: cell(row, idx[core.ColDescricao]),
			Category:    cell(row, idx[core.ColCategoria]),
			Amount:      cell(row, idx[core.ColValor]),
			Card:        cell(row, idx[core.ColCartao]),
		}
		// Blank grid rows carry no data.
		if rec == (core.Record{}) {
			continue
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func reverse(recs []core.Record) {
	for i, j := 0, len(recs)-1; i < j; i, j = i+1, j-1 {
		recs[i], recs[j] = recs[j], recs[i]
	}
}
