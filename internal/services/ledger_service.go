package services

import (
	"context"
	"log/slog"

	"financas/internal/core"
	applog "financas/internal/log"
	"financas/internal/records"
)

// LedgerService is the surface the presentation layer consumes. Every method
// degrades gracefully: reads fall back to an empty set, writes to false, and
// the failure detail goes to the structured log instead of the caller.
type LedgerService struct {
	repo *records.Repository
}

func NewLedgerService(repo *records.Repository) *LedgerService {
	return &LedgerService{repo: repo}
}

// AddTransaction validates the transaction and appends it to the store.
// Returns true only when the row reached the store. Validation failures and
// store failures both come back as false; the distinction is in the log.
func (s *LedgerService) AddTransaction(ctx context.Context, t core.Transaction) bool {
	if err := t.Validate(); err != nil {
		slog.WarnContext(ctx, "Transaction rejected by validation",
			applog.FieldComponent, applog.ComponentLedger,
			applog.FieldOperation, applog.OpValidate,
			applog.FieldError, err,
			applog.FieldDescription, t.Description,
			applog.FieldAmountCents, t.Amount.Cents)
		return false
	}

	if err := s.repo.Append(ctx, t.Record()); err != nil {
		slog.ErrorContext(ctx, "Failed to append transaction",
			applog.FieldComponent, applog.ComponentLedger,
			applog.FieldOperation, applog.OpAppend,
			applog.FieldError, err,
			applog.FieldDescription, t.Description,
			applog.FieldAmountCents, t.Amount.Cents,
			applog.FieldCategory, t.Category,
			applog.FieldCard, t.Card)
		return false
	}
	return true
}

// GetTransactions returns all transactions, most recently appended first.
// It never fails from the caller's point of view: a store, schema or parse
// error yields an empty set and an error log. A parse error discards the
// whole set, not just the offending row.
func (s *LedgerService) GetTransactions(ctx context.Context) []core.Transaction {
	recs, err := s.repo.ListAll(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to list records",
			applog.FieldComponent, applog.ComponentLedger,
			applog.FieldOperation, applog.OpList,
			applog.FieldError, err)
		return []core.Transaction{}
	}

	txs, err := core.CoerceRecords(recs)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to coerce records, discarding result set",
			applog.FieldComponent, applog.ComponentLedger,
			applog.FieldOperation, applog.OpCoerce,
			applog.FieldError, err,
			applog.FieldRecordCount, len(recs))
		return []core.Transaction{}
	}
	return txs
}

// Initialize verifies store reachability at startup. A failure is logged and
// reported as false, never fatal: the rest of the system keeps running and
// fails on first real store access instead.
func (s *LedgerService) Initialize(ctx context.Context) bool {
	if _, err := s.repo.ListAll(ctx); err != nil {
		slog.ErrorContext(ctx, "Store verification failed",
			applog.FieldComponent, applog.ComponentLedger,
			applog.FieldOperation, applog.OpInitialize,
			applog.FieldError, err)
		return false
	}
	slog.InfoContext(ctx, "Store verified",
		applog.FieldComponent, applog.ComponentLedger,
		applog.FieldOperation, applog.OpInitialize)
	return true
}

// Summary computes the overview over all transactions.
func (s *LedgerService) Summary(ctx context.Context) core.Overview {
	return core.Summarize(s.GetTransactions(ctx))
}

// Cards returns the distinct card labels in use, excluding the debit/cash
// sentinel.
func (s *LedgerService) Cards(ctx context.Context) []string {
	return core.DistinctCards(s.GetTransactions(ctx))
}

// CardSummary computes the per-card analysis for one card label.
func (s *LedgerService) CardSummary(ctx context.Context, card string) core.CardSummary {
	return core.SummarizeCard(s.GetTransactions(ctx), card)
}
