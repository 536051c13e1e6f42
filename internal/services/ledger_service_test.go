package services

import (
	"context"
	"testing"
	"time"

	"financas/internal/core"
	"financas/internal/records"
	"financas/internal/sheets"
	"financas/internal/sheets/memory"
)

func newService(store *memory.Store) *LedgerService {
	return NewLedgerService(records.New(store, time.Minute))
}

func tx(date, desc, cat string, cents int64, card string) core.Transaction {
	d, _ := core.ParseDate(date)
	return core.Transaction{Date: d, Description: desc, Category: cat, Amount: core.Money{Cents: cents}, Card: card}
}

func TestAddThenGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := newService(memory.New())

	coffee := tx("2024-01-05", "Coffee", "Food", 450, core.CardNone)
	rent := tx("2024-01-06", "Rent", "Housing", 120000, "CardA")

	if !svc.AddTransaction(ctx, coffee) {
		t.Fatal("add coffee should succeed")
	}
	if !svc.AddTransaction(ctx, rent) {
		t.Fatal("add rent should succeed")
	}

	got := svc.GetTransactions(ctx)
	if len(got) != 2 {
		t.Fatalf("got %d transactions, want 2", len(got))
	}
	// Most recently appended first, equal to the input.
	if got[0] != rent || got[1] != coffee {
		t.Fatalf("wrong order or content: %+v", got)
	}
}

func TestAddTransactionRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := newService(store)

	tests := []struct {
		name string
		in   core.Transaction
	}{
		{"empty description", tx("2024-01-05", "", "Food", 450, core.CardNone)},
		{"whitespace description", tx("2024-01-05", "   ", "Food", 450, core.CardNone)},
		{"zero amount", tx("2024-01-05", "Coffee", "Food", 0, core.CardNone)},
		{"negative amount", tx("2024-01-05", "Coffee", "Food", -450, core.CardNone)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if svc.AddTransaction(ctx, tt.in) {
				t.Fatal("expected false")
			}
		})
	}

	// No row reached the store.
	if store.Len() != 0 {
		t.Fatalf("store has %d rows, want 0", store.Len())
	}
	if got := svc.GetTransactions(ctx); len(got) != 0 {
		t.Fatalf("got %d transactions, want 0", len(got))
	}
}

func TestAddTransactionStoreFailure(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	store.FailAppend(sheets.ErrStore)
	svc := newService(store)

	if svc.AddTransaction(ctx, tx("2024-01-05", "Coffee", "Food", 450, core.CardNone)) {
		t.Fatal("expected false on store failure")
	}
}

func TestGetTransactionsDegradesToEmpty(t *testing.T) {
	ctx := context.Background()

	t.Run("store failure", func(t *testing.T) {
		store := memory.New()
		store.FailRead(sheets.ErrStore)
		svc := newService(store)
		if got := svc.GetTransactions(ctx); got == nil || len(got) != 0 {
			t.Fatalf("got %v, want empty non-nil", got)
		}
	})

	t.Run("schema mismatch", func(t *testing.T) {
		store := memory.NewWithHeader([]string{"data", "descricao", "valor", "cartao"})
		_ = store.AppendRow(ctx, []string{"2024-01-05", "Coffee", "4.50", core.CardNone})
		svc := newService(store)
		if got := svc.GetTransactions(ctx); len(got) != 0 {
			t.Fatalf("got %d transactions, want 0", len(got))
		}
	})

	t.Run("unparseable row discards whole set", func(t *testing.T) {
		store := memory.New()
		_ = store.AppendRow(ctx, []string{"2024-01-05", "Coffee", "Food", "4.50", core.CardNone})
		_ = store.AppendRow(ctx, []string{"2024-01-06", "Weird", "Outros", "quatro", core.CardNone})
		svc := newService(store)
		if got := svc.GetTransactions(ctx); len(got) != 0 {
			t.Fatalf("got %d transactions, want 0", len(got))
		}
	})
}

func TestInitialize(t *testing.T) {
	ctx := context.Background()

	if !newService(memory.New()).Initialize(ctx) {
		t.Error("initialize should succeed against a reachable store")
	}

	store := memory.New()
	store.FailRead(sheets.ErrStore)
	if newService(store).Initialize(ctx) {
		t.Error("initialize should report an unreachable store")
	}
}

func TestSummaryAndCards(t *testing.T) {
	ctx := context.Background()
	svc := newService(memory.New())

	svc.AddTransaction(ctx, tx("2024-01-05", "Coffee", "Food", 450, core.CardNone))
	svc.AddTransaction(ctx, tx("2024-01-06", "Rent", "Housing", 120000, "CardA"))
	svc.AddTransaction(ctx, tx("2024-01-07", "Cinema", "Lazer", 3000, "CardA"))

	ov := svc.Summary(ctx)
	if ov.Count != 3 || ov.Total.Cents != 123450 || ov.Average.Cents != 41150 {
		t.Fatalf("overview = %+v", ov)
	}

	cards := svc.Cards(ctx)
	if len(cards) != 1 || cards[0] != "CardA" {
		t.Fatalf("cards = %v", cards)
	}

	cs := svc.CardSummary(ctx, "CardA")
	if cs.Count != 2 || cs.Total.Cents != 123000 {
		t.Fatalf("card summary = %+v", cs)
	}
}
