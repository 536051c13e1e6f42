package records

import (
	"context"
	"errors"
	"testing"
	"time"

	"financas/internal/core"
	"financas/internal/sheets"
	"financas/internal/sheets/memory"
)

func rec(date, desc, cat, amount, card string) core.Record {
	return core.Record{Date: date, Description: desc, Category: cat, Amount: amount, Card: card}
}

func TestAppendThenListMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	repo := New(store, time.Minute)

	coffee := rec("2024-01-05", "Coffee", "Food", "4.50", core.CardNone)
	rent := rec("2024-01-06", "Rent", "Housing", "1200.00", "CardA")

	if err := repo.Append(ctx, coffee); err != nil {
		t.Fatalf("append coffee: %v", err)
	}
	if err := repo.Append(ctx, rent); err != nil {
		t.Fatalf("append rent: %v", err)
	}

	got, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	if got[0] != rent || got[1] != coffee {
		t.Fatalf("wrong order: %+v", got)
	}
}

func TestListAllEmptyTab(t *testing.T) {
	ctx := context.Background()

	t.Run("header only", func(t *testing.T) {
		repo := New(memory.New(), time.Minute)
		got, err := repo.ListAll(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("got %d records, want 0", len(got))
		}
	})

	t.Run("completely empty grid", func(t *testing.T) {
		repo := New(memory.NewWithHeader(nil), time.Minute)
		got, err := repo.ListAll(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("got %d records, want 0", len(got))
		}
	})
}

func TestListAllSchemaMismatch(t *testing.T) {
	ctx := context.Background()
	// Header missing "categoria"
	store := memory.NewWithHeader([]string{"data", "descricao", "valor", "cartao"})
	_ = store.AppendRow(ctx, []string{"2024-01-05", "Coffee", "4.50", core.CardNone})

	repo := New(store, time.Minute)
	got, err := repo.ListAll(ctx)
	if !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
	// Whole result set discarded, not a partial one.
	if len(got) != 0 {
		t.Fatalf("got %d records, want 0", len(got))
	}
}

func TestListAllProjectsOntoSchema(t *testing.T) {
	ctx := context.Background()
	// Shuffled columns plus an extra one; rows may be short.
	store := memory.NewWithHeader([]string{"cartao", "extra", "valor", "data", "descricao", "categoria"})
	_ = store.AppendRow(ctx, []string{"CardA", "ignored", "9.90", "2024-02-01", "Cinema", "Lazer"})
	_ = store.AppendRow(ctx, []string{core.CardNone, "x", "4.50", "2024-02-02", "Coffee"}) // no categoria cell

	repo := New(store, time.Minute)
	got, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	if got[1] != rec("2024-02-01", "Cinema", "Lazer", "9.90", "CardA") {
		t.Errorf("got[1] = %+v", got[1])
	}
	// Missing cell reads as empty, row is kept.
	if got[0] != rec("2024-02-02", "Coffee", "", "4.50", core.CardNone) {
		t.Errorf("got[0] = %+v", got[0])
	}
}

func TestReadsServedFromCacheWithinTTL(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	repo := New(store, time.Minute)

	_ = repo.Append(ctx, rec("2024-01-05", "Coffee", "Food", "4.50", core.CardNone))

	first, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("first list: %v", err)
	}

	// A row written by another client, bypassing the repository, stays
	// invisible until the TTL elapses.
	_ = store.AppendRow(ctx, []string{"2024-01-06", "Rent", "Housing", "1200.00", "CardA"})

	second, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("second list: %v", err)
	}
	if len(second) != len(first) {
		t.Fatalf("cached read changed: %d vs %d records", len(second), len(first))
	}
}

func TestAppendInvalidatesReadCache(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	repo := New(store, time.Hour) // TTL far longer than the test

	_ = repo.Append(ctx, rec("2024-01-05", "Coffee", "Food", "4.50", core.CardNone))
	if _, err := repo.ListAll(ctx); err != nil {
		t.Fatalf("prime cache: %v", err)
	}

	rent := rec("2024-01-06", "Rent", "Housing", "1200.00", "CardA")
	if err := repo.Append(ctx, rent); err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0] != rent {
		t.Fatalf("own write not visible: %+v", got)
	}
}

func TestStoreErrorsPropagate(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	repo := New(store, time.Minute)

	store.FailRead(sheets.ErrStore)
	if _, err := repo.ListAll(ctx); !errors.Is(err, sheets.ErrStore) {
		t.Fatalf("expected ErrStore, got %v", err)
	}
	store.FailRead(nil)

	store.FailAppend(sheets.ErrStore)
	if err := repo.Append(ctx, rec("2024-01-05", "Coffee", "Food", "4.50", core.CardNone)); !errors.Is(err, sheets.ErrStore) {
		t.Fatalf("expected ErrStore, got %v", err)
	}
}
