package memory

import (
	"context"
	"errors"
	"testing"
)

func TestAppendAndReadRows(t *testing.T) {
	ctx := context.Background()
	s := New()

	header, rows, err := s.ReadRows(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(header) != 5 || header[0] != "data" || header[4] != "cartao" {
		t.Fatalf("header = %v", header)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}

	row := []string{"2024-01-05", "Coffee", "Food", "4.50", "Nenhum (Débito/Dinheiro)"}
	if err := s.AppendRow(ctx, row); err != nil {
		t.Fatalf("append: %v", err)
	}

	_, rows, err = s.ReadRows(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows) != 1 || rows[0][1] != "Coffee" {
		t.Fatalf("rows = %v", rows)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestReadRowsReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := New()
	_ = s.AppendRow(ctx, []string{"2024-01-05", "Coffee", "Food", "4.50", "Nubank"})

	_, rows, _ := s.ReadRows(ctx)
	rows[0][1] = "mutated"

	_, again, _ := s.ReadRows(ctx)
	if again[0][1] != "Coffee" {
		t.Fatalf("store data mutated through returned slice: %v", again[0])
	}
}

func TestFaultInjection(t *testing.T) {
	ctx := context.Background()
	s := New()
	boom := errors.New("boom")

	s.FailAppend(boom)
	if err := s.AppendRow(ctx, []string{"a", "b", "c", "d", "e"}); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	s.FailAppend(nil)
	if err := s.AppendRow(ctx, []string{"a", "b", "c", "d", "e"}); err != nil {
		t.Fatalf("unexpected error after clearing: %v", err)
	}

	s.FailRead(boom)
	if _, _, err := s.ReadRows(ctx); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}
