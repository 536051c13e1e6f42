package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoTransactions reports an aggregation that is undefined over an empty
// input, such as the average amount.
var ErrNoTransactions = errors.New("no transactions")

// CoerceRecords parses dates and amounts for every record. One unparseable
// value fails the whole batch: callers must not aggregate over partially
// coerced input, so the result is all-or-nothing. Negative and zero amounts
// parse fine here: other clients write to the same tab, and their refund rows
// must not blank the listing. Positivity is a write-path rule only.
func CoerceRecords(records []Record) ([]Transaction, error) {
	out := make([]Transaction, 0, len(records))
	for i, r := range records {
		d, err := ParseDate(r.Date)
		if err != nil {
			return nil, fmt.Errorf("row %d: date %q: %w", i+1, r.Date, err)
		}
		cents, err := parseCents(r.Amount)
		if err != nil {
			return nil, fmt.Errorf("row %d: amount %q: %w", i+1, r.Amount, err)
		}
		out = append(out, Transaction{
			Date:        d,
			Description: r.Description,
			Category:    r.Category,
			Amount:      Money{Cents: cents},
			Card:        r.Card,
		})
	}
	return out, nil
}

// Total sums amounts over all transactions. Zero for empty input.
func Total(txs []Transaction) Money {
	var cents int64
	for _, t := range txs {
		cents += t.Amount.Cents
	}
	return Money{Cents: cents}
}

// Average returns the arithmetic mean amount per transaction. The mean of an
// empty set is undefined and reported as ErrNoTransactions rather than NaN.
func Average(txs []Transaction) (Money, error) {
	if len(txs) == 0 {
		return Money{}, ErrNoTransactions
	}
	return Money{Cents: Total(txs).Cents / int64(len(txs))}, nil
}

// ByCategory sums amounts grouped by category, in first-seen order. Keys are
// the category strings actually present, not the suggested list.
func ByCategory(txs []Transaction) []CategoryAmount {
	byCat := map[string]int64{}
	order := make([]string, 0)
	for _, t := range txs {
		if _, seen := byCat[t.Category]; !seen {
			order = append(order, t.Category)
		}
		byCat[t.Category] += t.Amount.Cents
	}
	out := make([]CategoryAmount, 0, len(order))
	for _, name := range order {
		out = append(out, CategoryAmount{Name: name, Amount: Money{Cents: byCat[name]}})
	}
	return out
}

// DistinctCards returns the card labels in use, excluding the CardNone
// sentinel, in first-seen order.
func DistinctCards(txs []Transaction) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0)
	for _, t := range txs {
		card := strings.TrimSpace(t.Card)
		if card == "" || card == CardNone {
			continue
		}
		if _, ok := seen[card]; ok {
			continue
		}
		seen[card] = struct{}{}
		out = append(out, card)
	}
	return out
}

// FilterByCard returns the transactions whose card exactly equals the given
// label.
func FilterByCard(txs []Transaction, card string) []Transaction {
	out := make([]Transaction, 0)
	for _, t := range txs {
		if t.Card == card {
			out = append(out, t)
		}
	}
	return out
}
