package core

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// Overview is a compact summary over a set of transactions.
type Overview struct {
	Count      int
	Total      Money
	Average    Money
	ByCategory []CategoryAmount
}

// CardSummary is the per-card analysis: totals and category breakdown for a
// single card label.
type CardSummary struct {
	Card       string
	Count      int
	Total      Money
	ByCategory []CategoryAmount
}

// Summarize computes the overview for the given transactions. For empty input
// Count is zero and Average stays zero; callers render that as a no-data
// state.
func Summarize(txs []Transaction) Overview {
	ov := Overview{
		Count:      len(txs),
		Total:      Total(txs),
		ByCategory: ByCategory(txs),
	}
	if avg, err := Average(txs); err == nil {
		ov.Average = avg
	}
	return ov
}

// SummarizeCard computes the per-card summary over the given transactions.
func SummarizeCard(txs []Transaction, card string) CardSummary {
	filtered := FilterByCard(txs, card)
	return CardSummary{
		Card:       card,
		Count:      len(filtered),
		Total:      Total(filtered),
		ByCategory: ByCategory(filtered),
	}
}
