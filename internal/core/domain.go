package core

import (
	"errors"
	"strings"
	"time"
)

// Column names of the transaction tab, in storage order. The header row must
// contain exactly these names (case-sensitive) for rows to be recognized.
const (
	ColData      = "data"
	ColDescricao = "descricao"
	ColCategoria = "categoria"
	ColValor     = "valor"
	ColCartao    = "cartao"
)

// Columns is the authoritative 5-column schema in storage order.
var Columns = []string{ColData, ColDescricao, ColCategoria, ColValor, ColCartao}

// CardNone is the sentinel card value meaning debit or cash, not a credit
// card. Card analysis excludes it.
const CardNone = "Nenhum (Débito/Dinheiro)"

// Suggested values for form selects. The store accepts any string; these are
// suggestions, not an enforced closure.
var (
	SuggestedCategories = []string{"Alimentação", "Transporte", "Moradia", "Lazer", "Saúde", "Outros"}
	SuggestedCards      = []string{CardNone, "Nubank", "Inter", "Bradesco", "Itaú", "Outro"}
)

type (
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Record is one row of the tab exactly as stored: five text fields, no
	// coercion. The repository works at this level.
	Record struct {
		Date        string
		Description string
		Category    string
		Amount      string
		Card        string
	}

	// Transaction is a Record with date and amount coerced. Aggregation works
	// at this level.
	Transaction struct {
		Date        Date
		Description string
		Category    string
		Amount      Money
		Card        string
	}
)

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
)

// DateLayout is the wire format for dates: ISO-8601 calendar date, no
// time-of-day component.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Validate enforces the write-path invariants: non-empty description and a
// positive amount. Category and card deliberately accept any value, including
// values outside the suggested lists.
func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	return nil
}

// Record serializes the transaction as a raw row in header order.
func (t Transaction) Record() Record {
	return Record{
		Date:        t.Date.String(),
		Description: t.Description,
		Category:    t.Category,
		Amount:      t.Amount.String(),
		Card:        t.Card,
	}
}

// Row returns the record's fields in storage order.
func (r Record) Row() []string {
	return []string{r.Date, r.Description, r.Category, r.Amount, r.Card}
}
