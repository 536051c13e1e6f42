package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"financas/internal/core"
	applog "financas/internal/log"
)

const summaryKey = "summary"

type transactionPayload struct {
	Date        string  `json:"data"`
	Description string  `json:"descricao"`
	Category    string  `json:"categoria"`
	Amount      float64 `json:"valor"`
	Card        string  `json:"cartao"`
}

type categoryAmountPayload struct {
	Category string  `json:"categoria"`
	Total    float64 `json:"total"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleOptions returns the suggested form values: categories, card labels
// and the debit/cash sentinel. Suggestions only; any value is accepted.
func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"categorias":    core.SuggestedCategories,
		"cartoes":       core.SuggestedCards,
		"cartao_nenhum": core.CardNone,
	})
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateTransaction(w, r)
	case http.MethodGet:
		s.handleListTransactions(w, r)
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Date        string `json:"data"`
		Description string `json:"descricao"`
		Category    string `json:"categoria"`
		// Raw so "valor" accepts both a JSON string and a JSON number.
		// Clients that round-trip what GET returned send a number.
		Amount json.RawMessage `json:"valor"`
		Card   string          `json:"cartao"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	date, err := core.ParseDate(in.Date)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "data inválida, use AAAA-MM-DD")
		return
	}
	amount := strings.TrimSpace(string(in.Amount))
	if strings.HasPrefix(amount, `"`) {
		if err := json.Unmarshal(in.Amount, &amount); err != nil {
			writeError(w, http.StatusBadRequest, "corpo da requisição inválido")
			return
		}
	}
	cents, err := core.ParseDecimalToCents(amount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "valor inválido")
		return
	}

	card := strings.TrimSpace(in.Card)
	if card == "" {
		card = core.CardNone
	}
	t := core.Transaction{
		Date:        date,
		Description: sanitizeInput(in.Description),
		Category:    sanitizeInput(in.Category),
		Amount:      core.Money{Cents: cents},
		Card:        sanitizeInput(card),
	}
	if err := t.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "preencha a descrição e um valor válido")
		return
	}

	if !s.svc.AddTransaction(r.Context(), t) {
		writeError(w, http.StatusBadGateway, "erro ao adicionar a transação")
		return
	}

	s.summaryCache.Delete(summaryKey)

	slog.InfoContext(r.Context(), "Transaction created",
		applog.FieldComponent, applog.ComponentHTTP,
		applog.FieldOperation, applog.OpAppend,
		applog.FieldDescription, t.Description,
		applog.FieldAmountCents, t.Amount.Cents,
		applog.FieldCategory, t.Category,
		applog.FieldCard, t.Card)

	writeJSON(w, http.StatusCreated, map[string]bool{"ok": true})
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txs := s.svc.GetTransactions(r.Context())

	out := make([]transactionPayload, 0, len(txs))
	for _, t := range txs {
		out = append(out, transactionPayload{
			Date:        t.Date.String(),
			Description: t.Description,
			Category:    t.Category,
			Amount:      t.Amount.Float(),
			Card:        t.Card,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"transacoes": out})
}

// handleSummary returns total, per-transaction average and by-category
// totals. An empty ledger is an explicit no-data state, not a NaN average.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	ov, ok := s.summaryCache.Get(summaryKey)
	if !ok {
		ov = s.svc.Summary(r.Context())
		s.summaryCache.Set(summaryKey, ov)
		slog.DebugContext(r.Context(), "Summary recomputed",
			applog.FieldComponent, applog.ComponentHTTP,
			applog.FieldOperation, applog.OpSummarize,
			applog.FieldRecordCount, ov.Count)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"quantidade":    ov.Count,
		"total":         ov.Total.Float(),
		"media":         ov.Average.Float(),
		"sem_dados":     ov.Count == 0,
		"por_categoria": categoryAmounts(ov.ByCategory),
	})
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	cards := s.svc.Cards(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"cartoes": cards})
}

func (s *Server) handleCardSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	card := strings.TrimSpace(r.URL.Query().Get("cartao"))
	if card == "" {
		writeError(w, http.StatusBadRequest, "parâmetro 'cartao' é obrigatório")
		return
	}

	cs := s.svc.CardSummary(r.Context(), card)
	writeJSON(w, http.StatusOK, map[string]any{
		"cartao":        cs.Card,
		"quantidade":    cs.Count,
		"total":         cs.Total.Float(),
		"sem_dados":     cs.Count == 0,
		"por_categoria": categoryAmounts(cs.ByCategory),
	})
}

func categoryAmounts(in []core.CategoryAmount) []categoryAmountPayload {
	out := make([]categoryAmountPayload, 0, len(in))
	for _, ca := range in {
		out = append(out, categoryAmountPayload{Category: ca.Name, Total: ca.Amount.Float()})
	}
	return out
}
