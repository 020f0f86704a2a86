package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"moneytracker/internal/core"
	"moneytracker/internal/ledger"
)

// CreateNewSentinel is the placeholder the entry form's category picker
// submits while a custom category is still being typed. It is never a
// storable category.
const CreateNewSentinel = "__create_new__"

func (s *Server) handleAPINotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]any{
		"success": false,
		"message": "API endpoint not found: " + r.URL.Path,
	})
}

func (s *Server) handleTest(w http.ResponseWriter, r *http.Request) {
	txs, err := s.listTransactions(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Connectivity check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status":     "error",
			"dataLoaded": false,
			"message":    "Data store unavailable",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":           "ok",
		"dataLoaded":       len(txs) > 0,
		"transactionCount": len(txs),
		"timestamp":        time.Now().UTC().Format(time.RFC3339),
	})
}

func dateRangeJSON(start, end time.Time) map[string]any {
	rng := map[string]any{"start": "", "end": ""}
	if !start.IsZero() {
		rng["start"] = start.Format("2006-01-02")
	}
	if !end.IsZero() {
		rng["end"] = end.Format("2006-01-02")
	}
	return rng
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	txs, err := s.listTransactions(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Summary error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "Failed to compute summary",
		})
		return
	}

	sum := ledger.Summarize(txs)
	writeJSON(w, http.StatusOK, map[string]any{
		"totalTransactions": sum.TotalTransactions,
		"totalWithdrawals":  sum.TotalWithdrawals.Dollars(),
		"totalDeposits":     sum.TotalDeposits.Dollars(),
		"netAmount":         sum.NetAmount.Dollars(),
		"dateRange":         dateRangeJSON(sum.Start, sum.End),
	})
}

func (s *Server) handleSpendingByCategory(w http.ResponseWriter, r *http.Request) {
	txs, err := s.listTransactions(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Spending by category error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "Failed to compute category breakdown",
		})
		return
	}

	breakdown := ledger.SpendingByCategory(txs)
	data := make([]float64, len(breakdown.Totals))
	for i, m := range breakdown.Totals {
		data[i] = m.Dollars()
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"labels": emptyIfNil(breakdown.Labels),
		"data":   data,
	})
}

func (s *Server) handleMonthlyTrends(w http.ResponseWriter, r *http.Request) {
	txs, err := s.listTransactions(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Monthly trends error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "Failed to compute monthly trends",
		})
		return
	}

	trends := ledger.MonthlyTrends(txs)
	income := make([]float64, len(trends.Income))
	expenses := make([]float64, len(trends.Expenses))
	for i := range trends.Income {
		income[i] = trends.Income[i].Dollars()
		expenses[i] = trends.Expenses[i].Dollars()
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"labels":   emptyIfNil(trends.Labels),
		"income":   income,
		"expenses": expenses,
	})
}

func (s *Server) handleCalendarData(w http.ResponseWriter, r *http.Request) {
	year, month := parseYearMonth(r)

	events, err := s.projectedEvents(r.Context(), year, month)
	if err != nil {
		slog.ErrorContext(r.Context(), "Calendar data error", "error", err, "year", year, "month", month)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "Failed to compute calendar data",
		})
		return
	}

	payload := make([]map[string]any, 0, len(events))
	for _, e := range events {
		payload = append(payload, map[string]any{
			"date":   e.Date.Format("2006-01-02"),
			"title":  e.Title,
			"amount": e.Amount.Dollars(),
			"type":   e.Type(),
		})
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleRecentTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.listTransactions(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Recent transactions error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "Failed to list recent transactions",
		})
		return
	}

	recent := ledger.Recent(txs, s.opts.RecentLimit)
	payload := make([]map[string]any, 0, len(recent))
	for _, t := range recent {
		payload = append(payload, map[string]any{
			"date":     t.Date.Format("2006-01-02"),
			"title":    t.Title,
			"category": t.Category,
			"amount":   t.Amount.Dollars(),
			"type":     t.Type(),
		})
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	txs, err := s.listTransactions(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Categories error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success":    false,
			"categories": []string{},
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"categories": emptyIfNil(ledger.Categories(txs)),
	})
}

func (s *Server) handleReloadData(w http.ResponseWriter, r *http.Request) {
	count, err := s.store.Reload(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Reload error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "Failed to reload data",
		})
		return
	}

	s.invalidateTransactions()
	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"message":      "Data reloaded successfully",
		"transactions": count,
	})
}

func (s *Server) handleDataInfo(w http.ResponseWriter, r *http.Request) {
	txs, err := s.listTransactions(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Data info error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"loaded":  false,
			"message": "Failed to read data info",
		})
		return
	}

	sum := ledger.Summarize(txs)
	writeJSON(w, http.StatusOK, map[string]any{
		"loaded":       len(txs) > 0,
		"transactions": len(txs),
		"dateRange":    dateRangeJSON(sum.Start, sum.End),
		"categories":   emptyIfNil(ledger.Categories(txs)),
	})
}

// appendRequest matches the entry form payload. Amount is any because
// clients send it as either a JSON number or a numeric string.
type appendRequest struct {
	Title    *string `json:"title"`
	Category *string `json:"category"`
	Amount   any     `json:"amount"`
	Date     *string `json:"date"`
}

func (s *Server) handleAppend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{
			"success": false,
			"message": "Method not allowed",
		})
		return
	}

	var req appendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "Invalid JSON body",
		})
		return
	}

	fail := func(message string) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": message,
		})
	}

	if req.Title == nil || sanitizeInput(*req.Title) == "" {
		fail("Missing required field: title")
		return
	}
	if req.Category == nil || sanitizeInput(*req.Category) == "" || sanitizeInput(*req.Category) == CreateNewSentinel {
		fail("Missing required field: category")
		return
	}
	if req.Amount == nil || req.Amount == "" {
		fail("Missing required field: amount")
		return
	}
	if req.Date == nil || sanitizeInput(*req.Date) == "" {
		fail("Missing required field: date")
		return
	}

	cents, ok := parseAmountField(req.Amount)
	if !ok {
		fail("Amount must be a valid number")
		return
	}

	date, err := core.ParseDate(sanitizeInput(*req.Date))
	if err != nil {
		fail("Date must be in YYYY-MM-DD format")
		return
	}

	tx := core.Transaction{
		Date:     date,
		Title:    sanitizeInput(*req.Title),
		Category: core.TitleCase(sanitizeInput(*req.Category)),
		Amount:   core.Money{Cents: cents},
	}
	if err := tx.Validate(); err != nil {
		fail("Invalid transaction: " + err.Error())
		return
	}

	ref, err := s.creator.Create(r.Context(), tx)
	if err != nil {
		slog.ErrorContext(r.Context(), "Append error", "error", err, "title", tx.Title, "amount_cents", tx.Amount.Cents)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "Failed to save transaction",
		})
		return
	}

	s.invalidateTransactions()
	slog.InfoContext(r.Context(), "Transaction appended",
		"ref", ref,
		"title", tx.Title,
		"category", tx.Category,
		"amount_cents", tx.Amount.Cents)

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Transaction added successfully",
	})
}

// parseAmountField accepts a JSON number or a numeric string.
func parseAmountField(v any) (int64, bool) {
	switch a := v.(type) {
	case float64:
		cents, err := core.ParseAmountFloat(a)
		if err != nil {
			return 0, false
		}
		return cents, true
	case string:
		cents, err := core.ParseAmount(a)
		if err != nil {
			return 0, false
		}
		return cents, true
	default:
		return 0, false
	}
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
