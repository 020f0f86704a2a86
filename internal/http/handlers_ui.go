package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"moneytracker/internal/core"
	"moneytracker/internal/ledger"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	// The page shell is only worth rendering when the store answers; each
	// section then loads and fails independently.
	pingCtx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()
	if err := s.store.Ping(pingCtx); err != nil {
		slog.ErrorContext(r.Context(), "Store ping failed", "error", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		if err := s.templates.ExecuteTemplate(w, "error.html", map[string]any{
			"Message": "Unable to reach the data store. Please check if the server is running and reload the page.",
		}); err != nil {
			slog.ErrorContext(r.Context(), "Error template execution failed", "error", err)
		}
		return
	}

	var categories []string
	if txs, err := s.listTransactions(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Category list error", "error", err)
	} else {
		categories = ledger.Categories(txs)
	}

	now := time.Now()
	data := struct {
		Today          string
		Year           int
		Month          int
		MonthName      string
		Categories     []string
		CreateSentinel string
	}{
		Today:          now.Format("2006-01-02"),
		Year:           now.Year(),
		Month:          int(now.Month()),
		MonthName:      now.Month().String(),
		Categories:     categories,
		CreateSentinel: CreateNewSentinel,
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleSummarySection renders the headline tiles partial. On error it
// falls back to zeroed tiles so the rest of the dashboard stays usable.
func (s *Server) handleSummarySection(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	txs, err := s.listTransactions(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Summary section error", "error", err)
		txs = nil
	}
	sum := ledger.Summarize(txs)

	data := struct {
		TotalTransactions int
		TotalDeposits     string
		TotalWithdrawals  string
		NetAmount         string
		NetClass          string
		Start             string
		End               string
		Failed            bool
	}{
		TotalTransactions: sum.TotalTransactions,
		TotalDeposits:     sum.TotalDeposits.FormatUSD(),
		TotalWithdrawals:  sum.TotalWithdrawals.FormatUSD(),
		NetAmount:         sum.NetAmount.FormatSignedUSD(),
		NetClass:          core.TypeIncome,
		Failed:            err != nil,
	}
	if sum.NetAmount.Cents < 0 {
		data.NetClass = core.TypeExpense
	}
	if !sum.Start.IsZero() {
		data.Start = sum.Start.Format("2006-01-02")
		data.End = sum.End.Format("2006-01-02")
	}

	s.renderSection(w, r, "summary.html", data,
		`<section id="summary" class="summary"><div class="placeholder">Summary unavailable</div></section>`)
}

func (s *Server) handleCalendarSection(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	year, month := parseYearMonth(r)

	grid := core.NewMonthGrid(year, month)
	events, err := s.projectedEvents(r.Context(), year, month)
	if err != nil {
		slog.ErrorContext(r.Context(), "Calendar section error", "error", err, "year", year, "month", month)
		events = nil
	}

	byDay := make(map[int][]dayEvent)
	for _, e := range events {
		if !grid.Contains(e.Date) {
			continue
		}
		d := e.Date.Day()
		byDay[d] = append(byDay[d], dayEvent{
			Title:  e.Title,
			Amount: e.Amount.FormatSignedUSD(),
			Type:   e.Type(),
		})
	}

	type cell struct {
		Day    int
		Events []dayEvent
	}
	cells := make([]cell, 0, grid.LeadingBlanks()+grid.Days)
	for i := 0; i < grid.LeadingBlanks(); i++ {
		cells = append(cells, cell{})
	}
	for d := 1; d <= grid.Days; d++ {
		cells = append(cells, cell{Day: d, Events: byDay[d]})
	}

	data := struct {
		Year      int
		MonthName string
		Weekdays  []string
		Cells     []cell
		Failed    bool
	}{
		Year:      year,
		MonthName: time.Month(month).String(),
		Weekdays:  []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
		Cells:     cells,
		Failed:    err != nil,
	}

	s.renderSection(w, r, "calendar.html", data,
		`<section id="calendar" class="calendar"><div class="placeholder">Calendar unavailable</div></section>`)
}

type dayEvent struct {
	Title  string
	Amount string
	Type   string
}

func (s *Server) handleRecentSection(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	txs, err := s.listTransactions(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Recent section error", "error", err)
		txs = nil
	}

	type row struct {
		Date     string
		Title    string
		Category string
		Amount   string
		Type     string
	}
	recent := ledger.Recent(txs, s.opts.RecentLimit)
	rows := make([]row, 0, len(recent))
	for _, t := range recent {
		rows = append(rows, row{
			Date:     t.Date.Format("2006-01-02"),
			Title:    t.Title,
			Category: t.Category,
			Amount:   t.Amount.FormatSignedUSD(),
			Type:     t.Type(),
		})
	}

	data := struct {
		Rows   []row
		Failed bool
	}{Rows: rows, Failed: err != nil}

	s.renderSection(w, r, "recent.html", data,
		`<section id="recent" class="recent"><div class="placeholder">Recent transactions unavailable</div></section>`)
}

// renderSection executes a partial template, emitting the fallback markup
// when templates are missing or execution fails. A broken partial must not
// take down the page that embeds it.
func (s *Server) renderSection(w http.ResponseWriter, r *http.Request, name string, data any, fallback string) {
	if s.templates == nil {
		_, _ = w.Write([]byte(fallback))
		return
	}
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", name)
		_, _ = w.Write([]byte(fallback))
	}
}
