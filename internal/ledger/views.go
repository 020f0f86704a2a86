// Package ledger computes the derived views the dashboard consumes:
// overall summary, spending by category, monthly trends, calendar events,
// and the recent transaction list. Every function is a pure aggregation
// over a transaction slice so each storage backend can reuse them.
package ledger

import (
	"sort"
	"time"

	"moneytracker/internal/core"
)

type (
	// Summary is the headline view: counts and signed totals across the
	// whole ledger. Deposits and withdrawals are non-negative magnitudes;
	// NetAmount carries the sign.
	Summary struct {
		TotalTransactions int
		TotalDeposits     core.Money
		TotalWithdrawals  core.Money
		NetAmount         core.Money
		Start             time.Time
		End               time.Time
	}

	// CategoryBreakdown holds index-aligned parallel slices for the
	// proportional chart: Labels[i] spent Totals[i], largest first.
	CategoryBreakdown struct {
		Labels []string
		Totals []core.Money
	}

	// Trends holds index-aligned monthly income and expense magnitudes.
	// Labels are "YYYY-MM" in chronological order.
	Trends struct {
		Labels   []string
		Income   []core.Money
		Expenses []core.Money
	}

	// CalendarEvent is one labeled marker on the month calendar.
	CalendarEvent struct {
		Date   time.Time
		Title  string
		Amount core.Money
	}
)

// Type returns the direction tag used as a CSS class on calendar markers.
func (e CalendarEvent) Type() string {
	if e.Amount.Cents >= 0 {
		return core.TypeIncome
	}
	return core.TypeExpense
}

// Summarize computes the headline summary. An empty slice yields the zero
// Summary, never an error.
func Summarize(txs []core.Transaction) Summary {
	var s Summary
	s.TotalTransactions = len(txs)
	for _, tx := range txs {
		if tx.Amount.Cents >= 0 {
			s.TotalDeposits.Cents += tx.Amount.Cents
		} else {
			s.TotalWithdrawals.Cents += -tx.Amount.Cents
		}
		s.NetAmount.Cents += tx.Amount.Cents
		if s.Start.IsZero() || tx.Date.Before(s.Start) {
			s.Start = tx.Date
		}
		if s.End.IsZero() || tx.Date.After(s.End) {
			s.End = tx.Date
		}
	}
	return s
}

// SpendingByCategory aggregates expense magnitudes per category, sorted by
// total descending. Income rows do not contribute.
func SpendingByCategory(txs []core.Transaction) CategoryBreakdown {
	totals := make(map[string]int64)
	for _, tx := range txs {
		if tx.Amount.Cents >= 0 {
			continue
		}
		totals[tx.Category] += -tx.Amount.Cents
	}

	labels := make([]string, 0, len(totals))
	for name := range totals {
		labels = append(labels, name)
	}
	sort.Slice(labels, func(i, j int) bool {
		if totals[labels[i]] != totals[labels[j]] {
			return totals[labels[i]] > totals[labels[j]]
		}
		return labels[i] < labels[j]
	})

	out := CategoryBreakdown{Labels: labels, Totals: make([]core.Money, len(labels))}
	for i, name := range labels {
		out.Totals[i] = core.Money{Cents: totals[name]}
	}
	return out
}

// MonthlyTrends aggregates income and expense magnitudes per calendar
// month, labeled "YYYY-MM" in chronological order.
func MonthlyTrends(txs []core.Transaction) Trends {
	type sums struct{ income, expense int64 }
	byMonth := make(map[string]*sums)
	for _, tx := range txs {
		key := tx.Date.Format("2006-01")
		s, ok := byMonth[key]
		if !ok {
			s = &sums{}
			byMonth[key] = s
		}
		if tx.Amount.Cents >= 0 {
			s.income += tx.Amount.Cents
		} else {
			s.expense += -tx.Amount.Cents
		}
	}

	labels := make([]string, 0, len(byMonth))
	for key := range byMonth {
		labels = append(labels, key)
	}
	sort.Strings(labels)

	out := Trends{
		Labels:   labels,
		Income:   make([]core.Money, len(labels)),
		Expenses: make([]core.Money, len(labels)),
	}
	for i, key := range labels {
		out.Income[i] = core.Money{Cents: byMonth[key].income}
		out.Expenses[i] = core.Money{Cents: byMonth[key].expense}
	}
	return out
}

// Recent returns up to n transactions ordered newest first. The input is
// not modified; ties on date keep their input order.
func Recent(txs []core.Transaction, n int) []core.Transaction {
	sorted := make([]core.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// MonthEvents returns one calendar event per transaction falling in the
// given month, in input order.
func MonthEvents(txs []core.Transaction, year, month int) []CalendarEvent {
	grid := core.NewMonthGrid(year, month)
	var events []CalendarEvent
	for _, tx := range txs {
		if !grid.Contains(tx.Date) {
			continue
		}
		events = append(events, CalendarEvent{
			Date:   tx.Date,
			Title:  tx.Title,
			Amount: tx.Amount,
		})
	}
	return events
}

// Categories returns the sorted set of distinct category names.
func Categories(txs []core.Transaction) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, tx := range txs {
		if _, ok := seen[tx.Category]; ok {
			continue
		}
		seen[tx.Category] = struct{}{}
		out = append(out, tx.Category)
	}
	sort.Strings(out)
	return out
}
