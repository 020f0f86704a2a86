package ledger

import (
	"reflect"
	"testing"
	"time"

	"moneytracker/internal/core"
)

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.Local)
}

func tx(date time.Time, title, category string, cents int64) core.Transaction {
	return core.Transaction{Date: date, Title: title, Category: category, Amount: core.Money{Cents: cents}}
}

func sampleLedger() []core.Transaction {
	return []core.Transaction{
		tx(day(2024, 1, 5), "Paycheck", "Salary", 350000),
		tx(day(2024, 1, 7), "Target", "Grocery", -11500),
		tx(day(2024, 1, 20), "Shell", "Gas", -4000),
		tx(day(2024, 2, 5), "Paycheck", "Salary", 350000),
		tx(day(2024, 2, 9), "Safeway", "Grocery", -9500),
		tx(day(2024, 3, 15), "Refund", "Grocery", -4250),
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleLedger())
	if s.TotalTransactions != 6 {
		t.Errorf("TotalTransactions = %d, want 6", s.TotalTransactions)
	}
	if s.TotalDeposits.Cents != 700000 {
		t.Errorf("TotalDeposits = %d, want 700000", s.TotalDeposits.Cents)
	}
	if s.TotalWithdrawals.Cents != 29250 {
		t.Errorf("TotalWithdrawals = %d, want 29250", s.TotalWithdrawals.Cents)
	}
	if s.NetAmount.Cents != 670750 {
		t.Errorf("NetAmount = %d, want 670750", s.NetAmount.Cents)
	}
	if !s.Start.Equal(day(2024, 1, 5)) || !s.End.Equal(day(2024, 3, 15)) {
		t.Errorf("date range = %v..%v", s.Start, s.End)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.TotalTransactions != 0 || s.TotalDeposits.Cents != 0 || s.TotalWithdrawals.Cents != 0 || s.NetAmount.Cents != 0 {
		t.Errorf("empty ledger summary not zero: %+v", s)
	}
	if !s.Start.IsZero() || !s.End.IsZero() {
		t.Errorf("empty ledger has date range: %v..%v", s.Start, s.End)
	}
}

func TestSpendingByCategory(t *testing.T) {
	b := SpendingByCategory(sampleLedger())
	wantLabels := []string{"Grocery", "Gas"}
	if !reflect.DeepEqual(b.Labels, wantLabels) {
		t.Fatalf("labels = %v, want %v", b.Labels, wantLabels)
	}
	if b.Totals[0].Cents != 25250 {
		t.Errorf("Grocery total = %d, want 25250", b.Totals[0].Cents)
	}
	if b.Totals[1].Cents != 4000 {
		t.Errorf("Gas total = %d, want 4000", b.Totals[1].Cents)
	}
}

func TestSpendingByCategoryEmpty(t *testing.T) {
	b := SpendingByCategory(nil)
	if len(b.Labels) != 0 || len(b.Totals) != 0 {
		t.Errorf("expected empty breakdown, got %+v", b)
	}
	// Income-only ledgers have no slices either.
	b = SpendingByCategory([]core.Transaction{tx(day(2024, 1, 1), "Paycheck", "Salary", 100)})
	if len(b.Labels) != 0 {
		t.Errorf("income-only ledger produced labels %v", b.Labels)
	}
}

func TestMonthlyTrends(t *testing.T) {
	tr := MonthlyTrends(sampleLedger())
	wantLabels := []string{"2024-01", "2024-02", "2024-03"}
	if !reflect.DeepEqual(tr.Labels, wantLabels) {
		t.Fatalf("labels = %v, want %v", tr.Labels, wantLabels)
	}
	if tr.Income[0].Cents != 350000 || tr.Expenses[0].Cents != 15500 {
		t.Errorf("jan = income %d / expenses %d", tr.Income[0].Cents, tr.Expenses[0].Cents)
	}
	if tr.Income[2].Cents != 0 || tr.Expenses[2].Cents != 4250 {
		t.Errorf("mar = income %d / expenses %d", tr.Income[2].Cents, tr.Expenses[2].Cents)
	}
	if len(tr.Income) != len(tr.Labels) || len(tr.Expenses) != len(tr.Labels) {
		t.Error("trend slices not index-aligned")
	}
}

func TestRecent(t *testing.T) {
	got := Recent(sampleLedger(), 3)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].Title != "Refund" || got[1].Title != "Safeway" || got[2].Title != "Paycheck" {
		t.Errorf("order = %s, %s, %s", got[0].Title, got[1].Title, got[2].Title)
	}
	// No limit applied when n is zero.
	if all := Recent(sampleLedger(), 0); len(all) != 6 {
		t.Errorf("unlimited len = %d, want 6", len(all))
	}
	if empty := Recent(nil, 10); len(empty) != 0 {
		t.Errorf("empty ledger recent len = %d", len(empty))
	}
}

func TestMonthEvents(t *testing.T) {
	txs := sampleLedger()
	events := MonthEvents(txs, 2024, 3)
	if len(events) != 1 {
		t.Fatalf("march events = %d, want 1", len(events))
	}
	e := events[0]
	if e.Date.Day() != 15 || e.Title != "Refund" || e.Amount.Cents != -4250 {
		t.Errorf("unexpected event %+v", e)
	}
	if e.Type() != core.TypeExpense {
		t.Errorf("type = %q, want expense", e.Type())
	}

	// The same transaction appears in no other month.
	for _, m := range []struct{ y, mo int }{{2024, 2}, {2024, 4}, {2023, 3}, {2025, 3}} {
		for _, ev := range MonthEvents(txs, m.y, m.mo) {
			if ev.Title == "Refund" {
				t.Errorf("Refund leaked into %d-%02d", m.y, m.mo)
			}
		}
	}
}

func TestCategories(t *testing.T) {
	got := Categories(sampleLedger())
	want := []string{"Gas", "Grocery", "Salary"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("categories = %v, want %v", got, want)
	}
	if cats := Categories(nil); len(cats) != 0 {
		t.Errorf("empty ledger categories = %v", cats)
	}
}
