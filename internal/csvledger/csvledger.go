// Package csvledger reads and appends the ledger's CSV interchange format.
//
// The format is what personal finance sheet exports look like in the wild:
// a header row naming some variant of date/title/category columns, and the
// amount split across an expense column and an income column, often with
// dollar signs and thousands separators. Loading cleans all of that into
// core.Transaction values; appending writes one row back in the same shape.
package csvledger

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"moneytracker/internal/core"
)

// Header is the canonical header written when creating a new ledger file.
var Header = []string{"Date", "Description", "Category", "Withdrawal (-)", "Deposit (+)", "Account"}

// columns maps header names (lowered) onto field indexes.
type columns struct {
	date     int
	title    int
	category int
	expense  int
	income   int
	account  int
}

func resolveColumns(header []string) (columns, error) {
	c := columns{date: -1, title: -1, category: -1, expense: -1, income: -1, account: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "date":
			c.date = i
		case "description", "store", "title", "vendor":
			c.title = i
		case "category":
			c.category = i
		case "expense", "withdrawal", "withdrawal (-)":
			c.expense = i
		case "income", "deposit", "deposit (+)":
			c.income = i
		case "account":
			c.account = i
		}
	}
	if c.date < 0 || c.title < 0 || c.category < 0 || c.expense < 0 || c.income < 0 {
		return c, fmt.Errorf("unrecognized ledger header: %v", header)
	}
	return c, nil
}

// Load reads and cleans a ledger CSV. Rows with no category, unparseable
// dates, or neither an expense nor an income value are dropped rather than
// reported, matching how a hand-edited sheet is ingested. Categories are
// normalized to title case.
func Load(path string) ([]core.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ledger csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read ledger csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	cols, err := resolveColumns(records[0])
	if err != nil {
		return nil, err
	}

	var txs []core.Transaction
	for _, rec := range records[1:] {
		tx, ok := parseRow(rec, cols)
		if !ok {
			continue
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

func parseRow(rec []string, cols columns) (core.Transaction, bool) {
	field := func(i int) string {
		if i < 0 || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	date, err := parseLedgerDate(field(cols.date))
	if err != nil {
		return core.Transaction{}, false
	}
	category := core.TitleCase(field(cols.category))
	if category == "" {
		return core.Transaction{}, false
	}

	expense := parseOptionalAmount(field(cols.expense))
	income := parseOptionalAmount(field(cols.income))
	// Amount is the change to the account: income minus expense magnitude.
	cents := income - expense
	if expense == 0 && income == 0 {
		return core.Transaction{}, false
	}

	title := field(cols.title)
	if title == "" {
		title = "N/A"
	}

	return core.Transaction{
		Date:     date,
		Title:    title,
		Category: category,
		Amount:   core.Money{Cents: cents},
		Account:  core.TitleCase(field(cols.account)),
	}, true
}

// parseOptionalAmount returns the absolute cents of a cell, 0 when blank or
// unparseable.
func parseOptionalAmount(s string) int64 {
	if s == "" {
		return 0
	}
	cents, err := core.ParseAmount(s)
	if err != nil {
		return 0
	}
	if cents < 0 {
		cents = -cents
	}
	return cents
}

func parseLedgerDate(s string) (time.Time, error) {
	for _, layout := range []string{"01/02/2006", "2006-01-02", "1/2/2006"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// Append writes a transaction as one CSV row, creating the file with the
// canonical header if it does not exist. The signed amount is split into
// the expense and income columns the way Load expects.
func Append(path string, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}

	var header []string
	if existing, err := os.Open(path); err == nil {
		r := csv.NewReader(existing)
		header, _ = r.Read()
		existing.Close()
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open ledger csv for append: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if len(header) == 0 {
		header = Header
		if err := w.Write(header); err != nil {
			return fmt.Errorf("write ledger header: %w", err)
		}
	}

	cols, err := resolveColumns(header)
	if err != nil {
		return err
	}

	row := make([]string, len(header))
	row[cols.date] = t.Date.Format("01/02/2006")
	row[cols.title] = t.Title
	row[cols.category] = core.TitleCase(t.Category)
	abs := t.Amount.Abs()
	if t.Amount.Cents < 0 {
		row[cols.expense] = formatCell(abs.Cents)
	} else {
		row[cols.income] = formatCell(abs.Cents)
	}
	if cols.account >= 0 {
		row[cols.account] = t.Account
	}

	if err := w.Write(row); err != nil {
		return fmt.Errorf("write ledger row: %w", err)
	}
	w.Flush()
	return w.Error()
}

func formatCell(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
