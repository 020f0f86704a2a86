package export

import (
	"context"
	"fmt"

	"moneytracker/internal/core"
	"moneytracker/internal/csvledger"
)

// CSVTarget appends exported transactions to a ledger CSV file.
type CSVTarget struct {
	path string
}

func NewCSVTarget(path string) *CSVTarget {
	return &CSVTarget{path: path}
}

var _ Target = (*CSVTarget)(nil)

func (t *CSVTarget) Export(ctx context.Context, tx core.Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := csvledger.Append(t.path, tx); err != nil {
		return fmt.Errorf("append to export CSV: %w", err)
	}
	return nil
}
