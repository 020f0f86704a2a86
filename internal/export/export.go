// Package export writes appended transactions to an external destination.
// The worker drains pending rows through a Target; csv and sheets targets
// are provided.
package export

import (
	"context"

	"moneytracker/internal/core"
)

// Target receives a single transaction for export. Implementations must be
// safe to call repeatedly with the same transaction since the worker retries
// on transient failures.
type Target interface {
	Export(ctx context.Context, t core.Transaction) error
}
