// Package worker drains appended transactions from the durable queue in
// SQLite and writes them to the configured export target.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"moneytracker/internal/amqp"
	"moneytracker/internal/export"
	"moneytracker/internal/store/sqlite"
)

type ExportWorker struct {
	repo      *sqlite.Repository
	target    export.Target
	batchSize int
}

func NewExportWorker(repo *sqlite.Repository, target export.Target, batchSize int) *ExportWorker {
	return &ExportWorker{
		repo:      repo,
		target:    target,
		batchSize: batchSize,
	}
}

// HandleCreatedMessage exports a single transaction referenced by an AMQP
// message. A parse failure on the ref is permanent, so it is reported as nil
// to stop redelivery.
func (w *ExportWorker) HandleCreatedMessage(ctx context.Context, msg *amqp.TransactionCreatedMessage) error {
	id, err := strconv.ParseInt(msg.Ref, 10, 64)
	if err != nil {
		slog.ErrorContext(ctx, "Invalid row ref in message, dropping",
			"ref", msg.Ref, "error", err)
		return nil
	}

	return w.exportRow(ctx, id)
}

// ProcessPending sweeps rows that never made it through the message path.
// Lost deliveries and worker downtime are recovered here.
func (w *ExportWorker) ProcessPending(ctx context.Context) error {
	ids, err := w.repo.PendingExport(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending exports: %w", err)
	}

	if len(ids) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending exports", "count", len(ids))

	for _, id := range ids {
		if err := w.exportRow(ctx, id); err != nil {
			slog.ErrorContext(ctx, "Failed to export pending row", "id", id, "error", err)
		}
	}

	return nil
}

// StartupCheck drains a larger pending batch once at worker start.
func (w *ExportWorker) StartupCheck(ctx context.Context) error {
	ids, err := w.repo.PendingExport(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending exports for startup check: %w", err)
	}

	if len(ids) == 0 {
		slog.InfoContext(ctx, "No pending exports found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending exports on startup", "count", len(ids))

	exported := 0
	failed := 0
	for _, id := range ids {
		if err := w.exportRow(ctx, id); err != nil {
			slog.ErrorContext(ctx, "Failed to export row during startup", "id", id, "error", err)
			failed++
			continue
		}
		exported++
	}

	slog.InfoContext(ctx, "Startup export check completed",
		"total", len(ids),
		"exported", exported,
		"errors", failed)

	return nil
}

func (w *ExportWorker) exportRow(ctx context.Context, id int64) error {
	row, err := w.repo.Get(ctx, id)
	if err != nil {
		if markErr := w.repo.MarkExportError(ctx, id); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark export error", "id", id, "error", markErr)
		}
		return fmt.Errorf("get transaction %d: %w", id, err)
	}

	if err := w.target.Export(ctx, row.Transaction); err != nil {
		if markErr := w.repo.MarkExportError(ctx, id); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark export error", "id", id, "error", markErr)
		}
		return fmt.Errorf("export transaction %d: %w", id, err)
	}

	if err := w.repo.MarkExported(ctx, id); err != nil {
		// The export itself succeeded, keep going.
		slog.ErrorContext(ctx, "Failed to mark as exported", "id", id, "error", err)
	}

	slog.InfoContext(ctx, "Exported transaction",
		"id", id,
		"title", row.Transaction.Title,
		"amount_cents", row.Transaction.Amount.Cents)

	return nil
}
