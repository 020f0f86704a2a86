// Package sqlite is the embedded-database transaction store backend. It
// also tracks which rows the export worker has pushed out, so the worker
// can sweep anything a lost message left behind.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"moneytracker/internal/core"

	_ "modernc.org/sqlite"
)

const dateLayout = "2006-01-02"

type Repository struct {
	db *sql.DB
}

// Row is a stored transaction plus its database id, used by the export
// worker.
type Row struct {
	ID          int64
	Transaction core.Transaction
	CreatedAt   time.Time
}

func NewRepository(dbPath string) (*Repository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Append implements store.Appender; the row ref is the database id.
func (r *Repository) Append(ctx context.Context, t core.Transaction) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (date, title, category, amount_cents, account) VALUES (?, ?, ?, ?, ?)`,
		t.Date.Format(dateLayout), t.Title, t.Category, t.Amount.Cents, t.Account)
	if err != nil {
		return "", fmt.Errorf("insert transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved to SQLite",
		"id", id,
		"title", t.Title,
		"amount_cents", t.Amount.Cents,
		"category", t.Category)
	return strconv.FormatInt(id, 10), nil
}

// List implements store.Lister, newest date first.
func (r *Repository) List(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT date, title, category, amount_cents, account FROM transactions ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		var dateStr string
		var t core.Transaction
		if err := rows.Scan(&dateStr, &t.Title, &t.Category, &t.Amount.Cents, &t.Account); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.Date, err = time.ParseInLocation(dateLayout, dateStr, time.Local)
		if err != nil {
			return nil, fmt.Errorf("parse stored date %q: %w", dateStr, err)
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

// Reload recounts the table; the database is its own source of truth.
func (r *Repository) Reload(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return n, nil
}

// Ping implements store.Pinger.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Get returns a single row by id.
func (r *Repository) Get(ctx context.Context, id int64) (Row, error) {
	var (
		row     Row
		dateStr string
		created string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, date, title, category, amount_cents, account, created_at FROM transactions WHERE id = ?`, id).
		Scan(&row.ID, &dateStr, &row.Transaction.Title, &row.Transaction.Category,
			&row.Transaction.Amount.Cents, &row.Transaction.Account, &created)
	if err != nil {
		return Row{}, fmt.Errorf("get transaction %d: %w", id, err)
	}
	row.Transaction.Date, err = time.ParseInLocation(dateLayout, dateStr, time.Local)
	if err != nil {
		return Row{}, fmt.Errorf("parse stored date %q: %w", dateStr, err)
	}
	if t, err := time.Parse(time.RFC3339, created); err == nil {
		row.CreatedAt = t
	}
	return row, nil
}

// PendingExport returns up to limit rows that have not been exported and
// have no sticky export error.
func (r *Repository) PendingExport(ctx context.Context, limit int) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id FROM transactions WHERE exported = 0 AND export_error = 0 ORDER BY id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query pending export: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan pending id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// MarkExported records a successful export.
func (r *Repository) MarkExported(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE transactions SET exported = 1, export_error = 0 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("mark exported: %w", err)
	}
	return nil
}

// MarkExportError flags a row so the periodic sweep stops retrying it.
func (r *Repository) MarkExportError(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE transactions SET export_error = 1 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("mark export error: %w", err)
	}
	slog.WarnContext(ctx, "Transaction marked with export error", "id", id)
	return nil
}
