// Package memory is the CSV-seeded in-memory backend: the whole ledger
// lives in a slice, appends write through to the CSV file, and Reload
// re-reads it from disk.
package memory

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"moneytracker/internal/core"
	"moneytracker/internal/csvledger"
)

type Store struct {
	mu    sync.Mutex
	path  string
	items []core.Transaction
}

// New returns an empty store with no backing file. Appends are kept in
// memory only; Reload is a no-op. Used by tests and as a scratch backend.
func New() *Store {
	return &Store{}
}

// NewFromFile loads the ledger CSV at path. A missing file is not an
// error: the store starts empty and the file is created on first append.
func NewFromFile(path string) (*Store, error) {
	s := &Store{path: path}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Warn("Ledger file not found, starting empty", "path", path)
		return s, nil
	}
	txs, err := csvledger.Load(path)
	if err != nil {
		return nil, fmt.Errorf("seed memory store: %w", err)
	}
	s.items = txs
	return s, nil
}

// Append stores the transaction, writes it through to the ledger file when
// one is configured, and returns a synthetic row reference.
func (s *Store) Append(_ context.Context, t core.Transaction) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.path != "" {
		if err := csvledger.Append(s.path, t); err != nil {
			return "", fmt.Errorf("write through to ledger file: %w", err)
		}
	}
	s.items = append(s.items, t)
	return fmt.Sprintf("mem:%d", len(s.items)), nil
}

// List returns a copy of the stored transactions.
func (s *Store) List(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, len(s.items))
	copy(out, s.items)
	return out, nil
}

// Reload re-reads the ledger file, replacing the in-memory slice.
func (s *Store) Reload(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.path == "" {
		return len(s.items), nil
	}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		s.items = nil
		return 0, nil
	}
	txs, err := csvledger.Load(s.path)
	if err != nil {
		return 0, fmt.Errorf("reload ledger file: %w", err)
	}
	s.items = txs
	return len(s.items), nil
}

// Ping always succeeds; the backing file is only touched on demand.
func (s *Store) Ping(context.Context) error {
	return nil
}
