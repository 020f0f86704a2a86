// Package store defines the ports every storage backend implements.
package store

import (
	"context"

	"moneytracker/internal/core"
)

type (
	// Appender persists one new transaction and returns a backend row
	// reference.
	Appender interface {
		Append(ctx context.Context, t core.Transaction) (rowRef string, err error)
	}

	// Lister returns every stored transaction.
	Lister interface {
		List(ctx context.Context) ([]core.Transaction, error)
	}

	// Reloader re-reads the backend's source of truth and returns the
	// resulting transaction count.
	Reloader interface {
		Reload(ctx context.Context) (int, error)
	}

	// Pinger reports whether the backend is reachable.
	Pinger interface {
		Ping(ctx context.Context) error
	}

	// Store is the full backend surface the server wires up.
	Store interface {
		Appender
		Lister
		Reloader
		Pinger
	}
)
