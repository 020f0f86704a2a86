// Package backend selects and wires the transaction store at startup.
package backend

import (
	"context"

	"moneytracker/internal/services"
	"moneytracker/internal/store"
)

// Type identifies a storage backend.
type Type string

const (
	MemoryBackend Type = "memory"
	MongoBackend  Type = "mongo"
	SQLiteBackend Type = "sqlite"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case MemoryBackend, MongoBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}

// CleanupFunc releases backend resources at shutdown.
type CleanupFunc func() error

// Result bundles the wired store with the append service and cleanup hook.
// Service routes appends through the export pipeline when one is configured;
// reads always go straight to the Store.
type Result struct {
	Store   store.Store
	Service *services.TransactionService
	Cleanup CleanupFunc
}

// Factory creates a backend from configuration.
type Factory interface {
	CreateBackend(ctx context.Context, cfg Config) (*Result, error)
}

// Config holds backend creation settings.
type Config struct {
	Type Type

	// Memory backend
	CSVPath string

	// MongoDB backend
	MongoURI string
	MongoDB  string

	// SQLite backend
	SQLiteDBPath string

	// Export pipeline (sqlite only)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}
