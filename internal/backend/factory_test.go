package backend

import (
	"context"
	"path/filepath"
	"testing"

	"moneytracker/internal/config"
)

func TestFromAppConfig(t *testing.T) {
	appCfg := &config.Config{
		DataBackend:  "sqlite",
		CSVPath:      "./data/ledger.csv",
		SQLiteDBPath: "./data/test.db",
		AMQPURL:      "amqp://localhost:5672",
		AMQPExchange: "moneytracker",
		AMQPQueue:    "export_transactions",
	}

	cfg, err := FromAppConfig(appCfg)
	if err != nil {
		t.Fatalf("FromAppConfig() error: %v", err)
	}
	if cfg.Type != SQLiteBackend {
		t.Errorf("Type = %v, want sqlite", cfg.Type)
	}
	if cfg.AMQPQueue != "export_transactions" {
		t.Errorf("AMQPQueue = %q", cfg.AMQPQueue)
	}
}

func TestFromAppConfig_InvalidBackend(t *testing.T) {
	if _, err := FromAppConfig(&config.Config{DataBackend: "redis"}); err == nil {
		t.Error("FromAppConfig() should reject unknown backend type")
	}
	if _, err := FromAppConfig(nil); err == nil {
		t.Error("FromAppConfig() should reject nil config")
	}
}

func TestType_IsValid(t *testing.T) {
	for _, valid := range []Type{MemoryBackend, MongoBackend, SQLiteBackend} {
		if !valid.IsValid() {
			t.Errorf("%s should be valid", valid)
		}
	}
	if Type("sheets").IsValid() {
		t.Error("sheets should not be a valid backend type")
	}
}

func TestFactory_CreateMemoryBackend(t *testing.T) {
	factory := NewFactory(nil)

	result, err := factory.CreateBackend(context.Background(), Config{
		Type:    MemoryBackend,
		CSVPath: filepath.Join(t.TempDir(), "missing.csv"),
	})
	if err != nil {
		t.Fatalf("CreateBackend() error: %v", err)
	}
	if result.Store == nil || result.Service == nil {
		t.Fatal("result should carry a store and a service")
	}

	txs, err := result.Store.List(context.Background())
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(txs) != 0 {
		t.Errorf("fresh memory store should be empty, got %d", len(txs))
	}
}

func TestFactory_CreateSQLiteBackend(t *testing.T) {
	factory := NewFactory(nil)

	result, err := factory.CreateBackend(context.Background(), Config{
		Type:         SQLiteBackend,
		SQLiteDBPath: filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("CreateBackend() error: %v", err)
	}
	defer result.Cleanup()

	if err := result.Store.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error: %v", err)
	}
}

func TestFactory_UnsupportedType(t *testing.T) {
	factory := NewFactory(nil)
	if _, err := factory.CreateBackend(context.Background(), Config{Type: "redis"}); err == nil {
		t.Error("CreateBackend() should fail for unsupported type")
	}
}
