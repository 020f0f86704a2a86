package backend

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"moneytracker/internal/amqp"
	"moneytracker/internal/config"
	"moneytracker/internal/services"
	"moneytracker/internal/store/memory"
	"moneytracker/internal/store/mongodb"
	"moneytracker/internal/store/sqlite"
)

// FromAppConfig converts the application config to backend config.
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	backendType := Type(appConfig.DataBackend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}

	return Config{
		Type:         backendType,
		CSVPath:      appConfig.CSVPath,
		MongoURI:     appConfig.MongoURI,
		MongoDB:      appConfig.MongoDB,
		SQLiteDBPath: appConfig.SQLiteDBPath,
		AMQPURL:      appConfig.AMQPURL,
		AMQPExchange: appConfig.AMQPExchange,
		AMQPQueue:    appConfig.AMQPQueue,
	}, nil
}

type DefaultFactory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

func (f *DefaultFactory) CreateBackend(ctx context.Context, cfg Config) (*Result, error) {
	switch cfg.Type {
	case MemoryBackend:
		return f.createMemoryBackend(cfg)
	case MongoBackend:
		return f.createMongoBackend(ctx, cfg)
	case SQLiteBackend:
		return f.createSQLiteBackend(cfg)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.Type)
	}
}

func (f *DefaultFactory) createMemoryBackend(cfg Config) (*Result, error) {
	st, err := memory.NewFromFile(cfg.CSVPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize memory store: %w", err)
	}

	f.logger.Info("Initialized memory backend", "csv_path", cfg.CSVPath)

	return &Result{
		Store:   st,
		Service: services.NewTransactionService(st, nil),
		Cleanup: nil,
	}, nil
}

func (f *DefaultFactory) createMongoBackend(ctx context.Context, cfg Config) (*Result, error) {
	st, err := mongodb.New(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MongoDB store: %w", err)
	}

	f.logger.Info("Initialized MongoDB backend", "database", cfg.MongoDB)

	cleanup := func() error {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return st.Close(closeCtx)
	}

	return &Result{
		Store:   st,
		Service: services.NewTransactionService(st, nil),
		Cleanup: cleanup,
	}, nil
}

func (f *DefaultFactory) createSQLiteBackend(cfg Config) (*Result, error) {
	repo, err := sqlite.NewRepository(cfg.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	// AMQP is optional; appends fall back to the pending-export sweep when
	// the broker is unavailable.
	var publisher services.Publisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			f.logger.Warn("Failed to initialize AMQP client, continuing without export notifications", "error", err)
		} else {
			publisher = client
			f.logger.Info("Initialized AMQP client",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
		}
	}

	svc := services.NewTransactionService(repo, publisher)

	f.logger.Info("Initialized SQLite backend",
		"db_path", cfg.SQLiteDBPath,
		"amqp_enabled", publisher != nil)

	cleanup := func() error {
		if err := svc.Close(); err != nil {
			f.logger.Warn("Failed to close transaction service", "error", err)
		}
		return repo.Close()
	}

	return &Result{
		Store:   repo,
		Service: svc,
		Cleanup: cleanup,
	}, nil
}
