package services

import (
	"context"
	"fmt"
	"log/slog"

	"moneytracker/internal/amqp"
	"moneytracker/internal/core"
	"moneytracker/internal/store"
)

// Publisher is the slice of the AMQP client the service needs.
type Publisher interface {
	PublishTransactionCreated(ctx context.Context, ref string) error
	Close() error
}

var _ Publisher = (*amqp.Client)(nil)

// TransactionService appends transactions to the store and notifies the
// export pipeline. The store write is authoritative; a publish failure is
// logged and never surfaces to the caller.
type TransactionService struct {
	store     store.Store
	publisher Publisher
}

func NewTransactionService(st store.Store, publisher Publisher) *TransactionService {
	return &TransactionService{
		store:     st,
		publisher: publisher,
	}
}

func (s *TransactionService) Create(ctx context.Context, t core.Transaction) (string, error) {
	ref, err := s.store.Append(ctx, t)
	if err != nil {
		return "", fmt.Errorf("save transaction: %w", err)
	}

	if err := s.publishCreated(ctx, ref); err != nil {
		slog.ErrorContext(ctx, "Failed to publish created message",
			"ref", ref, "error", err)
	}

	return ref, nil
}

func (s *TransactionService) publishCreated(ctx context.Context, ref string) error {
	if s.publisher == nil {
		slog.WarnContext(ctx, "AMQP publisher not available, skipping created message")
		return nil
	}
	return s.publisher.PublishTransactionCreated(ctx, ref)
}

func (s *TransactionService) Close() error {
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			return fmt.Errorf("close publisher: %w", err)
		}
	}
	return nil
}
