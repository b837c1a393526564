// Package services orchestrates store mutations with their downstream side
// channels. Handlers call these instead of the store directly whenever a
// mutation has to fan out beyond process memory.
package services

import (
	"context"
	"log/slog"

	"frota/internal/amqp"
	"frota/internal/core"
	"frota/internal/store"
)

// EventPublisher is the slice of the AMQP client the service needs.
type EventPublisher interface {
	PublishExpenseRecorded(ctx context.Context, msg *amqp.ExpenseRecordedMessage) error
}

// ExpenseService records expenses in the store and publishes the recorded
// event for the archive worker. The store write is authoritative; a publish
// failure is logged and swallowed, never surfaced to the caller.
type ExpenseService struct {
	store     *store.FleetStore
	publisher EventPublisher
}

func NewExpenseService(st *store.FleetStore, publisher EventPublisher) *ExpenseService {
	return &ExpenseService{
		store:     st,
		publisher: publisher,
	}
}

// RecordExpense applies the mutation (including the odometer side effect)
// and emits the expense-recorded event.
func (s *ExpenseService) RecordExpense(ctx context.Context, e core.Expense) core.Expense {
	recorded := s.store.RecordExpense(e)

	if s.publisher == nil {
		return recorded
	}
	if err := s.publisher.PublishExpenseRecorded(ctx, amqp.NewExpenseRecordedMessage(recorded)); err != nil {
		// The expense is already recorded in memory; archival is best effort.
		slog.ErrorContext(ctx, "Failed to publish expense event",
			"expense_id", recorded.ID, "error", err)
	}
	return recorded
}
