package services

import (
	"context"

	"saldo/internal/amqp"
)

type (
	// EventPublisher announces transaction writes to other processes.
	EventPublisher interface {
		PublishTransactionEvent(ctx context.Context, e amqp.TransactionEvent) error
	}

	// Invalidator drops cached results derived from an owner's records.
	Invalidator interface {
		Invalidate(ownerID string)
	}
)
