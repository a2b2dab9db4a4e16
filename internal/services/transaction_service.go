// Package services holds the use cases behind the HTTP API and the workers.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"saldo/internal/amqp"
	"saldo/internal/core"
	applog "saldo/internal/log"
	"saldo/internal/store"
)

// NewTransaction is the caller-supplied part of an income or expense.
type NewTransaction struct {
	Label  string
	Icon   string
	Amount float64
	Date   core.Date
}

// DateRange is an optional inclusive filter. Nil bounds are open.
type DateRange struct {
	Start *core.Date
	End   *core.Date
}

var ErrInvalidRange = errors.New("start date is after end date")

// TransactionService writes and lists one owner's incomes and expenses.
type TransactionService struct {
	store       store.TransactionStore
	publisher   EventPublisher
	invalidator Invalidator
	logger      *applog.Logger
}

// NewTransactionService wires the store. publisher and invalidator may be nil.
func NewTransactionService(s store.TransactionStore, publisher EventPublisher, invalidator Invalidator, logger *applog.Logger) *TransactionService {
	return &TransactionService{
		store:       s,
		publisher:   publisher,
		invalidator: invalidator,
		logger:      logger,
	}
}

// Add validates and stores a new record for ownerID.
func (s *TransactionService) Add(ctx context.Context, ownerID string, kind core.Kind, in NewTransaction) (core.Transaction, error) {
	t := core.Transaction{
		OwnerID: ownerID,
		Kind:    kind,
		Label:   strings.TrimSpace(in.Label),
		Icon:    strings.TrimSpace(in.Icon),
		Amount:  in.Amount,
		Date:    in.Date,
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	t.Icon = t.IconOrDefault()

	created, err := s.store.Create(ctx, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create %s: %w", kind, err)
	}

	s.logger.InfoContext(ctx, "Transaction created",
		applog.NewFields().WithOwner(ownerID).WithOperation(applog.OpCreate).
			WithTransaction(kind.String(), created.ID, created.Amount).Args()...)
	s.changed(ctx, amqp.EventCreated, created)
	return created, nil
}

// List returns every record of kind for ownerID, newest first.
func (s *TransactionService) List(ctx context.Context, ownerID string, kind core.Kind) ([]core.Transaction, error) {
	records, err := s.store.FindByOwner(ctx, kind, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	newestFirst(records)
	return records, nil
}

// Delete removes a record owned by ownerID.
func (s *TransactionService) Delete(ctx context.Context, ownerID string, kind core.Kind, id string) error {
	t, err := s.store.Get(ctx, kind, id)
	if err != nil {
		return err
	}
	if t.OwnerID != ownerID {
		return core.ErrForbidden
	}
	if err := s.store.Delete(ctx, kind, id); err != nil {
		return fmt.Errorf("delete %s: %w", kind, err)
	}

	s.logger.InfoContext(ctx, "Transaction deleted",
		applog.NewFields().WithOwner(ownerID).WithOperation(applog.OpDelete).
			WithTransaction(kind.String(), id, t.Amount).Args()...)
	s.changed(ctx, amqp.EventDeleted, t)
	return nil
}

// Export returns the records of kind within r, newest first.
func (s *TransactionService) Export(ctx context.Context, ownerID string, kind core.Kind, r DateRange) ([]core.Transaction, error) {
	if r.Start == nil && r.End == nil {
		return s.List(ctx, ownerID, kind)
	}

	start, end := core.NewDate(1, 1, 1), core.NewDate(9999, 12, 31)
	if r.Start != nil {
		start = *r.Start
	}
	if r.End != nil {
		end = *r.End
	}
	if start.After(end.Time) {
		return nil, ErrInvalidRange
	}

	records, err := s.store.FindByOwnerAndDateRange(ctx, kind, ownerID, start, end)
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", kind, err)
	}
	newestFirst(records)
	return records, nil
}

// changed invalidates cached dashboards and publishes the event. Publishing
// is best effort: the write already succeeded.
func (s *TransactionService) changed(ctx context.Context, typ amqp.EventType, t core.Transaction) {
	if s.invalidator != nil {
		s.invalidator.Invalidate(t.OwnerID)
	}
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishTransactionEvent(ctx, amqp.NewTransactionEvent(typ, t)); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish transaction event",
			slog.String(applog.FieldTransaction, t.ID),
			slog.Any(applog.FieldError, err))
	}
}

func newestFirst(records []core.Transaction) {
	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date.Time) {
			return records[i].Date.After(records[j].Date.Time)
		}
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
}
