package amqp

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"saldo/internal/core"
)

// EventType says what happened to a transaction.
type EventType string

const (
	EventCreated EventType = "created"
	EventDeleted EventType = "deleted"
)

var ErrInvalidEvent = errors.New("invalid transaction event")

// TransactionEvent announces a write to an owner's records. It carries the
// record date so consumers know which reporting period changed.
type TransactionEvent struct {
	Type          EventType `json:"type"`
	OwnerID       string    `json:"ownerId"`
	TransactionID string    `json:"transactionId"`
	Kind          core.Kind `json:"kind"`
	Date          string    `json:"date"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewTransactionEvent builds an event for t stamped with the current time.
func NewTransactionEvent(typ EventType, t core.Transaction) TransactionEvent {
	return TransactionEvent{
		Type:          typ,
		OwnerID:       t.OwnerID,
		TransactionID: t.ID,
		Kind:          t.Kind,
		Date:          t.Date.String(),
		Timestamp:     time.Now().UTC(),
	}
}

// Year returns the calendar year of the affected record.
func (e TransactionEvent) Year() (int, error) {
	d, err := core.ParseDate(e.Date)
	if err != nil {
		return 0, err
	}
	return d.Year(), nil
}

func (e TransactionEvent) Validate() error {
	if e.Type != EventCreated && e.Type != EventDeleted {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidEvent, e.Type)
	}
	if e.OwnerID == "" {
		return fmt.Errorf("%w: missing owner", ErrInvalidEvent)
	}
	if !e.Kind.Valid() {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidEvent, e.Kind)
	}
	if _, err := e.Year(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	return nil
}

func (e TransactionEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// TransactionEventFromJSON decodes and validates an event body.
func TransactionEventFromJSON(data []byte) (TransactionEvent, error) {
	var e TransactionEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return TransactionEvent{}, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	if err := e.Validate(); err != nil {
		return TransactionEvent{}, err
	}
	return e, nil
}
