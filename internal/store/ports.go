// Package store declares the persistence ports used by the services.
package store

import (
	"context"

	"saldo/internal/core"
)

type (
	// TransactionStore persists incomes and expenses. Listing methods return
	// records ordered by date, then creation time.
	TransactionStore interface {
		// Create assigns ID and CreatedAt when they are empty.
		Create(ctx context.Context, t core.Transaction) (core.Transaction, error)
		// Get returns core.ErrNotFound for an unknown id.
		Get(ctx context.Context, kind core.Kind, id string) (core.Transaction, error)
		Delete(ctx context.Context, kind core.Kind, id string) error
		FindByOwner(ctx context.Context, kind core.Kind, ownerID string) ([]core.Transaction, error)
		// FindByOwnerAndDateRange includes both start and end.
		FindByOwnerAndDateRange(ctx context.Context, kind core.Kind, ownerID string, start, end core.Date) ([]core.Transaction, error)
	}

	UserStore interface {
		// CreateUser returns core.ErrEmailTaken when the email is registered.
		CreateUser(ctx context.Context, u core.User) (core.User, error)
		GetUserByEmail(ctx context.Context, email string) (core.User, error)
		GetUser(ctx context.Context, id string) (core.User, error)
		ListUserIDs(ctx context.Context) ([]string, error)
	}

	// Store bundles both ports for backends that serve them together.
	Store interface {
		TransactionStore
		UserStore
		Ping(ctx context.Context) error
		Close() error
	}
)
