// Package memory is a mutex-guarded in-process implementation of the store ports.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"saldo/internal/core"
)

type Store struct {
	mu    sync.RWMutex
	now   func() time.Time
	txs   map[core.Kind][]core.Transaction
	users []core.User
}

func New() *Store {
	return &Store{
		now: time.Now,
		txs: make(map[core.Kind][]core.Transaction),
	}
}

func (s *Store) Create(_ context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = s.now().UTC()
	}
	s.txs[t.Kind] = append(s.txs[t.Kind], t)
	return t, nil
}

func (s *Store) Get(_ context.Context, kind core.Kind, id string) (core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.txs[kind] {
		if t.ID == id {
			return t, nil
		}
	}
	return core.Transaction{}, core.ErrNotFound
}

func (s *Store) Delete(_ context.Context, kind core.Kind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.txs[kind]
	for i, t := range items {
		if t.ID == id {
			s.txs[kind] = append(items[:i:i], items[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}

func (s *Store) FindByOwner(_ context.Context, kind core.Kind, ownerID string) ([]core.Transaction, error) {
	return s.find(kind, func(t core.Transaction) bool { return t.OwnerID == ownerID }), nil
}

func (s *Store) FindByOwnerAndDateRange(_ context.Context, kind core.Kind, ownerID string, start, end core.Date) ([]core.Transaction, error) {
	return s.find(kind, func(t core.Transaction) bool {
		return t.OwnerID == ownerID && !t.Date.Before(start.Time) && !t.Date.After(end.Time)
	}), nil
}

func (s *Store) find(kind core.Kind, keep func(core.Transaction) bool) []core.Transaction {
	s.mu.RLock()
	out := make([]core.Transaction, 0)
	for _, t := range s.txs[kind] {
		if keep(t) {
			out = append(out, t)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date.Time) {
			return out[i].Date.Before(out[j].Date.Time)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (s *Store) CreateUser(_ context.Context, u core.User) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u.Email = core.NormalizeEmail(u.Email)
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return core.User{}, core.ErrEmailTaken
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = s.now().UTC()
	}
	s.users = append(s.users, u)
	return u, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (core.User, error) {
	email = core.NormalizeEmail(email)
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return core.User{}, core.ErrNotFound
}

func (s *Store) GetUser(_ context.Context, id string) (core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return core.User{}, core.ErrNotFound
}

func (s *Store) ListUserIDs(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.users))
	for _, u := range s.users {
		ids = append(ids, u.ID)
	}
	return ids, nil
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() error { return nil }
