// Package storage is the SQLite implementation of the store ports.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"saldo/internal/core"
)

// timestampLayout has a fixed width so stored timestamps sort as text.
const timestampLayout = "2006-01-02T15:04:05.000000000Z"

type table struct {
	name  string
	label string
}

var tables = map[core.Kind]table{
	core.KindIncome:  {name: "incomes", label: "source"},
	core.KindExpense: {name: "expenses", label: "title"},
}

type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteRepository{db: db, now: time.Now}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func tableFor(kind core.Kind) (table, error) {
	t, ok := tables[kind]
	if !ok {
		return table{}, fmt.Errorf("%w: %q", core.ErrInvalidKind, kind)
	}
	return t, nil
}

func (r *SQLiteRepository) Create(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	tbl, err := tableFor(t.Kind)
	if err != nil {
		return core.Transaction{}, err
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = r.now().UTC()
	}

	query := fmt.Sprintf(`INSERT INTO %s (id, user_id, %s, icon, amount, date, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`, tbl.name, tbl.label)
	if _, err := r.db.ExecContext(ctx, query,
		t.ID, t.OwnerID, strings.TrimSpace(t.Label), t.Icon, t.Amount, t.Date.String(), t.CreatedAt.UTC().Format(timestampLayout),
	); err != nil {
		return core.Transaction{}, fmt.Errorf("insert %s: %w", t.Kind, err)
	}
	t.Label = strings.TrimSpace(t.Label)
	return t, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, kind core.Kind, id string) (core.Transaction, error) {
	tbl, err := tableFor(kind)
	if err != nil {
		return core.Transaction{}, err
	}
	query := fmt.Sprintf(`SELECT id, user_id, %s, icon, amount, date, created_at FROM %s WHERE id = ?`, tbl.label, tbl.name)
	t, err := scanTransaction(kind, r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, core.ErrNotFound
	}
	return t, err
}

func (r *SQLiteRepository) Delete(ctx context.Context, kind core.Kind, id string) error {
	tbl, err := tableFor(kind)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, tbl.name), id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", kind, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) FindByOwner(ctx context.Context, kind core.Kind, ownerID string) ([]core.Transaction, error) {
	tbl, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT id, user_id, %s, icon, amount, date, created_at FROM %s
		WHERE user_id = ? ORDER BY date, created_at`, tbl.label, tbl.name)
	return r.list(ctx, kind, query, ownerID)
}

func (r *SQLiteRepository) FindByOwnerAndDateRange(ctx context.Context, kind core.Kind, ownerID string, start, end core.Date) ([]core.Transaction, error) {
	tbl, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT id, user_id, %s, icon, amount, date, created_at FROM %s
		WHERE user_id = ? AND date >= ? AND date <= ? ORDER BY date, created_at`, tbl.label, tbl.name)
	return r.list(ctx, kind, query, ownerID, start.String(), end.String())
}

func (r *SQLiteRepository) list(ctx context.Context, kind core.Kind, query string, args ...any) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", kind, err)
	}
	defer rows.Close()

	out := make([]core.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(kind, rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", kind, err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(kind core.Kind, s scanner) (core.Transaction, error) {
	var (
		t               core.Transaction
		date, createdAt string
	)
	if err := s.Scan(&t.ID, &t.OwnerID, &t.Label, &t.Icon, &t.Amount, &date, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return t, err
		}
		return t, fmt.Errorf("scan %s: %w", kind, err)
	}
	d, err := core.ParseDate(date)
	if err != nil {
		return t, fmt.Errorf("parse stored date %q: %w", date, err)
	}
	created, err := time.Parse(timestampLayout, createdAt)
	if err != nil {
		return t, fmt.Errorf("parse stored timestamp %q: %w", createdAt, err)
	}
	t.Kind = kind
	t.Date = d
	t.CreatedAt = created
	return t, nil
}

func (r *SQLiteRepository) CreateUser(ctx context.Context, u core.User) (core.User, error) {
	u.Email = core.NormalizeEmail(u.Email)
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = r.now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, full_name, email, password_hash, profile_image_url, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.FullName, u.Email, u.PasswordHash, u.ProfileImageURL, u.CreatedAt.UTC().Format(timestampLayout))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.email") {
			return core.User{}, core.ErrEmailTaken
		}
		return core.User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

func (r *SQLiteRepository) GetUserByEmail(ctx context.Context, email string) (core.User, error) {
	return r.getUser(ctx, `email = ?`, core.NormalizeEmail(email))
}

func (r *SQLiteRepository) GetUser(ctx context.Context, id string) (core.User, error) {
	return r.getUser(ctx, `id = ?`, id)
}

func (r *SQLiteRepository) getUser(ctx context.Context, where string, arg any) (core.User, error) {
	var (
		u         core.User
		createdAt string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, full_name, email, password_hash, profile_image_url, created_at FROM users WHERE `+where, arg,
	).Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.ProfileImageURL, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, core.ErrNotFound
	}
	if err != nil {
		return core.User{}, fmt.Errorf("get user: %w", err)
	}
	if u.CreatedAt, err = time.Parse(timestampLayout, createdAt); err != nil {
		return core.User{}, fmt.Errorf("parse stored timestamp %q: %w", createdAt, err)
	}
	return u, nil
}

func (r *SQLiteRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM users ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
