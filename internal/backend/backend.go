// Package backend selects and builds the record store from configuration.
package backend

import (
	"fmt"

	"saldo/internal/config"
	"saldo/internal/store"
)

// Type names a storage backend.
type Type string

const (
	SQLite Type = config.BackendSQLite
	Memory Type = config.BackendMemory
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case SQLite, Memory:
		return true
	default:
		return false
	}
}

// Types returns every supported backend.
func Types() []Type {
	return []Type{Memory, SQLite}
}

// CleanupFunc releases the resources held by a backend.
type CleanupFunc func() error

// Result is a ready store and its cleanup.
type Result struct {
	Store   store.Store
	Type    Type
	Cleanup CleanupFunc
}

// Config is the subset of application settings a backend needs.
type Config struct {
	Type         Type
	SQLiteDBPath string
}

// FromAppConfig extracts the backend settings from the application config.
func FromAppConfig(cfg *config.Config) (Config, error) {
	if cfg == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}
	c := Config{Type: Type(cfg.DataBackend), SQLiteDBPath: cfg.SQLiteDBPath}
	return c, c.Validate()
}

func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}
	if c.Type == SQLite && c.SQLiteDBPath == "" {
		return fmt.Errorf("SQLite database path is required for sqlite backend")
	}
	return nil
}
