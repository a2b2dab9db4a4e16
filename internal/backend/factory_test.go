package backend

import (
	"path/filepath"
	"testing"

	"saldo/internal/config"
	applog "saldo/internal/log"
)

func TestFromAppConfig(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		path    string
		wantErr bool
	}{
		{"memory", "memory", "", false},
		{"sqlite", "sqlite", "./data/x.db", false},
		{"sqlite without path", "sqlite", "", true},
		{"unknown", "sheets", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromAppConfig(&config.Config{DataBackend: tt.backend, SQLiteDBPath: tt.path})
			if (err != nil) != tt.wantErr {
				t.Errorf("FromAppConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	if _, err := FromAppConfig(nil); err == nil {
		t.Error("FromAppConfig(nil) error = nil, want error")
	}
}

func TestFactory_Create(t *testing.T) {
	f := NewFactory(applog.Discard())

	for _, cfg := range []Config{
		{Type: Memory},
		{Type: SQLite, SQLiteDBPath: filepath.Join(t.TempDir(), "saldo.db")},
	} {
		t.Run(cfg.Type.String(), func(t *testing.T) {
			res, err := f.Create(cfg)
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if res.Store == nil {
				t.Fatal("Create() returned a nil store")
			}
			if res.Type != cfg.Type {
				t.Errorf("Create() type = %s, want %s", res.Type, cfg.Type)
			}
			if err := res.Cleanup(); err != nil {
				t.Errorf("Cleanup() error = %v", err)
			}
		})
	}
}
