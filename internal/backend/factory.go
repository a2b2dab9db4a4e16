package backend

import (
	"fmt"
	"log/slog"

	applog "saldo/internal/log"
	"saldo/internal/storage"
	"saldo/internal/store/memory"
)

// Factory builds stores from a backend Config.
type Factory struct {
	logger *applog.Logger
}

func NewFactory(logger *applog.Logger) *Factory {
	return &Factory{logger: logger.WithComponent(applog.ComponentBackend)}
}

func (f *Factory) Create(cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Type {
	case SQLite:
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
		}
		f.logger.Info("Initialized SQLite backend", slog.String("db_path", cfg.SQLiteDBPath))
		return &Result{Store: repo, Type: SQLite, Cleanup: repo.Close}, nil

	case Memory:
		f.logger.Warn("Initialized memory backend, data is lost on restart")
		s := memory.New()
		return &Result{Store: s, Type: Memory, Cleanup: s.Close}, nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.Type)
	}
}
