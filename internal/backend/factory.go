package backend

import (
	"context"
	"fmt"

	"github.com/felipe-tno/moneymate/internal/log"
	"github.com/felipe-tno/moneymate/internal/store/memory"
	"github.com/felipe-tno/moneymate/internal/store/sqlite"
	"github.com/felipe-tno/moneymate/internal/store/supabase"
)

// DefaultFactory implements the Factory interface.
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new backend factory.
func NewFactory(logger *log.Logger) Factory {
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentStore),
	}
}

// CreateBackend implements Factory.CreateBackend.
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*Result, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}

	switch config.Type {
	case SupabaseBackend:
		return f.createSupabaseBackend(config)
	case SQLiteBackend:
		return f.createSQLiteBackend(config)
	case MemoryBackend:
		return f.createMemoryBackend()
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSupabaseBackend(config Config) (*Result, error) {
	client := supabase.New(config.SupabaseURL, config.SupabaseKey)

	f.logger.Info("initialized supabase backend", log.FieldBackend, SupabaseBackend.String())

	return &Result{
		Store:   client,
		Cleanup: nil,
	}, nil
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*Result, error) {
	repo, err := sqlite.NewRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("initialize sqlite repository: %w", err)
	}

	f.logger.Info("initialized sqlite backend",
		log.FieldBackend, SQLiteBackend.String(),
		"db_path", config.SQLiteDBPath)

	return &Result{
		Store:   repo,
		Cleanup: repo.Close,
	}, nil
}

func (f *DefaultFactory) createMemoryBackend() (*Result, error) {
	f.logger.Info("initialized memory backend", log.FieldBackend, MemoryBackend.String())

	return &Result{
		Store:   memory.New(),
		Cleanup: nil,
	}, nil
}
