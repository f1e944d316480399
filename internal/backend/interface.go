// Package backend builds the configured persistence layer behind a common
// factory so the application wiring stays backend-agnostic.
package backend

import (
	"context"

	"github.com/felipe-tno/moneymate/internal/store"
)

// CleanupFunc releases resources held by a backend.
type CleanupFunc func() error

// Result contains the store instance and optional cleanup function.
type Result struct {
	Store   store.Store
	Cleanup CleanupFunc
}

// Factory creates stores based on configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}

// Config holds configuration for backend creation.
type Config struct {
	Type Type

	// Supabase specific
	SupabaseURL string
	SupabaseKey string

	// SQLite specific
	SQLiteDBPath string
}

// Type identifies a persistence backend.
type Type string

const (
	SupabaseBackend Type = "supabase"
	SQLiteBackend   Type = "sqlite"
	MemoryBackend   Type = "memory"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid.
func (t Type) IsValid() bool {
	switch t {
	case SupabaseBackend, SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// Types returns all valid backend types.
func Types() []Type {
	return []Type{SupabaseBackend, SQLiteBackend, MemoryBackend}
}
