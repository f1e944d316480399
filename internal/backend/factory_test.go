package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/felipe-tno/moneymate/internal/config"
	"github.com/felipe-tno/moneymate/internal/log"
)

func testLogger() *log.Logger {
	return log.New(log.Config{})
}

func TestFromAppConfig(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		if _, err := FromAppConfig(nil); err == nil {
			t.Error("FromAppConfig(nil) should fail")
		}
	})

	t.Run("invalid backend type", func(t *testing.T) {
		if _, err := FromAppConfig(&config.Config{DataBackend: "postgres"}); err == nil {
			t.Error("FromAppConfig() should reject unknown backend type")
		}
	})

	t.Run("carries supabase settings", func(t *testing.T) {
		got, err := FromAppConfig(&config.Config{
			DataBackend: "supabase",
			SupabaseURL: "https://example.supabase.co",
			SupabaseKey: "key",
		})
		if err != nil {
			t.Fatalf("FromAppConfig() error = %v", err)
		}
		if got.Type != SupabaseBackend || got.SupabaseURL != "https://example.supabase.co" {
			t.Errorf("unexpected config: %+v", got)
		}
	})
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"memory needs nothing", Config{Type: MemoryBackend}, false},
		{"supabase ok", Config{Type: SupabaseBackend, SupabaseURL: "https://x.supabase.co", SupabaseKey: "k"}, false},
		{"supabase missing url", Config{Type: SupabaseBackend, SupabaseKey: "k"}, true},
		{"supabase missing key", Config{Type: SupabaseBackend, SupabaseURL: "https://x.supabase.co"}, true},
		{"sqlite ok", Config{Type: SQLiteBackend, SQLiteDBPath: "x.db"}, false},
		{"sqlite missing path", Config{Type: SQLiteBackend}, true},
		{"unknown type", Config{Type: "sheets"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateBackend(t *testing.T) {
	factory := NewFactory(testLogger())
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		result, err := factory.CreateBackend(ctx, Config{Type: MemoryBackend})
		if err != nil {
			t.Fatalf("CreateBackend() error = %v", err)
		}
		if result.Store == nil {
			t.Fatal("memory backend returned nil store")
		}
		if result.Cleanup != nil {
			t.Error("memory backend should not need cleanup")
		}
	})

	t.Run("sqlite", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "gastos.db")
		result, err := factory.CreateBackend(ctx, Config{Type: SQLiteBackend, SQLiteDBPath: dbPath})
		if err != nil {
			t.Fatalf("CreateBackend() error = %v", err)
		}
		if result.Cleanup == nil {
			t.Fatal("sqlite backend must provide cleanup")
		}
		if err := result.Cleanup(); err != nil {
			t.Errorf("Cleanup() error = %v", err)
		}
	})

	t.Run("invalid type", func(t *testing.T) {
		if _, err := factory.CreateBackend(ctx, Config{Type: "sheets"}); err == nil {
			t.Error("CreateBackend() should reject unknown backend type")
		}
	})
}
