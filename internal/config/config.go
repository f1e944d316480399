package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

// Config aggregates every runtime setting. Values come from the environment;
// credentials are usually provided through credenciais.env loaded by main.
type Config struct {
	// HTTP server
	Port string `env:"PORT" envDefault:"8080"`

	// Data backend: supabase (hosted store), sqlite (self-hosted) or memory.
	DataBackend string `env:"DATA_BACKEND" envDefault:"supabase"`

	// Supabase (PostgREST) store
	SupabaseURL string `env:"SUPABASE_URL"`
	SupabaseKey string `env:"SUPABASE_KEY"`

	// SQLite store
	SQLiteDBPath string `env:"SQLITE_DB_PATH" envDefault:"./data/moneymate.db"`

	// Groq language model (OpenAI-compatible endpoint)
	GroqAPIKey  string `env:"GROQ_API_KEY"`
	GroqBaseURL string `env:"GROQ_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	GroqModel   string `env:"GROQ_MODEL" envDefault:"llama-3.3-70b-versatile"`

	// AMQP event publishing (optional; empty URL disables it)
	AMQPURL          string `env:"AMQP_URL"`
	AMQPExchange     string `env:"AMQP_EXCHANGE" envDefault:"moneymate"`
	AMQPExpenseQueue string `env:"AMQP_EXPENSE_QUEUE" envDefault:"gastos_registrados"`
	AMQPAlertQueue   string `env:"AMQP_ALERT_QUEUE" envDefault:"alertas_orcamento"`

	// Conversation sessions
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"12h"`

	// Rate limit for the chat endpoint (LLM calls are metered upstream)
	ChatRequestsPerMinute int `env:"CHAT_REQUESTS_PER_MINUTE" envDefault:"30"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration and returns every problem at once.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case "supabase":
		if c.SupabaseURL == "" {
			errs = append(errs, "SUPABASE_URL is required when using the supabase backend")
		} else if u, err := url.Parse(c.SupabaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			errs = append(errs, fmt.Sprintf("invalid SUPABASE_URL '%s': must be an http(s) URL", c.SupabaseURL))
		}
		if c.SupabaseKey == "" {
			errs = append(errs, "SUPABASE_KEY is required when using the supabase backend")
		}
	case "sqlite":
		if c.SQLiteDBPath == "" {
			errs = append(errs, "SQLITE_DB_PATH cannot be empty when using the sqlite backend")
		}
	case "memory":
	default:
		errs = append(errs, fmt.Sprintf("invalid data backend '%s': must be one of [supabase sqlite memory]", c.DataBackend))
	}

	if c.GroqAPIKey == "" {
		errs = append(errs, "GROQ_API_KEY is required")
	}

	if c.AMQPURL != "" {
		if parsed, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsed.Scheme))
		}
		if c.AMQPExchange == "" {
			errs = append(errs, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPExpenseQueue == "" {
			errs = append(errs, "AMQP expense queue name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPAlertQueue == "" {
			errs = append(errs, "AMQP alert queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.SessionTTL < time.Minute {
		errs = append(errs, fmt.Sprintf("invalid session TTL %v: must be at least 1 minute", c.SessionTTL))
	}

	if c.ChatRequestsPerMinute < 1 {
		errs = append(errs, fmt.Sprintf("invalid chat rate limit %d: must be at least 1", c.ChatRequestsPerMinute))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
