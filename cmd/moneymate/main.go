package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/felipe-tno/moneymate/internal/amqp"
	"github.com/felipe-tno/moneymate/internal/backend"
	"github.com/felipe-tno/moneymate/internal/config"
	"github.com/felipe-tno/moneymate/internal/core"
	apphttp "github.com/felipe-tno/moneymate/internal/http"
	"github.com/felipe-tno/moneymate/internal/interpreter"
	applog "github.com/felipe-tno/moneymate/internal/log"
	"github.com/felipe-tno/moneymate/internal/services"
	"github.com/felipe-tno/moneymate/internal/session"
)

func main() {
	// Local development credentials; absent in production/docker.
	_ = godotenv.Load("credenciais.env")
	_ = godotenv.Load()

	logger := applog.New(applog.Config{})
	applog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", applog.FieldError, err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("invalid backend configuration", applog.FieldError, err)
		os.Exit(1)
	}
	result, err := backend.NewFactory(logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		logger.Error("failed to initialize backend", applog.FieldError, err)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("backend cleanup failed", applog.FieldError, err)
			}
		}()
	}

	// AMQP is optional. The service answers chats without a broker.
	var publisher services.EventPublisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPExpenseQueue, cfg.AMQPAlertQueue)
		if err != nil {
			logger.Warn("failed to initialize AMQP client, continuing without events", applog.FieldError, err)
		} else {
			defer client.Close()
			publisher = client
			logger.Info("AMQP client initialized",
				"exchange", cfg.AMQPExchange,
				"expense_queue", cfg.AMQPExpenseQueue,
				"alert_queue", cfg.AMQPAlertQueue)
		}
	}

	interp := interpreter.NewGroq(interpreter.Config{
		APIKey:  cfg.GroqAPIKey,
		BaseURL: cfg.GroqBaseURL,
		Model:   cfg.GroqModel,
	}, logger)

	expenses := services.NewExpenseService(result.Store, result.Store, publisher, logger)
	budgets := services.NewBudgetService(result.Store, result.Store, result.Store, publisher, logger)
	conversation := services.NewConversationService(interp, expenses, budgets, logger)

	sessions := session.NewStore(cfg.SessionTTL)
	defer sessions.Close()

	server := apphttp.NewServer(apphttp.Options{
		Addr:                  ":" + cfg.Port,
		ChatRequestsPerMinute: cfg.ChatRequestsPerMinute,
		ReadyCheck: func(ctx context.Context) error {
			// A cheap query proves the backend is reachable.
			_, err := result.Store.ListBudgets(ctx, "00000000-0000-0000-0000-000000000000", core.CategoryOutros)
			return err
		},
	}, conversation, sessions, logger)
	server.ReadTimeout = 15 * time.Second
	server.WriteTimeout = 30 * time.Second
	server.IdleTimeout = 60 * time.Second
	server.MaxHeaderBytes = 1 << 16

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting moneymate server",
			"port", cfg.Port,
			applog.FieldBackend, cfg.DataBackend,
			applog.FieldOperation, applog.OpStartup)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", applog.FieldOperation, applog.OpShutdown)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server error", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("server stopped gracefully")
}
