package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/felipe-tno/moneymate/internal/amqp"
	"github.com/felipe-tno/moneymate/internal/config"
	applog "github.com/felipe-tno/moneymate/internal/log"
	"github.com/felipe-tno/moneymate/internal/worker"
)

func main() {
	_ = godotenv.Load("credenciais.env")
	_ = godotenv.Load()

	logger := applog.New(applog.Config{}).WithComponent(applog.ComponentWorker)
	applog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", applog.FieldError, err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the alert worker")
		os.Exit(1)
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPExpenseQueue, cfg.AMQPAlertQueue)
	if err != nil {
		logger.Error("failed to initialize AMQP client", applog.FieldError, err)
		os.Exit(1)
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	alertWorker := worker.NewAlertWorker(nil)

	logger.Info("starting alert worker",
		"queue", cfg.AMQPAlertQueue,
		applog.FieldOperation, applog.OpStartup)

	err = client.ConsumeBudgetAlerts(ctx, func(msg *amqp.BudgetAlertMessage) error {
		return alertWorker.HandleAlertMessage(ctx, msg)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("alert consumption failed", applog.FieldError, err)
		os.Exit(1)
	}

	logger.Info("alert worker stopped", applog.FieldOperation, applog.OpShutdown)
}
