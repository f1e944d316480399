// Package worker processes budget alert events consumed from RabbitMQ.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/felipe-tno/moneymate/internal/amqp"
)

// Notifier delivers a budget alert to its final destination. The default
// implementation only logs; a push channel (e-mail, chat webhook) plugs in
// here without touching the consume loop.
type Notifier interface {
	Notify(ctx context.Context, msg *amqp.BudgetAlertMessage) error
}

// LogNotifier writes alerts to the structured log.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, msg *amqp.BudgetAlertMessage) error {
	slog.InfoContext(ctx, "budget alert",
		"user_id", msg.UserID,
		"category", msg.Category,
		"total_cents", msg.TotalCents,
		"limit_cents", msg.LimitCents,
		"message", msg.Mensagem)
	return nil
}

// AlertWorker handles budget alert messages delivered by the AMQP consumer.
type AlertWorker struct {
	notifier Notifier
}

func NewAlertWorker(notifier Notifier) *AlertWorker {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &AlertWorker{notifier: notifier}
}

// HandleAlertMessage processes a single budget alert from AMQP.
func (w *AlertWorker) HandleAlertMessage(ctx context.Context, msg *amqp.BudgetAlertMessage) error {
	if msg.UserID == "" {
		return fmt.Errorf("alert without user id")
	}

	slog.InfoContext(ctx, "processing budget alert",
		"user_id", msg.UserID,
		"category", msg.Category)

	if err := w.notifier.Notify(ctx, msg); err != nil {
		return fmt.Errorf("notify alert: %w", err)
	}

	return nil
}
