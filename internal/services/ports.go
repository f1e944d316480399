package services

import (
	"context"

	"github.com/felipe-tno/moneymate/internal/core"
)

// EventPublisher forwards domain events to the message broker. Publishing is
// best effort everywhere: a broker outage must never block a save or a
// reply. *amqp.Client implements it; a nil publisher disables events.
type EventPublisher interface {
	PublishExpenseRecorded(ctx context.Context, e core.Expense) error
	PublishBudgetAlert(ctx context.Context, userID string, cat core.Category, total, limit core.Money, message string) error
}
