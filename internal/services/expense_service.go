package services

import (
	"context"
	"fmt"
	"time"

	"github.com/felipe-tno/moneymate/internal/core"
	"github.com/felipe-tno/moneymate/internal/log"
	"github.com/felipe-tno/moneymate/internal/store"
)

// ExpenseService persists confirmed expenses and announces them on the
// broker when one is configured.
type ExpenseService struct {
	writer    store.ExpenseWriter
	lister    store.ExpenseLister
	publisher EventPublisher
	logger    *log.Logger
}

func NewExpenseService(writer store.ExpenseWriter, lister store.ExpenseLister, publisher EventPublisher, logger *log.Logger) *ExpenseService {
	return &ExpenseService{
		writer:    writer,
		lister:    lister,
		publisher: publisher,
		logger:    logger.WithComponent(log.ComponentStore),
	}
}

// Save validates and persists the expense, then publishes the recorded
// event. The event is best effort; the store write decides success.
func (s *ExpenseService) Save(ctx context.Context, e core.Expense) (string, error) {
	id, err := s.writer.AppendExpense(ctx, e)
	if err != nil {
		return "", fmt.Errorf("save expense: %w", err)
	}

	s.logger.Info("expense saved",
		log.FieldUserID, e.UserID,
		log.FieldCategory, e.Category.String(),
		log.FieldAmountCents, e.Amount.Cents,
		log.FieldOperation, log.OpPersist)

	if s.publisher != nil {
		e.ID = id
		if e.CreatedAt.IsZero() {
			e.CreatedAt = time.Now().UTC()
		}
		if err := s.publisher.PublishExpenseRecorded(ctx, e); err != nil {
			s.logger.Error("failed to publish expense event",
				log.FieldError, err,
				log.FieldOperation, log.OpPublish)
		}
	}

	return id, nil
}

// List returns every expense for the user.
func (s *ExpenseService) List(ctx context.Context, userID string) ([]core.Expense, error) {
	expenses, err := s.lister.ListExpenses(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}
