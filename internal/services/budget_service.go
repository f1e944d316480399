package services

import (
	"context"
	"fmt"
	"time"

	"github.com/felipe-tno/moneymate/internal/core"
	"github.com/felipe-tno/moneymate/internal/log"
	"github.com/felipe-tno/moneymate/internal/store"
)

// alertThresholdPercent: warn once month-to-date spend reaches 90% of the
// limit. Compared in integer cents (total*100 >= limit*90) to avoid float
// drift at the boundary.
const alertThresholdPercent = 90

// BudgetService owns monthly budget upserts and the threshold check.
type BudgetService struct {
	reader    store.BudgetReader
	writer    store.BudgetWriter
	expenses  store.ExpenseLister
	publisher EventPublisher
	logger    *log.Logger

	// now is swappable so tests can pin the month boundary.
	now func() time.Time
}

func NewBudgetService(reader store.BudgetReader, writer store.BudgetWriter, expenses store.ExpenseLister, publisher EventPublisher, logger *log.Logger) *BudgetService {
	return &BudgetService{
		reader:    reader,
		writer:    writer,
		expenses:  expenses,
		publisher: publisher,
		logger:    logger.WithComponent(log.ComponentBudget),
		now:       time.Now,
	}
}

// CheckThreshold returns "" or a warning about the user's month-to-date
// spend in the category. Every lookup failure is logged and treated as "no
// warning": a broken budget check must never block recording an expense.
func (s *BudgetService) CheckThreshold(ctx context.Context, userID string, cat core.Category) string {
	budgets, err := s.reader.ListBudgets(ctx, userID, cat)
	if err != nil {
		s.logger.Error("budget lookup failed",
			log.FieldError, err,
			log.FieldUserID, userID,
			log.FieldCategory, cat.String(),
			log.FieldOperation, log.OpCheck)
		return ""
	}
	if len(budgets) == 0 {
		return ""
	}
	// Rows come ordered by creation; the most recent limit wins.
	limit := budgets[len(budgets)-1].MonthlyLimit

	expenses, err := s.expenses.ListExpensesByCategory(ctx, userID, cat)
	if err != nil {
		s.logger.Error("expense lookup failed",
			log.FieldError, err,
			log.FieldUserID, userID,
			log.FieldCategory, cat.String(),
			log.FieldOperation, log.OpCheck)
		return ""
	}

	ref := s.now()
	var total core.Money
	for _, e := range expenses {
		if core.SameMonth(e.CreatedAt, ref) {
			total.Cents += e.Amount.Cents
		}
	}

	if total.Cents*100 < limit.Cents*int64(alertThresholdPercent) {
		return ""
	}

	message := fmt.Sprintf(msgBudgetAlert, total.Format(), limit.Format(), cat.String())

	if s.publisher != nil {
		if err := s.publisher.PublishBudgetAlert(ctx, userID, cat, total, limit, message); err != nil {
			s.logger.Error("failed to publish budget alert",
				log.FieldError, err,
				log.FieldOperation, log.OpPublish)
		}
	}

	return message
}

// SetBudget upserts the user's budget for the category in the current
// calendar month: rows created this month are updated in place, otherwise a
// new row is inserted. Returns the user-facing confirmation.
func (s *BudgetService) SetBudget(ctx context.Context, userID string, cat core.Category, limit core.Money) (string, error) {
	budgets, err := s.reader.ListBudgets(ctx, userID, cat)
	if err != nil {
		return "", fmt.Errorf("list budgets: %w", err)
	}

	ref := s.now()
	var current *core.Budget
	for i := range budgets {
		if core.SameMonth(budgets[i].CreatedAt, ref) {
			current = &budgets[i]
			break
		}
	}

	if current != nil {
		if err := s.writer.UpdateBudgetLimit(ctx, current.ID, limit); err != nil {
			return "", fmt.Errorf("update budget: %w", err)
		}
		s.logger.Info("budget updated",
			log.FieldUserID, userID,
			log.FieldCategory, cat.String(),
			log.FieldLimitCents, limit.Cents,
			log.FieldOperation, log.OpUpsert)
		return fmt.Sprintf(msgBudgetUpdated, cat.String(), limit.Format()), nil
	}

	if _, err := s.writer.InsertBudget(ctx, core.Budget{
		UserID:       userID,
		Category:     cat,
		MonthlyLimit: limit,
	}); err != nil {
		return "", fmt.Errorf("insert budget: %w", err)
	}
	s.logger.Info("budget defined",
		log.FieldUserID, userID,
		log.FieldCategory, cat.String(),
		log.FieldLimitCents, limit.Cents,
		log.FieldOperation, log.OpUpsert)
	return fmt.Sprintf(msgBudgetDefined, cat.String(), limit.Format()), nil
}
