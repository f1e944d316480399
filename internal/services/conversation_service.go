package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/felipe-tno/moneymate/internal/core"
	"github.com/felipe-tno/moneymate/internal/interpreter"
	"github.com/felipe-tno/moneymate/internal/log"
	"github.com/felipe-tno/moneymate/internal/session"
)

// ConversationService is the single entry point for chat messages. Each
// message is routed, in order of precedence, to: empty-input handling, user
// id registration, pending-category confirmation, or interpretation of a new
// expense. The session lock is held for the whole exchange so one
// conversation processes messages strictly in order.
type ConversationService struct {
	interp   interpreter.Interpreter
	expenses *ExpenseService
	budgets  *BudgetService
	logger   *log.Logger
}

func NewConversationService(interp interpreter.Interpreter, expenses *ExpenseService, budgets *BudgetService, logger *log.Logger) *ConversationService {
	return &ConversationService{
		interp:   interp,
		expenses: expenses,
		budgets:  budgets,
		logger:   logger.WithComponent(log.ComponentConversation),
	}
}

// Handle processes one inbound message and returns the reply. Store
// failures surface as conversational error replies, never as errors to the
// transport layer.
func (s *ConversationService) Handle(ctx context.Context, sess *session.Session, texto string) string {
	texto = strings.TrimSpace(texto)

	sess.Lock()
	defer sess.Unlock()

	if texto == "" {
		return msgEmptyMessage
	}

	if sess.UserID == "" {
		if core.LooksLikeUserID(texto) {
			sess.UserID = texto
			s.logger.Info("user registered",
				log.FieldSessionID, sess.ID,
				log.FieldUserID, sess.UserID)
			return msgIDRegistered
		}
		return msgAskForID
	}

	if sess.Pending != nil {
		return s.confirmPending(ctx, sess, texto)
	}

	return s.interpretNew(ctx, sess, texto)
}

// confirmPending treats the message as a category choice for the held
// draft. An invalid choice keeps the draft so the user can retry.
func (s *ConversationService) confirmPending(ctx context.Context, sess *session.Session, texto string) string {
	cat, ok := core.ParseCategory(texto)
	if !ok {
		return msgInvalidCategory
	}

	draft := *sess.Pending
	expense := core.Expense{
		UserID:      sess.UserID,
		Description: draft.Description,
		Amount:      draft.Amount,
		Category:    cat,
	}

	if _, err := s.expenses.Save(ctx, expense); err != nil {
		s.logger.Error("failed to save confirmed expense",
			log.FieldError, err,
			log.FieldSessionID, sess.ID,
			log.FieldCategory, cat.String())
		return msgSaveExpenseError
	}

	sess.Pending = nil
	alert := s.budgets.CheckThreshold(ctx, sess.UserID, cat)
	return fmt.Sprintf(msgCategoryConfirmed, cat.String(), alert)
}

// DefineBudget sets the monthly limit for a category on behalf of the
// session's registered user. The reply is always conversational; the caller
// decides nothing from it.
func (s *ConversationService) DefineBudget(ctx context.Context, sess *session.Session, categoria string, valor float64) string {
	sess.Lock()
	defer sess.Unlock()

	if sess.UserID == "" {
		return msgAskForID
	}

	cat, ok := core.ParseCategory(categoria)
	if !ok {
		return msgInvalidCategory
	}

	limit := core.MoneyFromFloat(valor)
	if err := limit.Validate(); err != nil {
		return msgInvalidBudgetValue
	}

	message, err := s.budgets.SetBudget(ctx, sess.UserID, cat, limit)
	if err != nil {
		s.logger.Error("failed to set budget",
			log.FieldError, err,
			log.FieldSessionID, sess.ID,
			log.FieldCategory, cat.String())
		return msgSaveBudgetError
	}
	return message
}

// ListExpenses returns the registered user's expenses. A session without a
// registered user gets an empty list.
func (s *ConversationService) ListExpenses(ctx context.Context, sess *session.Session) ([]core.Expense, error) {
	sess.Lock()
	userID := sess.UserID
	sess.Unlock()

	if userID == "" {
		return nil, nil
	}
	return s.expenses.List(ctx, userID)
}

// interpretNew runs the interpreter and either persists immediately or
// parks the draft for confirmation.
func (s *ConversationService) interpretNew(ctx context.Context, sess *session.Session, texto string) string {
	it := s.interp.Interpret(ctx, texto)

	if it.NeedsConfirmation() {
		sess.Pending = &it
		s.logger.Info("expense held for confirmation",
			log.FieldSessionID, sess.ID,
			log.FieldCategory, it.Category.String())
		return it.Reply
	}

	expense := core.Expense{
		UserID:      sess.UserID,
		Description: it.Description,
		Amount:      it.Amount,
		Category:    it.Category,
	}
	if _, err := s.expenses.Save(ctx, expense); err != nil {
		s.logger.Error("failed to save expense",
			log.FieldError, err,
			log.FieldSessionID, sess.ID,
			log.FieldCategory, it.Category.String())
		return msgSaveExpenseError
	}

	alert := s.budgets.CheckThreshold(ctx, sess.UserID, it.Category)
	return it.Reply + alert
}
