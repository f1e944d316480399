// Package memory provides a mutex-guarded in-memory store used by tests and
// local development without external services.
package memory

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/felipe-tno/moneymate/internal/core"
)

type Store struct {
	mu       sync.Mutex
	expenses []core.Expense
	budgets  []core.Budget
	nextID   int64

	// now is swappable so tests can pin the clock.
	now func() time.Time
}

func New() *Store {
	return &Store{now: time.Now}
}

// NewWithClock builds a store with a fixed clock for tests.
func NewWithClock(now func() time.Time) *Store {
	return &Store{now: now}
}

// AppendExpense stores the expense and returns a synthetic row id.
func (s *Store) AppendExpense(_ context.Context, e core.Expense) (string, error) {
	if err := e.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	e.ID = strconv.FormatInt(s.nextID, 10)
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now().UTC()
	}
	s.expenses = append(s.expenses, e)
	return e.ID, nil
}

func (s *Store) ListExpenses(_ context.Context, userID string) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Expense, 0)
	for _, e := range s.expenses {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Store) ListExpensesByCategory(_ context.Context, userID string, cat core.Category) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Expense, 0)
	for _, e := range s.expenses {
		if e.UserID == userID && e.Category == cat {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Store) ListBudgets(_ context.Context, userID string, cat core.Category) ([]core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Budget, 0)
	for _, b := range s.budgets {
		if b.UserID == userID && b.Category == cat {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *Store) InsertBudget(_ context.Context, b core.Budget) (string, error) {
	if err := b.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	b.ID = strconv.FormatInt(s.nextID, 10)
	if b.CreatedAt.IsZero() {
		b.CreatedAt = s.now().UTC()
	}
	s.budgets = append(s.budgets, b)
	return b.ID, nil
}

func (s *Store) UpdateBudgetLimit(_ context.Context, id string, limit core.Money) error {
	if err := limit.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.budgets {
		if s.budgets[i].ID == id {
			s.budgets[i].MonthlyLimit = limit
			return nil
		}
	}
	return fmt.Errorf("budget %s not found", id)
}
