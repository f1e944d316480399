// Package store defines the outbound ports for expense and budget
// persistence. Adapters live in the supabase, sqlite and memory
// subpackages and are selected by the backend factory.
package store

import (
	"context"

	"github.com/felipe-tno/moneymate/internal/core"
)

// Ports for outbound adapters.
type (
	ExpenseWriter interface {
		// AppendExpense persists a confirmed expense and returns its row id.
		// The store assigns CreatedAt.
		AppendExpense(ctx context.Context, e core.Expense) (id string, err error)
	}

	ExpenseLister interface {
		// ListExpenses returns every expense owned by the user.
		ListExpenses(ctx context.Context, userID string) ([]core.Expense, error)
		// ListExpensesByCategory returns the user's expenses for one category,
		// all months included; callers filter by month themselves.
		ListExpensesByCategory(ctx context.Context, userID string, cat core.Category) ([]core.Expense, error)
	}

	BudgetReader interface {
		// ListBudgets returns every budget row for (user, category) in
		// creation order, oldest first.
		ListBudgets(ctx context.Context, userID string, cat core.Category) ([]core.Budget, error)
	}

	BudgetWriter interface {
		// InsertBudget persists a new budget row and returns its id.
		InsertBudget(ctx context.Context, b core.Budget) (id string, err error)
		// UpdateBudgetLimit replaces the monthly limit of an existing row.
		UpdateBudgetLimit(ctx context.Context, id string, limit core.Money) error
	}
)

// Store is the unified interface a backend must provide.
type Store interface {
	ExpenseWriter
	ExpenseLister
	BudgetReader
	BudgetWriter
}
