package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/felipe-tno/moneymate/internal/core"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestExpenseRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.AppendExpense(ctx, core.Expense{
		UserID:      "user-a",
		Description: "Uber",
		Amount:      core.Money{Cents: 2500},
		Category:    core.CategoryTransporte,
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if id == "" {
		t.Fatalf("expected row id")
	}

	all, err := repo.ListExpenses(ctx, "user-a")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 expense, got %d", len(all))
	}
	got := all[0]
	if got.Description != "Uber" || got.Amount.Cents != 2500 || got.Category != core.CategoryTransporte {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Fatalf("criado_em not stored")
	}

	byCat, err := repo.ListExpensesByCategory(ctx, "user-a", core.CategoryTransporte)
	if err != nil {
		t.Fatalf("list by category: %v", err)
	}
	if len(byCat) != 1 {
		t.Fatalf("expected 1 expense by category, got %d", len(byCat))
	}

	other, err := repo.ListExpensesByCategory(ctx, "user-a", core.CategoryLazer)
	if err != nil {
		t.Fatalf("list by category: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected no lazer expenses, got %d", len(other))
	}
}

func TestAppendExpenseRejectsUnknownCategory(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.AppendExpense(context.Background(), core.Expense{
		UserID:      "user-a",
		Description: "algo",
		Amount:      core.Money{Cents: 100},
		Category:    core.CategoryUnknown,
	})
	if err == nil {
		t.Fatalf("unknown category must not be persisted")
	}
}

func TestBudgetUpsertCycle(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.InsertBudget(ctx, core.Budget{
		UserID:       "user-a",
		Category:     core.CategoryLazer,
		MonthlyLimit: core.Money{Cents: 10000},
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := repo.UpdateBudgetLimit(ctx, id, core.Money{Cents: 20000}); err != nil {
		t.Fatalf("update: %v", err)
	}

	budgets, err := repo.ListBudgets(ctx, "user-a", core.CategoryLazer)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(budgets) != 1 || budgets[0].MonthlyLimit.Cents != 20000 {
		t.Fatalf("unexpected budgets: %+v", budgets)
	}

	if err := repo.UpdateBudgetLimit(ctx, "999", core.Money{Cents: 100}); err == nil {
		t.Fatalf("expected error for missing budget")
	}
}
