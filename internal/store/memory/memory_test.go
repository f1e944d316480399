package memory

import (
	"context"
	"testing"
	"time"

	"github.com/felipe-tno/moneymate/internal/core"
)

func TestAppendAndListExpenses(t *testing.T) {
	s := New()
	ctx := context.Background()

	id, err := s.AppendExpense(ctx, core.Expense{
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

	if _, err := s.AppendExpense(ctx, core.Expense{
		UserID:      "user-b",
		Description: "Mercado",
		Amount:      core.Money{Cents: 12000},
		Category:    core.CategoryAlimentacao,
	}); err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := s.ListExpenses(ctx, "user-a")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].Description != "Uber" {
		t.Fatalf("unexpected list result: %+v", got)
	}
	if got[0].CreatedAt.IsZero() {
		t.Fatalf("store must assign CreatedAt")
	}
}

func TestAppendRejectsUnknownCategory(t *testing.T) {
	s := New()
	_, err := s.AppendExpense(context.Background(), core.Expense{
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
	fixed := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	s := NewWithClock(func() time.Time { return fixed })
	ctx := context.Background()

	id, err := s.InsertBudget(ctx, core.Budget{
		UserID:       "user-a",
		Category:     core.CategoryLazer,
		MonthlyLimit: core.Money{Cents: 10000},
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := s.UpdateBudgetLimit(ctx, id, core.Money{Cents: 20000}); err != nil {
		t.Fatalf("update: %v", err)
	}

	budgets, err := s.ListBudgets(ctx, "user-a", core.CategoryLazer)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(budgets) != 1 {
		t.Fatalf("expected one budget, got %d", len(budgets))
	}
	if budgets[0].MonthlyLimit.Cents != 20000 {
		t.Fatalf("limit not updated: %+v", budgets[0])
	}
	if !budgets[0].CreatedAt.Equal(fixed) {
		t.Fatalf("expected pinned clock, got %v", budgets[0].CreatedAt)
	}

	if err := s.UpdateBudgetLimit(ctx, "999", core.Money{Cents: 100}); err == nil {
		t.Fatalf("expected error for missing budget")
	}
}
