package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/felipe-tno/moneymate/internal/core"
	"github.com/felipe-tno/moneymate/internal/session"
	"github.com/felipe-tno/moneymate/internal/store/memory"
)

// scriptedInterpreter returns canned interpretations in order.
type scriptedInterpreter struct {
	results []core.Interpretation
	calls   int
}

func (s *scriptedInterpreter) Interpret(_ context.Context, texto string) core.Interpretation {
	if s.calls >= len(s.results) {
		return core.Interpretation{Description: texto, Category: core.CategoryUnknown, Reply: "?"}
	}
	r := s.results[s.calls]
	s.calls++
	return r
}

type convFixture struct {
	conv  *ConversationService
	mem   *memory.Store
	store *session.Store
	sess  *session.Session
}

func newConvFixture(t *testing.T, interp *scriptedInterpreter) *convFixture {
	t.Helper()
	mem := memory.NewWithClock(fixedClock())
	expenses := NewExpenseService(mem, mem, nil, testLogger())
	budgets := NewBudgetService(mem, mem, mem, nil, testLogger())
	budgets.now = fixedClock()
	conv := NewConversationService(interp, expenses, budgets, testLogger())

	store := session.NewStore(time.Hour)
	t.Cleanup(store.Close)
	sess, _ := store.GetOrCreate("")
	return &convFixture{conv: conv, mem: mem, store: store, sess: sess}
}

func registered(t *testing.T, f *convFixture) {
	t.Helper()
	reply := f.conv.Handle(context.Background(), f.sess, testUser)
	if !strings.Contains(reply, "ID registrado") {
		t.Fatalf("registration failed: %q", reply)
	}
}

func TestEmptyMessage(t *testing.T) {
	f := newConvFixture(t, &scriptedInterpreter{})
	if reply := f.conv.Handle(context.Background(), f.sess, "   "); reply != msgEmptyMessage {
		t.Fatalf("reply = %q", reply)
	}
	if f.sess.UserID != "" || f.sess.Pending != nil {
		t.Fatalf("empty message must not change state")
	}
}

func TestRegistrationFlow(t *testing.T) {
	interp := &scriptedInterpreter{}
	f := newConvFixture(t, interp)
	ctx := context.Background()

	// Not UUID-shaped: prompt for an id, state unchanged.
	if reply := f.conv.Handle(ctx, f.sess, "oi tudo bem"); reply != msgAskForID {
		t.Fatalf("reply = %q", reply)
	}
	if f.sess.UserID != "" {
		t.Fatalf("state must be unchanged")
	}
	if interp.calls != 0 {
		t.Fatalf("interpreter must not run before registration")
	}

	// UUID-shaped: registered exactly once.
	if reply := f.conv.Handle(ctx, f.sess, testUser); !strings.Contains(reply, "ID registrado") {
		t.Fatalf("reply = %q", reply)
	}
	if f.sess.UserID != testUser {
		t.Fatalf("user id not set")
	}
}

func TestSecondUUIDShapedMessageIsAnExpense(t *testing.T) {
	other := "00000000-0000-0000-0000-000000000001"
	interp := &scriptedInterpreter{results: []core.Interpretation{
		{Description: other, Category: core.CategoryUnknown, Reply: "Não consegui identificar a categoria, você poderia informar?"},
	}}
	f := newConvFixture(t, interp)
	registered(t, f)

	f.conv.Handle(context.Background(), f.sess, other)
	if interp.calls != 1 {
		t.Fatalf("UUID-shaped message after registration must reach the interpreter")
	}
	if f.sess.UserID != testUser {
		t.Fatalf("re-registration must not happen")
	}
}

func TestConfidentExpensePersistsImmediately(t *testing.T) {
	interp := &scriptedInterpreter{results: []core.Interpretation{
		{Description: "Uber", Amount: core.Money{Cents: 2500}, Category: core.CategoryTransporte, Reply: "Gasto computado ✅"},
	}}
	f := newConvFixture(t, interp)
	registered(t, f)

	reply := f.conv.Handle(context.Background(), f.sess, "Uber 25 reais")
	if !strings.Contains(reply, "Gasto computado") {
		t.Fatalf("reply = %q", reply)
	}
	if f.sess.Pending != nil {
		t.Fatalf("confident expense must not be held")
	}

	saved, _ := f.mem.ListExpenses(context.Background(), testUser)
	if len(saved) != 1 || saved[0].Category != core.CategoryTransporte {
		t.Fatalf("expense not persisted: %+v", saved)
	}
}

func TestUncertainExpenseHeldThenConfirmed(t *testing.T) {
	interp := &scriptedInterpreter{results: []core.Interpretation{
		{Description: "jantar com amigos", Amount: core.Money{Cents: 8000}, Category: core.CategoryAlimentacao,
			Reply: "Esse gasto se encaixa melhor em alimentação ou lazer?"},
	}}
	f := newConvFixture(t, interp)
	registered(t, f)
	ctx := context.Background()

	reply := f.conv.Handle(ctx, f.sess, "jantar com amigos 80")
	if !strings.Contains(reply, "?") {
		t.Fatalf("expected disambiguation question, got %q", reply)
	}
	if f.sess.Pending == nil {
		t.Fatalf("draft must be held")
	}
	if saved, _ := f.mem.ListExpenses(ctx, testUser); len(saved) != 0 {
		t.Fatalf("nothing may be persisted before confirmation")
	}

	// Invalid category keeps the draft.
	reply = f.conv.Handle(ctx, f.sess, "invalidword")
	if reply != msgInvalidCategory {
		t.Fatalf("reply = %q", reply)
	}
	if f.sess.Pending == nil {
		t.Fatalf("invalid choice must keep the draft")
	}

	// Valid category persists and clears.
	reply = f.conv.Handle(ctx, f.sess, "alimentacao")
	if !strings.Contains(reply, "Categoria confirmada: alimentacao") {
		t.Fatalf("reply = %q", reply)
	}
	if f.sess.Pending != nil {
		t.Fatalf("draft must be cleared after confirmation")
	}
	saved, _ := f.mem.ListExpenses(ctx, testUser)
	if len(saved) != 1 || saved[0].Amount.Cents != 8000 {
		t.Fatalf("confirmed expense not persisted: %+v", saved)
	}
}

func TestConfirmationAcceptsAccentedCategory(t *testing.T) {
	interp := &scriptedInterpreter{results: []core.Interpretation{
		{Description: "remédio", Amount: core.Money{Cents: 3000}, Category: core.CategoryUnknown,
			Reply: "Não consegui identificar a categoria, você poderia informar?"},
	}}
	f := newConvFixture(t, interp)
	registered(t, f)
	ctx := context.Background()

	f.conv.Handle(ctx, f.sess, "remédio 30")
	reply := f.conv.Handle(ctx, f.sess, "Saúde")
	if !strings.Contains(reply, "Categoria confirmada: saude") {
		t.Fatalf("accented confirmation failed: %q", reply)
	}
}

func TestInterpreterFallbackIsHeld(t *testing.T) {
	// The interpreter fallback carries amount 0 and unknown category; the
	// draft parks until the user clarifies.
	interp := &scriptedInterpreter{results: []core.Interpretation{
		{Description: "gastei 50", Amount: core.Money{}, Category: core.CategoryUnknown, Reply: "Erro ao processar gasto."},
	}}
	f := newConvFixture(t, interp)
	registered(t, f)

	f.conv.Handle(context.Background(), f.sess, "gastei 50")
	if f.sess.Pending == nil {
		t.Fatalf("fallback result must be held, never persisted")
	}

	// Confirming a category must persist the draft even with amount zero.
	reply := f.conv.Handle(context.Background(), f.sess, "alimentacao")
	if !strings.Contains(reply, "Categoria confirmada: alimentacao") {
		t.Fatalf("reply = %q", reply)
	}
	if f.sess.Pending != nil {
		t.Fatalf("draft must be cleared after confirmation")
	}
	saved, err := f.mem.ListExpenses(context.Background(), testUser)
	if err != nil {
		t.Fatalf("ListExpenses: %v", err)
	}
	if len(saved) != 1 {
		t.Fatalf("saved = %d, want 1", len(saved))
	}
	if saved[0].Amount.Cents != 0 || saved[0].Category != core.CategoryAlimentacao {
		t.Fatalf("saved expense = %+v", saved[0])
	}
}

func TestSaveFailureKeepsDraftAndReportsError(t *testing.T) {
	interp := &scriptedInterpreter{results: []core.Interpretation{
		{Description: "mercado", Amount: core.Money{Cents: 5000}, Category: core.CategoryUnknown,
			Reply: "Não consegui identificar a categoria, você poderia informar?"},
	}}
	mem := memory.NewWithClock(fixedClock())
	expenses := NewExpenseService(failingStore{}, failingStore{}, nil, testLogger())
	budgets := NewBudgetService(mem, mem, mem, nil, testLogger())
	budgets.now = fixedClock()
	conv := NewConversationService(interp, expenses, budgets, testLogger())

	store := session.NewStore(time.Hour)
	defer store.Close()
	sess, _ := store.GetOrCreate("")
	ctx := context.Background()

	conv.Handle(ctx, sess, testUser)
	conv.Handle(ctx, sess, "mercado 50")

	reply := conv.Handle(ctx, sess, "alimentacao")
	if reply != msgSaveExpenseError {
		t.Fatalf("reply = %q", reply)
	}
	if sess.Pending == nil {
		t.Fatalf("draft must survive a failed save so the user can retry")
	}
}

func TestPersistAppendsBudgetAlert(t *testing.T) {
	interp := &scriptedInterpreter{results: []core.Interpretation{
		{Description: "cinema", Amount: core.Money{Cents: 9000}, Category: core.CategoryLazer, Reply: "Gasto computado ✅"},
	}}
	f := newConvFixture(t, interp)
	registered(t, f)
	ctx := context.Background()

	budgets := NewBudgetService(f.mem, f.mem, f.mem, nil, testLogger())
	budgets.now = fixedClock()
	if _, err := budgets.SetBudget(ctx, testUser, core.CategoryLazer, core.Money{Cents: 10000}); err != nil {
		t.Fatalf("set budget: %v", err)
	}

	reply := f.conv.Handle(ctx, f.sess, "cinema 90")
	if !strings.Contains(reply, "Atenção") || !strings.Contains(reply, "90.00") {
		t.Fatalf("expected budget alert appended, got %q", reply)
	}
}

func TestDefineBudget(t *testing.T) {
	ctx := context.Background()

	t.Run("requires registration", func(t *testing.T) {
		f := newConvFixture(t, &scriptedInterpreter{})
		if reply := f.conv.DefineBudget(ctx, f.sess, "lazer", 100); reply != msgAskForID {
			t.Fatalf("reply = %q", reply)
		}
	})

	t.Run("rejects invalid category", func(t *testing.T) {
		f := newConvFixture(t, &scriptedInterpreter{})
		registered(t, f)
		if reply := f.conv.DefineBudget(ctx, f.sess, "viagens", 100); reply != msgInvalidCategory {
			t.Fatalf("reply = %q", reply)
		}
	})

	t.Run("rejects non-positive value", func(t *testing.T) {
		f := newConvFixture(t, &scriptedInterpreter{})
		registered(t, f)
		if reply := f.conv.DefineBudget(ctx, f.sess, "lazer", 0); reply != msgInvalidBudgetValue {
			t.Fatalf("reply = %q", reply)
		}
	})

	t.Run("defines and updates", func(t *testing.T) {
		f := newConvFixture(t, &scriptedInterpreter{})
		registered(t, f)

		reply := f.conv.DefineBudget(ctx, f.sess, "Saúde", 300)
		if !strings.Contains(reply, "Orçamento definido") || !strings.Contains(reply, "300.00") {
			t.Fatalf("reply = %q", reply)
		}

		reply = f.conv.DefineBudget(ctx, f.sess, "saude", 450.50)
		if !strings.Contains(reply, "Orçamento atualizado") || !strings.Contains(reply, "450.50") {
			t.Fatalf("reply = %q", reply)
		}
	})
}

func TestListExpensesFacade(t *testing.T) {
	ctx := context.Background()

	t.Run("unregistered session lists nothing", func(t *testing.T) {
		f := newConvFixture(t, &scriptedInterpreter{})
		got, err := f.conv.ListExpenses(ctx, f.sess)
		if err != nil {
			t.Fatalf("ListExpenses() error = %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("len = %d, want 0", len(got))
		}
	})

	t.Run("lists persisted expenses", func(t *testing.T) {
		interp := &scriptedInterpreter{results: []core.Interpretation{{
			Description: "mercado",
			Amount:      core.Money{Cents: 8000},
			Category:    core.CategoryAlimentacao,
			Reply:       "Gasto computado ✅",
		}}}
		f := newConvFixture(t, interp)
		registered(t, f)
		f.conv.Handle(ctx, f.sess, "mercado 80 reais")

		got, err := f.conv.ListExpenses(ctx, f.sess)
		if err != nil {
			t.Fatalf("ListExpenses() error = %v", err)
		}
		if len(got) != 1 || got[0].Description != "mercado" {
			t.Fatalf("got %+v", got)
		}
	})
}
