package core

import (
	"testing"
	"time"
)

func TestParseCategory(t *testing.T) {
	cases := []struct {
		in   string
		want Category
		ok   bool
	}{
		{"alimentacao", CategoryAlimentacao, true},
		{"Alimentação", CategoryAlimentacao, true},
		{"  LAZER  ", CategoryLazer, true},
		{"saúde", CategorySaude, true},
		{"transporte", CategoryTransporte, true},
		{"moradia", CategoryMoradia, true},
		{"entretenimento", CategoryEntretenimento, true},
		{"outros", CategoryOutros, true},
		{"desconhecido", "", false}, // sentinel is not confirmable
		{"invalidword", "", false},
		{"", "", false},
	}
	for i, tc := range cases {
		got, ok := ParseCategory(tc.in)
		if ok != tc.ok {
			t.Fatalf("case %d (%q): ok=%v, want %v", i, tc.in, ok, tc.ok)
		}
		if ok && got != tc.want {
			t.Fatalf("case %d (%q): got %q, want %q", i, tc.in, got, tc.want)
		}
	}
}

func TestMoneyFormat(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{9000, "90.00"},
		{10000, "100.00"},
		{2550, "25.50"},
		{5, "0.05"},
		{-1234, "-12.34"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).Format(); got != tc.want {
			t.Fatalf("Format(%d) = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestMoneyFromFloat(t *testing.T) {
	if got := MoneyFromFloat(25.5).Cents; got != 2550 {
		t.Fatalf("expected 2550, got %d", got)
	}
	if got := MoneyFromFloat(0.105).Cents; got != 11 {
		t.Fatalf("expected half-up rounding to 11, got %d", got)
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{
		UserID:      "u-1",
		Description: "Uber",
		Amount:      Money{Cents: 2500},
		Category:    CategoryTransporte,
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	// Confirmed drafts without an inferred value carry amount zero.
	zeroAmount := good
	zeroAmount.Amount = Money{}
	if err := zeroAmount.Validate(); err != nil {
		t.Fatalf("zero amount must be persistable, got %v", err)
	}

	bads := []Expense{
		{UserID: "", Description: "a", Amount: Money{Cents: 1}, Category: CategoryOutros},
		{UserID: "u", Description: "", Amount: Money{Cents: 1}, Category: CategoryOutros},
		{UserID: "u", Description: "a", Amount: Money{Cents: -1}, Category: CategoryOutros},
		{UserID: "u", Description: "a", Amount: Money{Cents: 1}, Category: CategoryUnknown},
		{UserID: "u", Description: "a", Amount: Money{Cents: 1}, Category: "viagem"},
	}
	for i, e := range bads {
		if err := e.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestNeedsConfirmation(t *testing.T) {
	sure := Interpretation{Category: CategoryAlimentacao, Reply: "Gasto computado ✅"}
	if sure.NeedsConfirmation() {
		t.Fatalf("confident interpretation should not need confirmation")
	}
	unknown := Interpretation{Category: CategoryUnknown, Reply: "Não consegui identificar a categoria"}
	if !unknown.NeedsConfirmation() {
		t.Fatalf("unknown category must need confirmation")
	}
	asking := Interpretation{Category: CategoryAlimentacao, Reply: "Esse gasto se encaixa melhor em alimentação ou lazer?"}
	if !asking.NeedsConfirmation() {
		t.Fatalf("question reply must need confirmation")
	}
}

func TestSameMonth(t *testing.T) {
	ref := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	if !SameMonth(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), ref) {
		t.Fatalf("same month expected")
	}
	if SameMonth(time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), ref) {
		t.Fatalf("different month")
	}
	if SameMonth(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), ref) {
		t.Fatalf("same month, different year")
	}
}

func TestLooksLikeUserID(t *testing.T) {
	if !LooksLikeUserID("123e4567-e89b-12d3-a456-426614174000") {
		t.Fatalf("valid UUID shape rejected")
	}
	if LooksLikeUserID("abc") {
		t.Fatalf("short string accepted")
	}
	if LooksLikeUserID("123456789012345678901234567890123456") {
		t.Fatalf("36 chars without hyphen accepted")
	}
}
