package amqp

import (
	"encoding/json"
	"testing"
	"time"
)

func TestBudgetAlertMessageWireFields(t *testing.T) {
	msg := &BudgetAlertMessage{
		UserID:     "123e4567-e89b-12d3-a456-426614174000",
		Category:   "lazer",
		TotalCents: 9500,
		LimitCents: 10000,
		Mensagem:   "⚠️ Atenção",
		Timestamp:  time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}

	// Field names are the contract with the alert worker.
	for _, key := range []string{"id_usuario", "categoria", "total_centavos", "limite_centavos", "mensagem", "timestamp"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("missing wire field %q", key)
		}
	}

	parsed, err := BudgetAlertMessageFromJSON(body)
	if err != nil {
		t.Fatalf("BudgetAlertMessageFromJSON() error = %v", err)
	}
	if parsed.TotalCents != msg.TotalCents || parsed.Category != msg.Category {
		t.Errorf("round trip mismatch: got %+v", parsed)
	}
}

func TestExpenseRecordedMessageFromJSONInvalid(t *testing.T) {
	if _, err := ExpenseRecordedMessageFromJSON([]byte(`{"valor_centavos": "texto"}`)); err == nil {
		t.Error("ExpenseRecordedMessageFromJSON() should fail with invalid JSON")
	}
}
