package amqp

import (
	"encoding/json"
	"time"
)

// ExpenseRecordedMessage announces a persisted expense. Amounts travel in
// centavos; consumers format for display themselves.
type ExpenseRecordedMessage struct {
	ExpenseID   string    `json:"id_gasto"`
	UserID      string    `json:"id_usuario"`
	Description string    `json:"descricao"`
	AmountCents int64     `json:"valor_centavos"`
	Category    string    `json:"categoria"`
	Timestamp   time.Time `json:"timestamp"`
}

// BudgetAlertMessage announces that a user crossed the budget threshold for
// a category. Mensagem carries the already-formatted warning shown in chat.
type BudgetAlertMessage struct {
	UserID     string    `json:"id_usuario"`
	Category   string    `json:"categoria"`
	TotalCents int64     `json:"total_centavos"`
	LimitCents int64     `json:"limite_centavos"`
	Mensagem   string    `json:"mensagem"`
	Timestamp  time.Time `json:"timestamp"`
}

func (m *ExpenseRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ExpenseRecordedMessageFromJSON(data []byte) (*ExpenseRecordedMessage, error) {
	var msg ExpenseRecordedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (m *BudgetAlertMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func BudgetAlertMessageFromJSON(data []byte) (*BudgetAlertMessage, error) {
	var msg BudgetAlertMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
