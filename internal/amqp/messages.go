package amqp

import (
	"encoding/json"
	"time"

	"spendlog/internal/core"
	"spendlog/internal/ledger"
)

// ChangeMessage is the broker payload for a confirmed ledger mutation.
// It carries enough to route and audit; consumers needing the full record
// fetch it from the API.
type ChangeMessage struct {
	Op          string    `json:"op"`
	ExpenseID   string    `json:"expense_id"`
	AmountCents int64     `json:"amount_cents"`
	Category    string    `json:"category"`
	Timestamp   time.Time `json:"timestamp"`
}

func NewChangeMessage(e ledger.Event) *ChangeMessage {
	return &ChangeMessage{
		Op:          e.Op,
		ExpenseID:   e.Expense.ID,
		AmountCents: e.Expense.Amount.Cents,
		Category:    string(e.Expense.Category),
		Timestamp:   time.Now(),
	}
}

func (m *ChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ChangeMessageFromJSON(data []byte) (*ChangeMessage, error) {
	var msg ChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Expense reconstructs the partial record a message describes.
func (m *ChangeMessage) Expense() core.Expense {
	return core.Expense{
		ID:       m.ExpenseID,
		Amount:   core.Money{Cents: m.AmountCents},
		Category: core.Category(m.Category),
	}
}
