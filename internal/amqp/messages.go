package amqp

import (
	"encoding/json"
	"time"

	"frota/internal/core"
)

// ExpenseRecordedMessage carries the full expense payload. The archive
// worker has no access to the server's in-memory store, so the event must be
// self-contained.
type ExpenseRecordedMessage struct {
	ExpenseID   string    `json:"expense_id"`
	VehicleID   string    `json:"vehicle_id"`
	Category    string    `json:"category"`
	Date        string    `json:"date"` // YYYY-MM-DD
	AmountCents int64     `json:"amount_cents"`
	Description string    `json:"description"`
	KmAtTime    int64     `json:"km_at_time,omitempty"`
	Liters      float64   `json:"liters,omitempty"`
	FuelType    string    `json:"fuel_type,omitempty"`
	Provider    string    `json:"provider,omitempty"`
	Paid        bool      `json:"paid"`
	RecordedAt  time.Time `json:"recorded_at"`
}

// NewExpenseRecordedMessage builds the event for a freshly recorded expense.
func NewExpenseRecordedMessage(e core.Expense) *ExpenseRecordedMessage {
	return &ExpenseRecordedMessage{
		ExpenseID:   e.ID,
		VehicleID:   e.VehicleID,
		Category:    string(e.Category),
		Date:        e.Date.Format("2006-01-02"),
		AmountCents: e.Amount.Cents,
		Description: e.Description,
		KmAtTime:    e.KmAtTime,
		Liters:      e.Liters,
		FuelType:    string(e.Fuel),
		Provider:    e.Provider,
		Paid:        e.Paid,
		RecordedAt:  time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ExpenseRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExpenseRecordedMessageFromJSON creates a message from JSON bytes
func ExpenseRecordedMessageFromJSON(data []byte) (*ExpenseRecordedMessage, error) {
	var msg ExpenseRecordedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
