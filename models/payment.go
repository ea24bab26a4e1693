package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentPending  = "pending"
	PaymentReceived = "received"
	PaymentCanceled = "canceled"
)

// MaxPaymentAmount é o teto da coluna payments.amount NUMERIC(12,2)
var MaxPaymentAmount = decimal.RequireFromString("9999999999.99")

// ValidPaymentStatus indica se o status é um dos aceitos pela página de pagamentos
func ValidPaymentStatus(status string) bool {
	switch status {
	case PaymentPending, PaymentReceived, PaymentCanceled:
		return true
	}
	return false
}

type Payment struct {
	ID          string          `json:"id" db:"id"`
	Email       string          `json:"email" db:"email"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	PaymentType string          `json:"payment_type" db:"payment_type"`
	Status      string          `json:"status" db:"status"`
	Message     string          `json:"message,omitempty" db:"message"`
	Description string          `json:"description,omitempty" db:"description"`
	TxID        string          `json:"tx_id,omitempty" db:"tx_id"`
	RawData     json.RawMessage `json:"raw_data,omitempty" db:"raw_data"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// PaymentUpdate traz os campos opcionais do PUT /api/payments/{id}
type PaymentUpdate struct {
	Status  *string
	Message *string
}
