// Package mbway monta o texto do QR code de pagamento MB WAY usado pelos
// convidados de Portugal.
package mbway

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount = errors.New("valor inválido")
	ErrInvalidPhone  = errors.New("telefone inválido")
)

const (
	maxPhoneDigits   = 15
	minPhoneDigits   = 9
	maxTransactionID = 25
	maxDescription   = 80
)

type Payment struct {
	Payload       string  `json:"payload"`
	Phone         string  `json:"phone"`
	Amount        float64 `json:"amount"`
	TransactionID string  `json:"txId"`
	Description   string  `json:"description,omitempty"`
}

// SanitizePhone mantém só os dígitos e fica com os últimos 15.
func SanitizePhone(phone string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	if len(digits) > maxPhoneDigits {
		digits = digits[len(digits)-maxPhoneDigits:]
	}
	return digits
}

// Generate valida os dados e monta o payload "MBWAY|phone:..|amount:..|txid:..".
func Generate(amount float64, phone, description, transactionID string) (Payment, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return Payment{}, fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}

	p := SanitizePhone(phone)
	if len(p) < minPhoneDigits {
		return Payment{}, fmt.Errorf("%w: %q", ErrInvalidPhone, phone)
	}

	fixed := decimal.NewFromFloat(amount).Round(2)
	txid := truncate(transactionID, maxTransactionID)
	if txid == "" {
		txid = "MBWAY-" + uuid.NewString()[:8]
	}
	desc := truncate(strings.TrimFunc(description, unicode.IsSpace), maxDescription)

	payload := fmt.Sprintf("MBWAY|phone:%s|amount:%s|txid:%s", p, fixed.StringFixed(2), txid)
	if desc != "" {
		payload += "|desc:" + desc
	}

	return Payment{
		Payload:       payload,
		Phone:         p,
		Amount:        fixed.InexactFloat64(),
		TransactionID: txid,
		Description:   desc,
	}, nil
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) > max {
		return string(r[:max])
	}
	return s
}
