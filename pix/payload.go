// Package pix monta o payload "copia e cola" do BR Code (EMV-QRCPS) usado nos
// QR codes de presente.
package pix

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DefaultMerchantName = "RECEBEDOR PIX"
	DefaultMerchantCity = "SAO PAULO"

	maxMerchantName  = 25
	maxMerchantCity  = 15
	maxDescription   = 50
	maxTransactionID = 25

	pixGUI   = "BR.GOV.BCB.PIX"
	crcTag   = "6304"
	txPrefix = "PIX-"
)

// MaxAmount é o maior valor que cabe nos 13 caracteres do campo 54.
var MaxAmount = decimal.RequireFromString("9999999999.99")

// Merchant é a configuração fixa do recebedor, lida uma vez no início do processo.
type Merchant struct {
	PixKey string
	Name   string
	City   string
}

// Request são os dados variáveis de uma cobrança.
type Request struct {
	Amount        float64
	Description   string
	TransactionID string
}

// Payload é o BR Code já montado. Os campos guardam os valores normalizados
// e Text o texto final, com CRC.
type Payload struct {
	PixKey        string
	MerchantName  string
	MerchantCity  string
	Amount        string
	TransactionID string
	Description   string
	Text          string
}

func (p Payload) String() string {
	return p.Text
}

// Result é a resposta de Generate.
type Result struct {
	Payload       string `json:"payload"`
	TransactionID string `json:"txId"`
	Amount        string `json:"amount"`
}

// Builder monta payloads para um recebedor. Não guarda estado mutável e pode
// ser usado por várias goroutines.
type Builder struct {
	merchant Merchant
	newID    func() string
}

type Option func(*Builder)

// WithIDSource troca o gerador de txid usado quando a requisição não traz um.
func WithIDSource(fn func() string) Option {
	return func(b *Builder) {
		b.newID = fn
	}
}

func NewBuilder(merchant Merchant, opts ...Option) *Builder {
	b := &Builder{
		merchant: merchant,
		newID:    randomTransactionID,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func randomTransactionID() string {
	return txPrefix + uuid.NewString()[:8]
}

// Generate valida o valor, monta o payload e anexa o CRC16.
func (b *Builder) Generate(amount float64, description, transactionID string) (Result, error) {
	p, err := b.Build(Request{Amount: amount, Description: description, TransactionID: transactionID})
	if err != nil {
		return Result{}, err
	}
	return Result{Payload: p.Text, TransactionID: p.TransactionID, Amount: p.Amount}, nil
}

// Build monta o payload completo na ordem fixa do BR Code.
func (b *Builder) Build(req Request) (Payload, error) {
	amount, err := roundAmount(req.Amount)
	if err != nil {
		return Payload{}, err
	}

	p := Payload{
		PixKey:       b.merchant.PixKey,
		MerchantName: Normalize(b.merchant.Name, maxMerchantName),
		MerchantCity: Normalize(b.merchant.City, maxMerchantCity),
		Amount:       amount.StringFixed(2),
		Description:  Normalize(req.Description, maxDescription),
	}
	if p.MerchantName == "" {
		p.MerchantName = DefaultMerchantName
	}
	if p.MerchantCity == "" {
		p.MerchantCity = DefaultMerchantCity
	}

	txid := req.TransactionID
	if txid == "" {
		txid = b.newID()
	}
	p.TransactionID = Normalize(txid, maxTransactionID)
	if p.TransactionID == "" {
		p.TransactionID = "PIX"
	}

	body, err := assemble(p)
	if err != nil {
		return Payload{}, err
	}
	p.Text = body + CRC16(body)
	return p, nil
}

// assemble devolve o payload sem CRC, terminando no marcador "6304".
func assemble(p Payload) (string, error) {
	account := []field{
		{"00", pixGUI},
		{"01", p.PixKey},
	}
	if p.Description != "" {
		account = append(account, field{"02", p.Description})
	}
	accountInfo, err := encodeGroup(account)
	if err != nil {
		return "", err
	}
	additional, err := encodeGroup([]field{{"05", p.TransactionID}})
	if err != nil {
		return "", err
	}

	body, err := encodeGroup([]field{
		{"00", "01"},
		{"01", "12"},
		{"26", accountInfo},
		{"52", "0000"},
		{"53", "986"},
		{"54", p.Amount},
		{"58", "BR"},
		{"59", p.MerchantName},
		{"60", p.MerchantCity},
		{"62", additional},
	})
	if err != nil {
		return "", err
	}
	return body + crcTag, nil
}

type field struct {
	id    string
	value string
}

func encodeGroup(fields []field) (string, error) {
	var sb strings.Builder
	for _, f := range fields {
		enc, err := EncodeField(f.id, f.value)
		if err != nil {
			return "", err
		}
		sb.WriteString(enc)
	}
	return sb.String(), nil
}

// roundAmount arredonda para centavos e recusa o que vira 0.00 ou passa de MaxAmount.
func roundAmount(amount float64) (decimal.Decimal, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return decimal.Decimal{}, fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}
	rounded := decimal.NewFromFloat(amount).Round(2)
	if !rounded.IsPositive() || rounded.GreaterThan(MaxAmount) {
		return decimal.Decimal{}, fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}
	return rounded, nil
}

// FormatAmount formata com duas casas decimais, ponto como separador e
// arredondamento half away from zero.
func FormatAmount(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}
