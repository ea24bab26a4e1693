package efi

import (
	"encoding/json"
	"fmt"
	"strings"

	efipix "github.com/efipay/sdk-go-apis-efi/src/efipay/pix"

	"CONVITE_GO/models"
)

// Status de cobrança devolvidos pela API Pix da Efí
const (
	StatusAtiva     = "ATIVA"
	StatusConcluida = "CONCLUIDA"
)

type chargeDetailer interface {
	DetailCharge(txid string) (string, error)
}

// ChargeChecker consulta o status de uma cobrança Pix na Efí.
type ChargeChecker struct {
	client chargeDetailer
}

func NewChargeChecker(credentials map[string]interface{}) *ChargeChecker {
	return &ChargeChecker{client: efipix.NewEfiPay(credentials)}
}

// Status devolve o status bruto da cobrança (ATIVA, CONCLUIDA, REMOVIDA_...).
func (c *ChargeChecker) Status(txid string) (string, error) {
	res, err := c.client.DetailCharge(txid)
	if err != nil {
		return "", fmt.Errorf("erro ao consultar status do PIX %s: %w", txid, err)
	}

	var resMap map[string]interface{}
	if err := json.Unmarshal([]byte(res), &resMap); err != nil {
		return "", fmt.Errorf("erro ao decodificar resposta do PIX: %w", err)
	}

	status, ok := resMap["status"].(string)
	if !ok || status == "" {
		return "", fmt.Errorf("status não encontrado na resposta")
	}
	return status, nil
}

// PaymentStatus converte o status da Efí para o status do pagamento.
func PaymentStatus(chargeStatus string) string {
	switch {
	case chargeStatus == StatusConcluida:
		return models.PaymentReceived
	case strings.HasPrefix(chargeStatus, "REMOVIDA"):
		return models.PaymentCanceled
	default:
		return models.PaymentPending
	}
}
