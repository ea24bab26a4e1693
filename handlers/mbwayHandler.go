package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"CONVITE_GO/mbway"
	"CONVITE_GO/metric"
	"CONVITE_GO/qrcode"
)

type mbwayRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Phone       string          `json:"phone"`
	Description string          `json:"description"`
	TxID        string          `json:"txId"`
}

// MbwayHandler gera o pedido MB WAY dos convidados de Portugal
func MbwayHandler(renderer *qrcode.Renderer, metrics *metric.Metrics, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req mbwayRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, mbway.ErrInvalidAmount.Error())
			return
		}

		payment, err := mbway.Generate(req.Amount.InexactFloat64(), req.Phone, req.Description, req.TxID)
		if err != nil {
			writeServiceError(w, r, log, "Erro ao gerar pagamento MB WAY", err)
			return
		}

		qr, err := renderer.DataURI(payment.Payload)
		if err != nil {
			writeServiceError(w, r, log, "Erro ao gerar pagamento MB WAY", err)
			return
		}
		metrics.MbwayGenerated()

		body := map[string]interface{}{
			"payload": payment.Payload,
			"phone":   payment.Phone,
			"amount":  payment.Amount,
			"txId":    payment.TransactionID,
			"qrCode":  qr,
		}
		if payment.Description != "" {
			body["description"] = payment.Description
		}
		writeSuccess(w, body)
	}
}
