package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"CONVITE_GO/logger"
	"CONVITE_GO/metric"
	"CONVITE_GO/pix"
	"CONVITE_GO/qrcode"
)

// O valor aceita número ou texto numérico ("49.90").
type pixRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	TxID        string          `json:"txId"`
}

// PixHandler gera o payload "copia e cola" e o QR code de um presente
func PixHandler(builder *pix.Builder, renderer *qrcode.Renderer, metrics *metric.Metrics, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req pixRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Valor inválido")
			return
		}

		res, err := builder.Generate(req.Amount.InexactFloat64(), req.Description, req.TxID)
		if err != nil {
			writeServiceError(w, r, log, "Erro ao gerar o QR code PIX", err)
			return
		}

		qr, err := renderer.DataURI(res.Payload)
		if err != nil {
			writeServiceError(w, r, log, "Erro ao gerar o QR code PIX", err)
			return
		}
		metrics.PixGenerated()

		logger.FromContext(r.Context(), log).Info("pix gerado",
			zap.String("txid", res.TransactionID),
			zap.String("amount", res.Amount),
		)

		writeSuccess(w, map[string]interface{}{
			"payload": res.Payload,
			"qrCode":  qr,
			"amount":  decimal.RequireFromString(res.Amount).InexactFloat64(),
			"txId":    res.TransactionID,
		})
	}
}
