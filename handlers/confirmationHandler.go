package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"CONVITE_GO/logger"
	"CONVITE_GO/metric"
	"CONVITE_GO/models"
)

// ConfirmationStore grava uma confirmação de presença (Postgres, CSV, S3 ou e-mail).
type ConfirmationStore interface {
	Save(ctx context.Context, data map[string]any) (models.ConfirmationMeta, error)
}

// ConfirmationFinder é implementado só pelo backend Postgres.
type ConfirmationFinder interface {
	FindByEmail(ctx context.Context, email, timestamp string) ([]models.Confirmation, error)
}

// SaveDataHandler recebe o formulário do convite e grava no backend configurado
func SaveDataHandler(store ConfirmationStore, backend string, metrics *metric.Metrics, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var data map[string]any
		if err := json.NewDecoder(r.Body).Decode(&data); err != nil || len(data) == 0 {
			writeError(w, http.StatusBadRequest, "Nenhum dado enviado")
			return
		}

		meta, err := store.Save(r.Context(), data)
		if err != nil {
			writeServiceError(w, r, log, "Erro ao salvar os dados", err)
			return
		}
		metrics.ConfirmationSaved(backend)

		logger.FromContext(r.Context(), log).Info("confirmação salva",
			zap.String("id", meta.ID),
			zap.String("backend", backend),
		)

		writeSuccess(w, map[string]interface{}{
			"message":   "Dados salvos com sucesso",
			"id":        meta.ID,
			"timestamp": meta.Timestamp,
		})
	}
}

// ConfirmationsHandler lista as confirmações de um e-mail, opcionalmente de um envio específico
func ConfirmationsHandler(finder ConfirmationFinder, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if finder == nil {
			writeServiceError(w, r, log, "Erro ao buscar confirmações", ErrNotSupported)
			return
		}

		email := strings.TrimSpace(r.URL.Query().Get("email"))
		if email == "" {
			writeError(w, http.StatusBadRequest, "Email é obrigatório")
			return
		}
		timestamp := strings.TrimSpace(r.URL.Query().Get("timestamp"))

		rows, err := finder.FindByEmail(r.Context(), email, timestamp)
		if err != nil {
			writeServiceError(w, r, log, "Erro ao buscar confirmações", err)
			return
		}
		if rows == nil {
			rows = []models.Confirmation{}
		}

		var ts interface{}
		if timestamp != "" {
			ts = timestamp
		}
		writeSuccess(w, map[string]interface{}{
			"confirmations": rows,
			"timestamp":     ts,
		})
	}
}
