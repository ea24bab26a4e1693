package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"CONVITE_GO/efi"
	"CONVITE_GO/logger"
	"CONVITE_GO/mbway"
	"CONVITE_GO/pix"
	"CONVITE_GO/repository"
	"CONVITE_GO/storage"
)

// ErrNotSupported indica que o backend configurado não oferece a operação.
var ErrNotSupported = errors.New("operação não suportada pelo backend configurado")

func writeJSON(w http.ResponseWriter, status int, body map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeSuccess(w http.ResponseWriter, body map[string]interface{}) {
	if body == nil {
		body = map[string]interface{}{}
	}
	body["success"] = true
	writeJSON(w, http.StatusOK, body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   msg,
	})
}

// statusFor traduz os erros dos pacotes de domínio para o status HTTP.
func statusFor(err error) int {
	switch {
	case errors.Is(err, pix.ErrInvalidAmount),
		errors.Is(err, mbway.ErrInvalidAmount),
		errors.Is(err, mbway.ErrInvalidPhone),
		errors.Is(err, efi.ErrMissingTxID):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrInvalidFileName):
		return http.StatusForbidden
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, storage.ErrFileNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNotSupported):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError responde o erro e registra no log os que são falha do servidor.
func writeServiceError(w http.ResponseWriter, r *http.Request, log *zap.Logger, msg string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.FromContext(r.Context(), log).Error(msg, zap.Error(err))
		writeJSON(w, status, map[string]interface{}{
			"success": false,
			"error":   msg,
			"details": err.Error(),
		})
		return
	}
	writeError(w, status, err.Error())
}
