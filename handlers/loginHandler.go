package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"CONVITE_GO/logger"
	"CONVITE_GO/middleware"
)

type adminLoginRequest struct {
	Password string `json:"password"`
}

// AdminLoginHandler troca a senha da página de pagamentos por um JWT.
// passwordHash é o hash bcrypt de ADMIN_PASSWORD_HASH.
func AdminLoginHandler(passwordHash string, secret []byte, ttl time.Duration, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if passwordHash == "" || len(secret) == 0 {
			writeError(w, http.StatusNotImplemented, "Login de administrador não configurado")
			return
		}

		var req adminLoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Password == "" {
			writeError(w, http.StatusBadRequest, "Senha é obrigatória")
			return
		}

		// Comparar a senha com o hash
		if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)); err != nil {
			logger.FromContext(r.Context(), log).Warn("tentativa de login inválida",
				zap.String("client_ip", middleware.ClientIP(r)),
			)
			writeError(w, http.StatusUnauthorized, "Senha inválida")
			return
		}

		token, err := middleware.IssueAdminToken(secret, ttl)
		if err != nil {
			writeServiceError(w, r, log, "Erro ao gerar o token", err)
			return
		}

		writeSuccess(w, map[string]interface{}{
			"token":     token,
			"expiresIn": int(ttl.Seconds()),
		})
	}
}
