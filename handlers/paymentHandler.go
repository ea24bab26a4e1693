package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"CONVITE_GO/efi"
	"CONVITE_GO/logger"
	"CONVITE_GO/models"
)

// PaymentStore é satisfeito por *repository.PaymentRepository.
type PaymentStore interface {
	Create(ctx context.Context, p models.Payment) (models.Payment, error)
	List(ctx context.Context, email string) ([]models.Payment, error)
	Get(ctx context.Context, id string) (models.Payment, error)
	UpdateStatus(ctx context.Context, id string, upd models.PaymentUpdate) (models.Payment, error)
	ListPendingWithTxID(ctx context.Context, paymentType string) ([]models.Payment, error)
}

var validate = newValidator()

// newValidator usa o nome do campo no JSON nas mensagens de erro
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fe.Field() + " é obrigatório"
	case "max":
		return fe.Field() + " excede o tamanho máximo"
	default:
		return fe.Field() + " inválido"
	}
}

type createPaymentRequest struct {
	Email       string          `json:"email" validate:"required,email"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentType string          `json:"paymentType" validate:"required,max=30"`
	Message     string          `json:"message" validate:"max=1000"`
	Description string          `json:"description" validate:"max=255"`
	TxID        string          `json:"txId" validate:"max=35"`
	Raw         json.RawMessage `json:"raw"`
}

type updatePaymentRequest struct {
	Status  *string `json:"status"`
	Message *string `json:"message"`
}

// CreatePaymentHandler registra o presente escolhido por um convidado
func CreatePaymentHandler(store PaymentStore, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			writeServiceError(w, r, log, "Erro ao salvar pagamento", ErrNotSupported)
			return
		}

		var req createPaymentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Erro ao processar JSON")
			return
		}
		req.Email = strings.TrimSpace(req.Email)
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, validationMessage(err))
			return
		}
		amount := req.Amount.Round(2)
		if !amount.IsPositive() || amount.GreaterThan(models.MaxPaymentAmount) {
			writeError(w, http.StatusBadRequest, "Valor inválido")
			return
		}

		payment, err := store.Create(r.Context(), models.Payment{
			Email:       req.Email,
			Amount:      amount,
			PaymentType: req.PaymentType,
			Message:     req.Message,
			Description: req.Description,
			TxID:        req.TxID,
			RawData:     req.Raw,
		})
		if err != nil {
			writeServiceError(w, r, log, "Erro ao salvar pagamento", err)
			return
		}

		logger.FromContext(r.Context(), log).Info("pagamento registrado",
			zap.String("id", payment.ID),
			zap.String("payment_type", payment.PaymentType),
		)

		writeSuccess(w, map[string]interface{}{
			"id":     payment.ID,
			"status": payment.Status,
		})
	}
}

// ListPaymentsHandler lista os pagamentos, mais recentes primeiro, com filtro opcional por e-mail
func ListPaymentsHandler(store PaymentStore, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			writeServiceError(w, r, log, "Erro ao buscar pagamentos", ErrNotSupported)
			return
		}

		payments, err := store.List(r.Context(), strings.TrimSpace(r.URL.Query().Get("email")))
		if err != nil {
			writeServiceError(w, r, log, "Erro ao buscar pagamentos", err)
			return
		}
		if payments == nil {
			payments = []models.Payment{}
		}
		writeSuccess(w, map[string]interface{}{"payments": payments})
	}
}

// UpdatePaymentHandler altera status e/ou mensagem de um pagamento
func UpdatePaymentHandler(store PaymentStore, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			writeServiceError(w, r, log, "Erro ao atualizar pagamento", ErrNotSupported)
			return
		}

		id := mux.Vars(r)["id"]
		var req updatePaymentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Erro ao processar JSON")
			return
		}
		if req.Status != nil && !models.ValidPaymentStatus(*req.Status) {
			writeError(w, http.StatusBadRequest, "status inválido")
			return
		}

		payment, err := store.UpdateStatus(r.Context(), id, models.PaymentUpdate{
			Status:  req.Status,
			Message: req.Message,
		})
		if err != nil {
			writeServiceError(w, r, log, "Erro ao atualizar pagamento", err)
			return
		}
		writeSuccess(w, map[string]interface{}{"payment": payment})
	}
}

// SyncPaymentHandler consulta a cobrança na Efí e atualiza o status do pagamento
func SyncPaymentHandler(store PaymentStore, checker efi.StatusChecker, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil || checker == nil {
			writeServiceError(w, r, log, "Erro ao sincronizar pagamento", ErrNotSupported)
			return
		}

		payment, err := store.Get(r.Context(), mux.Vars(r)["id"])
		if err != nil {
			writeServiceError(w, r, log, "Erro ao sincronizar pagamento", err)
			return
		}

		updated, chargeStatus, err := efi.Sync(r.Context(), checker, store, payment)
		if err != nil {
			writeServiceError(w, r, log, "Erro ao sincronizar pagamento", err)
			return
		}

		logger.FromContext(r.Context(), log).Info("pagamento sincronizado",
			zap.String("id", updated.ID),
			zap.String("charge_status", chargeStatus),
			zap.String("status", updated.Status),
		)

		writeSuccess(w, map[string]interface{}{
			"payment":      updated,
			"chargeStatus": chargeStatus,
		})
	}
}

// SyncAllPaymentsHandler consulta de uma vez todos os PIX pendentes que têm txId
func SyncAllPaymentsHandler(store PaymentStore, checker efi.StatusChecker, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil || checker == nil {
			writeServiceError(w, r, log, "Erro ao sincronizar pagamentos", ErrNotSupported)
			return
		}

		paymentType := r.URL.Query().Get("type")
		if paymentType == "" {
			paymentType = "pix"
		}

		report, err := efi.SyncPending(r.Context(), checker, store, paymentType, logger.FromContext(r.Context(), log))
		if err != nil {
			writeServiceError(w, r, log, "Erro ao sincronizar pagamentos", err)
			return
		}
		writeSuccess(w, map[string]interface{}{
			"checked": report.Checked,
			"updated": report.Updated,
			"failed":  report.Failed,
		})
	}
}
