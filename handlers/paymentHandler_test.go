package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CONVITE_GO/efi"
	"CONVITE_GO/models"
	"CONVITE_GO/repository"
)

type fakePayments struct {
	created  []models.Payment
	byID     map[string]models.Payment
	listArg  string
	lastUpd  models.PaymentUpdate
	createFn func(models.Payment) (models.Payment, error)
}

func newFakePayments(payments ...models.Payment) *fakePayments {
	f := &fakePayments{byID: map[string]models.Payment{}}
	for _, p := range payments {
		f.byID[p.ID] = p
	}
	return f
}

func (f *fakePayments) Create(_ context.Context, p models.Payment) (models.Payment, error) {
	if f.createFn != nil {
		return f.createFn(p)
	}
	p.ID = "11111111-1111-1111-1111-111111111111"
	p.Status = models.PaymentPending
	f.created = append(f.created, p)
	return p, nil
}

func (f *fakePayments) List(_ context.Context, email string) ([]models.Payment, error) {
	f.listArg = email
	return nil, nil
}

func (f *fakePayments) Get(_ context.Context, id string) (models.Payment, error) {
	p, ok := f.byID[id]
	if !ok {
		return models.Payment{}, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakePayments) UpdateStatus(_ context.Context, id string, upd models.PaymentUpdate) (models.Payment, error) {
	p, ok := f.byID[id]
	if !ok {
		return models.Payment{}, repository.ErrNotFound
	}
	f.lastUpd = upd
	if upd.Status != nil {
		p.Status = *upd.Status
	}
	if upd.Message != nil {
		p.Message = *upd.Message
	}
	f.byID[id] = p
	return p, nil
}

func (f *fakePayments) ListPendingWithTxID(_ context.Context, paymentType string) ([]models.Payment, error) {
	out := []models.Payment{}
	for _, p := range f.byID {
		if p.PaymentType == paymentType && p.Status == models.PaymentPending && p.TxID != "" {
			out = append(out, p)
		}
	}
	return out, nil
}

func TestCreatePaymentHandler(t *testing.T) {
	store := newFakePayments()
	h := CreatePaymentHandler(store, testLog)

	rec, resp := serve(t, "/api/payments", h, http.MethodPost, "/api/payments",
		`{"email":" ana@exemplo.com ","amount":"150.456","paymentType":"pix","message":"Felicidades!","txId":"PIX-1","raw":{"gift":"Panela"}}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "11111111-1111-1111-1111-111111111111", resp["id"])
	assert.Equal(t, models.PaymentPending, resp["status"])

	require.Len(t, store.created, 1)
	p := store.created[0]
	assert.Equal(t, "ana@exemplo.com", p.Email)
	assert.Equal(t, "150.46", p.Amount.StringFixed(2))
	assert.Equal(t, "pix", p.PaymentType)
	assert.Equal(t, "PIX-1", p.TxID)
	assert.JSONEq(t, `{"gift":"Panela"}`, string(p.RawData))
}

func TestCreatePaymentHandler_Validation(t *testing.T) {
	h := CreatePaymentHandler(newFakePayments(), testLog)

	cases := map[string]string{
		`{"amount":10,"paymentType":"pix"}`:                              "email é obrigatório",
		`{"email":"nao-e-email","amount":10,"paymentType":"pix"}`:        "email inválido",
		`{"email":"a@b.com","amount":10}`:                                "paymentType é obrigatório",
		`{"email":"a@b.com","amount":0,"paymentType":"pix"}`:             "Valor inválido",
		`{"email":"a@b.com","amount":"-3","paymentType":"mbway"}`:        "Valor inválido",
		`{"email":"a@b.com","amount":0.001,"paymentType":"pix"}`:         "Valor inválido",
		`{"email":"a@b.com","amount":1e100,"paymentType":"pix"}`:         "Valor inválido",
		`{"email":"a@b.com","amount":"10000000000","paymentType":"pix"}`: "Valor inválido",
		`{"email":"a@b.com","paymentType":"pix"}`:                        "Valor inválido",
	}
	for body, msg := range cases {
		rec, resp := serve(t, "/api/payments", h, http.MethodPost, "/api/payments", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, msg, resp["error"], body)
	}
}

func TestCreatePaymentHandler_StoreError(t *testing.T) {
	store := newFakePayments()
	store.createFn = func(models.Payment) (models.Payment, error) { return models.Payment{}, errors.New("conexão recusada") }

	rec, resp := serve(t, "/api/payments", CreatePaymentHandler(store, testLog), http.MethodPost, "/api/payments",
		`{"email":"a@b.com","amount":1,"paymentType":"pix"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Erro ao salvar pagamento", resp["error"])
}

func TestListPaymentsHandler(t *testing.T) {
	store := newFakePayments()

	rec, resp := serve(t, "/api/payments", ListPaymentsHandler(store, testLog), http.MethodGet, "/api/payments?email=ana@exemplo.com", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ana@exemplo.com", store.listArg)
	assert.Equal(t, []interface{}{}, resp["payments"])
}

func TestUpdatePaymentHandler(t *testing.T) {
	store := newFakePayments(models.Payment{ID: "p1", Status: models.PaymentPending})
	h := UpdatePaymentHandler(store, testLog)

	rec, resp := serve(t, "/api/payments/{id}", h, http.MethodPut, "/api/payments/p1", `{"status":"received","message":"ok"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	payment := resp["payment"].(map[string]interface{})
	assert.Equal(t, "received", payment["status"])
	assert.Equal(t, "ok", payment["message"])

	rec, _ = serve(t, "/api/payments/{id}", h, http.MethodPut, "/api/payments/p1", `{"message":"só a mensagem"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, store.lastUpd.Status)

	rec, _ = serve(t, "/api/payments/{id}", h, http.MethodPut, "/api/payments/p1", `{"status":"pago"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = serve(t, "/api/payments/{id}", h, http.MethodPut, "/api/payments/nao-existe", `{"status":"canceled"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

type fakeCharge struct{ status string }

func (f fakeCharge) Status(string) (string, error) { return f.status, nil }

func TestSyncPaymentHandler(t *testing.T) {
	store := newFakePayments(
		models.Payment{ID: "p1", Status: models.PaymentPending, TxID: "tx1"},
		models.Payment{ID: "p2", Status: models.PaymentPending},
	)
	h := SyncPaymentHandler(store, fakeCharge{status: efi.StatusConcluida}, testLog)

	rec, resp := serve(t, "/api/payments/{id}/sync", h, http.MethodPost, "/api/payments/p1/sync", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, efi.StatusConcluida, resp["chargeStatus"])
	assert.Equal(t, models.PaymentReceived, store.byID["p1"].Status)

	rec, _ = serve(t, "/api/payments/{id}/sync", h, http.MethodPost, "/api/payments/p2/sync", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = serve(t, "/api/payments/{id}/sync", h, http.MethodPost, "/api/payments/p9/sync", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = serve(t, "/api/payments/{id}/sync", SyncPaymentHandler(store, nil, testLog), http.MethodPost, "/api/payments/p1/sync", "")
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestPaymentHandlers_NoDatabase(t *testing.T) {
	rec, _ := serve(t, "/api/payments", CreatePaymentHandler(nil, testLog), http.MethodPost, "/api/payments", `{}`)
	assert.Equal(t, http.StatusNotImplemented, rec.Code)

	rec, _ = serve(t, "/api/payments", ListPaymentsHandler(nil, testLog), http.MethodGet, "/api/payments", "")
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestSyncAllPaymentsHandler(t *testing.T) {
	store := newFakePayments(
		models.Payment{ID: "p1", PaymentType: "pix", Status: models.PaymentPending, TxID: "tx1"},
		models.Payment{ID: "p2", PaymentType: "pix", Status: models.PaymentPending},
		models.Payment{ID: "p3", PaymentType: "mbway", Status: models.PaymentPending, TxID: "mb1"},
	)
	h := SyncAllPaymentsHandler(store, fakeCharge{status: efi.StatusConcluida}, testLog)

	rec, resp := serve(t, "/api/payments/sync", h, http.MethodPost, "/api/payments/sync", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), resp["checked"])
	assert.Equal(t, float64(1), resp["updated"])
	assert.Equal(t, models.PaymentReceived, store.byID["p1"].Status)
	assert.Equal(t, models.PaymentPending, store.byID["p3"].Status)
}
